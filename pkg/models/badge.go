package models

import "time"

// BadgeCriterion identifies which user stat a badge threshold applies to
type BadgeCriterion string

const (
	CriterionTopicsCompleted BadgeCriterion = "topics_completed"
	CriterionDaysStreak      BadgeCriterion = "days_streak"
	CriterionLevelReached    BadgeCriterion = "level_reached"
	CriterionXPTotal         BadgeCriterion = "xp_total"
	CriterionQuizzesPassed   BadgeCriterion = "quizzes_passed"
	CriterionPerfectQuiz     BadgeCriterion = "perfect_quiz"
)

// Badge is a one-time-awardable achievement from the static catalog
type Badge struct {
	ID          string         `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Description string         `json:"description" db:"description"`
	Icon        string         `json:"icon,omitempty" db:"icon"`
	Criterion   BadgeCriterion `json:"criterion" db:"criterion"`
	Threshold   int64          `json:"threshold" db:"threshold"`
}

// UserBadge records an earned badge. (user_id, badge_id) is the primary key,
// so a badge can be granted at most once per user; duplicate grants are
// absorbed by ON CONFLICT DO NOTHING.
type UserBadge struct {
	UserID   string    `json:"user_id" db:"user_id"`
	BadgeID  string    `json:"badge_id" db:"badge_id"`
	EarnedAt time.Time `json:"earned_at" db:"earned_at"`

	Badge *Badge `json:"badge,omitempty" db:"-"` // joined
}
