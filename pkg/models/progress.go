package models

import (
	"time"
)

// UserProgressState is the per-user gamification aggregate - matches schema.sql.
// Level is always derived from XPTotal; the column exists only so leaderboard
// reads avoid recomputing it, and every XP write recomputes it in the same
// transaction.
type UserProgressState struct {
	UserID         string    `json:"user_id" db:"user_id"`
	XPTotal        int64     `json:"xp_total" db:"xp_total"`
	Level          int       `json:"level" db:"level"`
	StreakCount    int       `json:"streak_count" db:"streak_count"`
	LastActiveDate time.Time `json:"last_active_date" db:"last_active_date"` // calendar day, UTC midnight
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// XPEvent is one row of the append-only XP ledger. EventID is supplied by the
// triggering action (quiz completion, topic completion) and is unique, which
// makes replayed awards no-ops.
type XPEvent struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	EventID   string    `json:"event_id" db:"event_id"`
	Source    string    `json:"source" db:"source"` // quiz_completed, topic_completed, daily_login
	Amount    int       `json:"amount" db:"amount"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// XP event sources
const (
	XPSourceQuizCompleted  = "quiz_completed"
	XPSourceTopicCompleted = "topic_completed"
	XPSourceDailyLogin     = "daily_login"
)

// UserStats is the aggregate snapshot badge criteria are evaluated against.
// Assembled inside the award transaction, after the XP increment.
type UserStats struct {
	UserID           string  `json:"user_id"`
	XPTotal          int64   `json:"xp_total"`
	Level            int     `json:"level"`
	StreakCount      int     `json:"streak_count"`
	TopicsCompleted  int     `json:"topics_completed"`
	QuizAttempts     int     `json:"quiz_attempts"`
	QuizzesPassed    int     `json:"quizzes_passed"`
	BestScorePercent float64 `json:"best_score_percent"`
}

// AwardResult describes the outcome of one gamification award transaction.
type AwardResult struct {
	Applied     bool      `json:"applied"` // false when the event id was already recorded
	XPAwarded   int       `json:"xp_awarded"`
	XPTotal     int64     `json:"xp_total"`
	Level       int       `json:"level"`
	LeveledUp   bool      `json:"leveled_up"`
	StreakCount int       `json:"streak_count"`
	NewBadges   []Badge   `json:"new_badges"`
	Timestamp   time.Time `json:"timestamp"`
}
