package models

import "time"

// Gamification event types pushed over the WebSocket feed
const (
	EventXPAwarded     = "xp_awarded"
	EventLevelUp       = "level_up"
	EventStreakUpdated = "streak_updated"
	EventBadgeUnlocked = "badge_unlocked"
)

// GamificationEvent is the realtime notification sent to a user after an
// award transaction commits. Badge is set only for badge_unlocked events.
type GamificationEvent struct {
	Type        string    `json:"type"`
	UserID      string    `json:"user_id"`
	XPAwarded   int       `json:"xp_awarded,omitempty"`
	XPTotal     int64     `json:"xp_total,omitempty"`
	Level       int       `json:"level,omitempty"`
	StreakCount int       `json:"streak_count,omitempty"`
	Badge       *Badge    `json:"badge,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
