package models

import (
	"time"
)

// Topic represents a learning topic from the catalog
type Topic struct {
	ID            string    `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	XPReward      int       `json:"xp_reward" db:"xp_reward"`
	Prerequisites []string  `json:"prerequisites,omitempty" db:"prerequisites"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// TopicProgress tracks a user's progress through one topic's content.
// Percent never regresses: the repository upserts with GREATEST so
// out-of-order writes cannot move it backwards.
type TopicProgress struct {
	UserID    string    `json:"user_id" db:"user_id"`
	TopicID   string    `json:"topic_id" db:"topic_id"`
	Percent   int       `json:"percent" db:"percent"` // 0-100
	Completed bool      `json:"completed" db:"completed"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UpdateTopicProgressRequest represents a progress upsert from the client
type UpdateTopicProgressRequest struct {
	TopicID   string `json:"topic_id" validate:"required"`
	Percent   int    `json:"percent" validate:"min=0,max=100"`
	Completed bool   `json:"completed"`
}

// ClampPercent bounds a raw percent into [0, 100]
func ClampPercent(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
