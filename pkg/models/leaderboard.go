package models

import "time"

// LeaderboardMetric selects which counter a ranking is computed over
type LeaderboardMetric string

const (
	MetricXP       LeaderboardMetric = "xp"
	MetricWeeklyXP LeaderboardMetric = "weekly_xp"
)

// RankedUser is the ranker's input: one user plus the metric value already
// resolved for the requested window.
type RankedUser struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Level    int    `json:"level"`
	Score    int64  `json:"score"`
}

// LeaderboardEntry is a ranked row. Rank is dense: tied scores share a rank
// and the next distinct score takes rank+1.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Level    int    `json:"level"`
	Score    int64  `json:"score"`
}

// UserRank locates one user inside the full ranked population, independent of
// any page the client requested.
type UserRank struct {
	UserID     string `json:"user_id"`
	Rank       int    `json:"rank"`
	Score      int64  `json:"score"`
	TotalUsers int    `json:"total_users"`
	Ranked     bool   `json:"ranked"`
}

// LeaderboardResponse is the paginated display view plus the caller's own rank
type LeaderboardResponse struct {
	Metric    LeaderboardMetric  `json:"metric"`
	Entries   []LeaderboardEntry `json:"entries"`
	Me        *UserRank          `json:"me,omitempty"`
	Total     int                `json:"total"`
	UpdatedAt time.Time          `json:"updated_at"`
}
