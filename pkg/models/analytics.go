package models

// SkillScore is the per-topic derived skill value for radar/bar charts
type SkillScore struct {
	TopicID    string `json:"topic_id"`
	TopicTitle string `json:"topic_title"`
	Score      int    `json:"score"` // 0-100
}

// AccuracyPoint is one day of the accuracy trend series
type AccuracyPoint struct {
	Day      string  `json:"day"` // display label, e.g. "Mar 10"
	Accuracy float64 `json:"accuracy"`
}

// TimeSpent is the per-topic estimated study time. The estimate is
// configuration-driven, not measured; see gamification config.
type TimeSpent struct {
	TopicID    string  `json:"topic_id"`
	TopicTitle string  `json:"topic_title"`
	Hours      float64 `json:"hours"`
}

// ProgressSummary holds the headline totals for the dashboard
type ProgressSummary struct {
	CompletedTopics int     `json:"completed_topics"`
	TotalTopics     int     `json:"total_topics"`
	TotalAttempts   int     `json:"total_attempts"`
	AverageScore    float64 `json:"average_score"`
	TotalHours      float64 `json:"total_hours"`
}

// ProgressReport is the full chart-facing aggregation for one user
type ProgressReport struct {
	Skills        []SkillScore    `json:"skills"`
	AccuracyTrend []AccuracyPoint `json:"accuracy_trend"`
	TimeSpent     []TimeSpent     `json:"time_spent"`
	Summary       ProgressSummary `json:"summary"`
}
