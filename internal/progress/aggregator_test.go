package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/pkg/models"
)

var testEstimates = Estimates{
	HoursPerProgressPercent: 0.05,
	HoursPerQuizAttempt:     0.25,
}

func testAggregator() *Aggregator {
	fixed := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	return NewAggregatorWithClock(testEstimates, func() time.Time { return fixed })
}

func attemptOn(topicID string, score float64, day string) models.QuizAttemptResult {
	completed, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return models.QuizAttemptResult{
		UserID:       "user-1",
		QuizID:       "quiz-" + topicID,
		TopicID:      topicID,
		ScorePercent: score,
		CompletedAt:  completed.UTC().Add(10 * time.Hour),
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	report := testAggregator().Summarize(nil, nil, nil)

	assert.Empty(t, report.Skills)
	assert.Empty(t, report.TimeSpent)
	assert.Equal(t, models.ProgressSummary{}, report.Summary)

	// No history still yields a full-length, all-zero trend.
	require.Len(t, report.AccuracyTrend, 7)
	assert.Equal(t, "Mar 4", report.AccuracyTrend[0].Day)
	assert.Equal(t, "Mar 10", report.AccuracyTrend[6].Day)
	for _, point := range report.AccuracyTrend {
		assert.Zero(t, point.Accuracy)
	}
}

func TestSkillScoreBlendsProgressAndAttempts(t *testing.T) {
	topics := []models.Topic{
		{ID: "t1", Title: "Variables"},
		{ID: "t2", Title: "Loops"},
	}
	progress := []models.TopicProgress{
		{UserID: "user-1", TopicID: "t1", Percent: 80},
		{UserID: "user-1", TopicID: "t2", Percent: 60},
	}
	attempts := []models.QuizAttemptResult{
		attemptOn("t1", 90, "2024-03-09"),
		attemptOn("t1", 70, "2024-03-10"),
	}

	report := testAggregator().Summarize(topics, progress, attempts)
	require.Len(t, report.Skills, 2)

	// t1: round((80 + mean(90,70)) / 2) = 80
	assert.Equal(t, 80, report.Skills[0].Score)
	// t2 has no attempts: progress percent alone.
	assert.Equal(t, 60, report.Skills[1].Score)
}

func TestSkillScoreToleratesRegressiveRows(t *testing.T) {
	topics := []models.Topic{{ID: "t1", Title: "Variables"}}
	progress := []models.TopicProgress{
		{UserID: "user-1", TopicID: "t1", Percent: 70},
		{UserID: "user-1", TopicID: "t1", Percent: 40},
	}

	report := testAggregator().Summarize(topics, progress, nil)
	require.Len(t, report.Skills, 1)
	assert.Equal(t, 70, report.Skills[0].Score)
}

func TestAccuracyTrendGroupsByDay(t *testing.T) {
	attempts := []models.QuizAttemptResult{
		attemptOn("t1", 60, "2024-03-08"),
		attemptOn("t1", 80, "2024-03-08"),
		attemptOn("t1", 100, "2024-03-10"),
	}

	report := testAggregator().Summarize(nil, nil, attempts)
	trend := report.AccuracyTrend
	require.Len(t, trend, 2)

	assert.Equal(t, "Mar 8", trend[0].Day)
	assert.InDelta(t, 70.0, trend[0].Accuracy, 0.0001)
	assert.Equal(t, "Mar 10", trend[1].Day)
	assert.InDelta(t, 100.0, trend[1].Accuracy, 0.0001)
}

func TestAccuracyTrendKeepsRecentSevenDays(t *testing.T) {
	var attempts []models.QuizAttemptResult
	for day := 1; day <= 10; day++ {
		attempts = append(attempts, attemptOn("t1", float64(day*10), time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")))
	}

	trend := testAggregator().Summarize(nil, nil, attempts).AccuracyTrend
	require.Len(t, trend, 7)
	assert.Equal(t, "Mar 4", trend[0].Day)
	assert.Equal(t, "Mar 10", trend[6].Day)
	assert.InDelta(t, 40.0, trend[0].Accuracy, 0.0001)
	assert.InDelta(t, 100.0, trend[6].Accuracy, 0.0001)
}

func TestTimeSpentEstimate(t *testing.T) {
	topics := []models.Topic{{ID: "t1", Title: "Variables"}}
	progress := []models.TopicProgress{{UserID: "user-1", TopicID: "t1", Percent: 100, Completed: true}}
	attempts := []models.QuizAttemptResult{
		attemptOn("t1", 80, "2024-03-09"),
		attemptOn("t1", 90, "2024-03-10"),
	}

	report := testAggregator().Summarize(topics, progress, attempts)
	require.Len(t, report.TimeSpent, 1)

	// 100 * 0.05 + 2 * 0.25 = 5.5 hours
	assert.InDelta(t, 5.5, report.TimeSpent[0].Hours, 0.0001)
	assert.InDelta(t, 5.5, report.Summary.TotalHours, 0.0001)
}

func TestSummaryTotals(t *testing.T) {
	topics := []models.Topic{
		{ID: "t1", Title: "Variables"},
		{ID: "t2", Title: "Loops"},
		{ID: "t3", Title: "Functions"},
	}
	progress := []models.TopicProgress{
		{UserID: "user-1", TopicID: "t1", Percent: 100, Completed: true},
		{UserID: "user-1", TopicID: "t2", Percent: 50},
	}
	attempts := []models.QuizAttemptResult{
		attemptOn("t1", 100, "2024-03-09"),
		attemptOn("t2", 50, "2024-03-10"),
	}

	summary := testAggregator().Summarize(topics, progress, attempts).Summary
	assert.Equal(t, 1, summary.CompletedTopics)
	assert.Equal(t, 3, summary.TotalTopics)
	assert.Equal(t, 2, summary.TotalAttempts)
	assert.InDelta(t, 75.0, summary.AverageScore, 0.0001)
}
