// Package progress derives the chart-facing views from persisted topic
// progress rows and quiz attempt history. Everything here is a pure
// recomputation over the authoritative records; nothing is written back.
package progress

import (
	"math"
	"sort"
	"time"

	"learnhub/pkg/models"
	"learnhub/pkg/utils"
)

// trendDays is the fixed window of the accuracy trend series.
const trendDays = 7

// Estimates holds the configured constants for the time-spent estimate.
// There is no real time tracking; the numbers are an approximation tuned for
// the dashboard, never authoritative.
type Estimates struct {
	HoursPerProgressPercent float64
	HoursPerQuizAttempt     float64
}

// Aggregator folds topic progress and attempt history into a ProgressReport.
type Aggregator struct {
	estimates Estimates
	now       func() time.Time
}

func NewAggregator(estimates Estimates) *Aggregator {
	return newAggregatorWithClock(estimates, time.Now)
}

func newAggregatorWithClock(estimates Estimates, now func() time.Time) *Aggregator {
	return &Aggregator{estimates: estimates, now: now}
}

// NewAggregatorWithClock is test-only for a deterministic trend window.
func NewAggregatorWithClock(estimates Estimates, now func() time.Time) *Aggregator {
	return newAggregatorWithClock(estimates, now)
}

// Summarize builds the full report. Empty inputs are fine: every series
// degrades to zeros rather than an error, so a brand-new user still gets a
// well-shaped dashboard.
func (a *Aggregator) Summarize(topics []models.Topic, progress []models.TopicProgress, attempts []models.QuizAttemptResult) models.ProgressReport {
	percentByTopic := make(map[string]int, len(progress))
	completedCount := 0
	for _, row := range progress {
		// Defensive max: the store should never regress percent, but the
		// aggregator tolerates out-of-order rows anyway.
		if percent := models.ClampPercent(row.Percent); percent > percentByTopic[row.TopicID] {
			percentByTopic[row.TopicID] = percent
		}
		if row.Completed {
			completedCount++
		}
	}

	scoresByTopic := make(map[string][]float64)
	attemptsByTopic := make(map[string]int)
	for _, attempt := range attempts {
		scoresByTopic[attempt.TopicID] = append(scoresByTopic[attempt.TopicID], attempt.ScorePercent)
		attemptsByTopic[attempt.TopicID]++
	}

	report := models.ProgressReport{
		Skills:        make([]models.SkillScore, 0, len(topics)),
		TimeSpent:     make([]models.TimeSpent, 0, len(topics)),
		AccuracyTrend: a.accuracyTrend(attempts),
	}

	totalHours := 0.0
	for _, topic := range topics {
		percent := percentByTopic[topic.ID]
		report.Skills = append(report.Skills, models.SkillScore{
			TopicID:    topic.ID,
			TopicTitle: topic.Title,
			Score:      skillScore(percent, scoresByTopic[topic.ID]),
		})

		hours := estimateHours(percent, attemptsByTopic[topic.ID], a.estimates)
		totalHours += hours
		report.TimeSpent = append(report.TimeSpent, models.TimeSpent{
			TopicID:    topic.ID,
			TopicTitle: topic.Title,
			Hours:      hours,
		})
	}

	report.Summary = models.ProgressSummary{
		CompletedTopics: completedCount,
		TotalTopics:     len(topics),
		TotalAttempts:   len(attempts),
		AverageScore:    meanScore(attempts),
		TotalHours:      round1(totalHours),
	}
	return report
}

// skillScore blends content progress with quiz performance. A topic without
// attempts scores on progress alone.
func skillScore(percent int, attemptScores []float64) int {
	if len(attemptScores) == 0 {
		return percent
	}
	sum := 0.0
	for _, score := range attemptScores {
		sum += score
	}
	mean := sum / float64(len(attemptScores))
	blended := int(math.Round((float64(percent) + mean) / 2))
	if blended < 0 {
		return 0
	}
	if blended > 100 {
		return 100
	}
	return blended
}

// accuracyTrend groups attempts by UTC calendar day, averages the score
// within each day and keeps the most recent days in chronological order.
// With no history at all it emits the last few days flat at zero so charts
// always have a fixed-length series to draw.
func (a *Aggregator) accuracyTrend(attempts []models.QuizAttemptResult) []models.AccuracyPoint {
	if len(attempts) == 0 {
		trend := make([]models.AccuracyPoint, 0, trendDays)
		today := utils.DayOf(a.now())
		for i := trendDays - 1; i >= 0; i-- {
			day := today.AddDate(0, 0, -i)
			trend = append(trend, models.AccuracyPoint{Day: utils.DayLabel(day), Accuracy: 0})
		}
		return trend
	}

	sums := make(map[time.Time]float64)
	counts := make(map[time.Time]int)
	for _, attempt := range attempts {
		day := utils.DayOf(attempt.CompletedAt)
		sums[day] += attempt.ScorePercent
		counts[day]++
	}

	days := make([]time.Time, 0, len(sums))
	for day := range sums {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	if len(days) > trendDays {
		days = days[len(days)-trendDays:]
	}

	trend := make([]models.AccuracyPoint, 0, len(days))
	for _, day := range days {
		trend = append(trend, models.AccuracyPoint{
			Day:      utils.DayLabel(day),
			Accuracy: sums[day] / float64(counts[day]),
		})
	}
	return trend
}

func estimateHours(percent, attemptCount int, est Estimates) float64 {
	return round1(float64(percent)*est.HoursPerProgressPercent + float64(attemptCount)*est.HoursPerQuizAttempt)
}

// meanScore is the plain average of attempt percentages, not weighted by
// question count.
func meanScore(attempts []models.QuizAttemptResult) float64 {
	if len(attempts) == 0 {
		return 0
	}
	sum := 0.0
	for _, attempt := range attempts {
		sum += attempt.ScorePercent
	}
	return sum / float64(len(attempts))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
