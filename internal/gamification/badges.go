package gamification

import "learnhub/pkg/models"

// EvaluateBadges checks every catalog badge the user has not earned yet
// against the aggregate stats and returns the newly satisfied ones.
// Pure and deterministic: the same inputs always yield the same result, and
// criteria are independent of each other. Recording the award (idempotently)
// is the caller's job.
func EvaluateBadges(stats models.UserStats, earned map[string]bool) []models.Badge {
	var newBadges []models.Badge
	for _, badge := range Catalog {
		if earned[badge.ID] {
			continue
		}
		value, ok := statValue(stats, badge.Criterion)
		if !ok {
			continue
		}
		if value >= badge.Threshold {
			newBadges = append(newBadges, badge)
		}
	}
	return newBadges
}

// statValue maps a criterion onto the stat it measures. Unknown criteria
// evaluate to not-ok so a stale catalog entry can never fire.
func statValue(stats models.UserStats, criterion models.BadgeCriterion) (int64, bool) {
	switch criterion {
	case models.CriterionTopicsCompleted:
		return int64(stats.TopicsCompleted), true
	case models.CriterionDaysStreak:
		return int64(stats.StreakCount), true
	case models.CriterionLevelReached:
		return int64(stats.Level), true
	case models.CriterionXPTotal:
		return stats.XPTotal, true
	case models.CriterionQuizzesPassed:
		return int64(stats.QuizzesPassed), true
	case models.CriterionPerfectQuiz:
		if stats.BestScorePercent >= 100 {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
