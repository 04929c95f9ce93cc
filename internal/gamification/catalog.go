package gamification

import "learnhub/pkg/models"

// Catalog is the static badge definitions. The seeder mirrors these rows into
// the badges table so earned rows can join against names, but evaluation
// always runs off this in-code list.
var Catalog = []models.Badge{
	{ID: "first-steps", Name: "First Steps", Description: "Complete your first topic", Icon: "footprints", Criterion: models.CriterionTopicsCompleted, Threshold: 1},
	{ID: "explorer", Name: "Explorer", Description: "Complete 5 topics", Icon: "compass", Criterion: models.CriterionTopicsCompleted, Threshold: 5},
	{ID: "scholar", Name: "Scholar", Description: "Complete 15 topics", Icon: "graduation-cap", Criterion: models.CriterionTopicsCompleted, Threshold: 15},
	{ID: "streak-3", Name: "Warming Up", Description: "Keep a 3-day streak", Icon: "flame", Criterion: models.CriterionDaysStreak, Threshold: 3},
	{ID: "streak-7", Name: "On Fire", Description: "Keep a 7-day streak", Icon: "flame", Criterion: models.CriterionDaysStreak, Threshold: 7},
	{ID: "streak-30", Name: "Unstoppable", Description: "Keep a 30-day streak", Icon: "zap", Criterion: models.CriterionDaysStreak, Threshold: 30},
	{ID: "level-5", Name: "Rising Star", Description: "Reach level 5", Icon: "star", Criterion: models.CriterionLevelReached, Threshold: 5},
	{ID: "level-10", Name: "Veteran", Description: "Reach level 10", Icon: "medal", Criterion: models.CriterionLevelReached, Threshold: 10},
	{ID: "xp-1000", Name: "Point Collector", Description: "Earn 1000 XP", Icon: "gem", Criterion: models.CriterionXPTotal, Threshold: 1000},
	{ID: "quiz-rookie", Name: "Quiz Rookie", Description: "Pass your first quiz", Icon: "check", Criterion: models.CriterionQuizzesPassed, Threshold: 1},
	{ID: "quiz-whiz", Name: "Quiz Whiz", Description: "Pass 10 quizzes", Icon: "brain", Criterion: models.CriterionQuizzesPassed, Threshold: 10},
	{ID: "perfectionist", Name: "Perfectionist", Description: "Score 100% on any quiz", Icon: "sparkles", Criterion: models.CriterionPerfectQuiz, Threshold: 1},
}

// CatalogByID returns the catalog indexed by badge id
func CatalogByID() map[string]models.Badge {
	index := make(map[string]models.Badge, len(Catalog))
	for _, badge := range Catalog {
		index[badge.ID] = badge
	}
	return index
}
