package models

import (
	"errors"
	"fmt"
	"time"
)

// OptionsPerQuestion is the fixed option count for multiple-choice questions
const OptionsPerQuestion = 4

// Question models an MCQ question with exactly one correct option index
type Question struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty"` // easy, medium, hard
}

// QuizDefinition is an ordered set of questions plus scoring policy.
// Immutable for the lifetime of a session: a session keeps the definition it
// was started with even if an admin edits the quiz concurrently.
type QuizDefinition struct {
	ID                  string     `json:"id" db:"id"`
	TopicID             string     `json:"topic_id" db:"topic_id"`
	Title               string     `json:"title" db:"title"`
	Questions           []Question `json:"questions"`
	TimeLimitSeconds    int        `json:"time_limit_seconds" db:"time_limit_seconds"`
	XPReward            int        `json:"xp_reward" db:"xp_reward"`
	PassingScorePercent float64    `json:"passing_score_percent" db:"passing_score_percent"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
}

var (
	ErrQuizNoQuestions    = errors.New("quiz definition has no questions")
	ErrQuizBadTimeLimit   = errors.New("quiz time limit must be positive")
	ErrQuizNegativeReward = errors.New("quiz xp reward cannot be negative")
)

// Validate rejects malformed definitions before they reach the session state
// machine. Loose shapes from storage or admin tooling never enter play.
func (q *QuizDefinition) Validate() error {
	if len(q.Questions) == 0 {
		return ErrQuizNoQuestions
	}
	if q.TimeLimitSeconds <= 0 {
		return ErrQuizBadTimeLimit
	}
	if q.XPReward < 0 {
		return ErrQuizNegativeReward
	}
	if q.PassingScorePercent < 0 || q.PassingScorePercent > 100 {
		return fmt.Errorf("passing score %.1f out of range", q.PassingScorePercent)
	}
	for i, question := range q.Questions {
		if len(question.Options) != OptionsPerQuestion {
			return fmt.Errorf("question %d: expected %d options, got %d", i, OptionsPerQuestion, len(question.Options))
		}
		if question.CorrectIndex < 0 || question.CorrectIndex >= len(question.Options) {
			return fmt.Errorf("question %d: correct index %d out of range", i, question.CorrectIndex)
		}
	}
	return nil
}

// QuizAttemptResult is persisted exactly once per finished session and never
// mutated afterwards.
type QuizAttemptResult struct {
	ID               string    `json:"id" db:"id"`
	UserID           string    `json:"user_id" db:"user_id"`
	QuizID           string    `json:"quiz_id" db:"quiz_id"`
	TopicID          string    `json:"topic_id" db:"topic_id"`
	CorrectCount     int       `json:"correct_count" db:"correct_count"`
	TotalQuestions   int       `json:"total_questions" db:"total_questions"`
	ScorePercent     float64   `json:"score_percent" db:"score_percent"`
	Passed           bool      `json:"passed" db:"passed"`
	XPEarned         int       `json:"xp_earned" db:"xp_earned"`
	TimeTakenSeconds int       `json:"time_taken_seconds" db:"time_taken_seconds"`
	CompletedAt      time.Time `json:"completed_at" db:"completed_at"`
}

// QuizSummary is the list view of a quiz (no answers exposed)
type QuizSummary struct {
	ID                  string  `json:"id"`
	TopicID             string  `json:"topic_id"`
	Title               string  `json:"title"`
	QuestionCount       int     `json:"question_count"`
	TimeLimitSeconds    int     `json:"time_limit_seconds"`
	XPReward            int     `json:"xp_reward"`
	PassingScorePercent float64 `json:"passing_score_percent"`
}

// Summary strips answer keys for client listings
func (q *QuizDefinition) Summary() QuizSummary {
	return QuizSummary{
		ID:                  q.ID,
		TopicID:             q.TopicID,
		Title:               q.Title,
		QuestionCount:       len(q.Questions),
		TimeLimitSeconds:    q.TimeLimitSeconds,
		XPReward:            q.XPReward,
		PassingScorePercent: q.PassingScorePercent,
	}
}
