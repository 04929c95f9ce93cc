package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"learnhub/pkg/models"
)

// AttemptRepository persists finished quiz attempts. Rows are written once
// and never updated; inserting an id that already exists is a no-op so a
// retried finalize cannot duplicate a result.
type AttemptRepository interface {
	Insert(ctx context.Context, attempt *models.QuizAttemptResult) error
	ListByUser(ctx context.Context, userID string) ([]models.QuizAttemptResult, error)
}

type attemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new PostgreSQL quiz attempt repository
func NewAttemptRepository(pool *pgxpool.Pool) AttemptRepository {
	return &attemptRepository{pool: pool}
}

func (r *attemptRepository) Insert(ctx context.Context, attempt *models.QuizAttemptResult) error {
	query := `
		INSERT INTO quiz_attempts
			(id, user_id, quiz_id, topic_id, correct_count, total_questions,
			 score_percent, passed, xp_earned, time_taken_seconds, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query,
		attempt.ID,
		attempt.UserID,
		attempt.QuizID,
		attempt.TopicID,
		attempt.CorrectCount,
		attempt.TotalQuestions,
		attempt.ScorePercent,
		attempt.Passed,
		attempt.XPEarned,
		attempt.TimeTakenSeconds,
		attempt.CompletedAt,
	)
	if err != nil {
		return mapDBError(err, "insert_attempt")
	}
	return nil
}

func (r *attemptRepository) ListByUser(ctx context.Context, userID string) ([]models.QuizAttemptResult, error) {
	query := `
		SELECT id, user_id, quiz_id, topic_id, correct_count, total_questions,
		       score_percent, passed, xp_earned, time_taken_seconds, completed_at
		FROM quiz_attempts
		WHERE user_id = $1
		ORDER BY completed_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapDBError(err, "list_attempts")
	}
	defer rows.Close()

	var attempts []models.QuizAttemptResult
	for rows.Next() {
		var attempt models.QuizAttemptResult
		err := rows.Scan(
			&attempt.ID,
			&attempt.UserID,
			&attempt.QuizID,
			&attempt.TopicID,
			&attempt.CorrectCount,
			&attempt.TotalQuestions,
			&attempt.ScorePercent,
			&attempt.Passed,
			&attempt.XPEarned,
			&attempt.TimeTakenSeconds,
			&attempt.CompletedAt,
		)
		if err != nil {
			return nil, mapDBError(err, "scan_attempt")
		}
		attempts = append(attempts, attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "list_attempts")
	}
	return attempts, nil
}
