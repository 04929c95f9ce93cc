package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"learnhub/pkg/models"
)

// TopicProgressRepository persists per-topic content progress.
type TopicProgressRepository interface {
	Upsert(ctx context.Context, progress *models.TopicProgress) error
	Get(ctx context.Context, userID, topicID string) (*models.TopicProgress, error)
	ListByUser(ctx context.Context, userID string) ([]models.TopicProgress, error)
}

type topicProgressRepository struct {
	pool *pgxpool.Pool
}

// NewTopicProgressRepository creates a new PostgreSQL topic progress repository
func NewTopicProgressRepository(pool *pgxpool.Pool) TopicProgressRepository {
	return &topicProgressRepository{pool: pool}
}

// Upsert records progress with GREATEST so an out-of-order write never moves
// percent backwards, and a completed flag never flips back to false. The row
// is echoed back into the argument.
func (r *topicProgressRepository) Upsert(ctx context.Context, progress *models.TopicProgress) error {
	query := `
		INSERT INTO topic_progress (user_id, topic_id, percent, completed, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, topic_id) DO UPDATE SET
			percent = GREATEST(topic_progress.percent, EXCLUDED.percent),
			completed = topic_progress.completed OR EXCLUDED.completed,
			updated_at = CURRENT_TIMESTAMP
		RETURNING percent, completed, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		progress.UserID,
		progress.TopicID,
		models.ClampPercent(progress.Percent),
		progress.Completed,
	).Scan(&progress.Percent, &progress.Completed, &progress.UpdatedAt)

	if err != nil {
		return mapDBError(err, "upsert_topic_progress")
	}
	return nil
}

func (r *topicProgressRepository) Get(ctx context.Context, userID, topicID string) (*models.TopicProgress, error) {
	query := `
		SELECT user_id, topic_id, percent, completed, updated_at
		FROM topic_progress
		WHERE user_id = $1 AND topic_id = $2
	`
	progress := &models.TopicProgress{}
	err := r.pool.QueryRow(ctx, query, userID, topicID).Scan(
		&progress.UserID,
		&progress.TopicID,
		&progress.Percent,
		&progress.Completed,
		&progress.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewHTTPError(models.ErrCodeNotFound, "topic progress not found", 404, err)
	}
	if err != nil {
		return nil, mapDBError(err, "get_topic_progress")
	}
	return progress, nil
}

func (r *topicProgressRepository) ListByUser(ctx context.Context, userID string) ([]models.TopicProgress, error) {
	query := `
		SELECT user_id, topic_id, percent, completed, updated_at
		FROM topic_progress
		WHERE user_id = $1
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapDBError(err, "list_topic_progress")
	}
	defer rows.Close()

	var list []models.TopicProgress
	for rows.Next() {
		var progress models.TopicProgress
		if err := rows.Scan(&progress.UserID, &progress.TopicID, &progress.Percent, &progress.Completed, &progress.UpdatedAt); err != nil {
			return nil, mapDBError(err, "scan_topic_progress")
		}
		list = append(list, progress)
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "list_topic_progress")
	}
	return list, nil
}
