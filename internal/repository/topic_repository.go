package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"learnhub/pkg/models"
)

// TopicRepository serves the topic catalog.
type TopicRepository interface {
	Create(ctx context.Context, topic *models.Topic) error
	GetByID(ctx context.Context, id string) (*models.Topic, error)
	List(ctx context.Context) ([]models.Topic, error)
}

type topicRepository struct {
	pool *pgxpool.Pool
}

// NewTopicRepository creates a new PostgreSQL topic repository
func NewTopicRepository(pool *pgxpool.Pool) TopicRepository {
	return &topicRepository{pool: pool}
}

func (r *topicRepository) Create(ctx context.Context, topic *models.Topic) error {
	query := `
		INSERT INTO topics (id, title, description, xp_reward, prerequisites)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.pool.QueryRow(ctx, query,
		topic.ID,
		topic.Title,
		topic.Description,
		topic.XPReward,
		topic.Prerequisites,
	).Scan(&topic.CreatedAt)

	if err != nil {
		return mapDBError(err, "create_topic")
	}
	return nil
}

func (r *topicRepository) GetByID(ctx context.Context, id string) (*models.Topic, error) {
	query := `
		SELECT id, title, description, xp_reward, prerequisites, created_at
		FROM topics
		WHERE id = $1
	`
	topic := &models.Topic{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&topic.ID,
		&topic.Title,
		&topic.Description,
		&topic.XPReward,
		&topic.Prerequisites,
		&topic.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewHTTPError(models.ErrCodeNotFound, "topic not found", 404, err)
	}
	if err != nil {
		return nil, mapDBError(err, "get_topic")
	}
	return topic, nil
}

func (r *topicRepository) List(ctx context.Context) ([]models.Topic, error) {
	query := `
		SELECT id, title, description, xp_reward, prerequisites, created_at
		FROM topics
		ORDER BY created_at, id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, mapDBError(err, "list_topics")
	}
	defer rows.Close()

	var topics []models.Topic
	for rows.Next() {
		var topic models.Topic
		if err := rows.Scan(&topic.ID, &topic.Title, &topic.Description, &topic.XPReward, &topic.Prerequisites, &topic.CreatedAt); err != nil {
			return nil, mapDBError(err, "scan_topic")
		}
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "list_topics")
	}
	return topics, nil
}
