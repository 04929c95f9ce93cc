package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"learnhub/pkg/models"
)

// QuizRepository loads quiz definitions. Questions live in a JSONB column so
// a definition is always read atomically with its answer key.
type QuizRepository interface {
	Create(ctx context.Context, quiz *models.QuizDefinition) error
	GetByID(ctx context.Context, id string) (*models.QuizDefinition, error)
	ListByTopic(ctx context.Context, topicID string) ([]models.QuizSummary, error)
	List(ctx context.Context) ([]models.QuizSummary, error)
}

type quizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new PostgreSQL quiz repository
func NewQuizRepository(pool *pgxpool.Pool) QuizRepository {
	return &quizRepository{pool: pool}
}

func (r *quizRepository) Create(ctx context.Context, quiz *models.QuizDefinition) error {
	if err := quiz.Validate(); err != nil {
		return models.NewHTTPError(models.ErrCodeValidation, err.Error(), 400, err)
	}

	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return models.NewHTTPError(models.ErrCodeInternal, "encode questions", 500, err)
	}

	query := `
		INSERT INTO quizzes (id, topic_id, title, questions, time_limit_seconds, xp_reward, passing_score_percent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err = r.pool.QueryRow(ctx, query,
		quiz.ID,
		quiz.TopicID,
		quiz.Title,
		questions,
		quiz.TimeLimitSeconds,
		quiz.XPReward,
		quiz.PassingScorePercent,
	).Scan(&quiz.CreatedAt)

	if err != nil {
		return mapDBError(err, "create_quiz")
	}
	return nil
}

func (r *quizRepository) GetByID(ctx context.Context, id string) (*models.QuizDefinition, error) {
	query := `
		SELECT id, topic_id, title, questions, time_limit_seconds, xp_reward, passing_score_percent, created_at
		FROM quizzes
		WHERE id = $1
	`
	quiz := &models.QuizDefinition{}
	var questions []byte

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&quiz.ID,
		&quiz.TopicID,
		&quiz.Title,
		&questions,
		&quiz.TimeLimitSeconds,
		&quiz.XPReward,
		&quiz.PassingScorePercent,
		&quiz.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewHTTPError(models.ErrCodeNotFound, "quiz not found", 404, err)
	}
	if err != nil {
		return nil, mapDBError(err, "get_quiz")
	}

	if err := json.Unmarshal(questions, &quiz.Questions); err != nil {
		return nil, models.NewHTTPError(models.ErrCodeInternal, "decode questions", 500, err)
	}
	return quiz, nil
}

func (r *quizRepository) ListByTopic(ctx context.Context, topicID string) ([]models.QuizSummary, error) {
	return r.list(ctx, `WHERE topic_id = $1`, topicID)
}

func (r *quizRepository) List(ctx context.Context) ([]models.QuizSummary, error) {
	return r.list(ctx, "")
}

func (r *quizRepository) list(ctx context.Context, where string, args ...any) ([]models.QuizSummary, error) {
	query := `
		SELECT id, topic_id, title, jsonb_array_length(questions), time_limit_seconds, xp_reward, passing_score_percent
		FROM quizzes ` + where + `
		ORDER BY created_at, id
	`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapDBError(err, "list_quizzes")
	}
	defer rows.Close()

	var summaries []models.QuizSummary
	for rows.Next() {
		var summary models.QuizSummary
		err := rows.Scan(
			&summary.ID,
			&summary.TopicID,
			&summary.Title,
			&summary.QuestionCount,
			&summary.TimeLimitSeconds,
			&summary.XPReward,
			&summary.PassingScorePercent,
		)
		if err != nil {
			return nil, mapDBError(err, "scan_quiz")
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "list_quizzes")
	}
	return summaries, nil
}
