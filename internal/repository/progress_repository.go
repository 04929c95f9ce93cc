package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"learnhub/pkg/models"
)

// ProgressRepository persists the per-user gamification aggregate. The Tx
// variants run inside an award transaction so XP, streak and badge effects
// commit or roll back together.
type ProgressRepository interface {
	Ensure(ctx context.Context, userID string) error
	Get(ctx context.Context, userID string) (*models.UserProgressState, error)

	GetTx(ctx context.Context, tx pgx.Tx, userID string) (*models.UserProgressState, error)
	IncrementXPTx(ctx context.Context, tx pgx.Tx, userID string, delta int) (int64, error)
	SetLevelTx(ctx context.Context, tx pgx.Tx, userID string, level int) error
	UpdateStreakTx(ctx context.Context, tx pgx.Tx, userID string, streak int, lastActive time.Time) error
	StatsTx(ctx context.Context, tx pgx.Tx, userID string) (models.UserStats, error)

	ListRanked(ctx context.Context) ([]models.RankedUser, error)

	WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type progressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new PostgreSQL progress repository
func NewProgressRepository(pool *pgxpool.Pool) ProgressRepository {
	return &progressRepository{pool: pool}
}

// Ensure creates the default progress row on first activity. Replays are
// no-ops via the primary key conflict.
func (r *progressRepository) Ensure(ctx context.Context, userID string) error {
	query := `
		INSERT INTO user_progress (user_id, xp_total, level, streak_count)
		VALUES ($1, 0, 1, 0)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, query, userID); err != nil {
		return mapDBError(err, "ensure_progress")
	}
	return nil
}

func (r *progressRepository) Get(ctx context.Context, userID string) (*models.UserProgressState, error) {
	return scanProgress(r.pool.QueryRow(ctx, progressSelect, userID))
}

// GetTx reads the row inside an award transaction, locking it so two
// concurrent awards for the same user serialize instead of racing on the
// streak fields.
func (r *progressRepository) GetTx(ctx context.Context, tx pgx.Tx, userID string) (*models.UserProgressState, error) {
	return scanProgress(tx.QueryRow(ctx, progressSelect+` FOR UPDATE`, userID))
}

const progressSelect = `
	SELECT user_id, xp_total, level, streak_count, COALESCE(last_active_date, 'epoch'::date), updated_at
	FROM user_progress
	WHERE user_id = $1`

func scanProgress(row pgx.Row) (*models.UserProgressState, error) {
	state := &models.UserProgressState{}
	err := row.Scan(
		&state.UserID,
		&state.XPTotal,
		&state.Level,
		&state.StreakCount,
		&state.LastActiveDate,
		&state.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewHTTPError(models.ErrCodeNotFound, "progress not found", 404, err)
	}
	if err != nil {
		return nil, mapDBError(err, "get_progress")
	}
	return state, nil
}

// IncrementXPTx adds a delta to the XP counter and returns the new total.
// The increment is commutative in SQL, so two concurrent awards for the same
// user both land; neither overwrites the other from a stale read.
func (r *progressRepository) IncrementXPTx(ctx context.Context, tx pgx.Tx, userID string, delta int) (int64, error) {
	query := `
		UPDATE user_progress
		SET xp_total = xp_total + $2, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1
		RETURNING xp_total
	`
	var total int64
	if err := tx.QueryRow(ctx, query, userID, delta).Scan(&total); err != nil {
		return 0, mapDBError(err, "increment_xp")
	}
	return total, nil
}

// SetLevelTx stores the level recomputed from the post-increment total.
func (r *progressRepository) SetLevelTx(ctx context.Context, tx pgx.Tx, userID string, level int) error {
	if _, err := tx.Exec(ctx, `UPDATE user_progress SET level = $2 WHERE user_id = $1`, userID, level); err != nil {
		return mapDBError(err, "set_level")
	}
	return nil
}

func (r *progressRepository) UpdateStreakTx(ctx context.Context, tx pgx.Tx, userID string, streak int, lastActive time.Time) error {
	query := `
		UPDATE user_progress
		SET streak_count = $2, last_active_date = $3, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1
	`
	if _, err := tx.Exec(ctx, query, userID, streak, lastActive); err != nil {
		return mapDBError(err, "update_streak")
	}
	return nil
}

// StatsTx assembles the badge-evaluation snapshot inside the transaction,
// after the XP increment, so a concurrent award never evaluates against a
// stale total.
func (r *progressRepository) StatsTx(ctx context.Context, tx pgx.Tx, userID string) (models.UserStats, error) {
	query := `
		SELECT
			p.xp_total,
			p.level,
			p.streak_count,
			(SELECT COUNT(*) FROM topic_progress t WHERE t.user_id = p.user_id AND t.completed),
			(SELECT COUNT(*) FROM quiz_attempts a WHERE a.user_id = p.user_id),
			(SELECT COUNT(*) FROM quiz_attempts a WHERE a.user_id = p.user_id AND a.passed),
			(SELECT COALESCE(MAX(a.score_percent), 0) FROM quiz_attempts a WHERE a.user_id = p.user_id)
		FROM user_progress p
		WHERE p.user_id = $1
	`
	stats := models.UserStats{UserID: userID}
	err := tx.QueryRow(ctx, query, userID).Scan(
		&stats.XPTotal,
		&stats.Level,
		&stats.StreakCount,
		&stats.TopicsCompleted,
		&stats.QuizAttempts,
		&stats.QuizzesPassed,
		&stats.BestScorePercent,
	)
	if err != nil {
		return models.UserStats{}, mapDBError(err, "get_stats")
	}
	return stats, nil
}

// ListRanked returns the whole population with lifetime XP as the score.
// Users without a progress row yet rank with zero.
func (r *progressRepository) ListRanked(ctx context.Context) ([]models.RankedUser, error) {
	query := `
		SELECT u.id, u.username, COALESCE(p.level, 1), COALESCE(p.xp_total, 0)
		FROM users u
		LEFT JOIN user_progress p ON p.user_id = u.id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, mapDBError(err, "list_ranked")
	}
	defer rows.Close()

	var users []models.RankedUser
	for rows.Next() {
		var user models.RankedUser
		if err := rows.Scan(&user.UserID, &user.Username, &user.Level, &user.Score); err != nil {
			return nil, mapDBError(err, "scan_ranked")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "list_ranked")
	}
	return users, nil
}

// WithTransaction executes fn within a single database transaction.
func (r *progressRepository) WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapDBError(err, "begin_transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
