package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"learnhub/pkg/models"
)

// XPEventRepository is the append-only XP ledger. Event ids are unique, which
// is what makes retried or double-submitted awards harmless.
type XPEventRepository interface {
	InsertTx(ctx context.Context, tx pgx.Tx, event *models.XPEvent) (bool, error)
	SumByUserSince(ctx context.Context, since time.Time) (map[string]int64, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.XPEvent, error)
}

type xpEventRepository struct {
	pool *pgxpool.Pool
}

// NewXPEventRepository creates a new PostgreSQL XP ledger repository
func NewXPEventRepository(pool *pgxpool.Pool) XPEventRepository {
	return &xpEventRepository{pool: pool}
}

// InsertTx appends one ledger row. Returns false without error when the event
// id was already recorded, the caller then skips every downstream effect.
func (r *xpEventRepository) InsertTx(ctx context.Context, tx pgx.Tx, event *models.XPEvent) (bool, error) {
	query := `
		INSERT INTO xp_events (id, user_id, event_id, source, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, CURRENT_TIMESTAMP))
		ON CONFLICT (event_id) DO NOTHING
	`
	var createdAt any
	if !event.CreatedAt.IsZero() {
		createdAt = event.CreatedAt
	}
	tag, err := tx.Exec(ctx, query, event.ID, event.UserID, event.EventID, event.Source, event.Amount, createdAt)
	if err != nil {
		return false, mapDBError(err, "insert_xp_event")
	}
	return tag.RowsAffected() > 0, nil
}

// SumByUserSince totals ledger amounts per user from the window boundary on.
// Feeds the weekly leaderboard.
func (r *xpEventRepository) SumByUserSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	query := `
		SELECT user_id, SUM(amount)
		FROM xp_events
		WHERE created_at >= $1
		GROUP BY user_id
	`
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, mapDBError(err, "sum_xp_events")
	}
	defer rows.Close()

	sums := make(map[string]int64)
	for rows.Next() {
		var userID string
		var sum int64
		if err := rows.Scan(&userID, &sum); err != nil {
			return nil, mapDBError(err, "scan_xp_sum")
		}
		sums[userID] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "sum_xp_events")
	}
	return sums, nil
}

// ListByUser returns the most recent ledger rows for one user.
func (r *xpEventRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.XPEvent, error) {
	query := `
		SELECT id, user_id, event_id, source, amount, created_at
		FROM xp_events
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, mapDBError(err, "list_xp_events")
	}
	defer rows.Close()

	var events []models.XPEvent
	for rows.Next() {
		var event models.XPEvent
		if err := rows.Scan(&event.ID, &event.UserID, &event.EventID, &event.Source, &event.Amount, &event.CreatedAt); err != nil {
			return nil, mapDBError(err, "scan_xp_event")
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "list_xp_events")
	}
	return events, nil
}
