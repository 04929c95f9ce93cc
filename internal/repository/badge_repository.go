package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"learnhub/pkg/models"
)

// BadgeRepository persists badge awards. The catalog itself lives in code;
// the badges table mirrors it so earned rows can join against names.
type BadgeRepository interface {
	SeedCatalog(ctx context.Context, catalog []models.Badge) error
	EarnedIDsTx(ctx context.Context, tx pgx.Tx, userID string) (map[string]bool, error)
	AwardTx(ctx context.Context, tx pgx.Tx, userID, badgeID string) error
	ListByUser(ctx context.Context, userID string) ([]models.UserBadge, error)
}

type badgeRepository struct {
	pool *pgxpool.Pool
}

// NewBadgeRepository creates a new PostgreSQL badge repository
func NewBadgeRepository(pool *pgxpool.Pool) BadgeRepository {
	return &badgeRepository{pool: pool}
}

// SeedCatalog mirrors the in-code catalog into the badges table at startup.
// Re-seeding updates display fields in place.
func (r *badgeRepository) SeedCatalog(ctx context.Context, catalog []models.Badge) error {
	query := `
		INSERT INTO badges (id, name, description, icon, criterion, threshold)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			icon = EXCLUDED.icon,
			criterion = EXCLUDED.criterion,
			threshold = EXCLUDED.threshold
	`
	for _, badge := range catalog {
		if _, err := r.pool.Exec(ctx, query, badge.ID, badge.Name, badge.Description, badge.Icon, string(badge.Criterion), badge.Threshold); err != nil {
			return mapDBError(err, "seed_badges")
		}
	}
	return nil
}

// EarnedIDsTx reads the user's earned set inside an award transaction.
func (r *badgeRepository) EarnedIDsTx(ctx context.Context, tx pgx.Tx, userID string) (map[string]bool, error) {
	rows, err := tx.Query(ctx, `SELECT badge_id FROM user_badges WHERE user_id = $1`, userID)
	if err != nil {
		return nil, mapDBError(err, "list_earned_badges")
	}
	defer rows.Close()

	earned := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, mapDBError(err, "scan_earned_badge")
		}
		earned[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "list_earned_badges")
	}
	return earned, nil
}

// AwardTx records one badge award. Granting an already-earned badge is a
// no-op, never an error.
func (r *badgeRepository) AwardTx(ctx context.Context, tx pgx.Tx, userID, badgeID string) error {
	query := `
		INSERT INTO user_badges (user_id, badge_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, badge_id) DO NOTHING
	`
	if _, err := tx.Exec(ctx, query, userID, badgeID); err != nil {
		return mapDBError(err, "award_badge")
	}
	return nil
}

// ListByUser returns earned badges joined with their catalog rows.
func (r *badgeRepository) ListByUser(ctx context.Context, userID string) ([]models.UserBadge, error) {
	query := `
		SELECT ub.user_id, ub.badge_id, ub.earned_at, b.name, b.description, b.icon, b.criterion, b.threshold
		FROM user_badges ub
		JOIN badges b ON b.id = ub.badge_id
		WHERE ub.user_id = $1
		ORDER BY ub.earned_at
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapDBError(err, "list_user_badges")
	}
	defer rows.Close()

	var earned []models.UserBadge
	for rows.Next() {
		var ub models.UserBadge
		badge := models.Badge{}
		var criterion string
		if err := rows.Scan(&ub.UserID, &ub.BadgeID, &ub.EarnedAt, &badge.Name, &badge.Description, &badge.Icon, &criterion, &badge.Threshold); err != nil {
			return nil, mapDBError(err, "scan_user_badge")
		}
		badge.ID = ub.BadgeID
		badge.Criterion = models.BadgeCriterion(criterion)
		ub.Badge = &badge
		earned = append(earned, ub)
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "list_user_badges")
	}
	return earned, nil
}
