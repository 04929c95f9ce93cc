package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"learnhub/internal/gamification"
	"learnhub/internal/repository"
	"learnhub/pkg/logger"
	"learnhub/pkg/models"
	"learnhub/pkg/utils"
)

// Notifier pushes gamification events to a user's realtime feed. Implemented
// by the websocket hub; a nil notifier drops events silently.
type Notifier interface {
	Notify(userID string, event models.GamificationEvent)
}

// GamificationService applies XP awards and everything that hangs off them:
// level recompute, streak update and badge evaluation, all in one
// transaction per triggering event.
type GamificationService interface {
	Award(ctx context.Context, userID, eventID, source string, xpDelta int) (*models.AwardResult, error)
	DailyLogin(ctx context.Context, userID string) (*models.AwardResult, error)
	GetProgress(ctx context.Context, userID string) (*models.UserProgressState, error)
	ListBadges(ctx context.Context, userID string) ([]models.UserBadge, error)
	Catalog() []models.Badge
}

type gamificationService struct {
	progressRepo repository.ProgressRepository
	xpEvents     repository.XPEventRepository
	badgeRepo    repository.BadgeRepository
	notifier     Notifier
	dailyLoginXP int
	now          func() time.Time
}

// NewGamificationService creates the award pipeline. notifier may be nil.
func NewGamificationService(
	progressRepo repository.ProgressRepository,
	xpEvents repository.XPEventRepository,
	badgeRepo repository.BadgeRepository,
	notifier Notifier,
	dailyLoginXP int,
) GamificationService {
	return &gamificationService{
		progressRepo: progressRepo,
		xpEvents:     xpEvents,
		badgeRepo:    badgeRepo,
		notifier:     notifier,
		dailyLoginXP: dailyLoginXP,
		now:          time.Now,
	}
}

// Award applies one XP-granting event. The event id makes it idempotent: a
// replay commits nothing and comes back with Applied=false. XP increment,
// level recompute, streak update and badge awards commit atomically, so the
// caller either sees all effects or none.
func (s *gamificationService) Award(ctx context.Context, userID, eventID, source string, xpDelta int) (*models.AwardResult, error) {
	if xpDelta < 0 {
		return nil, models.ErrNegativeXPDelta
	}
	if err := s.progressRepo.Ensure(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to ensure progress row: %w", err)
	}

	now := s.now()
	result := &models.AwardResult{XPAwarded: xpDelta, Timestamp: now}

	err := s.progressRepo.WithTransaction(ctx, func(tx pgx.Tx) error {
		applied, err := s.xpEvents.InsertTx(ctx, tx, &models.XPEvent{
			ID:      utils.GenerateEventID(),
			UserID:  userID,
			EventID: eventID,
			Source:  source,
			Amount:  xpDelta,
		})
		if err != nil {
			return err
		}
		if !applied {
			// Duplicate event id: a previous award already covered it.
			return nil
		}
		result.Applied = true

		// Lock the row first so concurrent awards serialize their streak
		// reads. The XP increment itself is commutative SQL.
		before, err := s.progressRepo.GetTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		newTotal, err := s.progressRepo.IncrementXPTx(ctx, tx, userID, xpDelta)
		if err != nil {
			return err
		}
		newLevel := gamification.LevelOf(newTotal)
		if err := s.progressRepo.SetLevelTx(ctx, tx, userID, newLevel); err != nil {
			return err
		}

		newStreak, lastActive, err := gamification.UpdateStreak(before.StreakCount, before.LastActiveDate, now)
		if err != nil {
			return err
		}
		if err := s.progressRepo.UpdateStreakTx(ctx, tx, userID, newStreak, lastActive); err != nil {
			return err
		}

		// Badge criteria run against the stats as of this transaction,
		// never a snapshot taken before the increment.
		stats, err := s.progressRepo.StatsTx(ctx, tx, userID)
		if err != nil {
			return err
		}
		earned, err := s.badgeRepo.EarnedIDsTx(ctx, tx, userID)
		if err != nil {
			return err
		}
		newBadges := gamification.EvaluateBadges(stats, earned)
		for _, badge := range newBadges {
			if err := s.badgeRepo.AwardTx(ctx, tx, userID, badge.ID); err != nil {
				return err
			}
		}

		result.XPTotal = newTotal
		result.Level = newLevel
		result.LeveledUp = newLevel > before.Level
		result.StreakCount = newStreak
		result.NewBadges = newBadges
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Applied {
		return result, nil
	}

	logger.Award(userID, source, xpDelta, len(result.NewBadges))
	s.publish(userID, result)
	return result, nil
}

// DailyLogin grants the login bonus at most once per UTC day. The day itself
// is the idempotency key.
func (s *gamificationService) DailyLogin(ctx context.Context, userID string) (*models.AwardResult, error) {
	day := utils.DayOf(s.now()).Format("2006-01-02")
	eventID := fmt.Sprintf("login-%s-%s", userID, day)
	return s.Award(ctx, userID, eventID, models.XPSourceDailyLogin, s.dailyLoginXP)
}

func (s *gamificationService) GetProgress(ctx context.Context, userID string) (*models.UserProgressState, error) {
	if err := s.progressRepo.Ensure(ctx, userID); err != nil {
		return nil, err
	}
	return s.progressRepo.Get(ctx, userID)
}

func (s *gamificationService) ListBadges(ctx context.Context, userID string) ([]models.UserBadge, error) {
	return s.badgeRepo.ListByUser(ctx, userID)
}

// Catalog exposes the full badge catalog for display.
func (s *gamificationService) Catalog() []models.Badge {
	return gamification.Catalog
}

// publish fans the committed result out to the realtime feed. Events go out
// only after the transaction commits; a rollback never leaks a notification.
func (s *gamificationService) publish(userID string, result *models.AwardResult) {
	if s.notifier == nil {
		return
	}

	s.notifier.Notify(userID, models.GamificationEvent{
		Type:      models.EventXPAwarded,
		UserID:    userID,
		XPAwarded: result.XPAwarded,
		XPTotal:   result.XPTotal,
		Level:     result.Level,
		Timestamp: result.Timestamp,
	})
	if result.LeveledUp {
		s.notifier.Notify(userID, models.GamificationEvent{
			Type:      models.EventLevelUp,
			UserID:    userID,
			Level:     result.Level,
			XPTotal:   result.XPTotal,
			Timestamp: result.Timestamp,
		})
	}
	s.notifier.Notify(userID, models.GamificationEvent{
		Type:        models.EventStreakUpdated,
		UserID:      userID,
		StreakCount: result.StreakCount,
		Timestamp:   result.Timestamp,
	})
	for i := range result.NewBadges {
		badge := result.NewBadges[i]
		s.notifier.Notify(userID, models.GamificationEvent{
			Type:      models.EventBadgeUnlocked,
			UserID:    userID,
			Badge:     &badge,
			Timestamp: result.Timestamp,
		})
	}
}
