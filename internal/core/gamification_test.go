package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/pkg/models"
)

type gamificationFixture struct {
	svc      *gamificationService
	progress *fakeProgressRepo
	events   *fakeXPEventRepo
	badges   *fakeBadgeRepo
	notifier *fakeNotifier
	clock    *time.Time
}

func newGamificationFixture(t *testing.T) *gamificationFixture {
	t.Helper()
	progress := newFakeProgressRepo()
	events := newFakeXPEventRepo()
	badges := newFakeBadgeRepo()
	notifier := &fakeNotifier{}

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := NewGamificationService(progress, events, badges, notifier, 10).(*gamificationService)
	svc.now = func() time.Time { return now }

	return &gamificationFixture{svc: svc, progress: progress, events: events, badges: badges, notifier: notifier, clock: &now}
}

func TestAwardAppliesAllEffects(t *testing.T) {
	f := newGamificationFixture(t)
	ctx := context.Background()

	result, err := f.svc.Award(ctx, "user-1", "evt-1", models.XPSourceQuizCompleted, 150)
	require.NoError(t, err)

	assert.True(t, result.Applied)
	assert.Equal(t, 150, result.XPAwarded)
	assert.Equal(t, int64(150), result.XPTotal)
	assert.Equal(t, 2, result.Level) // 150 XP crosses the 100 XP boundary
	assert.True(t, result.LeveledUp)
	assert.Equal(t, 1, result.StreakCount)

	state, err := f.svc.GetProgress(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(150), state.XPTotal)
	assert.Equal(t, 2, state.Level)
	assert.Equal(t, 1, state.StreakCount)
}

func TestAwardDuplicateEventIsNoOp(t *testing.T) {
	f := newGamificationFixture(t)
	ctx := context.Background()

	first, err := f.svc.Award(ctx, "user-1", "evt-1", models.XPSourceQuizCompleted, 50)
	require.NoError(t, err)
	require.True(t, first.Applied)

	replay, err := f.svc.Award(ctx, "user-1", "evt-1", models.XPSourceQuizCompleted, 50)
	require.NoError(t, err)
	assert.False(t, replay.Applied)

	state, err := f.svc.GetProgress(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), state.XPTotal)

	// Only the first award notified anyone.
	assert.Len(t, f.notifier.byType(models.EventXPAwarded), 1)
}

func TestAwardRejectsNegativeDelta(t *testing.T) {
	f := newGamificationFixture(t)

	_, err := f.svc.Award(context.Background(), "user-1", "evt-1", models.XPSourceQuizCompleted, -5)
	assert.ErrorIs(t, err, models.ErrNegativeXPDelta)
}

func TestAwardStreakAcrossDays(t *testing.T) {
	f := newGamificationFixture(t)
	ctx := context.Background()

	_, err := f.svc.Award(ctx, "user-1", "evt-1", models.XPSourceQuizCompleted, 10)
	require.NoError(t, err)

	// Same day: streak unchanged.
	same, err := f.svc.Award(ctx, "user-1", "evt-2", models.XPSourceQuizCompleted, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, same.StreakCount)

	// Next day extends.
	*f.clock = f.clock.AddDate(0, 0, 1)
	next, err := f.svc.Award(ctx, "user-1", "evt-3", models.XPSourceQuizCompleted, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, next.StreakCount)

	// Three-day gap resets.
	*f.clock = f.clock.AddDate(0, 0, 3)
	reset, err := f.svc.Award(ctx, "user-1", "evt-4", models.XPSourceQuizCompleted, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, reset.StreakCount)
}

func TestAwardUnlocksBadges(t *testing.T) {
	f := newGamificationFixture(t)
	ctx := context.Background()

	result, err := f.svc.Award(ctx, "user-1", "evt-1", models.XPSourceQuizCompleted, 1000)
	require.NoError(t, err)

	ids := make([]string, 0, len(result.NewBadges))
	for _, badge := range result.NewBadges {
		ids = append(ids, badge.ID)
	}
	assert.Contains(t, ids, "xp-1000")

	unlocked := f.notifier.byType(models.EventBadgeUnlocked)
	require.Len(t, unlocked, len(result.NewBadges))

	// Re-award under a new event id: thresholds already badged stay quiet.
	again, err := f.svc.Award(ctx, "user-1", "evt-2", models.XPSourceQuizCompleted, 1)
	require.NoError(t, err)
	assert.Empty(t, again.NewBadges)
}

func TestAwardLevelUpEvent(t *testing.T) {
	f := newGamificationFixture(t)
	ctx := context.Background()

	_, err := f.svc.Award(ctx, "user-1", "evt-1", models.XPSourceQuizCompleted, 99)
	require.NoError(t, err)
	assert.Empty(t, f.notifier.byType(models.EventLevelUp))

	_, err = f.svc.Award(ctx, "user-1", "evt-2", models.XPSourceQuizCompleted, 1)
	require.NoError(t, err)

	levelUps := f.notifier.byType(models.EventLevelUp)
	require.Len(t, levelUps, 1)
	assert.Equal(t, 2, levelUps[0].Level)
}

func TestDailyLoginOncePerDay(t *testing.T) {
	f := newGamificationFixture(t)
	ctx := context.Background()

	first, err := f.svc.DailyLogin(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, first.Applied)
	assert.Equal(t, 10, first.XPAwarded)

	second, err := f.svc.DailyLogin(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, second.Applied)

	// New day, new bonus.
	*f.clock = f.clock.AddDate(0, 0, 1)
	tomorrow, err := f.svc.DailyLogin(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, tomorrow.Applied)
}
