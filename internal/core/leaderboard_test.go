package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/pkg/models"
)

func TestLeaderboardGlobal(t *testing.T) {
	progress := newFakeProgressRepo()
	events := newFakeXPEventRepo()
	ctx := context.Background()

	progress.users["u1"] = "alice"
	progress.users["u2"] = "bob"
	progress.users["u3"] = "carol"
	for _, id := range []string{"u1", "u2", "u3"} {
		require.NoError(t, progress.Ensure(ctx, id))
	}
	progress.state["u1"].XPTotal = 1200
	progress.state["u2"].XPTotal = 300

	svc := NewLeaderboardService(progress, events, nil, time.Minute)

	response, err := svc.Get(ctx, models.MetricXP, "u3", 0, 10)
	require.NoError(t, err)

	assert.Equal(t, models.MetricXP, response.Metric)
	assert.Equal(t, 3, response.Total)
	require.Len(t, response.Entries, 3)
	assert.Equal(t, "u1", response.Entries[0].UserID)
	assert.Equal(t, 1, response.Entries[0].Rank)

	// Zero-activity user still ranks, and the requester's rank comes back
	// regardless of page.
	require.NotNil(t, response.Me)
	assert.True(t, response.Me.Ranked)
	assert.Equal(t, 3, response.Me.Rank)
}

func TestLeaderboardWeeklyUsesLedgerWindow(t *testing.T) {
	progress := newFakeProgressRepo()
	events := newFakeXPEventRepo()
	ctx := context.Background()

	progress.users["u1"] = "alice"
	progress.users["u2"] = "bob"
	for _, id := range []string{"u1", "u2"} {
		require.NoError(t, progress.Ensure(ctx, id))
	}
	// Lifetime XP favors u1, but all of it predates this week.
	progress.state["u1"].XPTotal = 5000
	progress.state["u2"].XPTotal = 100

	now := time.Now()
	_, err := events.InsertTx(ctx, nil, &models.XPEvent{ID: "1", UserID: "u1", EventID: "old", Source: models.XPSourceQuizCompleted, Amount: 5000, CreatedAt: now.AddDate(0, 0, -30)})
	require.NoError(t, err)
	_, err = events.InsertTx(ctx, nil, &models.XPEvent{ID: "2", UserID: "u2", EventID: "recent", Source: models.XPSourceQuizCompleted, Amount: 100, CreatedAt: now})
	require.NoError(t, err)

	svc := NewLeaderboardService(progress, events, nil, time.Minute)

	response, err := svc.Get(ctx, models.MetricWeeklyXP, "", 0, 10)
	require.NoError(t, err)
	require.Len(t, response.Entries, 2)

	assert.Equal(t, "u2", response.Entries[0].UserID)
	assert.Equal(t, int64(100), response.Entries[0].Score)
	assert.Equal(t, "u1", response.Entries[1].UserID)
	assert.Equal(t, int64(0), response.Entries[1].Score)
	assert.Nil(t, response.Me)
}

func TestLeaderboardPaging(t *testing.T) {
	progress := newFakeProgressRepo()
	ctx := context.Background()

	for _, id := range []string{"u1", "u2", "u3", "u4"} {
		progress.users[id] = "user " + id
		require.NoError(t, progress.Ensure(ctx, id))
	}

	svc := NewLeaderboardService(progress, newFakeXPEventRepo(), nil, time.Minute)

	response, err := svc.Get(ctx, models.MetricXP, "", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, response.Total)
	assert.Len(t, response.Entries, 2)
}
