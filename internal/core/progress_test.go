package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/internal/progress"
	"learnhub/pkg/models"
)

func newProgressFixture(t *testing.T) (ProgressService, *gamificationFixture) {
	t.Helper()
	gf := newGamificationFixture(t)
	aggregator := progress.NewAggregator(progress.Estimates{HoursPerProgressPercent: 0.05, HoursPerQuizAttempt: 0.25})
	svc := NewProgressService(
		newFakeTopicRepo(models.Topic{ID: "topic-1", Title: "Variables", XPReward: 100}),
		newFakeTopicProgressRepo(),
		&fakeAttemptRepo{},
		gf.svc,
		aggregator,
	)
	return svc, gf
}

func TestUpdateTopicProgressPartial(t *testing.T) {
	svc, _ := newProgressFixture(t)
	ctx := context.Background()

	row, award, err := svc.UpdateTopicProgress(ctx, "user-1", models.UpdateTopicProgressRequest{TopicID: "topic-1", Percent: 40})
	require.NoError(t, err)
	assert.Equal(t, 40, row.Percent)
	assert.False(t, row.Completed)
	assert.Nil(t, award)
}

func TestUpdateTopicProgressCompletionAwardsOnce(t *testing.T) {
	svc, gf := newProgressFixture(t)
	ctx := context.Background()

	row, award, err := svc.UpdateTopicProgress(ctx, "user-1", models.UpdateTopicProgressRequest{TopicID: "topic-1", Percent: 100})
	require.NoError(t, err)
	assert.True(t, row.Completed)
	require.NotNil(t, award)
	assert.True(t, award.Applied)
	assert.Equal(t, 100, award.XPAwarded)

	// Completion re-sent: the progress row stays completed and the award
	// replays as a no-op.
	_, replay, err := svc.UpdateTopicProgress(ctx, "user-1", models.UpdateTopicProgressRequest{TopicID: "topic-1", Percent: 100, Completed: true})
	require.NoError(t, err)
	require.NotNil(t, replay)
	assert.False(t, replay.Applied)

	state, err := gf.svc.GetProgress(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), state.XPTotal)
}

func TestUpdateTopicProgressNeverRegresses(t *testing.T) {
	svc, _ := newProgressFixture(t)
	ctx := context.Background()

	_, _, err := svc.UpdateTopicProgress(ctx, "user-1", models.UpdateTopicProgressRequest{TopicID: "topic-1", Percent: 70})
	require.NoError(t, err)

	row, _, err := svc.UpdateTopicProgress(ctx, "user-1", models.UpdateTopicProgressRequest{TopicID: "topic-1", Percent: 30})
	require.NoError(t, err)
	assert.Equal(t, 70, row.Percent)
}

func TestUpdateTopicProgressUnknownTopic(t *testing.T) {
	svc, _ := newProgressFixture(t)
	_, _, err := svc.UpdateTopicProgress(context.Background(), "user-1", models.UpdateTopicProgressRequest{TopicID: "missing", Percent: 10})
	assert.ErrorIs(t, err, models.ErrTopicNotFound)
}

func TestGetReportEmptyUser(t *testing.T) {
	svc, _ := newProgressFixture(t)

	report, err := svc.GetReport(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, report.Skills, 1)
	assert.Zero(t, report.Skills[0].Score)
	assert.Len(t, report.AccuracyTrend, 7)
	assert.Equal(t, 1, report.Summary.TotalTopics)
	assert.Zero(t, report.Summary.CompletedTopics)
}
