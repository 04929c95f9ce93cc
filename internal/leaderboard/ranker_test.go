package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/pkg/models"
)

func population() []models.RankedUser {
	return []models.RankedUser{
		{UserID: "u3", Username: "carol", Level: 4, Score: 900},
		{UserID: "u1", Username: "alice", Level: 5, Score: 1200},
		{UserID: "u4", Username: "dave", Level: 4, Score: 900},
		{UserID: "u2", Username: "bob", Level: 2, Score: 300},
		{UserID: "u5", Username: "erin", Level: 1, Score: 0},
	}
}

func TestRankDense(t *testing.T) {
	entries := Rank(population())
	require.Len(t, entries, 5)

	assert.Equal(t, "u1", entries[0].UserID)
	assert.Equal(t, 1, entries[0].Rank)

	// 900-point tie shares rank 2, ordered by user id.
	assert.Equal(t, "u3", entries[1].UserID)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "u4", entries[2].UserID)
	assert.Equal(t, 2, entries[2].Rank)

	// Dense: next distinct score takes rank 3, not 4.
	assert.Equal(t, "u2", entries[3].UserID)
	assert.Equal(t, 3, entries[3].Rank)

	// Zero activity still ranks, at the bottom.
	assert.Equal(t, "u5", entries[4].UserID)
	assert.Equal(t, 4, entries[4].Rank)
}

func TestRankDeterministicUnderTies(t *testing.T) {
	first := Rank(population())
	second := Rank(population())
	assert.Equal(t, first, second)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	users := population()
	Rank(users)
	assert.Equal(t, "u3", users[0].UserID)
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}

func TestFindRank(t *testing.T) {
	entries := Rank(population())

	me := FindRank(entries, "u2")
	assert.True(t, me.Ranked)
	assert.Equal(t, 3, me.Rank)
	assert.Equal(t, int64(300), me.Score)
	assert.Equal(t, 5, me.TotalUsers)

	missing := FindRank(entries, "nobody")
	assert.False(t, missing.Ranked)
	assert.Zero(t, missing.Rank)
	assert.Equal(t, 5, missing.TotalUsers)
}

func TestFindRankOutsidePage(t *testing.T) {
	entries := Rank(population())
	page := Page(entries, 0, 2)
	require.Len(t, page, 2)

	// Rank lookup runs over the full population, not the page.
	me := FindRank(entries, "u5")
	assert.True(t, me.Ranked)
	assert.Equal(t, 4, me.Rank)
}

func TestPageBounds(t *testing.T) {
	entries := Rank(population())

	assert.Len(t, Page(entries, 0, 3), 3)
	assert.Len(t, Page(entries, 3, 10), 2)
	assert.Empty(t, Page(entries, 99, 10))
	assert.Empty(t, Page(entries, 0, 0))
	assert.Len(t, Page(entries, -5, 2), 2)
}
