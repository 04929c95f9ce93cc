// Package leaderboard orders users by a resolved score and assigns dense
// ranks. The ranker is pure: callers resolve the metric (lifetime XP or a
// windowed XP sum) before handing the population over.
package leaderboard

import (
	"sort"

	"learnhub/pkg/models"
)

// Rank sorts users descending by score and assigns dense ranks starting at 1:
// tied scores share a rank and the next distinct score takes rank+1. Ties
// break on user id so repeated calls over the same input always produce the
// same order. Users with zero activity rank at the bottom, tied, never
// excluded.
func Rank(users []models.RankedUser) []models.LeaderboardEntry {
	sorted := make([]models.RankedUser, len(users))
	copy(sorted, users)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].UserID < sorted[j].UserID
	})

	entries := make([]models.LeaderboardEntry, 0, len(sorted))
	rank := 0
	var prevScore int64
	for i, user := range sorted {
		if i == 0 || user.Score != prevScore {
			rank++
			prevScore = user.Score
		}
		entries = append(entries, models.LeaderboardEntry{
			Rank:     rank,
			UserID:   user.UserID,
			Username: user.Username,
			Level:    user.Level,
			Score:    user.Score,
		})
	}
	return entries
}

// FindRank locates one user inside the full ranked population, regardless of
// whatever page slice the client is looking at.
func FindRank(entries []models.LeaderboardEntry, userID string) models.UserRank {
	for _, entry := range entries {
		if entry.UserID == userID {
			return models.UserRank{
				UserID:     userID,
				Rank:       entry.Rank,
				Score:      entry.Score,
				TotalUsers: len(entries),
				Ranked:     true,
			}
		}
	}
	return models.UserRank{UserID: userID, TotalUsers: len(entries)}
}

// Page slices ranked entries for display. Out-of-range offsets yield an empty
// page, never an error.
func Page(entries []models.LeaderboardEntry, offset, limit int) []models.LeaderboardEntry {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(entries) || limit <= 0 {
		return []models.LeaderboardEntry{}
	}
	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[offset:end]
}
