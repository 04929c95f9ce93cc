package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/pkg/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func TestUpdateStreak(t *testing.T) {
	tests := []struct {
		name       string
		streak     int
		lastActive time.Time
		today      time.Time
		wantStreak int
		wantDate   time.Time
	}{
		{"same day is a no-op", 5, day("2024-03-10"), day("2024-03-10"), 5, day("2024-03-10")},
		{"consecutive day extends", 5, day("2024-03-10"), day("2024-03-11"), 6, day("2024-03-11")},
		{"gap resets to one", 5, day("2024-03-08"), day("2024-03-11"), 1, day("2024-03-11")},
		{"first ever activity", 0, time.Time{}, day("2024-03-10"), 1, day("2024-03-10")},
		{"same day keeps intraday idempotence", 3, day("2024-03-10").Add(2 * time.Hour), day("2024-03-10").Add(23 * time.Hour), 3, day("2024-03-10")},
		{"midnight boundary counts as next day", 3, day("2024-03-10").Add(23*time.Hour + 59*time.Minute), day("2024-03-11"), 4, day("2024-03-11")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streak, date, err := UpdateStreak(tt.streak, tt.lastActive, tt.today)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStreak, streak)
			assert.Equal(t, tt.wantDate, date)
		})
	}
}

func TestUpdateStreakRejectsBadDates(t *testing.T) {
	_, _, err := UpdateStreak(5, day("2024-03-10"), time.Time{})
	assert.ErrorIs(t, err, models.ErrInvalidDate)

	_, _, err = UpdateStreak(5, day("2024-03-10"), day("2024-03-09"))
	assert.ErrorIs(t, err, models.ErrInvalidDate)
}

func TestUpdateStreakRepeatedSameDay(t *testing.T) {
	streak, date, err := UpdateStreak(1, time.Time{}, day("2024-03-10"))
	require.NoError(t, err)

	// Hammering the same day never inflates the counter.
	for i := 0; i < 10; i++ {
		streak, date, err = UpdateStreak(streak, date, day("2024-03-10"))
		require.NoError(t, err)
	}
	assert.Equal(t, 1, streak)
	assert.Equal(t, day("2024-03-10"), date)
}
