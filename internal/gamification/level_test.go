package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelOf(t *testing.T) {
	tests := []struct {
		name    string
		xp      int64
		want    int
	}{
		{"zero xp starts at level 1", 0, 1},
		{"just below level 2", 99, 1},
		{"level 2 boundary", 100, 2},
		{"mid level 2", 250, 2},
		{"level 3 boundary", 400, 3},
		{"just below level 3", 399, 2},
		{"level 4 boundary", 900, 4},
		{"level 11 boundary", 10000, 11},
		{"large total", 1000000, 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LevelOf(tt.xp))
		})
	}
}

func TestLevelOfNonDecreasing(t *testing.T) {
	prev := 0
	for xp := int64(0); xp <= 50000; xp += 37 {
		level := LevelOf(xp)
		assert.GreaterOrEqual(t, level, 1)
		assert.GreaterOrEqual(t, level, prev, "level regressed at xp=%d", xp)
		prev = level
	}
}

func TestXPRequiredForLevel(t *testing.T) {
	assert.Equal(t, int64(0), XPRequiredForLevel(1))
	assert.Equal(t, int64(100), XPRequiredForLevel(2))
	assert.Equal(t, int64(400), XPRequiredForLevel(3))
	assert.Equal(t, int64(8100), XPRequiredForLevel(10))

	// Level boundaries round-trip through LevelOf
	for level := 1; level <= 50; level++ {
		threshold := XPRequiredForLevel(level)
		assert.Equal(t, level, LevelOf(threshold), "threshold of level %d", level)
		if threshold > 0 {
			assert.Equal(t, level-1, LevelOf(threshold-1))
		}
	}
}

func TestXPToNextLevel(t *testing.T) {
	assert.Equal(t, int64(100), XPToNextLevel(0))
	assert.Equal(t, int64(1), XPToNextLevel(99))
	assert.Equal(t, int64(300), XPToNextLevel(100))

	for xp := int64(0); xp <= 20000; xp += 53 {
		assert.GreaterOrEqual(t, XPToNextLevel(xp), int64(0), "negative remainder at xp=%d", xp)
	}
}
