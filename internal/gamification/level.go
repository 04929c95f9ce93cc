// Package gamification holds the pure progression rules: the XP level curve,
// the daily streak tracker and the badge evaluator. Everything here is
// side-effect free; persistence belongs to the callers.
package gamification

// Level thresholds grow quadratically: level L begins at (L-1)^2 * 100 XP.
const xpPerLevelUnit = 100

// LevelOf maps cumulative XP to a level (always >= 1). Negative XP is a
// programmer error and is rejected upstream before deltas are applied, so the
// curve itself only handles non-negative input.
func LevelOf(xpTotal int64) int {
	if xpTotal <= 0 {
		return 1
	}
	return isqrt(xpTotal/xpPerLevelUnit) + 1
}

// XPRequiredForLevel returns the XP threshold where a level begins.
func XPRequiredForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	l := int64(level - 1)
	return l * l * xpPerLevelUnit
}

// XPToNextLevel returns the XP still needed to reach the next level.
// Display-only; never negative given the monotonic threshold formula.
func XPToNextLevel(xpTotal int64) int64 {
	if xpTotal < 0 {
		xpTotal = 0
	}
	next := XPRequiredForLevel(LevelOf(xpTotal) + 1)
	return next - xpTotal
}

// isqrt is an integer square root: floating point sqrt drifts on exact
// squares for large inputs, and the level boundary must be exact.
func isqrt(n int64) int {
	if n <= 0 {
		return 0
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return int(x)
}
