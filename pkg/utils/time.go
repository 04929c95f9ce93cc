package utils

import (
	"time"
)

// All streak and trend arithmetic runs on fixed UTC calendar days. The one
// timezone policy lives here; callers never do their own day math.

// DayOf truncates a timestamp to its UTC calendar day (midnight UTC)
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same UTC calendar day
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}

// IsYesterday reports whether a falls exactly one UTC day before b
func IsYesterday(a, b time.Time) bool {
	return DayOf(a).AddDate(0, 0, 1).Equal(DayOf(b))
}

// WeekStart returns the Monday 00:00 UTC boundary of the week containing t.
// Weekly leaderboard windows reset here.
func WeekStart(t time.Time) time.Time {
	day := DayOf(t)
	weekday := int(day.Weekday())
	if weekday == 0 { // Sunday wraps to previous Monday
		weekday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1))
}

// DayLabel formats a day for chart axes (e.g. "Mar 10")
func DayLabel(t time.Time) string {
	return t.UTC().Format("Jan 2")
}
