package gamification

import (
	"time"

	"learnhub/pkg/models"
	"learnhub/pkg/utils"
)

// UpdateStreak applies one day of activity to a streak counter.
// Dates are compared on fixed UTC calendar days (the single timezone policy
// for the whole system). Rules, in order:
//
//  1. same UTC day as lastActive  -> no change (idempotent)
//  2. lastActive is yesterday     -> streak + 1
//  3. anything else               -> streak resets to 1
//
// A zero lastActive means first-ever activity and falls into rule 3.
func UpdateStreak(currentStreak int, lastActive, today time.Time) (int, time.Time, error) {
	if today.IsZero() {
		return 0, time.Time{}, models.ErrInvalidDate
	}
	if !lastActive.IsZero() && utils.DayOf(today).Before(utils.DayOf(lastActive)) {
		return 0, time.Time{}, models.ErrInvalidDate
	}

	day := utils.DayOf(today)

	if !lastActive.IsZero() && utils.SameDay(lastActive, today) {
		return currentStreak, utils.DayOf(lastActive), nil
	}
	if !lastActive.IsZero() && utils.IsYesterday(lastActive, today) {
		return currentStreak + 1, day, nil
	}
	return 1, day, nil
}
