// Package recurrence computes when the next occurrence of a recurring goal
// falls due.
package recurrence

import (
	"time"

	"github.com/shafina/squadgoals/internal/models"
)

// NextOccurrence returns the due timestamp that follows current for the given
// frequency. An unknown frequency returns current unchanged; callers validate
// frequencies before storing them, so this branch is a fallback only.
func NextOccurrence(current time.Time, frequency string) time.Time {
	switch frequency {
	case models.FrequencyDaily:
		return current.AddDate(0, 0, 1)
	case models.FrequencyWeekly:
		return current.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		return addMonthClamped(current)
	default:
		return current
	}
}

// addMonthClamped advances one calendar month, keeping the day-of-month and
// clamping to the last valid day when the target month is shorter. Plain
// AddDate(0, 1, 0) normalizes instead (Jan 31 -> Mar 3), which would skip
// February entirely.
func addMonthClamped(t time.Time) time.Time {
	year, month, day := t.Date()
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, t.Location())

	if last := daysIn(firstOfNext.Year(), firstOfNext.Month(), t.Location()); day > last {
		day = last
	}

	return time.Date(firstOfNext.Year(), firstOfNext.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
