// Package recurrence computes the next firing time of a recurring reminder.
// DAY and WEEK are fixed-length durations; MONTH and YEAR use calendar
// arithmetic, clamping to the last valid day of the target month so that
// e.g. Jan 31 + 1 month never overflows into March.
package recurrence

import (
	"errors"
	"time"

	"github.com/Dauren914/Reminder_Manager/internal/models"
)

var (
	// ErrInvalidFrequency is returned for a unit outside DAY/WEEK/MONTH/YEAR.
	ErrInvalidFrequency = errors.New("recurrence: invalid frequency")

	// ErrInvalidInterval is returned for a non-positive interval.
	ErrInvalidInterval = errors.New("recurrence: interval must be positive")
)

// NextOccurrence returns last + interval×freq. It is a pure function: same
// inputs always produce the same output, and the result is always strictly
// after last.
func NextOccurrence(freq models.Frequency, interval int, last time.Time) (time.Time, error) {
	if interval <= 0 {
		return time.Time{}, ErrInvalidInterval
	}

	switch freq {
	case models.FrequencyDay:
		return last.Add(time.Duration(interval) * 24 * time.Hour), nil
	case models.FrequencyWeek:
		return last.Add(time.Duration(interval) * 7 * 24 * time.Hour), nil
	case models.FrequencyMonth:
		return addMonths(last, interval), nil
	case models.FrequencyYear:
		return addMonths(last, 12*interval), nil
	default:
		return time.Time{}, ErrInvalidFrequency
	}
}

// addMonths advances t by the given number of months, clamping the day of
// month to the length of the target month. time.AddDate is not used because
// it normalizes overflow (Jan 31 + 1 month = Mar 2/3) instead of clamping.
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	total := int(month) - 1 + months
	year += total / 12
	month = time.Month(total%12 + 1)

	if last := daysInMonth(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysInMonth returns the number of days in the given month. Day zero of the
// following month normalizes to the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
