// Package workday counts working days (Mon-Fri minus public holidays)
// in an inclusive date range.
package workday

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("start date is after end date")

// IsWeekday reports whether t falls on Monday through Friday.
func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Count returns the number of weekdays in [start, end], minus any holiday
// that falls on a weekday inside the range. Only the calendar date of each
// argument matters. The result is never negative; ranges are short
// (days, not years) so the day-by-day walk is fine.
func Count(start, end time.Time, holidays []time.Time) (int, error) {
	start = truncate(start)
	end = truncate(end)
	if start.After(end) {
		return 0, ErrInvalidRange
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWeekday(d) {
			count++
		}
	}

	seen := make(map[time.Time]struct{}, len(holidays))
	for _, h := range holidays {
		h = truncate(h)
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		if !h.Before(start) && !h.After(end) && IsWeekday(h) {
			count--
		}
	}

	if count < 0 {
		count = 0
	}
	return count, nil
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
