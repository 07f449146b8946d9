// Package timeline implements the calendar-grid layout and gesture engine
// behind the Gantt editor: day-axis generation, task-to-column geometry,
// working-day arithmetic, and the drag/resize state machine.
package timeline

import (
	"math"
	"time"
)

// dateLayouts are the accepted wire formats, tried in order.
var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// Normalize strips the time-of-day component, returning midnight local
// time of the same calendar day. Every date entering this package must be
// normalized so day-difference arithmetic is never polluted by sub-day
// offsets.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDateSafe parses a date-like string, falling back to today on any
// parse failure. The result is always normalized to midnight.
func ParseDateSafe(value string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return Normalize(t)
		}
	}
	return Normalize(time.Now())
}

// DaysBetween counts whole days from a to b (negative when b is earlier).
// Rounding absorbs DST transitions, which make some local days 23 or 25
// hours long.
func DaysBetween(a, b time.Time) int {
	a, b = Normalize(a), Normalize(b)
	return int(math.Round(b.Sub(a).Hours() / 24))
}
