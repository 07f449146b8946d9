package server

import (
	"errors"
	"time"
)

const dateLayout = "2006-01-02"

var (
	errBadDate       = errors.New("dates must be YYYY-MM-DD")
	errInvertedDates = errors.New("start_date must not be after end_date")
)

// parseDateRange validates and parses a start/end date pair off the wire.
func parseDateRange(start, end string) (time.Time, time.Time, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, errBadDate
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, errBadDate
	}
	if s.After(e) {
		return time.Time{}, time.Time{}, errInvertedDates
	}
	return s, e, nil
}

// validPriority reports whether p is in the 1 (critical) to 5 (optional) range.
func validPriority(p int) bool {
	return p >= 1 && p <= 5
}

// validProgress reports whether p is a percentage.
func validProgress(p int) bool {
	return p >= 0 && p <= 100
}
