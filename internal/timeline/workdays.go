package timeline

import "time"

// WorkingDayDifference counts the days in the inclusive range [start, end]
// that are not Saturday or Sunday. The arguments may be given in either
// order. Used for duration badges only; bar geometry uses raw calendar
// days (see ComputeTaskSpan).
func WorkingDayDifference(start, end time.Time) int {
	s, e := Normalize(start), Normalize(end)
	if s.After(e) {
		s, e = e, s
	}
	count := 0
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}
