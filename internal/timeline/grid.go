package timeline

import "time"

// ViewMode selects the granularity of the generated day axis.
type ViewMode int

const (
	ViewDay ViewMode = iota
	ViewWeek
	ViewMonth
)

// String returns the lowercase name used in config and the status bar.
func (v ViewMode) String() string {
	switch v {
	case ViewDay:
		return "day"
	case ViewWeek:
		return "week"
	default:
		return "month"
	}
}

// ParseViewMode maps a config string to a ViewMode, defaulting to month.
func ParseViewMode(s string) ViewMode {
	switch s {
	case "day":
		return ViewDay
	case "week":
		return ViewWeek
	default:
		return ViewMonth
	}
}

// Next cycles day -> week -> month -> day.
func (v ViewMode) Next() ViewMode {
	switch v {
	case ViewDay:
		return ViewWeek
	case ViewWeek:
		return ViewMonth
	default:
		return ViewDay
	}
}

// DayCell is one column of the calendar axis.
type DayCell struct {
	Date       time.Time
	DayOfMonth int
	Today      bool
	Weekend    bool
}

// GenerateDays produces the day axis for the window containing ref:
// the full calendar month for ViewMonth, Sunday through Saturday for
// ViewWeek, and a single cell for ViewDay. Pure apart from reading the
// wall clock for the Today flag; regenerate whenever ref or mode changes.
func GenerateDays(ref time.Time, mode ViewMode) []DayCell {
	return generateDaysAt(ref, mode, time.Now())
}

func generateDaysAt(ref time.Time, mode ViewMode, now time.Time) []DayCell {
	ref = Normalize(ref)
	today := Normalize(now)

	var start time.Time
	var count int
	switch mode {
	case ViewDay:
		start, count = ref, 1
	case ViewWeek:
		// Back up to the Sunday on or before ref.
		start = ref.AddDate(0, 0, -int(ref.Weekday()))
		count = 7
	default:
		start = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		count = start.AddDate(0, 1, -1).Day()
	}

	cells := make([]DayCell, 0, count)
	for i := 0; i < count; i++ {
		d := start.AddDate(0, 0, i)
		cells = append(cells, DayCell{
			Date:       d,
			DayOfMonth: d.Day(),
			Today:      d.Equal(today),
			Weekend:    d.Weekday() == time.Saturday || d.Weekday() == time.Sunday,
		})
	}
	return cells
}
