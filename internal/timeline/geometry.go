package timeline

import "time"

// Span is the grid column range a task bar occupies. Columns are
// 1-indexed; column 1 is the fixed label column, so day columns begin
// at 2.
type Span struct {
	StartColumn int
	EndColumn   int
}

// Width is the number of day columns the span covers.
func (s Span) Width() int {
	return s.EndColumn - s.StartColumn
}

// ComputeTaskSpan maps a task's date range onto the day axis. The
// returned bool is false when the task ends before the visible window
// and must not be rendered at all. Tasks extending past the right edge
// are not clipped here; callers may truncate visually.
func ComputeTaskSpan(start, end time.Time, days []DayCell) (Span, bool) {
	if len(days) == 0 {
		return Span{}, false
	}
	startCol := 2 + DaysBetween(days[0].Date, start)
	endCol := startCol + DaysBetween(start, end) + 1
	if endCol <= 1 {
		return Span{}, false
	}
	return Span{StartColumn: startCol, EndColumn: endCol}, true
}
