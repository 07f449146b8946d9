package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/launchforge/phaseline/internal/timeline"
)

// labelWidth is the fixed width of the left-hand name column. Day
// columns start immediately after it.
const labelWidth = 24

// gridTop is the number of header lines above the first grid row
// (title, window label, day axis)
const gridTop = 3

const dateEntry = "2006-01-02"

// metricsFor returns the gesture geometry for a view mode. Column
// widths are chosen so a month fits in a standard terminal.
func metricsFor(mode timeline.ViewMode) timeline.Metrics {
	w := 2
	switch mode {
	case timeline.ViewDay:
		w = 24
	case timeline.ViewWeek:
		w = 9
	}
	return timeline.Metrics{
		LabelWidth:  labelWidth,
		ColumnWidth: w,
		Overscan:    timeline.DefaultOverscan,
	}
}

// colX returns the left screen column of day index idx
func colX(idx int, mode timeline.ViewMode) int {
	return labelWidth + idx*metricsFor(mode).ColumnWidth
}

// barBounds returns the inclusive screen-column range of a task bar,
// clipped to the visible grid. ok is false when nothing is visible.
func barBounds(span timeline.Span, mode timeline.ViewMode, dayCount int) (int, int, bool) {
	cw := metricsFor(mode).ColumnWidth
	// Span columns are 1-indexed with column 1 the label, so day index
	// is column-2.
	startIdx := span.StartColumn - 2
	endIdx := span.EndColumn - 2 // exclusive
	if startIdx < 0 {
		startIdx = 0
	}
	if endIdx > dayCount {
		endIdx = dayCount
	}
	if endIdx <= startIdx {
		return 0, 0, false
	}
	left := labelWidth + startIdx*cw
	right := labelWidth + endIdx*cw - 1
	return left, right, true
}

// windowLabel describes the visible window for the header line
func windowLabel(days []timeline.DayCell, mode timeline.ViewMode) string {
	if len(days) == 0 {
		return ""
	}
	first, last := days[0].Date, days[len(days)-1].Date
	switch mode {
	case timeline.ViewDay:
		return first.Format("Monday, January 2 2006")
	case timeline.ViewWeek:
		return fmt.Sprintf("%s – %s", first.Format("Jan 2"), last.Format("Jan 2, 2006"))
	default:
		return first.Format("January 2006")
	}
}

// shiftWindow moves a reference date one window in the given direction
func shiftWindow(ref time.Time, mode timeline.ViewMode, dir int) time.Time {
	switch mode {
	case timeline.ViewDay:
		return ref.AddDate(0, 0, dir)
	case timeline.ViewWeek:
		return ref.AddDate(0, 0, 7*dir)
	default:
		// Anchor to the 1st so short months never skip a window.
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return first.AddDate(0, dir, 0)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}

// form is a small sequential-field input modal
type form struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(title string, fields ...[2]string) form {
	f := form{title: title}
	for i, field := range fields {
		in := textinput.New()
		in.Placeholder = field[1]
		in.CharLimit = 120
		in.Width = 32
		if i == 0 {
			in.Focus()
		}
		f.labels = append(f.labels, field[0])
		f.inputs = append(f.inputs, in)
	}
	return f
}

func (f *form) setValue(i int, v string) {
	f.inputs[i].SetValue(v)
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// dateValue parses a form field as a date, falling back to today when
// blank or malformed
func (f *form) dateValue(i int) time.Time {
	return timeline.ParseDateSafe(f.value(i))
}

func (f *form) intValue(i, fallback int) int {
	n, err := strconv.Atoi(f.value(i))
	if err != nil {
		return fallback
	}
	return n
}

func (f *form) floatValue(i int) float64 {
	n, err := strconv.ParseFloat(f.value(i), 64)
	if err != nil {
		return 0
	}
	return n
}

// next advances focus; returns true when the form was on its last field
func (f *form) next() bool {
	if f.focus == len(f.inputs)-1 {
		return true
	}
	f.inputs[f.focus].Blur()
	f.focus++
	f.inputs[f.focus].Focus()
	return false
}

func (f *form) prev() {
	if f.focus == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus--
	f.inputs[f.focus].Focus()
}
