package timeline

import (
	"testing"
	"time"

	"github.com/launchforge/phaseline/internal/model"
)

func testMetrics() Metrics {
	return Metrics{LabelWidth: 20, ColumnWidth: 3, Overscan: 5}
}

func testTask(start, end time.Time) *model.Task {
	return &model.Task{
		ID:        "t1",
		PhaseID:   "p1",
		Name:      "MVP build",
		StartDate: start,
		EndDate:   end,
	}
}

// x coordinate of the center of day column idx under testMetrics.
func colX(idx int) int {
	m := testMetrics()
	return m.LabelWidth + idx*m.ColumnWidth + 1
}

func TestDragPreservesDuration(t *testing.T) {
	days := generateDaysAt(date(2024, time.June, 1), ViewMonth, date(2024, time.June, 1))

	for _, k := range []int{0, 1, 5, 12, 20, 28} {
		task := testTask(date(2024, time.June, 3), date(2024, time.June, 7))
		c := NewController(days, testMetrics())
		if !c.StartDrag(task) {
			t.Fatalf("expected drag to start")
		}
		c.Move(colX(k))
		released := c.Release()
		if released != task {
			t.Fatalf("expected released task to be the dragged task")
		}

		wantStart := days[0].Date.AddDate(0, 0, k)
		if !task.StartDate.Equal(wantStart) {
			t.Fatalf("k=%d: expected start %s, got %s", k, wantStart, task.StartDate)
		}
		if got := DaysBetween(task.StartDate, task.EndDate); got != 4 {
			t.Fatalf("k=%d: duration changed to %d days", k, got)
		}
	}
}

func TestDragSequenceTracksLastPosition(t *testing.T) {
	days := generateDaysAt(date(2024, time.June, 1), ViewMonth, date(2024, time.June, 1))
	task := testTask(date(2024, time.June, 3), date(2024, time.June, 5))
	c := NewController(days, testMetrics())
	c.StartDrag(task)

	// Every move updates local state; the last valid position wins.
	for _, k := range []int{4, 9, 14, 7} {
		c.Move(colX(k))
	}
	c.Release()

	if !task.StartDate.Equal(date(2024, time.June, 8)) {
		t.Fatalf("expected start 2024-06-08, got %s", task.StartDate)
	}
	if !task.EndDate.Equal(date(2024, time.June, 10)) {
		t.Fatalf("expected end 2024-06-10, got %s", task.EndDate)
	}
}

func TestResizeCannotInvert(t *testing.T) {
	days := generateDaysAt(date(2024, time.June, 1), ViewMonth, date(2024, time.June, 1))
	start := date(2024, time.June, 10)
	end := date(2024, time.June, 12)

	// Start edge past the end date: rejected, both dates unchanged.
	task := testTask(start, end)
	c := NewController(days, testMetrics())
	c.StartResize(task, EdgeStart)
	if c.Move(colX(14)) { // June 15 > end
		t.Fatalf("expected start-edge move past end to be rejected")
	}
	c.Release()
	if !task.StartDate.Equal(start) || !task.EndDate.Equal(end) {
		t.Fatalf("dates mutated by rejected resize: %s..%s", task.StartDate, task.EndDate)
	}

	// End edge before the start date: rejected.
	task = testTask(start, end)
	c = NewController(days, testMetrics())
	c.StartResize(task, EdgeEnd)
	if c.Move(colX(5)) { // June 6 < start
		t.Fatalf("expected end-edge move before start to be rejected")
	}
	if !task.StartDate.Equal(start) || !task.EndDate.Equal(end) {
		t.Fatalf("dates mutated by rejected resize: %s..%s", task.StartDate, task.EndDate)
	}
}

func TestResizeMovesSingleEdge(t *testing.T) {
	days := generateDaysAt(date(2024, time.June, 1), ViewMonth, date(2024, time.June, 1))
	task := testTask(date(2024, time.June, 10), date(2024, time.June, 12))
	c := NewController(days, testMetrics())

	c.StartResize(task, EdgeStart)
	if !c.Move(colX(7)) { // June 8
		t.Fatalf("expected start-edge move to be accepted")
	}
	c.Release()
	if !task.StartDate.Equal(date(2024, time.June, 8)) {
		t.Fatalf("expected start 2024-06-08, got %s", task.StartDate)
	}
	if !task.EndDate.Equal(date(2024, time.June, 12)) {
		t.Fatalf("end date moved during start resize: %s", task.EndDate)
	}

	c.StartResize(task, EdgeEnd)
	if !c.Move(colX(17)) { // June 18
		t.Fatalf("expected end-edge move to be accepted")
	}
	c.Release()
	if !task.EndDate.Equal(date(2024, time.June, 18)) {
		t.Fatalf("expected end 2024-06-18, got %s", task.EndDate)
	}
	if !task.StartDate.Equal(date(2024, time.June, 8)) {
		t.Fatalf("start date moved during end resize: %s", task.StartDate)
	}

	// Collapsing to a single day is allowed; start == end is valid.
	c.StartResize(task, EdgeEnd)
	if !c.Move(colX(7)) {
		t.Fatalf("expected collapse to single day to be accepted")
	}
	if !task.EndDate.Equal(task.StartDate) {
		t.Fatalf("expected single-day task, got %s..%s", task.StartDate, task.EndDate)
	}
}

func TestMoveIgnoresOutOfRange(t *testing.T) {
	days := generateDaysAt(date(2024, time.June, 1), ViewMonth, date(2024, time.June, 1))
	task := testTask(date(2024, time.June, 10), date(2024, time.June, 12))
	m := testMetrics()
	c := NewController(days, m)
	c.StartDrag(task)

	// Inside the label column: no candidate index.
	if c.Move(m.LabelWidth - 1) {
		t.Fatalf("expected move inside label column to be ignored")
	}
	// Past the axis plus overscan.
	if c.Move(colX(len(days) + m.Overscan)) {
		t.Fatalf("expected move past overscan to be ignored")
	}
	// Within the overscan margin: accepted.
	if !c.Move(colX(len(days) + m.Overscan - 1)) {
		t.Fatalf("expected move inside overscan to be accepted")
	}
	if !task.StartDate.Equal(date(2024, time.June, 1).AddDate(0, 0, len(days)+m.Overscan-1)) {
		t.Fatalf("unexpected start after overscan move: %s", task.StartDate)
	}
}

func TestLockedControllerRejectsGestures(t *testing.T) {
	days := generateDaysAt(date(2024, time.June, 1), ViewMonth, date(2024, time.June, 1))
	task := testTask(date(2024, time.June, 10), date(2024, time.June, 12))
	c := NewController(days, testMetrics())
	c.SetLocked(true)

	if c.StartDrag(task) {
		t.Fatalf("expected drag start to be rejected when locked")
	}
	if c.StartResize(task, EdgeEnd) {
		t.Fatalf("expected resize start to be rejected when locked")
	}
	if c.Release() != nil {
		t.Fatalf("expected nil release when idle")
	}

	c.SetLocked(false)
	if !c.StartDrag(task) {
		t.Fatalf("expected drag start after unlock")
	}
}

func TestSingleGestureAtATime(t *testing.T) {
	days := generateDaysAt(date(2024, time.June, 1), ViewMonth, date(2024, time.June, 1))
	first := testTask(date(2024, time.June, 10), date(2024, time.June, 12))
	second := testTask(date(2024, time.June, 20), date(2024, time.June, 22))
	c := NewController(days, testMetrics())

	if !c.StartDrag(first) {
		t.Fatalf("expected first drag to start")
	}
	if c.StartDrag(second) || c.StartResize(second, EdgeStart) {
		t.Fatalf("expected second gesture to be rejected while one is active")
	}
	if c.Task() != first {
		t.Fatalf("expected active task to remain the first")
	}
	c.Release()
	if c.Active() {
		t.Fatalf("expected controller idle after release")
	}
}

func TestSetDaysAbandonsGesture(t *testing.T) {
	days := generateDaysAt(date(2024, time.June, 1), ViewMonth, date(2024, time.June, 1))
	task := testTask(date(2024, time.June, 10), date(2024, time.June, 12))
	c := NewController(days, testMetrics())
	c.StartDrag(task)

	c.SetDays(generateDaysAt(date(2024, time.July, 1), ViewMonth, date(2024, time.July, 1)))
	if c.Active() {
		t.Fatalf("expected gesture abandoned after axis change")
	}
}
