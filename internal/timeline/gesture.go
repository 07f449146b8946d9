package timeline

import "github.com/launchforge/phaseline/internal/model"

// Edge identifies which end of a task bar a resize gesture grips.
type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

// Metrics describes the horizontal geometry of the rendered grid, in the
// same unit as the x offsets fed to Move (terminal cells for the TUI).
type Metrics struct {
	LabelWidth  int // width of the fixed label column
	ColumnWidth int // width of one day column
	Overscan    int // trailing columns past the axis still accepted
}

// DefaultOverscan lets a gesture run slightly past the last visible
// column before updates stop.
const DefaultOverscan = 5

// gestureState is the tagged union of controller states. Exactly one
// gesture can be active; illegal combinations are unrepresentable.
type gestureState interface{ gestureTask() *model.Task }

type idle struct{}

type dragging struct {
	task     *model.Task
	duration int // whole-day span captured at gesture start
}

type resizing struct {
	task *model.Task
	edge Edge
}

func (idle) gestureTask() *model.Task       { return nil }
func (g dragging) gestureTask() *model.Task { return g.task }
func (g resizing) gestureTask() *model.Task { return g.task }

// Controller translates pointer positions into candidate task dates
// while a drag or resize gesture is active. Mutations are applied to the
// task in place (optimistic); persistence happens on Release in the
// caller.
type Controller struct {
	days    []DayCell
	metrics Metrics
	locked  bool
	state   gestureState
}

// NewController creates an idle controller over the given day axis.
func NewController(days []DayCell, metrics Metrics) *Controller {
	if metrics.ColumnWidth <= 0 {
		metrics.ColumnWidth = 1
	}
	if metrics.Overscan == 0 {
		metrics.Overscan = DefaultOverscan
	}
	return &Controller{days: days, metrics: metrics, state: idle{}}
}

// SetDays swaps the day axis after a view change. Any active gesture is
// abandoned since its column math no longer applies.
func (c *Controller) SetDays(days []DayCell) {
	c.days = days
	c.state = idle{}
}

// SetLocked toggles the approved/submitted lock. Locked controllers
// refuse all gesture starts.
func (c *Controller) SetLocked(locked bool) {
	c.locked = locked
	if locked {
		c.state = idle{}
	}
}

// Active reports whether a gesture is in progress.
func (c *Controller) Active() bool {
	_, isIdle := c.state.(idle)
	return !isIdle
}

// Task returns the task under the active gesture, or nil when idle.
func (c *Controller) Task() *model.Task {
	return c.state.gestureTask()
}

// StartDrag begins moving a whole task bar. Returns false if the
// timeline is locked or another gesture is already active.
func (c *Controller) StartDrag(t *model.Task) bool {
	if c.locked || c.Active() || t == nil {
		return false
	}
	c.state = dragging{task: t, duration: DaysBetween(t.StartDate, t.EndDate)}
	return true
}

// StartResize begins adjusting one edge of a task bar, under the same
// lock and single-gesture rules as StartDrag.
func (c *Controller) StartResize(t *model.Task, edge Edge) bool {
	if c.locked || c.Active() || t == nil {
		return false
	}
	c.state = resizing{task: t, edge: edge}
	return true
}

// Move feeds the pointer's horizontal offset (relative to the grid
// origin) into the active gesture. The offset is translated to a day
// index by integer division; indexes outside [0, len(days)+overscan) are
// ignored so the gesture simply stops tracking until the pointer
// re-enters range. Returns true when the task's dates changed.
func (c *Controller) Move(x int) bool {
	if !c.Active() || len(c.days) == 0 {
		return false
	}

	idx := (x - c.metrics.LabelWidth) / c.metrics.ColumnWidth
	if x < c.metrics.LabelWidth || idx < 0 || idx >= len(c.days)+c.metrics.Overscan {
		return false
	}
	candidate := Normalize(c.days[0].Date.AddDate(0, 0, idx))

	switch g := c.state.(type) {
	case dragging:
		if candidate.Equal(g.task.StartDate) {
			return false
		}
		// Both edges shift together; duration is preserved exactly.
		g.task.StartDate = candidate
		g.task.EndDate = candidate.AddDate(0, 0, g.duration)
		return true

	case resizing:
		if g.edge == EdgeStart {
			// The start edge may never cross the end edge.
			if candidate.After(g.task.EndDate) || candidate.Equal(g.task.StartDate) {
				return false
			}
			g.task.StartDate = candidate
			return true
		}
		if candidate.Before(g.task.StartDate) || candidate.Equal(g.task.EndDate) {
			return false
		}
		g.task.EndDate = candidate
		return true
	}
	return false
}

// Release ends the active gesture and returns the task whose dates need
// persisting, or nil if no gesture was in progress. The caller persists
// the final dates and re-fetches authoritative state regardless of the
// outcome.
func (c *Controller) Release() *model.Task {
	t := c.state.gestureTask()
	c.state = idle{}
	return t
}
