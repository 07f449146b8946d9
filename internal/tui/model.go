package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/launchforge/phaseline/internal/cache"
	"github.com/launchforge/phaseline/internal/model"
	"github.com/launchforge/phaseline/internal/timeline"
)

// uiMode is the editor's modal state. Normal handles navigation and
// gestures; everything else routes input to a form or a prompt.
type uiMode int

const (
	modeNormal uiMode = iota
	modeAddPhase
	modeAddTask
	modeEditTask
	modeFunding
	modeConfirm
	modeHelp
)

// rowKind discriminates flattened grid rows
type rowKind int

const (
	rowPhase rowKind = iota
	rowTask
)

// row is one rendered line of the grid, pointing back into the phase tree
type row struct {
	kind     rowKind
	phaseIdx int
	taskIdx  int
}

// Model is the Gantt editor. It owns the canonical phase tree between
// fetches, the generated day axis, and the gesture controller. All
// server traffic goes through the Backend interface.
type Model struct {
	backend Backend
	store   *cache.Cache
	ideaID  string

	idea   *model.Idea
	phases []model.Phase
	rows   []row
	days   []timeline.DayCell
	view   timeline.ViewMode
	ref    time.Time
	ctrl   *timeline.Controller

	cursor int
	scroll int
	width  int
	height int

	mode       uiMode
	form       form
	targetID   string
	targetKind string

	loading   bool
	loadErr   error
	status    string
	statusErr bool

	// refreshCh carries background poll snapshots into Update. Snapshots
	// arriving mid-gesture are parked in pending until the gesture ends.
	refreshCh chan []model.Phase
	pending   []model.Phase
}

// Option configures a Model at construction time
type Option func(*Model)

// WithCache enables local snapshot persistence for offline viewing
func WithCache(store *cache.Cache) Option {
	return func(m *Model) { m.store = store }
}

// WithViewMode sets the initial axis granularity
func WithViewMode(v timeline.ViewMode) Option {
	return func(m *Model) { m.view = v }
}

// New creates the editor for one idea. The returned model is ready to
// hand to a bubbletea program; data loads in Init.
func New(backend Backend, ideaID string, opts ...Option) Model {
	m := Model{
		backend:   backend,
		ideaID:    ideaID,
		view:      timeline.ViewMonth,
		ref:       timeline.Normalize(time.Now()),
		loading:   true,
		refreshCh: make(chan []model.Phase, 1),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.days = timeline.GenerateDays(m.ref, m.view)
	m.ctrl = timeline.NewController(m.days, metricsFor(m.view))
	return m
}

// EnqueueRefresh hands a freshly polled snapshot to the editor. Safe to
// call from the poller goroutine; a stale undelivered snapshot is
// dropped in favor of the new one.
func (m Model) EnqueueRefresh(phases []model.Phase) {
	select {
	case m.refreshCh <- phases:
	default:
		select {
		case <-m.refreshCh:
		default:
		}
		select {
		case m.refreshCh <- phases:
		default:
		}
	}
}

// Messages

type dataMsg struct {
	idea   *model.Idea
	phases []model.Phase
	err    error
}

type persistedMsg struct {
	taskName string
	err      error
}

type opDoneMsg struct {
	verb string
	err  error
}

type refreshMsg []model.Phase

type clearStatusMsg struct{}

// Init kicks off the initial fetch and the refresh listener
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.waitRefresh())
}

func (m Model) loadCmd() tea.Cmd {
	backend, ideaID := m.backend, m.ideaID
	return func() tea.Msg {
		idea, err := backend.GetIdea(ideaID)
		if err != nil {
			return dataMsg{err: err}
		}
		phases, err := backend.FetchPhases(ideaID)
		if err != nil {
			return dataMsg{err: err}
		}
		return dataMsg{idea: idea, phases: phases}
	}
}

// persistDatesCmd writes a gesture result back to the server. The
// follow-up re-fetch happens when persistedMsg is handled, regardless
// of whether this call succeeded.
func (m Model) persistDatesCmd(t model.Task) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		err := backend.UpdateTaskDates(t.ID, t.StartDate, t.EndDate)
		return persistedMsg{taskName: t.Name, err: err}
	}
}

func (m Model) waitRefresh() tea.Cmd {
	ch := m.refreshCh
	return func() tea.Msg {
		return refreshMsg(<-ch)
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// applyPhases installs a canonical phase tree and rebuilds derived state
func (m *Model) applyPhases(phases []model.Phase) {
	model.AssignColors(phases)
	m.phases = phases
	m.rebuild()
	if m.store != nil {
		// snapshot failures only affect offline viewing
		_ = m.store.SaveSnapshot(m.ideaID, phases)
	}
}

// rebuild regenerates the day axis and flattened rows after any change
// to the view window or phase tree. Active gestures are abandoned since
// their geometry no longer applies.
func (m *Model) rebuild() {
	m.days = timeline.GenerateDays(m.ref, m.view)
	// Column widths differ per view mode, so the controller is rebuilt
	// rather than just handed the new axis. Active gestures end either way.
	m.ctrl = timeline.NewController(m.days, metricsFor(m.view))
	m.ctrl.SetLocked(m.locked())

	m.rows = m.rows[:0]
	for p := range m.phases {
		m.rows = append(m.rows, row{kind: rowPhase, phaseIdx: p})
		for t := range m.phases[p].Tasks {
			m.rows = append(m.rows, row{kind: rowTask, phaseIdx: p, taskIdx: t})
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) locked() bool {
	return m.idea != nil && m.idea.Locked()
}

// selectedTask returns a pointer into the live phase tree, or nil when
// the cursor is not on a task row
func (m *Model) selectedTask() *model.Task {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	r := m.rows[m.cursor]
	if r.kind != rowTask {
		return nil
	}
	return &m.phases[r.phaseIdx].Tasks[r.taskIdx]
}

// selectedPhase resolves the phase under the cursor (directly, or the
// parent of the selected task)
func (m *Model) selectedPhase() *model.Phase {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.phases[m.rows[m.cursor].phaseIdx]
}

func (m *Model) flash(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) flashErr(s string) {
	m.status = s
	m.statusErr = true
}
