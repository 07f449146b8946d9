package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/launchforge/phaseline/internal/api"
	"github.com/launchforge/phaseline/internal/model"
	"github.com/launchforge/phaseline/internal/timeline"
)

// Update is the bubbletea message loop
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataMsg:
		return m.handleData(msg)

	case persistedMsg:
		m.pending = nil
		if msg.err != nil {
			m.flashErr(fmt.Sprintf("could not save %q: %v (reverting)", msg.taskName, msg.err))
		} else {
			m.flash(fmt.Sprintf("saved %q", msg.taskName))
		}
		// Authoritative state is always re-pulled, success or failure.
		// On failure this is what rolls the optimistic dates back.
		return m, tea.Batch(m.loadCmd(), clearStatusAfter(4*time.Second))

	case opDoneMsg:
		if msg.err != nil {
			m.flashErr(msg.err.Error())
		} else {
			m.flash(msg.verb)
		}
		return m, tea.Batch(m.loadCmd(), clearStatusAfter(4*time.Second))

	case refreshMsg:
		if m.ctrl.Active() {
			// Applying a snapshot mid-gesture would yank the bar out from
			// under the pointer; park it until the gesture resolves.
			m.pending = msg
		} else if m.idea != nil {
			m.applyPhases(msg)
		}
		return m, m.waitRefresh()

	case clearStatusMsg:
		m.status = ""
		m.statusErr = false
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleData(msg dataMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		if m.idea == nil {
			m.loadErr = msg.err
		} else {
			m.flashErr("refresh failed: " + msg.err.Error())
		}
		return m, nil
	}
	m.loadErr = nil
	m.idea = msg.idea
	m.applyPhases(msg.phases)
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.handlePress(msg.X, msg.Y)

	case msg.Action == tea.MouseActionMotion:
		if m.ctrl.Active() {
			m.ctrl.Move(msg.X)
		}

	case msg.Action == tea.MouseActionRelease:
		if t := m.ctrl.Release(); t != nil {
			return m, m.persistDatesCmd(*t)
		}
	}
	return m, nil
}

// handlePress selects the row under the pointer and, when the press
// lands on a task bar, starts a gesture: the first and last bar columns
// grip an edge for resizing, anywhere between drags the whole bar.
func (m *Model) handlePress(x, y int) {
	if m.mode != modeNormal {
		return
	}
	rowIdx := y - gridTop + m.scroll
	if rowIdx < 0 || rowIdx >= len(m.rows) {
		return
	}
	m.cursor = rowIdx
	r := m.rows[rowIdx]
	if r.kind != rowTask || x < labelWidth {
		return
	}

	t := &m.phases[r.phaseIdx].Tasks[r.taskIdx]
	span, ok := timeline.ComputeTaskSpan(t.StartDate, t.EndDate, m.days)
	if !ok {
		return
	}
	left, right, visible := barBounds(span, m.view, len(m.days))
	if !visible || x < left || x > right {
		return
	}
	if m.locked() {
		m.flashErr("timeline is locked")
		return
	}

	cw := metricsFor(m.view).ColumnWidth
	switch {
	case span.Width() >= 2 && x < left+cw:
		m.ctrl.StartResize(t, timeline.EdgeStart)
	case span.Width() >= 2 && x > right-cw:
		m.ctrl.StartResize(t, timeline.EdgeEnd)
	default:
		m.ctrl.StartDrag(t)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal states capture all input first
	switch m.mode {
	case modeHelp:
		m.mode = modeNormal
		return m, nil
	case modeConfirm:
		return m.handleConfirmKey(msg)
	case modeAddPhase, modeAddTask, modeEditTask, modeFunding:
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureVisible()

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		m.ensureVisible()

	case key.Matches(msg, keys.PrevWindow):
		m.ref = shiftWindow(m.ref, m.view, -1)
		m.rebuild()

	case key.Matches(msg, keys.NextWindow):
		m.ref = shiftWindow(m.ref, m.view, 1)
		m.rebuild()

	case key.Matches(msg, keys.ViewMode):
		m.view = m.view.Next()
		m.rebuild()

	case key.Matches(msg, keys.Today):
		m.ref = timeline.Normalize(time.Now())
		m.rebuild()

	case key.Matches(msg, keys.ShiftLeft):
		return m, m.nudgeDrag(-1)

	case key.Matches(msg, keys.ShiftRight):
		return m, m.nudgeDrag(1)

	case key.Matches(msg, keys.ShrinkEnd):
		return m, m.nudgeResize(timeline.EdgeEnd, -1)

	case key.Matches(msg, keys.GrowEnd):
		return m, m.nudgeResize(timeline.EdgeEnd, 1)

	case key.Matches(msg, keys.AddPhase):
		return m.openAddPhase()

	case key.Matches(msg, keys.AddTask):
		return m.openAddTask()

	case key.Matches(msg, keys.Edit):
		return m.openEditTask()

	case key.Matches(msg, keys.Delete):
		return m.openDelete()

	case key.Matches(msg, keys.Funding):
		return m.openFunding()

	case key.Matches(msg, keys.Submit):
		return m.openSubmit()

	case key.Matches(msg, keys.Refresh):
		m.loadErr = nil
		m.loading = true
		return m, m.loadCmd()

	case key.Matches(msg, keys.Help):
		m.mode = modeHelp
	}
	return m, nil
}

// nudgeDrag shifts the selected task by delta days through the same
// gesture machine the mouse uses, so lock and bounds rules match.
func (m *Model) nudgeDrag(delta int) tea.Cmd {
	t := m.selectedTask()
	if t == nil || len(m.days) == 0 {
		return nil
	}
	if m.locked() {
		m.flashErr("timeline is locked")
		return nil
	}
	idx := timeline.DaysBetween(m.days[0].Date, t.StartDate) + delta
	if !m.ctrl.StartDrag(t) {
		return nil
	}
	moved := m.ctrl.Move(colX(idx, m.view))
	done := m.ctrl.Release()
	if !moved || done == nil {
		return nil
	}
	return m.persistDatesCmd(*done)
}

func (m *Model) nudgeResize(edge timeline.Edge, delta int) tea.Cmd {
	t := m.selectedTask()
	if t == nil || len(m.days) == 0 {
		return nil
	}
	if m.locked() {
		m.flashErr("timeline is locked")
		return nil
	}
	anchor := t.EndDate
	if edge == timeline.EdgeStart {
		anchor = t.StartDate
	}
	idx := timeline.DaysBetween(m.days[0].Date, anchor) + delta
	if !m.ctrl.StartResize(t, edge) {
		return nil
	}
	moved := m.ctrl.Move(colX(idx, m.view))
	done := m.ctrl.Release()
	if !moved || done == nil {
		return nil
	}
	return m.persistDatesCmd(*done)
}

// Modal openers

func (m Model) openAddPhase() (tea.Model, tea.Cmd) {
	if m.locked() {
		m.flashErr("timeline is locked")
		return m, nil
	}
	m.form = newForm("New phase",
		[2]string{"Name", "e.g. Discovery"},
		[2]string{"Start (YYYY-MM-DD)", ""},
		[2]string{"End (YYYY-MM-DD)", ""},
	)
	m.form.setValue(1, m.ref.Format(dateEntry))
	m.form.setValue(2, m.ref.AddDate(0, 0, 13).Format(dateEntry))
	m.mode = modeAddPhase
	return m, nil
}

func (m Model) openAddTask() (tea.Model, tea.Cmd) {
	p := m.selectedPhase()
	if p == nil {
		m.flashErr("select a phase first")
		return m, nil
	}
	if m.locked() {
		m.flashErr("timeline is locked")
		return m, nil
	}
	m.form = newForm("New task in "+p.Name,
		[2]string{"Name", "e.g. Customer interviews"},
		[2]string{"Start (YYYY-MM-DD)", ""},
		[2]string{"End (YYYY-MM-DD)", ""},
		[2]string{"Priority (1-5)", "3"},
	)
	m.form.setValue(1, p.StartDate.Format(dateEntry))
	m.form.setValue(2, p.StartDate.AddDate(0, 0, 2).Format(dateEntry))
	m.mode = modeAddTask
	m.targetID = p.ID
	return m, nil
}

func (m Model) openEditTask() (tea.Model, tea.Cmd) {
	t := m.selectedTask()
	if t == nil {
		m.flashErr("select a task first")
		return m, nil
	}
	if m.locked() {
		m.flashErr("timeline is locked")
		return m, nil
	}
	m.form = newForm("Edit task",
		[2]string{"Name", ""},
		[2]string{"Start (YYYY-MM-DD)", ""},
		[2]string{"End (YYYY-MM-DD)", ""},
		[2]string{"Priority (1-5)", ""},
		[2]string{"Progress (0-100)", ""},
	)
	m.form.setValue(0, t.Name)
	m.form.setValue(1, t.StartDate.Format(dateEntry))
	m.form.setValue(2, t.EndDate.Format(dateEntry))
	m.form.setValue(3, fmt.Sprintf("%d", t.Priority))
	m.form.setValue(4, fmt.Sprintf("%d", t.ProgressPercentage))
	m.mode = modeEditTask
	m.targetID = t.ID
	return m, nil
}

func (m Model) openDelete() (tea.Model, tea.Cmd) {
	if m.locked() {
		m.flashErr("timeline is locked")
		return m, nil
	}
	if t := m.selectedTask(); t != nil {
		m.mode = modeConfirm
		m.targetKind = "task"
		m.targetID = t.ID
		m.flash(fmt.Sprintf("delete task %q? (y/n)", t.Name))
		return m, nil
	}
	if p := m.selectedPhase(); p != nil {
		m.mode = modeConfirm
		m.targetKind = "phase"
		m.targetID = p.ID
		m.flash(fmt.Sprintf("delete phase %q and its tasks? (y/n)", p.Name))
	}
	return m, nil
}

func (m Model) openFunding() (tea.Model, tea.Cmd) {
	kind, id, name := "", "", ""
	if t := m.selectedTask(); t != nil {
		kind, id, name = "task", t.ID, t.Name
	} else if p := m.selectedPhase(); p != nil {
		kind, id, name = "phase", p.ID, p.Name
	} else {
		m.flashErr("select a phase or task first")
		return m, nil
	}
	m.form = newForm("Request funding for "+name,
		[2]string{"Amount (USD)", "e.g. 15000"},
		[2]string{"Justification", ""},
	)
	m.mode = modeFunding
	m.targetKind = kind
	m.targetID = id
	return m, nil
}

func (m Model) openSubmit() (tea.Model, tea.Cmd) {
	if m.locked() {
		m.flashErr("timeline is already submitted")
		return m, nil
	}
	if len(m.phases) == 0 {
		m.flashErr("nothing to submit yet")
		return m, nil
	}
	m.mode = modeConfirm
	m.targetKind = "submit"
	m.flash("submit timeline for review? this locks editing (y/n)")
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		kind, id := m.targetKind, m.targetID
		backend, ideaID := m.backend, m.ideaID
		m.mode = modeNormal
		m.status = ""
		return m, func() tea.Msg {
			switch kind {
			case "task":
				return opDoneMsg{verb: "task deleted", err: backend.DeleteTask(id)}
			case "phase":
				return opDoneMsg{verb: "phase deleted", err: backend.DeletePhase(id)}
			case "submit":
				return opDoneMsg{verb: "timeline submitted for review", err: backend.SubmitTimeline(ideaID)}
			}
			return opDoneMsg{}
		}
	case "n", "N", "esc", "q":
		m.mode = modeNormal
		m.status = ""
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		return m, nil
	case "enter":
		if m.form.next() {
			return m.submitForm()
		}
		return m, nil
	case "tab", "down":
		m.form.next()
		return m, nil
	case "shift+tab", "up":
		m.form.prev()
		return m, nil
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	mode := m.mode
	m.mode = modeNormal

	switch mode {
	case modeAddPhase:
		if m.form.value(0) == "" {
			m.flashErr("phase name is required")
			return m, nil
		}
		fields := api.PhaseFields{
			Name:      m.form.value(0),
			StartDate: m.form.dateValue(1).Format(dateEntry),
			EndDate:   m.form.dateValue(2).Format(dateEntry),
			Priority:  model.PriorityMedium,
		}
		backend, ideaID := m.backend, m.ideaID
		return m, func() tea.Msg {
			_, err := backend.CreatePhase(ideaID, fields)
			return opDoneMsg{verb: "phase added", err: err}
		}

	case modeAddTask:
		if m.form.value(0) == "" {
			m.flashErr("task name is required")
			return m, nil
		}
		fields := api.TaskFields{
			Name:      m.form.value(0),
			StartDate: m.form.dateValue(1).Format(dateEntry),
			EndDate:   m.form.dateValue(2).Format(dateEntry),
			Priority:  m.form.intValue(3, model.PriorityMedium),
		}
		backend, phaseID := m.backend, m.targetID
		return m, func() tea.Msg {
			_, err := backend.CreateTask(phaseID, fields)
			return opDoneMsg{verb: "task added", err: err}
		}

	case modeEditTask:
		if m.form.value(0) == "" {
			m.flashErr("task name is required")
			return m, nil
		}
		fields := api.TaskFields{
			Name:               m.form.value(0),
			StartDate:          m.form.dateValue(1).Format(dateEntry),
			EndDate:            m.form.dateValue(2).Format(dateEntry),
			Priority:           m.form.intValue(3, model.PriorityMedium),
			ProgressPercentage: m.form.intValue(4, 0),
		}
		backend, taskID := m.backend, m.targetID
		return m, func() tea.Msg {
			_, err := backend.UpdateTask(taskID, fields)
			return opDoneMsg{verb: "task updated", err: err}
		}

	case modeFunding:
		amount := m.form.floatValue(0)
		if amount <= 0 {
			m.flashErr("amount must be positive")
			return m, nil
		}
		req := model.FundingRequest{
			IdeaID:        m.ideaID,
			ItemType:      m.targetKind,
			ItemID:        m.targetID,
			Amount:        amount,
			Justification: m.form.value(1),
		}
		backend, store := m.backend, m.store
		return m, func() tea.Msg {
			created, err := backend.SubmitFundingRequest(req)
			if err == nil && store != nil && created != nil {
				_ = store.SaveFundingRequest(*created)
			}
			return opDoneMsg{verb: "funding request filed", err: err}
		}
	}
	return m, nil
}

func (m *Model) ensureVisible() {
	visible := m.height - gridTop - 2
	if visible < 1 {
		return
	}
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
}
