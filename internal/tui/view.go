package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/launchforge/phaseline/internal/model"
	"github.com/launchforge/phaseline/internal/timeline"
)

// View renders the whole editor
func (m Model) View() string {
	if m.loadErr != nil {
		return m.viewLoadError()
	}
	if m.idea == nil {
		return HeaderStyle.Render("phaseline") + "\n\n  loading timeline…\n"
	}
	if m.mode == modeHelp {
		return m.viewHelp()
	}

	var b strings.Builder
	b.WriteString(m.viewTitle())
	b.WriteString("\n")
	b.WriteString(AxisStyle.Render(strings.Repeat(" ", labelWidth) + windowLabel(m.days, m.view)))
	b.WriteString("\n")
	b.WriteString(m.viewAxis())
	b.WriteString("\n")

	switch m.mode {
	case modeAddPhase, modeAddTask, modeEditTask, modeFunding:
		b.WriteString(m.viewForm())
	default:
		b.WriteString(m.viewGrid())
	}

	b.WriteString("\n")
	b.WriteString(m.viewStatusBar())
	return b.String()
}

func (m Model) viewTitle() string {
	title := fmt.Sprintf("⏱ %s", m.idea.Name)
	badge := ""
	switch m.idea.Status {
	case model.IdeaStatusDraft:
		badge = HelpStyle.Render("  draft")
	case model.IdeaStatusSubmitted:
		badge = LockedStyle.Render("  🔒 submitted — read-only")
	case model.IdeaStatusApproved:
		badge = lipgloss.NewStyle().Foreground(Success).Render("  🔒 approved")
	case model.IdeaStatusRejected:
		badge = ErrorStyle.Render("  🔒 rejected")
	}
	view := HelpStyle.Render(fmt.Sprintf("  [%s view]", m.view))
	return HeaderStyle.Render(title) + badge + view
}

// viewAxis renders the day-number header row
func (m Model) viewAxis() string {
	cw := metricsFor(m.view).ColumnWidth
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth))
	for _, d := range m.days {
		var cell string
		switch m.view {
		case timeline.ViewDay:
			cell = fmt.Sprintf("%-*s", cw, d.Date.Format("Mon Jan 2"))
		case timeline.ViewWeek:
			cell = fmt.Sprintf("%-*s", cw, d.Date.Format("Mon 2"))
		default:
			cell = fmt.Sprintf("%-*d", cw, d.DayOfMonth)
		}
		style := AxisStyle
		if d.Today {
			style = AxisTodayStyle
		} else if d.Weekend {
			style = AxisWeekendStyle
		}
		b.WriteString(style.Render(cell))
	}
	return b.String()
}

func (m Model) viewGrid() string {
	if len(m.rows) == 0 {
		return HelpStyle.Render("\n  no phases yet — press p to add one\n")
	}

	visible := m.height - gridTop - 2
	if visible < 1 {
		visible = len(m.rows)
	}
	end := m.scroll + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}

	var b strings.Builder
	for i := m.scroll; i < end; i++ {
		r := m.rows[i]
		if r.kind == rowPhase {
			b.WriteString(m.renderPhaseRow(i, &m.phases[r.phaseIdx]))
		} else {
			b.WriteString(m.renderTaskRow(i, &m.phases[r.phaseIdx].Tasks[r.taskIdx]))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderPhaseRow(idx int, p *model.Phase) string {
	label := "▸ " + truncate(p.Name, labelWidth-4)
	style := PhaseRowStyle
	if idx == m.cursor {
		style = PhaseRowSelectedStyle
	}
	line := style.Render(fmt.Sprintf("%-*s", labelWidth, label))
	if p.EvaluationScore != nil {
		line += BadgeStyle.Render(fmt.Sprintf(" ★ %.1f", *p.EvaluationScore))
		if p.Comments != "" {
			line += BadgeStyle.Render(" — " + truncate(p.Comments, 40))
		}
	}
	return line
}

func (m Model) renderTaskRow(idx int, t *model.Task) string {
	labelStyle := TaskLabelStyle
	if idx == m.cursor {
		labelStyle = TaskLabelSelectedStyle
	}
	// Label occupies exactly labelWidth cells so bar geometry lines up
	// with the x offsets fed to the gesture controller.
	name := truncate(t.Name, labelWidth-10)
	label := labelStyle.Render(fmt.Sprintf("  %-*s", labelWidth-9, name)) +
		GetPriorityStyle(t.Priority).Render(fmt.Sprintf("P%d ", t.Priority)) +
		BadgeStyle.Render(fmt.Sprintf("%3d%%", t.ProgressPercentage))

	span, ok := timeline.ComputeTaskSpan(t.StartDate, t.EndDate, m.days)
	if !ok {
		return label + BadgeStyle.Render("  · off window")
	}
	left, right, visible := barBounds(span, m.view, len(m.days))
	if !visible {
		// Starts past the right edge of the window
		return label + BadgeStyle.Render("  ▸ later")
	}

	cw := metricsFor(m.view).ColumnWidth
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.ColorToken))
	if m.ctrl.Task() == t {
		barStyle = barStyle.Reverse(true)
	}

	var b strings.Builder
	b.WriteString(label)
	pad := left - labelWidth
	if pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	width := right - left + 1
	filled := width * t.ProgressPercentage / 100
	b.WriteString(barStyle.Render(strings.Repeat("█", filled) + strings.Repeat("▒", width-filled)))

	// Working-day badge after the bar when there is room
	wd := timeline.WorkingDayDifference(t.StartDate, t.EndDate)
	if right < labelWidth+len(m.days)*cw-6 {
		b.WriteString(BadgeStyle.Render(fmt.Sprintf(" %dwd", wd)))
	}
	return b.String()
}

func (m Model) viewForm() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(m.form.title))
	b.WriteString("\n\n")
	for i := range m.form.inputs {
		cursor := "  "
		if i == m.form.focus {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-20s %s\n", cursor, m.form.labels[i], m.form.inputs[i].View()))
	}
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("enter: next/confirm · tab: move · esc: cancel"))
	return ModalStyle.Render(b.String())
}

func (m Model) viewStatusBar() string {
	if m.status != "" {
		if m.statusErr {
			return StatusBarStyle.Render(ErrorStyle.Render(m.status))
		}
		return StatusBarStyle.Render(m.status)
	}
	hint := "←/→ window · v view · hjkl move/shift · H/L resize · a task · p phase · e edit · d delete · f funding · S submit · ? help · q quit"
	if m.locked() {
		hint = "timeline locked — ←/→ window · v view · f funding · ? help · q quit"
	}
	return StatusBarStyle.Render(HelpStyle.Render(hint))
}

func (m Model) viewLoadError() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("phaseline"))
	b.WriteString("\n\n")
	b.WriteString(ErrorStyle.Render("  could not load timeline: " + m.loadErr.Error()))
	b.WriteString("\n\n")
	b.WriteString(HelpStyle.Render("  r: retry · q: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewHelp() string {
	rows := [][2]string{
		{"↑/↓, j/k", "move between phases and tasks"},
		{"←/→", "previous / next window"},
		{"v", "cycle day / week / month view"},
		{"t", "jump to today"},
		{"h / l", "shift selected task one day"},
		{"H / L", "shorten / extend selected task"},
		{"mouse drag", "move a bar; grab an edge to resize"},
		{"a", "add task to selected phase"},
		{"p", "add phase"},
		{"e", "edit selected task"},
		{"d", "delete selected task or phase"},
		{"f", "request funding for selection"},
		{"S", "submit timeline for review (locks editing)"},
		{"r", "refresh from server"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("phaseline — keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %-12s %s\n", r[0], HelpStyle.Render(r[1])))
	}
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("  press any key to close"))
	return b.String()
}
