package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/launchforge/phaseline/internal/api"
	"github.com/launchforge/phaseline/internal/model"
	"github.com/launchforge/phaseline/internal/timeline"
)

type datesCall struct {
	taskID string
	start  time.Time
	end    time.Time
}

// fakeBackend serves a fixed phase tree and records date updates. Reads
// always return deep copies, like a real server round-trip would.
type fakeBackend struct {
	idea       model.Idea
	phases     []model.Phase
	datesErr   error
	datesCalls []datesCall
	fetchCount int
}

func (f *fakeBackend) GetIdea(string) (*model.Idea, error) {
	idea := f.idea
	return &idea, nil
}

func (f *fakeBackend) FetchPhases(string) ([]model.Phase, error) {
	f.fetchCount++
	out := make([]model.Phase, len(f.phases))
	for i, p := range f.phases {
		out[i] = p
		out[i].Tasks = append([]model.Task(nil), p.Tasks...)
	}
	return out, nil
}

func (f *fakeBackend) UpdateTaskDates(taskID string, start, end time.Time) error {
	f.datesCalls = append(f.datesCalls, datesCall{taskID: taskID, start: start, end: end})
	if f.datesErr != nil {
		return f.datesErr
	}
	for i := range f.phases {
		for j := range f.phases[i].Tasks {
			if f.phases[i].Tasks[j].ID == taskID {
				f.phases[i].Tasks[j].StartDate = start
				f.phases[i].Tasks[j].EndDate = end
			}
		}
	}
	return nil
}

func (f *fakeBackend) CreatePhase(string, api.PhaseFields) (*model.Phase, error) { return nil, nil }
func (f *fakeBackend) DeletePhase(string) error                                  { return nil }
func (f *fakeBackend) CreateTask(string, api.TaskFields) (*model.Task, error)    { return nil, nil }
func (f *fakeBackend) UpdateTask(string, api.TaskFields) (*model.Task, error)    { return nil, nil }
func (f *fakeBackend) DeleteTask(string) error                                   { return nil }
func (f *fakeBackend) SubmitTimeline(string) error                               { return nil }
func (f *fakeBackend) SubmitFundingRequest(model.FundingRequest) (*model.FundingRequest, error) {
	return nil, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newFake() *fakeBackend {
	return &fakeBackend{
		idea: model.Idea{ID: "idea1", Name: "RoboBarista", Status: model.IdeaStatusDraft},
		phases: []model.Phase{{
			ID:        "ph1",
			IdeaID:    "idea1",
			Name:      "Discovery",
			StartDate: date(2024, time.June, 3),
			EndDate:   date(2024, time.June, 21),
			Tasks: []model.Task{{
				ID:        "t1",
				PhaseID:   "ph1",
				Name:      "Customer interviews",
				StartDate: date(2024, time.June, 10),
				EndDate:   date(2024, time.June, 12),
				Priority:  model.PriorityMedium,
			}},
		}},
	}
}

// newTestModel builds a loaded editor pinned to June 2024, month view
func newTestModel(t *testing.T, fake *fakeBackend) Model {
	t.Helper()
	m := New(fake, "idea1")
	m.ref = date(2024, time.June, 1)
	m.view = timeline.ViewMonth

	msg := m.loadCmd()()
	next, _ := m.Update(msg)
	m = next.(Model)
	if m.idea == nil {
		t.Fatalf("model did not load idea")
	}
	if len(m.rows) != 2 {
		t.Fatalf("rows = %d, want 2 (phase + task)", len(m.rows))
	}
	return m
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

// taskRowY is the screen row of the single test task
const taskRowY = gridTop + 1

// xForDay returns a screen column inside the month-view cell of the
// given June day number
func xForDay(day int) int {
	return labelWidth + (day-1)*2
}

func TestMouseDragPreservesDurationAndPersists(t *testing.T) {
	fake := newFake()
	m := newTestModel(t, fake)

	// Press mid-bar (June 11) so the gesture is a drag, not a resize
	next, _ := m.Update(press(xForDay(11), taskRowY))
	m = next.(Model)
	if !m.ctrl.Active() {
		t.Fatalf("press on bar did not start a gesture")
	}

	next, _ = m.Update(motion(xForDay(16), taskRowY))
	m = next.(Model)

	task := &m.phases[0].Tasks[0]
	if !task.StartDate.Equal(date(2024, time.June, 16)) {
		t.Errorf("optimistic start = %v, want June 16", task.StartDate)
	}
	if !task.EndDate.Equal(date(2024, time.June, 18)) {
		t.Errorf("optimistic end = %v, want June 18 (duration preserved)", task.EndDate)
	}

	next, cmd := m.Update(release(xForDay(16), taskRowY))
	m = next.(Model)
	if m.ctrl.Active() {
		t.Fatalf("controller still active after release")
	}
	if cmd == nil {
		t.Fatalf("release produced no persist command")
	}
	cmd()

	if len(fake.datesCalls) != 1 {
		t.Fatalf("UpdateTaskDates calls = %d, want 1", len(fake.datesCalls))
	}
	call := fake.datesCalls[0]
	if call.taskID != "t1" {
		t.Errorf("persisted task = %q, want t1", call.taskID)
	}
	if !call.start.Equal(date(2024, time.June, 16)) || !call.end.Equal(date(2024, time.June, 18)) {
		t.Errorf("persisted %v – %v, want June 16 – June 18", call.start, call.end)
	}
}

func TestFailedPersistRollsBackOnRefetch(t *testing.T) {
	fake := newFake()
	fake.datesErr = errors.New("timeline is locked")
	m := newTestModel(t, fake)

	next, _ := m.Update(press(xForDay(11), taskRowY))
	m = next.(Model)
	next, _ = m.Update(motion(xForDay(16), taskRowY))
	m = next.(Model)
	next, cmd := m.Update(release(xForDay(16), taskRowY))
	m = next.(Model)

	// The optimistic dates are on screen until the re-fetch lands
	if !m.phases[0].Tasks[0].StartDate.Equal(date(2024, time.June, 16)) {
		t.Fatalf("expected optimistic dates before re-fetch")
	}

	next, _ = m.Update(cmd().(persistedMsg))
	m = next.(Model)
	if !m.statusErr {
		t.Errorf("failed persist did not surface an error status")
	}

	// The handler always schedules a re-fetch; simulate it landing
	next, _ = m.Update(m.loadCmd()())
	m = next.(Model)

	task := m.phases[0].Tasks[0]
	if !task.StartDate.Equal(date(2024, time.June, 10)) || !task.EndDate.Equal(date(2024, time.June, 12)) {
		t.Errorf("dates after failed persist = %v – %v, want server's June 10 – June 12",
			task.StartDate, task.EndDate)
	}
}

func TestSuccessfulPersistRefetchesCanonicalState(t *testing.T) {
	fake := newFake()
	m := newTestModel(t, fake)
	fetchesBefore := fake.fetchCount

	next, _ := m.Update(press(xForDay(11), taskRowY))
	m = next.(Model)
	next, _ = m.Update(motion(xForDay(16), taskRowY))
	m = next.(Model)
	next, cmd := m.Update(release(xForDay(16), taskRowY))
	m = next.(Model)

	next, _ = m.Update(cmd().(persistedMsg))
	m = next.(Model)
	next, _ = m.Update(m.loadCmd()())
	m = next.(Model)

	if fake.fetchCount != fetchesBefore+1 {
		t.Errorf("fetch count = %d, want %d (re-fetch even on success)",
			fake.fetchCount, fetchesBefore+1)
	}
	if !m.phases[0].Tasks[0].StartDate.Equal(date(2024, time.June, 16)) {
		t.Errorf("canonical state did not keep the persisted dates")
	}
}

func TestEdgePressStartsResize(t *testing.T) {
	fake := newFake()
	m := newTestModel(t, fake)

	// Press the last bar column (June 12) to grip the end edge
	next, _ := m.Update(press(xForDay(12)+1, taskRowY))
	m = next.(Model)
	if !m.ctrl.Active() {
		t.Fatalf("edge press did not start a gesture")
	}

	next, _ = m.Update(motion(xForDay(17), taskRowY))
	m = next.(Model)

	task := &m.phases[0].Tasks[0]
	if !task.StartDate.Equal(date(2024, time.June, 10)) {
		t.Errorf("resize moved the start edge: %v", task.StartDate)
	}
	if !task.EndDate.Equal(date(2024, time.June, 17)) {
		t.Errorf("end = %v, want June 17", task.EndDate)
	}
}

func TestLockedIdeaRejectsGestures(t *testing.T) {
	fake := newFake()
	fake.idea.Status = model.IdeaStatusSubmitted
	m := newTestModel(t, fake)

	next, _ := m.Update(press(xForDay(11), taskRowY))
	m = next.(Model)
	if m.ctrl.Active() {
		t.Fatalf("locked timeline accepted a gesture")
	}
	if m.status != "timeline is locked" {
		t.Errorf("status = %q, want lock notice", m.status)
	}
	if len(fake.datesCalls) != 0 {
		t.Errorf("locked timeline persisted dates")
	}
}

func TestBackgroundRefreshDeferredDuringGesture(t *testing.T) {
	fake := newFake()
	m := newTestModel(t, fake)

	next, _ := m.Update(press(xForDay(11), taskRowY))
	m = next.(Model)
	if !m.ctrl.Active() {
		t.Fatalf("gesture did not start")
	}

	snapshot, _ := fake.FetchPhases("idea1")
	snapshot[0].Tasks[0].Name = "renamed elsewhere"
	next, _ = m.Update(refreshMsg(snapshot))
	m = next.(Model)

	if m.phases[0].Tasks[0].Name != "Customer interviews" {
		t.Errorf("mid-gesture refresh was applied immediately")
	}
	if m.pending == nil {
		t.Errorf("mid-gesture refresh was dropped instead of parked")
	}
	if !m.ctrl.Active() {
		t.Errorf("refresh ended the active gesture")
	}
}

func TestBackgroundRefreshAppliesWhenIdle(t *testing.T) {
	fake := newFake()
	m := newTestModel(t, fake)

	snapshot, _ := fake.FetchPhases("idea1")
	snapshot[0].Tasks[0].Name = "renamed elsewhere"
	next, _ := m.Update(refreshMsg(snapshot))
	m = next.(Model)

	if m.phases[0].Tasks[0].Name != "renamed elsewhere" {
		t.Errorf("idle refresh was not applied")
	}
}

func TestKeyboardNudgeShiftsOneDay(t *testing.T) {
	fake := newFake()
	m := newTestModel(t, fake)
	m.cursor = 1 // task row

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("nudge produced no persist command")
	}
	cmd()

	if len(fake.datesCalls) != 1 {
		t.Fatalf("UpdateTaskDates calls = %d, want 1", len(fake.datesCalls))
	}
	call := fake.datesCalls[0]
	if !call.start.Equal(date(2024, time.June, 11)) || !call.end.Equal(date(2024, time.June, 13)) {
		t.Errorf("nudged to %v – %v, want June 11 – June 13", call.start, call.end)
	}
}

func TestKeyboardResizeCannotInvert(t *testing.T) {
	fake := newFake()
	fake.phases[0].Tasks[0].EndDate = date(2024, time.June, 10) // single day
	m := newTestModel(t, fake)
	m.cursor = 1

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'H'}})
	m = next.(Model)
	if cmd != nil {
		t.Fatalf("shrinking a single-day task produced a persist command")
	}
	task := m.phases[0].Tasks[0]
	if !task.EndDate.Equal(date(2024, time.June, 10)) {
		t.Errorf("end moved before start: %v", task.EndDate)
	}
	if len(fake.datesCalls) != 0 {
		t.Errorf("invalid resize reached the backend")
	}
}

func TestViewCycleAbandonsGesture(t *testing.T) {
	fake := newFake()
	m := newTestModel(t, fake)

	next, _ := m.Update(press(xForDay(11), taskRowY))
	m = next.(Model)
	if !m.ctrl.Active() {
		t.Fatalf("gesture did not start")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	m = next.(Model)
	if m.ctrl.Active() {
		t.Errorf("view change kept a stale gesture alive")
	}
	if m.view != timeline.ViewDay {
		t.Errorf("view = %v, want day after cycling from month", m.view)
	}
}
