package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/launchforge/phaseline/internal/api"
)

// Run starts the editor program with mouse reporting enabled. The
// optional poller is started for the program's lifetime and feeds
// background snapshots through EnqueueRefresh.
func Run(m Model, poller *api.Poller) error {
	if poller != nil {
		poller.Start()
		defer poller.Stop()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
