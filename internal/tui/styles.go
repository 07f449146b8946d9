package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	// Priority colors
	PriorityCritical = lipgloss.Color("#FF6B6B") // P1 - Red
	PriorityHigh     = lipgloss.Color("#FFB347") // P2 - Orange
	PriorityMedium   = lipgloss.Color("#FFE66D") // P3 - Yellow
	PriorityLow      = lipgloss.Color("#64B5F6") // P4 - Blue
	PriorityOptional = lipgloss.Color("#6C757D") // P5 - Gray

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
	Danger    = lipgloss.Color("#FF6B6B")
	Success   = lipgloss.Color("#95E1A3")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	PhaseRowStyle = lipgloss.NewStyle().
			Bold(true)

	PhaseRowSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Background(Surface)

	TaskLabelStyle = lipgloss.NewStyle()

	TaskLabelSelectedStyle = lipgloss.NewStyle().
				Background(Surface).
				Bold(true)

	AxisStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	AxisWeekendStyle = lipgloss.NewStyle().
				Foreground(Border)

	AxisTodayStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Underline(true)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Danger)

	LockedStyle = lipgloss.NewStyle().
			Foreground(PriorityHigh).
			Bold(true)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// GetPriorityStyle returns the label style for a given priority
func GetPriorityStyle(priority int) lipgloss.Style {
	switch priority {
	case 1:
		return lipgloss.NewStyle().Foreground(PriorityCritical).Bold(true)
	case 2:
		return lipgloss.NewStyle().Foreground(PriorityHigh).Bold(true)
	case 3:
		return lipgloss.NewStyle().Foreground(PriorityMedium)
	case 4:
		return lipgloss.NewStyle().Foreground(PriorityLow)
	default:
		return lipgloss.NewStyle().Foreground(PriorityOptional)
	}
}
