package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	PrevWindow key.Binding
	NextWindow key.Binding
	ViewMode   key.Binding
	Today      key.Binding
	ShiftLeft  key.Binding
	ShiftRight key.Binding
	GrowEnd    key.Binding
	ShrinkEnd  key.Binding
	AddTask    key.Binding
	AddPhase   key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Funding    key.Binding
	Submit     key.Binding
	Refresh    key.Binding
	Help       key.Binding
	Quit       key.Binding
	Escape     key.Binding
	Enter      key.Binding
}

var keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PrevWindow: key.NewBinding(key.WithKeys("left", "["), key.WithHelp("←", "previous window")),
	NextWindow: key.NewBinding(key.WithKeys("right", "]"), key.WithHelp("→", "next window")),
	ViewMode:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "cycle view")),
	Today:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "jump to today")),
	ShiftLeft:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "shift task left")),
	ShiftRight: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "shift task right")),
	GrowEnd:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "extend task")),
	ShrinkEnd:  key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "shorten task")),
	AddTask:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
	AddPhase:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "add phase")),
	Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit task")),
	Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Funding:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "request funding")),
	Submit:     key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "submit timeline")),
	Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
}
