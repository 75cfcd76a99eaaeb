package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit          key.Binding
	Submit        key.Binding
	Tab           key.Binding
	IntensityDown key.Binding
	IntensityUp   key.Binding
	PanelLeft     key.Binding
	PanelRight    key.Binding
	Up            key.Binding
	Down          key.Binding
	Copy          key.Binding
	Clear         key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch panel"),
	),
	IntensityDown: key.NewBinding(
		key.WithKeys("ctrl+left"),
		key.WithHelp("ctrl+←", "softer"),
	),
	IntensityUp: key.NewBinding(
		key.WithKeys("ctrl+right"),
		key.WithHelp("ctrl+→", "harsher"),
	),
	PanelLeft: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "softer"),
	),
	PanelRight: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "harsher"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("up/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("down/j", "down"),
	),
	Copy: key.NewBinding(
		key.WithKeys("1", "2", "3"),
		key.WithHelp("1-3", "copy"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear results"),
	),
}
