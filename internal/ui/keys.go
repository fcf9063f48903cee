package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit    key.Binding
	Boot    key.Binding
	Screens key.Binding

	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Actions
	Confirm   key.Binding
	Back      key.Binding
	Backspace key.Binding
	Copy      key.Binding
	Rescan    key.Binding
	StopVideo key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Boot: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Boot"),
		),
		Screens: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "Switch module"),
		),

		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "Move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "Move right"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Press"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "Delete"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Copy source"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("N", "New scan"),
		),
		StopVideo: key.NewBinding(
			key.WithKeys("esc", "backspace", "q"),
			key.WithHelp("esc/q", "Stop"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Screens, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Screens, k.Boot, k.Quit},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Confirm, k.Back, k.Backspace, k.Copy, k.Rescan, k.StopVideo},
	}
}
