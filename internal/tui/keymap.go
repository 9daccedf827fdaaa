package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up        key.Binding
	Down      key.Binding
	PrevView  key.Binding
	NextView  key.Binding
	HomeView  key.Binding
	SwitchPan key.Binding

	// Actions
	Toggle key.Binding
	Delete key.Binding
	Undo   key.Binding
	Redo   key.Binding

	// Display
	ToggleTheme key.Binding
	ToggleHelp  key.Binding

	// Application
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "previous account"),
		),
		NextView: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "next account"),
		),
		HomeView: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "all accounts"),
		),
		SwitchPan: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "transactions/todos"),
		),

		// Actions
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("Space/x", "toggle todo"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u/Ctrl+Z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("r", "ctrl+y"),
			key.WithHelp("r/Ctrl+Y", "redo"),
		),

		// Display
		ToggleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "light/dark"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),

		// Application
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/Esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleHelp, k.Undo, k.Redo, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevView, k.NextView},
		{k.HomeView, k.SwitchPan, k.Toggle, k.Delete},
		{k.Undo, k.Redo, k.ToggleTheme},
		{k.ToggleHelp, k.Quit},
	}
}
