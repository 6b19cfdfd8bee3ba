package tui

import "github.com/charmbracelet/bubbles/key"

// Key bindings reference:
//
// Global:
//   q, ctrl+c   Quit the application
//   h           Home tab
//   c           Cars tab
//   i           Info tab
//   a           Add a randomly generated car
//
// Cars tab:
//   j/down      Move selection down (wraps)
//   k/up        Move selection up (wraps)
//   d           Delete the selected car

type keyMap struct {
	Quit   key.Binding
	Add    key.Binding
	Delete key.Binding
	Up     key.Binding
	Down   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	bindings := make([]key.Binding, 0, len(tabs)+5)
	for _, t := range tabs {
		bindings = append(bindings, t.binding)
	}
	return append(bindings, k.Up, k.Down, k.Add, k.Delete, k.Quit)
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
