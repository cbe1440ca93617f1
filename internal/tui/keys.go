package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next          key.Binding
	Prev          key.Binding
	ToggleVisible key.Binding
	ToggleEnabled key.Binding
	Reset         key.Binding
	Quit          key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next:          key.NewBinding(key.WithKeys("tab", "down", "j"), key.WithHelp("tab", "next")),
		Prev:          key.NewBinding(key.WithKeys("shift+tab", "up", "k"), key.WithHelp("shift+tab", "prev")),
		ToggleVisible: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "visible")),
		ToggleEnabled: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "enabled")),
		Reset:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "show all")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.ToggleVisible, k.ToggleEnabled, k.Reset, k.Quit}
}
