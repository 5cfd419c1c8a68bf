package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Next    key.Binding
	Submit  key.Binding
	Cancel  key.Binding
	Quit    key.Binding
	Help    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		New:     key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
		Edit:    key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:  key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "delete")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Next:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	}
}

// tableKeys and formKeys pick the bindings shown in each focus.
type tableKeys struct{ k keyMap }

func (h tableKeys) ShortHelp() []key.Binding {
	return []key.Binding{h.k.New, h.k.Edit, h.k.Delete, h.k.Refresh, h.k.Quit, h.k.Help}
}

func (h tableKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.k.Up, h.k.Down},
		{h.k.New, h.k.Edit, h.k.Delete},
		{h.k.Refresh, h.k.Quit, h.k.Help},
	}
}

type formKeys struct {
	k       keyMap
	editing bool
}

func (h formKeys) ShortHelp() []key.Binding {
	cancel := h.k.Cancel
	if !h.editing {
		cancel = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	}
	return []key.Binding{h.k.Next, h.k.Submit, cancel}
}

func (h formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
