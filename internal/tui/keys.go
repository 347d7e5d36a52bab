package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NewTest       key.Binding
	CycleMode     key.Binding
	TogglePunct   key.Binding
	ToggleNumbers key.Binding
	Language      key.Binding
	PrevTab       key.Binding
	NextTab       key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NewTest:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "new test")),
		CycleMode:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "mode")),
		TogglePunct:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "punctuation")),
		ToggleNumbers: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "numbers")),
		Language:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "language")),
		PrevTab:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "results tab")),
		NextTab:       key.NewBinding(key.WithKeys("right")),
		Quit:          key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewTest, k.CycleMode, k.TogglePunct, k.ToggleNumbers, k.Language, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.PrevTab}}
}
