package tui

import "charm.land/bubbles/v2/key"

// KeyMap holds the panel key bindings.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Add        key.Binding
	Toggle     key.Binding
	Complete   key.Binding
	Verify     key.Binding
	Fail       key.Binding
	Read       key.Binding
	Remove     key.Binding
	Increase   key.Binding
	Decrease   key.Binding
	Simulation key.Binding
	Export     key.Binding
	Dismiss    key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextTab:    key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab", "next tab")),
		PrevTab:    key.NewBinding(key.WithKeys("shift+tab", "h", "left"), key.WithHelp("shift+tab", "prev tab")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Toggle:     key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "pause/resume")),
		Complete:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
		Verify:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "verify")),
		Fail:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "failed")),
		Read:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "mark read")),
		Remove:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
		Increase:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "progress")),
		Decrease:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "progress")),
		Simulation: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "simulation")),
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Dismiss:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings that act on the given tab.
func (k KeyMap) ShortHelp(t tab) []key.Binding {
	var actions []key.Binding
	switch t {
	case tabActive:
		actions = []key.Binding{k.Add, k.Toggle, k.Complete, k.Increase, k.Decrease}
	case tabAwaiting:
		actions = []key.Binding{k.Verify, k.Fail}
	case tabCompleted:
		actions = []key.Binding{k.Read, k.Remove}
	}
	return append(actions, k.NextTab, k.Simulation, k.Export, k.Quit)
}
