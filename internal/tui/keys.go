package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Equals       key.Binding
	Backspace    key.Binding
	ClearEntry   key.Binding
	Clear        key.Binding
	Negate       key.Binding
	Square       key.Binding
	SquareRoot   key.Binding
	Inverse      key.Binding
	MemoryStore  key.Binding
	MemoryAdd    key.Binding
	MemorySub    key.Binding
	MemoryRecall key.Binding
	MemoryClear  key.Binding
	SwitchPanel  key.Binding
	Up           key.Binding
	Down         key.Binding
	Use          key.Binding
	Delete       key.Binding
	ClearHistory key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Equals:       key.NewBinding(key.WithKeys("enter", "="), key.WithHelp("enter", "equals")),
		Backspace:    key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "backspace")),
		ClearEntry:   key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "clear entry")),
		Clear:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Negate:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "±")),
		Square:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "x²")),
		SquareRoot:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "√x")),
		Inverse:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "1/x")),
		MemoryStore:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "MS")),
		MemoryAdd:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "M+")),
		MemorySub:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "M−")),
		MemoryRecall: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "MR")),
		MemoryClear:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "MC")),
		SwitchPanel:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "history/memory")),
		Up:           key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:         key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Use:          key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "use selected")),
		Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete slot")),
		ClearHistory: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear history")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Equals, k.Clear, k.MemoryStore, k.MemoryRecall, k.SwitchPanel, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Equals, k.Backspace, k.ClearEntry, k.Clear},
		{k.Negate, k.Square, k.SquareRoot, k.Inverse},
		{k.MemoryStore, k.MemoryAdd, k.MemorySub, k.MemoryRecall, k.MemoryClear},
		{k.SwitchPanel, k.Up, k.Down, k.Use, k.Delete, k.ClearHistory},
		{k.Help, k.Quit},
	}
}
