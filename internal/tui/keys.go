package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	SwitchTab  key.Binding
	Up         key.Binding
	Down       key.Binding
	Search     key.Binding
	Filter     key.Binding
	Assign     key.Binding
	Remove     key.Binding
	NewTeam    key.Binding
	DeleteTeam key.Binding
	Track      key.Binding
	PrevMember key.Binding
	NextMember key.Binding
	Import     key.Binding
	Export     key.Binding
	Save       key.Binding
	Reset      key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		SwitchTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "participants/teams")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "status filter")),
		Assign:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to team")),
		Remove:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove from team")),
		NewTeam:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new team")),
		DeleteTeam: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete team")),
		Track:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "change track")),
		PrevMember: key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "member")),
		NextMember: key.NewBinding(key.WithKeys("]")),
		Import:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import csv")),
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Save:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Reset:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) participantHelp() []key.Binding {
	return []key.Binding{k.SwitchTab, k.Up, k.Down, k.Search, k.Filter, k.Assign, k.Remove, k.Import, k.Export, k.Save, k.Reset, k.Quit}
}

func (k keyMap) teamHelp() []key.Binding {
	return []key.Binding{k.SwitchTab, k.Up, k.Down, k.NewTeam, k.DeleteTeam, k.Track, k.PrevMember, k.Remove, k.Export, k.Save, k.Quit}
}

func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}
