package app

import "github.com/charmbracelet/bubbles/key"

type globalKeyMap struct {
	Quit     key.Binding
	Home     key.Binding
	Upload   key.Binding
	Search   key.Binding
	Export   key.Binding
	NextItem key.Binding
	PrevItem key.Binding
}

var globalKeys = globalKeyMap{
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Home:     key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "home")),
	Upload:   key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "upload")),
	Search:   key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "search")),
	Export:   key.NewBinding(key.WithKeys("f4"), key.WithHelp("f4", "export")),
	NextItem: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	PrevItem: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
}

type contactsKeyMap struct {
	Search    key.Binding
	Export    key.Binding
	Reset     key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	Toggle    key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Remove    key.Binding
	ClearList key.Binding
	Close     key.Binding
	Details   key.Binding
	Copy      key.Binding
}

var contactsKeys = contactsKeyMap{
	Search:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "search")),
	Export:    key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "export")),
	Reset:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "clear filters")),
	PrevPage:  key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev page")),
	NextPage:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "next page")),
	Toggle:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open/toggle")),
	Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
	Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
	Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev")),
	Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
	Remove:    key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "remove last")),
	ClearList: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear list")),
	Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Details:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view extra")),
	Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy email")),
}

func (k contactsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Export, k.Reset, k.PrevPage, k.NextPage, globalKeys.NextItem, globalKeys.Quit}
}

func (k contactsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Export, k.Reset},
		{k.PrevPage, k.NextPage, k.Details, k.Copy},
		{k.Toggle, k.Up, k.Down, k.Remove, k.ClearList, k.Close},
		{globalKeys.Home, globalKeys.Upload, globalKeys.Search, globalKeys.Export, globalKeys.Quit},
	}
}

type uploadKeyMap struct {
	Submit key.Binding
	Browse key.Binding
	Source key.Binding
	Clear  key.Binding
}

var uploadKeys = uploadKeyMap{
	Submit: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "scan & map")),
	Browse: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose file")),
	Source: key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "source type")),
	Clear:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove file")),
}

func (k uploadKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Browse, k.Source, k.Submit, k.Clear, globalKeys.NextItem, globalKeys.Quit}
}

func (k uploadKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type homeKeyMap struct {
	Upload key.Binding
	Search key.Binding
	Export key.Binding
	Quit   key.Binding
}

var homeKeys = homeKeyMap{
	Upload: key.NewBinding(key.WithKeys("u", "1"), key.WithHelp("u", "upload csv")),
	Search: key.NewBinding(key.WithKeys("s", "2"), key.WithHelp("s", "search contacts")),
	Export: key.NewBinding(key.WithKeys("e", "3"), key.WithHelp("e", "export contacts")),
	Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

func (k homeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Upload, k.Search, k.Export, k.Quit}
}

func (k homeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
