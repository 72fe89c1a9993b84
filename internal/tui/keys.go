package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Toggle      key.Binding
	First       key.Binding
	Last        key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Edit        key.Binding
	Add         key.Binding
	Delete      key.Binding
	Write       key.Binding
	Reload      key.Binding
	Yank        key.Binding
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Left:        key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "close/parent")),
		Right:       key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "open")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		First:       key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		Last:        key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
		ExpandAll:   key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "expand all")),
		CollapseAll: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "collapse all")),
		Edit:        key.NewBinding(key.WithKeys("i", "enter"), key.WithHelp("i", "edit")),
		Add:         key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "add below")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Write:       key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write")),
		Reload:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
		Yank:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank label")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp feeds the one-line help in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Add, k.Delete, k.Write, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Toggle},
		{k.First, k.Last, k.ExpandAll, k.CollapseAll},
		{k.Edit, k.Add, k.Delete, k.Yank},
		{k.Write, k.Reload, k.Help, k.Quit},
	}
}
