package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap 终端界面的按键绑定
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Place  key.Binding
	Remove key.Binding
	Rotate key.Binding
	Next   key.Binding
	Clear  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/w", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("↓/s", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "a", "h"), key.WithHelp("←/a", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "d", "l"), key.WithHelp("→/d", "right")),
		Place:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "place")),
		Remove: key.NewBinding(key.WithKeys("x", "backspace"), key.WithHelp("x", "remove")),
		Rotate: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rotate")),
		Next:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next block")),
		Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp 实现 help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Place, k.Remove, k.Rotate, k.Help, k.Quit}
}

// FullHelp 实现 help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Place, k.Remove, k.Rotate, k.Next},
		{k.Clear, k.Help, k.Quit},
	}
}
