package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"go-pianoroll/widgets"
)

type keyMap struct {
	Tool      key.Binding
	Play      key.Binding
	Delete    key.Binding
	Undo      key.Binding
	Redo      key.Binding
	Copy      key.Binding
	Paste     key.Binding
	SelectAll key.Binding
	Cancel    key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Quantize  key.Binding
	TempoUp   key.Binding
	TempoDown key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Tool:      key.NewBinding(key.WithKeys("tab", "t"), key.WithHelp("tab", "pencil/select")),
		Play:      key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "play/stop")),
		Delete:    key.NewBinding(key.WithKeys("x", "delete", "backspace"), key.WithHelp("x", "delete selection")),
		Undo:      key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		Redo:      key.NewBinding(key.WithKeys("U", "ctrl+r", "ctrl+y"), key.WithHelp("U", "redo")),
		Copy:      key.NewBinding(key.WithKeys("c", "y"), key.WithHelp("c", "copy selection")),
		Paste:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "paste at playhead")),
		SelectAll: key.NewBinding(key.WithKeys("a", "ctrl+a"), key.WithHelp("a", "select all")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel / deselect")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Quantize:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "snap on/off")),
		TempoUp:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "tempo +5")),
		TempoDown: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "tempo -5")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "scroll left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "scroll right")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tool, k.Play, k.Delete, k.Undo, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tool, k.Play, k.Cancel},
		{k.Delete, k.Undo, k.Redo},
		{k.Copy, k.Paste, k.SelectAll},
		{k.ZoomIn, k.ZoomOut, k.Quantize},
	}
}

// sections groups the bindings for the full help panel
func (k keyMap) sections() []widgets.KeySection {
	return []widgets.KeySection{
		{Title: "Tools", Keys: []key.Binding{k.Tool, k.Cancel}},
		{Title: "Edit", Keys: []key.Binding{k.Delete, k.Undo, k.Redo, k.Copy, k.Paste, k.SelectAll}},
		{Title: "View", Keys: []key.Binding{k.ZoomIn, k.ZoomOut, k.Left, k.Right, k.Up, k.Down}},
		{Title: "Transport", Keys: []key.Binding{k.Play, k.TempoUp, k.TempoDown, k.Quantize}},
		{Title: "Mouse", Keys: []key.Binding{
			key.NewBinding(key.WithKeys("left"), key.WithHelp("left drag", "draw / move / resize / box select")),
			key.NewBinding(key.WithKeys("middle"), key.WithHelp("middle drag", "scroll")),
			key.NewBinding(key.WithKeys("right"), key.WithHelp("right click", "toggle tool")),
			key.NewBinding(key.WithKeys("shift"), key.WithHelp("shift/ctrl", "add to selection")),
		}},
	}
}
