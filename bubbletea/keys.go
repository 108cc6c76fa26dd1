package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the explorer key bindings. Printable keys go to the
// focused input, so commands use control and navigation keys.
type KeyMap struct {
	NextField  key.Binding
	PrevField  key.Binding
	Submit     key.Binding
	Up         key.Binding
	Down       key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	Back       key.Binding
	Forward    key.Binding
	Department key.Binding
	Highlight  key.Binding
	View       key.Binding
	Sort       key.Binding
	Reset      key.Binding
	Copy       key.Binding
	Quit       key.Binding
}

// DefaultKeys are the key bindings used by New.
var DefaultKeys = KeyMap{
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+n"),
		key.WithHelp("pgdn", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("pgup", "ctrl+p"),
		key.WithHelp("pgup", "prev page"),
	),
	Back: key.NewBinding(
		key.WithKeys("alt+left", "ctrl+b"),
		key.WithHelp("ctrl+b", "back"),
	),
	Forward: key.NewBinding(
		key.WithKeys("alt+right", "ctrl+f"),
		key.WithHelp("ctrl+f", "forward"),
	),
	Department: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "department"),
	),
	Highlight: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "highlights"),
	),
	View: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "layout"),
	),
	Sort: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "sort"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reset"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy link"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.NextField, k.NextPage, k.PrevPage, k.Back, k.Forward,
		k.Department, k.Highlight, k.View, k.Sort, k.Reset, k.Copy, k.Quit,
	}
}
