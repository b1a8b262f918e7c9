package tui

import "github.com/charmbracelet/bubbles/key"

// speedStep is the factor applied by the faster and slower keys.
const speedStep = 2.0

// KeyMap defines the key bindings for the replay viewer.
type KeyMap struct {
	Pause   key.Binding
	Faster  key.Binding
	Slower  key.Binding
	Restart key.Binding
	View    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Faster, k.Slower, k.Restart, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Faster, k.Slower},
		{k.Restart, k.View},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space/p", "pause"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "=", "right", "l"),
			key.WithHelp("+/→", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-", "_", "left", "h"),
			key.WithHelp("-/←", "slower"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		View: key.NewBinding(
			key.WithKeys("v", "tab"),
			key.WithHelp("v", "switch view"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
