package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the preview's key bindings. Move exists for the help view;
// dispatch uses the four directional bindings.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	Move      key.Binding
	ScaleUp   key.Binding
	ScaleDown key.Binding
	Anchor    key.Binding

	NextPage key.Binding
	PrevPage key.Binding
	NextSig  key.Binding
	DPI      key.Binding

	Save    key.Binding
	Refresh key.Binding
	Log     key.Binding
	Scroll  key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k")),
		Down:  key.NewBinding(key.WithKeys("down", "j")),
		Left:  key.NewBinding(key.WithKeys("left", "h")),
		Right: key.NewBinding(key.WithKeys("right", "l")),

		Move: key.NewBinding(
			key.WithKeys("up", "down", "left", "right", "k", "j", "h", "l"),
			key.WithHelp("↑↓←→", "move"),
		),
		ScaleUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "grow"),
		),
		ScaleDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "shrink"),
		),
		Anchor: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "anchor"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "]"),
			key.WithHelp("n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "["),
			key.WithHelp("p", "prev page"),
		),
		NextSig: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "signature"),
		),
		DPI: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "resolution"),
		),
		Save: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "write file"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "re-read inputs"),
		),
		Log: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "tool output"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("pgup", "pgdown", "home", "end"),
			key.WithHelp("pgup/pgdn", "scroll output"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.ScaleUp, k.NextPage, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.ScaleUp, k.ScaleDown, k.Anchor},
		{k.PrevPage, k.NextPage, k.NextSig, k.DPI},
		{k.Save, k.Refresh, k.Log, k.Scroll},
		{k.Help, k.Quit},
	}
}
