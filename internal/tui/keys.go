package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Flip       key.Binding
	Next       key.Binding
	Previous   key.Binding
	Understood key.Binding
	Learning   key.Binding
	Shuffle    key.Binding
	Reset      key.Binding
	Import     key.Binding
	Example    key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Flip: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "flip"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Previous: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Understood: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "understood"),
		),
		Learning: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "still learning"),
		),
		Shuffle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "shuffle"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "upload new CSV"),
		),
		Import: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "import CSV"),
		),
		Example: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "CSV example"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Flip, k.Previous, k.Next, k.Understood, k.Learning,
		k.Shuffle, k.Reset, k.Import, k.Example, k.Quit,
	}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Flip, k.Previous, k.Next},
		{k.Understood, k.Learning, k.Shuffle},
		{k.Reset, k.Import, k.Example, k.Quit},
	}
}

// setReviewing enables the bindings that make sense for the current state.
func (k *keyMap) setReviewing(reviewing, atStart, atEnd bool) {
	k.Flip.SetEnabled(reviewing)
	k.Next.SetEnabled(reviewing && !atEnd)
	k.Previous.SetEnabled(reviewing && !atStart)
	k.Understood.SetEnabled(reviewing)
	k.Learning.SetEnabled(reviewing)
	k.Shuffle.SetEnabled(reviewing)
	k.Reset.SetEnabled(reviewing)
	k.Import.SetEnabled(!reviewing)
	k.Example.SetEnabled(!reviewing)
}
