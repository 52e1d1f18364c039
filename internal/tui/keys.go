package tui

import "github.com/charmbracelet/bubbles/v2/key"

// KeyMap defines the editor's key bindings
type KeyMap struct {
	PrevFlame    key.Binding
	NextFlame    key.Binding
	NextXform    key.Binding
	RotateLeft   key.Binding
	RotateRight  key.Binding
	Grow         key.Binding
	Shrink       key.Binding
	LargePreview key.Binding
	Render       key.Binding
	Thumbnails   key.Binding
	Cancel       key.Binding
	Theme        key.Binding
	Help         key.Binding
	Close        key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevFlame: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous flame"),
		),
		NextFlame: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next flame"),
		),
		NextXform: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "select next xform"),
		),
		RotateLeft: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "rotate xform left"),
		),
		RotateRight: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "rotate xform right"),
		),
		Grow: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "scale xform up"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "scale xform down"),
		),
		LargePreview: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "large preview"),
		),
		Render: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "render to PNG in the background"),
		),
		Thumbnails: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "re-render thumbnails"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "cancel large preview and render"),
		),
		Theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "switch theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Bindings lists every binding in help order
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{
		k.PrevFlame, k.NextFlame, k.NextXform,
		k.RotateLeft, k.RotateRight, k.Grow, k.Shrink,
		k.LargePreview, k.Render, k.Thumbnails, k.Cancel,
		k.Theme, k.Help, k.Quit,
	}
}
