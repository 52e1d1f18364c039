// Package core holds the contracts shared by the browser's panes.
package core

import tea "github.com/charmbracelet/bubbletea/v2"

// Component is a pane the top-level model forwards messages to. Panes
// render to a string; only the top-level model produces a tea.View.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (tea.Model, tea.Cmd)
	View() string
}

// Sizeable panes are told their cell size on every resize.
type Sizeable interface {
	SetSize(width, height int) tea.Cmd
}

// SizeableBase stores the size for panes that only need to remember it.
type SizeableBase struct {
	Width, Height int
}

func (s *SizeableBase) SetSize(width, height int) tea.Cmd {
	s.Width, s.Height = width, height
	return nil
}
