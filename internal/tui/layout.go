package tui

import (
	tea "github.com/charmbracelet/bubbletea/v2"
)

const (
	statusBarHeight = 1
	thumbCellCols   = 12
	// thumbnail rows, label and border
	thumbStripHeight = thumbCellCols/2 + 3
)

// resizeComponents resizes all components based on current window size
func (m *Model) resizeComponents() tea.Cmd {
	var cmds []tea.Cmd

	infoWidth := m.calculateInfoWidth()
	mainWidth := m.width - infoWidth
	contentHeight := m.height - statusBarHeight
	previewHeight := contentHeight - thumbStripHeight

	// Each bordered component loses 2 chars width and 2 lines height for borders
	cmds = append(cmds, m.preview.SetSize(mainWidth-2, previewHeight-2))
	cmds = append(cmds, m.thumbs.SetSize(mainWidth, thumbStripHeight))
	cmds = append(cmds, m.info.SetSize(infoWidth-2, contentHeight-2))
	cmds = append(cmds, m.statusBar.SetSize(m.width, statusBarHeight))
	cmds = append(cmds, m.help.SetSize(m.helpWidth()-2, m.height*2/3))

	return tea.Batch(cmds...)
}

// calculateInfoWidth calculates the appropriate info panel width
func (m *Model) calculateInfoWidth() int {
	if m.width < 80 {
		return 28
	}
	if m.width < 120 {
		return 36
	}
	return 44
}

func (m *Model) helpWidth() int {
	return min(m.width-4, 72)
}
