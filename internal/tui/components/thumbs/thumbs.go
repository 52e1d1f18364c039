// Package thumbs draws the strip of flame thumbnails.
package thumbs

import (
	"image"

	"github.com/billie-coop/fr0st/internal/tui/components/core"
	"github.com/billie-coop/fr0st/internal/tui/components/preview"
	"github.com/billie-coop/fr0st/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/rivo/uniseg"
)

// Item is one thumbnail slot
type Item struct {
	Name     string
	img      image.Image
	rendered string
}

// Model is a horizontal strip of thumbnails with one selected
type Model struct {
	core.SizeableBase

	items    []Item
	selected int
	cellCols int
}

var _ core.Component = (*Model)(nil)
var _ core.Sizeable = (*Model)(nil)

// New creates a strip whose thumbnails are cellCols cells wide.
func New(cellCols int) *Model {
	return &Model{cellCols: max(cellCols, 4)}
}

func (m *Model) Init() tea.Cmd                       { return nil }
func (m *Model) Update(tea.Msg) (tea.Model, tea.Cmd) { return m, nil }

// SetItems resets the strip to one empty slot per name
func (m *Model) SetItems(names []string) {
	m.items = make([]Item, len(names))
	for i, name := range names {
		m.items[i].Name = name
	}
	m.selected = min(m.selected, max(len(names)-1, 0))
}

// SetImage stores a delivered thumbnail. Out of range indexes are ignored;
// a thumbnail can land after the flame list shrank.
func (m *Model) SetImage(i int, img image.Image) {
	if i < 0 || i >= len(m.items) {
		return
	}
	m.items[i].img = img
	m.items[i].rendered = ""
}

// Select moves the highlight, clamped to the strip
func (m *Model) Select(i int) {
	m.selected = min(max(i, 0), max(len(m.items)-1, 0))
}

// Selected returns the highlighted index
func (m *Model) Selected() int {
	return m.selected
}

// cellRows keeps thumbnails roughly square: two pixels per row.
func (m *Model) cellRows() int {
	return m.cellCols / 2
}

// Window returns the half-open range of items that fit in width, keeping
// the selection visible.
func (m *Model) Window() (int, int) {
	perCell := m.cellCols + 2 // border
	visible := max(m.Width/perCell, 1)
	if visible >= len(m.items) {
		return 0, len(m.items)
	}
	start := min(max(m.selected-visible/2, 0), len(m.items)-visible)
	return start, start + visible
}

func (m *Model) View() string {
	if m.Width == 0 || len(m.items) == 0 {
		return ""
	}
	theme := styles.CurrentTheme()
	s := theme.S()

	start, end := m.Window()
	cells := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		item := &m.items[i]
		if item.img != nil && item.rendered == "" {
			item.rendered = preview.HalfBlocks(item.img, m.cellCols, m.cellRows(), theme.BgBase)
		}

		body := lipgloss.Place(m.cellCols, m.cellRows(), lipgloss.Center, lipgloss.Center, item.rendered)
		label := truncate(item.Name, m.cellCols)
		box := s.Border
		if i == m.selected {
			box = s.BorderFocused
			label = s.Title.Render(label)
		} else {
			label = s.Muted.Render(label)
		}
		cells = append(cells, box.Render(lipgloss.JoinVertical(lipgloss.Center, body, label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// truncate cuts s to width cells on grapheme boundaries
func truncate(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}
	var out string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		if uniseg.StringWidth(out+gr.Str()) > width-1 {
			break
		}
		out += gr.Str()
	}
	return out + "…"
}
