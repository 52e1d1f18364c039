// Package preview shows the most recent preview render as half-block
// terminal cells.
package preview

import (
	"fmt"
	"image"
	"time"

	"github.com/billie-coop/fr0st/internal/tui/components/core"
	"github.com/billie-coop/fr0st/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// Model is the preview pane. Rendering the half-block grid is expensive,
// so it is cached until the image or the size changes.
type Model struct {
	core.SizeableBase

	title   string
	img     image.Image
	cached  string
	spinner spinner.Model
	busy    bool

	progress     float64
	remaining    time.Duration
	progressText string
	showProgress bool
}

var _ core.Component = (*Model)(nil)
var _ core.Sizeable = (*Model)(nil)

// New creates an empty preview pane
func New() *Model {
	return &Model{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Init starts the spinner
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update advances the spinner
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// SetSize implements Sizeable
func (m *Model) SetSize(width, height int) tea.Cmd {
	if width != m.Width || height != m.Height {
		m.cached = ""
	}
	return m.SizeableBase.SetSize(width, height)
}

// SetTitle sets the caption shown above the image
func (m *Model) SetTitle(title string) {
	m.title = title
}

// SetImage replaces the displayed image
func (m *Model) SetImage(img image.Image) {
	m.img = img
	m.cached = ""
}

// Image returns the displayed image, nil before the first delivery
func (m *Model) Image() image.Image {
	return m.img
}

// SetBusy toggles the spinner next to the title
func (m *Model) SetBusy(busy bool) {
	m.busy = busy
}

// SetProgress shows a progress bar under the image
func (m *Model) SetProgress(label string, fraction float64, remaining time.Duration) {
	m.showProgress = true
	m.progressText = label
	m.progress = fraction
	m.remaining = remaining
}

// ClearProgress hides the progress bar
func (m *Model) ClearProgress() {
	m.showProgress = false
}

// ShowingProgress reports whether the progress bar is up and its fraction.
func (m *Model) ShowingProgress() (bool, float64) {
	return m.showProgress, m.progress
}

// imageRows is the cell height left for the image after the title and
// progress lines.
func (m *Model) imageRows() int {
	return max(m.Height-2, 0)
}

func (m *Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}
	theme := styles.CurrentTheme()
	s := theme.S()

	title := styles.RenderThemeGradient(m.title, true)
	if m.busy {
		title += " " + m.spinner.View()
	}

	body := s.Muted.Render("waiting for render…")
	if m.img != nil {
		if m.cached == "" {
			m.cached = HalfBlocks(m.img, m.Width, m.imageRows(), theme.BgBase)
		}
		body = m.cached
	}
	body = lipgloss.Place(m.Width, m.imageRows(), lipgloss.Center, lipgloss.Center, body)

	footer := ""
	if m.showProgress {
		footer = m.renderProgress()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, footer)
}

func (m *Model) renderProgress() string {
	s := styles.CurrentTheme().S()
	label := fmt.Sprintf(" %3.0f%%", m.progress*100)
	if m.remaining > 0 {
		label += " eta " + m.remaining.Round(time.Second).String()
	}
	prefix := m.progressText + " "

	barWidth := m.Width - lipgloss.Width(prefix) - lipgloss.Width(label)
	if barWidth < 4 {
		return s.Muted.Render(prefix + label)
	}
	return s.Muted.Render(prefix) + styles.RenderGradientBar(barWidth, m.progress) + s.Muted.Render(label)
}
