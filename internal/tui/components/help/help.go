// Package help is the key reference overlay, rendered with glamour in a
// scrollable viewport.
package help

import (
	"strings"

	"github.com/billie-coop/fr0st/internal/logging"
	"github.com/billie-coop/fr0st/internal/tui/components/core"
	"github.com/billie-coop/fr0st/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// Model implements the help overlay
type Model struct {
	viewport viewport.Model
	markdown string
	width    int
	height   int
}

var _ core.Component = (*Model)(nil)
var _ core.Sizeable = (*Model)(nil)

// New creates a help overlay listing bindings
func New(bindings []key.Binding) *Model {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	return &Model{
		viewport: vp,
		markdown: Markdown(bindings),
	}
}

// Markdown builds the help page for bindings
func Markdown(bindings []key.Binding) string {
	var b strings.Builder
	b.WriteString("# fr0st\n\n")
	b.WriteString("Previews render on the fast lane and replace each other. ")
	b.WriteString("A full render runs in the background and pauses while previews are drawn.\n\n")
	b.WriteString("## Keys\n\n")
	b.WriteString("| key | action |\n|---|---|\n")
	for _, binding := range bindings {
		h := binding.Help()
		if h.Key == "" {
			continue
		}
		b.WriteString("| `" + h.Key + "` | " + h.Desc + " |\n")
	}
	return b.String()
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// SetSize implements Sizeable and re-renders the page for the new width
func (m *Model) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height

	m.viewport = viewport.New(
		viewport.WithWidth(width),
		viewport.WithHeight(height),
	)
	m.viewport.MouseWheelEnabled = true
	m.refresh()
	return nil
}

// refresh renders the page with the current theme
func (m *Model) refresh() {
	content := m.markdown
	r, err := styles.GetMarkdownRenderer(max(m.width-4, 20))
	if err == nil {
		content, err = r.Render(m.markdown)
	}
	if err != nil {
		logging.Logger().Warn("help: markdown render failed", "error", err)
		content = m.markdown
	}
	m.viewport.SetContent(strings.TrimRight(content, "\n"))
	m.viewport.GotoTop()
}

// Refresh re-renders after a theme change
func (m *Model) Refresh() {
	m.refresh()
}

func (m *Model) View() string {
	return m.viewport.View()
}
