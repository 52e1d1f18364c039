// Package info is the side panel: the selected flame's transforms and the
// scheduler's lanes and loops.
package info

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/billie-coop/fr0st/internal/flame"
	"github.com/billie-coop/fr0st/internal/render"
	"github.com/billie-coop/fr0st/internal/scheduler"
	"github.com/billie-coop/fr0st/internal/tui/components/core"
	"github.com/billie-coop/fr0st/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// Model implements the info panel
type Model struct {
	core.SizeableBase

	flame  *flame.Flame
	xform  int
	status scheduler.Status
}

var _ core.Component = (*Model)(nil)
var _ core.Sizeable = (*Model)(nil)

func New() *Model {
	return &Model{}
}

func (m *Model) Init() tea.Cmd                       { return nil }
func (m *Model) Update(tea.Msg) (tea.Model, tea.Cmd) { return m, nil }

// SetFlame shows f with xform highlighted
func (m *Model) SetFlame(f *flame.Flame, xform int) {
	m.flame = f
	m.xform = xform
}

// SetStatus updates the scheduler section
func (m *Model) SetStatus(st scheduler.Status) {
	m.status = st
}

func (m *Model) View() string {
	if m.Width == 0 {
		return ""
	}
	s := styles.CurrentTheme().S()

	var b strings.Builder
	if f := m.flame; f != nil {
		b.WriteString(s.Title.Render(f.Name) + "\n")
		b.WriteString(s.Muted.Render(fmt.Sprintf("scale %.1f  rotate %.0f°", f.Scale, f.Rotate)) + "\n\n")

		for i := range f.Xforms {
			b.WriteString(m.renderXform(i, &f.Xforms[i]) + "\n")
		}
		if f.Final != nil {
			b.WriteString(s.Muted.Render("final: "+variations(f.Final)) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())

	return lipgloss.NewStyle().
		Width(m.Width).
		Height(m.Height).
		MaxHeight(m.Height).
		Render(b.String())
}

func (m *Model) renderXform(i int, x *flame.Xform) string {
	s := styles.CurrentTheme().S()

	line := fmt.Sprintf("%d w%.2f c%.2f %s", i+1, x.Weight, x.Color, variations(x))
	if i == m.xform {
		return s.Selected.Render(styles.SelectIcon + " " + line)
	}
	return s.Text.Render("  " + line)
}

func variations(x *flame.Xform) string {
	names := make([]string, 0, len(x.Variations))
	for name := range x.Variations {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s:%.2g", name, x.Variations[name])
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderStatus() string {
	s := styles.CurrentTheme().S()
	st := m.status

	lines := []string{
		s.Subtitle.Render("Scheduler"),
		fmt.Sprintf("lanes  %d preview  %d thumb  %d bg",
			st.Lanes.Previews, st.Lanes.Thumbnails, st.Lanes.Background),
		loopLine("fast", st.Fast),
		loopLine("slow", st.Slow),
		fmt.Sprintf("superseded %d", st.Superseded),
	}

	switch {
	case st.Stopped:
		lines = append(lines, s.Error.Render(styles.StoppedIcon+" stopped"))
	case st.Background == render.Pause:
		lines = append(lines, s.Warning.Render(styles.PausedIcon+" background paused"))
	}
	return strings.Join(lines, "\n")
}

func loopLine(name string, st scheduler.LoopStats) string {
	s := styles.CurrentTheme().S()

	icon := s.Subtle.Render("·")
	if st.Busy {
		icon = s.Success.Render(styles.RunningIcon)
	}
	return fmt.Sprintf("%s %s %d ok %d fail %d abort ~%s",
		icon, name, st.Processed, st.Failed, st.Aborted, st.AvgDuration.Round(time.Millisecond))
}
