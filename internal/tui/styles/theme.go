package styles

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/glamour/v2/ansi"
	"github.com/charmbracelet/lipgloss/v2"
)

// Theme names the colors every component draws with.
type Theme struct {
	Name string

	// Gradient endpoints and highlights
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color

	BgBase      color.Color
	BgSubtle    color.Color
	BgHighlight color.Color

	FgBase     color.Color
	FgMuted    color.Color
	FgSubtle   color.Color
	FgInverted color.Color

	Border      color.Color
	BorderFocus color.Color

	Success color.Color
	Error   color.Color
	Warning color.Color

	styles *Styles
}

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	Border        lipgloss.Style
	BorderFocused lipgloss.Style
	Selected      lipgloss.Style

	Markdown ansi.StyleConfig
}

// S returns the theme's styles, built on first use.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	text := lipgloss.NewStyle().Foreground(t.FgBase)
	fg := func(c color.Color) lipgloss.Style { return text.Foreground(c) }
	box := func(c color.Color) lipgloss.Style {
		return text.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(c)
	}

	return &Styles{
		Title:    fg(t.Accent).Bold(true),
		Subtitle: fg(t.Secondary).Bold(true),
		Text:     text,
		Muted:    fg(t.FgMuted),
		Subtle:   fg(t.FgSubtle),

		Success: fg(t.Success),
		Error:   fg(t.Error),
		Warning: fg(t.Warning),

		Border:        box(t.Border),
		BorderFocused: box(t.BorderFocus),
		Selected:      text.Background(t.BgHighlight).Bold(true),

		Markdown: t.markdownStyles(),
	}
}

// ParseHex converts a #rrggbb string to a color
func ParseHex(hex string) color.Color {
	var r, g, b uint8
	fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// colorToHex converts color to a #rrggbb string
func colorToHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
