package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

// RenderThemeGradient renders text with the current theme's primary gradient
func RenderThemeGradient(text string, bold bool) string {
	theme := CurrentTheme()
	return ApplyGradient(text, theme.Primary, theme.Secondary, bold)
}

// RenderGradientBar draws a width-cell bar with the filled share (clamped to
// [0, 1]) in the theme gradient and the rest as shade.
func RenderGradientBar(width int, filled float64) string {
	if width <= 0 {
		return ""
	}
	theme := CurrentTheme()
	n := int(float64(width) * min(max(filled, 0), 1))

	var b strings.Builder
	for _, c := range blendColors(n, theme.Primary, theme.Secondary) {
		b.WriteString(lipgloss.NewStyle().Foreground(c).Render("█"))
	}
	if rest := width - n; rest > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.BgHighlight).Render(strings.Repeat("░", rest)))
	}
	return b.String()
}
