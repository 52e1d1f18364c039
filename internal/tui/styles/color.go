package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// ApplyGradient colors text one grapheme at a time from color1 to color2
func ApplyGradient(text string, color1, color2 color.Color, bold bool) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	var out strings.Builder
	for i, c := range blendColors(len(clusters), color1, color2) {
		out.WriteString(lipgloss.NewStyle().Foreground(c).Bold(bold).Render(clusters[i]))
	}
	return out.String()
}

// blendColors returns steps colors evenly spaced in HCL between the two
// endpoints, which keeps perceived brightness even along the ramp.
func blendColors(steps int, from, to color.Color) []color.Color {
	switch {
	case steps <= 0:
		return nil
	case steps == 1:
		return []color.Color{from}
	}

	a, _ := colorful.MakeColor(from)
	b, _ := colorful.MakeColor(to)

	colors := make([]color.Color, steps)
	for i := range colors {
		colors[i] = a.BlendHcl(b, float64(i)/float64(steps-1)).Clamped()
	}
	return colors
}
