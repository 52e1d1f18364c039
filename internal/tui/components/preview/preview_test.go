package preview

import (
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFit(t *testing.T) {
	tests := []struct {
		name       string
		src        image.Point
		cols, rows int
		want       image.Point
	}{
		{"wide image limited by width", image.Pt(200, 100), 40, 40, image.Pt(40, 20)},
		{"tall image limited by height", image.Pt(100, 200), 40, 10, image.Pt(10, 20)},
		{"odd height rounds down", image.Pt(40, 30), 10, 20, image.Pt(10, 6)},
		{"empty source", image.Pt(0, 10), 10, 10, image.Point{}},
		{"no room", image.Pt(10, 10), 0, 10, image.Point{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fit(tt.src, tt.cols, tt.rows))
		})
	}
}

func TestHalfBlocks(t *testing.T) {
	out := HalfBlocks(solid(64, 48, color.NRGBA{R: 255, A: 255}), 16, 20, color.Black)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 6)
	for _, line := range lines {
		assert.Equal(t, 16, lipgloss.Width(line))
	}
}

func TestScale_CompositesTransparency(t *testing.T) {
	img := Scale(solid(8, 8, color.NRGBA{}), image.Pt(4, 4), color.RGBA{B: 200, A: 255})
	assert.Equal(t, color.RGBA{B: 200, A: 255}, img.RGBAAt(1, 1))
}

func TestModelView(t *testing.T) {
	m := New()
	m.SetSize(30, 12)
	m.SetTitle("spiral")
	assert.Contains(t, m.View(), "waiting for render")

	m.SetImage(solid(60, 40, color.White))
	m.SetProgress("render", 0.5, 3*time.Second)
	view := m.View()
	assert.Contains(t, ansi.Strip(view), "spiral")
	assert.Contains(t, view, "50%")
	for _, line := range strings.Split(view, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 30)
	}
}
