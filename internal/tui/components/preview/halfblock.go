package preview

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"golang.org/x/image/draw"
)

// upperHalf paints the top pixel as foreground and the bottom pixel as
// background, giving two square-ish pixels per terminal cell.
const upperHalf = "▀"

// Fit returns the largest pixel size with src's aspect ratio that fits in
// cols x rows cells. The height is even so every cell has two pixels.
func Fit(src image.Point, cols, rows int) image.Point {
	if src.X <= 0 || src.Y <= 0 || cols <= 0 || rows <= 0 {
		return image.Point{}
	}
	maxW, maxH := cols, rows*2

	w, h := maxW, src.Y*maxW/src.X
	if h > maxH {
		w, h = src.X*maxH/src.Y, maxH
	}
	h -= h % 2
	return image.Pt(max(w, 1), max(h, 2))
}

// Scale resizes img to size with Catmull-Rom filtering, compositing any
// transparency over bg.
func Scale(img image.Image, size image.Point, bg color.Color) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// HalfBlocks renders img into at most cols x rows terminal cells.
func HalfBlocks(img image.Image, cols, rows int, bg color.Color) string {
	size := Fit(img.Bounds().Size(), cols, rows)
	if size.X == 0 {
		return ""
	}
	px := Scale(img, size, bg)

	lines := make([]string, 0, size.Y/2)
	for y := 0; y < size.Y; y += 2 {
		var line strings.Builder
		for x := 0; x < size.X; x++ {
			cell := lipgloss.NewStyle().
				Foreground(px.RGBAAt(x, y)).
				Background(px.RGBAAt(x, y+1))
			line.WriteString(cell.Render(upperHalf))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
