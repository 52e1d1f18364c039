package flame

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// PaletteSize is the number of entries in a flam3 palette.
const PaletteSize = 256

// Palette maps an xform colour index in [0, 1] to a colour.
type Palette []color.RGBA

// Lookup returns the entry for t, clamped to [0, 1].
func (p Palette) Lookup(t float64) color.RGBA {
	if len(p) == 0 {
		return color.RGBA{255, 255, 255, 255}
	}
	if math.IsNaN(t) || t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p[int(t*float64(len(p)-1))]
}

// GradientPalette builds a full palette by blending evenly spaced stops in
// HCL space.
func GradientPalette(stops ...color.Color) Palette {
	p := make(Palette, PaletteSize)
	switch len(stops) {
	case 0:
		for i := range p {
			v := uint8(i)
			p[i] = color.RGBA{v, v, v, 255}
		}
		return p
	case 1:
		r, g, b, _ := stops[0].RGBA()
		for i := range p {
			p[i] = color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 255}
		}
		return p
	}

	cs := make([]colorful.Color, len(stops))
	for i, s := range stops {
		cs[i], _ = colorful.MakeColor(s)
	}

	segments := float64(len(cs) - 1)
	for i := range p {
		pos := float64(i) / float64(PaletteSize-1) * segments
		seg := int(pos)
		if seg >= len(cs)-1 {
			seg = len(cs) - 2
		}
		c := cs[seg].BlendHcl(cs[seg+1], pos-float64(seg)).Clamped()
		r, g, b := c.RGB255()
		p[i] = color.RGBA{r, g, b, 255}
	}
	return p
}
