package flame

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

func hex(s string) colorful.Color {
	c, _ := colorful.Hex(s)
	return c
}

// Default returns a small built-in library used when no file is given.
func Default() []*Flame {
	return []*Flame{
		{
			Name:   "sierpinski",
			Size:   image.Pt(640, 480),
			Center: [2]float64{0.5, 0.45},
			Scale:  380,
			Xforms: []Xform{
				{Coefs: [6]float64{0.5, 0, 0, 0.5, 0, 0}, Weight: 1, Color: 0, Variations: map[string]float64{"linear": 1}},
				{Coefs: [6]float64{0.5, 0, 0, 0.5, 0.5, 0}, Weight: 1, Color: 0.5, Variations: map[string]float64{"linear": 1}},
				{Coefs: [6]float64{0.5, 0, 0, 0.5, 0, 0.5}, Weight: 1, Color: 1, Variations: map[string]float64{"linear": 1}},
			},
			Palette: GradientPalette(hex("#C0392B"), hex("#F39C12"), hex("#F4D03F")),
		},
		{
			Name:  "spiral",
			Size:  image.Pt(640, 480),
			Scale: 160,
			Xforms: []Xform{
				{Coefs: [6]float64{0.82, 0.38, -0.38, 0.82, 0.1, 0}, Weight: 3, Color: 0.1, Variations: map[string]float64{"linear": 0.7, "swirl": 0.3}},
				{Coefs: [6]float64{0.3, 0, 0, 0.3, 1, 0}, Weight: 1, Color: 0.9, Variations: map[string]float64{"spherical": 1}},
			},
			Palette: GradientPalette(hex("#0f172a"), hex("#60a5fa"), hex("#a78bfa"), hex("#f472b6")),
		},
		{
			Name:   "waves",
			Size:   image.Pt(640, 480),
			Scale:  120,
			Rotate: 15,
			Xforms: []Xform{
				{Coefs: [6]float64{0.6, 0.2, -0.2, 0.6, 0.4, 0.3}, Weight: 1, Color: 0, Variations: map[string]float64{"sinusoidal": 1}},
				{Coefs: [6]float64{-0.5, 0.1, 0.3, 0.7, -0.6, 0.2}, Weight: 1, Color: 0.6, Variations: map[string]float64{"linear": 0.5, "spherical": 0.5}},
				{Coefs: [6]float64{0.4, -0.4, 0.4, 0.4, 0, -0.8}, Weight: 0.5, Color: 1, Variations: map[string]float64{"swirl": 1}},
			},
			Palette: GradientPalette(hex("#27AE60"), hex("#00CED1"), hex("#7c3aed")),
		},
	}
}
