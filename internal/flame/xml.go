package flame

import (
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
)

// xform attributes that are not variation weights.
var xformAttrs = map[string]bool{
	"weight": true, "color": true, "coefs": true, "post": true,
	"symmetry": true, "color_speed": true, "opacity": true, "animate": true,
	"chaos": true, "var_color": true, "plotmode": true,
}

type xmlFlames struct {
	Flames []xmlFlame `xml:"flame"`
}

type xmlFlame struct {
	Name   string     `xml:"name,attr"`
	Size   string     `xml:"size,attr"`
	Center string     `xml:"center,attr"`
	Scale  float64    `xml:"scale,attr"`
	Rotate float64    `xml:"rotate,attr"`
	Xforms []xmlXform `xml:"xform"`
	Final  *xmlXform  `xml:"finalxform"`
	Colors []xmlColor `xml:"color"`
}

type xmlXform struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

type xmlColor struct {
	Index int    `xml:"index,attr"`
	RGB   string `xml:"rgb,attr"`
}

// Parse reads every flame in a `.flame` document. Both a bare <flame> and a
// <flames> collection are accepted.
func Parse(r io.Reader) ([]*Flame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read flame data: %w", err)
	}

	var doc xmlFlames
	if strings.Contains(string(data), "<flames") {
		if err := xml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse flame XML: %w", err)
		}
	} else {
		var single xmlFlame
		if err := xml.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("failed to parse flame XML: %w", err)
		}
		doc.Flames = []xmlFlame{single}
	}

	if len(doc.Flames) == 0 {
		return nil, ErrNoFlames
	}

	flames := make([]*Flame, 0, len(doc.Flames))
	for i, xf := range doc.Flames {
		f, err := xf.convert()
		if err != nil {
			return nil, fmt.Errorf("flame %d (%q): %w", i, xf.Name, err)
		}
		flames = append(flames, f)
	}
	return flames, nil
}

// ParseFile reads every flame in the file at path.
func ParseFile(path string) ([]*Flame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open flame file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func (xf xmlFlame) convert() (*Flame, error) {
	f := &Flame{
		Name:   xf.Name,
		Size:   image.Pt(640, 480),
		Scale:  xf.Scale,
		Rotate: xf.Rotate,
	}
	if f.Scale == 0 {
		f.Scale = 100
	}

	if xf.Size != "" {
		v, err := floats(xf.Size, 2)
		if err != nil {
			return nil, fmt.Errorf("size: %w", err)
		}
		f.Size = image.Pt(int(v[0]), int(v[1]))
	}
	if xf.Center != "" {
		v, err := floats(xf.Center, 2)
		if err != nil {
			return nil, fmt.Errorf("center: %w", err)
		}
		f.Center = [2]float64{v[0], v[1]}
	}

	for i, x := range xf.Xforms {
		xform, err := x.convert()
		if err != nil {
			return nil, fmt.Errorf("xform %d: %w", i, err)
		}
		f.Xforms = append(f.Xforms, xform)
	}
	if len(f.Xforms) == 0 {
		return nil, ErrNoXforms
	}

	if xf.Final != nil {
		final, err := xf.Final.convert()
		if err != nil {
			return nil, fmt.Errorf("finalxform: %w", err)
		}
		f.Final = &final
	}

	f.Palette = GradientPalette()
	for _, c := range xf.Colors {
		if c.Index < 0 || c.Index >= PaletteSize {
			continue
		}
		v, err := floats(c.RGB, 3)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", c.Index, err)
		}
		f.Palette[c.Index] = color.RGBA{uint8(v[0]), uint8(v[1]), uint8(v[2]), 255}
	}

	return f, nil
}

func (x xmlXform) convert() (Xform, error) {
	xform := Xform{
		Coefs:      [6]float64{1, 0, 0, 1, 0, 0},
		Weight:     1,
		Variations: make(map[string]float64),
	}

	for _, attr := range x.Attrs {
		name := attr.Name.Local
		switch name {
		case "coefs":
			v, err := floats(attr.Value, 6)
			if err != nil {
				return xform, ErrInvalidCoefs
			}
			copy(xform.Coefs[:], v)
		case "weight":
			w, err := strconv.ParseFloat(attr.Value, 64)
			if err != nil {
				return xform, fmt.Errorf("weight: %w", err)
			}
			xform.Weight = w
		case "color":
			// flam3 allows "c1 c2"; only the first index is used
			v, err := strconv.ParseFloat(strings.Fields(attr.Value + " 0")[0], 64)
			if err != nil {
				return xform, fmt.Errorf("color: %w", err)
			}
			xform.Color = v
		default:
			if xformAttrs[name] || strings.Contains(name, "_") {
				continue // variation parameters and unsupported attributes
			}
			w, err := strconv.ParseFloat(attr.Value, 64)
			if err != nil {
				continue
			}
			xform.Variations[name] = w
		}
	}

	if len(xform.Variations) == 0 {
		xform.Variations["linear"] = 1
	}
	return xform, nil
}

func floats(s string, n int) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
