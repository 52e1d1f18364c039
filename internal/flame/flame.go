// Package flame is the in-memory fractal flame document consumed by the
// render backends.
//
// A Flame is a camera (size, center, scale, rotation), a list of affine
// transforms ("xforms") each carrying weighted variations, and a 256 entry
// palette. Documents are read from fr0st/flam3 `.flame` XML.
package flame

import (
	"errors"
	"image"
	"maps"
	"math"
)

var (
	ErrNoFlames     = errors.New("no flames found")
	ErrInvalidCoefs = errors.New("xform coefs must have 6 values")
	ErrNoXforms     = errors.New("flame has no xforms")
)

// Flame is a single fractal flame.
type Flame struct {
	Name    string
	Size    image.Point
	Center  [2]float64
	Scale   float64 // pixels per unit at Size
	Rotate  float64 // degrees
	Xforms  []Xform
	Final   *Xform
	Palette Palette
}

// Xform is one affine transform of the iterated function system.
//
// Coefs use flam3 order: x' = c0*x + c2*y + c4, y' = c1*x + c3*y + c5.
type Xform struct {
	Coefs      [6]float64
	Weight     float64
	Color      float64 // palette index in [0, 1]
	Variations map[string]float64
}

// Apply maps a point through the affine part.
func (x *Xform) Apply(px, py float64) (float64, float64) {
	c := x.Coefs
	return c[0]*px + c[2]*py + c[4], c[1]*px + c[3]*py + c[5]
}

// Triangle returns the images of the unit triangle: origin, x axis, y axis.
// This is the handle fr0st shows in its transform editor.
func (x *Xform) Triangle() [3][2]float64 {
	c := x.Coefs
	return [3][2]float64{
		{c[4], c[5]},
		{c[0] + c[4], c[1] + c[5]},
		{c[2] + c[4], c[3] + c[5]},
	}
}

// RotateBy rotates the linear part about the transform's origin.
func (x *Xform) RotateBy(degrees float64) {
	s, c := math.Sincos(degrees * math.Pi / 180)
	for _, i := range [2]int{0, 2} {
		vx, vy := x.Coefs[i], x.Coefs[i+1]
		x.Coefs[i] = vx*c - vy*s
		x.Coefs[i+1] = vx*s + vy*c
	}
}

// ScaleBy scales the linear part about the transform's origin.
func (x *Xform) ScaleBy(factor float64) {
	for i := 0; i < 4; i++ {
		x.Coefs[i] *= factor
	}
}

// Clone returns a deep copy of the xform.
func (x Xform) Clone() Xform {
	x.Variations = maps.Clone(x.Variations)
	return x
}

// Clone returns a deep copy. Render jobs hold clones so edits made in the
// UI after a request never reach a queued job.
func (f *Flame) Clone() *Flame {
	if f == nil {
		return nil
	}
	c := *f
	c.Xforms = make([]Xform, len(f.Xforms))
	for i, x := range f.Xforms {
		c.Xforms[i] = x.Clone()
	}
	if f.Final != nil {
		final := f.Final.Clone()
		c.Final = &final
	}
	c.Palette = append(Palette(nil), f.Palette...)
	return &c
}

// TotalWeight is the sum of xform weights.
func (f *Flame) TotalWeight() float64 {
	total := 0.0
	for _, x := range f.Xforms {
		total += x.Weight
	}
	return total
}

// Camera maps flame coordinates to pixel coordinates for an output of the
// given size, scaling pixels-per-unit in proportion to the width the flame
// was designed for.
type Camera struct {
	cx, cy   float64
	ppu      float64
	sin, cos float64
	halfW    float64
	halfH    float64
}

// CameraFor builds the camera for rendering f at size.
func (f *Flame) CameraFor(size image.Point) Camera {
	ppu := f.Scale
	if f.Size.X > 0 {
		ppu *= float64(size.X) / float64(f.Size.X)
	}
	s, c := math.Sincos(f.Rotate * math.Pi / 180)
	return Camera{
		cx: f.Center[0], cy: f.Center[1],
		ppu: ppu,
		sin: s, cos: c,
		halfW: float64(size.X) / 2,
		halfH: float64(size.Y) / 2,
	}
}

// Project returns the pixel position of a flame-space point.
func (c Camera) Project(x, y float64) (float64, float64) {
	dx, dy := x-c.cx, y-c.cy
	rx := dx*c.cos - dy*c.sin
	ry := dx*c.sin + dy*c.cos
	return rx*c.ppu + c.halfW, ry*c.ppu + c.halfH
}
