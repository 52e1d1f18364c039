// Package sketch draws a flame's transform triangles instead of the
// attractor. It is cheap enough for every keystroke and, like fr0st's GPU
// renderer, always produces RGBA output.
package sketch

import (
	"context"
	"image"
	"image/draw"
	"time"

	"github.com/gogpu/gg"

	"github.com/billie-coop/fr0st/internal/render"
)

// Channels is the channel count of every sketch buffer.
const Channels = 4

var background = gg.RGB(0.06, 0.07, 0.1)

// Backend renders with gogpu/gg's software rasterizer.
type Backend struct {
	LineWidth float64
}

// New returns a sketch backend with default styling.
func New() *Backend {
	return &Backend{LineWidth: 1.5}
}

// Name implements render.Backend.
func (b *Backend) Name() string { return render.BackendSketch }

// Render implements render.Renderer.
func (b *Backend) Render(ctx context.Context, t render.Target, progress render.ProgressFunc) (*render.Buffer, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	w, h := t.Size.X, t.Size.Y
	dc := gg.NewContext(w, h)
	defer dc.Close()

	dc.ClearWithColor(background)
	dc.SetLineWidth(b.LineWidth)

	f := t.Flame
	cam := f.CameraFor(t.Size)
	start := time.Now()

	xforms := f.Xforms
	if f.Final != nil {
		xforms = append(xforms[:len(xforms):len(xforms)], *f.Final)
	}

	for i := range xforms {
		p := render.Progress{Fraction: float64(i) / float64(len(xforms)), Elapsed: time.Since(start)}
		if err := render.Poll(ctx, progress, p); err != nil {
			return nil, err
		}

		x := &xforms[i]
		c := f.Palette.Lookup(x.Color)
		dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, 0.9)

		tri := x.Triangle()
		ox, oy := cam.Project(tri[0][0], tri[0][1])
		xx, xy := cam.Project(tri[1][0], tri[1][1])
		yx, yy := cam.Project(tri[2][0], tri[2][1])

		dc.MoveTo(ox, oy)
		dc.LineTo(xx, xy)
		dc.LineTo(yx, yy)
		dc.ClosePath()
		if err := dc.Stroke(); err != nil {
			return nil, err
		}

		dc.DrawCircle(ox, oy, 2*b.LineWidth)
		if err := dc.Fill(); err != nil {
			return nil, err
		}
	}

	return toBuffer(dc.Image(), w, h), nil
}

func toBuffer(img image.Image, w, h int) *render.Buffer {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return &render.Buffer{Pix: dst.Pix, Width: w, Height: h, Channels: Channels}
}
