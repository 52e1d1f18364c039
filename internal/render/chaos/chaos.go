// Package chaos is a small software flame renderer: a chaos game over the
// flame's xforms, accumulated into a histogram and log-density tone mapped.
package chaos

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/billie-coop/fr0st/internal/flame"
	"github.com/billie-coop/fr0st/internal/render"
)

const (
	fuseIterations = 20
	defaultBatch   = 20000
	gamma          = 2.2
)

// Backend renders flames by iterating random points.
type Backend struct {
	// BatchSize is how many points each thread plots between progress polls.
	BatchSize int
}

// New returns a chaos backend with the default batch size.
func New() *Backend {
	return &Backend{BatchSize: defaultBatch}
}

// Name implements render.Backend.
func (b *Backend) Name() string { return render.BackendChaos }

type bin struct {
	r, g, b, n float32
}

type term struct {
	fn     variation
	weight float64
}

// xform is a flame.Xform with its variations resolved in a stable order,
// so a fixed seed always sums them the same way.
type xform struct {
	src   *flame.Xform
	terms []term
	color float64
}

func compileXform(x *flame.Xform) *xform {
	names := make([]string, 0, len(x.Variations))
	for name := range x.Variations {
		if _, ok := variations[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	c := &xform{src: x, color: x.Color}
	for _, name := range names {
		c.terms = append(c.terms, term{fn: variations[name], weight: x.Variations[name]})
	}
	return c
}

type compiled struct {
	xforms []*xform
	cumul  []float64
	total  float64
	final  *xform
}

func compile(f *flame.Flame) (*compiled, error) {
	c := &compiled{}
	if f.Final != nil {
		c.final = compileXform(f.Final)
	}
	for i := range f.Xforms {
		x := &f.Xforms[i]
		if x.Weight <= 0 {
			continue
		}
		c.total += x.Weight
		c.xforms = append(c.xforms, compileXform(x))
		c.cumul = append(c.cumul, c.total)
	}
	if len(c.xforms) == 0 {
		return nil, flame.ErrNoXforms
	}
	return c, nil
}

func (c *compiled) pick(rng *rand.Rand) *xform {
	r := rng.Float64() * c.total
	i := sort.SearchFloat64s(c.cumul, r)
	if i >= len(c.xforms) {
		i = len(c.xforms) - 1
	}
	return c.xforms[i]
}

func (x *xform) apply(px, py float64) (float64, float64) {
	ax, ay := x.src.Apply(px, py)
	var ox, oy float64
	for _, t := range x.terms {
		vx, vy := t.fn(ax, ay)
		ox += t.weight * vx
		oy += t.weight * vy
	}
	return ox, oy
}

// Render implements render.Renderer.
func (b *Backend) Render(ctx context.Context, t render.Target, progress render.ProgressFunc) (*render.Buffer, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	channels := t.ChannelCount()
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("chaos: unsupported channel count %d", channels)
	}

	sys, err := compile(t.Flame)
	if err != nil {
		return nil, err
	}

	threads := max(t.Threads, 1)
	batch := b.BatchSize
	if batch <= 0 {
		batch = defaultBatch
	}

	w, h := t.Size.X, t.Size.Y
	quality := t.Quality
	if quality <= 0 {
		quality = 1
	}
	samples := int(quality * float64(w*h))
	rounds := max((samples+threads*batch-1)/(threads*batch), 1)

	workers := make([]*worker, threads)
	for i := range workers {
		workers[i] = newWorker(sys, t, i)
	}

	start := time.Now()
	for round := 0; round < rounds; round++ {
		elapsed := time.Since(start)
		p := render.Progress{Fraction: float64(round) / float64(rounds), Elapsed: elapsed}
		if round > 0 {
			p.Remaining = elapsed / time.Duration(round) * time.Duration(rounds-round)
		}
		if err := render.Poll(ctx, progress, p); err != nil {
			return nil, err
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, wk := range workers {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				wk.iterate(batch)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	return toneMap(workers, w, h, channels), nil
}

type worker struct {
	sys    *compiled
	cam    flame.Camera
	pal    flame.Palette
	rng    *rand.Rand
	hist   []bin
	w, h   int
	x, y   float64
	c      float64
	warmed bool
}

func newWorker(sys *compiled, t render.Target, index int) *worker {
	seed := uint64(1)
	if !t.FixedSeed {
		seed = uint64(time.Now().UnixNano())
	}
	return &worker{
		sys:  sys,
		cam:  t.Flame.CameraFor(t.Size),
		pal:  t.Flame.Palette,
		rng:  rand.New(rand.NewPCG(seed, uint64(index)+1)),
		hist: make([]bin, t.Size.X*t.Size.Y),
		w:    t.Size.X,
		h:    t.Size.Y,
	}
}

func (wk *worker) reset() {
	wk.x = wk.rng.Float64()*2 - 1
	wk.y = wk.rng.Float64()*2 - 1
	wk.c = wk.rng.Float64()
	for i := 0; i < fuseIterations; i++ {
		wk.step()
	}
	wk.warmed = true
}

func (wk *worker) step() {
	x := wk.sys.pick(wk.rng)
	wk.x, wk.y = x.apply(wk.x, wk.y)
	wk.c = (wk.c + x.color) / 2
}

func (wk *worker) iterate(n int) {
	if !wk.warmed {
		wk.reset()
	}
	for i := 0; i < n; i++ {
		wk.step()
		if math.IsNaN(wk.x) || math.IsInf(wk.x, 0) || math.IsNaN(wk.y) || math.IsInf(wk.y, 0) {
			wk.reset()
			continue
		}

		px, py, c := wk.x, wk.y, wk.c
		if f := wk.sys.final; f != nil {
			px, py = f.apply(px, py)
			c = (c + f.color) / 2
		}

		sx, sy := wk.cam.Project(px, py)
		ix, iy := int(sx), int(sy)
		if sx < 0 || sy < 0 || ix >= wk.w || iy >= wk.h {
			continue
		}

		col := wk.pal.Lookup(c)
		b := &wk.hist[iy*wk.w+ix]
		b.r += float32(col.R)
		b.g += float32(col.G)
		b.b += float32(col.B)
		b.n++
	}
}

// toneMap merges the per-thread histograms and applies log density scaling
// with gamma correction. RGBA output leaves empty pixels transparent; RGB
// output renders them black.
func toneMap(workers []*worker, w, h, channels int) *render.Buffer {
	hist := workers[0].hist
	for _, wk := range workers[1:] {
		for i := range hist {
			hist[i].r += wk.hist[i].r
			hist[i].g += wk.hist[i].g
			hist[i].b += wk.hist[i].b
			hist[i].n += wk.hist[i].n
		}
	}

	var peak float32
	for i := range hist {
		peak = max(peak, hist[i].n)
	}

	buf := render.NewBuffer(w, h, channels)
	if peak == 0 {
		return buf
	}
	logPeak := math.Log1p(float64(peak))

	for i, b := range hist {
		if b.n == 0 {
			continue
		}
		density := math.Pow(math.Log1p(float64(b.n))/logPeak, 1/gamma)
		scale := density / float64(b.n)
		o := i * channels
		buf.Pix[o] = clamp(float64(b.r) * scale)
		buf.Pix[o+1] = clamp(float64(b.g) * scale)
		buf.Pix[o+2] = clamp(float64(b.b) * scale)
		if channels == 4 {
			buf.Pix[o+3] = clamp(density * 255)
		}
	}
	return buf
}

func clamp(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v + 0.5)
}
