// Package render defines the contract between the scheduler and the
// rendering backends.
//
// Rendering is a long synchronous call. The only way to influence a render
// in flight is the progress callback: backends call it periodically and
// obey the Signal it returns (flam3's progress protocol).
package render

import (
	"context"
	"errors"
	"image"
	"maps"
	"time"

	"github.com/billie-coop/fr0st/internal/flame"
)

var (
	ErrAborted        = errors.New("render aborted")
	ErrUnknownBackend = errors.New("unknown render backend")
	ErrEmptySize      = errors.New("render size must be positive")
	ErrNoFlame        = errors.New("render target has no flame")
)

// Built-in backend tags.
const (
	BackendChaos  = "chaos"
	BackendSketch = "sketch"
)

// Signal is the value a progress callback hands back to the renderer.
type Signal int32

const (
	// Continue lets the render proceed.
	Continue Signal = iota
	// Abort stops the render; the backend returns ErrAborted.
	Abort
	// Pause holds the render until the callback stops returning Pause.
	Pause
)

func (s Signal) String() string {
	switch s {
	case Continue:
		return "continue"
	case Abort:
		return "abort"
	case Pause:
		return "pause"
	}
	return "unknown"
}

// Progress is reported by backends while rendering.
type Progress struct {
	Fraction  float64 // 0..1
	Elapsed   time.Duration
	Remaining time.Duration // estimate, zero when unknown
}

// ProgressFunc is polled by backends. It must be cheap and must not block.
type ProgressFunc func(Progress) Signal

// Target describes one render. It is treated as a value: Clone before
// handing it to another goroutine.
type Target struct {
	Flame     *flame.Flame
	Size      image.Point
	Quality   float64 // samples per output pixel
	Backend   string
	Threads   int
	FixedSeed bool
	Channels  int // 3 (RGB) or 4 (RGBA); 0 means 3
	Options   map[string]string
}

// Clone deep copies the target, including the flame.
func (t Target) Clone() Target {
	t.Flame = t.Flame.Clone()
	t.Options = maps.Clone(t.Options)
	return t
}

// ChannelCount returns the requested channel count, defaulting to RGB.
func (t Target) ChannelCount() int {
	if t.Channels == 0 {
		return 3
	}
	return t.Channels
}

// Validate reports targets no backend can render.
func (t Target) Validate() error {
	if t.Flame == nil {
		return ErrNoFlame
	}
	if t.Size.X <= 0 || t.Size.Y <= 0 {
		return ErrEmptySize
	}
	return nil
}

// Buffer is a rendered image: rows of Width pixels, Channels bytes each.
type Buffer struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(width, height, channels int) *Buffer {
	return &Buffer{
		Pix:      make([]byte, width*height*channels),
		Width:    width,
		Height:   height,
		Channels: channels,
	}
}

// Renderer turns a target into pixels.
type Renderer interface {
	Render(ctx context.Context, t Target, progress ProgressFunc) (*Buffer, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, t Target, progress ProgressFunc) (*Buffer, error)

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, t Target, progress ProgressFunc) (*Buffer, error) {
	return f(ctx, t, progress)
}
