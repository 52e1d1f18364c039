// Package delivery carries finished renders from the worker goroutines to
// the goroutine that owns the UI.
//
// Worker side: Router.Deliver validates and converts the pixel buffer, then
// queues a Delivery. UI side: the owner of the event loop receives
// deliveries (Listen for bubbletea, Next for everything else) and calls
// Dispatch, so completion callbacks only ever run on that goroutine.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	tea "github.com/charmbracelet/bubbletea/v2"
)

var (
	ErrInvalidChannels = errors.New("delivery: channel count must be 3 or 4")
	ErrShortBuffer     = errors.New("delivery: pixel buffer too short")
	ErrInvalidSize     = errors.New("delivery: invalid image size")
	ErrClosed          = errors.New("delivery: router closed")
	ErrConsumerGone    = errors.New("delivery: consumer gone")
)

// DefaultBuffer is the number of deliveries that may wait for the UI.
const DefaultBuffer = 16

// Callback consumes a finished image on the UI goroutine.
type Callback func(img image.Image)

// Delivery is a converted image paired with the callback that asked for it.
type Delivery struct {
	Image    image.Image
	Channels int
	callback Callback
}

// Dispatch hands the image to its callback. A consumer that panics because
// it was torn down underneath us is reported as ErrConsumerGone.
func (d Delivery) Dispatch() (err error) {
	if d.callback == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrConsumerGone, r)
		}
	}()
	d.callback(d.Image)
	return nil
}

// ImageReadyMsg is the bubbletea message produced by Listen.
type ImageReadyMsg struct {
	Delivery Delivery
}

// RouterClosedMsg is returned by Listen once the router is closed.
type RouterClosedMsg struct{}

// Router is a bounded hand-off from render workers to the UI goroutine.
type Router struct {
	ch   chan Delivery
	done chan struct{}
	once sync.Once
}

// NewRouter creates a router holding up to buffer pending deliveries.
func NewRouter(buffer int) *Router {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Router{
		ch:   make(chan Delivery, buffer),
		done: make(chan struct{}),
	}
}

// Deliver converts pix into an image of the given size and queues it for
// cb. It blocks while the buffer is full, until the UI drains it or the
// router is closed. cb is never invoked when an error is returned.
func (r *Router) Deliver(cb Callback, size image.Point, pix []byte, channels int) error {
	img, err := Convert(size, pix, channels)
	if err != nil {
		return err
	}

	select {
	case <-r.done:
		return ErrClosed
	default:
	}

	select {
	case r.ch <- Delivery{Image: img, Channels: channels, callback: cb}:
		return nil
	case <-r.done:
		return ErrClosed
	}
}

// Next blocks until a delivery is available, the router closes or ctx ends.
func (r *Router) Next(ctx context.Context) (Delivery, error) {
	select {
	case d := <-r.ch:
		return d, nil
	case <-r.done:
		// drain what was queued before Close
		select {
		case d := <-r.ch:
			return d, nil
		default:
			return Delivery{}, ErrClosed
		}
	case <-ctx.Done():
		return Delivery{}, ctx.Err()
	}
}

// Listen returns a command that waits for the next delivery. Re-issue it
// after each ImageReadyMsg.
func (r *Router) Listen() tea.Cmd {
	return func() tea.Msg {
		d, err := r.Next(context.Background())
		if err != nil {
			return RouterClosedMsg{}
		}
		return ImageReadyMsg{Delivery: d}
	}
}

// Pending reports how many deliveries are waiting.
func (r *Router) Pending() int {
	return len(r.ch)
}

// Close stops accepting deliveries. Safe to call more than once.
func (r *Router) Close() {
	r.once.Do(func() { close(r.done) })
}

// Convert builds the image for a raw buffer: *image.RGBA for 3 channels
// (opaque) and *image.NRGBA for 4.
func Convert(size image.Point, pix []byte, channels int) (image.Image, error) {
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChannels, channels)
	}
	if size.X < 0 || size.Y < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	need := size.X * size.Y * channels
	if len(pix) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrShortBuffer, len(pix), need)
	}

	rect := image.Rect(0, 0, size.X, size.Y)
	if channels == 4 {
		img := image.NewNRGBA(rect)
		copy(img.Pix, pix[:need])
		return img, nil
	}

	img := image.NewRGBA(rect)
	for i, j := 0, 0; i < need; i, j = i+3, j+4 {
		img.Pix[j] = pix[i]
		img.Pix[j+1] = pix[i+1]
		img.Pix[j+2] = pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img, nil
}
