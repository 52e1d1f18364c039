package scheduler

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/billie-coop/fr0st/internal/delivery"
	"github.com/billie-coop/fr0st/internal/logging"
	"github.com/billie-coop/fr0st/internal/render"
)

var (
	// ErrRenderPanic wraps a panic recovered from a renderer.
	ErrRenderPanic = errors.New("scheduler: renderer panicked")
	// ErrSizeMismatch is returned when a backend hands back a buffer of a
	// different size than the job asked for.
	ErrSizeMismatch = errors.New("scheduler: buffer size does not match target")
)

// LoopStats reports what a worker loop has done so far.
type LoopStats struct {
	Processed    int
	Failed       int
	Aborted      int
	Busy         bool
	AvgDuration  time.Duration
	LastDuration time.Duration
}

// loop polls one side of the lanes and runs what it finds.
//
// The fast loop serves previews and thumbnails, the slow loop serves the
// background lane. Both idle on a ticker instead of blocking, so a new job
// is noticed within one poll interval.
type loop struct {
	name string
	s    *Scheduler
	take func() *Job

	// end runs after each job; the fast loop uses it to resume the
	// background render
	end func(*Job)

	metrics struct {
		sync.Mutex
		LoopStats
	}
}

func (l *loop) run(ctx context.Context) {
	defer l.s.wg.Done()

	ticker := time.NewTicker(l.s.pollInterval)
	defer ticker.Stop()

	log := logging.Logger().With("loop", l.name)
	log.Debug("render loop started")
	defer log.Debug("render loop stopped")

	for {
		if l.s.stopping() {
			return
		}

		if job := l.take(); job != nil {
			// the job may have been taken after Shutdown raised the flag
			if l.s.stopping() {
				return
			}
			l.process(ctx, job)
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// process runs a single job. Nothing a job does can stop the loop: render
// errors and panics are logged and the job is dropped.
func (l *loop) process(ctx context.Context, job *Job) {
	if l.end != nil {
		defer l.end(job)
	}

	l.setBusy(true)
	defer l.setBusy(false)

	if hook := l.s.onStart; hook != nil {
		hook(job.snapshot())
	}

	start := time.Now()
	err := l.execute(ctx, job)
	duration := time.Since(start)

	l.updateMetrics(err, duration)

	if hook := l.s.onComplete; hook != nil {
		hook(job.snapshot(), err, duration)
	}

	log := logging.Logger().With("loop", l.name, "job", job.ID, "kind", job.Kind.String(), "duration", duration)
	switch {
	case err == nil:
		log.Debug("render delivered")
	case isAbort(err):
		log.Debug("render aborted", "err", err)
	case errors.Is(err, delivery.ErrClosed):
		log.Debug("render finished after the UI went away")
	default:
		log.Error("render dropped", "err", err)
	}
}

func (l *loop) execute(ctx context.Context, job *Job) error {
	buf, err := l.render(ctx, job)
	if err != nil {
		return err
	}
	if buf == nil {
		return fmt.Errorf("scheduler: backend %q returned no buffer", job.Target.Backend)
	}

	size := job.Target.Size
	if buf.Width != 0 || buf.Height != 0 {
		if got := image.Pt(buf.Width, buf.Height); got != size {
			return fmt.Errorf("%w: got %v, want %v", ErrSizeMismatch, got, size)
		}
	}
	channels := buf.Channels
	if channels == 0 {
		channels = job.Target.ChannelCount()
	}
	return l.s.router.Deliver(job.Callback, size, buf.Pix, channels)
}

func (l *loop) render(ctx context.Context, job *Job) (buf *render.Buffer, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrRenderPanic, r)
		}
	}()
	return l.s.renderer.Render(ctx, job.Target, job.Progress)
}

func isAbort(err error) bool {
	return errors.Is(err, render.ErrAborted) || errors.Is(err, context.Canceled)
}

func (l *loop) setBusy(busy bool) {
	l.metrics.Lock()
	defer l.metrics.Unlock()
	l.metrics.Busy = busy
}

func (l *loop) updateMetrics(err error, duration time.Duration) {
	l.metrics.Lock()
	defer l.metrics.Unlock()

	switch {
	case err == nil:
		l.metrics.Processed++
	case isAbort(err):
		l.metrics.Aborted++
	default:
		l.metrics.Failed++
	}

	l.metrics.LastDuration = duration
	if l.metrics.AvgDuration == 0 {
		l.metrics.AvgDuration = duration
	} else {
		l.metrics.AvgDuration = (l.metrics.AvgDuration*4 + duration) / 5
	}
}

func (l *loop) stats() LoopStats {
	l.metrics.Lock()
	defer l.metrics.Unlock()
	return l.metrics.LoopStats
}
