package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/billie-coop/fr0st/internal/delivery"
	"github.com/billie-coop/fr0st/internal/logging"
	"github.com/billie-coop/fr0st/internal/render"
)

// DefaultPollInterval bounds how long an idle loop takes to notice a job.
const DefaultPollInterval = 10 * time.Millisecond

var (
	ErrAlreadyStarted = errors.New("scheduler: already started")
	ErrStopped        = errors.New("scheduler: shut down")
)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithPollInterval sets how often idle loops look for work.
func WithPollInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithDefaultBackend sets the backend used when a request leaves
// Target.Backend empty.
func WithDefaultBackend(name string) Option {
	return func(s *Scheduler) {
		s.defaultBackend = name
	}
}

// WithThumbnailBackend sets the backend every thumbnail is rendered with.
// Callers cannot override it.
func WithThumbnailBackend(name string) Option {
	return func(s *Scheduler) {
		s.thumbnailBackend = name
	}
}

// Status is a snapshot for the UI and logs.
type Status struct {
	Lanes      Counts
	Fast       LoopStats
	Slow       LoopStats
	Superseded int64
	Background render.Signal
	Stopped    bool
}

// Scheduler owns the lanes and the two worker loops.
//
// Request methods are meant to be called from the UI goroutine. They only
// touch the lanes and the flags and never wait for a render.
type Scheduler struct {
	renderer render.Renderer
	router   *delivery.Router
	lanes    *Lanes

	// background pauses the slow loop's render while the fast loop works,
	// preview aborts an in-flight large preview when a newer preview
	// arrives, exit aborts everything
	background Flag
	preview    Flag
	exit       Flag

	// previewMu orders preview requests against the fast loop taking a
	// job, so an abort raised after a take is never cleared by it
	previewMu sync.Mutex

	pollInterval     time.Duration
	defaultBackend   string
	thumbnailBackend string

	fast *loop
	slow *loop

	superseded atomic.Int64

	onStart    func(*Job)
	onComplete func(*Job, error, time.Duration)

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
	mu      sync.Mutex
}

// New creates a scheduler that renders with renderer and delivers through
// router. Call Start to launch the worker loops.
func New(renderer render.Renderer, router *delivery.Router, opts ...Option) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		renderer:         renderer,
		router:           router,
		lanes:            NewLanes(),
		pollInterval:     DefaultPollInterval,
		defaultBackend:   render.BackendChaos,
		thumbnailBackend: render.BackendChaos,
		ctx:              ctx,
		cancel:           cancel,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.fast = &loop{
		name: "fast",
		s:    s,
		take: s.takeFast,
		end:  s.endFast,
	}
	s.slow = &loop{
		name: "slow",
		s:    s,
		take: s.lanes.TakeSlow,
	}
	return s
}

// OnStart sets a hook called on the worker goroutine as each job starts.
// Hooks get a copy of the job; changing it does not affect the render.
// Set hooks before Start.
func (s *Scheduler) OnStart(fn func(*Job)) {
	s.onStart = fn
}

// OnComplete sets a hook called on the worker goroutine after each job,
// with the render or delivery error. Set hooks before Start.
func (s *Scheduler) OnComplete(fn func(*Job, error, time.Duration)) {
	s.onComplete = fn
}

// Start launches the fast and slow loops.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopping() {
		return ErrStopped
	}
	if s.started {
		return ErrAlreadyStarted
	}

	s.wg.Add(2)
	go s.fast.run(s.ctx)
	go s.slow.run(s.ctx)
	s.started = true
	return nil
}

// RequestThumbnail queues a thumbnail behind any pending thumbnails.
// Thumbnails are always single threaded, use a fixed seed and the
// configured thumbnail backend.
func (s *Scheduler) RequestThumbnail(cb delivery.Callback, t render.Target) string {
	t.Threads = 1
	t.FixedSeed = true
	t.Backend = s.thumbnailBackend

	job := newJob(KindThumbnail, cb, t, nil)
	s.lanes.EnqueueThumbnail(job)
	return job.ID
}

// RequestPreview replaces any pending preview and pauses the background
// render until the fast loop runs dry.
func (s *Scheduler) RequestPreview(cb delivery.Callback, t render.Target) string {
	t.Threads = 1
	t.FixedSeed = true
	t.Backend = s.backendFor(t)

	job := newJob(KindPreview, cb, t, nil)
	s.previewMu.Lock()
	s.raisePreview()
	old := s.lanes.EnqueuePreview(job)
	s.previewMu.Unlock()
	s.supersede(old)
	return job.ID
}

// RequestLargePreview queues a preview that reports progress. It runs after
// a pending small preview and is aborted by the next preview request.
func (s *Scheduler) RequestLargePreview(cb delivery.Callback, t render.Target, progress render.ProgressFunc) (string, error) {
	if progress == nil {
		return "", ErrMissingProgress
	}
	t.Backend = s.backendFor(t)

	job := newJob(KindLargePreview, cb, t, wrapProgress(progress, &s.preview, &s.exit))
	s.previewMu.Lock()
	s.raisePreview()
	s.lanes.AppendPreview(job)
	s.previewMu.Unlock()
	return job.ID, nil
}

// RequestBackground replaces the pending background render. Its progress
// callback is wrapped so the render pauses while the fast loop is busy.
func (s *Scheduler) RequestBackground(cb delivery.Callback, t render.Target, progress render.ProgressFunc) (string, error) {
	if progress == nil {
		return "", ErrMissingProgress
	}
	t.Backend = s.backendFor(t)

	job := newJob(KindBackground, cb, t, wrapProgress(progress, &s.background, &s.exit))
	old, err := s.lanes.EnqueueBackground(job)
	if err != nil {
		return "", err
	}
	s.supersede(old)
	return job.ID, nil
}

// Shutdown raises the exit flag. In-flight renders abort at their next
// progress poll and neither loop takes another job. Call Wait to join them.
func (s *Scheduler) Shutdown() {
	s.exit.Set(render.Abort)
	s.cancel()
	logging.Logger().Debug("scheduler shutting down")
}

// Wait blocks until both loops have exited or ctx ends.
func (s *Scheduler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns lane sizes and loop metrics.
func (s *Scheduler) Status() Status {
	return Status{
		Lanes:      s.lanes.Counts(),
		Fast:       s.fast.stats(),
		Slow:       s.slow.stats(),
		Superseded: s.superseded.Load(),
		Background: s.background.Load(),
		Stopped:    s.stopping(),
	}
}

func (s *Scheduler) stopping() bool {
	return s.exit.Load() != render.Continue
}

func (s *Scheduler) backendFor(t render.Target) string {
	if t.Backend != "" {
		return t.Backend
	}
	return s.defaultBackend
}

// raisePreview runs before the new job is queued, so the fast loop cannot
// take the job and then see the abort meant for its predecessor.
func (s *Scheduler) raisePreview() {
	s.background.Set(render.Pause)
	s.preview.Set(render.Abort)
}

func (s *Scheduler) supersede(jobs []*Job) {
	if len(jobs) == 0 {
		return
	}
	s.superseded.Add(int64(len(jobs)))
	for _, j := range jobs {
		logging.Logger().Debug("render superseded", "job", j.ID, "kind", j.Kind.String())
	}
}

// takeFast pops the next fast job and clears the preview abort in the same
// critical section a preview request raises it in. Only requests made
// after the take can abort the job.
func (s *Scheduler) takeFast() *Job {
	s.previewMu.Lock()
	defer s.previewMu.Unlock()

	job := s.lanes.TakeFast()
	if job != nil {
		s.background.Set(render.Pause)
		s.preview.Set(render.Continue)
	}
	return job
}

// endFast lets the background render resume once nothing else is queued
// for the fast loop.
func (s *Scheduler) endFast(*Job) {
	if !s.lanes.FastPending() {
		s.background.Set(render.Continue)
	}
}
