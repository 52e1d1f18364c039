package scheduler

import (
	"errors"

	"github.com/billie-coop/fr0st/internal/csync"
)

// ErrMissingProgress is returned when a request that must report progress
// comes without a progress callback.
var ErrMissingProgress = errors.New("scheduler: progress callback required")

// Lanes holds jobs waiting for a worker.
//
// Every operation is a single critical section on one lane, so producers
// never wait for a render to finish.
type Lanes struct {
	thumbnails *csync.Slice[*Job]
	preview    *csync.Slice[*Job]
	background *csync.Slice[*Job]
}

// Counts is a snapshot of lane occupancy.
type Counts struct {
	Thumbnails int
	Previews   int
	Background int
}

// NewLanes creates empty lanes.
func NewLanes() *Lanes {
	return &Lanes{
		thumbnails: csync.NewSlice[*Job](),
		preview:    csync.NewSlice[*Job](),
		background: csync.NewSlice[*Job](),
	}
}

// EnqueueThumbnail appends to the thumbnail FIFO.
func (l *Lanes) EnqueueThumbnail(j *Job) {
	l.thumbnails.Append(j)
}

// EnqueuePreview makes j the only pending preview and returns the jobs it
// superseded. Superseded jobs are never run.
func (l *Lanes) EnqueuePreview(j *Job) []*Job {
	return l.preview.Replace(j)
}

// AppendPreview queues j behind any pending preview, so a small and a large
// preview requested together both run. A later EnqueuePreview still
// replaces both.
func (l *Lanes) AppendPreview(j *Job) {
	l.preview.Append(j)
}

// EnqueueBackground makes j the pending background job and returns the job
// it superseded, if any.
func (l *Lanes) EnqueueBackground(j *Job) ([]*Job, error) {
	if j.Progress == nil {
		return nil, ErrMissingProgress
	}
	return l.background.Replace(j), nil
}

// TakeFast removes and returns the next preview, else the oldest thumbnail,
// else nil.
func (l *Lanes) TakeFast() *Job {
	if j, ok := l.preview.Shift(); ok {
		return j
	}
	if j, ok := l.thumbnails.Shift(); ok {
		return j
	}
	return nil
}

// TakeSlow removes and returns the pending background job, or nil.
func (l *Lanes) TakeSlow() *Job {
	j, _ := l.background.Shift()
	return j
}

// FastPending reports whether the fast loop has anything left to do.
func (l *Lanes) FastPending() bool {
	return !l.preview.IsEmpty() || !l.thumbnails.IsEmpty()
}

// Counts returns the current lane sizes.
func (l *Lanes) Counts() Counts {
	return Counts{
		Thumbnails: l.thumbnails.Len(),
		Previews:   l.preview.Len(),
		Background: l.background.Len(),
	}
}
