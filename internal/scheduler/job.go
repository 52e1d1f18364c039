package scheduler

import (
	"time"

	"github.com/google/uuid"

	"github.com/billie-coop/fr0st/internal/delivery"
	"github.com/billie-coop/fr0st/internal/render"
)

// Kind says which request created a job.
type Kind int

const (
	KindThumbnail Kind = iota
	KindPreview
	KindLargePreview
	KindBackground
)

func (k Kind) String() string {
	switch k {
	case KindThumbnail:
		return "thumbnail"
	case KindPreview:
		return "preview"
	case KindLargePreview:
		return "large-preview"
	case KindBackground:
		return "background"
	default:
		return "unknown"
	}
}

// Job is a single render request.
//
// Jobs are built by the Scheduler's Request methods and never modified
// after they are enqueued. Replacing a pending request means discarding
// its Job, not editing it.
type Job struct {
	// ID identifies the job in logs and hooks
	ID string

	Kind Kind

	// Target is a private copy of what the caller asked for, with the
	// per-kind defaults applied
	Target render.Target

	// Callback receives the finished image on the router's goroutine
	Callback delivery.Callback

	// Progress is the wrapped progress callback handed to the renderer.
	// Nil for thumbnails and small previews.
	Progress render.ProgressFunc

	Created time.Time
}

func newJob(kind Kind, cb delivery.Callback, t render.Target, progress render.ProgressFunc) *Job {
	return &Job{
		ID:       uuid.NewString(),
		Kind:     kind,
		Target:   t.Clone(),
		Callback: cb,
		Progress: progress,
		Created:  time.Now(),
	}
}

// snapshot copies the job for hooks, target included.
func (j *Job) snapshot() *Job {
	c := *j
	c.Target = j.Target.Clone()
	return &c
}
