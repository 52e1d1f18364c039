package render

import (
	"context"
	"time"
)

// PauseInterval is how long Poll sleeps between polls while paused.
var PauseInterval = 10 * time.Millisecond

// Poll reports progress and applies the returned Signal. It returns nil to
// continue, ErrAborted when the callback asks to abort, and ctx.Err() if
// the context ends. A Pause blocks here until the callback releases it.
func Poll(ctx context.Context, progress ProgressFunc, p Progress) error {
	if progress == nil {
		return ctx.Err()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch progress(p) {
		case Continue:
			return nil
		case Pause:
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(PauseInterval):
			}
		default:
			return ErrAborted
		}
	}
}
