package scheduler

import (
	"sync/atomic"

	"github.com/billie-coop/fr0st/internal/render"
)

// Flag is a render.Signal shared between goroutines. A stale read costs at
// most one extra progress poll, so plain atomics are enough.
type Flag struct {
	v atomic.Int32
}

func (f *Flag) Set(s render.Signal) { f.v.Store(int32(s)) }

func (f *Flag) Load() render.Signal { return render.Signal(f.v.Load()) }

// wrapProgress folds flag and the shutdown flag into a progress callback.
// Shutdown always aborts; otherwise the strongest of flag and f's own
// answer wins, so a pause requested through flag holds even while f says
// continue.
func wrapProgress(f render.ProgressFunc, flag, exit *Flag) render.ProgressFunc {
	return func(p render.Progress) render.Signal {
		if exit.Load() != render.Continue {
			return render.Abort
		}
		return max(f(p), flag.Load())
	}
}
