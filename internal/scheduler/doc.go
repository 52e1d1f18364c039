// Package scheduler decides which render runs next.
//
// # Overview
//
// Rendering a flame is expensive and the renderer can only be steered
// through its progress callback. The scheduler keeps interactive work
// responsive while a long render is running:
//   - Previews replace each other (only the newest one matters)
//   - Thumbnails queue up in order behind previews
//   - A single background render runs on its own loop and is paused
//     whenever the fast loop has work
//   - Shutdown aborts whatever is in flight at its next progress poll
//
// # Architecture
//
//   - Job: one immutable render request
//   - Lanes: the thumbnail FIFO plus the preview and background slots
//   - Flag: an atomic render.Signal shared with wrapped progress callbacks
//   - loop: a polling worker (one fast, one slow) with metrics
//   - Scheduler: ties the above together and owns the request API
//
// Finished buffers leave through a delivery.Router, so callbacks always run
// on the goroutine that drains the router.
//
// # Example
//
//	router := delivery.NewRouter(delivery.DefaultBuffer)
//	s := scheduler.New(registry, router)
//	_ = s.Start()
//	defer s.Shutdown()
//
//	s.RequestPreview(func(img image.Image) { show(img) }, target)
package scheduler
