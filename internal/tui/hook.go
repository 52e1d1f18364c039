package tui

import (
	"time"

	"github.com/billie-coop/fr0st/internal/scheduler"
	"github.com/billie-coop/fr0st/internal/tui/events"
)

// Hook publishes the scheduler's job lifecycle onto the broker. The hooks
// run on worker goroutines; the broker never blocks them. Call it before
// Start.
func Hook(s *scheduler.Scheduler, b *events.Broker) {
	s.OnStart(func(job *scheduler.Job) {
		b.Publish(events.Event{
			Type:    events.RenderStartedEvent,
			Payload: payload(job, nil, 0),
		})
	})
	s.OnComplete(func(job *scheduler.Job, err error, d time.Duration) {
		eventType := events.RenderCompletedEvent
		if err != nil {
			eventType = events.RenderFailedEvent
		}
		b.Publish(events.Event{
			Type:    eventType,
			Payload: payload(job, err, d),
		})
	})
}

func payload(job *scheduler.Job, err error, d time.Duration) events.RenderPayload {
	p := events.RenderPayload{
		JobID:    job.ID,
		Kind:     job.Kind,
		Duration: d,
		Err:      err,
	}
	if f := job.Target.Flame; f != nil {
		p.Flame = f.Name
	}
	return p
}
