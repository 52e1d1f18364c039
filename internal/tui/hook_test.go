package tui

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/billie-coop/fr0st/internal/delivery"
	"github.com/billie-coop/fr0st/internal/flame"
	"github.com/billie-coop/fr0st/internal/render"
	"github.com/billie-coop/fr0st/internal/scheduler"
	"github.com/billie-coop/fr0st/internal/tui/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHookPublishesLifecycle(t *testing.T) {
	boom := errors.New("boom")
	renderer := render.RendererFunc(func(_ context.Context, t render.Target, _ render.ProgressFunc) (*render.Buffer, error) {
		if t.Flame.Name == "broken" {
			return nil, boom
		}
		return render.NewBuffer(t.Size.X, t.Size.Y, 3), nil
	})

	router := delivery.NewRouter(delivery.DefaultBuffer)
	broker := events.NewBroker()
	sched := scheduler.New(renderer, router, scheduler.WithPollInterval(time.Millisecond))
	Hook(sched, broker)
	require.NoError(t, sched.Start())
	t.Cleanup(func() {
		sched.Shutdown()
		router.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		assert.NoError(t, sched.Wait(ctx))
	})

	sub := broker.Subscribe(events.RenderStartedEvent, events.RenderCompletedEvent, events.RenderFailedEvent)

	ok := flame.Default()[0]
	broken := ok.Clone()
	broken.Name = "broken"

	id := sched.RequestThumbnail(nil, render.Target{Flame: ok, Size: image.Pt(4, 4)})
	sched.RequestThumbnail(nil, render.Target{Flame: broken, Size: image.Pt(4, 4)})

	want := []struct {
		typ   events.EventType
		flame string
	}{
		{events.RenderStartedEvent, ok.Name},
		{events.RenderCompletedEvent, ok.Name},
		{events.RenderStartedEvent, "broken"},
		{events.RenderFailedEvent, "broken"},
	}
	for i, w := range want {
		select {
		case ev := <-sub:
			p := ev.Payload.(events.RenderPayload)
			assert.Equal(t, w.typ, ev.Type, "event %d", i)
			assert.Equal(t, w.flame, p.Flame, "event %d", i)
			assert.Equal(t, scheduler.KindThumbnail, p.Kind)
			if i == 0 {
				assert.Equal(t, id, p.JobID)
			}
			if ev.Type == events.RenderFailedEvent {
				assert.ErrorIs(t, p.Err, boom)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
}
