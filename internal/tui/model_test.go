package tui

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/billie-coop/fr0st/internal/config"
	"github.com/billie-coop/fr0st/internal/delivery"
	"github.com/billie-coop/fr0st/internal/flame"
	"github.com/billie-coop/fr0st/internal/render"
	"github.com/billie-coop/fr0st/internal/scheduler"
	"github.com/billie-coop/fr0st/internal/tui/components/status"
	"github.com/billie-coop/fr0st/internal/tui/events"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blankRenderer returns an RGB buffer of the requested size, honouring an
// abort from the progress callback.
func blankRenderer() render.Renderer {
	return render.RendererFunc(func(ctx context.Context, t render.Target, progress render.ProgressFunc) (*render.Buffer, error) {
		if progress != nil {
			if err := render.Poll(ctx, progress, render.Progress{Fraction: 0.5}); err != nil {
				return nil, err
			}
		}
		return render.NewBuffer(t.Size.X, t.Size.Y, 3), nil
	})
}

type harness struct {
	m      *Model
	sched  *scheduler.Scheduler
	router *delivery.Router
	broker *events.Broker
}

func newHarness(t *testing.T, renderer render.Renderer) *harness {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.Preview.Width, cfg.Preview.Height = 16, 12
	cfg.Thumbnail.Size = 8
	cfg.Render.Width, cfg.Render.Height = 16, 12

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
		broker.Clear()
	})

	m := New(Options{
		Config:    cfg,
		Flames:    flame.Default(),
		Scheduler: sched,
		Router:    router,
		Broker:    broker,
	})
	return &harness{m: m, sched: sched, router: router, broker: broker}
}

// next waits for the next delivery without dispatching it
func (h *harness) next(t *testing.T) delivery.Delivery {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	d, err := h.router.Next(ctx)
	require.NoError(t, err)
	return d
}

func (h *harness) deliver(t *testing.T) {
	t.Helper()
	h.m.Update(delivery.ImageReadyMsg{Delivery: h.next(t)})
}

func press(m *Model, code rune) {
	msg := tea.KeyPressMsg{Code: code}
	if code < 0x7f && code > ' ' {
		msg.Text = string(code)
	}
	m.Update(msg)
}

func TestInitRequestsThumbnailsAndPreview(t *testing.T) {
	h := newHarness(t, blankRenderer())
	h.m.Init()

	// one thumbnail per flame plus the preview
	for range len(h.m.flames) + 1 {
		h.deliver(t)
	}
	assert.NotNil(t, h.m.preview.Image())
	assert.Equal(t, 0, h.m.router.Pending())
}

func TestStalePreviewIsDropped(t *testing.T) {
	h := newHarness(t, blankRenderer())
	h.m.Init()
	for range len(h.m.flames) + 1 {
		h.deliver(t)
	}
	shown := h.m.preview.Image()

	press(h.m, tea.KeyRight)
	assert.Equal(t, 1, h.m.current)
	late := h.next(t)

	press(h.m, tea.KeyLeft)
	assert.Equal(t, 0, h.m.current)

	h.m.Update(delivery.ImageReadyMsg{Delivery: late})
	assert.Same(t, shown, h.m.preview.Image())

	h.deliver(t)
	assert.NotSame(t, shown, h.m.preview.Image())
}

func TestFlameSelectionWraps(t *testing.T) {
	h := newHarness(t, blankRenderer())
	h.m.selectFlame(-1)
	assert.Equal(t, len(h.m.flames)-1, h.m.current)
	h.m.selectFlame(len(h.m.flames))
	assert.Equal(t, 0, h.m.current)
}

func TestEditXformChangesOnlyTheSelected(t *testing.T) {
	h := newHarness(t, blankRenderer())
	h.m.selectFlame(0)
	before := h.m.flame().Clone()

	press(h.m, tea.KeyTab)
	assert.Equal(t, 1, h.m.xform)
	press(h.m, '+')

	after := h.m.flame()
	assert.Equal(t, before.Xforms[0].Coefs, after.Xforms[0].Coefs)
	assert.InDelta(t, before.Xforms[1].Coefs[0]*scaleStep, after.Xforms[1].Coefs[0], 1e-9)
}

func TestRenderIsSavedAsPNG(t *testing.T) {
	h := newHarness(t, blankRenderer())
	h.m.selectFlame(0)
	h.deliver(t) // preview

	press(h.m, 'r')
	d := h.next(t)
	require.NoError(t, d.Dispatch())
	require.Len(t, h.m.pending, 1)

	msg := h.m.pending[0]()
	saved, ok := msg.(renderSavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)
	_, err := os.Stat(saved.path)
	assert.NoError(t, err)
}

func TestCancelRaisesFlags(t *testing.T) {
	h := newHarness(t, blankRenderer())
	h.m.selectFlame(0)

	press(h.m, 'p')
	press(h.m, 'r')
	large, bg := h.m.cancelLarge, h.m.cancelRender
	require.NotNil(t, large)
	require.NotNil(t, bg)

	press(h.m, 'x')
	assert.True(t, large.Load())
	assert.True(t, bg.Load())
	assert.Nil(t, h.m.cancelRender)
}

func TestHandleEvent(t *testing.T) {
	h := newHarness(t, blankRenderer())

	h.m.handleEvent(events.Event{
		Type:    events.RenderProgressEvent,
		Payload: events.ProgressPayload{Kind: scheduler.KindBackground, Fraction: 0.25},
	})
	showing, frac := h.m.preview.ShowingProgress()
	assert.True(t, showing)
	assert.Equal(t, 0.25, frac)

	// an aborted preview is routine and stays quiet
	h.m.handleEvent(events.Event{
		Type:    events.RenderFailedEvent,
		Payload: events.RenderPayload{Kind: scheduler.KindPreview, Err: render.ErrAborted},
	})
	assert.Nil(t, h.m.statusBar.Message())

	h.m.handleEvent(events.Event{
		Type:    events.RenderFailedEvent,
		Payload: events.RenderPayload{Kind: scheduler.KindBackground, Err: render.ErrAborted},
	})
	require.NotNil(t, h.m.statusBar.Message())
	assert.Equal(t, status.Warning, h.m.statusBar.Message().Type)
	showing, _ = h.m.preview.ShowingProgress()
	assert.False(t, showing)

	h.m.handleEvent(events.Event{
		Type:    events.RenderFailedEvent,
		Payload: events.RenderPayload{Kind: scheduler.KindThumbnail, Flame: "spiral", Err: errors.New("boom")},
	})
	assert.Equal(t, status.Error, h.m.statusBar.Message().Type)
	assert.Contains(t, h.m.statusBar.Message().Content, "spiral")
}

func TestHelpToggle(t *testing.T) {
	h := newHarness(t, blankRenderer())
	h.m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	press(h.m, '?')
	assert.True(t, h.m.showHelp)

	// flame keys are swallowed while help is open
	press(h.m, tea.KeyRight)
	assert.Equal(t, 0, h.m.current)

	press(h.m, tea.KeyEscape)
	assert.False(t, h.m.showHelp)
}

func TestReloadFlames(t *testing.T) {
	h := newHarness(t, blankRenderer())
	h.m.selectFlame(2)

	h.m.Update(FlamesLoadedMsg{Err: errors.New("bad xml")})
	assert.Len(t, h.m.flames, 3)
	assert.Equal(t, status.Error, h.m.statusBar.Message().Type)

	h.m.Update(FlamesLoadedMsg{})
	assert.Equal(t, status.Warning, h.m.statusBar.Message().Type)

	one := flame.Default()[:1]
	h.m.Update(FlamesLoadedMsg{Flames: one})
	assert.Len(t, h.m.flames, 1)
	assert.Equal(t, 0, h.m.current)
	assert.Equal(t, 0, h.m.thumbs.Selected())
}

func TestInitialFlameAndSelection(t *testing.T) {
	h := newHarness(t, blankRenderer())
	h.m.initial = "spiral"
	h.m.Init()

	name, theme := h.m.Selection()
	assert.Equal(t, "spiral", name)
	assert.NotEmpty(t, theme)
	assert.Equal(t, 1, h.m.thumbs.Selected())
}
