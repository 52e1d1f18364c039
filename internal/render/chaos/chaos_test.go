package chaos

import (
	"context"
	"image"
	"testing"

	"github.com/billie-coop/fr0st/internal/flame"
	"github.com/billie-coop/fr0st/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func target(channels int) render.Target {
	return render.Target{
		Flame:     flame.Default()[0],
		Size:      image.Pt(32, 24),
		Quality:   4,
		Backend:   render.BackendChaos,
		Threads:   2,
		FixedSeed: true,
		Channels:  channels,
	}
}

func TestRender_FixedSeedIsDeterministic(t *testing.T) {
	b := &Backend{BatchSize: 500}

	first, err := b.Render(context.Background(), target(3), nil)
	require.NoError(t, err)
	second, err := b.Render(context.Background(), target(3), nil)
	require.NoError(t, err)

	assert.Equal(t, first.Pix, second.Pix)
	assert.Equal(t, 3, first.Channels)
	assert.Len(t, first.Pix, 32*24*3)
}

func TestRender_PlotsSomething(t *testing.T) {
	buf, err := New().Render(context.Background(), target(4), nil)
	require.NoError(t, err)
	require.Equal(t, 4, buf.Channels)

	lit := 0
	for i := 3; i < len(buf.Pix); i += 4 {
		if buf.Pix[i] > 0 {
			lit++
		}
	}
	assert.Greater(t, lit, 0)
}

func TestRender_ReportsProgressAndHonoursAbort(t *testing.T) {
	b := &Backend{BatchSize: 100}
	var seen []float64

	_, err := b.Render(context.Background(), target(3), func(p render.Progress) render.Signal {
		seen = append(seen, p.Fraction)
		if len(seen) == 3 {
			return render.Abort
		}
		return render.Continue
	})

	assert.ErrorIs(t, err, render.ErrAborted)
	require.Len(t, seen, 3)
	assert.Equal(t, 0.0, seen[0])
	assert.Less(t, seen[1], seen[2])
}

func TestRender_RejectsBadTargets(t *testing.T) {
	b := New()

	bad := target(5)
	_, err := b.Render(context.Background(), bad, nil)
	assert.Error(t, err)

	empty := target(3)
	empty.Flame = &flame.Flame{Xforms: []flame.Xform{{Weight: 0}}}
	_, err = b.Render(context.Background(), empty, nil)
	assert.ErrorIs(t, err, flame.ErrNoXforms)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = b.Render(cancelled, target(3), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("swirl"))
	assert.False(t, Supported("julia"))
}
