package render

import (
	"context"
	"errors"
	"image"
	"sync/atomic"
	"testing"
	"time"

	"github.com/billie-coop/fr0st/internal/flame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	name  string
	calls atomic.Int32
}

func (s *stubBackend) Name() string { return s.name }

func (s *stubBackend) Render(_ context.Context, t Target, _ ProgressFunc) (*Buffer, error) {
	s.calls.Add(1)
	return NewBuffer(t.Size.X, t.Size.Y, t.ChannelCount()), nil
}

func validTarget(backend string) Target {
	return Target{Flame: flame.Default()[0], Size: image.Pt(4, 3), Backend: backend}
}

func TestRegistry_Dispatch(t *testing.T) {
	a := &stubBackend{name: "a"}
	b := &stubBackend{name: "b"}
	r := NewRegistry(b, a)

	assert.Equal(t, []string{"a", "b"}, r.Names())
	assert.True(t, r.Has("a"))
	assert.False(t, r.Has("flam4"))

	buf, err := r.Render(context.Background(), validTarget("b"), nil)
	require.NoError(t, err)
	assert.Len(t, buf.Pix, 4*3*3)
	assert.Equal(t, int32(0), a.calls.Load())
	assert.Equal(t, int32(1), b.calls.Load())
}

func TestRegistry_Errors(t *testing.T) {
	r := NewRegistry(&stubBackend{name: "a"})

	tests := []struct {
		name   string
		target Target
		want   error
	}{
		{"unknown backend", validTarget("flam4"), ErrUnknownBackend},
		{"no flame", Target{Size: image.Pt(1, 1), Backend: "a"}, ErrNoFlame},
		{"zero size", Target{Flame: flame.Default()[0], Backend: "a"}, ErrEmptySize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Render(context.Background(), tt.target, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTarget_CloneIsIndependent(t *testing.T) {
	orig := validTarget("a")
	orig.Options = map[string]string{"estimator": "9"}

	c := orig.Clone()
	c.Options["estimator"] = "0"
	c.Flame.Xforms[0].Weight = 42

	assert.Equal(t, "9", orig.Options["estimator"])
	assert.Equal(t, 1.0, orig.Flame.Xforms[0].Weight)
	assert.Equal(t, 3, orig.ChannelCount())
}

func TestPoll(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, Poll(ctx, nil, Progress{}))
	assert.NoError(t, Poll(ctx, func(Progress) Signal { return Continue }, Progress{}))
	assert.ErrorIs(t, Poll(ctx, func(Progress) Signal { return Abort }, Progress{}), ErrAborted)
}

func TestPoll_PauseBlocksUntilReleased(t *testing.T) {
	var polls atomic.Int32
	progress := func(Progress) Signal {
		if polls.Add(1) < 4 {
			return Pause
		}
		return Continue
	}

	start := time.Now()
	require.NoError(t, Poll(context.Background(), progress, Progress{}))
	assert.Equal(t, int32(4), polls.Load())
	assert.GreaterOrEqual(t, time.Since(start), 3*PauseInterval)
}

func TestPoll_ContextEndsPause(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := Poll(ctx, func(Progress) Signal { return Pause }, Progress{})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestSignal_String(t *testing.T) {
	assert.Equal(t, "continue", Continue.String())
	assert.Equal(t, "abort", Abort.String())
	assert.Equal(t, "pause", Pause.String())
	assert.Equal(t, "unknown", Signal(7).String())
}
