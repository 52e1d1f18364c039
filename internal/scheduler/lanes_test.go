package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billie-coop/fr0st/internal/render"
)

func job(kind Kind) *Job {
	var progress render.ProgressFunc
	if kind == KindBackground || kind == KindLargePreview {
		progress = func(render.Progress) render.Signal { return render.Continue }
	}
	return newJob(kind, nil, testTarget(), progress)
}

func TestLanes_PreviewReplacesNotQueues(t *testing.T) {
	l := NewLanes()
	first, second := job(KindPreview), job(KindPreview)

	assert.Empty(t, l.EnqueuePreview(first))
	superseded := l.EnqueuePreview(second)

	require.Len(t, superseded, 1)
	assert.Same(t, first, superseded[0])
	assert.Equal(t, 1, l.Counts().Previews)
	assert.Same(t, second, l.TakeFast())
	assert.Nil(t, l.TakeFast())
}

func TestLanes_ThumbnailFIFO(t *testing.T) {
	l := NewLanes()
	a, b, c := job(KindThumbnail), job(KindThumbnail), job(KindThumbnail)
	l.EnqueueThumbnail(a)
	l.EnqueueThumbnail(b)
	l.EnqueueThumbnail(c)

	assert.Same(t, a, l.TakeFast())
	assert.Same(t, b, l.TakeFast())
	assert.Same(t, c, l.TakeFast())
	assert.Nil(t, l.TakeFast())
	assert.False(t, l.FastPending())
}

func TestLanes_PreviewDominatesThumbnails(t *testing.T) {
	l := NewLanes()
	a, b := job(KindThumbnail), job(KindThumbnail)
	p := job(KindPreview)
	l.EnqueueThumbnail(a)
	l.EnqueueThumbnail(b)
	l.EnqueuePreview(p)

	assert.Same(t, p, l.TakeFast())
	assert.Same(t, a, l.TakeFast())
}

func TestLanes_LargePreviewAppends(t *testing.T) {
	l := NewLanes()
	small, large := job(KindPreview), job(KindLargePreview)
	l.EnqueuePreview(small)
	l.AppendPreview(large)

	assert.Equal(t, 2, l.Counts().Previews)
	assert.Same(t, small, l.TakeFast())
	assert.Same(t, large, l.TakeFast())

	l.AppendPreview(job(KindLargePreview))
	newer := job(KindPreview)
	assert.Len(t, l.EnqueuePreview(newer), 1, "a plain preview replaces pending large previews")
	assert.Same(t, newer, l.TakeFast())
}

func TestLanes_Background(t *testing.T) {
	l := NewLanes()

	bare := newJob(KindBackground, nil, testTarget(), nil)
	_, err := l.EnqueueBackground(bare)
	assert.ErrorIs(t, err, ErrMissingProgress)
	assert.Nil(t, l.TakeSlow())

	first, second := job(KindBackground), job(KindBackground)
	_, err = l.EnqueueBackground(first)
	require.NoError(t, err)
	old, err := l.EnqueueBackground(second)
	require.NoError(t, err)

	assert.Equal(t, []*Job{first}, old)
	assert.Equal(t, Counts{Background: 1}, l.Counts())
	assert.Same(t, second, l.TakeSlow())
	assert.False(t, l.FastPending(), "background work is not fast work")
}

func TestWrapProgress(t *testing.T) {
	tests := []struct {
		name string
		own  render.Signal
		flag render.Signal
		exit render.Signal
		want render.Signal
	}{
		{"all clear", render.Continue, render.Continue, render.Continue, render.Continue},
		{"paused by flag", render.Continue, render.Pause, render.Continue, render.Pause},
		{"caller aborts", render.Abort, render.Continue, render.Continue, render.Abort},
		{"flag aborts", render.Continue, render.Abort, render.Continue, render.Abort},
		{"shutdown beats pause", render.Continue, render.Pause, render.Abort, render.Abort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flag, exit Flag
			flag.Set(tt.flag)
			exit.Set(tt.exit)

			wrapped := wrapProgress(func(render.Progress) render.Signal { return tt.own }, &flag, &exit)
			assert.Equal(t, tt.want, wrapped(render.Progress{}))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "thumbnail", KindThumbnail.String())
	assert.Equal(t, "large-preview", KindLargePreview.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
