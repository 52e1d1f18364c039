package delivery

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliver_RejectsBadChannels(t *testing.T) {
	r := NewRouter(1)
	called := false
	cb := func(image.Image) { called = true }

	for _, channels := range []int{0, 1, 2, 5} {
		err := r.Deliver(cb, image.Pt(1, 1), make([]byte, 8), channels)
		assert.ErrorIs(t, err, ErrInvalidChannels, "channels=%d", channels)
	}
	assert.Equal(t, 0, r.Pending())
	assert.False(t, called)
}

func TestDeliver_RejectsShortBuffer(t *testing.T) {
	r := NewRouter(1)
	err := r.Deliver(nil, image.Pt(2, 2), make([]byte, 11), 3)
	assert.ErrorIs(t, err, ErrShortBuffer)

	err = r.Deliver(nil, image.Pt(-1, 2), nil, 3)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		channels int
		pix      []byte
		want     color.Color
	}{
		{"rgb", 3, []byte{10, 20, 30}, color.RGBA{10, 20, 30, 255}},
		{"rgba", 4, []byte{10, 20, 30, 40}, color.NRGBA{10, 20, 30, 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Convert(image.Pt(1, 1), tt.pix, tt.channels)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 1, 1), img.Bounds())
			assert.Equal(t, tt.want, img.At(0, 0))
		})
	}
}

func TestRouter_DispatchRunsOnReceiver(t *testing.T) {
	r := NewRouter(2)
	var got image.Image

	go func() {
		_ = r.Deliver(func(img image.Image) { got = img }, image.Pt(2, 1), make([]byte, 6), 3)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	d, err := r.Next(ctx)
	require.NoError(t, err)
	require.NoError(t, d.Dispatch())

	require.NotNil(t, got)
	assert.Equal(t, 2, got.Bounds().Dx())
	assert.Equal(t, 3, d.Channels)
}

func TestDispatch_RecoversTornDownConsumer(t *testing.T) {
	r := NewRouter(1)
	require.NoError(t, r.Deliver(func(image.Image) { panic("window closed") }, image.Pt(1, 1), make([]byte, 4), 4))

	d, err := r.Next(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, d.Dispatch(), ErrConsumerGone)
}

func TestRouter_Close(t *testing.T) {
	r := NewRouter(1)
	require.NoError(t, r.Deliver(nil, image.Pt(1, 1), make([]byte, 3), 3))

	blocked := make(chan error, 1)
	go func() {
		blocked <- r.Deliver(nil, image.Pt(1, 1), make([]byte, 3), 3)
	}()

	r.Close()
	r.Close()

	select {
	case err := <-blocked:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("Deliver did not unblock on Close")
	}

	_, err := r.Next(context.Background())
	assert.NoError(t, err, "queued delivery survives Close")
	_, err = r.Next(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestListen(t *testing.T) {
	r := NewRouter(1)
	require.NoError(t, r.Deliver(nil, image.Pt(1, 1), make([]byte, 3), 3))

	msg := r.Listen()()
	_, ok := msg.(ImageReadyMsg)
	assert.True(t, ok)

	r.Close()
	assert.IsType(t, RouterClosedMsg{}, r.Listen()())
}
