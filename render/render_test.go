package render_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/pipelined/dsp"
	"github.com/pipelined/dsp/mock"
	"github.com/pipelined/dsp/render"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var stereo = dsp.Settings{Frames: 16, Channels: 2}

func TestRun(t *testing.T) {
	var (
		errWrite = errors.New("write error")
		errFlush = errors.New("flush error")
	)
	tests := []struct {
		description string
		cycles      int
		sink        *mock.Sink
		settings    dsp.Settings
		err         error
		writes      int
		flushed     bool
	}{
		{
			description: "ok",
			cycles:      10,
			sink:        &mock.Sink{},
			settings:    stereo,
			writes:      10,
			flushed:     true,
		},
		{
			description: "write error",
			cycles:      10,
			sink:        &mock.Sink{ErrorOnWrite: errWrite},
			settings:    stereo,
			err:         errWrite,
			flushed:     true,
		},
		{
			description: "flush error",
			cycles:      3,
			sink:        &mock.Sink{ErrorOnFlush: errFlush},
			settings:    stereo,
			err:         errFlush,
			writes:      3,
			flushed:     true,
		},
		{
			description: "write and flush errors",
			cycles:      3,
			sink:        &mock.Sink{ErrorOnWrite: errWrite, ErrorOnFlush: errFlush},
			settings:    stereo,
			err:         errWrite,
			flushed:     true,
		},
		{
			description: "invalid settings",
			cycles:      3,
			sink:        &mock.Sink{},
			settings:    dsp.Settings{Frames: 16, Channels: 3},
			err:         dsp.ErrUnsupportedChannels,
		},
		{
			description: "negative cycles",
			cycles:      -1,
			sink:        &mock.Sink{},
			settings:    stereo,
			err:         render.ErrInvalidCycles,
		},
	}
	for _, test := range tests {
		root := mock.NewNode(mock.NewSource(0.25), mock.NewSource(0.25))
		err := render.Run(context.Background(), root, test.settings, test.cycles, test.sink)
		if test.err != nil {
			assert.True(t, errors.Is(err, test.err), test.description)
		} else {
			assert.Nil(t, err, test.description)
		}
		writes, samples := test.sink.Count()
		assert.Equal(t, test.writes, writes, test.description)
		assert.Equal(t, test.writes*test.settings.SampleCount(), samples, test.description)
		assert.Equal(t, test.flushed, test.sink.Flushed, test.description)
	}
}

func TestRunOutputIsClearedBetweenCycles(t *testing.T) {
	sink := &mock.Sink{}
	root := mock.NewNode(mock.NewSource(0.5))
	err := render.Run(context.Background(), root, stereo, 3, sink)
	assert.Nil(t, err)
	assert.Equal(t, 3*stereo.SampleCount(), len(sink.Buffer()))
	for _, v := range sink.Buffer() {
		assert.Equal(t, float32(0.5), v)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sink := &mock.Sink{}
	err := render.Run(ctx, mock.NewSource(1), stereo, 0, sink)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, sink.Flushed)
}

func TestAsync(t *testing.T) {
	sink := &mock.Sink{Discard: true}
	h := render.Async(context.Background(), mock.NewSource(1), stereo, 5, sink)
	assert.Nil(t, h.Wait())
	writes, _ := sink.Count()
	assert.Equal(t, 5, writes)
	goleak.VerifyNoLeaks(t)
}

func TestAsyncStop(t *testing.T) {
	sink := &mock.Sink{Discard: true}
	h := render.Async(context.Background(), mock.NewSource(1), stereo, 0, sink)
	time.Sleep(10 * time.Millisecond)
	assert.Nil(t, h.Stop())
	assert.True(t, sink.Flushed)
	goleak.VerifyNoLeaks(t)
}

func TestAsyncSinkLimit(t *testing.T) {
	sink := &mock.Sink{Limit: 4}
	h := render.Async(context.Background(), mock.NewSource(1), stereo, 0, sink)
	err := h.Wait()
	assert.True(t, errors.Is(err, mock.ErrLimit))
	writes, _ := sink.Count()
	assert.Equal(t, 4, writes)
	goleak.VerifyNoLeaks(t)
}

func TestCycles(t *testing.T) {
	assert.Equal(t, 100, render.Cycles(time.Second, 44100, 441))
	assert.Equal(t, 87, render.Cycles(time.Second, 44100, 512))
}
