// +build portaudio

package portaudio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pipelined/dsp"
	"github.com/pipelined/dsp/mock"
	"github.com/pipelined/dsp/node"
)

func TestCallbacks(t *testing.T) {
	s := dsp.Settings{Frames: 4, Channels: 2}
	out := make([]float32, s.SampleCount())
	for i := range out {
		out[i] = 1
	}
	playback(node.NewMixer(node.NewConstant(0.25)), s)(out)
	for _, v := range out {
		assert.Equal(t, float32(0.25), v)
	}

	r := &mock.Receiver{}
	capture(r, s)([]float32{1, 2, 3, 4, 5, 6, 7, 8}, nil)
	assert.Equal(t, dsp.Float32{1, 2, 3, 4, 5, 6, 7, 8}, r.Received)
	assert.Equal(t, s, r.Settings)
}

func TestPlayer(t *testing.T) {
	s := dsp.Settings{Frames: 512, Channels: 2}
	osc := node.NewOscillator(440, 44100)
	osc.Amplitude = 0.1
	p := NewPlayer(node.NewMixer(osc), 44100, s)
	assert.Nil(t, p.Start())
	time.Sleep(200 * time.Millisecond)
	assert.Nil(t, p.Stop())
	assert.Equal(t, ErrNotStarted, p.Stop())
}

func TestRecorder(t *testing.T) {
	s := dsp.Settings{Frames: 512, Channels: 1}
	r := &mock.Receiver{}
	rec := NewRecorder(r, 44100, s)
	assert.Nil(t, rec.Start())
	time.Sleep(200 * time.Millisecond)
	assert.Nil(t, rec.Stop())
	calls, _ := r.Count()
	assert.True(t, calls > 0)
}
