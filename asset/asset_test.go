package asset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pipelined/dsp"
	"github.com/pipelined/dsp/asset"
	"github.com/pipelined/dsp/node"
)

func TestRecordAndPlay(t *testing.T) {
	a := asset.New()
	s := dsp.Settings{Frames: 2, Channels: 2}
	var in dsp.InputNode = a
	in.AudioReceived(dsp.Float32{1, 2, 3, 4}, s)
	in.AudioReceived(dsp.Float32{5, 6}, dsp.Settings{Frames: 1, Channels: 2})
	assert.Equal(t, 2, a.Channels())
	assert.Equal(t, dsp.Float32{1, 2, 3, 4, 5, 6}, a.Data())

	tests := []dsp.Float32{
		{1, 2, 3, 4},
		{5, 6, 0, 0},
		{0, 0, 0, 0},
	}
	for _, expected := range tests {
		out := dsp.Float32{9, 9, 9, 9}
		dsp.Pull(a, out, s)
		assert.Equal(t, expected, out)
	}

	a.Reset()
	out := make(dsp.Float32, 4)
	dsp.Pull(a, out, s)
	assert.Equal(t, dsp.Float32{1, 2, 3, 4}, out)
}

func TestRecordPulledTree(t *testing.T) {
	a := asset.New()
	s := dsp.Settings{Frames: 3, Channels: 1}
	root := node.NewMixer(node.NewConstant(0.25), node.NewConstant(0.25))
	for i := 0; i < 2; i++ {
		out := make(dsp.Float32, s.SampleCount())
		dsp.Pull(root, out, s)
		assert.Nil(t, a.Write(out))
	}
	assert.Nil(t, a.Flush())
	assert.Equal(t, dsp.Float32{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}, a.Data())

	// asset is used as input of another tree.
	m := node.NewMixer(a)
	m.Vol = 2
	out := make(dsp.Float32, 6)
	dsp.Pull(m, out, dsp.Settings{Frames: 6, Channels: 1})
	assert.Equal(t, dsp.Float32{1, 1, 1, 1, 1, 1}, out)
}

func TestSinkChannels(t *testing.T) {
	assert.Equal(t, 0, asset.New().Channels())

	a := asset.NewSink(2)
	assert.Nil(t, a.Write(dsp.Float32{0.1, 0.2}))
	assert.Equal(t, 2, a.Channels())

	a.AudioReceived(dsp.Float32{0.3}, dsp.Settings{Frames: 1, Channels: 1})
	assert.Equal(t, 1, a.Channels())
	assert.Equal(t, dsp.Float32{0.1, 0.2, 0.3}, a.Data())
}
