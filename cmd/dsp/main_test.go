package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pipelined/dsp"
	"github.com/pipelined/dsp/wav"
)

func TestCommands(t *testing.T) {
	assert.Equal(t, len(commands), 2)
	c := config{args: []string{"dsp"}}
	assert.Equal(t, errorExitCode, c.run())
	c = config{args: []string{"dsp", "unknown"}}
	assert.Equal(t, errorExitCode, c.run())
	c = config{args: []string{"dsp", "render"}}
	assert.Equal(t, errorExitCode, c.run())
}

func TestRender(t *testing.T) {
	dir, err := ioutil.TempDir("", "dsp")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)
	out := filepath.Join(dir, "out.wav")

	c := config{args: []string{"dsp", "render", "-out", out, "-duration", "100ms", "-rate", "8000", "-frames", "100", "-freq", "440;660;880"}}
	assert.Equal(t, successExitCode, c.run())

	src, err := wav.Open(out)
	assert.Nil(t, err)
	defer src.Close()
	assert.Equal(t, 8000, src.SampleRate())
	assert.Equal(t, 2, src.Channels())

	s := dsp.Settings{Frames: 800, Channels: 2}
	b := make(dsp.Float32, s.SampleCount())
	dsp.Pull(src, b, s)
	assert.Nil(t, src.Err())
	var peak float32
	for _, v := range b {
		if v > peak {
			peak = v
		}
	}
	assert.True(t, peak > 0)
	assert.True(t, peak <= 1)
}

func TestFloatList(t *testing.T) {
	var l floatList
	assert.Nil(t, l.Set("1;2.5"))
	assert.Equal(t, floatList{1, 2.5}, l)
	assert.Equal(t, "1;2.5", l.String())
	assert.NotNil(t, l.Set("x"))
}

func TestPanSpread(t *testing.T) {
	f := treeFlags{freqs: floatList{1, 2, 3}, spread: 0.5}
	assert.Equal(t, -0.5, f.pan(0))
	assert.Equal(t, 0.0, f.pan(1))
	assert.Equal(t, 0.5, f.pan(2))
	f.freqs = floatList{1}
	assert.Equal(t, 0.0, f.pan(0))
}
