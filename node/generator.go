package node

import (
	"math"
	"math/rand"

	"github.com/pipelined/dsp"
)

// Constant emits Value for every sample.
type Constant struct {
	Base
	Value float32
}

// NewConstant returns a constant generator with unity volume.
func NewConstant(value float32) *Constant {
	return &Constant{
		Base:  Unity(),
		Value: value,
	}
}

// AudioRequested implements dsp.Generator.
func (c *Constant) AudioRequested(out dsp.Buffer, s dsp.Settings) {
	for i := 0; i < out.Len(); i++ {
		out.Set(i, c.Value)
	}
	c.ProcessBuffer(out, s)
}

// Oscillator generates a sine wave. The same value is written to every
// channel of a frame. Phase is carried between pulls, so consecutive
// buffers form a continuous signal.
type Oscillator struct {
	Base
	Frequency  float64
	Amplitude  float64
	SampleRate int
	phase      float64
}

// NewOscillator returns a full scale sine oscillator.
func NewOscillator(frequency float64, sampleRate int) *Oscillator {
	return &Oscillator{
		Base:       Unity(),
		Frequency:  frequency,
		Amplitude:  1,
		SampleRate: sampleRate,
	}
}

// AudioRequested implements dsp.Generator.
func (o *Oscillator) AudioRequested(out dsp.Buffer, s dsp.Settings) {
	step := 2 * math.Pi * o.Frequency / float64(o.SampleRate)
	for i := 0; i < s.Frames; i++ {
		v := float32(o.Amplitude * math.Sin(o.phase))
		for j := 0; j < s.Channels; j++ {
			out.Set(i*s.Channels+j, v)
		}
		o.phase += step
		if o.phase >= 2*math.Pi {
			o.phase -= 2 * math.Pi
		}
	}
	o.ProcessBuffer(out, s)
}

// Reset rewinds the phase.
func (o *Oscillator) Reset() {
	o.phase = 0
}

// Noise generates white noise in [-Amplitude, Amplitude]. Every channel
// gets its own samples.
type Noise struct {
	Base
	Amplitude float32
	rand      *rand.Rand
}

// NewNoise returns a deterministic noise generator for the seed.
func NewNoise(amplitude float32, seed int64) *Noise {
	return &Noise{
		Base:      Unity(),
		Amplitude: amplitude,
		rand:      rand.New(rand.NewSource(seed)),
	}
}

// AudioRequested implements dsp.Generator.
func (n *Noise) AudioRequested(out dsp.Buffer, s dsp.Settings) {
	for i := 0; i < out.Len(); i++ {
		out.Set(i, n.Amplitude*(2*n.rand.Float32()-1))
	}
	n.ProcessBuffer(out, s)
}
