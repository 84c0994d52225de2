package node

import (
	"math"

	"github.com/pipelined/dsp"
)

// Gain multiplies the mixed signal by Amount.
type Gain struct {
	Mixer
	Amount float32
}

// NewGain returns a gain stage with unity volume.
func NewGain(amount float32, inputs ...dsp.Node) *Gain {
	return &Gain{
		Mixer:  *NewMixer(inputs...),
		Amount: amount,
	}
}

// ProcessBuffer implements dsp.Node.
func (g *Gain) ProcessBuffer(out dsp.Buffer, s dsp.Settings) {
	for i := 0; i < out.Len(); i++ {
		out.Set(i, out.At(i)*g.Amount)
	}
}

// Clip limits the mixed signal to [-Threshold, Threshold].
type Clip struct {
	Mixer
	Threshold float32
}

// NewClip returns a hard clipper with unity volume.
func NewClip(threshold float32, inputs ...dsp.Node) *Clip {
	return &Clip{
		Mixer:     *NewMixer(inputs...),
		Threshold: threshold,
	}
}

// ProcessBuffer implements dsp.Node.
func (c *Clip) ProcessBuffer(out dsp.Buffer, s dsp.Settings) {
	for i := 0; i < out.Len(); i++ {
		switch v := out.At(i); {
		case v > c.Threshold:
			out.Set(i, c.Threshold)
		case v < -c.Threshold:
			out.Set(i, -c.Threshold)
		}
	}
}

// LowPass is a one-pole low-pass filter. Filter state is kept per channel
// between pulls.
type LowPass struct {
	Mixer
	Cutoff     float64
	SampleRate int
	state      [dsp.MaxChannels]float32
}

// NewLowPass returns a low-pass filter with unity volume.
func NewLowPass(cutoff float64, sampleRate int, inputs ...dsp.Node) *LowPass {
	return &LowPass{
		Mixer:      *NewMixer(inputs...),
		Cutoff:     cutoff,
		SampleRate: sampleRate,
	}
}

// coefficient returns the smoothing factor for the cutoff.
func (f *LowPass) coefficient() float32 {
	return float32(1 - math.Exp(-2*math.Pi*f.Cutoff/float64(f.SampleRate)))
}

// ProcessBuffer implements dsp.Node.
func (f *LowPass) ProcessBuffer(out dsp.Buffer, s dsp.Settings) {
	a := f.coefficient()
	for i := 0; i < s.Frames; i++ {
		for j := 0; j < s.Channels; j++ {
			idx := i*s.Channels + j
			f.state[j] += a * (out.At(idx) - f.state[j])
			out.Set(idx, f.state[j])
		}
	}
}

// Reset clears the filter state.
func (f *LowPass) Reset() {
	f.state = [dsp.MaxChannels]float32{}
}
