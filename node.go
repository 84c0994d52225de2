package dsp

import "math"

// Volume is the amplitude multiplier of a node. Negative values invert
// polarity, values above 1 amplify.
type Volume float32

// Panning is the stereo position of a node:
//	-1.0 = left
//	 0.0 = center
//	 1.0 = right
type Panning float32

const (
	// DefaultVolume is the volume of a node that doesn't set one.
	DefaultVolume Volume = 1.0
	// Center is the default pan.
	Center Panning = 0.0
)

// Node is a unit of audio processing. If the node is a parent of other
// nodes, it returns them from Inputs in the order they must be summed.
// Inputs are borrowed for the duration of a pull, the node doesn't own
// them.
type Node interface {
	Volume() Volume
	Pan() Panning
	Inputs() []Node
	// ProcessBuffer is called once per pull after all inputs were mixed
	// into out. Effects transform out in place.
	ProcessBuffer(out Buffer, s Settings)
}

// Generator is a node that synthesizes its own output instead of pulling
// inputs. AudioRequested writes into out and is expected to call
// ProcessBuffer itself when it has any processing to apply.
type Generator interface {
	Node
	AudioRequested(out Buffer, s Settings)
}

// InputNode receives audio from an incoming stream. The stream driver
// calls AudioReceived whenever new captured samples arrive. It's not wired
// to pulls: a type may implement both Node and InputNode, but the
// composition is left to the driver.
type InputNode interface {
	AudioReceived(in Buffer, s Settings)
}

// Base provides default Node behaviour. Embed it and override what the
// node needs.
type Base struct{}

// Volume returns DefaultVolume.
func (Base) Volume() Volume {
	return DefaultVolume
}

// Pan returns Center.
func (Base) Pan() Panning {
	return Center
}

// Inputs returns no inputs, the node is a source.
func (Base) Inputs() []Node {
	return nil
}

// ProcessBuffer does nothing.
func (Base) ProcessBuffer(Buffer, Settings) {}

// GainPerChannel returns the left and right gain for the volume and pan.
// The law is linear: the channel the pan points to gets the full volume,
// the opposite one is scaled down to zero at ±1. Pan is not clamped.
func GainPerChannel(v Volume, p Panning) [2]float32 {
	if p >= 0 {
		return [2]float32{
			float32(v) * float32(math.Abs(float64(p-1))),
			float32(v),
		}
	}
	return [2]float32{
		float32(v),
		float32(v) * float32(p+1),
	}
}

// GainOf returns the per channel gain of the node.
func GainOf(n Node) [2]float32 {
	return GainPerChannel(n.Volume(), n.Pan())
}

// Pull requests one buffer of audio from the node. Generators produce it
// with AudioRequested, any other node runs Mix.
//
// out must hold exactly s.Frames*s.Channels samples and s.Channels must
// not exceed MaxChannels; use Settings.Validate to check it up front.
func Pull(n Node, out Buffer, s Settings) {
	if g, ok := n.(Generator); ok {
		g.AudioRequested(out, s)
		return
	}
	Mix(n, out, s)
}

// Mix is the default pull algorithm. Every input is pulled into its own
// zeroed scratch buffer and accumulated into out with the node's gain.
// Volume and pan are read once, before the first input. ProcessBuffer is
// called exactly once, after all inputs were mixed.
func Mix(n Node, out Buffer, s Settings) {
	frames, channels := s.Frames, s.Channels
	size := frames * channels
	gain := GainOf(n)
	for _, in := range n.Inputs() {
		scratch := out.Zeroed(size)
		Pull(in, scratch, s)
		for i := 0; i < frames; i++ {
			for j := 0; j < channels; j++ {
				idx := i*channels + j
				out.Set(idx, out.At(idx)+scratch.At(idx)*gain[j])
			}
		}
		if r, ok := scratch.(Releaser); ok {
			r.Release()
		}
	}
	n.ProcessBuffer(out, s)
}
