// Package node provides ready to use nodes: generators, a mixer and a few
// effects. All of them can be wired with reference inputs or added to a
// graph.Graph.
package node

import (
	"github.com/pipelined/dsp"
)

// Base holds volume and pan of a node and provides the remaining dsp.Node
// defaults. Use Unity to get the default volume.
//
// Volume and pan scale the inputs a node mixes. Generators don't mix, so
// their own output is not affected.
type Base struct {
	Vol     dsp.Volume
	Panning dsp.Panning
}

// Unity returns a base with default volume and centered pan.
func Unity() Base {
	return Base{Vol: dsp.DefaultVolume, Panning: dsp.Center}
}

// Volume implements dsp.Node.
func (b *Base) Volume() dsp.Volume {
	return b.Vol
}

// Pan implements dsp.Node.
func (b *Base) Pan() dsp.Panning {
	return b.Panning
}

// Inputs implements dsp.Node. Base has no inputs.
func (b *Base) Inputs() []dsp.Node {
	return nil
}

// ProcessBuffer implements dsp.Node. Base has no processing.
func (b *Base) ProcessBuffer(dsp.Buffer, dsp.Settings) {}

// Mixer sums its inputs.
type Mixer struct {
	Base
	In []dsp.Node
}

// NewMixer returns a mixer with unity volume.
func NewMixer(inputs ...dsp.Node) *Mixer {
	return &Mixer{
		Base: Unity(),
		In:   inputs,
	}
}

// Add appends input to the mixer.
func (m *Mixer) Add(input dsp.Node) {
	m.In = append(m.In, input)
}

// Inputs implements dsp.Node.
func (m *Mixer) Inputs() []dsp.Node {
	return m.In
}
