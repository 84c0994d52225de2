package dsp_test

import (
	"fmt"

	"github.com/pipelined/dsp"
)

// constant is a source that emits the same value for every sample.
type constant struct {
	dsp.Base
	value float32
}

func (c constant) AudioRequested(out dsp.Buffer, s dsp.Settings) {
	for i := 0; i < out.Len(); i++ {
		out.Set(i, c.value)
	}
}

// panned is a mixer with its own volume and pan.
type panned struct {
	dsp.Base
	vol    dsp.Volume
	pan    dsp.Panning
	inputs []dsp.Node
}

func (p panned) Volume() dsp.Volume { return p.vol }
func (p panned) Pan() dsp.Panning   { return p.pan }
func (p panned) Inputs() []dsp.Node { return p.inputs }

func Example() {
	root := panned{
		vol:    1,
		pan:    0.5,
		inputs: []dsp.Node{constant{value: 0.25}, constant{value: 0.5}},
	}
	s := dsp.Settings{Frames: 2, Channels: 2}
	out := make(dsp.Float32, s.SampleCount())
	dsp.Pull(root, out, s)
	fmt.Println(out)
	// Output: [0.375 0.75 0.375 0.75]
}

func ExampleGainPerChannel() {
	fmt.Println(dsp.GainPerChannel(1, -1))
	fmt.Println(dsp.GainPerChannel(2, 0.5))
	// Output:
	// [1 0]
	// [1 2]
}
