// Package mock provides mocks for graph nodes and render sinks and allows to
// execute integration tests.
package mock

import (
	"errors"

	"github.com/pipelined/dsp"
)

// ErrLimit is returned by Sink when it received Limit buffers.
var ErrLimit = errors.New("sink limit reached")

// Source mocks a dsp.Generator. It fills every sample with Value.
type Source struct {
	counter
	Value   float32
	Vol     dsp.Volume
	Panning dsp.Panning
}

// NewSource returns a source with unity volume.
func NewSource(value float32) *Source {
	return &Source{Value: value, Vol: dsp.DefaultVolume}
}

// Volume implements dsp.Node.
func (m *Source) Volume() dsp.Volume {
	return m.Vol
}

// Pan implements dsp.Node.
func (m *Source) Pan() dsp.Panning {
	return m.Panning
}

// Inputs implements dsp.Node.
func (m *Source) Inputs() []dsp.Node {
	return nil
}

// ProcessBuffer implements dsp.Node.
func (m *Source) ProcessBuffer(dsp.Buffer, dsp.Settings) {}

// AudioRequested implements dsp.Generator.
func (m *Source) AudioRequested(out dsp.Buffer, s dsp.Settings) {
	for i := 0; i < out.Len(); i++ {
		out.Set(i, m.Value)
	}
	m.advance(out.Len())
	m.ProcessBuffer(out, s)
}

// Ramp mocks a dsp.Generator which emits Start, Start+Step, Start+2*Step...
// for every sample of a buffer. The ramp restarts on every pull.
type Ramp struct {
	dsp.Base
	counter
	Start float32
	Step  float32
}

// AudioRequested implements dsp.Generator.
func (m *Ramp) AudioRequested(out dsp.Buffer, s dsp.Settings) {
	for i := 0; i < out.Len(); i++ {
		out.Set(i, m.Start+float32(i)*m.Step)
	}
	m.advance(out.Len())
}

// Node mocks a mixer or an effect node. Process is applied in
// ProcessBuffer when provided.
type Node struct {
	counter
	In      []dsp.Node
	Vol     dsp.Volume
	Panning dsp.Panning
	Process func(dsp.Buffer, dsp.Settings)

	// Inputs counts Inputs calls.
	InputCalls int
}

// NewNode returns a node with unity volume and provided inputs.
func NewNode(inputs ...dsp.Node) *Node {
	return &Node{In: inputs, Vol: dsp.DefaultVolume}
}

// Volume implements dsp.Node.
func (m *Node) Volume() dsp.Volume {
	return m.Vol
}

// Pan implements dsp.Node.
func (m *Node) Pan() dsp.Panning {
	return m.Panning
}

// Inputs implements dsp.Node.
func (m *Node) Inputs() []dsp.Node {
	m.InputCalls++
	return m.In
}

// ProcessBuffer implements dsp.Node.
func (m *Node) ProcessBuffer(out dsp.Buffer, s dsp.Settings) {
	if m.Process != nil {
		m.Process(out, s)
	}
	m.advance(out.Len())
}

// Receiver mocks a dsp.InputNode. Received samples are appended.
type Receiver struct {
	counter
	Received dsp.Float32
	Settings dsp.Settings
}

// AudioReceived implements dsp.InputNode.
func (m *Receiver) AudioReceived(in dsp.Buffer, s dsp.Settings) {
	for i := 0; i < in.Len(); i++ {
		m.Received = append(m.Received, in.At(i))
	}
	m.Settings = s
	m.advance(in.Len())
}

// Sink mocks up a render.Sink interface.
// Buffer is not thread-safe, so should not be checked while render is running.
type Sink struct {
	counter
	buffer       dsp.Float32
	Discard      bool
	Limit        int
	ErrorOnWrite error
	ErrorOnFlush error
	Flushed      bool
}

// Write appends buffer to the sink.
func (m *Sink) Write(b dsp.Buffer) error {
	if m.ErrorOnWrite != nil {
		return m.ErrorOnWrite
	}
	if m.Limit > 0 && m.calls >= m.Limit {
		return ErrLimit
	}
	if !m.Discard {
		for i := 0; i < b.Len(); i++ {
			m.buffer = append(m.buffer, b.At(i))
		}
	}
	m.advance(b.Len())
	return nil
}

// Flush marks the sink as flushed.
func (m *Sink) Flush() error {
	m.Flushed = true
	return m.ErrorOnFlush
}

// Buffer returns sink's buffer.
func (m *Sink) Buffer() dsp.Float32 {
	return m.buffer
}

// counter counts calls and samples.
type counter struct {
	calls   int
	samples int
}

// advance counter's metrics.
func (c *counter) advance(size int) {
	c.calls++
	c.samples = c.samples + size
}

// Count returns calls and samples metrics.
func (c *counter) Count() (int, int) {
	return c.calls, c.samples
}
