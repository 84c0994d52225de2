/*
Package graph stores nodes in an arena and pulls audio from them.

Nodes are added to a Graph and addressed by the returned ID. Edges are
stored as child IDs, so a node never holds references to its inputs:

    g := graph.New()
    osc := g.Add(node.NewOscillator(440, 44100))
    mix := g.Add(node.NewMixer())
    err := g.Connect(mix, osc)
    ...
    err = g.Pull(mix, out, settings)

Within the graph, the inputs of a vertex are its arena children; the Inputs
method of the stored node is not consulted. Connect refuses edges that
would create a cycle, so every pull terminates. A child may have several
parents, it's pulled once per parent.

Graph is not safe for concurrent use.
*/
package graph

import (
	"errors"
	"fmt"

	"github.com/rs/xid"

	"github.com/pipelined/dsp"
	"github.com/pipelined/dsp/log"
	"github.com/pipelined/dsp/metric"
)

var (
	// ErrUnknownNode is returned when ID doesn't address a node.
	ErrUnknownNode = errors.New("unknown node")
	// ErrCycle is returned when connection would create a cycle.
	ErrCycle = errors.New("connection creates a cycle")
	// ErrGeneratorInputs is returned when input is connected to a
	// generator. Generators don't pull inputs.
	ErrGeneratorInputs = errors.New("generator cannot have inputs")
	// ErrNotConnected is returned when disconnected nodes are not connected.
	ErrNotConnected = errors.New("nodes are not connected")
	// ErrBufferSize is returned when output buffer length doesn't match
	// settings.
	ErrBufferSize = errors.New("buffer size doesn't match settings")
)

// ID addresses a node in the graph.
type ID int

// Graph is an arena of nodes.
type Graph struct {
	vertices   []*vertex
	log        log.Logger
	sampleRate int
}

// vertex is a node stored in the arena.
type vertex struct {
	uid     string
	node    dsp.Node
	inputs  []ID
	view    *view
	measure metric.MeasureFunc
}

// Option provides a way to set functional parameters to graph.
type Option func(g *Graph)

// WithLogger sets logger to Graph. If this option is not provided, silent
// logger is used.
func WithLogger(logger log.Logger) Option {
	return func(g *Graph) {
		g.log = logger
	}
}

// WithMetric enables metrics for all nodes added after this option is
// applied. Sample rate is used to measure signal duration.
func WithMetric(sampleRate int) Option {
	return func(g *Graph) {
		g.sampleRate = sampleRate
	}
}

// New creates a new graph and applies provided options.
func New(options ...Option) *Graph {
	g := &Graph{
		log: log.Silent(),
	}
	for _, option := range options {
		option(g)
	}
	return g
}

// Add stores the node in the graph and returns its ID.
func (g *Graph) Add(n dsp.Node) ID {
	id := ID(len(g.vertices))
	v := &vertex{
		uid:  xid.New().String(),
		node: n,
	}
	v.view = &view{vertex: v}
	if g.sampleRate > 0 {
		v.measure = metric.Meter(n, g.sampleRate)
	}
	g.vertices = append(g.vertices, v)
	g.log.Debug(fmt.Sprintf("graph: added %T as %d (%s)", n, id, v.uid))
	return id
}

// Len returns number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.vertices)
}

// UID returns unique id of the node, it's used to identify the node in
// logs.
func (g *Graph) UID(id ID) (string, error) {
	v, err := g.vertex(id)
	if err != nil {
		return "", err
	}
	return v.uid, nil
}

// Inputs returns IDs of node inputs in the order they are mixed.
func (g *Graph) Inputs(id ID) ([]ID, error) {
	v, err := g.vertex(id)
	if err != nil {
		return nil, err
	}
	inputs := make([]ID, len(v.inputs))
	copy(inputs, v.inputs)
	return inputs, nil
}

// Node returns a view of the node whose Inputs are its arena children. The
// view can be pulled with dsp.Pull directly, without the checks of Pull.
func (g *Graph) Node(id ID) (dsp.Node, error) {
	v, err := g.vertex(id)
	if err != nil {
		return nil, err
	}
	return v.view, nil
}

// Connect appends child to the inputs of parent.
func (g *Graph) Connect(parent, child ID) error {
	p, err := g.vertex(parent)
	if err != nil {
		return fmt.Errorf("parent %d: %w", parent, err)
	}
	c, err := g.vertex(child)
	if err != nil {
		return fmt.Errorf("child %d: %w", child, err)
	}
	if _, ok := p.node.(dsp.Generator); ok {
		return fmt.Errorf("parent %d: %w", parent, ErrGeneratorInputs)
	}
	if g.reachable(child, parent) {
		return fmt.Errorf("%d -> %d: %w", parent, child, ErrCycle)
	}
	p.inputs = append(p.inputs, child)
	p.view.children = append(p.view.children, c.view)
	g.log.Debug(fmt.Sprintf("graph: connected %s -> %s", p.uid, c.uid))
	return nil
}

// Disconnect removes the first occurrence of child from the inputs of
// parent.
func (g *Graph) Disconnect(parent, child ID) error {
	p, err := g.vertex(parent)
	if err != nil {
		return fmt.Errorf("parent %d: %w", parent, err)
	}
	c, err := g.vertex(child)
	if err != nil {
		return fmt.Errorf("child %d: %w", child, err)
	}
	for i, in := range p.inputs {
		if in != child {
			continue
		}
		p.inputs = append(p.inputs[:i], p.inputs[i+1:]...)
		p.view.children = append(p.view.children[:i], p.view.children[i+1:]...)
		g.log.Debug(fmt.Sprintf("graph: disconnected %s -> %s", p.uid, c.uid))
		return nil
	}
	return fmt.Errorf("%d -> %d: %w", parent, child, ErrNotConnected)
}

// Pull evaluates the subtree of root into out. Settings and buffer length
// are validated before any node is pulled.
func (g *Graph) Pull(root ID, out dsp.Buffer, s dsp.Settings) error {
	v, err := g.vertex(root)
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if out.Len() != s.SampleCount() {
		return fmt.Errorf("%w: got %d samples, expected %d", ErrBufferSize, out.Len(), s.SampleCount())
	}
	dsp.Pull(v.view, out, s)
	return nil
}

func (g *Graph) vertex(id ID) (*vertex, error) {
	if id < 0 || int(id) >= len(g.vertices) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return g.vertices[id], nil
}

// reachable returns true if to can be reached from from by following
// input edges.
func (g *Graph) reachable(from, to ID) bool {
	visited := make(map[ID]struct{})
	stack := []ID{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == to {
			return true
		}
		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}
		stack = append(stack, g.vertices[id].inputs...)
	}
	return false
}

// view exposes a vertex as dsp.Node with arena children as inputs.
type view struct {
	*vertex
	children []dsp.Node
}

func (v *view) Volume() dsp.Volume {
	return v.node.Volume()
}

func (v *view) Pan() dsp.Panning {
	return v.node.Pan()
}

func (v *view) Inputs() []dsp.Node {
	return v.children
}

func (v *view) ProcessBuffer(out dsp.Buffer, s dsp.Settings) {
	v.node.ProcessBuffer(out, s)
}

// AudioRequested delegates to generators and mixes arena inputs for any
// other node.
func (v *view) AudioRequested(out dsp.Buffer, s dsp.Settings) {
	if gen, ok := v.node.(dsp.Generator); ok {
		gen.AudioRequested(out, s)
	} else {
		dsp.Mix(v, out, s)
	}
	if v.measure != nil {
		v.measure(s)
	}
}
