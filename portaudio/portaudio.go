// Package portaudio connects node trees to audio devices. Player pulls the
// root node from the output stream callback, Recorder delivers captured
// audio to an input node.
package portaudio

import (
	"errors"

	"github.com/gordonklaus/portaudio"

	"github.com/pipelined/dsp"
)

// ErrNotStarted is returned when stream is stopped before start.
var ErrNotStarted = errors.New("stream is not started")

// stream wraps portaudio stream lifecycle.
type stream struct {
	sampleRate int
	settings   dsp.Settings
	stream     *portaudio.Stream
}

func (s *stream) start(numIn, numOut int, callback interface{}) error {
	if err := s.settings.Validate(); err != nil {
		return err
	}
	err := portaudio.Initialize()
	if err != nil {
		return err
	}
	s.stream, err = portaudio.OpenDefaultStream(numIn, numOut, float64(s.sampleRate), s.settings.Frames, callback)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err = s.stream.Start(); err != nil {
		s.stream.Close()
		portaudio.Terminate()
		return err
	}
	return nil
}

// Stop terminates portaudio structures.
func (s *stream) Stop() error {
	if s.stream == nil {
		return ErrNotStarted
	}
	err := s.stream.Stop()
	if err != nil {
		return err
	}
	err = s.stream.Close()
	if err != nil {
		return err
	}
	s.stream = nil
	return portaudio.Terminate()
}

// Player plays a node tree using default output device. The root is
// pulled from the portaudio callback, so it must not be pulled anywhere
// else while the player is running.
type Player struct {
	stream
	root dsp.Node
}

// NewPlayer returns new player for the root node.
func NewPlayer(root dsp.Node, sampleRate int, s dsp.Settings) *Player {
	return &Player{
		stream: stream{
			sampleRate: sampleRate,
			settings:   s,
		},
		root: root,
	}
}

// Start opens default output stream and starts playback.
func (p *Player) Start() error {
	return p.start(0, p.settings.Channels, playback(p.root, p.settings))
}

// playback returns output stream callback.
func playback(root dsp.Node, s dsp.Settings) func([]float32) {
	return func(out []float32) {
		b := dsp.Float32(out)
		dsp.Clear(b)
		dsp.Pull(root, b, s)
	}
}

// Recorder captures audio from default input device and delivers it to
// the input node.
type Recorder struct {
	stream
	node dsp.InputNode
}

// NewRecorder returns new recorder for the input node.
func NewRecorder(node dsp.InputNode, sampleRate int, s dsp.Settings) *Recorder {
	return &Recorder{
		stream: stream{
			sampleRate: sampleRate,
			settings:   s,
		},
		node: node,
	}
}

// Start opens default input stream and starts capture.
func (r *Recorder) Start() error {
	return r.start(r.settings.Channels, 0, capture(r.node, r.settings))
}

// capture returns input stream callback.
func capture(node dsp.InputNode, s dsp.Settings) func([]float32, []float32) {
	return func(in, _ []float32) {
		node.AudioReceived(dsp.Float32(in), s)
	}
}
