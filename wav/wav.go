// Package wav renders node trees into wav files and plays wav files as
// generator nodes.
package wav

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/pipelined/dsp"
	"github.com/pipelined/dsp/signal"
)

// pcm is the wav audio format of integer samples.
const pcm = 1

var (
	// ErrUnsupportedBitDepth is returned when unsupported bit depth is used.
	ErrUnsupportedBitDepth = errors.New("only 16, 24 and 32 bit depth is supported")
	// ErrInvalidFile is returned when wav file cannot be decoded.
	ErrInvalidFile = errors.New("wav is not valid")
)

func supported(bitDepth signal.BitDepth) bool {
	switch bitDepth {
	case signal.BitDepth16, signal.BitDepth24, signal.BitDepth32:
		return true
	}
	return false
}

type (
	// Sink encodes rendered buffers into wav. It implements render.Sink.
	Sink struct {
		bitDepth signal.BitDepth
		encoder  *wav.Encoder
		buffer   *audio.IntBuffer
		closer   io.Closer
	}

	// Source decodes wav and emits it when pulled. It implements
	// dsp.Generator. Once decoding is done, it emits silence.
	Source struct {
		dsp.Base
		decoder  *wav.Decoder
		bitDepth signal.BitDepth
		channels int
		buffer   *audio.IntBuffer
		done     bool
		err      error
		closer   io.Closer
	}
)

// NewSink creates new wav sink that writes to ws.
func NewSink(ws io.WriteSeeker, sampleRate, channels int, bitDepth signal.BitDepth) (*Sink, error) {
	if !supported(bitDepth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	return &Sink{
		bitDepth: bitDepth,
		encoder:  wav.NewEncoder(ws, sampleRate, int(bitDepth), channels, pcm),
		buffer: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: channels,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: int(bitDepth),
		},
	}, nil
}

// Create creates the file and a sink writing to it. The file is closed on
// flush.
func Create(path string, sampleRate, channels int, bitDepth signal.BitDepth) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s, err := NewSink(f, sampleRate, channels, bitDepth)
	if err != nil {
		f.Close()
		return nil, err
	}
	s.closer = f
	return s, nil
}

// Write encodes the buffer.
func (s *Sink) Write(b dsp.Buffer) error {
	s.buffer.Data = signal.Ints(b, s.bitDepth)
	return s.encoder.Write(s.buffer)
}

// Flush finalizes wav headers.
func (s *Sink) Flush() error {
	err := s.encoder.Close()
	if err != nil {
		return err
	}
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// NewSource creates new wav source that reads from rs.
func NewSource(rs io.ReadSeeker) (*Source, error) {
	decoder := wav.NewDecoder(rs)
	if !decoder.IsValidFile() {
		return nil, ErrInvalidFile
	}
	bitDepth := signal.BitDepth(decoder.BitDepth)
	if !supported(bitDepth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	return &Source{
		decoder:  decoder,
		bitDepth: bitDepth,
		channels: int(decoder.NumChans),
		buffer: &audio.IntBuffer{
			Format:         decoder.Format(),
			SourceBitDepth: int(bitDepth),
		},
	}, nil
}

// Open opens the file and a source reading from it. The file is closed
// by Close.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s, err := NewSource(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	s.closer = f
	return s, nil
}

// SampleRate returns sample rate of decoded wav.
func (s *Source) SampleRate() int {
	return int(s.decoder.SampleRate)
}

// Channels returns channel count of decoded wav.
func (s *Source) Channels() int {
	return s.channels
}

// Err returns the first decoding error.
func (s *Source) Err() error {
	return s.err
}

// Done returns true when all samples were emitted.
func (s *Source) Done() bool {
	return s.done
}

// Close closes the underlying file if source was opened with Open.
func (s *Source) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// AudioRequested implements dsp.Generator. Decoded channels are mapped to
// requested: a mono file is copied to both channels, a stereo file pulled
// as mono keeps the left channel.
func (s *Source) AudioRequested(out dsp.Buffer, st dsp.Settings) {
	frames := 0
	if !s.done {
		frames = s.read(st.Frames)
	}
	floats := make(dsp.Float32, frames*s.channels)
	signal.ReadInts(floats, s.buffer.Data, s.bitDepth)
	for i := 0; i < st.Frames; i++ {
		for j := 0; j < st.Channels; j++ {
			var v float32
			if i < frames {
				v = floats[i*s.channels+min(j, s.channels-1)]
			}
			out.Set(i*st.Channels+j, v)
		}
	}
	s.ProcessBuffer(out, st)
}

// read decodes up to frames and returns number of decoded frames.
func (s *Source) read(frames int) int {
	if cap(s.buffer.Data) < frames*s.channels {
		s.buffer.Data = make([]int, frames*s.channels)
	}
	s.buffer.Data = s.buffer.Data[:frames*s.channels]
	n, err := s.decoder.PCMBuffer(s.buffer)
	if err != nil {
		s.err = err
		s.done = true
		return 0
	}
	if n == 0 {
		s.done = true
		return 0
	}
	s.buffer.Data = s.buffer.Data[:n]
	return n / s.channels
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
