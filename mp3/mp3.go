// Package mp3 renders node trees into mp3 files and plays mp3 files as
// generator nodes.
package mp3

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"
	"github.com/viert/lame"

	"github.com/pipelined/dsp"
	"github.com/pipelined/dsp/signal"
)

// decodedChannels is channel count of decoded stream, decoder always
// provides stereo.
const decodedChannels = 2

// Sink encodes rendered buffers into mp3. It implements render.Sink.
type Sink struct {
	wr     *lame.LameWriter
	buf    bytes.Buffer
	closer io.Closer
}

// NewSink creates new Sink that writes to w. Quality is lame's algorithm
// quality, 0 is the best and slowest.
func NewSink(w io.Writer, sampleRate, channels, bitRate, quality int) *Sink {
	s := Sink{
		wr: lame.NewWriter(w),
	}
	s.wr.Encoder.SetBitrate(bitRate)
	s.wr.Encoder.SetQuality(quality)
	s.wr.Encoder.SetNumChannels(channels)
	s.wr.Encoder.SetInSamplerate(sampleRate)
	if channels == 2 {
		s.wr.Encoder.SetMode(lame.JOINT_STEREO)
	}
	s.wr.Encoder.SetVBR(lame.VBR_RH)
	s.wr.Encoder.InitParams()
	return &s
}

// Create creates the file and a sink writing to it. The file is closed on
// flush.
func Create(path string, sampleRate, channels, bitRate, quality int) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s := NewSink(f, sampleRate, channels, bitRate, quality)
	s.closer = f
	return s, nil
}

// Write encodes the buffer as 16 bit samples.
func (s *Sink) Write(b dsp.Buffer) error {
	s.buf.Reset()
	ints := signal.Ints(b, signal.BitDepth16)
	for i := range ints {
		if err := binary.Write(&s.buf, binary.LittleEndian, int16(ints[i])); err != nil {
			return err
		}
	}
	if _, err := s.wr.Write(s.buf.Bytes()); err != nil {
		return err
	}
	return nil
}

// Flush cleans up buffers.
func (s *Sink) Flush() error {
	err := s.wr.Close()
	if err != nil {
		return err
	}
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// Source decodes mp3 and emits it when pulled. It implements
// dsp.Generator. Once decoding is done, it emits silence.
type Source struct {
	dsp.Base
	d      *mp3.Decoder
	ints   []int
	done   bool
	err    error
	closer io.Closer
}

// NewSource creates new mp3 Source that reads from r.
func NewSource(r io.Reader) (*Source, error) {
	d, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, err
	}
	return &Source{d: d}, nil
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

// SampleRate returns sample rate of decoded file.
func (s *Source) SampleRate() int {
	return s.d.SampleRate()
}

// Channels returns number of decoded channels.
func (s *Source) Channels() int {
	return decodedChannels
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

// AudioRequested implements dsp.Generator. Stereo is kept for stereo
// settings, mono settings get the left channel.
func (s *Source) AudioRequested(out dsp.Buffer, st dsp.Settings) {
	frames := 0
	if !s.done {
		frames = s.read(st.Frames)
	}
	floats := make(dsp.Float32, frames*decodedChannels)
	signal.ReadInts(floats, s.ints, signal.BitDepth16)
	for i := 0; i < st.Frames; i++ {
		for j := 0; j < st.Channels; j++ {
			var v float32
			if i < frames {
				v = floats[i*decodedChannels+j]
			}
			out.Set(i*st.Channels+j, v)
		}
	}
	s.ProcessBuffer(out, st)
}

// read decodes up to frames and returns number of decoded frames.
func (s *Source) read(frames int) int {
	s.ints = s.ints[:0]
	var val int16
	for len(s.ints) < frames*decodedChannels {
		if err := binary.Read(s.d, binary.LittleEndian, &val); err != nil {
			if err != io.EOF && err != io.ErrUnexpectedEOF {
				s.err = err
			}
			s.done = true
			break
		}
		s.ints = append(s.ints, int(val))
	}
	return len(s.ints) / decodedChannels
}
