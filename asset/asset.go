// Package asset provides in-memory storage for interleaved audio.
package asset

import (
	"sync"

	"github.com/pipelined/dsp"
)

// Asset records audio and plays it back. It receives samples as a
// dsp.InputNode or as a render sink and acts as a dsp.Generator when
// pulled. Playback continues from where the previous pull stopped and
// emits silence once the recorded data is exhausted.
//
// Recording is safe to run concurrently with pulls, but the order of
// recorded and played samples is up to the caller.
type Asset struct {
	dsp.Base

	m        sync.Mutex
	data     dsp.Float32
	channels int
	pos      int
}

// New returns an empty asset.
func New() *Asset {
	return &Asset{}
}

// NewSink returns an empty asset to be used as render sink for audio with
// provided number of channels.
func NewSink(channels int) *Asset {
	return &Asset{channels: channels}
}

// AudioReceived implements dsp.InputNode.
func (a *Asset) AudioReceived(in dsp.Buffer, s dsp.Settings) {
	a.m.Lock()
	defer a.m.Unlock()
	a.channels = s.Channels
	a.append(in)
}

// Write implements render.Sink. Sinks don't get settings, so the channel
// count is left as set by NewSink or the last AudioReceived.
func (a *Asset) Write(b dsp.Buffer) error {
	a.m.Lock()
	defer a.m.Unlock()
	a.append(b)
	return nil
}

// Flush implements render.Sink. Asset has nothing to flush.
func (a *Asset) Flush() error {
	return nil
}

func (a *Asset) append(b dsp.Buffer) {
	for i := 0; i < b.Len(); i++ {
		a.data = append(a.data, b.At(i))
	}
}

// AudioRequested implements dsp.Generator.
func (a *Asset) AudioRequested(out dsp.Buffer, s dsp.Settings) {
	a.m.Lock()
	n := 0
	if a.pos < len(a.data) {
		n = dsp.Copy(out, a.data[a.pos:])
		a.pos += n
	}
	a.m.Unlock()
	for i := n; i < out.Len(); i++ {
		out.Set(i, 0)
	}
	a.ProcessBuffer(out, s)
}

// Data returns a copy of recorded samples.
func (a *Asset) Data() dsp.Float32 {
	a.m.Lock()
	defer a.m.Unlock()
	data := make(dsp.Float32, len(a.data))
	copy(data, a.data)
	return data
}

// Channels returns channel count of recorded audio. It's zero for an
// asset created with New until something is received through
// AudioReceived.
func (a *Asset) Channels() int {
	a.m.Lock()
	defer a.m.Unlock()
	return a.channels
}

// Reset rewinds playback to the beginning.
func (a *Asset) Reset() {
	a.m.Lock()
	defer a.m.Unlock()
	a.pos = 0
}
