package dsp

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedChannels is returned when settings carry a channel
	// count the pan law is not defined for.
	ErrUnsupportedChannels = errors.New("only mono and stereo are supported")
	// ErrInvalidFrames is returned when settings carry a non-positive
	// frame count.
	ErrInvalidFrames = errors.New("frames must be positive")
)

// MaxChannels is the highest channel count GainPerChannel covers.
const MaxChannels = 2

// Settings describe one processing cycle. They are supplied by the stream
// driver and don't change during a pull.
type Settings struct {
	Frames   int
	Channels int
}

// SampleCount returns the length of an interleaved buffer for these
// settings.
func (s Settings) SampleCount() int {
	return s.Frames * s.Channels
}

// Validate checks that settings can be used for a pull.
func (s Settings) Validate() error {
	if s.Frames <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFrames, s.Frames)
	}
	if s.Channels < 1 || s.Channels > MaxChannels {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedChannels, s.Channels)
	}
	return nil
}
