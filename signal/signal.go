// Package signal converts interleaved buffers between float and int
// representations and provides signal timing helpers.
package signal

import (
	"math"
	"time"

	"github.com/pipelined/dsp"
)

const (
	// BitDepth8 is 8 bit depth.
	BitDepth8 = BitDepth(8)
	// BitDepth16 is 16 bit depth.
	BitDepth16 = BitDepth(16)
	// BitDepth24 is 24 bit depth.
	BitDepth24 = BitDepth(24)
	// BitDepth32 is 32 bit depth.
	BitDepth32 = BitDepth(32)
)

// BitDepth contains values required for int-to-float and backward conversion.
type BitDepth int

// devider is used when int to float conversion is done.
func (bitDepth BitDepth) devider() int {
	switch bitDepth {
	case BitDepth8:
		return math.MaxInt8
	case BitDepth16:
		return math.MaxInt16
	case BitDepth24:
		return 1<<23 - 1
	case BitDepth32:
		return math.MaxInt32
	default:
		return 1
	}
}

// multiplier is used when float to int conversion is done.
func (bitDepth BitDepth) multiplier() int {
	switch bitDepth {
	case BitDepth8:
		return math.MaxInt8 - 1
	case BitDepth16:
		return math.MaxInt16 - 1
	case BitDepth24:
		return 1<<23 - 2
	case BitDepth32:
		return math.MaxInt32 - 1
	default:
		return 1
	}
}

// DurationOf returns time duration of passed frames for this sample rate.
func DurationOf(sampleRate int, frames int64) time.Duration {
	return time.Duration(float64(frames) / float64(sampleRate) * float64(time.Second))
}

// FramesOf returns number of frames that fit into duration for this
// sample rate. Incomplete frames are dropped.
func FramesOf(sampleRate int, d time.Duration) int64 {
	return int64(d.Seconds() * float64(sampleRate))
}

// Ints converts a float buffer into interleaved ints of provided bit depth.
// Samples are clipped to [-1, 1] first, mixed signals may exceed it.
func Ints(b dsp.Buffer, bitDepth BitDepth) []int {
	multiplier := float64(bitDepth.multiplier())
	ints := make([]int, b.Len())
	for i := range ints {
		ints[i] = int(clip(float64(b.At(i))) * multiplier)
	}
	return ints
}

// ReadInts converts interleaved ints of provided bit depth into the
// buffer. It returns the number of converted samples, which is the minimum
// of both lengths.
func ReadInts(dst dsp.Buffer, ints []int, bitDepth BitDepth) int {
	devider := float32(bitDepth.devider())
	n := dst.Len()
	if len(ints) < n {
		n = len(ints)
	}
	for i := 0; i < n; i++ {
		dst.Set(i, float32(ints[i])/devider)
	}
	return n
}

func clip(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
