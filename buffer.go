package dsp

// Buffer is an interleaved sequence of samples. Sample j of frame i is
// stored at index i*channels+j.
type Buffer interface {
	// Len returns the number of samples in the buffer.
	Len() int
	// At returns the sample at index i.
	At(i int) float32
	// Set assigns v to the sample at index i.
	Set(i int, v float32)
	// Zeroed returns a new zero-filled buffer of the same kind with n samples.
	Zeroed(n int) Buffer
}

// Releaser is implemented by buffers that return their storage to a pool.
// Scratch buffers are released as soon as they are mixed.
type Releaser interface {
	Release()
}

// Float32 is an interleaved float32 buffer.
type Float32 []float32

// Float64 is an interleaved float64 buffer. Samples are accessed through
// the float32 Buffer methods, so values written by a pull, including those
// accumulated onto existing output, have float32 precision.
type Float64 []float64

// Len implements Buffer.
func (b Float32) Len() int {
	return len(b)
}

// At implements Buffer.
func (b Float32) At(i int) float32 {
	return b[i]
}

// Set implements Buffer.
func (b Float32) Set(i int, v float32) {
	b[i] = v
}

// Zeroed implements Buffer.
func (b Float32) Zeroed(n int) Buffer {
	return make(Float32, n)
}

// Len implements Buffer.
func (b Float64) Len() int {
	return len(b)
}

// At implements Buffer.
func (b Float64) At(i int) float32 {
	return float32(b[i])
}

// Set implements Buffer.
func (b Float64) Set(i int, v float32) {
	b[i] = float64(v)
}

// Zeroed implements Buffer.
func (b Float64) Zeroed(n int) Buffer {
	return make(Float64, n)
}

// Copy copies samples from src into dst and returns the number of copied
// samples, which is the minimum of both lengths.
func Copy(dst, src Buffer) int {
	n := dst.Len()
	if src.Len() < n {
		n = src.Len()
	}
	for i := 0; i < n; i++ {
		dst.Set(i, src.At(i))
	}
	return n
}

// Clear sets every sample of b to zero.
func Clear(b Buffer) {
	for i := 0; i < b.Len(); i++ {
		b.Set(i, 0)
	}
}
