/*
Package pool provides pooled buffers and a cache of pools.

The main use case for this package is to reuse scratch buffers across
pulls: a pooled buffer returns itself to its pool on Release, and its
Zeroed method draws from the pool of the requested length. Buffers are
pooled together with their storage and the pull algorithm releases every
scratch buffer as soon as it's mixed, so a tree pulled into a pooled
output doesn't allocate once the pools are warm.
*/
package pool

import (
	"sync"

	"github.com/pipelined/dsp"
)

var m = struct {
	sync.Mutex
	pools map[int]*Pool
}{
	pools: map[int]*Pool{},
}

// Get returns pool for provided buffer length. Pools are cached
// internally, so multiple calls for same length will return the same pool
// instance.
func Get(length int) *Pool {
	m.Lock()
	defer m.Unlock()
	if p, ok := m.pools[length]; ok {
		return p
	}

	p := New(length)
	m.pools[length] = p
	return p
}

// Wipe cleans up internal cache of pools.
func Wipe() {
	m.Lock()
	defer m.Unlock()
	m.pools = map[int]*Pool{}
}

// Pool holds float32 buffers of the same length.
type Pool struct {
	length int
	pool   sync.Pool
}

// New returns a new pool of buffers with provided length.
func New(length int) *Pool {
	p := &Pool{length: length}
	p.pool.New = func() interface{} {
		return &Buffer{
			data: make([]float32, length),
			pool: p,
		}
	}
	return p
}

// Length returns the length of pooled buffers.
func (p *Pool) Length() int {
	return p.length
}

// Buffer returns a zeroed buffer from the pool.
func (p *Pool) Buffer() *Buffer {
	b := p.pool.Get().(*Buffer)
	b.data = b.data[:p.length]
	for i := range b.data {
		b.data[i] = 0
	}
	return b
}

// Buffer is a pooled interleaved float32 buffer. It must not be used after
// Release.
type Buffer struct {
	data []float32
	pool *Pool
}

// Len implements dsp.Buffer.
func (b *Buffer) Len() int {
	return len(b.data)
}

// At implements dsp.Buffer.
func (b *Buffer) At(i int) float32 {
	return b.data[i]
}

// Set implements dsp.Buffer.
func (b *Buffer) Set(i int, v float32) {
	b.data[i] = v
}

// Zeroed implements dsp.Buffer. The buffer is drawn from the cached pool
// of length n.
func (b *Buffer) Zeroed(n int) dsp.Buffer {
	return Get(n).Buffer()
}

// Data returns the underlying samples.
func (b *Buffer) Data() dsp.Float32 {
	return b.data
}

// Release implements dsp.Releaser. The buffer is emptied and put back to
// its pool. Repeated calls are no-op until the buffer is handed out again.
func (b *Buffer) Release() {
	if len(b.data) == 0 {
		return
	}
	b.data = b.data[:0]
	b.pool.pool.Put(b)
}
