package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pipelined/dsp"
	"github.com/pipelined/dsp/mock"
	"github.com/pipelined/dsp/pool"
)

var raceEnabled bool

func TestGet(t *testing.T) {
	p1 := pool.Get(512)
	p2 := pool.Get(512)
	assert.True(t, p1 == p2)
	assert.Equal(t, 512, p1.Length())

	pool.Wipe()
	p3 := pool.Get(512)
	assert.False(t, p1 == p3)
}

func TestBuffer(t *testing.T) {
	p := pool.New(4)
	b := p.Buffer()
	assert.Equal(t, 4, b.Len())
	b.Set(2, 1)
	assert.Equal(t, float32(1), b.At(2))
	b.Release()
	b.Release()
	assert.Equal(t, 0, b.Len())

	// reused buffers are zeroed.
	b = p.Buffer()
	for i := 0; i < b.Len(); i++ {
		assert.Equal(t, float32(0), b.At(i))
	}

	z := b.Zeroed(8)
	assert.Equal(t, 8, z.Len())
	assert.IsType(t, &pool.Buffer{}, z)
}

func TestPulledIntoPooledBuffer(t *testing.T) {
	s := dsp.Settings{Frames: 8, Channels: 2}
	root := mock.NewNode(mock.NewSource(0.25), mock.NewSource(0.5))
	out := pool.Get(s.SampleCount()).Buffer()
	defer out.Release()

	dsp.Pull(root, out, s)
	for _, v := range out.Data() {
		assert.Equal(t, float32(0.75), v)
	}
}

func TestSteadyStatePullDoesNotAllocate(t *testing.T) {
	if raceEnabled {
		t.Skip("allocations are not stable with race detector")
	}
	s := dsp.Settings{Frames: 64, Channels: 2}
	root := mock.NewNode(mock.NewSource(0.25), mock.NewSource(0.25), mock.NewSource(0.5))
	out := pool.Get(s.SampleCount()).Buffer()
	defer out.Release()

	dsp.Pull(root, out, s)
	allocs := testing.AllocsPerRun(100, func() {
		dsp.Clear(out)
		dsp.Pull(root, out, s)
	})
	assert.Equal(t, 0.0, allocs)
	for _, v := range out.Data() {
		assert.Equal(t, float32(1), v)
	}
}

func TestReleasedBufferIsReused(t *testing.T) {
	if raceEnabled {
		t.Skip("allocations are not stable with race detector")
	}
	p := pool.New(4)
	b := p.Buffer()
	b.Set(0, 1)
	b.Release()
	allocs := testing.AllocsPerRun(10, func() {
		p.Buffer().Release()
	})
	assert.Equal(t, 0.0, allocs)
}
