package dsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pipelined/dsp"
)

func TestBuffers(t *testing.T) {
	tests := []struct {
		description string
		buffer      dsp.Buffer
	}{
		{
			description: "float32",
			buffer:      make(dsp.Float32, 4),
		},
		{
			description: "float64",
			buffer:      make(dsp.Float64, 4),
		},
	}
	for _, test := range tests {
		b := test.buffer
		assert.Equal(t, 4, b.Len(), test.description)
		b.Set(1, 0.5)
		assert.Equal(t, float32(0.5), b.At(1), test.description)

		z := b.Zeroed(6)
		assert.Equal(t, 6, z.Len(), test.description)
		assert.IsType(t, b, z, test.description)
		for i := 0; i < z.Len(); i++ {
			assert.Equal(t, float32(0), z.At(i), test.description)
		}

		n := dsp.Copy(z, b)
		assert.Equal(t, 4, n, test.description)
		assert.Equal(t, float32(0.5), z.At(1), test.description)

		dsp.Clear(b)
		assert.Equal(t, float32(0), b.At(1), test.description)
	}
}
