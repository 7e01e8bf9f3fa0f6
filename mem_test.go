package pagedev

import (
	"testing"

	"github.com/zeebo/assert"
)

func TestMem(t *testing.T) {
	t.Run("ErasedState", func(t *testing.T) {
		m := NewMem(64, 2)
		p := make([]byte, 64)
		assert.NoError(t, m.ReadPage(p, 0))
		for _, b := range p {
			assert.Equal(t, b, byte(eraseFill))
		}
	})

	t.Run("WriteReadPage", func(t *testing.T) {
		m := NewMem(64, 2)
		in := make([]byte, 64)
		for i := range in {
			in[i] = byte(i)
		}
		assert.NoError(t, m.WritePage(in, 1))

		out := make([]byte, 64)
		assert.NoError(t, m.ReadPage(out, 1))
		assert.DeepEqual(t, in, out)

		// Page 0 untouched.
		assert.NoError(t, m.ReadPage(out, 0))
		assert.Equal(t, out[0], byte(eraseFill))
	})

	t.Run("PageOutOfRange", func(t *testing.T) {
		m := NewMem(64, 2)
		assert.Error(t, m.ReadPage(make([]byte, 64), 2))
		assert.Error(t, m.WritePage(make([]byte, 64), 2))
	})

	t.Run("BadBufferSize", func(t *testing.T) {
		m := NewMem(64, 2)
		assert.Error(t, m.ReadPage(make([]byte, 63), 0))
		assert.Error(t, m.WritePage(make([]byte, 65), 0))
	})
}
