package transport

import (
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/errs"
)

func TestRelease(t *testing.T) {
	t.Run("Once", func(t *testing.T) {
		calls := 0
		tr := New(func() error {
			calls++
			return nil
		})
		assert.That(t, !tr.Zero())

		assert.NoError(t, tr.Release())
		assert.That(t, tr.Zero())
		assert.Equal(t, calls, 1)

		assert.NoError(t, tr.Release())
		assert.Equal(t, calls, 1)
	})

	t.Run("Error", func(t *testing.T) {
		bad := errs.New("bus busy")
		tr := New(func() error { return bad })

		assert.That(t, tr.Release() == bad)
		// Cleared even though the callback errored.
		assert.That(t, tr.Zero())
		assert.NoError(t, tr.Release())
	})

	t.Run("Zero", func(t *testing.T) {
		var tr T
		assert.That(t, tr.Zero())
		assert.NoError(t, tr.Release())
	})
}
