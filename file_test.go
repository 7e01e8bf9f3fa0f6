package pagedev

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/zeebo/assert"

	"github.com/flashkit/pagedev/internal/pattern"
)

func TestFile(t *testing.T) {
	t.Run("CreateErased", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "flash.img")
		drv, err := CreateFile(path, 64, 4)
		assert.NoError(t, err)
		defer drv.Close()

		assert.Equal(t, drv.PageSize(), 64)
		assert.Equal(t, drv.PageCount(), 4)

		p := make([]byte, 64)
		assert.NoError(t, drv.ReadPage(p, 3))
		for _, b := range p {
			assert.Equal(t, b, byte(eraseFill))
		}
	})

	t.Run("PersistsAcrossOpen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "flash.img")
		drv, err := CreateFile(path, 256, 4)
		assert.NoError(t, err)

		dev := New(drv)
		assert.NoError(t, dev.Init())
		in := pattern.New(11, 0).Bytes(300)
		assert.NoError(t, dev.Program(in, 100))
		assert.NoError(t, drv.Close())

		reopened, err := OpenFile(path, 256)
		assert.NoError(t, err)
		defer reopened.Close()
		assert.Equal(t, reopened.PageCount(), 4)

		dev = New(reopened)
		assert.NoError(t, dev.Init())
		out := make([]byte, 300)
		assert.NoError(t, dev.Read(out, 100))
		assert.That(t, bytes.Equal(in, out))
	})

	t.Run("RejectsRaggedImage", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "flash.img")
		assert.NoError(t, os.WriteFile(path, make([]byte, 100), 0644))

		_, err := OpenFile(path, 64)
		assert.Error(t, err)
	})

	t.Run("PageOutOfRange", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "flash.img")
		drv, err := CreateFile(path, 64, 2)
		assert.NoError(t, err)
		defer drv.Close()

		assert.Error(t, drv.ReadPage(make([]byte, 64), 2))
		assert.Error(t, drv.WritePage(make([]byte, 64), 2))
	})
}
