package pagedev

import (
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/errs"
)

// countingFlash wraps a driver and counts physical page transfers.
type countingFlash struct {
	Flash
	reads  int
	writes int
}

func (c *countingFlash) ReadPage(p []byte, page uint32) error {
	c.reads++
	return c.Flash.ReadPage(p, page)
}

func (c *countingFlash) WritePage(p []byte, page uint32) error {
	c.writes++
	return c.Flash.WritePage(p, page)
}

var errFlash = errs.New("simulated flash failure")

// faultyFlash fails transfers once the corresponding budget runs out.
type faultyFlash struct {
	Flash
	readsLeft  int
	writesLeft int
}

func (f *faultyFlash) ReadPage(p []byte, page uint32) error {
	if f.readsLeft <= 0 {
		return errFlash
	}
	f.readsLeft--
	return f.Flash.ReadPage(p, page)
}

func (f *faultyFlash) WritePage(p []byte, page uint32) error {
	if f.writesLeft <= 0 {
		return errFlash
	}
	f.writesLeft--
	return f.Flash.WritePage(p, page)
}

func newDevice(t testing.TB, pageSize, pageCount int, opts ...Option) (*T, *countingFlash) {
	t.Helper()

	cf := &countingFlash{Flash: NewMem(pageSize, pageCount)}
	dev := New(cf, opts...)
	assert.NoError(t, dev.Init())
	return dev, cf
}
