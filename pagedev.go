// Package pagedev adapts a page-addressed flash chip to a byte-addressed
// block device. Callers read, program, and erase at arbitrary byte offsets
// and lengths; the adapter decomposes every request into whole-page
// transfers, staging them through a single page buffer and skipping
// physical reads of the page it already holds.
package pagedev

import (
	"github.com/sirupsen/logrus"
	"github.com/zeebo/errs"

	"github.com/flashkit/pagedev/internal/debug"
	"github.com/flashkit/pagedev/internal/mon"
	"github.com/flashkit/pagedev/transport"
)

// Error is the class of errors produced by the adapter itself. Errors from
// the flash driver pass through to callers unwrapped.
var Error = errs.Class("pagedev")

// ErrNotInitialized is returned when an operation runs before Init has
// allocated the staging buffer.
var ErrNotInitialized = Error.New("not initialized")

// eraseFill is the value flash cells settle to after an erase.
const eraseFill = 0xFF

// T adapts a page-addressed flash chip to a byte-addressed block device.
//
// It is not thread safe: the staging buffer and cache marker are exclusive
// mutable state, and the design assumes exactly one logical caller per
// instance. Callers needing concurrent access must serialize externally.
type T struct {
	flash Flash
	bus   transport.T

	pageSize  int64
	totalSize int64

	// buf stages all page-level I/O. It is nil until Init succeeds.
	buf []byte

	// cached names the page whose contents sit in buf, valid permitting.
	// While valid, a transfer touching that page skips the physical read.
	cached uint32
	valid  bool

	log   *logrus.Logger
	stats Stats
}

// Stats counts the physical page transfers issued to the driver, with
// recent per-transfer timings.
type Stats struct {
	PageReads  mon.Op
	PageWrites mon.Op
}

// An Option configures an adapter.
type Option func(*T)

// WithLogger turns on debug logging of every operation. With no logger set,
// logging is a no-op and carries no behavior.
func WithLogger(log *logrus.Logger) Option {
	return func(t *T) { t.log = log }
}

// WithTransport hands the adapter the bus handle to give back on Deinit.
func WithTransport(bus transport.T) Option {
	return func(t *T) { t.bus = bus }
}

// New returns an adapter over flash. Geometry is captured once and never
// re-read. A zero page size or page count is a misconfigured driver and
// panics rather than surfacing as a runtime status. Call Init before
// issuing operations.
func New(flash Flash, opts ...Option) *T {
	pageSize, pageCount := flash.PageSize(), flash.PageCount()
	debug.Assert("positive page size", func() bool { return pageSize > 0 })
	debug.Assert("positive page count", func() bool { return pageCount > 0 })

	t := &T{
		flash:     flash,
		pageSize:  int64(pageSize),
		totalSize: int64(pageSize) * int64(pageCount),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Init allocates the zero-filled staging buffer and resets the cache
// marker. Calling Init on an initialized adapter allocates a fresh buffer
// and drops the old one.
func (t *T) Init() error {
	t.buf = make([]byte, t.pageSize)
	t.valid = false
	t.debugf("init pagesize=%d size=%d", t.pageSize, t.totalSize)
	return nil
}

// Deinit gives the bus transport back. It does not free the staging buffer
// or invalidate the cache: the adapter keeps serving operations until a
// reinit replaces the buffer. This mirrors the lifecycle of the underlying
// driver, which keeps its state across a bus release.
func (t *T) Deinit() error {
	t.debugf("deinit")
	return t.bus.Release()
}

// Program writes p starting at byte address addr.
//
// Every touched page goes through a read-modify-write: the chip only
// accepts whole pages, so a partial overwrite must not destroy the rest of
// the page. A driver error aborts the remaining pages and is returned
// unmodified; pages already written stay written.
func (t *T) Program(p []byte, addr int64) error {
	if t.buf == nil {
		return ErrNotInitialized
	}
	t.debugf("program addr=%d size=%d", addr, len(p))

	for len(p) > 0 {
		page := uint32(addr / t.pageSize)
		offset := addr % t.pageSize
		chunk := t.pageSize - offset
		if chunk > int64(len(p)) {
			chunk = int64(len(p))
		}

		if err := t.fill(page); err != nil {
			return err
		}

		copy(t.buf[offset:offset+chunk], p[:chunk])

		if err := t.writePage(page); err != nil {
			return err
		}

		addr += chunk
		p = p[chunk:]
	}

	return nil
}

// Read copies len(p) bytes starting at byte address addr into p. The full
// page is still materialized in the staging buffer first, with the same
// cache-skip rule as Program. Driver errors abort the remaining pages and
// pass through unmodified.
func (t *T) Read(p []byte, addr int64) error {
	if t.buf == nil {
		return ErrNotInitialized
	}
	t.debugf("read addr=%d size=%d", addr, len(p))

	for len(p) > 0 {
		page := uint32(addr / t.pageSize)
		offset := addr % t.pageSize
		chunk := t.pageSize - offset
		if chunk > int64(len(p)) {
			chunk = int64(len(p))
		}

		if err := t.fill(page); err != nil {
			return err
		}

		copy(p[:chunk], t.buf[offset:offset+chunk])

		addr += chunk
		p = p[chunk:]
	}

	return nil
}

// Erase resets every page overlapping [addr, addr+size] to the erased
// state. The end page is (addr+size)/pagesize, inclusive, rounding the same
// way as every other page computation here: a range ending exactly on a
// page boundary takes the boundary page with it. Tools that format images
// depend on this rounding; do not change it.
//
// A driver error aborts the remaining pages; pages already erased stay
// erased.
func (t *T) Erase(addr, size int64) error {
	if t.buf == nil {
		return ErrNotInitialized
	}
	t.debugf("erase addr=%d size=%d", addr, size)

	start := uint32(addr / t.pageSize)
	end := uint32((addr + size) / t.pageSize)

	for i := range t.buf {
		t.buf[i] = eraseFill
	}
	// The staging buffer no longer holds whatever page was cached.
	t.valid = false

	for page := start; page <= end; page++ {
		if err := t.writePage(page); err != nil {
			return err
		}
	}

	return nil
}

// ReadSize returns the minimum read granularity: one full page.
func (t *T) ReadSize() int64 { return t.pageSize }

// ProgramSize returns the minimum program granularity: one full page.
func (t *T) ProgramSize() int64 { return t.pageSize }

// EraseSize returns the minimum erase granularity: one full page.
func (t *T) EraseSize() int64 { return t.pageSize }

// Size returns the total addressable size in bytes.
func (t *T) Size() int64 { return t.totalSize }

// Stats returns the physical transfer counters for this adapter.
func (t *T) Stats() *Stats { return &t.stats }

// fill stages the given page in the buffer, skipping the physical read
// when the page is already staged. The marker tracks the buffer: it is set
// as soon as the read lands and cleared when a read fails mid-transfer.
func (t *T) fill(page uint32) error {
	if t.valid && t.cached == page {
		return nil
	}

	timer := t.stats.PageReads.Start()
	err := t.flash.ReadPage(t.buf, page)
	timer.Stop()
	if err != nil {
		t.valid = false
		return err
	}

	t.cached, t.valid = page, true
	return nil
}

// writePage pushes the staging buffer to the given physical page. On
// failure the buffer holds modifications the chip never accepted, so the
// cache marker is cleared.
func (t *T) writePage(page uint32) error {
	timer := t.stats.PageWrites.Start()
	err := t.flash.WritePage(t.buf, page)
	timer.Stop()
	if err != nil {
		t.valid = false
	}
	return err
}

func (t *T) debugf(format string, args ...interface{}) {
	if t.log != nil {
		t.log.Debugf(format, args...)
	}
}
