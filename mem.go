package pagedev

import "github.com/zeebo/errs"

// Mem is a Flash driver backed by host memory. Fresh devices come up fully
// erased. It is useful for tests and as a scratch device; it is not thread
// safe.
type Mem struct {
	pageSize int
	data     []byte
}

// NewMem returns an erased in-memory device with the given geometry.
func NewMem(pageSize, pageCount int) *Mem {
	data := make([]byte, pageSize*pageCount)
	for i := range data {
		data[i] = eraseFill
	}
	return &Mem{
		pageSize: pageSize,
		data:     data,
	}
}

func (m *Mem) PageSize() int  { return m.pageSize }
func (m *Mem) PageCount() int { return len(m.data) / m.pageSize }

func (m *Mem) ReadPage(p []byte, page uint32) error {
	off, err := m.pageOffset(p, page)
	if err != nil {
		return err
	}
	copy(p, m.data[off:off+m.pageSize])
	return nil
}

func (m *Mem) WritePage(p []byte, page uint32) error {
	off, err := m.pageOffset(p, page)
	if err != nil {
		return err
	}
	copy(m.data[off:off+m.pageSize], p)
	return nil
}

func (m *Mem) pageOffset(p []byte, page uint32) (int, error) {
	if len(p) != m.pageSize {
		return 0, errs.New("bad page buffer size: %d != %d", len(p), m.pageSize)
	}
	if int64(page) >= int64(m.PageCount()) {
		return 0, errs.New("page %d out of range", page)
	}
	return int(page) * m.pageSize, nil
}
