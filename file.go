package pagedev

import (
	"os"

	"github.com/zeebo/errs"
)

// File is a Flash driver backed by an image file on the host filesystem,
// one page per ReadAt/WriteAt.
type File struct {
	pageSize  int
	pageCount int
	f         *os.File
}

// CreateFile writes a fully erased image of the given geometry to path,
// truncating anything already there, and returns a driver over it.
func CreateFile(path string, pageSize, pageCount int) (*File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errs.Wrap(err)
	}

	blank := make([]byte, pageSize)
	for i := range blank {
		blank[i] = eraseFill
	}
	for i := 0; i < pageCount; i++ {
		if _, err := f.Write(blank); err != nil {
			f.Close()
			return nil, errs.Wrap(err)
		}
	}

	return &File{
		pageSize:  pageSize,
		pageCount: pageCount,
		f:         f,
	}, nil
}

// OpenFile opens an existing image. The file size must be a whole number
// of pages.
func OpenFile(path string, pageSize int) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, errs.Wrap(err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errs.Wrap(err)
	}
	if fi.Size() == 0 || fi.Size()%int64(pageSize) != 0 {
		f.Close()
		return nil, errs.New("image size %d is not a whole number of %d byte pages", fi.Size(), pageSize)
	}

	return &File{
		pageSize:  pageSize,
		pageCount: int(fi.Size() / int64(pageSize)),
		f:         f,
	}, nil
}

func (d *File) PageSize() int  { return d.pageSize }
func (d *File) PageCount() int { return d.pageCount }

func (d *File) ReadPage(p []byte, page uint32) error {
	if err := d.check(p, page); err != nil {
		return err
	}
	_, err := d.f.ReadAt(p, int64(page)*int64(d.pageSize))
	return err
}

func (d *File) WritePage(p []byte, page uint32) error {
	if err := d.check(p, page); err != nil {
		return err
	}
	_, err := d.f.WriteAt(p, int64(page)*int64(d.pageSize))
	return err
}

// Close closes the underlying image file.
func (d *File) Close() error { return d.f.Close() }

func (d *File) check(p []byte, page uint32) error {
	if len(p) != d.pageSize {
		return errs.New("bad page buffer size: %d != %d", len(p), d.pageSize)
	}
	if int64(page) >= int64(d.pageCount) {
		return errs.New("page %d out of range", page)
	}
	return nil
}
