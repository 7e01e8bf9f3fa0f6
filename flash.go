package pagedev

// Flash is the driver for a page-addressed flash chip. The chip only
// transfers whole pages; sub-page addressing is the adapter's job. The bus
// transport underneath the driver is assumed to be configured before any of
// these are called.
type Flash interface {
	// PageSize returns the number of bytes in a physical page. It must be
	// positive and constant for the lifetime of the driver.
	PageSize() int

	// PageCount returns the number of physical pages. It must be positive
	// and constant for the lifetime of the driver.
	PageCount() int

	// ReadPage fills p with the contents of the given page. The slice is
	// always exactly PageSize bytes. Errors are surfaced to the adapter's
	// caller unmodified.
	ReadPage(p []byte, page uint32) error

	// WritePage stores p as the new contents of the given page. The slice
	// is always exactly PageSize bytes. Errors are surfaced to the
	// adapter's caller unmodified.
	WritePage(p []byte, page uint32) error
}
