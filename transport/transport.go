// Package transport tracks ownership of the bus resource a flash driver
// sits on. The adapter holds a handle and gives the resource back on
// deinit; everything else about the bus (chip select, clock, mode) is
// configured before the driver is handed over.
package transport

// T is a handle on a configured bus transport. The zero value is a handle
// on nothing and releases successfully.
type T struct {
	release func() error
}

// New constructs a handle whose release callback runs exactly once, on the
// first call to Release.
func New(release func() error) T {
	return T{release: release}
}

// Zero returns whether the handle holds no resource, either because it was
// never given one or because it has been released.
func (t T) Zero() bool { return t.release == nil }

// Release gives the resource back and clears the handle so further calls
// are no-ops. The handle is cleared even if the callback errors.
func (t *T) Release() (err error) {
	if t.release != nil {
		err = t.release()
	}
	*t = T{}
	return err
}
