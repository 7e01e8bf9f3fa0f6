// Package debug provides assertions for programming-contract violations.
package debug

// Assert panics if fn returns false. It guards preconditions that indicate
// a misuse of the API rather than a runtime failure, so there is no error
// to return.
func Assert(info string, fn func() bool) {
	if !fn() {
		panic("assertion failed: " + info)
	}
}
