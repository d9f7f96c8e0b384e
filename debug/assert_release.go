//go:build !debug

package debug

const Enabled = false

// Assert panics with an [AssertionError] if b is false.
func Assert(b bool, message string) {}

// AssertErrNil panics with an [AssertionError] if err is not nil.
func AssertErrNil(err error) {}
