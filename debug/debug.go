// Package debug provides assertions that can be enabled with the debug build
// tag or will otherwise compile to no-ops.
//
// The semihosting packages use them to check internal invariants, e.g. that
// nobody reads past the end of a parameter block. They are not a substitute
// for error returns: arguments coming from callers are always validated.
package debug

// AssertionError is the panic value of a failed assertion.
type AssertionError string

func (e AssertionError) Error() string { return "assertion failed: " + string(e) }
