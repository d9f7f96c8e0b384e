//go:build !semihosting_quirks

package sys

// Quirks is set by the semihosting_quirks build tag. It selects the nop
// padded trap sequence and tolerates the negative write results returned by
// J-Link probes.
const Quirks = false
