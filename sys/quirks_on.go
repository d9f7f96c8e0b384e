//go:build semihosting_quirks

package sys

const Quirks = true
