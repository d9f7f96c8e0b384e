package sys

import "errors"

// Invalid is the raw value -1, returned by most operations on failure.
const Invalid = ^uintptr(0)

var (
	// ErrNotSupported is returned if the host declined an optional
	// operation.
	ErrNotSupported = errors.New("semihosting: operation not supported")

	// ErrUnknown is returned if an operation failed but the host didn't
	// provide an error number.
	ErrUnknown = errors.New("semihosting: unknown host error")
)

// Handle interprets the result of SYS_OPEN. ok is false if the host returned
// the invalid handle, in which case [LastError] tells the cause.
func Handle(raw uintptr) (fd int, ok bool) {
	fd = int(raw)
	if raw == Invalid || fd < 0 {
		return -1, false
	}
	return fd, true
}

// Transferred interprets the result of SYS_READ and SYS_WRITE for a request
// of n bytes. The host returns the number of bytes it could not transfer, so
// 0 means all n bytes were transferred. ok is false if raw is not a valid
// byte count.
func Transferred(raw uintptr, n int) (done int, ok bool) {
	return transferred(raw, n, Quirks)
}

// J-Link returns small negative values for successful writes.
const quirkWriteMin = Invalid - 15

func transferred(raw uintptr, n int, quirks bool) (int, bool) {
	if raw <= uintptr(n) {
		return n - int(raw), true
	}
	if quirks && raw >= quirkWriteMin {
		return n, true
	}
	return 0, false
}

// Flag interprets the result of SYS_ISTTY and SYS_ISERROR. ok is false if
// the host returned -1.
func Flag(raw uintptr) (flag, ok bool) {
	if raw == Invalid {
		return false, false
	}
	return raw != 0, true
}

// Status interprets the result of operations returning 0 on success, e.g.
// SYS_CLOSE, SYS_SEEK, SYS_REMOVE and SYS_RENAME.
func Status(raw uintptr) bool {
	return raw == 0
}

// Signed returns raw as a signed machine word.
func Signed(raw uintptr) int {
	return int(raw)
}

// LastError issues SYS_ERRNO on ch and returns the host's error number of
// the last failed call.
func LastError(ch Channel) error {
	errno := ErrnoBlock().Call(ch)
	if errno == 0 || errno == Invalid {
		return ErrUnknown
	}
	return Errno(errno)
}

// Optional interprets the result of operations the host may not implement,
// e.g. SYS_ELAPSED, SYS_TICKFREQ and SYS_HEAPINFO, which return -1 if they
// aren't supported.
func Optional(raw uintptr) error {
	if raw == Invalid {
		return ErrNotSupported
	}
	return nil
}
