// Package machine is imported by the runtime on noos targets. It routes the
// runtime's output and unhandled exceptions to the debug host.
//
// Everything here may run before the heap is usable or while the runtime is
// crashing, so nothing allocates or grows the stack.
package machine

import "unsafe"

const wordSize = unsafe.Sizeof(uintptr(0))

// chunkSize is the size of the stack buffer used to NUL terminate output.
const chunkSize = 64

type chunk [chunkSize]byte

// fill copies the next part of p into c and NUL terminates it. NUL bytes in
// p are dropped, they would end the host's output early. It returns the
// rest of p and false if c is empty.
//
//go:nosplit
func (c *chunk) fill(p []byte) (rest []byte, ok bool) {
	n := 0
	for len(p) > 0 && n < len(c)-1 {
		if p[0] != 0 {
			c[n] = p[0]
			n++
		}
		p = p[1:]
	}
	c[n] = 0
	return p, n > 0
}

// exitBlock is the SYS_EXIT parameter block on RV64. It lives on the
// caller's stack.
type exitBlock struct {
	reason  uintptr
	subcode uintptr
}

func (b *exitBlock) ptr() unsafe.Pointer { return unsafe.Pointer(b) }
