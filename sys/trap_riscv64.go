//go:build riscv64 && !tinygo

package sys

// trap loads op into a0 and arg into a1, executes the semihosting sequence
// and returns a0.
func trap(op, arg uintptr) uintptr

// ecall is like trap but executes an ecall with eid in a7.
func ecall(eid, op, arg uintptr) uintptr
