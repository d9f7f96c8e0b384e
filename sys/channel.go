// Package sys implements the client side of the RISC-V semihosting call
// protocol.
//
// A call loads an operation number into a0 and its argument into a1, then
// executes the semihosting trap sequence
//
//	slli x0, x0, 0x1f
//	ebreak
//	srai x0, x0, 7
//
// An attached debugger recognizes the sequence, services the operation on
// the host and writes the result back into a0. If no debugger is attached
// the ebreak is handled like any other breakpoint exception, which usually
// halts the hart. There is no way to detect this from the target.
//
// The argument is either a pointer to a parameter block laid out per
// operation or, for a few operations, a plain value. Use the Block
// constructors to build correctly laid out arguments and the result helpers
// to interpret the raw return value.
package sys

import "unsafe"

const wordSize = unsafe.Sizeof(uintptr(0))

// Is64 is true on RV64 targets. The word size decides the layout of the
// parameter blocks and the calling convention of SYS_EXIT.
const Is64 = wordSize == 8

// Arg is the value passed in a1. Pointer arguments are kept as pointers so
// the referenced memory stays reachable until the trap completes.
type Arg struct {
	ptr unsafe.Pointer
	val uintptr
}

// Ptr returns an argument pointing at a parameter block.
func Ptr(p unsafe.Pointer) Arg { return Arg{ptr: p} }

// Value returns an argument passed by value.
func Value(v uintptr) Arg { return Arg{val: v} }

// Pointer returns the parameter block address or nil for value arguments.
func (a Arg) Pointer() unsafe.Pointer { return a.ptr }

// Word returns the register value of the argument.
func (a Arg) Word() uintptr {
	if a.ptr != nil {
		return uintptr(a.ptr)
	}
	return a.val
}

// Channel transfers a single semihosting call to the host and returns the
// raw value of a0.
//
// Implementations are blocking and not reentrant on the calling hart. They
// provide no mutual exclusion between harts, e.g. console output of two
// harts may interleave.
type Channel interface {
	Call(op Op, arg Arg) uintptr
}

// ChannelFunc adapts a function to the Channel interface.
type ChannelFunc func(op Op, arg Arg) uintptr

func (f ChannelFunc) Call(op Op, arg Arg) uintptr { return f(op, arg) }

// RelayEID is the SBI extension ID, taken from the firmware specific range,
// a user mode program puts into a7 when it asks the supervisor to perform a
// semihosting call on its behalf.
const RelayEID = 0x0A53_4D48

// Relay services a semihosting request made from user mode with an ecall.
// It is meant to be called by the supervisor's trap handler with the saved
// a7, a0 and a1 registers of the user context. If eid identifies a relay
// request, the call is forwarded through ch, the result is stored in *a0 and
// true is returned. The handler is still responsible for advancing sepc past
// the ecall instruction.
func Relay(ch Channel, eid uintptr, a0 *uintptr, a1 uintptr) bool {
	if eid != RelayEID {
		return false
	}
	*a0 = ch.Call(Op(*a0), Value(a1))
	return true
}
