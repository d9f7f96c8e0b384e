//go:build tinygo.riscv32 || tinygo.riscv64

package sys

// The sequences live in trap_tinygo.S. Being real functions, the C calling
// convention puts the arguments in a0, a1 and a2 and the compiler treats
// all argument registers as clobbered.

//go:linkname trapPlain semihosting_trap
func trapPlain(op, arg uintptr) uintptr

//go:linkname trapQuirks semihosting_trap_quirks
func trapQuirks(op, arg uintptr) uintptr

//go:linkname ecall semihosting_ecall
func ecall(eid, op, arg uintptr) uintptr

//go:nosplit
func trap(op, arg uintptr) uintptr {
	if Quirks {
		return trapQuirks(op, arg)
	}
	return trapPlain(op, arg)
}
