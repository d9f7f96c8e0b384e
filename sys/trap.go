//go:build riscv64 || tinygo.riscv32

package sys

// Trap executes the semihosting sequence on the calling hart. It must run in
// M-mode or S-mode with ebreak routed to the debugger.
type Trap struct{}

//go:nosplit
func (Trap) Call(op Op, arg Arg) uintptr {
	if arg.ptr != nil {
		return trap(uintptr(op), uintptr(arg.ptr))
	}
	return trap(uintptr(op), arg.val)
}

// Ecall asks the supervisor to perform the call, see [Relay]. Used in U-mode
// where an ebreak would not reach the debugger.
type Ecall struct{}

//go:nosplit
func (Ecall) Call(op Op, arg Arg) uintptr {
	if arg.ptr != nil {
		return ecall(RelayEID, uintptr(op), uintptr(arg.ptr))
	}
	return ecall(RelayEID, uintptr(op), arg.val)
}
