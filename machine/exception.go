package machine

import "github.com/clktmr/semihosting/sys"

// Names of the synchronous exception causes in mcause and scause.
var excNames = [16]string{
	0:  "Instruction Address Misaligned",
	1:  "Instruction Access Fault",
	2:  "Illegal Instruction",
	3:  "Breakpoint",
	4:  "Load Address Misaligned",
	5:  "Load Access Fault",
	6:  "Store/AMO Address Misaligned",
	7:  "Store/AMO Access Fault",
	8:  "Environment Call (U-mode)",
	9:  "Environment Call (S-mode)",
	11: "Environment Call (M-mode)",
	12: "Instruction Page Fault",
	13: "Load Page Fault",
	15: "Store/AMO Page Fault",
}

const interruptBit = 1 << (8*wordSize - 1)

//go:nosplit
func excName(cause uintptr) string {
	if cause&interruptBit != 0 {
		return "Interrupt"
	}
	if cause < uintptr(len(excNames)) && excNames[cause] != "" {
		return excNames[cause]
	}
	return "Reserved"
}

// ExceptionReason returns the stop reason reported to the host for an
// unhandled trap with the given cause.
//
//go:nosplit
func ExceptionReason(cause uintptr) sys.Reason {
	if cause&interruptBit != 0 {
		return sys.ReasonIRQ
	}
	switch cause {
	case 0, 4, 6:
		return sys.ReasonAddressException
	case 1, 12:
		return sys.ReasonPrefetchAbort
	case 2:
		return sys.ReasonUndefinedInstr
	case 3:
		return sys.ReasonBreakPoint
	case 5, 7, 13, 15:
		return sys.ReasonDataAbort
	case 8, 9, 11:
		return sys.ReasonSoftwareInterrupt
	}
	return sys.ReasonRunTimeErrorUnknown
}

//go:nosplit
func itoa(buf []byte, num uintptr) []byte {
	digits := 2 * wordSize
	for i := range digits {
		char := byte(num>>(4*(digits-1-i))) & 0xf
		if char > 9 {
			char += 'a' - 10
		} else {
			char += '0'
		}
		buf[i] = char
	}
	return buf[:digits]
}
