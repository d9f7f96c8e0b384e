//go:build noos

package machine

import "github.com/clktmr/semihosting/sys"

// Exception prints the trap state to the host console and reports the
// matching stop reason to the host, which usually ends the debug session.
//
//go:nosplit
func Exception(cause, epc, tval, ra uintptr) {
	var buf [16]byte
	DefaultWrite(0, []byte("Unhandled "))
	DefaultWrite(0, []byte(excName(cause)))
	DefaultWrite(0, []byte(" Exception"))

	DefaultWrite(0, []byte("\ncause 0x"))
	DefaultWrite(0, itoa(buf[:], cause))
	DefaultWrite(0, []byte("\nepc   0x"))
	DefaultWrite(0, itoa(buf[:], epc))
	DefaultWrite(0, []byte("\ntval  0x"))
	DefaultWrite(0, itoa(buf[:], tval))
	DefaultWrite(0, []byte("\nra    0x"))
	DefaultWrite(0, itoa(buf[:], ra))
	DefaultWrite(0, []byte("\n"))

	reportException(ExceptionReason(cause))
}

//go:nosplit
func reportException(reason sys.Reason) {
	if sys.Is64 {
		b := exitBlock{reason: uintptr(reason)}
		hostCall(sys.OpExit, sys.Ptr(b.ptr()))
		return
	}
	hostCall(sys.OpExit, sys.Value(uintptr(reason)))
}
