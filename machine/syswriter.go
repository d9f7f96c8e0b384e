//go:build noos

package machine

import (
	"unsafe"

	"github.com/clktmr/semihosting/sys"
)

//go:nosplit
func write0(s *byte) {
	hostCall(sys.OpWrite0, sys.Ptr(unsafe.Pointer(s)))
}

// Writes to the debug host's console using SYS_WRITE0, regardless of
// whether a debugger is attached. Only intended as a fail safe logger, it
// doesn't know about the runtime's file descriptors and sends stdout and
// stderr to the same console.
//
//go:nowritebarrierrec
//go:nosplit
//go:linkname DefaultWrite runtime.defaultWrite
func DefaultWrite(fd int, p []byte) int {
	var c chunk
	for rest, ok := c.fill(p); ok; rest, ok = c.fill(rest) {
		write0(&c[0])
	}
	return len(p)
}

type defaultWriter int

const DefaultWriter defaultWriter = 0

func (v defaultWriter) Write(p []byte) (int, error) {
	return DefaultWrite(int(v), p), nil
}
