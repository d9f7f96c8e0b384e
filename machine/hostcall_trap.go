//go:build noos && !nosemihosting && !semihosting_umode

package machine

import "github.com/clktmr/semihosting/sys"

//go:nosplit
func hostCall(op sys.Op, arg sys.Arg) uintptr {
	return sys.Trap{}.Call(op, arg)
}
