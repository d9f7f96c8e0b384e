//go:build noos && nosemihosting

package machine

import "github.com/clktmr/semihosting/sys"

//go:nosplit
func hostCall(op sys.Op, arg sys.Arg) uintptr {
	return sys.Disabled{}.Call(op, arg)
}
