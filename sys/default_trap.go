//go:build (riscv64 || tinygo.riscv32) && !semihosting_umode && !nosemihosting

package sys

// Default is the channel used by the hostio package.
var Default Channel = Trap{}
