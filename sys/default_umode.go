//go:build (riscv64 || tinygo.riscv32) && semihosting_umode && !nosemihosting

package sys

// Default is the channel used by the hostio package. Built with the
// semihosting_umode tag, calls are relayed by the supervisor.
var Default Channel = Ecall{}
