//go:build unix

package run

import (
	"os"
	"os/exec"
	"syscall"
)

func processGroupEnable(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// processGroupKill interrupts the emulator and everything it spawned. Its
// pid is also the process group id, either from Setpgid or from the
// session a pty command starts.
func processGroupKill(p *os.Process) error {
	return syscall.Kill(-p.Pid, syscall.SIGINT)
}
