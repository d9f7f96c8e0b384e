//go:build !unix

package run

import (
	"os"
	"os/exec"
)

func processGroupEnable(cmd *exec.Cmd) {}

func processGroupKill(p *os.Process) error {
	return p.Signal(os.Interrupt)
}
