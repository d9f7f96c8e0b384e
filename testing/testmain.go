//go:build noos

// Package testing runs the tests of a package on a target attached to a
// semihosting debug host.
package testing

import (
	"embedded/rtos"
	"fmt"
	"os"
	"syscall"
	"testing"

	_ "github.com/clktmr/semihosting/machine"

	"github.com/clktmr/semihosting/hostio"

	"github.com/embeddedgo/fs/termfs"
)

// TestMain should be used as TestMain for tests running on the target. It
// connects the standard streams to the host console, takes the test flags
// from the host's command line and reports the result as exit status.
func TestMain(m *testing.M) {
	if err := MountConsole(hostio.Default); err != nil {
		panic(err)
	}

	os.Args = append(os.Args[:1], "-test.v")
	if args, err := hostio.Args(); err != nil {
		fmt.Fprintf(os.Stderr, "WARN: no command line from host: %v\n\n", err)
	} else if len(args) > 1 {
		os.Args = append(os.Args, args[1:]...)
	}

	code := m.Run()
	hostio.Exit(code)
	os.Exit(code)
}

// MountConsole mounts the host console of h as /dev/console and opens it
// as standard input, output and error. The runtime's print and panic output
// is sent to the console's stderr.
func MountConsole(h *hostio.Host) (err error) {
	rtos.SetSystemWriter(NewSystemWriter(h.Stderr()))
	fs := termfs.NewLight("termfs", h.Stdin(), h.Stdout())
	rtos.Mount(fs, "/dev/console")
	os.Stdout, err = os.OpenFile("/dev/console", syscall.O_WRONLY, 0)
	if err != nil {
		return err
	}
	os.Stderr = os.Stdout
	os.Stdin, err = os.OpenFile("/dev/console", syscall.O_RDONLY, 0)
	return err
}
