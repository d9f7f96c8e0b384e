// Package hostio provides typed access to the services of a semihosting
// debug host: files, the host console, clocks, the command line and program
// exit.
//
// All calls are synchronous and block the calling hart until the host has
// serviced them. There is no timeout: without an attached debugger a call
// either halts the hart or raises a breakpoint exception the runtime has to
// deal with.
//
// Nothing in this package serializes calls. Output written concurrently by
// several goroutines or harts may interleave on the host.
package hostio

import (
	"github.com/clktmr/semihosting/sys"
)

// Host performs semihosting calls on a channel.
type Host struct {
	ch sys.Channel
}

// New returns a Host issuing all calls on ch.
func New(ch sys.Channel) *Host {
	return &Host{ch: ch}
}

// Default uses sys.Default, which is the trap based channel on RISC-V and
// the disabled channel if built with the nosemihosting tag.
var Default = New(sys.Default)

func (h *Host) call(b sys.Block) uintptr {
	return b.Call(h.ch)
}

func (h *Host) lastError() error {
	return sys.LastError(h.ch)
}

// transfer moves p from or to the host file fd. It repeats the call until
// all of p was transferred, the host reports an error or a call made no
// progress.
func (h *Host) transfer(op sys.Op, fd int, p []byte) (n int, err error) {
	for n < len(p) {
		var b sys.Block
		if op == sys.OpWrite {
			b, err = sys.WriteBlock(fd, p[n:])
		} else {
			b, err = sys.ReadBlock(fd, p[n:])
		}
		if err != nil {
			return
		}
		done, ok := sys.Transferred(h.call(b), len(p)-n)
		if !ok {
			return n, h.lastError()
		}
		if done == 0 {
			break
		}
		n += done
	}
	return
}

// Open opens the named host file with [Host.Open] on the default host.
func Open(name string, mode sys.OpenMode) (*File, error) {
	return Default.Open(name, mode)
}

// OpenFile opens the named host file with [Host.OpenFile] on the default host.
func OpenFile(name string, flag int) (*File, error) {
	return Default.OpenFile(name, flag)
}

// Remove deletes the named host file on the default host.
func Remove(name string) error { return Default.Remove(name) }

// Rename renames a host file on the default host.
func Rename(oldname, newname string) error { return Default.Rename(oldname, newname) }

// Print writes s to the console of the default host.
func Print(s string) { Default.Print(s) }

// Args returns the program's command line arguments as known by the default
// host.
func Args() ([]string, error) { return Default.Args() }

// Exit stops the program with status code on the default host.
func Exit(code int) { Default.Exit(code) }
