package hostio

import (
	"errors"
	"io"
	"io/fs"

	"github.com/clktmr/semihosting/sys"
)

// Console is one of the standard streams of the host's console. The host
// file ":tt" is opened on first use. Hosts that don't support opening the
// console, or refuse it without an error number, get single character
// output via SYS_WRITEC.
type Console struct {
	h        *Host
	mode     sys.OpenMode
	fd       int
	fallback bool
}

var _ io.ReadWriter = (*Console)(nil)

func (h *Host) console(mode sys.OpenMode) *Console {
	return &Console{h: h, mode: mode, fd: -1}
}

// Stdout returns the host console's standard output.
func (h *Host) Stdout() *Console { return h.console(sys.ModeWrite) }

// Stderr returns the host console's standard error.
func (h *Host) Stderr() *Console { return h.console(sys.ModeAppend) }

// Stdin returns the host console's standard input.
func (h *Host) Stdin() *Console { return h.console(sys.ModeRead) }

func (c *Console) open() error {
	if c.fd >= 0 || c.fallback {
		return nil
	}
	f, err := c.h.Open(":tt", c.mode)
	if err != nil {
		if errors.Is(err, sys.ErrNotSupported) || errors.Is(err, sys.ErrUnknown) {
			c.fallback = true
			return nil
		}
		return err
	}
	c.fd = f.fd
	return nil
}

// Write writes p to the console.
func (c *Console) Write(p []byte) (n int, err error) {
	if err = c.open(); err != nil {
		return
	}
	if c.fallback {
		for i := range p {
			if err = c.h.writeC(&p[i]); err != nil {
				return i, err
			}
		}
		return len(p), nil
	}
	n, err = c.h.transfer(sys.OpWrite, c.fd, p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		err = &fs.PathError{Op: "write", Path: ":tt", Err: err}
	}
	return
}

// Read reads whatever the host has available, at most len(p) bytes. It
// blocks until the host's user entered at least one line or character.
func (c *Console) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err = c.open(); err != nil {
		return
	}
	if c.fallback {
		p[0], err = c.h.ReadC()
		if err != nil {
			return 0, err
		}
		return 1, nil
	}
	b, err := sys.ReadBlock(c.fd, p)
	if err != nil {
		return 0, err
	}
	n, ok := sys.Transferred(c.h.call(b), len(p))
	if !ok {
		return 0, &fs.PathError{Op: "read", Path: ":tt", Err: c.h.lastError()}
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Close releases the console handle. The console can be used again
// afterwards, it will be reopened.
func (c *Console) Close() error {
	if c.fd < 0 {
		return nil
	}
	f := &File{h: c.h, fd: c.fd, name: ":tt"}
	c.fd = -1
	return f.Close()
}

func (h *Host) writeC(c *byte) error {
	b, err := sys.WriteCBlock(c)
	if err != nil {
		return err
	}
	h.call(b)
	return nil
}

// WriteC writes a single character to the host console.
func (h *Host) WriteC(c byte) {
	h.writeC(&c)
}

// Write0 writes the NUL terminated string s to the host console. An empty
// message is a slice holding only the terminator.
func (h *Host) Write0(s []byte) error {
	b, err := sys.Write0Block(s)
	if err != nil {
		return err
	}
	h.call(b)
	return nil
}

// Print writes s to the host console using a single call. Output ends at
// the first NUL byte in s.
func (h *Host) Print(s string) {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	h.Write0(buf)
}

// ReadC reads a single character from the host console. It blocks until a
// character is available.
func (h *Host) ReadC() (byte, error) {
	raw := h.call(sys.ReadCBlock())
	if raw > 0xff {
		return 0, h.lastError()
	}
	return byte(raw), nil
}
