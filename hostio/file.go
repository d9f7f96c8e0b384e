package hostio

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/clktmr/semihosting/sys"
)

// File is an open file on the host.
//
// The handle is only valid until Close. Using a File after Close, or
// concurrently from several goroutines, is not detected.
type File struct {
	h      *Host
	fd     int
	name   string
	pos    int64
	append bool
}

var (
	_ io.ReadWriteSeeker = (*File)(nil)
	_ io.Closer          = (*File)(nil)
)

var errWhence = errors.New("invalid whence")

// Open opens the named host file with the given mode. Relative names are
// resolved by the host, usually against the debugger's working directory.
func (h *Host) Open(name string, mode sys.OpenMode) (*File, error) {
	b, err := sys.OpenBlock(name, mode)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	fd, ok := sys.Handle(h.call(b))
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: h.lastError()}
	}
	return &File{h: h, fd: fd, name: name, append: mode >= sys.ModeAppend}, nil
}

// OpenFile is like Open but takes the flags of [os.OpenFile]. Files are
// always opened in binary mode.
func (h *Host) OpenFile(name string, flag int) (*File, error) {
	mode, err := ModeFromFlag(flag)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return h.Open(name, mode)
}

// ModeFromFlag maps flags of [os.OpenFile] to the host's fopen() mode.
// Creating a file requires O_TRUNC or O_APPEND, as the host has no mode for
// creating a file without truncating it.
func ModeFromFlag(flag int) (sys.OpenMode, error) {
	rw := flag & (os.O_RDONLY | os.O_WRONLY | os.O_RDWR)
	if flag&os.O_EXCL != 0 {
		return 0, sys.ErrInvalidArg
	}
	switch {
	case flag&os.O_APPEND != 0:
		if rw == os.O_RDWR {
			return sys.ModeAppendReadBinary, nil
		}
		return sys.ModeAppendBinary, nil
	case flag&os.O_TRUNC != 0:
		switch rw {
		case os.O_RDWR:
			return sys.ModeWriteReadBinary, nil
		case os.O_WRONLY:
			return sys.ModeWriteBinary, nil
		}
		return 0, sys.ErrInvalidArg
	case flag&os.O_CREATE != 0:
		return 0, sys.ErrInvalidArg
	case rw == os.O_RDWR, rw == os.O_WRONLY:
		return sys.ModeReadWriteBinary, nil
	}
	return sys.ModeReadBinary, nil
}

// Fd returns the host's handle of the file.
func (f *File) Fd() int { return f.fd }

// Name returns the name passed to Open.
func (f *File) Name() string { return f.name }

func (f *File) wrap(op string, err error) error {
	return &fs.PathError{Op: op, Path: f.name, Err: err}
}

// Read reads up to len(p) bytes. It returns io.EOF if the host had no more
// data.
func (f *File) Read(p []byte) (n int, err error) {
	n, err = f.h.transfer(sys.OpRead, f.fd, p)
	f.pos += int64(n)
	if err != nil {
		return n, f.wrap("read", err)
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write writes all of p, retrying partial writes. It returns
// io.ErrShortWrite if the host stopped accepting data.
func (f *File) Write(p []byte) (n int, err error) {
	n, err = f.h.transfer(sys.OpWrite, f.fd, p)
	f.pos += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if f.append && n > 0 {
		if size, err := f.Len(); err == nil {
			f.pos = size
		}
	}
	if err != nil {
		return n, f.wrap("write", err)
	}
	return n, nil
}

// Seek sets the offset for the next Read or Write. The host only knows
// absolute positions, io.SeekCurrent is resolved with the position tracked
// by File and io.SeekEnd with the file's length.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += f.pos
	case io.SeekEnd:
		size, err := f.Len()
		if err != nil {
			return 0, err
		}
		offset += size
	default:
		return 0, f.wrap("seek", errWhence)
	}
	b, err := sys.SeekBlock(f.fd, offset)
	if err != nil {
		return 0, f.wrap("seek", err)
	}
	if !sys.Status(f.h.call(b)) {
		return 0, f.wrap("seek", f.h.lastError())
	}
	f.pos = offset
	return offset, nil
}

// Len returns the current length of the file.
func (f *File) Len() (int64, error) {
	b, err := sys.FlenBlock(f.fd)
	if err != nil {
		return 0, f.wrap("flen", err)
	}
	raw := f.h.call(b)
	if raw == sys.Invalid {
		return 0, f.wrap("flen", f.h.lastError())
	}
	return int64(raw), nil
}

// Stat returns the file's name and length. Hosts don't report any other
// file attributes.
func (f *File) Stat() (fs.FileInfo, error) {
	size, err := f.Len()
	if err != nil {
		return nil, err
	}
	return &fileInfo{name: path.Base(f.name), size: size}, nil
}

// IsTerminal reports whether the file is connected to an interactive
// device on the host.
func (f *File) IsTerminal() (bool, error) {
	b, err := sys.IsTTYBlock(f.fd)
	if err != nil {
		return false, f.wrap("istty", err)
	}
	tty, ok := sys.Flag(f.h.call(b))
	if !ok {
		return false, f.wrap("istty", f.h.lastError())
	}
	return tty, nil
}

// Close releases the host's handle.
func (f *File) Close() error {
	b, err := sys.CloseBlock(f.fd)
	if err != nil {
		return f.wrap("close", err)
	}
	if !sys.Status(f.h.call(b)) {
		return f.wrap("close", f.h.lastError())
	}
	return nil
}

// Remove deletes the named host file.
func (h *Host) Remove(name string) error {
	b, err := sys.RemoveBlock(name)
	if err == nil && !sys.Status(h.call(b)) {
		err = h.lastError()
	}
	if err != nil {
		return &fs.PathError{Op: "remove", Path: name, Err: err}
	}
	return nil
}

// Rename renames the host file oldname to newname.
func (h *Host) Rename(oldname, newname string) error {
	b, err := sys.RenameBlock(oldname, newname)
	if err == nil && !sys.Status(h.call(b)) {
		err = h.lastError()
	}
	if err != nil {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: err}
	}
	return nil
}

// TmpNam returns the name of a temporary file on the host. Names are
// identified by id, which must be in the range 0-255.
func (h *Host) TmpNam(id int) (string, error) {
	var buf [256]byte
	b, err := sys.TmpNamBlock(buf[:], id)
	if err == nil && !sys.Status(h.call(b)) {
		err = h.lastError()
	}
	if err != nil {
		return "", err
	}
	return cstr(buf[:]), nil
}

func cstr(b []byte) string {
	for i := range b {
		if b[i] == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

type fileInfo struct {
	name string
	size int64
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return fi.size }
func (fi *fileInfo) Mode() fs.FileMode  { return 0444 }
func (fi *fileInfo) ModTime() time.Time { return time.Time{} }
func (fi *fileInfo) IsDir() bool        { return false }
func (fi *fileInfo) Sys() any           { return nil }
