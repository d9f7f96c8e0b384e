// Package hostfs exposes the debug host's file system as an [fs.FS].
//
// Hosts can't list directories, so the file system only supports opening
// files by name. Names are slash separated as required by io/fs and are
// passed to the host relative to the FS's root.
package hostfs

import (
	"errors"
	"io"
	"io/fs"
	"path"

	"github.com/clktmr/semihosting/hostio"
	"github.com/clktmr/semihosting/sys"
)

// FS is a read-only view of the host's files below a root directory.
type FS struct {
	h    *hostio.Host
	root string
}

var (
	_ fs.ReadFileFS = (*FS)(nil)
	_ fs.StatFS     = (*FS)(nil)
	_ fs.SubFS      = (*FS)(nil)
)

var errIsDir = errors.New("directories not supported")

// New returns an FS of the files below root on the host. An empty root
// refers to the host's working directory.
func New(h *hostio.Host, root string) *FS {
	return &FS{h: h, root: root}
}

func (f *FS) hostPath(op, name string) (string, error) {
	if !fs.ValidPath(name) {
		return "", &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}
	if name == "." {
		return "", &fs.PathError{Op: op, Path: name, Err: errIsDir}
	}
	if f.root == "" {
		return name, nil
	}
	return path.Join(f.root, name), nil
}

// Open opens the named file for reading. The returned file implements
// [io.Seeker] and [io.ReaderAt].
func (f *FS) Open(name string) (fs.File, error) {
	hname, err := f.hostPath("open", name)
	if err != nil {
		return nil, err
	}
	file, err := f.h.Open(hname, sys.ModeReadBinary)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: errors.Unwrap(err)}
	}
	return &openFile{file: file, name: name}, nil
}

// ReadFile reads and returns the content of the named file.
func (f *FS) ReadFile(name string) ([]byte, error) {
	file, err := f.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	fi, err := file.Stat()
	if err != nil {
		return nil, err
	}
	data := make([]byte, fi.Size())
	n, err := io.ReadFull(file, data)
	if err == io.ErrUnexpectedEOF {
		err = nil
	}
	return data[:n], err
}

// Stat returns the size of the named file.
func (f *FS) Stat(name string) (fs.FileInfo, error) {
	file, err := f.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return file.Stat()
}

// Sub returns an FS rooted at dir.
func (f *FS) Sub(dir string) (fs.FS, error) {
	if !fs.ValidPath(dir) {
		return nil, &fs.PathError{Op: "sub", Path: dir, Err: fs.ErrInvalid}
	}
	if dir == "." {
		return f, nil
	}
	return New(f.h, path.Join(f.root, dir)), nil
}

// WriteFile writes data to the named file, creating it if necessary.
func (f *FS) WriteFile(name string, data []byte) error {
	hname, err := f.hostPath("open", name)
	if err != nil {
		return err
	}
	file, err := f.h.Open(hname, sys.ModeWriteBinary)
	if err != nil {
		return err
	}
	_, err = file.Write(data)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// Remove deletes the named file.
func (f *FS) Remove(name string) error {
	hname, err := f.hostPath("remove", name)
	if err != nil {
		return err
	}
	return f.h.Remove(hname)
}

type openFile struct {
	file *hostio.File
	name string
}

var (
	_ io.Seeker   = (*openFile)(nil)
	_ io.ReaderAt = (*openFile)(nil)
)

func (f *openFile) Read(p []byte) (int, error) { return f.file.Read(p) }
func (f *openFile) Close() error               { return f.file.Close() }

func (f *openFile) Seek(offset int64, whence int) (int64, error) {
	return f.file.Seek(offset, whence)
}

func (f *openFile) Stat() (fs.FileInfo, error) {
	fi, err := f.file.Stat()
	if err != nil {
		return nil, err
	}
	return &fileInfo{fi, path.Base(f.name)}, nil
}

// ReadAt moves the host's file position, concurrent use with Read isn't
// safe.
func (f *openFile) ReadAt(p []byte, off int64) (n int, err error) {
	pos, err := f.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return
	}
	defer func() {
		if _, serr := f.file.Seek(pos, io.SeekStart); err == nil {
			err = serr
		}
	}()
	if _, err = f.file.Seek(off, io.SeekStart); err != nil {
		return
	}
	n, err = io.ReadFull(f.file, p)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return
}

type fileInfo struct {
	fs.FileInfo
	name string
}

func (fi *fileInfo) Name() string { return fi.name }
