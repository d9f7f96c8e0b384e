package hostfs_test

import (
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/clktmr/semihosting/hostio"
	"github.com/clktmr/semihosting/hostio/hostfs"
	"github.com/clktmr/semihosting/internal/hosttest"
)

func newFS(root string) (*hosttest.Host, *hostfs.FS) {
	host := hosttest.NewHost()
	host.Files["testdata/hello.txt"] = &hosttest.File{Data: []byte("hello, world\n")}
	return host, hostfs.New(hostio.New(host), root)
}

func TestReadFile(t *testing.T) {
	host, fsys := newFS("testdata")

	data, err := fs.ReadFile(fsys, "hello.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello, world\n" {
		t.Errorf("got %q", data)
	}
	fi, err := fs.Stat(fsys, "hello.txt")
	if err != nil {
		t.Fatal(err)
	}
	if fi.Name() != "hello.txt" || fi.Size() != 13 || fi.IsDir() {
		t.Errorf("stat: %v %v %v", fi.Name(), fi.Size(), fi.IsDir())
	}
	if host.Open() != 0 {
		t.Error("handle leaked")
	}
}

func TestOpenErrors(t *testing.T) {
	_, fsys := newFS("")
	for name, tc := range map[string]struct {
		path string
		err  error
	}{
		"Missing": {"testdata/nope.txt", fs.ErrNotExist},
		"Invalid": {"../etc/passwd", fs.ErrInvalid},
		"Root":    {".", nil},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := fsys.Open(tc.path)
			var perr *fs.PathError
			if !errors.As(err, &perr) || perr.Path != tc.path {
				t.Fatalf("got %#v", err)
			}
			if tc.err != nil && !errors.Is(err, tc.err) {
				t.Errorf("%v is not %v", err, tc.err)
			}
		})
	}
}

func TestReadAt(t *testing.T) {
	_, fsys := newFS("")
	f, err := fsys.Open("testdata/hello.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	buf := make([]byte, 5)
	if _, err := io.ReadFull(f, buf); err != nil {
		t.Fatal(err)
	}
	ra := f.(io.ReaderAt)
	if n, err := ra.ReadAt(buf, 7); err != nil || string(buf[:n]) != "world" {
		t.Errorf("ReadAt: %q, %v", buf[:n], err)
	}
	if n, err := ra.ReadAt(buf, 10); err != io.EOF || string(buf[:n]) != "ld\n" {
		t.Errorf("ReadAt at end: %q, %v", buf[:n], err)
	}
	// ReadAt doesn't affect the read position
	rest, err := io.ReadAll(f)
	if err != nil || string(rest) != ", world\n" {
		t.Errorf("ReadAll: %q, %v", rest, err)
	}
}

func TestSubWriteRemove(t *testing.T) {
	host, fsys := newFS("")
	sub, err := fs.Sub(fsys, "testdata")
	if err != nil {
		t.Fatal(err)
	}
	if err := sub.(*hostfs.FS).WriteFile("out.txt", []byte("result")); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte("result"), host.Files["testdata/out.txt"].Data); diff != "" {
		t.Errorf("written (-want +got):\n%s", diff)
	}
	if err := sub.(*hostfs.FS).Remove("out.txt"); err != nil {
		t.Fatal(err)
	}
	if _, ok := host.Files["testdata/out.txt"]; ok {
		t.Error("file not removed")
	}
}
