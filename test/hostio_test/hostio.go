// Package hostio_test holds tests that need a real debug host. They are
// linked into the test binary in the parent directory.
package hostio_test

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"testing"
	"time"

	"github.com/clktmr/semihosting/hostio"
	"github.com/clktmr/semihosting/hostio/hostfs"
	"github.com/clktmr/semihosting/sys"
)

func TestConsole(t *testing.T) {
	h := hostio.Default
	h.WriteC('>')
	h.Print(" semihosting console\n")
	if _, err := io.WriteString(h.Stdout(), "via :tt\n"); err != nil {
		t.Fatal(err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	h := hostio.Default
	name, err := h.TmpNam(1)
	if err != nil {
		t.Skip("no temporary files:", err)
	}
	f, err := h.Open(name, sys.ModeWriteReadBinary)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Remove(name)

	want := bytes.Repeat([]byte("0123456789abcdef"), 64)
	if _, err := f.Write(want); err != nil {
		t.Fatal(err)
	}
	if size, err := f.Len(); err != nil || size != int64(len(want)) {
		t.Fatalf("Len: %v, %v", size, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Error("read back differs")
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := hostfs.New(h, "").Open(name); err != nil {
		t.Error(err)
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := hostio.Open("does/not/exist", sys.ModeRead)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v", err)
	}
}

func TestClock(t *testing.T) {
	h := hostio.Default
	start, err := h.Clock()
	if err != nil {
		t.Fatal(err)
	}
	if now, err := h.Time(); err != nil || now.Before(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Time: %v, %v", now, err)
	}
	if up, err := h.Uptime(); err == nil {
		t.Log("uptime", up)
	} else if !errors.Is(err, sys.ErrNotSupported) {
		t.Error(err)
	}
	if end, _ := h.Clock(); end < start {
		t.Errorf("clock went backwards: %v < %v", end, start)
	}
}

func TestCommandLine(t *testing.T) {
	args, err := hostio.Args()
	if err != nil {
		t.Fatal(err)
	}
	if len(args) == 0 {
		t.Error("empty command line")
	}
	t.Log(args)
}

func BenchmarkWriteC(b *testing.B) {
	h := hostio.Default
	for b.Loop() {
		h.WriteC('.')
	}
	h.WriteC('\n')
}

func BenchmarkWrite(b *testing.B) {
	out := hostio.Default.Stdout()
	line := []byte("................................................................\n")
	b.SetBytes(int64(len(line)))
	for b.Loop() {
		out.Write(line)
	}
}
