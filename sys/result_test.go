package sys_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/clktmr/semihosting/internal/hosttest"
	"github.com/clktmr/semihosting/sys"
)

func TestHandle(t *testing.T) {
	tests := map[string]struct {
		raw uintptr
		fd  int
		ok  bool
	}{
		"zero":    {0, 0, true},
		"handle":  {42, 42, true},
		"invalid": {sys.Invalid, -1, false},
		"neg":     {sys.Invalid - 1, -1, false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			fd, ok := sys.Handle(tc.raw)
			if fd != tc.fd || ok != tc.ok {
				t.Fatalf("expected (%d, %v), got (%d, %v)", tc.fd, tc.ok, fd, ok)
			}
		})
	}
}

func TestTransferred(t *testing.T) {
	tests := map[string]struct {
		raw  uintptr
		n    int
		done int
		ok   bool
	}{
		"all":     {0, 10, 10, true},
		"none":    {10, 10, 0, true},
		"partial": {3, 10, 7, true},
		"empty":   {0, 0, 0, true},
		"toomany": {11, 10, 0, false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			done, ok := sys.Transferred(tc.raw, tc.n)
			if done != tc.done || ok != tc.ok {
				t.Fatalf("expected (%d, %v), got (%d, %v)", tc.done, tc.ok, done, ok)
			}
		})
	}
}

func TestFlag(t *testing.T) {
	tests := map[string]struct {
		raw      uintptr
		flag, ok bool
	}{
		"false":   {0, false, true},
		"true":    {1, true, true},
		"host":    {2, true, true},
		"invalid": {sys.Invalid, false, false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			flag, ok := sys.Flag(tc.raw)
			if flag != tc.flag || ok != tc.ok {
				t.Fatalf("expected (%v, %v), got (%v, %v)", tc.flag, tc.ok, flag, ok)
			}
		})
	}
}

func TestErrno(t *testing.T) {
	tests := map[string]struct {
		errno  sys.Errno
		target error
		msg    string
	}{
		"noent":   {sys.ENOENT, fs.ErrNotExist, "semihosting: no such file or directory"},
		"exist":   {sys.EEXIST, fs.ErrExist, "semihosting: file exists"},
		"access":  {sys.EACCES, fs.ErrPermission, "semihosting: permission denied"},
		"badf":    {sys.EBADF, fs.ErrInvalid, "semihosting: bad file descriptor"},
		"nosys":   {sys.ENOSYS, sys.ErrNotSupported, "semihosting: function not implemented"},
		"notsup":  {sys.ENOTSUP, sys.ErrNotSupported, "semihosting: operation not supported"},
		"unnamed": {sys.Errno(1234), nil, "semihosting: errno 1234"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if tc.target != nil && !errors.Is(tc.errno, tc.target) {
				t.Errorf("expected %v to be %v", tc.errno, tc.target)
			}
			if msg := tc.errno.Error(); msg != tc.msg {
				t.Errorf("expected %q, got %q", tc.msg, msg)
			}
		})
	}
	if errors.Is(sys.ENOENT, sys.ErrNotSupported) {
		t.Error("ENOENT must not be ErrNotSupported")
	}
}

func TestLastError(t *testing.T) {
	host := hosttest.NewHost()
	if err := sys.LastError(host); err != sys.ErrUnknown {
		t.Fatalf("expected %v, got %v", sys.ErrUnknown, err)
	}

	b, _ := sys.OpenBlock("missing", sys.ModeRead)
	if _, ok := sys.Handle(b.Call(host)); ok {
		t.Fatal("expected invalid handle")
	}
	if err := sys.LastError(host); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected %v, got %v", fs.ErrNotExist, err)
	}
}

func TestOptional(t *testing.T) {
	if err := sys.Optional(sys.Invalid); err != sys.ErrNotSupported {
		t.Fatalf("expected %v, got %v", sys.ErrNotSupported, err)
	}
	if err := sys.Optional(100); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestDisabled(t *testing.T) {
	var ch sys.Channel = sys.Disabled{}
	c := byte('x')
	for _, b := range []sys.Block{
		must(sys.WriteCBlock(&c)),
		must(sys.Write0Block([]byte("boot\x00"))),
		must(sys.WriteBlock(1, []byte("log line\n"))),
	} {
		if raw := b.Call(ch); raw != 0 {
			t.Errorf("%v: expected success, got %#x", b.Op(), raw)
		}
	}

	b, _ := sys.OpenBlock(":tt", sys.ModeWrite)
	if _, ok := sys.Handle(b.Call(ch)); ok {
		t.Fatal("expected open to fail")
	}
	if err := sys.LastError(ch); !errors.Is(err, sys.ErrNotSupported) {
		t.Fatalf("expected %v, got %v", sys.ErrNotSupported, err)
	}
	if err := sys.Optional(sys.TickFreqBlock().Call(ch)); err != sys.ErrNotSupported {
		t.Fatalf("expected %v, got %v", sys.ErrNotSupported, err)
	}
}

func TestRelay(t *testing.T) {
	var gotOp sys.Op
	var gotArg uintptr
	ch := sys.ChannelFunc(func(op sys.Op, arg sys.Arg) uintptr {
		gotOp, gotArg = op, arg.Word()
		return 0x55
	})

	a0 := uintptr(sys.OpClock)
	if sys.Relay(ch, 0x10, &a0, 0) {
		t.Fatal("relayed foreign extension")
	}
	if a0 != uintptr(sys.OpClock) {
		t.Fatal("a0 modified for foreign extension")
	}

	if !sys.Relay(ch, sys.RelayEID, &a0, 0x8000_1000) {
		t.Fatal("expected relay")
	}
	if gotOp != sys.OpClock || gotArg != 0x8000_1000 || a0 != 0x55 {
		t.Fatalf("expected (%v, 0x80001000) -> 0x55, got (%v, %#x) -> %#x", sys.OpClock, gotOp, gotArg, a0)
	}
}

func TestStrings(t *testing.T) {
	tests := map[string]struct{ got, want string }{
		"op":         {sys.OpGetCmdline.String(), "SYS_GET_CMDLINE"},
		"opUnknown":  {sys.Op(0x14).String(), "SYS_UNKNOWN"},
		"mode":       {sys.ModeAppendReadBinary.String(), "a+b"},
		"modeBad":    {sys.OpenMode(40).String(), "invalid"},
		"reason":     {sys.ReasonApplicationExit.String(), "ADP_Stopped_ApplicationExit"},
		"reasonBad":  {sys.Reason(1).String(), "ADP_Stopped_Unknown"},
		"reasonHard": {sys.ReasonFIQ.String(), "ADP_Stopped_FIQ"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, tc.got)
			}
		})
	}
}
