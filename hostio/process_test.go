package hostio_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/clktmr/semihosting/hostio"
	"github.com/clktmr/semihosting/internal/hosttest"
	"github.com/clktmr/semihosting/sys"
)

func TestClocks(t *testing.T) {
	host, h := newHost()
	host.Clock = 150
	host.Time = 1700000000
	host.Ticks = 2500

	if d, err := h.Clock(); err != nil || d != 1500*time.Millisecond {
		t.Errorf("Clock: %v, %v", d, err)
	}
	if tm, err := h.Time(); err != nil || tm.Unix() != 1700000000 {
		t.Errorf("Time: %v, %v", tm, err)
	}
	if d, err := h.Uptime(); err != nil || d != 2500*time.Millisecond {
		t.Errorf("Uptime: %v, %v", d, err)
	}

	host.Fail[sys.OpTickFreq] = sys.ENOSYS
	if _, err := h.TickFreq(); !errors.Is(err, sys.ErrNotSupported) {
		t.Errorf("TickFreq: %v", err)
	}
	if _, err := h.Uptime(); !errors.Is(err, sys.ErrNotSupported) {
		t.Errorf("Uptime: %v", err)
	}
}

func TestArgs(t *testing.T) {
	host, h := newHost()
	host.Cmdline = `prog -v "two words" it\'s`

	cmdline, err := h.CommandLine()
	if err != nil || cmdline != host.Cmdline {
		t.Fatalf("CommandLine: %q, %v", cmdline, err)
	}
	args, err := h.Args()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"prog", "-v", "two words", "it's"}, args); diff != "" {
		t.Errorf("args (-want +got):\n%s", diff)
	}

	host.Cmdline = `prog "unterminated`
	if _, err := h.Args(); err == nil {
		t.Error("unterminated quote accepted")
	}
}

func TestSystem(t *testing.T) {
	host, h := newHost()
	if _, err := h.System("true"); !errors.Is(err, sys.ENOSYS) {
		t.Errorf("System without shell: %v", err)
	}
	var ran string
	host.System = func(cmd string) int { ran = cmd; return 3 }
	status, err := h.System("make test")
	if err != nil || status != 3 || ran != "make test" {
		t.Errorf("System: %v, %v, ran %q", status, err, ran)
	}
}

func TestHeapInfo(t *testing.T) {
	host, h := newHost()
	host.Heap = sys.HeapInfo{HeapBase: 0x1000, HeapLimit: 0x2000, StackBase: 0x3000}
	info, err := h.HeapInfo()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(host.Heap, info); diff != "" {
		t.Errorf("heap info (-want +got):\n%s", diff)
	}
}

func TestIsError(t *testing.T) {
	_, h := newHost()
	for status, want := range map[uintptr]bool{0: false, 5: false, sys.Invalid - 1: true} {
		if got, err := h.IsError(status); err != nil || got != want {
			t.Errorf("IsError(%#x) = %v, %v", status, got, err)
		}
	}
}

func TestExit(t *testing.T) {
	const (
		appExit = uintptr(sys.ReasonApplicationExit)
		unknown = uintptr(sys.ReasonRunTimeErrorUnknown)
		bkpt    = uintptr(sys.ReasonBreakPoint)
	)
	exit := func(reason, subcode uintptr) hosttest.Call {
		return hosttest.Call{Op: sys.OpExit, Words: []uintptr{reason, subcode}}
	}
	exitValue := hosttest.Call{Op: sys.OpExit}
	extended := func(reason, subcode uintptr) hosttest.Call {
		return hosttest.Call{Op: sys.OpExitExtended, Words: []uintptr{reason, subcode}}
	}

	for name, tc := range map[string]struct {
		exit   func(h *hostio.Host)
		want64 []hosttest.Call
		want32 []hosttest.Call
		// stop reason the host saw last
		reason32 sys.Reason
	}{
		"Success": {
			exit:     func(h *hostio.Host) { h.Exit(0) },
			want64:   []hosttest.Call{exit(appExit, 0)},
			want32:   []hosttest.Call{exitValue},
			reason32: sys.ReasonApplicationExit,
		},
		"Failure": {
			exit:     func(h *hostio.Host) { h.Exit(2) },
			want64:   []hosttest.Call{exit(appExit, 2)},
			want32:   []hosttest.Call{extended(appExit, 2), exitValue},
			reason32: sys.ReasonRunTimeErrorUnknown,
		},
		"Extended": {
			exit:     func(h *hostio.Host) { h.ExitExtended(sys.ReasonRunTimeErrorUnknown, 1) },
			want64:   []hosttest.Call{extended(unknown, 1)},
			want32:   []hosttest.Call{extended(unknown, 1)},
			reason32: sys.ReasonRunTimeErrorUnknown,
		},
		"Exception": {
			exit:     func(h *hostio.Host) { h.ReportException(sys.ReasonBreakPoint) },
			want64:   []hosttest.Call{exit(bkpt, 0)},
			want32:   []hosttest.Call{exitValue},
			reason32: sys.ReasonBreakPoint,
		},
	} {
		t.Run(name, func(t *testing.T) {
			host, h := newHost()
			tc.exit(h)
			want := tc.want64
			if !sys.Is64 {
				want = tc.want32
			}
			if diff := cmp.Diff(want, host.Calls); diff != "" {
				t.Errorf("calls (-want +got):\n%s", diff)
			}
			if host.Exited == nil {
				t.Fatal("host not stopped")
			}
			if !sys.Is64 && host.Exited.Reason != tc.reason32 {
				t.Errorf("stopped with %v, want %v", host.Exited.Reason, tc.reason32)
			}
		})
	}
}
