package run

import (
	"debug/elf"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kballard/go-shellquote"
)

func TestCommand(t *testing.T) {
	argv, err := command(`qemu-system-riscv64 -M virt -d "guest_errors,unimp"`, "out/test.elf", []string{"-test.run", "Foo,Bar", "two words"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"qemu-system-riscv64", "-M", "virt", "-d", "guest_errors,unimp",
		"-semihosting-config", `enable=on,target=native,arg=out/test.elf -test.run Foo,,Bar 'two words'`,
		"-kernel", "out/test.elf",
	}
	if diff := cmp.Diff(want, argv); diff != "" {
		t.Errorf("argv (-want +got):\n%s", diff)
	}

	if _, err := command("", "x.elf", nil); err == nil {
		t.Error("empty command accepted")
	}
	if _, err := command(`qemu "unterminated`, "x.elf", nil); err == nil {
		t.Error("unterminated quote accepted")
	}
}

func TestCommandLineRoundTrip(t *testing.T) {
	targs := []string{"-v", "it's", `back\slash`, ""}
	cfg := semihostingConfig("a.elf", targs)
	_, arg, _ := strings.Cut(cfg, "arg=")
	got, err := shellquote.Split(arg)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(append([]string{"a.elf"}, targs...), got); diff != "" {
		t.Errorf("args (-want +got):\n%s", diff)
	}
}

func TestClassify(t *testing.T) {
	for line, want := range map[string]struct {
		code int
		ok   bool
	}{
		"PASS":                       {0, true},
		"FAIL":                       {1, true},
		"panic: runtime error":       {1, true},
		"fatal error: out of memory": {1, true},
		"--- PASS: TestConsole":      {0, false},
		"ok":                         {0, false},
	} {
		code, ok := classify(line)
		if code != want.code || ok != want.ok {
			t.Errorf("%q: got %v, %v", line, code, ok)
		}
	}
}

func TestExitCode(t *testing.T) {
	for name, tc := range map[string]struct {
		status, verdict, want int
	}{
		"Exited":          {0, -1, 0},
		"ExitedFailure":   {3, -1, 3},
		"FailButZero":     {0, 1, 1},
		"KilledAfterPass": {-1, 0, 0},
		"KilledAfterFail": {-1, 1, 1},
		"Killed":          {-1, -1, 1},
	} {
		t.Run(name, func(t *testing.T) {
			if got := exitCode(tc.status, tc.verdict); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCheckELF(t *testing.T) {
	notELF := filepath.Join(t.TempDir(), "text.elf")
	if err := os.WriteFile(notELF, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := checkELF(notELF); err == nil {
		t.Error("accepted non ELF file")
	}

	if runtime.GOOS != "linux" {
		t.Skip("test binary is not an ELF")
	}
	if _, err := checkELF(os.Args[0]); !errors.Is(err, errNotRISCV) && runtime.GOARCH != "riscv64" {
		t.Errorf("host binary: %v", err)
	}
}

func TestDefaultEmulator(t *testing.T) {
	if got := defaultEmulator(elf.ELFCLASS32); got != "qemu-system-riscv32 -machine virt -nographic -bios none" {
		t.Errorf("got %q", got)
	}
}
