package machine

import (
	"strings"
	"testing"

	"github.com/clktmr/semihosting/sys"
)

func TestChunkFill(t *testing.T) {
	long := strings.Repeat("x", 2*chunkSize)
	for name, tc := range map[string]struct {
		in     string
		chunks []string
	}{
		"Empty":   {"", nil},
		"Short":   {"hello\n", []string{"hello\n"}},
		"NUL":     {"a\x00b", []string{"ab"}},
		"OnlyNUL": {"\x00\x00", nil},
		"Long": {long, []string{
			long[:chunkSize-1], long[:chunkSize-1], "xx",
		}},
	} {
		t.Run(name, func(t *testing.T) {
			var c chunk
			var got []string
			for rest, ok := c.fill([]byte(tc.in)); ok; rest, ok = c.fill(rest) {
				i := strings.IndexByte(string(c[:]), 0)
				if i < 0 {
					t.Fatal("chunk not terminated")
				}
				got = append(got, string(c[:i]))
			}
			if strings.Join(got, "|") != strings.Join(tc.chunks, "|") {
				t.Errorf("got %q, want %q", got, tc.chunks)
			}
		})
	}
}

func TestExceptionReason(t *testing.T) {
	for cause, want := range map[uintptr]sys.Reason{
		2:                sys.ReasonUndefinedInstr,
		3:                sys.ReasonBreakPoint,
		5:                sys.ReasonDataAbort,
		12:               sys.ReasonPrefetchAbort,
		0:                sys.ReasonAddressException,
		10:               sys.ReasonRunTimeErrorUnknown,
		interruptBit | 7: sys.ReasonIRQ,
	} {
		if got := ExceptionReason(cause); got != want {
			t.Errorf("cause %#x: got %v, want %v", cause, got, want)
		}
	}
	if excName(2) != "Illegal Instruction" || excName(10) != "Reserved" || excName(interruptBit) != "Interrupt" {
		t.Error("wrong exception names")
	}
}

func TestItoa(t *testing.T) {
	var buf [16]byte
	got := string(itoa(buf[:], 0xbeef))
	want := strings.Repeat("0", int(2*wordSize)-4) + "beef"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
