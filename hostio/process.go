package hostio

import (
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/clktmr/semihosting/debug"
	"github.com/clktmr/semihosting/sys"
)

const cmdlineSize = 1024

// Clock returns the execution time since the program started, as measured
// by the host in centiseconds.
func (h *Host) Clock() (time.Duration, error) {
	raw := h.call(sys.ClockBlock())
	if raw == sys.Invalid {
		return 0, h.lastError()
	}
	return time.Duration(raw) * 10 * time.Millisecond, nil
}

// Time returns the host's wall clock with a resolution of one second.
func (h *Host) Time() (time.Time, error) {
	raw := h.call(sys.TimeBlock())
	if raw == sys.Invalid {
		return time.Time{}, h.lastError()
	}
	return time.Unix(int64(raw), 0), nil
}

// Elapsed returns the number of ticks since the program started. It returns
// sys.ErrNotSupported if the host doesn't implement a tick counter.
func (h *Host) Elapsed() (uint64, error) {
	b, ticks := sys.ElapsedBlock()
	if err := sys.Optional(h.call(b)); err != nil {
		return 0, err
	}
	return *ticks, nil
}

// TickFreq returns the frequency of the counter read by Elapsed in Hz.
func (h *Host) TickFreq() (uint64, error) {
	raw := h.call(sys.TickFreqBlock())
	if err := sys.Optional(raw); err != nil {
		return 0, err
	}
	if raw == 0 {
		return 0, sys.ErrNotSupported
	}
	return uint64(raw), nil
}

// Uptime converts Elapsed to a duration using TickFreq.
func (h *Host) Uptime() (time.Duration, error) {
	freq, err := h.TickFreq()
	if err != nil {
		return 0, err
	}
	ticks, err := h.Elapsed()
	if err != nil {
		return 0, err
	}
	sec := ticks / freq
	frac := ticks % freq * uint64(time.Second) / freq
	return time.Duration(sec)*time.Second + time.Duration(frac), nil
}

// System runs cmd in the host's shell and returns its exit status.
func (h *Host) System(cmd string) (int, error) {
	b, err := sys.SystemBlock(cmd)
	if err != nil {
		return 0, err
	}
	raw := h.call(b)
	if raw == sys.Invalid {
		return -1, h.lastError()
	}
	return sys.Signed(raw), nil
}

// CommandLine returns the command line the host passes to the program,
// including the program name.
func (h *Host) CommandLine() (string, error) {
	var buf [cmdlineSize]byte
	b, err := sys.GetCmdlineBlock(buf[:])
	debug.AssertErrNil(err)
	if !sys.Status(h.call(b)) {
		return "", h.lastError()
	}
	n := min(int(b.Word(1)), len(buf)-1)
	return cstr(buf[:n]), nil
}

// Args splits the host's command line into words using shell quoting
// rules.
func (h *Host) Args() ([]string, error) {
	cmdline, err := h.CommandLine()
	if err != nil {
		return nil, err
	}
	return shellquote.Split(cmdline)
}

// HeapInfo returns the memory layout suggested by the host. Fields the host
// doesn't know are zero.
func (h *Host) HeapInfo() (sys.HeapInfo, error) {
	b, info := sys.HeapInfoBlock()
	if err := sys.Optional(h.call(b)); err != nil {
		return sys.HeapInfo{}, err
	}
	return *info, nil
}

// IsError asks the host whether status is an error code.
func (h *Host) IsError(status uintptr) (bool, error) {
	failed, ok := sys.Flag(h.call(sys.IsErrorBlock(status)))
	if !ok {
		return false, h.lastError()
	}
	return failed, nil
}

// Exit reports the end of the program with exit status code to the host.
// It returns only if the host didn't stop the program.
func (h *Host) Exit(code int) {
	switch {
	case sys.Is64:
		h.call(sys.ExitBlock(sys.ReasonApplicationExit, code))
	case code == 0:
		h.call(sys.ExitBlock(sys.ReasonApplicationExit, 0))
	default:
		h.ExitExtended(sys.ReasonApplicationExit, code)
		h.call(sys.ExitBlock(sys.ReasonRunTimeErrorUnknown, code))
	}
}

// ExitExtended reports the end of the program with reason and subcode. This
// passes the subcode on RV32 too, but not all hosts support it.
func (h *Host) ExitExtended(reason sys.Reason, subcode int) {
	h.call(sys.ExitExtendedBlock(reason, subcode))
}

// ReportException reports an exception to the host, which usually stops
// the program. Unlike Exit, reasons other than ReasonApplicationExit
// signal an abnormal termination.
func (h *Host) ReportException(reason sys.Reason) {
	h.call(sys.ExitBlock(reason, 0))
}
