// Package hosttest provides a mock debug host for testing semihosting
// clients without a target.
//
// The Host implements sys.Channel. Like a real debugger it decodes the
// parameter block of each call directly from memory, so it sees exactly the
// layout the client produced. It keeps a log of all calls and a small in
// memory file system.
package hosttest

import (
	"bytes"
	"strconv"
	"unsafe"

	"github.com/clktmr/semihosting/sys"
)

const wordSize = unsafe.Sizeof(uintptr(0))

// Call is a single call as observed by the host.
type Call struct {
	Op sys.Op
	// Words holds the parameter block as submitted, nil for operations
	// without a block.
	Words []uintptr
	// Data holds the bytes the host read from target memory, including
	// the NUL terminator of strings.
	Data []byte
	Ret  uintptr
}

// Exit is the stop reason reported by SYS_EXIT or SYS_EXIT_EXTENDED.
type Exit struct {
	Op      sys.Op
	Reason  sys.Reason
	Subcode uintptr
}

// File is a file on the mock host.
type File struct {
	Data []byte
}

type handle struct {
	name string
	file *File // nil for the console
	pos  int
	mode sys.OpenMode
}

// Host is a mock debug host. The exported fields may be modified between
// calls to change its behaviour.
type Host struct {
	Files   map[string]*File
	Console bytes.Buffer // output of WRITEC, WRITE0 and writes to ":tt"
	Input   []byte       // consumed by SYS_READC and reads from ":tt"

	Cmdline  string
	Heap     sys.HeapInfo
	Clock    uintptr // centiseconds
	Time     uintptr // seconds since the epoch
	Ticks    uint64
	TickFreq uintptr
	System   func(cmd string) int

	// MaxTransfer limits the bytes moved per SYS_READ and SYS_WRITE, 0
	// means unlimited.
	MaxTransfer int
	// Fail makes operations fail with the given error number.
	Fail map[sys.Op]sys.Errno

	Calls  []Call
	Exited *Exit
	Errno  sys.Errno

	handles map[int]*handle
	nextFd  int
}

func NewHost() *Host {
	return &Host{
		Files:    make(map[string]*File),
		Fail:     make(map[sys.Op]sys.Errno),
		TickFreq: 1000,
		handles:  make(map[int]*handle),
		nextFd:   3,
	}
}

// Ops returns the operations of all logged calls.
func (h *Host) Ops() []sys.Op {
	ops := make([]sys.Op, len(h.Calls))
	for i := range h.Calls {
		ops[i] = h.Calls[i].Op
	}
	return ops
}

// Reset clears the call log.
func (h *Host) Reset() { h.Calls = nil }

// Open returns the number of currently open handles.
func (h *Host) Open() int { return len(h.handles) }

var blockWords = map[sys.Op]int{
	sys.OpOpen:         3,
	sys.OpClose:        1,
	sys.OpWrite:        3,
	sys.OpRead:         3,
	sys.OpIsError:      1,
	sys.OpIsTTY:        1,
	sys.OpSeek:         2,
	sys.OpFlen:         1,
	sys.OpTmpNam:       3,
	sys.OpRemove:       2,
	sys.OpRename:       4,
	sys.OpSystem:       2,
	sys.OpGetCmdline:   2,
	sys.OpHeapInfo:     1,
	sys.OpExitExtended: 2,
	sys.OpElapsed:      int(8 / wordSize),
}

func (h *Host) Call(op sys.Op, arg sys.Arg) uintptr {
	c := Call{Op: op}
	n, ok := blockWords[op]
	if op == sys.OpExit && sys.Is64 {
		n, ok = 2, true
	}
	p := arg.Pointer()
	if ok {
		if p == nil {
			return h.record(&c, h.fail(sys.EFAULT))
		}
		c.Words = make([]uintptr, n)
		for i := range c.Words {
			c.Words[i] = word(p, i)
		}
	}
	if errno, ok := h.Fail[op]; ok {
		return h.record(&c, h.fail(errno))
	}
	return h.record(&c, h.serve(&c, op, arg))
}

func (h *Host) record(c *Call, ret uintptr) uintptr {
	c.Ret = ret
	h.Calls = append(h.Calls, *c)
	return ret
}

func (h *Host) fail(errno sys.Errno) uintptr {
	h.Errno = errno
	return sys.Invalid
}

func word(p unsafe.Pointer, i int) uintptr {
	return *(*uintptr)(unsafe.Add(p, uintptr(i)*wordSize))
}

func ptr(p unsafe.Pointer, i int) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Add(p, uintptr(i)*wordSize))
}

// str reads a string of length n and its terminator.
func (h *Host) str(c *Call, p unsafe.Pointer, n uintptr) (string, bool) {
	b := unsafe.Slice((*byte)(p), n+1)
	c.Data = append(c.Data, b...)
	return string(b[:n]), b[n] == 0
}

func (h *Host) serve(c *Call, op sys.Op, arg sys.Arg) uintptr {
	p := arg.Pointer()
	switch op {
	case sys.OpWriteC:
		if p == nil {
			return h.fail(sys.EFAULT)
		}
		b := *(*byte)(p)
		c.Data = []byte{b}
		h.Console.WriteByte(b)
		return 0

	case sys.OpWrite0:
		if p == nil {
			return h.fail(sys.EFAULT)
		}
		for i := uintptr(0); ; i++ {
			b := *(*byte)(unsafe.Add(p, i))
			c.Data = append(c.Data, b)
			if b == 0 {
				break
			}
			h.Console.WriteByte(b)
		}
		return 0

	case sys.OpOpen:
		name, ok := h.str(c, ptr(p, 0), c.Words[2])
		if !ok {
			return h.fail(sys.EINVAL)
		}
		return h.open(name, sys.OpenMode(c.Words[1]))

	case sys.OpClose:
		if _, ok := h.handles[int(c.Words[0])]; !ok {
			return h.fail(sys.EBADF)
		}
		delete(h.handles, int(c.Words[0]))
		return 0

	case sys.OpWrite:
		f, ok := h.handles[int(c.Words[0])]
		if !ok {
			return h.fail(sys.EBADF)
		}
		want := int(c.Words[2])
		n := h.limit(want)
		buf := unsafe.Slice((*byte)(ptr(p, 1)), want)[:n]
		c.Data = append(c.Data, buf...)
		if f.file == nil {
			h.Console.Write(buf)
			return uintptr(want - n)
		}
		if f.mode < sys.ModeReadWrite {
			return h.fail(sys.EBADF)
		}
		if f.mode >= sys.ModeAppend {
			f.pos = len(f.file.Data)
		}
		if end := f.pos + n; end > len(f.file.Data) {
			f.file.Data = append(f.file.Data, make([]byte, end-len(f.file.Data))...)
		}
		copy(f.file.Data[f.pos:], buf)
		f.pos += n
		return uintptr(want - n)

	case sys.OpRead:
		f, ok := h.handles[int(c.Words[0])]
		if !ok {
			return h.fail(sys.EBADF)
		}
		want := int(c.Words[2])
		buf := unsafe.Slice((*byte)(ptr(p, 1)), want)[:h.limit(want)]
		var n int
		if f.file == nil {
			n = copy(buf, h.Input)
			h.Input = h.Input[n:]
		} else if f.pos < len(f.file.Data) {
			n = copy(buf, f.file.Data[f.pos:])
			f.pos += n
		}
		c.Data = append(c.Data, buf[:n]...)
		return uintptr(want - n)

	case sys.OpReadC:
		if len(h.Input) == 0 {
			return h.fail(sys.EIO)
		}
		b := h.Input[0]
		h.Input = h.Input[1:]
		return uintptr(b)

	case sys.OpIsError:
		if int(c.Words[0]) < 0 {
			return 1
		}
		return 0

	case sys.OpIsTTY:
		f, ok := h.handles[int(c.Words[0])]
		if !ok {
			return h.fail(sys.EBADF)
		}
		if f.file == nil {
			return 1
		}
		return 0

	case sys.OpSeek:
		f, ok := h.handles[int(c.Words[0])]
		if !ok {
			return h.fail(sys.EBADF)
		}
		if f.file == nil {
			return h.fail(sys.ESPIPE)
		}
		f.pos = int(c.Words[1])
		return 0

	case sys.OpFlen:
		f, ok := h.handles[int(c.Words[0])]
		if !ok {
			return h.fail(sys.EBADF)
		}
		if f.file == nil {
			return h.fail(sys.ESPIPE)
		}
		return uintptr(len(f.file.Data))

	case sys.OpTmpNam:
		name := "tmp" + strconv.FormatUint(uint64(c.Words[1]), 10)
		if uintptr(len(name)) >= c.Words[2] {
			return h.fail(sys.ENAMETOOLONG)
		}
		buf := unsafe.Slice((*byte)(ptr(p, 0)), c.Words[2])
		buf[copy(buf, name)] = 0
		return 0

	case sys.OpRemove:
		name, ok := h.str(c, ptr(p, 0), c.Words[1])
		if !ok {
			return h.fail(sys.EINVAL)
		}
		if _, ok := h.Files[name]; !ok {
			return h.fail(sys.ENOENT)
		}
		delete(h.Files, name)
		return 0

	case sys.OpRename:
		oldname, ok1 := h.str(c, ptr(p, 0), c.Words[1])
		newname, ok2 := h.str(c, ptr(p, 2), c.Words[3])
		if !ok1 || !ok2 {
			return h.fail(sys.EINVAL)
		}
		f, ok := h.Files[oldname]
		if !ok {
			return h.fail(sys.ENOENT)
		}
		delete(h.Files, oldname)
		h.Files[newname] = f
		return 0

	case sys.OpClock:
		return h.Clock

	case sys.OpTime:
		return h.Time

	case sys.OpSystem:
		cmd, ok := h.str(c, ptr(p, 0), c.Words[1])
		if !ok {
			return h.fail(sys.EINVAL)
		}
		if h.System == nil {
			return h.fail(sys.ENOSYS)
		}
		return uintptr(h.System(cmd))

	case sys.OpErrno:
		return uintptr(h.Errno)

	case sys.OpGetCmdline:
		if uintptr(len(h.Cmdline)) >= c.Words[1] {
			return h.fail(sys.ENAMETOOLONG)
		}
		buf := unsafe.Slice((*byte)(ptr(p, 0)), c.Words[1])
		buf[copy(buf, h.Cmdline)] = 0
		*(*uintptr)(unsafe.Add(p, wordSize)) = uintptr(len(h.Cmdline))
		return 0

	case sys.OpHeapInfo:
		*(*sys.HeapInfo)(ptr(p, 0)) = h.Heap
		return 0

	case sys.OpExit:
		if sys.Is64 {
			h.Exited = &Exit{op, sys.Reason(c.Words[0]), c.Words[1]}
		} else {
			h.Exited = &Exit{op, sys.Reason(arg.Word()), 0}
		}
		return 0

	case sys.OpExitExtended:
		h.Exited = &Exit{op, sys.Reason(c.Words[0]), c.Words[1]}
		return 0

	case sys.OpElapsed:
		*(*uint64)(p) = h.Ticks
		return 0

	case sys.OpTickFreq:
		return h.TickFreq
	}
	return h.fail(sys.ENOSYS)
}

func (h *Host) limit(n int) int {
	if h.MaxTransfer > 0 && n > h.MaxTransfer {
		return h.MaxTransfer
	}
	return n
}

func (h *Host) open(name string, mode sys.OpenMode) uintptr {
	hd := &handle{name: name, mode: mode}
	if name != ":tt" {
		f, ok := h.Files[name]
		switch {
		case mode >= sys.ModeWrite && mode < sys.ModeAppend:
			f = &File{}
			h.Files[name] = f
		case mode >= sys.ModeAppend && !ok:
			f = &File{}
			h.Files[name] = f
		case !ok:
			return h.fail(sys.ENOENT)
		}
		hd.file = f
	}
	fd := h.nextFd
	h.nextFd++
	h.handles[fd] = hd
	return uintptr(fd)
}
