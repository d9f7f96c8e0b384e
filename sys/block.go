package sys

import (
	"errors"
	"strings"
	"unsafe"

	"github.com/clktmr/semihosting/debug"
)

var ErrInvalidArg = errors.New("semihosting: invalid argument")

// Block is a validated argument for a single semihosting call. It is built
// by one of the constructors in this file, which lay out the parameter block
// exactly as the host expects it for the respective operation.
//
// A Block is valid for one call. Buffers referenced by the block must not be
// modified by other goroutines or harts until the call returns.
type Block struct {
	op  Op
	arg Arg
	n   int // words behind arg, 0 if arg isn't a word block
}

func (b Block) Op() Op   { return b.op }
func (b Block) Arg() Arg { return b.arg }

// Len returns the number of machine words in the parameter block.
func (b Block) Len() int { return b.n }

// Word returns the i-th word of the parameter block. Some operations return
// values by modifying their parameter block.
func (b Block) Word(i int) uintptr {
	debug.Assert(i >= 0 && i < b.n, "sys: block word out of range")
	return *(*uintptr)(unsafe.Add(b.arg.ptr, uintptr(i)*wordSize))
}

// Call performs the call on ch and returns the raw result.
func (b Block) Call(ch Channel) uintptr {
	return ch.Call(b.op, b.arg)
}

func block[T any](op Op, p *T) Block {
	return Block{op: op, arg: Ptr(unsafe.Pointer(p)), n: int(unsafe.Sizeof(*p) / wordSize)}
}

// Parameter block layouts. Pointers are kept in pointer typed fields, which
// have the size of a machine word.
type (
	handleParams struct{ fd uintptr }
	openParams   struct {
		name *byte
		mode uintptr
		len  uintptr
	}
	transferParams struct {
		fd  uintptr
		buf *byte
		len uintptr
	}
	seekParams struct{ fd, pos uintptr }
	bufParams  struct {
		buf *byte
		len uintptr
	}
	tmpnamParams struct {
		buf *byte
		id  uintptr
		len uintptr
	}
	renameParams struct {
		old    *byte
		oldLen uintptr
		new    *byte
		newLen uintptr
	}
	exitParams     struct{ reason, subcode uintptr }
	heapInfoParams struct{ info *HeapInfo }
)

// HeapInfo is filled in by the host for SYS_HEAPINFO. Zero values mean the
// host doesn't know the respective bound.
type HeapInfo struct {
	HeapBase   uintptr
	HeapLimit  uintptr
	StackBase  uintptr
	StackLimit uintptr
}

// cstring returns a NUL terminated copy of s and its length without the
// terminator.
func cstring(s string) (*byte, uintptr, error) {
	if s == "" || strings.IndexByte(s, 0) >= 0 {
		return nil, 0, ErrInvalidArg
	}
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return &buf[0], uintptr(len(s)), nil
}

func handle(fd int) (uintptr, error) {
	if fd < 0 {
		return 0, ErrInvalidArg
	}
	return uintptr(fd), nil
}

// OpenBlock opens the host file name. The special name ":tt" refers to the
// host's console, opened for reading with mode r and for writing with mode w
// (stdout) or a (stderr).
func OpenBlock(name string, mode OpenMode) (Block, error) {
	if !mode.Valid() {
		return Block{}, ErrInvalidArg
	}
	p, n, err := cstring(name)
	if err != nil {
		return Block{}, err
	}
	return block(OpOpen, &openParams{p, uintptr(mode), n}), nil
}

func CloseBlock(fd int) (Block, error) {
	return handleBlock(OpClose, fd)
}

func IsTTYBlock(fd int) (Block, error) {
	return handleBlock(OpIsTTY, fd)
}

func FlenBlock(fd int) (Block, error) {
	return handleBlock(OpFlen, fd)
}

func handleBlock(op Op, fd int) (Block, error) {
	h, err := handle(fd)
	if err != nil {
		return Block{}, err
	}
	return block(op, &handleParams{h}), nil
}

// IsErrorBlock asks the host whether status, a value returned by an earlier
// call, is an error code.
func IsErrorBlock(status uintptr) Block {
	return block(OpIsError, &handleParams{status})
}

// WriteCBlock writes the byte at c to the console.
func WriteCBlock(c *byte) (Block, error) {
	if c == nil {
		return Block{}, ErrInvalidArg
	}
	return Block{op: OpWriteC, arg: Ptr(unsafe.Pointer(c))}, nil
}

// Write0Block writes s up to the first NUL byte to the console. The host
// reads until the terminator, so s must contain one. An empty message is a
// slice holding only the terminator.
func Write0Block(s []byte) (Block, error) {
	for i := range s {
		if s[i] == 0 {
			return Block{op: OpWrite0, arg: Ptr(unsafe.Pointer(&s[0]))}, nil
		}
	}
	return Block{}, ErrInvalidArg
}

// WriteBlock writes p to the host file fd. The host returns the number of
// bytes it did not write.
func WriteBlock(fd int, p []byte) (Block, error) {
	return transferBlock(OpWrite, fd, p)
}

// ReadBlock reads into p from the host file fd. The host returns the number
// of bytes it did not read.
func ReadBlock(fd int, p []byte) (Block, error) {
	return transferBlock(OpRead, fd, p)
}

func transferBlock(op Op, fd int, p []byte) (Block, error) {
	h, err := handle(fd)
	if err != nil {
		return Block{}, err
	}
	return block(op, &transferParams{h, unsafe.SliceData(p), uintptr(len(p))}), nil
}

// SeekBlock moves the position of fd to the absolute offset pos.
func SeekBlock(fd int, pos int64) (Block, error) {
	h, err := handle(fd)
	if err != nil {
		return Block{}, err
	}
	if pos < 0 || uint64(pos) > uint64(^uintptr(0)>>1) {
		return Block{}, ErrInvalidArg
	}
	return block(OpSeek, &seekParams{h, uintptr(pos)}), nil
}

// TmpNamBlock asks the host for a temporary file name identified by id,
// written NUL terminated into buf.
func TmpNamBlock(buf []byte, id int) (Block, error) {
	if len(buf) == 0 || id < 0 || id > 255 {
		return Block{}, ErrInvalidArg
	}
	return block(OpTmpNam, &tmpnamParams{&buf[0], uintptr(id), uintptr(len(buf))}), nil
}

func RemoveBlock(name string) (Block, error) {
	p, n, err := cstring(name)
	if err != nil {
		return Block{}, err
	}
	return block(OpRemove, &bufParams{p, n}), nil
}

func RenameBlock(oldname, newname string) (Block, error) {
	oldp, oldn, err := cstring(oldname)
	if err != nil {
		return Block{}, err
	}
	newp, newn, err := cstring(newname)
	if err != nil {
		return Block{}, err
	}
	return block(OpRename, &renameParams{oldp, oldn, newp, newn}), nil
}

// SystemBlock runs cmd in the host's shell.
func SystemBlock(cmd string) (Block, error) {
	p, n, err := cstring(cmd)
	if err != nil {
		return Block{}, err
	}
	return block(OpSystem, &bufParams{p, n}), nil
}

// GetCmdlineBlock asks for the command line the program was started with.
// On success the host writes it NUL terminated into buf and stores its
// length in word 1 of the block.
func GetCmdlineBlock(buf []byte) (Block, error) {
	if len(buf) == 0 {
		return Block{}, ErrInvalidArg
	}
	return block(OpGetCmdline, &bufParams{&buf[0], uintptr(len(buf))}), nil
}

// HeapInfoBlock returns the block and the HeapInfo the host will fill in.
func HeapInfoBlock() (Block, *HeapInfo) {
	info := new(HeapInfo)
	return block(OpHeapInfo, &heapInfoParams{info}), info
}

// ExitBlock reports to the host that the program stopped with reason. On
// RV32 the reason is passed in a1 directly and subcode is not transmitted,
// use [ExitExtendedBlock] there.
func ExitBlock(reason Reason, subcode int) Block {
	if !Is64 {
		return Block{op: OpExit, arg: Value(uintptr(reason))}
	}
	return block(OpExit, &exitParams{uintptr(reason), uintptr(subcode)})
}

// ExitExtendedBlock is like ExitBlock but always passes a parameter block.
func ExitExtendedBlock(reason Reason, subcode int) Block {
	return block(OpExitExtended, &exitParams{uintptr(reason), uintptr(subcode)})
}

// ElapsedBlock returns the block and the 64-bit tick counter the host will
// write to.
func ElapsedBlock() (Block, *uint64) {
	ticks := new(uint64)
	return block(OpElapsed, ticks), ticks
}

func ReadCBlock() Block    { return Block{op: OpReadC} }
func ClockBlock() Block    { return Block{op: OpClock} }
func TimeBlock() Block     { return Block{op: OpTime} }
func ErrnoBlock() Block    { return Block{op: OpErrno} }
func TickFreqBlock() Block { return Block{op: OpTickFreq} }
