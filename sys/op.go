package sys

// Op is a semihosting operation number. The numbers are fixed by the
// semihosting protocol and shared with every compliant debug host.
type Op uintptr

const (
	OpOpen         Op = 0x01
	OpClose        Op = 0x02
	OpWriteC       Op = 0x03
	OpWrite0       Op = 0x04
	OpWrite        Op = 0x05
	OpRead         Op = 0x06
	OpReadC        Op = 0x07
	OpIsError      Op = 0x08
	OpIsTTY        Op = 0x09
	OpSeek         Op = 0x0a
	OpFlen         Op = 0x0c
	OpTmpNam       Op = 0x0d
	OpRemove       Op = 0x0e
	OpRename       Op = 0x0f
	OpClock        Op = 0x10
	OpTime         Op = 0x11
	OpSystem       Op = 0x12
	OpErrno        Op = 0x13
	OpGetCmdline   Op = 0x15
	OpHeapInfo     Op = 0x16
	OpExit         Op = 0x18
	OpExitExtended Op = 0x20
	OpElapsed      Op = 0x30
	OpTickFreq     Op = 0x31
)

var opNames = [...]string{
	OpOpen:         "SYS_OPEN",
	OpClose:        "SYS_CLOSE",
	OpWriteC:       "SYS_WRITEC",
	OpWrite0:       "SYS_WRITE0",
	OpWrite:        "SYS_WRITE",
	OpRead:         "SYS_READ",
	OpReadC:        "SYS_READC",
	OpIsError:      "SYS_ISERROR",
	OpIsTTY:        "SYS_ISTTY",
	OpSeek:         "SYS_SEEK",
	OpFlen:         "SYS_FLEN",
	OpTmpNam:       "SYS_TMPNAM",
	OpRemove:       "SYS_REMOVE",
	OpRename:       "SYS_RENAME",
	OpClock:        "SYS_CLOCK",
	OpTime:         "SYS_TIME",
	OpSystem:       "SYS_SYSTEM",
	OpErrno:        "SYS_ERRNO",
	OpGetCmdline:   "SYS_GET_CMDLINE",
	OpHeapInfo:     "SYS_HEAPINFO",
	OpExit:         "SYS_EXIT",
	OpExitExtended: "SYS_EXIT_EXTENDED",
	OpElapsed:      "SYS_ELAPSED",
	OpTickFreq:     "SYS_TICKFREQ",
}

// Valid reports whether op is part of the operation catalog.
func (op Op) Valid() bool {
	return op < Op(len(opNames)) && opNames[op] != ""
}

func (op Op) String() string {
	if op.Valid() {
		return opNames[op]
	}
	return "SYS_UNKNOWN"
}

// OpenMode selects the fopen() mode string the host uses for SYS_OPEN.
type OpenMode uintptr

const (
	ModeRead             OpenMode = iota // r
	ModeReadBinary                       // rb
	ModeReadWrite                        // r+
	ModeReadWriteBinary                  // r+b
	ModeWrite                            // w
	ModeWriteBinary                      // wb
	ModeWriteRead                        // w+
	ModeWriteReadBinary                  // w+b
	ModeAppend                           // a
	ModeAppendBinary                     // ab
	ModeAppendRead                       // a+
	ModeAppendReadBinary                 // a+b
)

var modeNames = [...]string{"r", "rb", "r+", "r+b", "w", "wb", "w+", "w+b", "a", "ab", "a+", "a+b"}

func (m OpenMode) Valid() bool { return m < OpenMode(len(modeNames)) }

func (m OpenMode) String() string {
	if m.Valid() {
		return modeNames[m]
	}
	return "invalid"
}

// Reason is an ADP_Stopped_* code reported to the host by SYS_EXIT and
// SYS_EXIT_EXTENDED.
type Reason uintptr

// Hardware vector reasons
const (
	ReasonBranchThroughZero Reason = 0x20000 + iota
	ReasonUndefinedInstr
	ReasonSoftwareInterrupt
	ReasonPrefetchAbort
	ReasonDataAbort
	ReasonAddressException
	ReasonIRQ
	ReasonFIQ
)

// Software reasons
const (
	ReasonBreakPoint Reason = 0x20020 + iota
	ReasonWatchPoint
	ReasonStepComplete
	ReasonRunTimeErrorUnknown
	ReasonInternalError
	ReasonUserInterruption
	ReasonApplicationExit
	ReasonStackOverflow
	ReasonDivisionByZero
	ReasonOSSpecific
)

var reasonNames = map[Reason]string{
	ReasonBranchThroughZero:   "BranchThroughZero",
	ReasonUndefinedInstr:      "UndefinedInstr",
	ReasonSoftwareInterrupt:   "SoftwareInterrupt",
	ReasonPrefetchAbort:       "PrefetchAbort",
	ReasonDataAbort:           "DataAbort",
	ReasonAddressException:    "AddressException",
	ReasonIRQ:                 "IRQ",
	ReasonFIQ:                 "FIQ",
	ReasonBreakPoint:          "BreakPoint",
	ReasonWatchPoint:          "WatchPoint",
	ReasonStepComplete:        "StepComplete",
	ReasonRunTimeErrorUnknown: "RunTimeErrorUnknown",
	ReasonInternalError:       "InternalError",
	ReasonUserInterruption:    "UserInterruption",
	ReasonApplicationExit:     "ApplicationExit",
	ReasonStackOverflow:       "StackOverflow",
	ReasonDivisionByZero:      "DivisionByZero",
	ReasonOSSpecific:          "OSSpecific",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return "ADP_Stopped_" + name
	}
	return "ADP_Stopped_Unknown"
}
