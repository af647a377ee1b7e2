package vm

import (
	"fmt"
	"io"
	"os"
)

// Syscall selectors, read from register a7 (§6). These are the base
// ABI's defaults; a VM's actual selector assignment lives in its
// Selectors table (see SyscallTable), which an embedder can remap
// (internal/config loads one from TOML) without recompiling.
const (
	SyscallExit     = 0
	SyscallPrintFib = 1
)

// SyscallTable maps the defined syscalls to the a7 selector values that
// invoke them. The VM consults this table in Ecall instead of the
// SyscallExit/SyscallPrintFib constants directly, so an embedder can
// remap selector numbers by constructing a different table.
type SyscallTable struct {
	Exit     uint32
	PrintFib uint32
}

// DefaultSyscallTable returns the base ABI's selector assignment (§6).
func DefaultSyscallTable() SyscallTable {
	return SyscallTable{Exit: SyscallExit, PrintFib: SyscallPrintFib}
}

// SyscallHandler implements the host side of defined syscalls. It is
// injected into the VM the same way the teacher's executor accepted a
// pluggable serial TTY: the VM core never formats output itself, it
// only decides which selector fires and leaves the host-visible
// effect to the handler.
type SyscallHandler interface {
	// Exit is called for the VM's Selectors.Exit value (0 by default)
	// with the guest's exit status (x[a0]). The VM halts immediately
	// afterwards regardless of what Exit does.
	Exit(status uint32)

	// PrintFib is called for the VM's Selectors.PrintFib value (1 by
	// default) with x[a0], x[a1].
	PrintFib(i, value uint32)
}

// StdoutSyscalls is the default SyscallHandler, printing to an
// io.Writer (os.Stdout unless overridden).
type StdoutSyscalls struct {
	Out io.Writer
}

// NewStdoutSyscalls returns a StdoutSyscalls writing to os.Stdout.
func NewStdoutSyscalls() *StdoutSyscalls {
	return &StdoutSyscalls{Out: os.Stdout}
}

// Exit implements SyscallHandler.
func (s *StdoutSyscalls) Exit(status uint32) {
	fmt.Fprintf(s.writer(), "exit: %d\n", int32(status))
}

// PrintFib implements SyscallHandler.
func (s *StdoutSyscalls) PrintFib(i, value uint32) {
	fmt.Fprintf(s.writer(), "fib(%d) = %d\n", i, value)
}

func (s *StdoutSyscalls) writer() io.Writer {
	if s.Out == nil {
		return os.Stdout
	}
	return s.Out
}

var _ SyscallHandler = (*StdoutSyscalls)(nil)
