package vm

import (
	"fmt"
	"net"
)

// Syscall 2 is not part of the base ABI (§6 defines only Exit and
// PrintFib); it is the kind of embedder-defined selector the spec
// allows ("additional selectors may be defined by the embedder"). It
// is implemented here as a synchronous console-putchar call: a0 is a
// byte value written to the attached console connection.
const SyscallConsolePutchar = 2

// ExtendedSyscallHandler is an optional extension of SyscallHandler.
// The VM type-asserts for it after failing to match a base selector,
// the same way e.g. http.Flusher is type-asserted out of a
// http.ResponseWriter: a handler that doesn't implement it simply
// leaves unknown selectors as errors.
type ExtendedSyscallHandler interface {
	Other(selector, a0, a1 uint32) error
}

// SerialTTY is a console device reachable over a single TCP control
// connection. Unlike a real interrupt-driven UART it is purely
// synchronous, matching §5: there is no interrupt controller in this
// VM, so a console write simply blocks until the byte is delivered.
//
// Construct one with TTYAcceptConn, defer Close, and store it as the
// VM's Syscalls (or embed it in a handler that also implements Exit
// and PrintFib).
type SerialTTY struct {
	conn net.Conn
	*StdoutSyscalls
}

// TTYAcceptConn waits for a controlling TCP connection to attach to
// the console, then returns a SerialTTY wrapping it. Exit and
// PrintFib are delegated to an embedded StdoutSyscalls so a SerialTTY
// is a complete SyscallHandler on its own.
func TTYAcceptConn() (*SerialTTY, error) {
	nl, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	conn, err := nl.Accept()
	if err != nil {
		return nil, err
	}
	return &SerialTTY{conn: conn, StdoutSyscalls: NewStdoutSyscalls()}, nil
}

// Close closes the underlying connection.
func (tty *SerialTTY) Close() error {
	return tty.conn.Close()
}

// LocalAddr returns the address the console is listening on.
func (tty *SerialTTY) LocalAddr() net.Addr {
	return tty.conn.LocalAddr()
}

// Other implements ExtendedSyscallHandler for SyscallConsolePutchar.
func (tty *SerialTTY) Other(selector, a0, a1 uint32) error {
	if selector != SyscallConsolePutchar {
		return fmt.Errorf("%w: %d", ErrUnknownSyscall, selector)
	}
	_, err := tty.conn.Write([]byte{byte(a0)})
	return err
}

var (
	_ SyscallHandler         = (*SerialTTY)(nil)
	_ ExtendedSyscallHandler = (*SerialTTY)(nil)
)
