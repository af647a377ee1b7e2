package vm

import (
	"errors"
	"fmt"

	"github.com/badlydrawnrod/owl2820/pkg/membuf"
)

// ErrSIGSEGV indicates that a guest memory access fell outside the
// bounds of the memory buffer.
var ErrSIGSEGV = errors.New("vm: segmentation fault")

// ErrMisalignedFetch indicates that an instruction fetch targeted a
// program counter that was not 4-byte aligned. The spec leaves
// unaligned fetch undefined; this implementation treats it as an
// illegal-instruction condition rather than reading garbage.
var ErrMisalignedFetch = errors.New("vm: misaligned instruction fetch")

// Memory is the VM's single contiguous byte buffer. It is
// simultaneously the data memory and, via FetchInstruction, the code
// view of the same bytes: a store through Write32 is visible to the
// next FetchInstruction at the same address, which is what makes
// self-modifying guest code observable.
type Memory struct {
	buf []byte
}

// NewMemory allocates a zeroed memory buffer of the given size in
// bytes.
func NewMemory(size uint32) *Memory {
	return &Memory{buf: make([]byte, size)}
}

// NewMemoryFrom wraps an existing byte slice (e.g. a loaded image)
// instead of allocating a new one.
func NewMemoryFrom(buf []byte) *Memory {
	return &Memory{buf: buf}
}

// Size returns the memory size in bytes.
func (m *Memory) Size() uint32 { return uint32(len(m.buf)) }

// Bytes exposes the raw buffer, for loaders that need to populate it
// directly.
func (m *Memory) Bytes() []byte { return m.buf }

func (m *Memory) inRange(addr uint32, width uint32) bool {
	return uint64(addr)+uint64(width) <= uint64(len(m.buf))
}

// Read8 reads a single byte at addr.
func (m *Memory) Read8(addr uint32) (uint8, error) {
	if !m.inRange(addr, 1) {
		return 0, fmt.Errorf("%w: read8 at 0x%08x", ErrSIGSEGV, addr)
	}
	return membuf.Read8(m.buf, addr), nil
}

// Read16 reads a little-endian 16-bit value at addr, which need not be
// 2-byte aligned.
func (m *Memory) Read16(addr uint32) (uint16, error) {
	if !m.inRange(addr, 2) {
		return 0, fmt.Errorf("%w: read16 at 0x%08x", ErrSIGSEGV, addr)
	}
	return membuf.Read16(m.buf, addr), nil
}

// Read32 reads a little-endian 32-bit value at addr, which need not be
// 4-byte aligned.
func (m *Memory) Read32(addr uint32) (uint32, error) {
	if !m.inRange(addr, 4) {
		return 0, fmt.Errorf("%w: read32 at 0x%08x", ErrSIGSEGV, addr)
	}
	return membuf.Read32(m.buf, addr), nil
}

// Write8 writes a single byte at addr.
func (m *Memory) Write8(addr uint32, v uint8) error {
	if !m.inRange(addr, 1) {
		return fmt.Errorf("%w: write8 at 0x%08x", ErrSIGSEGV, addr)
	}
	membuf.Write8(m.buf, addr, v)
	return nil
}

// Write16 writes a little-endian 16-bit value at addr.
func (m *Memory) Write16(addr uint32, v uint16) error {
	if !m.inRange(addr, 2) {
		return fmt.Errorf("%w: write16 at 0x%08x", ErrSIGSEGV, addr)
	}
	membuf.Write16(m.buf, addr, v)
	return nil
}

// Write32 writes a little-endian 32-bit value at addr.
func (m *Memory) Write32(addr uint32, v uint32) error {
	if !m.inRange(addr, 4) {
		return fmt.Errorf("%w: write32 at 0x%08x", ErrSIGSEGV, addr)
	}
	membuf.Write32(m.buf, addr, v)
	return nil
}

// FetchInstruction reads the 32-bit word at addr for execution. addr
// must be 4-byte aligned; this implementation requires alignment and
// reports ErrMisalignedFetch rather than leaving the behavior
// undefined, per the spec's open question on unaligned fetch.
func (m *Memory) FetchInstruction(addr uint32) (uint32, error) {
	if addr%4 != 0 {
		return 0, fmt.Errorf("%w: pc=0x%08x", ErrMisalignedFetch, addr)
	}
	if !m.inRange(addr, 4) {
		return 0, fmt.Errorf("%w: fetch at 0x%08x", ErrSIGSEGV, addr)
	}
	return membuf.Read32(m.buf, addr), nil
}
