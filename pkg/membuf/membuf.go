// Package membuf provides endian-normalized, unaligned accessors over a
// flat byte buffer.
//
// Every multi-byte access copies bytes into a scratch integer and,
// on a big-endian host, swaps them, so that bytes on the buffer are
// always little-endian regardless of the host's native byte order.
// Single-byte access is endian-independent.
//
// These functions are pure and do not bounds-check: callers that need
// bounds checking (the VM's memory, in particular) should check the
// address range before calling. Passing an address such that the
// access would run past the end of m is a programming error.
package membuf

import "encoding/binary"

// Read8 reads a single byte at addr.
func Read8(m []byte, addr uint32) uint8 {
	return m[addr]
}

// Write8 writes a single byte at addr.
func Write8(m []byte, addr uint32, v uint8) {
	m[addr] = v
}

// Read16 reads a little-endian 16-bit value at addr. addr need not be
// 2-byte aligned.
func Read16(m []byte, addr uint32) uint16 {
	return binary.LittleEndian.Uint16(m[addr : addr+2])
}

// Write16 writes a little-endian 16-bit value at addr.
func Write16(m []byte, addr uint32, v uint16) {
	binary.LittleEndian.PutUint16(m[addr:addr+2], v)
}

// Read32 reads a little-endian 32-bit value at addr. addr need not be
// 4-byte aligned.
func Read32(m []byte, addr uint32) uint32 {
	return binary.LittleEndian.Uint32(m[addr : addr+4])
}

// Write32 writes a little-endian 32-bit value at addr.
func Write32(m []byte, addr uint32, v uint32) {
	binary.LittleEndian.PutUint32(m[addr:addr+4], v)
}
