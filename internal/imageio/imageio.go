// Package imageio loads and saves the raw binary images the VM, the
// assembler, and the disassembler all exchange: a flat sequence of
// little-endian 32-bit words with no header and no relocations, laid
// out starting at address zero. Reading past the end of a short image
// leaves the remainder zeroed, which decodes as a run of Illegal
// instructions rather than an error — the same "ran off the end of the
// program" behavior a zero-filled memory buffer already gives for free.
package imageio

import (
	"fmt"
	"io"
	"os"

	"github.com/badlydrawnrod/owl2820/pkg/membuf"
)

// Load reads an entire image file into a byte slice sized to hold it.
func Load(path string) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: %w", err)
	}
	return buf, nil
}

// LoadInto reads an image from r into a buffer of exactly size bytes,
// zero-padding or truncating as needed. size is typically the VM's
// configured memory size.
func LoadInto(r io.Reader, size uint32) ([]byte, error) {
	buf := make([]byte, size)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("imageio: %w", err)
	}
	_ = n
	return buf, nil
}

// Save writes code as a raw image file, truncating or creating path.
func Save(path string, code []byte) error {
	if err := os.WriteFile(path, code, 0o644); err != nil {
		return fmt.Errorf("imageio: %w", err)
	}
	return nil
}

// WordCount reports how many whole 32-bit words fit in an image of the
// given byte length; trailing bytes that do not fill a word are not
// counted.
func WordCount(buf []byte) uint32 {
	return uint32(len(buf)) / 4
}

// ReadWordAt reads the little-endian word at the given byte offset into
// buf, returning 0 past the end rather than erroring — consistent with
// the zero-padding behavior LoadInto applies.
func ReadWordAt(buf []byte, offset uint32) uint32 {
	if uint64(offset)+4 > uint64(len(buf)) {
		return 0
	}
	return membuf.Read32(buf, offset)
}
