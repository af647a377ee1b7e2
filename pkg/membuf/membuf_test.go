package membuf

import "testing"

func TestReadWrite8(t *testing.T) {
	buf := make([]byte, 4)
	Write8(buf, 1, 0xab)
	if got := Read8(buf, 1); got != 0xab {
		t.Errorf("got 0x%x, want 0xab", got)
	}
}

func TestReadWrite16Unaligned(t *testing.T) {
	buf := make([]byte, 8)
	Write16(buf, 3, 0xbeef)
	if got := Read16(buf, 3); got != 0xbeef {
		t.Errorf("got 0x%x, want 0xbeef", got)
	}
}

func TestReadWrite32Unaligned(t *testing.T) {
	buf := make([]byte, 9)
	Write32(buf, 1, 0xdeadbeef)
	if got := Read32(buf, 1); got != 0xdeadbeef {
		t.Errorf("got 0x%x, want 0xdeadbeef", got)
	}
}

func TestLittleEndianByteOrder(t *testing.T) {
	buf := make([]byte, 4)
	Write32(buf, 0, 0x01020304)
	want := []byte{0x04, 0x03, 0x02, 0x01}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("byte %d: got 0x%x, want 0x%x", i, buf[i], want[i])
		}
	}
}
