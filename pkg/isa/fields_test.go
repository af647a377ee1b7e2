package isa

import "testing"

func TestFieldRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		r0   uint32
		r1   uint32
		r2   uint32
	}{
		{"zero", 0, 0, 0},
		{"max", 31, 31, 31},
		{"mixed", 5, 17, 29},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			word := EncodeR0(c.r0) | EncodeR1(c.r1) | EncodeR2(c.r2)
			if got := DecodeR0(word); got != c.r0 {
				t.Errorf("r0: got %d, want %d", got, c.r0)
			}
			if got := DecodeR1(word); got != c.r1 {
				t.Errorf("r1: got %d, want %d", got, c.r1)
			}
			if got := DecodeR2(word); got != c.r2 {
				t.Errorf("r2: got %d, want %d", got, c.r2)
			}
		})
	}
}

func TestImm12RoundTrip(t *testing.T) {
	for _, imm := range []int32{0, 1, -1, 2047, -2048} {
		word := EncodeImm12(imm)
		if got := DecodeImm12(word); got != imm {
			t.Errorf("imm12 %d: got %d", imm, got)
		}
	}
}

func TestOffs12RoundTrip(t *testing.T) {
	for _, off := range []int32{0, 2, -2, 4094, -4096} {
		word := EncodeOffs12(off)
		if got := DecodeOffs12(word); got != off {
			t.Errorf("offs12 %d: got %d", off, got)
		}
	}
}

func TestOffs20RoundTrip(t *testing.T) {
	for _, off := range []int32{0, 2, -2, 1048574, -1048576} {
		word := EncodeOffs20(off)
		if got := DecodeOffs20(word); got != off {
			t.Errorf("offs20 %d: got %d", off, got)
		}
	}
}

func TestDecodeUimm20(t *testing.T) {
	// Lui rd, 0xFFFFF000 -> x[rd] = 0xFFFFF000 exactly (boundary test).
	word := EncodeOpcode(Lui) | EncodeR0(10) | uint32(0xfffff000)
	if got := DecodeUimm20(word); got != 0xfffff000 {
		t.Errorf("got 0x%08x, want 0xfffff000", got)
	}
}

func TestOpcodeRoundTrip(t *testing.T) {
	for op := Illegal; op < numOpcodes; op++ {
		word := EncodeOpcode(op)
		if got := DecodeOpcode(word); got != op {
			t.Errorf("opcode %v: got %v", op, got)
		}
		if !op.Valid() {
			t.Errorf("opcode %v should be valid", op)
		}
	}
}

func TestOpcodeInvalid(t *testing.T) {
	op := Opcode(numOpcodes + 10)
	if op.Valid() {
		t.Errorf("opcode %d should not be valid", op)
	}
	if op.String() != "illegal" {
		t.Errorf("got %q, want \"illegal\"", op.String())
	}
}

func TestRegisterNames(t *testing.T) {
	cases := []struct {
		idx  uint32
		name string
	}{
		{Zero, "zero"},
		{Ra, "ra"},
		{Sp, "sp"},
		{A0, "a0"},
		{S11, "s11"},
		{T6, "t6"},
	}
	for _, c := range cases {
		if got := RegisterName(c.idx); got != c.name {
			t.Errorf("register %d: got %q, want %q", c.idx, got, c.name)
		}
		idx, ok := RegisterByName(c.name)
		if !ok || idx != c.idx {
			t.Errorf("RegisterByName(%q): got (%d, %v), want (%d, true)", c.name, idx, ok, c.idx)
		}
	}
}

func TestRegisterNameOutOfRange(t *testing.T) {
	if got := RegisterName(NumRegisters); got != "?" {
		t.Errorf("got %q, want \"?\"", got)
	}
	if _, ok := RegisterByName("not-a-register"); ok {
		t.Error("expected ok=false for unknown register name")
	}
}
