package disasm

import (
	"testing"

	"github.com/badlydrawnrod/owl2820/pkg/asm"
	"github.com/badlydrawnrod/owl2820/pkg/isa"
)

func assembleOne(t *testing.T, build func(a *asm.Assembler)) uint32 {
	t.Helper()
	a := asm.New()
	build(a)
	code, err := a.Code()
	if err != nil {
		t.Fatal(err)
	}
	var word uint32
	for i := 0; i < 4; i++ {
		word |= uint32(code[i]) << (8 * i)
	}
	return word
}

func TestDisassembleBasic(t *testing.T) {
	cases := []struct {
		name  string
		build func(a *asm.Assembler)
		want  string
	}{
		{"add", func(a *asm.Assembler) { a.Add(isa.A0, isa.A1, isa.A2) }, "add a0, a1, a2"},
		{"beq", func(a *asm.Assembler) { a.Beq(isa.T0, isa.T1, 16) }, "beq t0, t1, 16"},
		{"lw", func(a *asm.Assembler) { a.Lw(isa.A0, 4, isa.Sp) }, "lw a0, 4(sp)"},
		{"sw", func(a *asm.Assembler) { a.Sw(isa.A0, 4, isa.Sp) }, "sw a0, 4(sp)"},
		{"ecall", func(a *asm.Assembler) { a.Ecall() }, "ecall"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			word := assembleOne(t, c.build)
			got := Disassemble(word)
			if got != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestDisassemblePeepholesAddiToLiAndMv(t *testing.T) {
	liWord := assembleOne(t, func(a *asm.Assembler) { a.Addi(isa.A0, isa.Zero, 42) })
	if got, want := Disassemble(liWord), "li a0, 42"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	mvWord := assembleOne(t, func(a *asm.Assembler) { a.Addi(isa.A1, isa.A0, 0) })
	if got, want := Disassemble(mvWord), "mv a1, a0"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	addiWord := assembleOne(t, func(a *asm.Assembler) { a.Addi(isa.A1, isa.A0, 3) })
	if got, want := Disassemble(addiWord), "addi a1, a0, 3"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDisassemblePeepholesJalrToRet(t *testing.T) {
	retWord := assembleOne(t, func(a *asm.Assembler) { a.Jalr(isa.Zero, 0, isa.Ra) })
	if got, want := Disassemble(retWord), "ret"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	jalrWord := assembleOne(t, func(a *asm.Assembler) { a.Jalr(isa.A0, 4, isa.A1) })
	if got, want := Disassemble(jalrWord), "jalr a0, 4(a1)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDisassemblerAccumulatesMultipleLines(t *testing.T) {
	d := New()
	isa.Dispatch(d, assembleOne(t, func(a *asm.Assembler) { a.Li(isa.A0, 1) }))
	isa.Dispatch(d, assembleOne(t, func(a *asm.Assembler) { a.Ecall() }))
	if got, want := len(d.Lines()), 2; got != want {
		t.Fatalf("got %d lines, want %d", got, want)
	}
	if got, want := d.String(), "li a0, 1\necall"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDisassembleIllegal(t *testing.T) {
	d := New()
	d.Illegal(0xdeadbeef)
	if got, want := d.String(), ".word 0xdeadbeef  # illegal"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
