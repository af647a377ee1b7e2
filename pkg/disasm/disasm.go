// Package disasm implements the Owl-2820 disassembler: an isa.Visitor
// backend that appends a formatted mnemonic line to its own buffer for
// every instruction it is handed, instead of executing or re-encoding
// it.
//
// A handful of Owl encodings are peepholed back to the shorthand a
// human reading the output would expect: jalr(zero, 0, ra) prints as
// ret, addi(rd, zero, imm) prints as li rd, imm, and addi(rd, rs, 0)
// prints as mv rd, rs. These are purely cosmetic — the dispatcher still
// called Jalr/Addi, never Ret/Li/Mv — recovering the same shorthand the
// J/Call/Ret/Li/Mv Owl-only opcodes exist to avoid spelling out.
package disasm

import (
	"fmt"
	"strings"

	"github.com/badlydrawnrod/owl2820/pkg/isa"
)

// Disassembler collects one formatted line per dispatched instruction.
type Disassembler struct {
	lines []string
}

// New returns an empty Disassembler.
func New() *Disassembler {
	return &Disassembler{}
}

// Lines returns the formatted instruction lines collected so far.
func (d *Disassembler) Lines() []string {
	return d.lines
}

// String joins the collected lines with newlines, one instruction per
// line.
func (d *Disassembler) String() string {
	return strings.Join(d.lines, "\n")
}

func (d *Disassembler) append(format string, args ...any) {
	d.lines = append(d.lines, fmt.Sprintf(format, args...))
}

func reg(r uint32) string { return isa.RegisterName(r) }

var _ isa.Visitor = (*Disassembler)(nil)

// Register-register ALU.

func (d *Disassembler) Add(r0, r1, r2 uint32) { d.append("add %s, %s, %s", reg(r0), reg(r1), reg(r2)) }
func (d *Disassembler) Sub(r0, r1, r2 uint32) { d.append("sub %s, %s, %s", reg(r0), reg(r1), reg(r2)) }
func (d *Disassembler) Sll(r0, r1, r2 uint32) { d.append("sll %s, %s, %s", reg(r0), reg(r1), reg(r2)) }
func (d *Disassembler) Slt(r0, r1, r2 uint32) { d.append("slt %s, %s, %s", reg(r0), reg(r1), reg(r2)) }
func (d *Disassembler) Sltu(r0, r1, r2 uint32) {
	d.append("sltu %s, %s, %s", reg(r0), reg(r1), reg(r2))
}
func (d *Disassembler) Xor(r0, r1, r2 uint32) { d.append("xor %s, %s, %s", reg(r0), reg(r1), reg(r2)) }
func (d *Disassembler) Srl(r0, r1, r2 uint32) { d.append("srl %s, %s, %s", reg(r0), reg(r1), reg(r2)) }
func (d *Disassembler) Sra(r0, r1, r2 uint32) { d.append("sra %s, %s, %s", reg(r0), reg(r1), reg(r2)) }
func (d *Disassembler) Or(r0, r1, r2 uint32)  { d.append("or %s, %s, %s", reg(r0), reg(r1), reg(r2)) }
func (d *Disassembler) And(r0, r1, r2 uint32) { d.append("and %s, %s, %s", reg(r0), reg(r1), reg(r2)) }

// Immediate shifts.

func (d *Disassembler) Slli(r0, r1, shamt uint32) {
	d.append("slli %s, %s, %d", reg(r0), reg(r1), shamt)
}
func (d *Disassembler) Srli(r0, r1, shamt uint32) {
	d.append("srli %s, %s, %d", reg(r0), reg(r1), shamt)
}
func (d *Disassembler) Srai(r0, r1, shamt uint32) {
	d.append("srai %s, %s, %d", reg(r0), reg(r1), shamt)
}

// Branches.

func (d *Disassembler) Beq(r0, r1 uint32, offs12 int32) {
	d.append("beq %s, %s, %d", reg(r0), reg(r1), offs12)
}
func (d *Disassembler) Bne(r0, r1 uint32, offs12 int32) {
	d.append("bne %s, %s, %d", reg(r0), reg(r1), offs12)
}
func (d *Disassembler) Blt(r0, r1 uint32, offs12 int32) {
	d.append("blt %s, %s, %d", reg(r0), reg(r1), offs12)
}
func (d *Disassembler) Bge(r0, r1 uint32, offs12 int32) {
	d.append("bge %s, %s, %d", reg(r0), reg(r1), offs12)
}
func (d *Disassembler) Bltu(r0, r1 uint32, offs12 int32) {
	d.append("bltu %s, %s, %d", reg(r0), reg(r1), offs12)
}
func (d *Disassembler) Bgeu(r0, r1 uint32, offs12 int32) {
	d.append("bgeu %s, %s, %d", reg(r0), reg(r1), offs12)
}

// Register-immediate ALU. Addi is peepholed to li/mv where the
// operands match the shorthand.

func (d *Disassembler) Addi(r0, r1 uint32, imm12 int32) {
	switch {
	case r1 == isa.Zero:
		d.append("li %s, %d", reg(r0), imm12)
	case imm12 == 0:
		d.append("mv %s, %s", reg(r0), reg(r1))
	default:
		d.append("addi %s, %s, %d", reg(r0), reg(r1), imm12)
	}
}
func (d *Disassembler) Slti(r0, r1 uint32, imm12 int32) {
	d.append("slti %s, %s, %d", reg(r0), reg(r1), imm12)
}
func (d *Disassembler) Sltiu(r0, r1 uint32, imm12 int32) {
	d.append("sltiu %s, %s, %d", reg(r0), reg(r1), imm12)
}
func (d *Disassembler) Xori(r0, r1 uint32, imm12 int32) {
	d.append("xori %s, %s, %d", reg(r0), reg(r1), imm12)
}
func (d *Disassembler) Ori(r0, r1 uint32, imm12 int32) {
	d.append("ori %s, %s, %d", reg(r0), reg(r1), imm12)
}
func (d *Disassembler) Andi(r0, r1 uint32, imm12 int32) {
	d.append("andi %s, %s, %d", reg(r0), reg(r1), imm12)
}

// Loads: Method(dest, offset, base).

func (d *Disassembler) Lb(r0 uint32, imm12 int32, r1 uint32) {
	d.append("lb %s, %d(%s)", reg(r0), imm12, reg(r1))
}
func (d *Disassembler) Lbu(r0 uint32, imm12 int32, r1 uint32) {
	d.append("lbu %s, %d(%s)", reg(r0), imm12, reg(r1))
}
func (d *Disassembler) Lh(r0 uint32, imm12 int32, r1 uint32) {
	d.append("lh %s, %d(%s)", reg(r0), imm12, reg(r1))
}
func (d *Disassembler) Lhu(r0 uint32, imm12 int32, r1 uint32) {
	d.append("lhu %s, %d(%s)", reg(r0), imm12, reg(r1))
}
func (d *Disassembler) Lw(r0 uint32, imm12 int32, r1 uint32) {
	d.append("lw %s, %d(%s)", reg(r0), imm12, reg(r1))
}

// Stores: Method(source, offset, base).

func (d *Disassembler) Sb(r0 uint32, imm12 int32, r1 uint32) {
	d.append("sb %s, %d(%s)", reg(r0), imm12, reg(r1))
}
func (d *Disassembler) Sh(r0 uint32, imm12 int32, r1 uint32) {
	d.append("sh %s, %d(%s)", reg(r0), imm12, reg(r1))
}
func (d *Disassembler) Sw(r0 uint32, imm12 int32, r1 uint32) {
	d.append("sw %s, %d(%s)", reg(r0), imm12, reg(r1))
}

func (d *Disassembler) Fence() { d.append("fence") }

// Jalr is peepholed to ret when it matches jalr(zero, 0, ra), which is
// exactly how Ret is defined to behave.
func (d *Disassembler) Jalr(r0 uint32, offs12 int32, r1 uint32) {
	if r0 == isa.Zero && offs12 == 0 && r1 == isa.Ra {
		d.append("ret")
		return
	}
	d.append("jalr %s, %d(%s)", reg(r0), offs12, reg(r1))
}

func (d *Disassembler) Jal(r0 uint32, offs20 int32) {
	d.append("jal %s, %d", reg(r0), offs20)
}

func (d *Disassembler) Lui(r0, uimm20 uint32)   { d.append("lui %s, 0x%x", reg(r0), uimm20) }
func (d *Disassembler) Auipc(r0, uimm20 uint32) { d.append("auipc %s, 0x%x", reg(r0), uimm20) }

// Owl-only shortcuts.

func (d *Disassembler) J(offs20 int32)    { d.append("j %d", offs20) }
func (d *Disassembler) Call(offs20 int32) { d.append("call %d", offs20) }
func (d *Disassembler) Ret()              { d.append("ret") }
func (d *Disassembler) Li(r0 uint32, imm12 int32) {
	d.append("li %s, %d", reg(r0), imm12)
}
func (d *Disassembler) Mv(r0, r1 uint32) { d.append("mv %s, %s", reg(r0), reg(r1)) }

func (d *Disassembler) Ecall()  { d.append("ecall") }
func (d *Disassembler) Ebreak() { d.append("ebreak") }

func (d *Disassembler) Illegal(raw uint32) {
	d.append(".word 0x%08x  # illegal", raw)
}

// Disassemble is a one-shot convenience wrapping a fresh Disassembler
// and a single Dispatch call, for callers that just want the mnemonic
// for one word.
func Disassemble(word uint32) string {
	d := New()
	isa.Dispatch(d, word)
	return d.String()
}
