// Package asm implements the Owl-2820 assembler: an isa.Visitor
// backend that encodes each dispatched instruction into a growing byte
// buffer instead of executing it.
//
// On top of the raw numeric-operand Visitor methods (which is what lets
// this package also serve as the write side of RV32I transcoding) it
// offers a label/fixup convenience layer: mint a Label, reference it in
// a branch or jump before it is bound to an address, and bind it later.
// Binding patches every outstanding reference in place, so callers
// never need to make a separate resolution pass themselves.
package asm

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/badlydrawnrod/owl2820/pkg/isa"
)

// Label identifies an address that may not be known yet. The zero
// value is a valid label (the first one minted by MakeLabel), but a
// Label is only ever produced by MakeLabel, never constructed directly.
type Label uint32

// unbound marks a label that has been minted but not yet placed with
// BindLabel.
const unbound uint32 = 0xffffffff

// FixupKind says which field of an already-emitted word a fixup
// patches once its label binds.
type FixupKind int

const (
	// FixupOffs12 patches a branch's 13-bit offset field, PC-relative
	// to the branch instruction itself.
	FixupOffs12 FixupKind = iota
	// FixupOffs20 patches a jal/j/call's 21-bit offset field,
	// PC-relative to the jump instruction itself.
	FixupOffs20
	// FixupHi20 patches a lui's upper-20-bits field with the high part
	// of an absolute address.
	FixupHi20
	// FixupLo12 patches an addi's 12-bit immediate with the low part
	// of an absolute address, sign-extension corrected against FixupHi20.
	FixupLo12
)

type fixup struct {
	kind FixupKind
	pos  uint32
}

// ErrUnresolvedLabel is returned by Code when a label was referenced by
// a fixup but never bound.
var ErrUnresolvedLabel = errors.New("asm: unresolved label")

// Assembler is an isa.Visitor that appends each instruction it is
// handed to its own byte buffer. Driving it through isa.Dispatch or
// rv32i.Dispatch turns decoded Owl or RV32I words into re-encoded Owl
// words; driving it through its *ToLabel methods assembles a program
// directly.
type Assembler struct {
	code   []byte
	labels []uint32
	fixups map[Label][]fixup
}

// New returns an empty Assembler.
func New() *Assembler {
	return &Assembler{
		fixups: make(map[Label][]fixup),
	}
}

// PC returns the byte offset the next emitted instruction will occupy.
func (a *Assembler) PC() uint32 { return uint32(len(a.code)) }

// MakeLabel mints a new, as-yet-unbound label.
func (a *Assembler) MakeLabel() Label {
	id := Label(len(a.labels))
	a.labels = append(a.labels, unbound)
	return id
}

// BindLabel fixes l to the current end-of-buffer position and patches
// every fixup already recorded against it.
func (a *Assembler) BindLabel(l Label) {
	addr := a.PC()
	a.labels[l] = addr
	pending := a.fixups[l]
	delete(a.fixups, l)
	for _, f := range pending {
		a.patch(f, addr)
	}
}

// addFixup records that the word at pos (the start of the instruction
// that referenced l, captured by the caller before it called emit) will
// need patching once l binds, or patches it immediately if l is already
// bound. pos must be the instruction's own address, not the buffer
// length after emitting it.
func (a *Assembler) addFixup(pos uint32, l Label, kind FixupKind) {
	if addr := a.labels[l]; addr != unbound {
		a.patch(fixup{kind: kind, pos: pos}, addr)
		return
	}
	a.fixups[l] = append(a.fixups[l], fixup{kind: kind, pos: pos})
}

func (a *Assembler) patch(f fixup, target uint32) {
	word := binary.LittleEndian.Uint32(a.code[f.pos:])
	switch f.kind {
	case FixupOffs12:
		off := int32(target) - int32(f.pos)
		word = (word &^ uint32(0xfff00000)) | isa.EncodeOffs12(off)
	case FixupOffs20:
		off := int32(target) - int32(f.pos)
		word = (word &^ uint32(0xfffff000)) | isa.EncodeOffs20(off)
	case FixupHi20:
		hi, _ := splitHiLo(target)
		word = (word &^ uint32(0xfffff000)) | hi
	case FixupLo12:
		_, lo := splitHiLo(target)
		word = (word &^ uint32(0xfff00000)) | isa.EncodeImm12(lo)
	}
	binary.LittleEndian.PutUint32(a.code[f.pos:], word)
}

// splitHiLo splits an absolute address into a Lui-ready high part and
// an Addi-ready signed low-12 part such that hi+sign_extend(lo) == addr.
// The low part can be negative (e.g. addr = 0x00000fff splits to
// hi=0x1000, lo=-1), which is why the high part is biased by one 4 KiB
// page whenever the low 12 bits would otherwise sign-extend negative.
func splitHiLo(addr uint32) (hi uint32, lo int32) {
	lo = int32(addr<<20) >> 20
	hi = addr - uint32(lo)
	return hi & 0xfffff000, lo
}

// Hi returns l's bound address, split the way FixupHi20 would patch it;
// useful for embedding an absolute address directly rather than via a
// *ToLabel fixup (e.g. loading a label's address into a register with a
// lui/addi pair built by hand).
func (a *Assembler) Hi(l Label) uint32 {
	hi, _ := splitHiLo(a.labels[l])
	return hi
}

// Lo returns l's bound address low-12 part, matching Hi.
func (a *Assembler) Lo(l Label) int32 {
	_, lo := splitHiLo(a.labels[l])
	return lo
}

// Word emits a raw 32-bit value with no decoding, for embedding literal
// data (e.g. a jump table or a string constant) inline in the buffer.
func (a *Assembler) Word(w uint32) {
	a.emit(w)
}

// Code returns the assembled bytes, or ErrUnresolvedLabel if any fixup
// is still outstanding (a label was referenced but never bound).
func (a *Assembler) Code() ([]byte, error) {
	for l, pending := range a.fixups {
		if len(pending) > 0 {
			return nil, fmt.Errorf("%w: label %d", ErrUnresolvedLabel, l)
		}
	}
	return a.code, nil
}

func (a *Assembler) emit(word uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], word)
	a.code = append(a.code, buf[:]...)
}

func encodeR(op isa.Opcode, r0, r1, r2 uint32) uint32 {
	return isa.EncodeOpcode(op) | isa.EncodeR0(r0) | isa.EncodeR1(r1) | isa.EncodeR2(r2)
}

func encodeShift(op isa.Opcode, r0, r1, shamt uint32) uint32 {
	return isa.EncodeOpcode(op) | isa.EncodeR0(r0) | isa.EncodeR1(r1) | isa.EncodeShift(shamt)
}

func encodeB(op isa.Opcode, r0, r1 uint32, offs12 int32) uint32 {
	return isa.EncodeOpcode(op) | isa.EncodeR0(r0) | isa.EncodeR1(r1) | isa.EncodeOffs12(offs12)
}

func encodeI(op isa.Opcode, r0, r1 uint32, imm12 int32) uint32 {
	return isa.EncodeOpcode(op) | isa.EncodeR0(r0) | isa.EncodeR1(r1) | isa.EncodeImm12(imm12)
}

func encodeJ(op isa.Opcode, r0 uint32, offs20 int32) uint32 {
	return isa.EncodeOpcode(op) | isa.EncodeR0(r0) | isa.EncodeOffs20(offs20)
}

// encodeU encodes a Lui/Auipc word. uimm20 is the "positioned" form (low
// 12 bits already zero) that the Visitor contract uses throughout, the
// same value Dispatch hands a visitor via DecodeUimm20 — so this masks
// it into place directly rather than going through EncodeUimm20 (which
// instead expects an unshifted 20-bit quantity, the natural form for an
// assembly-level "lui rd, imm20" convenience method).
func encodeU(op isa.Opcode, r0, uimm20 uint32) uint32 {
	return isa.EncodeOpcode(op) | isa.EncodeR0(r0) | (uimm20 & 0xfffff000)
}

var _ isa.Visitor = (*Assembler)(nil)

// Register-register ALU.

func (a *Assembler) Add(r0, r1, r2 uint32)  { a.emit(encodeR(isa.Add, r0, r1, r2)) }
func (a *Assembler) Sub(r0, r1, r2 uint32)  { a.emit(encodeR(isa.Sub, r0, r1, r2)) }
func (a *Assembler) Sll(r0, r1, r2 uint32)  { a.emit(encodeR(isa.Sll, r0, r1, r2)) }
func (a *Assembler) Slt(r0, r1, r2 uint32)  { a.emit(encodeR(isa.Slt, r0, r1, r2)) }
func (a *Assembler) Sltu(r0, r1, r2 uint32) { a.emit(encodeR(isa.Sltu, r0, r1, r2)) }
func (a *Assembler) Xor(r0, r1, r2 uint32)  { a.emit(encodeR(isa.Xor, r0, r1, r2)) }
func (a *Assembler) Srl(r0, r1, r2 uint32)  { a.emit(encodeR(isa.Srl, r0, r1, r2)) }
func (a *Assembler) Sra(r0, r1, r2 uint32)  { a.emit(encodeR(isa.Sra, r0, r1, r2)) }
func (a *Assembler) Or(r0, r1, r2 uint32)   { a.emit(encodeR(isa.Or, r0, r1, r2)) }
func (a *Assembler) And(r0, r1, r2 uint32)  { a.emit(encodeR(isa.And, r0, r1, r2)) }

// Immediate shifts.

func (a *Assembler) Slli(r0, r1, shamt uint32) { a.emit(encodeShift(isa.Slli, r0, r1, shamt)) }
func (a *Assembler) Srli(r0, r1, shamt uint32) { a.emit(encodeShift(isa.Srli, r0, r1, shamt)) }
func (a *Assembler) Srai(r0, r1, shamt uint32) { a.emit(encodeShift(isa.Srai, r0, r1, shamt)) }

// Branches, numeric form: offs12 is a byte offset already resolved by
// the caller (e.g. a transcoding pass that knows both addresses).

func (a *Assembler) Beq(r0, r1 uint32, offs12 int32)  { a.emit(encodeB(isa.Beq, r0, r1, offs12)) }
func (a *Assembler) Bne(r0, r1 uint32, offs12 int32)  { a.emit(encodeB(isa.Bne, r0, r1, offs12)) }
func (a *Assembler) Blt(r0, r1 uint32, offs12 int32)  { a.emit(encodeB(isa.Blt, r0, r1, offs12)) }
func (a *Assembler) Bge(r0, r1 uint32, offs12 int32)  { a.emit(encodeB(isa.Bge, r0, r1, offs12)) }
func (a *Assembler) Bltu(r0, r1 uint32, offs12 int32) { a.emit(encodeB(isa.Bltu, r0, r1, offs12)) }
func (a *Assembler) Bgeu(r0, r1 uint32, offs12 int32) { a.emit(encodeB(isa.Bgeu, r0, r1, offs12)) }

// Branches, label form: offset is unknown (or not yet known) at
// emission time, so a placeholder word is written and a fixup queued.

func (a *Assembler) BeqToLabel(r0, r1 uint32, l Label)  { a.branchToLabel(isa.Beq, r0, r1, l) }
func (a *Assembler) BneToLabel(r0, r1 uint32, l Label)  { a.branchToLabel(isa.Bne, r0, r1, l) }
func (a *Assembler) BltToLabel(r0, r1 uint32, l Label)  { a.branchToLabel(isa.Blt, r0, r1, l) }
func (a *Assembler) BgeToLabel(r0, r1 uint32, l Label)  { a.branchToLabel(isa.Bge, r0, r1, l) }
func (a *Assembler) BltuToLabel(r0, r1 uint32, l Label) { a.branchToLabel(isa.Bltu, r0, r1, l) }
func (a *Assembler) BgeuToLabel(r0, r1 uint32, l Label) { a.branchToLabel(isa.Bgeu, r0, r1, l) }

func (a *Assembler) branchToLabel(op isa.Opcode, r0, r1 uint32, l Label) {
	pos := a.PC()
	a.emit(encodeB(op, r0, r1, 0))
	a.addFixup(pos, l, FixupOffs12)
}

// Register-immediate ALU.

func (a *Assembler) Addi(r0, r1 uint32, imm12 int32)  { a.emit(encodeI(isa.Addi, r0, r1, imm12)) }
func (a *Assembler) Slti(r0, r1 uint32, imm12 int32)  { a.emit(encodeI(isa.Slti, r0, r1, imm12)) }
func (a *Assembler) Sltiu(r0, r1 uint32, imm12 int32) { a.emit(encodeI(isa.Sltiu, r0, r1, imm12)) }
func (a *Assembler) Xori(r0, r1 uint32, imm12 int32)  { a.emit(encodeI(isa.Xori, r0, r1, imm12)) }
func (a *Assembler) Ori(r0, r1 uint32, imm12 int32)   { a.emit(encodeI(isa.Ori, r0, r1, imm12)) }
func (a *Assembler) Andi(r0, r1 uint32, imm12 int32)  { a.emit(encodeI(isa.Andi, r0, r1, imm12)) }

// AddiToLabel emits an addi whose immediate is l's low-12 part, paired
// with a preceding LuiToLabel(r1, l) to materialize an absolute address.
func (a *Assembler) AddiToLabel(r0, r1 uint32, l Label) {
	pos := a.PC()
	a.emit(encodeI(isa.Addi, r0, r1, 0))
	a.addFixup(pos, l, FixupLo12)
}

// Loads: Method(dest, offset, base).

func (a *Assembler) Lb(r0 uint32, imm12 int32, r1 uint32)  { a.emit(encodeI(isa.Lb, r0, r1, imm12)) }
func (a *Assembler) Lbu(r0 uint32, imm12 int32, r1 uint32) { a.emit(encodeI(isa.Lbu, r0, r1, imm12)) }
func (a *Assembler) Lh(r0 uint32, imm12 int32, r1 uint32)  { a.emit(encodeI(isa.Lh, r0, r1, imm12)) }
func (a *Assembler) Lhu(r0 uint32, imm12 int32, r1 uint32) { a.emit(encodeI(isa.Lhu, r0, r1, imm12)) }
func (a *Assembler) Lw(r0 uint32, imm12 int32, r1 uint32)  { a.emit(encodeI(isa.Lw, r0, r1, imm12)) }

// Stores: Method(source, offset, base).

func (a *Assembler) Sb(r0 uint32, imm12 int32, r1 uint32) { a.emit(encodeI(isa.Sb, r0, r1, imm12)) }
func (a *Assembler) Sh(r0 uint32, imm12 int32, r1 uint32) { a.emit(encodeI(isa.Sh, r0, r1, imm12)) }
func (a *Assembler) Sw(r0 uint32, imm12 int32, r1 uint32) { a.emit(encodeI(isa.Sw, r0, r1, imm12)) }

func (a *Assembler) Fence() { a.emit(isa.EncodeOpcode(isa.Fence)) }

func (a *Assembler) Jalr(r0 uint32, offs12 int32, r1 uint32) {
	a.emit(encodeB(isa.Jalr, r0, r1, offs12))
}

func (a *Assembler) Jal(r0 uint32, offs20 int32) { a.emit(encodeJ(isa.Jal, r0, offs20)) }

// JalToLabel emits a jal to a label whose address may not be known yet.
func (a *Assembler) JalToLabel(r0 uint32, l Label) {
	pos := a.PC()
	a.emit(encodeJ(isa.Jal, r0, 0))
	a.addFixup(pos, l, FixupOffs20)
}

func (a *Assembler) Lui(r0, uimm20 uint32)   { a.emit(encodeU(isa.Lui, r0, uimm20)) }
func (a *Assembler) Auipc(r0, uimm20 uint32) { a.emit(encodeU(isa.Auipc, r0, uimm20)) }

// LuiToLabel emits a lui whose immediate is l's high part, to be paired
// with a following AddiToLabel(rd, rd, l) materializing l's full
// address in rd.
func (a *Assembler) LuiToLabel(r0 uint32, l Label) {
	pos := a.PC()
	a.emit(encodeU(isa.Lui, r0, 0))
	a.addFixup(pos, l, FixupHi20)
}

// Owl-only shortcuts.

func (a *Assembler) J(offs20 int32)             { a.emit(encodeJ(isa.J, 0, offs20)) }
func (a *Assembler) Call(offs20 int32)          { a.emit(encodeJ(isa.Call, 0, offs20)) }
func (a *Assembler) Ret()                       { a.emit(isa.EncodeOpcode(isa.Ret)) }
func (a *Assembler) Li(r0 uint32, imm12 int32)  { a.emit(encodeI(isa.Li, r0, 0, imm12)) }
func (a *Assembler) Mv(r0, r1 uint32)           { a.emit(encodeR(isa.Mv, r0, r1, 0)) }

// JToLabel emits a j to a label whose address may not be known yet.
func (a *Assembler) JToLabel(l Label) {
	pos := a.PC()
	a.emit(encodeJ(isa.J, 0, 0))
	a.addFixup(pos, l, FixupOffs20)
}

// CallToLabel emits a call to a label whose address may not be known yet.
func (a *Assembler) CallToLabel(l Label) {
	pos := a.PC()
	a.emit(encodeJ(isa.Call, 0, 0))
	a.addFixup(pos, l, FixupOffs20)
}

func (a *Assembler) Ecall()  { a.emit(isa.EncodeOpcode(isa.Ecall)) }
func (a *Assembler) Ebreak() { a.emit(isa.EncodeOpcode(isa.Ebreak)) }

// Illegal embeds the raw word verbatim: re-encoding an instruction that
// decoded as Illegal reproduces the same bytes rather than losing them.
func (a *Assembler) Illegal(raw uint32) { a.emit(raw) }
