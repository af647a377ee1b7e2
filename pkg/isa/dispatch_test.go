package isa

import "testing"

// recordingVisitor records which method was called and with what
// operands, for dispatch tests that only care about routing.
type recordingVisitor struct {
	called string
	r0     uint32
	r1     uint32
	r2     uint32
	imm    int32
	raw    uint32
}

func (r *recordingVisitor) Add(r0, r1, r2 uint32)  { r.called, r.r0, r.r1, r.r2 = "add", r0, r1, r2 }
func (r *recordingVisitor) Sub(r0, r1, r2 uint32)  { r.called = "sub" }
func (r *recordingVisitor) Sll(r0, r1, r2 uint32)  { r.called = "sll" }
func (r *recordingVisitor) Slt(r0, r1, r2 uint32)  { r.called = "slt" }
func (r *recordingVisitor) Sltu(r0, r1, r2 uint32) { r.called = "sltu" }
func (r *recordingVisitor) Xor(r0, r1, r2 uint32)  { r.called = "xor" }
func (r *recordingVisitor) Srl(r0, r1, r2 uint32)  { r.called = "srl" }
func (r *recordingVisitor) Sra(r0, r1, r2 uint32)  { r.called = "sra" }
func (r *recordingVisitor) Or(r0, r1, r2 uint32)   { r.called = "or" }
func (r *recordingVisitor) And(r0, r1, r2 uint32)  { r.called = "and" }

func (r *recordingVisitor) Slli(r0, r1, shamt uint32) { r.called = "slli" }
func (r *recordingVisitor) Srli(r0, r1, shamt uint32) { r.called = "srli" }
func (r *recordingVisitor) Srai(r0, r1, shamt uint32) { r.called = "srai" }

func (r *recordingVisitor) Beq(r0, r1 uint32, offs12 int32) { r.called = "beq" }
func (r *recordingVisitor) Bne(r0, r1 uint32, offs12 int32) { r.called = "bne" }
func (r *recordingVisitor) Blt(r0, r1 uint32, offs12 int32) { r.called = "blt" }
func (r *recordingVisitor) Bge(r0, r1 uint32, offs12 int32) { r.called = "bge" }
func (r *recordingVisitor) Bltu(r0, r1 uint32, offs12 int32) {
	r.called = "bltu"
}
func (r *recordingVisitor) Bgeu(r0, r1 uint32, offs12 int32) {
	r.called = "bgeu"
}

func (r *recordingVisitor) Addi(r0, r1 uint32, imm12 int32) {
	r.called, r.r0, r.r1, r.imm = "addi", r0, r1, imm12
}
func (r *recordingVisitor) Slti(r0, r1 uint32, imm12 int32)  { r.called = "slti" }
func (r *recordingVisitor) Sltiu(r0, r1 uint32, imm12 int32) { r.called = "sltiu" }
func (r *recordingVisitor) Xori(r0, r1 uint32, imm12 int32)  { r.called = "xori" }
func (r *recordingVisitor) Ori(r0, r1 uint32, imm12 int32)   { r.called = "ori" }
func (r *recordingVisitor) Andi(r0, r1 uint32, imm12 int32)  { r.called = "andi" }

func (r *recordingVisitor) Lb(r0 uint32, imm12 int32, r1 uint32)  { r.called = "lb" }
func (r *recordingVisitor) Lbu(r0 uint32, imm12 int32, r1 uint32) { r.called = "lbu" }
func (r *recordingVisitor) Lh(r0 uint32, imm12 int32, r1 uint32)  { r.called = "lh" }
func (r *recordingVisitor) Lhu(r0 uint32, imm12 int32, r1 uint32) { r.called = "lhu" }
func (r *recordingVisitor) Lw(r0 uint32, imm12 int32, r1 uint32)  { r.called = "lw" }

func (r *recordingVisitor) Sb(r0 uint32, imm12 int32, r1 uint32) { r.called = "sb" }
func (r *recordingVisitor) Sh(r0 uint32, imm12 int32, r1 uint32) { r.called = "sh" }
func (r *recordingVisitor) Sw(r0 uint32, imm12 int32, r1 uint32) { r.called = "sw" }

func (r *recordingVisitor) Fence() { r.called = "fence" }

func (r *recordingVisitor) Jalr(r0 uint32, offs12 int32, r1 uint32) { r.called = "jalr" }
func (r *recordingVisitor) Jal(r0 uint32, offs20 int32)             { r.called = "jal" }

func (r *recordingVisitor) Lui(r0, uimm20 uint32)   { r.called, r.r0 = "lui", r0 }
func (r *recordingVisitor) Auipc(r0, uimm20 uint32) { r.called = "auipc" }

func (r *recordingVisitor) J(offs20 int32)    { r.called = "j" }
func (r *recordingVisitor) Call(offs20 int32) { r.called = "call" }
func (r *recordingVisitor) Ret()              { r.called = "ret" }
func (r *recordingVisitor) Li(r0 uint32, imm12 int32) {
	r.called, r.r0, r.imm = "li", r0, imm12
}
func (r *recordingVisitor) Mv(r0, r1 uint32) { r.called = "mv" }

func (r *recordingVisitor) Ecall()  { r.called = "ecall" }
func (r *recordingVisitor) Ebreak() { r.called = "ebreak" }

func (r *recordingVisitor) Illegal(raw uint32) { r.called, r.raw = "illegal", raw }

var _ Visitor = (*recordingVisitor)(nil)

func TestDispatchRoutesEveryOpcode(t *testing.T) {
	for op := Ecall; op < numOpcodes; op++ {
		word := EncodeOpcode(op)
		r := &recordingVisitor{}
		Dispatch(r, word)
		if r.called == "" {
			t.Errorf("opcode %v: no visitor method called", op)
		}
		if r.called == "illegal" {
			t.Errorf("opcode %v: dispatched to Illegal unexpectedly", op)
		}
	}
}

func TestDispatchUnknownOpcodeIsIllegal(t *testing.T) {
	// opcode tag 0x7f is outside the defined table.
	word := uint32(0x7f)
	r := &recordingVisitor{}
	Dispatch(r, word)
	if r.called != "illegal" {
		t.Errorf("got %q, want \"illegal\"", r.called)
	}
	if r.raw != word {
		t.Errorf("got raw 0x%08x, want 0x%08x", r.raw, word)
	}
}

func TestDispatchOperandsFlowThrough(t *testing.T) {
	word := EncodeOpcode(Add) | EncodeR0(3) | EncodeR1(4) | EncodeR2(5)
	r := &recordingVisitor{}
	Dispatch(r, word)
	if r.called != "add" || r.r0 != 3 || r.r1 != 4 || r.r2 != 5 {
		t.Errorf("got %+v", r)
	}

	word = EncodeOpcode(Addi) | EncodeR0(1) | EncodeR1(2) | EncodeImm12(-7)
	r = &recordingVisitor{}
	Dispatch(r, word)
	if r.called != "addi" || r.r0 != 1 || r.r1 != 2 || r.imm != -7 {
		t.Errorf("got %+v", r)
	}
}
