package isa

// Dispatch decodes a little-endian 32-bit Owl word and calls the
// matching method on v. Any tag with no entry in the opcode table
// calls v.Illegal(word). Dispatch never inspects what the visitor
// method does; this is what lets the same decode-and-call body drive
// an executor, an assembler, or a disassembler interchangeably.
func Dispatch(v Visitor, word uint32) {
	r0 := DecodeR0(word)
	r1 := DecodeR1(word)
	r2 := DecodeR2(word)
	shamt := DecodeShift(word)
	imm12 := DecodeImm12(word)
	offs12 := DecodeOffs12(word)
	offs20 := DecodeOffs20(word)
	uimm20 := DecodeUimm20(word)

	switch DecodeOpcode(word) {
	case Add:
		v.Add(r0, r1, r2)
	case Sub:
		v.Sub(r0, r1, r2)
	case Sll:
		v.Sll(r0, r1, r2)
	case Slt:
		v.Slt(r0, r1, r2)
	case Sltu:
		v.Sltu(r0, r1, r2)
	case Xor:
		v.Xor(r0, r1, r2)
	case Srl:
		v.Srl(r0, r1, r2)
	case Sra:
		v.Sra(r0, r1, r2)
	case Or:
		v.Or(r0, r1, r2)
	case And:
		v.And(r0, r1, r2)
	case Slli:
		v.Slli(r0, r1, shamt)
	case Srli:
		v.Srli(r0, r1, shamt)
	case Srai:
		v.Srai(r0, r1, shamt)
	case Beq:
		v.Beq(r0, r1, offs12)
	case Bne:
		v.Bne(r0, r1, offs12)
	case Blt:
		v.Blt(r0, r1, offs12)
	case Bge:
		v.Bge(r0, r1, offs12)
	case Bltu:
		v.Bltu(r0, r1, offs12)
	case Bgeu:
		v.Bgeu(r0, r1, offs12)
	case Addi:
		v.Addi(r0, r1, imm12)
	case Slti:
		v.Slti(r0, r1, imm12)
	case Sltiu:
		v.Sltiu(r0, r1, imm12)
	case Xori:
		v.Xori(r0, r1, imm12)
	case Ori:
		v.Ori(r0, r1, imm12)
	case Andi:
		v.Andi(r0, r1, imm12)
	case Lb:
		v.Lb(r0, imm12, r1)
	case Lbu:
		v.Lbu(r0, imm12, r1)
	case Lh:
		v.Lh(r0, imm12, r1)
	case Lhu:
		v.Lhu(r0, imm12, r1)
	case Lw:
		v.Lw(r0, imm12, r1)
	case Sb:
		v.Sb(r0, imm12, r1)
	case Sh:
		v.Sh(r0, imm12, r1)
	case Sw:
		v.Sw(r0, imm12, r1)
	case Fence:
		v.Fence()
	case Jalr:
		v.Jalr(r0, offs12, r1)
	case Jal:
		v.Jal(r0, offs20)
	case Lui:
		v.Lui(r0, uimm20)
	case Auipc:
		v.Auipc(r0, uimm20)
	case J:
		v.J(offs20)
	case Call:
		v.Call(offs20)
	case Ret:
		v.Ret()
	case Li:
		v.Li(r0, imm12)
	case Mv:
		v.Mv(r0, r1)
	case Ecall:
		v.Ecall()
	case Ebreak:
		v.Ebreak()
	default:
		v.Illegal(word)
	}
}
