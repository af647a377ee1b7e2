package isa

// Visitor is the single interface through which every Owl-2820
// instruction is expressed. The Owl dispatcher (Dispatch, below) and
// the RV32I dispatcher (package rv32i) both drive a Visitor: given a
// raw instruction word, they decode its operands and call exactly one
// Visitor method, never inspecting what that method does afterwards.
//
// In the system this spec was distilled from, each backend chose its
// own return type (the executor mutates state and returns nothing, the
// assembler appends bytes and returns nothing, the disassembler
// produces a string). Go interfaces require one signature per method
// name across every implementation, so here every method returns
// nothing and each backend captures its result as a side effect on its
// own receiver: the executor mutates registers/memory/PC, the
// assembler appends an encoded word to its buffer, and the
// disassembler appends a formatted line to its own buffer. The
// dispatcher still never inspects any of that — it just calls the
// method.
type Visitor interface {
	// Register-register ALU.
	Add(r0, r1, r2 uint32)
	Sub(r0, r1, r2 uint32)
	Sll(r0, r1, r2 uint32)
	Slt(r0, r1, r2 uint32)
	Sltu(r0, r1, r2 uint32)
	Xor(r0, r1, r2 uint32)
	Srl(r0, r1, r2 uint32)
	Sra(r0, r1, r2 uint32)
	Or(r0, r1, r2 uint32)
	And(r0, r1, r2 uint32)

	// Immediate shifts.
	Slli(r0, r1, shamt uint32)
	Srli(r0, r1, shamt uint32)
	Srai(r0, r1, shamt uint32)

	// Branches.
	Beq(r0, r1 uint32, offs12 int32)
	Bne(r0, r1 uint32, offs12 int32)
	Blt(r0, r1 uint32, offs12 int32)
	Bge(r0, r1 uint32, offs12 int32)
	Bltu(r0, r1 uint32, offs12 int32)
	Bgeu(r0, r1 uint32, offs12 int32)

	// Register-immediate ALU.
	Addi(r0, r1 uint32, imm12 int32)
	Slti(r0, r1 uint32, imm12 int32)
	Sltiu(r0, r1 uint32, imm12 int32)
	Xori(r0, r1 uint32, imm12 int32)
	Ori(r0, r1 uint32, imm12 int32)
	Andi(r0, r1 uint32, imm12 int32)

	// Loads: Method(dest, offset, base).
	Lb(r0 uint32, imm12 int32, r1 uint32)
	Lbu(r0 uint32, imm12 int32, r1 uint32)
	Lh(r0 uint32, imm12 int32, r1 uint32)
	Lhu(r0 uint32, imm12 int32, r1 uint32)
	Lw(r0 uint32, imm12 int32, r1 uint32)

	// Stores: Method(source, offset, base).
	Sb(r0 uint32, imm12 int32, r1 uint32)
	Sh(r0 uint32, imm12 int32, r1 uint32)
	Sw(r0 uint32, imm12 int32, r1 uint32)

	Fence()

	Jalr(r0 uint32, offs12 int32, r1 uint32)
	Jal(r0 uint32, offs20 int32)

	Lui(r0, uimm20 uint32)
	Auipc(r0, uimm20 uint32)

	// Owl-only shortcuts.
	J(offs20 int32)
	Call(offs20 int32)
	Ret()
	Li(r0 uint32, imm12 int32)
	Mv(r0, r1 uint32)

	Ecall()
	Ebreak()

	// Illegal is called with the raw word for any tag the dispatcher
	// doesn't recognize.
	Illegal(raw uint32)
}
