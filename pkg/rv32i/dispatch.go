package rv32i

import "github.com/badlydrawnrod/owl2820/pkg/isa"

// RV32I opcode (major) values, [6:0].
const (
	opLoad   = 0x03
	opFence  = 0x0f
	opImm    = 0x13
	opAuipc  = 0x17
	opStore  = 0x23
	opOp     = 0x33
	opLui    = 0x37
	opBranch = 0x63
	opJalr   = 0x67
	opJal    = 0x6f
	opSystem = 0x73
)

const (
	ecallWord  = 0x00000073
	ebreakWord = 0x00100073
)

// funct7 values distinguishing add/sub and srl/sra and srli/srai.
const (
	funct7Base = 0x00
	funct7Alt  = 0x20
)

// Dispatch decodes a 32-bit RV32I word and calls the matching method
// on v, the same isa.Visitor that the Owl dispatcher drives. The
// decision is layered: first the two full-word system instructions
// (ecall, ebreak), then register-register arithmetic (opcode plus
// funct3 plus funct7), then the opcode+funct3 instructions (branches,
// loads, stores, immediate ALU, jalr, fence), then the opcode-only
// instructions (jal, lui, auipc). Anything that falls through every
// tier calls v.Illegal(word).
func Dispatch(v isa.Visitor, word uint32) {
	switch word {
	case ecallWord:
		v.Ecall()
		return
	case ebreakWord:
		v.Ebreak()
		return
	}

	rd := decodeRd(word)
	rs1 := decodeRs1(word)
	rs2 := decodeRs2(word)
	funct3 := decodeFunct3(word)
	funct7 := decodeFunct7(word)

	switch decodeOpcode(word) {
	case opOp:
		switch funct3 {
		case 0x0:
			switch funct7 {
			case funct7Base:
				v.Add(rd, rs1, rs2)
				return
			case funct7Alt:
				v.Sub(rd, rs1, rs2)
				return
			}
		case 0x1:
			if funct7 == funct7Base {
				v.Sll(rd, rs1, rs2)
				return
			}
		case 0x2:
			if funct7 == funct7Base {
				v.Slt(rd, rs1, rs2)
				return
			}
		case 0x3:
			if funct7 == funct7Base {
				v.Sltu(rd, rs1, rs2)
				return
			}
		case 0x4:
			if funct7 == funct7Base {
				v.Xor(rd, rs1, rs2)
				return
			}
		case 0x5:
			switch funct7 {
			case funct7Base:
				v.Srl(rd, rs1, rs2)
				return
			case funct7Alt:
				v.Sra(rd, rs1, rs2)
				return
			}
		case 0x6:
			if funct7 == funct7Base {
				v.Or(rd, rs1, rs2)
				return
			}
		case 0x7:
			if funct7 == funct7Base {
				v.And(rd, rs1, rs2)
				return
			}
		}
	case opImm:
		switch funct3 {
		case 0x0:
			v.Addi(rd, rs1, decodeIImm(word))
			return
		case 0x1:
			if funct7 == funct7Base {
				v.Slli(rd, rs1, decodeShamt(word))
				return
			}
		case 0x2:
			v.Slti(rd, rs1, decodeIImm(word))
			return
		case 0x3:
			v.Sltiu(rd, rs1, decodeIImm(word))
			return
		case 0x4:
			v.Xori(rd, rs1, decodeIImm(word))
			return
		case 0x5:
			switch funct7 {
			case funct7Base:
				v.Srli(rd, rs1, decodeShamt(word))
				return
			case funct7Alt:
				v.Srai(rd, rs1, decodeShamt(word))
				return
			}
		case 0x6:
			v.Ori(rd, rs1, decodeIImm(word))
			return
		case 0x7:
			v.Andi(rd, rs1, decodeIImm(word))
			return
		}
	case opBranch:
		offs := decodeBImm(word)
		switch funct3 {
		case 0x0:
			v.Beq(rs1, rs2, offs)
			return
		case 0x1:
			v.Bne(rs1, rs2, offs)
			return
		case 0x4:
			v.Blt(rs1, rs2, offs)
			return
		case 0x5:
			v.Bge(rs1, rs2, offs)
			return
		case 0x6:
			v.Bltu(rs1, rs2, offs)
			return
		case 0x7:
			v.Bgeu(rs1, rs2, offs)
			return
		}
	case opLoad:
		imm := decodeIImm(word)
		switch funct3 {
		case 0x0:
			v.Lb(rd, imm, rs1)
			return
		case 0x1:
			v.Lh(rd, imm, rs1)
			return
		case 0x2:
			v.Lw(rd, imm, rs1)
			return
		case 0x4:
			v.Lbu(rd, imm, rs1)
			return
		case 0x5:
			v.Lhu(rd, imm, rs1)
			return
		}
	case opStore:
		// S-type: rs1 is the base register, rs2 is the value stored.
		// The Visitor signature is Sx(source, offset, base), so the
		// RV32I (rs1=base, rs2=source) tuple is renamed, not reordered:
		// this is the same "store src at base+offs" semantics as Owl.
		imm := decodeSImm(word)
		switch funct3 {
		case 0x0:
			v.Sb(rs2, imm, rs1)
			return
		case 0x1:
			v.Sh(rs2, imm, rs1)
			return
		case 0x2:
			v.Sw(rs2, imm, rs1)
			return
		}
	case opJalr:
		if funct3 == 0x0 {
			v.Jalr(rd, decodeIImm(word), rs1)
			return
		}
	case opFence:
		v.Fence()
		return
	case opJal:
		v.Jal(rd, decodeJImm(word))
		return
	case opLui:
		v.Lui(rd, decodeUImm(word))
		return
	case opAuipc:
		v.Auipc(rd, decodeUImm(word))
		return
	}
	v.Illegal(word)
}
