package isa

// Field encode/decode codecs, per the bit layout fixed by the spec.
// All functions are pure and total over 32-bit inputs: encoders mask
// their result to the field they occupy, decoders sign-extend where
// the field is signed.
//
// Owl word field ranges:
//
//	[6:0]   opcode
//	[11:7]  r0   (destination / first operand)
//	[16:12] r1   (second operand)
//	[21:17] r2   (third operand, or shift amount)
//	[31:20] imm12 (signed)
//	[31:19] offs12 (signed, low bit forced zero)
//	[31:12] offs20 / uimm20

const (
	r0Shift = 7
	r1Shift = 12
	r2Shift = 17
	regMask = 0x1f

	imm12HiMask = 0xfff00000
	offs20Mask  = 0xfffff000
)

// DecodeR0 extracts the r0 field.
func DecodeR0(word uint32) uint32 { return (word >> r0Shift) & regMask }

// DecodeR1 extracts the r1 field.
func DecodeR1(word uint32) uint32 { return (word >> r1Shift) & regMask }

// DecodeR2 extracts the r2 field (also used as a shift amount).
func DecodeR2(word uint32) uint32 { return (word >> r2Shift) & regMask }

// DecodeShift is an alias for DecodeR2, used where the field holds a
// shift amount rather than a register index.
func DecodeShift(word uint32) uint32 { return DecodeR2(word) }

// DecodeImm12 extracts the signed 12-bit immediate from [31:20].
func DecodeImm12(word uint32) int32 {
	return int32(word&imm12HiMask) >> 20
}

// DecodeOffs12 extracts the signed 13-bit branch offset from [31:19].
// The low bit is always zero.
func DecodeOffs12(word uint32) int32 {
	return int32(word&imm12HiMask) >> 19
}

// DecodeOffs20 extracts the signed 21-bit jump offset from [31:12].
// The low bit is always zero.
func DecodeOffs20(word uint32) int32 {
	return int32(word&offs20Mask) >> 11
}

// DecodeUimm20 extracts the unsigned upper-20-bits field from [31:12],
// already shifted into position (used directly by Lui/Auipc).
func DecodeUimm20(word uint32) uint32 {
	return word & offs20Mask
}

// EncodeOpcode places op in the [6:0] field.
func EncodeOpcode(op Opcode) uint32 { return uint32(op) & opcodeMask }

// EncodeR0 places r in the [11:7] field.
func EncodeR0(r uint32) uint32 { return (r & regMask) << r0Shift }

// EncodeR1 places r in the [16:12] field.
func EncodeR1(r uint32) uint32 { return (r & regMask) << r1Shift }

// EncodeR2 places r in the [21:17] field.
func EncodeR2(r uint32) uint32 { return (r & regMask) << r2Shift }

// EncodeShift is an alias for EncodeR2 used where the field holds a
// shift amount rather than a register index.
func EncodeShift(shamt uint32) uint32 { return EncodeR2(shamt) }

// EncodeImm12 places the low 12 bits of imm into [31:20].
func EncodeImm12(imm int32) uint32 {
	return (uint32(imm) << 20) & imm12HiMask
}

// EncodeOffs12 places the byte offset off into the 13-bit branch-offset
// field at [31:19]. The low bit of off is lost.
func EncodeOffs12(off int32) uint32 {
	return (uint32(off) << 19) & imm12HiMask
}

// EncodeOffs20 places the byte offset off into the 21-bit jump-offset
// field at [31:12]. The low bit of off is lost.
func EncodeOffs20(off int32) uint32 {
	return (uint32(off) << 11) & offs20Mask
}

// EncodeUimm20 places the low 20 bits of u (an unshifted 20-bit
// quantity) into [31:12].
func EncodeUimm20(u uint32) uint32 {
	return (u << 12) & offs20Mask
}
