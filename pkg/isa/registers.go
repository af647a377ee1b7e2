package isa

// NumRegisters is the size of the integer register file. Register 0
// is hard-wired to zero.
const NumRegisters = 32

// Symbolic register aliases, conveniences for the assembler and
// disassembler only; the executor treats registers purely by index.
const (
	Zero = 0
	Ra   = 1
	Sp   = 2
	Gp   = 3
	Tp   = 4
	T0   = 5
	T1   = 6
	T2   = 7
	S0   = 8
	S1   = 9
	A0   = 10
	A1   = 11
	A2   = 12
	A3   = 13
	A4   = 14
	A5   = 15
	A6   = 16
	A7   = 17
	S2   = 18
	S3   = 19
	S4   = 20
	S5   = 21
	S6   = 22
	S7   = 23
	S8   = 24
	S9   = 25
	S10  = 26
	S11  = 27
	T3   = 28
	T4   = 29
	T5   = 30
	T6   = 31
)

var registerNames = [NumRegisters]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

var registerByName map[string]uint32

func init() {
	registerByName = make(map[string]uint32, NumRegisters)
	for i, name := range registerNames {
		registerByName[name] = uint32(i)
	}
}

// RegisterName returns the symbolic name of register r (e.g. "a0"),
// used by the disassembler.
func RegisterName(r uint32) string {
	if r >= NumRegisters {
		return "?"
	}
	return registerNames[r]
}

// RegisterByName resolves a symbolic register name to its index, used
// by callers building instructions programmatically. The second return
// value is false if name isn't a known alias.
func RegisterByName(name string) (uint32, bool) {
	r, ok := registerByName[name]
	return r, ok
}
