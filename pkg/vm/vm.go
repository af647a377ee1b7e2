// Package vm implements the Owl-2820 executor: the isa.Visitor backend
// that mutates registers, PC, and memory to actually run a program.
//
// The run loop invariant is: while !done, pc := next_pc, next_pc :=
// pc+4, fetch the word at pc, dispatch it. Branch/jump/call/return
// instructions may overwrite next_pc after the unconditional advance,
// which is how they redirect control flow.
package vm

import (
	"errors"
	"fmt"

	"github.com/badlydrawnrod/owl2820/pkg/isa"
)

// ErrIllegalInstruction indicates an unrecognized opcode tag.
var ErrIllegalInstruction = errors.New("vm: illegal instruction")

// ErrUnknownSyscall indicates an ecall selector this VM doesn't define.
var ErrUnknownSyscall = errors.New("vm: unknown syscall selector")

// VM is a single Owl-2820 core: a register file, a program counter
// pair, a halt flag, and a memory buffer that is simultaneously code
// and data.
type VM struct {
	Regs   [isa.NumRegisters]uint32
	PC     uint32
	NextPC uint32
	Done   bool

	Mem      *Memory
	Syscalls SyscallHandler

	// Selectors maps the defined syscalls to a7 values; Ecall consults
	// it instead of the SyscallExit/SyscallPrintFib constants so an
	// embedder can remap selector numbers (internal/config) without
	// recompiling.
	Selectors SyscallTable

	// Err is set when Done becomes true because of a fault (illegal
	// instruction, out-of-range memory access, unknown syscall)
	// rather than a normal ecall-Exit or ebreak. It is left for
	// post-mortem inspection; registers and memory remain observable.
	Err error
}

// New creates a VM over mem. Registers start at zero except sp, which
// is initialized to the memory size in bytes; pc and next_pc start at
// zero; done starts false.
func New(mem *Memory) *VM {
	v := &VM{
		Mem:       mem,
		Syscalls:  NewStdoutSyscalls(),
		Selectors: DefaultSyscallTable(),
	}
	v.Regs[isa.Sp] = mem.Size()
	return v
}

// Run executes instructions until Done is set, then returns Err (nil
// on a normal ecall-Exit or ebreak halt).
func (vm *VM) Run() error {
	for !vm.Done {
		vm.Step()
	}
	return vm.Err
}

// Step fetches and executes exactly one instruction. It is a no-op if
// the VM has already halted.
func (vm *VM) Step() {
	if vm.Done {
		return
	}
	vm.PC = vm.NextPC
	vm.NextPC = vm.PC + 4
	word, err := vm.Mem.FetchInstruction(vm.PC)
	if err != nil {
		vm.fail(err)
		return
	}
	isa.Dispatch(vm, word)
	vm.Regs[isa.Zero] = 0
}

func (vm *VM) fail(err error) {
	if vm.Err == nil {
		vm.Err = err
	}
	vm.Done = true
}

func (vm *VM) setReg(r, value uint32) {
	vm.Regs[r] = value
}

var _ isa.Visitor = (*VM)(nil)

// Register-register ALU.

func (vm *VM) Add(r0, r1, r2 uint32) { vm.setReg(r0, vm.Regs[r1]+vm.Regs[r2]) }
func (vm *VM) Sub(r0, r1, r2 uint32) { vm.setReg(r0, vm.Regs[r1]-vm.Regs[r2]) }
func (vm *VM) Sll(r0, r1, r2 uint32) { vm.setReg(r0, vm.Regs[r1]<<(vm.Regs[r2]%32)) }
func (vm *VM) Srl(r0, r1, r2 uint32) { vm.setReg(r0, vm.Regs[r1]>>(vm.Regs[r2]%32)) }
func (vm *VM) Xor(r0, r1, r2 uint32) { vm.setReg(r0, vm.Regs[r1]^vm.Regs[r2]) }
func (vm *VM) Or(r0, r1, r2 uint32)  { vm.setReg(r0, vm.Regs[r1]|vm.Regs[r2]) }
func (vm *VM) And(r0, r1, r2 uint32) { vm.setReg(r0, vm.Regs[r1]&vm.Regs[r2]) }

func (vm *VM) Sra(r0, r1, r2 uint32) {
	vm.setReg(r0, uint32(int32(vm.Regs[r1])>>(vm.Regs[r2]%32)))
}

func (vm *VM) Slt(r0, r1, r2 uint32) {
	vm.setReg(r0, boolToU32(int32(vm.Regs[r1]) < int32(vm.Regs[r2])))
}

func (vm *VM) Sltu(r0, r1, r2 uint32) {
	vm.setReg(r0, boolToU32(vm.Regs[r1] < vm.Regs[r2]))
}

// Immediate shifts. Srli is a logical shift: the teacher's source had
// a latent bug shifting the signed representation instead (§9); this
// implementation shifts the unsigned value.

func (vm *VM) Slli(r0, r1, shamt uint32) { vm.setReg(r0, vm.Regs[r1]<<(shamt&0x1f)) }
func (vm *VM) Srli(r0, r1, shamt uint32) { vm.setReg(r0, vm.Regs[r1]>>(shamt&0x1f)) }

func (vm *VM) Srai(r0, r1, shamt uint32) {
	vm.setReg(r0, uint32(int32(vm.Regs[r1])>>(shamt&0x1f)))
}

// Branches. The unconditional pc+4 advance has already happened in
// Step; a taken branch overwrites NextPC, an untaken one leaves it.

func (vm *VM) Beq(r0, r1 uint32, offs12 int32) {
	if vm.Regs[r0] == vm.Regs[r1] {
		vm.branchTo(offs12)
	}
}

func (vm *VM) Bne(r0, r1 uint32, offs12 int32) {
	if vm.Regs[r0] != vm.Regs[r1] {
		vm.branchTo(offs12)
	}
}

func (vm *VM) Blt(r0, r1 uint32, offs12 int32) {
	if int32(vm.Regs[r0]) < int32(vm.Regs[r1]) {
		vm.branchTo(offs12)
	}
}

func (vm *VM) Bge(r0, r1 uint32, offs12 int32) {
	if int32(vm.Regs[r0]) >= int32(vm.Regs[r1]) {
		vm.branchTo(offs12)
	}
}

func (vm *VM) Bltu(r0, r1 uint32, offs12 int32) {
	if vm.Regs[r0] < vm.Regs[r1] {
		vm.branchTo(offs12)
	}
}

func (vm *VM) Bgeu(r0, r1 uint32, offs12 int32) {
	if vm.Regs[r0] >= vm.Regs[r1] {
		vm.branchTo(offs12)
	}
}

func (vm *VM) branchTo(offs12 int32) {
	vm.NextPC = vm.PC + uint32(offs12)
}

// Register-immediate ALU.

func (vm *VM) Addi(r0, r1 uint32, imm12 int32) { vm.setReg(r0, vm.Regs[r1]+uint32(imm12)) }
func (vm *VM) Xori(r0, r1 uint32, imm12 int32) { vm.setReg(r0, vm.Regs[r1]^uint32(imm12)) }
func (vm *VM) Ori(r0, r1 uint32, imm12 int32)  { vm.setReg(r0, vm.Regs[r1]|uint32(imm12)) }
func (vm *VM) Andi(r0, r1 uint32, imm12 int32) { vm.setReg(r0, vm.Regs[r1]&uint32(imm12)) }

func (vm *VM) Slti(r0, r1 uint32, imm12 int32) {
	vm.setReg(r0, boolToU32(int32(vm.Regs[r1]) < imm12))
}

func (vm *VM) Sltiu(r0, r1 uint32, imm12 int32) {
	vm.setReg(r0, boolToU32(vm.Regs[r1] < uint32(imm12)))
}

// Loads: Method(dest, offset, base).

func (vm *VM) Lb(r0 uint32, imm12 int32, r1 uint32) {
	b, err := vm.Mem.Read8(vm.Regs[r1] + uint32(imm12))
	if err != nil {
		vm.fail(err)
		return
	}
	vm.setReg(r0, uint32(int32(int8(b))))
}

func (vm *VM) Lbu(r0 uint32, imm12 int32, r1 uint32) {
	b, err := vm.Mem.Read8(vm.Regs[r1] + uint32(imm12))
	if err != nil {
		vm.fail(err)
		return
	}
	vm.setReg(r0, uint32(b))
}

func (vm *VM) Lh(r0 uint32, imm12 int32, r1 uint32) {
	h, err := vm.Mem.Read16(vm.Regs[r1] + uint32(imm12))
	if err != nil {
		vm.fail(err)
		return
	}
	vm.setReg(r0, uint32(int32(int16(h))))
}

func (vm *VM) Lhu(r0 uint32, imm12 int32, r1 uint32) {
	h, err := vm.Mem.Read16(vm.Regs[r1] + uint32(imm12))
	if err != nil {
		vm.fail(err)
		return
	}
	vm.setReg(r0, uint32(h))
}

func (vm *VM) Lw(r0 uint32, imm12 int32, r1 uint32) {
	w, err := vm.Mem.Read32(vm.Regs[r1] + uint32(imm12))
	if err != nil {
		vm.fail(err)
		return
	}
	vm.setReg(r0, w)
}

// Stores: Method(source, offset, base).

func (vm *VM) Sb(r0 uint32, imm12 int32, r1 uint32) {
	if err := vm.Mem.Write8(vm.Regs[r1]+uint32(imm12), uint8(vm.Regs[r0])); err != nil {
		vm.fail(err)
	}
}

func (vm *VM) Sh(r0 uint32, imm12 int32, r1 uint32) {
	if err := vm.Mem.Write16(vm.Regs[r1]+uint32(imm12), uint16(vm.Regs[r0])); err != nil {
		vm.fail(err)
	}
}

func (vm *VM) Sw(r0 uint32, imm12 int32, r1 uint32) {
	if err := vm.Mem.Write32(vm.Regs[r1]+uint32(imm12), vm.Regs[r0]); err != nil {
		vm.fail(err)
	}
}

// Fence is a no-op: single-threaded, no store buffer, no second agent.
func (vm *VM) Fence() {}

func (vm *VM) Jalr(r0 uint32, offs12 int32, r1 uint32) {
	target := vm.Regs[r1] // captured before r0 is written, may alias r0
	vm.setReg(r0, vm.PC+4)
	vm.NextPC = target + uint32(offs12)
}

func (vm *VM) Jal(r0 uint32, offs20 int32) {
	vm.setReg(r0, vm.PC+4)
	vm.NextPC = vm.PC + uint32(offs20)
}

func (vm *VM) Lui(r0, uimm20 uint32)   { vm.setReg(r0, uimm20) }
func (vm *VM) Auipc(r0, uimm20 uint32) { vm.setReg(r0, vm.PC+uimm20) }

func (vm *VM) J(offs20 int32) { vm.NextPC = vm.PC + uint32(offs20) }

func (vm *VM) Call(offs20 int32) {
	vm.setReg(isa.Ra, vm.PC+4)
	vm.NextPC = vm.PC + uint32(offs20)
}

func (vm *VM) Ret() { vm.NextPC = vm.Regs[isa.Ra] }

func (vm *VM) Li(r0 uint32, imm12 int32) { vm.setReg(r0, uint32(imm12)) }
func (vm *VM) Mv(r0, r1 uint32)          { vm.setReg(r0, vm.Regs[r1]) }

func (vm *VM) Ecall() {
	selector := vm.Regs[isa.A7]
	switch selector {
	case vm.Selectors.Exit:
		vm.Syscalls.Exit(vm.Regs[isa.A0])
		vm.Done = true
	case vm.Selectors.PrintFib:
		vm.Syscalls.PrintFib(vm.Regs[isa.A0], vm.Regs[isa.A1])
	default:
		if ext, ok := vm.Syscalls.(ExtendedSyscallHandler); ok {
			if err := ext.Other(selector, vm.Regs[isa.A0], vm.Regs[isa.A1]); err != nil {
				vm.fail(err)
			}
			return
		}
		vm.fail(fmt.Errorf("%w: %d", ErrUnknownSyscall, selector))
	}
}

func (vm *VM) Ebreak() { vm.Done = true }

func (vm *VM) Illegal(raw uint32) {
	vm.fail(fmt.Errorf("%w: 0x%08x", ErrIllegalInstruction, raw))
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
