// Package demo assembles the handful of small Owl-2820 programs used
// both as `owl asm`'s built-in "assembly front end" (per the format,
// there is no textual assembly syntax to parse — see pkg/asm) and as
// fixtures for the VM's end-to-end tests.
package demo

import (
	"github.com/badlydrawnrod/owl2820/pkg/asm"
	"github.com/badlydrawnrod/owl2820/pkg/isa"
)

// Names lists the programs Build accepts, in definition order.
var Names = []string{"li-add", "loop", "call-ret", "fib"}

// Build assembles the named demo program and returns its Owl image.
func Build(name string) ([]byte, error) {
	switch name {
	case "li-add":
		return liAdd()
	case "loop":
		return backwardLoop()
	case "call-ret":
		return callRet()
	case "fib":
		return fib(10)
	}
	return nil, &unknownProgramError{name}
}

type unknownProgramError struct{ name string }

func (e *unknownProgramError) Error() string { return "demo: unknown program " + e.name }

// liAdd loads two small immediates, adds them, and exits with the sum
// as the guest status code: li a0,2; li a1,3; add a0,a0,a1; ecall(exit).
func liAdd() ([]byte, error) {
	a := asm.New()
	a.Li(isa.A0, 2)
	a.Li(isa.A1, 3)
	a.Add(isa.A0, isa.A0, isa.A1)
	a.Li(isa.A7, 0)
	a.Ecall()
	return a.Code()
}

// backwardLoop counts t0 up from 0 to 5 in a loop closed by a backward
// jump, then exits with t0 (5) as the status code.
func backwardLoop() ([]byte, error) {
	a := asm.New()
	top := a.MakeLabel()
	done := a.MakeLabel()

	a.Li(isa.T0, 0)
	a.Li(isa.T1, 5)
	a.BindLabel(top)
	a.BgeToLabel(isa.T0, isa.T1, done)
	a.Addi(isa.T0, isa.T0, 1)
	a.JToLabel(top)
	a.BindLabel(done)
	a.Mv(isa.A0, isa.T0)
	a.Li(isa.A7, 0)
	a.Ecall()
	return a.Code()
}

// callRet calls a leaf routine that doubles a0, then exits with the
// doubled value.
func callRet() ([]byte, error) {
	a := asm.New()
	doubler := a.MakeLabel()

	a.Li(isa.A0, 21)
	a.CallToLabel(doubler)
	a.Li(isa.A7, 0)
	a.Ecall()

	a.BindLabel(doubler)
	a.Add(isa.A0, isa.A0, isa.A0)
	a.Ret()
	return a.Code()
}

// fib prints fib(0) through fib(n-1) via syscall 1 (PrintFib), then
// exits 0.
func fib(n int32) ([]byte, error) {
	a := asm.New()
	loopTop := a.MakeLabel()
	loopEnd := a.MakeLabel()

	a.Li(isa.T0, 0) // a
	a.Li(isa.T1, 1) // b
	a.Li(isa.S0, 0) // i
	a.Li(isa.S1, n) // bound

	a.BindLabel(loopTop)
	a.BgeToLabel(isa.S0, isa.S1, loopEnd)
	a.Mv(isa.A0, isa.S0)
	a.Mv(isa.A1, isa.T0)
	a.Li(isa.A7, 1)
	a.Ecall()
	a.Add(isa.T2, isa.T0, isa.T1)
	a.Mv(isa.T0, isa.T1)
	a.Mv(isa.T1, isa.T2)
	a.Addi(isa.S0, isa.S0, 1)
	a.JToLabel(loopTop)

	a.BindLabel(loopEnd)
	a.Li(isa.A0, 0)
	a.Li(isa.A7, 0)
	a.Ecall()
	return a.Code()
}
