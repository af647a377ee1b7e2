package vm

import (
	"bytes"
	"strings"
	"testing"
)

func TestStdoutSyscallsExit(t *testing.T) {
	var buf bytes.Buffer
	s := &StdoutSyscalls{Out: &buf}
	s.Exit(7)
	if got := buf.String(); !strings.Contains(got, "7") {
		t.Errorf("got %q, want it to mention the exit status", got)
	}
}

func TestStdoutSyscallsPrintFib(t *testing.T) {
	var buf bytes.Buffer
	s := &StdoutSyscalls{Out: &buf}
	s.PrintFib(3, 2)
	got := buf.String()
	if !strings.Contains(got, "3") || !strings.Contains(got, "2") {
		t.Errorf("got %q, want it to mention both operands", got)
	}
}

func TestStdoutSyscallsDefaultsToStdoutWhenNil(t *testing.T) {
	s := &StdoutSyscalls{}
	if s.writer() == nil {
		t.Error("writer() should never return nil")
	}
}

func TestNewStdoutSyscalls(t *testing.T) {
	s := NewStdoutSyscalls()
	if s.Out == nil {
		t.Error("NewStdoutSyscalls should set Out")
	}
}
