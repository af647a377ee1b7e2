package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestExactArgsSetsExitCodeOnMismatch(t *testing.T) {
	exitCode = 0
	cmd := &cobra.Command{Use: "run"}
	validate := exactArgs(1)

	if err := validate(cmd, []string{"a"}); err != nil {
		t.Errorf("expected no error for matching arg count, got %v", err)
	}
	if exitCode != 0 {
		t.Errorf("exitCode = %d, want 0 for a valid call", exitCode)
	}

	if err := validate(cmd, nil); err == nil {
		t.Error("expected an error for a missing positional argument")
	}
	if exitCode != 2 {
		t.Errorf("exitCode = %d, want 2 per the CLI's exit code contract", exitCode)
	}
}

func TestJoinNames(t *testing.T) {
	if got, want := joinNames(nil), ""; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := joinNames([]string{"a"}), "a"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := joinNames([]string{"a", "b", "c"}), "a, b, c"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunReportsExitCodeTwoForMissingArgument(t *testing.T) {
	if got := run([]string{"run"}); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}
