package runtime

import (
	"log/slog"
	"runtime"
	"strings"
	"testing"
)

func TestProcessRunnerCapturesStdout(t *testing.T) {
	r := NewProcessRunner(slog.Default())
	cmd := "echo hello"
	if runtime.GOOS == "windows" {
		cmd = "echo hello"
	}
	got := r.Run(cmd)
	if !got.OK {
		t.Fatalf("Run(%q) OK = false, want true", cmd)
	}
	if got.Code != 0 {
		t.Errorf("Code = %d, want 0", got.Code)
	}
	if !strings.Contains(got.Output, "hello") {
		t.Errorf("Output = %q, want it to contain %q", got.Output, "hello")
	}
}

func TestProcessRunnerNonzeroExitIsNotOK(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exit code semantics differ under cmd.exe")
	}
	r := NewProcessRunner(slog.Default())
	got := r.Run("exit 7")
	if got.OK {
		t.Error("a process that exits nonzero should report OK false")
	}
	if got.Code != 7 {
		t.Errorf("Code = %d, want 7", got.Code)
	}
}

func TestProcessRunnerMergesStderrIntoOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell redirection differs under cmd.exe")
	}
	r := NewProcessRunner(slog.Default())
	got := r.Run("echo oops 1>&2")
	if !strings.Contains(got.Output, "oops") {
		t.Errorf("Output = %q, want it to contain stderr text %q", got.Output, "oops")
	}
}
