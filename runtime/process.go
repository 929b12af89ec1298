package runtime

import (
	"bytes"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/google/uuid"
)

// RunResult is what `run` reports back regardless of outcome: spawn
// failures are soft-failed just like fetch transport errors.
type RunResult struct {
	Output string
	Code   int
	OK     bool
}

// ProcessRunner is the seam for `run`.
type ProcessRunner interface {
	Run(command string) RunResult
}

type processRunner struct {
	log *slog.Logger
}

// NewProcessRunner builds a ProcessRunner that logs each invocation
// through logger at debug level; pass slog.Default() to use the
// process-wide default.
func NewProcessRunner(logger *slog.Logger) ProcessRunner { return &processRunner{log: logger} }

// Run spawns a shell, merging stderr into stdout by design, and
// normalizes the exit code to "0 on clean exit, nonzero otherwise" across
// hosts — a spawn failure that never produces a process (bad shell,
// permission denied) is reported as exit code -1, OK false, rather than
// panicking.
func (r *processRunner) Run(command string) RunResult {
	traceID := uuid.New().String()
	r.log.Debug("run", "trace", traceID, "command", command)
	shell, flag := "/bin/sh", "-c"
	if runtime.GOOS == "windows" {
		shell, flag = "cmd", "/C"
	}
	cmd := exec.Command(shell, flag, command)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return RunResult{Output: buf.String(), Code: exitErr.ExitCode(), OK: exitErr.ExitCode() == 0}
		}
		return RunResult{Output: buf.String() + err.Error(), Code: -1, OK: false}
	}
	return RunResult{Output: buf.String(), Code: 0, OK: true}
}
