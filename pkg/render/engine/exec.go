package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/molviz/molrender/pkg/errors"
)

// Executor runs the engine against a generated script. The pipeline depends
// on this interface so tests can substitute a fake engine without spawning a
// process.
type Executor interface {
	Run(ctx context.Context, enginePath, scriptPath string) error
}

// CommandExecutor invokes the engine as a subprocess:
// <engine> -c -q <script> (non-interactive, quiet). Both output streams are
// captured in full for inclusion in the failure payload; nothing is
// streamed. An engine failure is treated as deterministic (bad script or bad
// structure data), so there are no retries.
type CommandExecutor struct{}

// Run executes the engine and blocks until it exits. A launch failure or
// non-zero exit surfaces as ENGINE_EXECUTION wrapping an
// [errors.ExecutionError] with the captured output.
func (CommandExecutor) Run(ctx context.Context, enginePath, scriptPath string) error {
	cmd := exec.CommandContext(ctx, enginePath, "-c", "-q", scriptPath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if ee, ok := err.(*exec.ExitError); ok {
			exitCode = ee.ExitCode()
		}
		execErr := &errors.ExecutionError{
			Command:  fmt.Sprintf("%s -c -q %s", enginePath, scriptPath),
			ExitCode: exitCode,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
		}
		return errors.Wrap(errors.ErrCodeEngineExecution, execErr, "rendering engine failed")
	}
	return nil
}
