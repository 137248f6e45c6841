package engine

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/molviz/molrender/pkg/errors"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunSuccess(t *testing.T) {
	dir := t.TempDir()
	engine := writeScript(t, dir, "fake-engine", "#!/bin/sh\nexit 0\n")
	script := writeScript(t, dir, "render.pml", "quit\n")

	if err := (CommandExecutor{}).Run(context.Background(), engine, script); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	dir := t.TempDir()
	engine := writeScript(t, dir, "fake-engine",
		"#!/bin/sh\necho 'loading structure'\necho 'Error: bad selection' >&2\nexit 3\n")
	script := writeScript(t, dir, "render.pml", "quit\n")

	err := (CommandExecutor{}).Run(context.Background(), engine, script)
	if !errors.Is(err, errors.ErrCodeEngineExecution) {
		t.Fatalf("err = %v, want ENGINE_EXECUTION", err)
	}

	var execErr *errors.ExecutionError
	if !stderrors.As(err, &execErr) {
		t.Fatal("ExecutionError not recoverable from error chain")
	}
	if execErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", execErr.ExitCode)
	}
	if !strings.Contains(execErr.Stdout, "loading structure") {
		t.Errorf("Stdout = %q, missing captured output", execErr.Stdout)
	}
	if !strings.Contains(execErr.Stderr, "bad selection") {
		t.Errorf("Stderr = %q, missing captured output", execErr.Stderr)
	}
}

func TestRunLaunchFailure(t *testing.T) {
	err := (CommandExecutor{}).Run(context.Background(),
		filepath.Join(t.TempDir(), "missing-engine"), "script.pml")
	if !errors.Is(err, errors.ErrCodeEngineExecution) {
		t.Fatalf("err = %v, want ENGINE_EXECUTION", err)
	}

	var execErr *errors.ExecutionError
	if !stderrors.As(err, &execErr) {
		t.Fatal("ExecutionError not recoverable from error chain")
	}
	if execErr.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1 for launch failure", execErr.ExitCode)
	}
}
