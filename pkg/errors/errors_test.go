package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInputNotFound, "structure not found: %s", "/tmp/x.pdb")

	if err.Code != ErrCodeInputNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInputNotFound)
	}

	if err.Message != "structure not found: /tmp/x.pdb" {
		t.Errorf("Message = %v, want %v", err.Message, "structure not found: /tmp/x.pdb")
	}

	expected := "INPUT_NOT_FOUND: structure not found: /tmp/x.pdb"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeInputNetwork, cause, "failed to fetch")

	if err.Code != ErrCodeInputNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInputNetwork)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeUnknownPreset, "test"),
			code:     ErrCodeUnknownPreset,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeUnknownPreset, "test"),
			code:     ErrCodeInvalidValue,
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "wrapped structured error",
			err:      Wrap(ErrCodeEngineExecution, New(ErrCodeInternal, "inner"), "outer"),
			code:     ErrCodeEngineExecution,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeOutputMissing, "no raster")); got != ErrCodeOutputMissing {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeOutputMissing)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestExecutionError(t *testing.T) {
	execErr := &ExecutionError{
		Command:  "pymol -cq /tmp/render.pml",
		ExitCode: 2,
		Stdout:   "loading structure",
		Stderr:   "Error: bad selection",
	}
	err := Wrap(ErrCodeEngineExecution, execErr, "render failed")

	if !Is(err, ErrCodeEngineExecution) {
		t.Error("expected ENGINE_EXECUTION code")
	}

	var ee *ExecutionError
	if !errors.As(err, &ee) {
		t.Fatal("errors.As failed to recover ExecutionError")
	}
	if ee.ExitCode != 2 {
		t.Errorf("ExitCode = %d, want 2", ee.ExitCode)
	}

	msg := execErr.Error()
	for _, want := range []string{"exit 2", "pymol -cq", "loading structure", "bad selection"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() missing %q:\n%s", want, msg)
		}
	}
}
