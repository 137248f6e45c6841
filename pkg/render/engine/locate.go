// Package engine finds the external rendering engine binary and runs it.
//
// Discovery follows a fixed priority: explicit path argument, then the
// PYMOL_BIN environment variable, then a PATH lookup of the canonical
// binary name. Execution is a single blocking subprocess invocation with
// non-interactive flags; there is no retry and no bundled fallback binary.
package engine

import (
	"os"
	"os/exec"
	"strings"

	"github.com/molviz/molrender/pkg/errors"
)

const (
	// BinaryName is the canonical engine binary looked up on PATH.
	BinaryName = "pymol"

	// EnvVar is the environment variable overriding engine discovery.
	EnvVar = "PYMOL_BIN"
)

// candidate is one lazily evaluated discovery strategy.
type candidate struct {
	source string
	lookup func() string
}

// Locate finds a usable engine executable. The explicit path wins when
// valid, then the environment override, then the PATH lookup; the first
// candidate that names an existing executable file is returned. Absence of
// all three is a hard failure.
func Locate(explicit string) (string, error) {
	candidates := []candidate{
		{"explicit path", func() string { return strings.TrimSpace(explicit) }},
		{"environment", func() string { return strings.TrimSpace(os.Getenv(EnvVar)) }},
		{"PATH", func() string {
			path, err := exec.LookPath(BinaryName)
			if err != nil {
				return ""
			}
			return path
		}},
	}

	for _, c := range candidates {
		if path := c.lookup(); path != "" && isExecutable(path) {
			return path, nil
		}
	}

	return "", errors.New(errors.ErrCodeEngineNotFound,
		"rendering engine not found: provide an explicit path, export %s, or ensure %q is on PATH",
		EnvVar, BinaryName)
}

// isExecutable reports whether path names a regular file with an execute
// permission bit.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}
