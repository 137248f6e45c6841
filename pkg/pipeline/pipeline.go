// Package pipeline provides the core rendering pipeline for molrender.
//
// This package implements the complete resolve → locate → compile → generate
// → execute → decode pipeline that can be used by CLI and service components.
// By centralizing this logic, we ensure consistent behavior across all entry
// points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of six stages:
//
//  1. Resolve: Normalize the structure reference into a local file
//  2. Locate: Discover the rendering engine binary
//  3. Compile: Turn raw parameters into a typed render configuration
//  4. Generate: Build the engine script from the configuration
//  5. Execute: Run the engine as a subprocess
//  6. Decode: Load the rendered raster into a pixel batch
//
// Each invocation is a fresh, stateless run. Temporary artifacts (a decoded
// or downloaded structure copy, the script, the raster) are removed on every
// exit path unless KeepArtifacts is set.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Input:  "structures/1abc.pdb",
//	    Params: config.Params{Preset: "high"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	img := result.Batch.Images[0]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/molviz/molrender/pkg/errors"
	"github.com/molviz/molrender/pkg/render/config"
	"github.com/molviz/molrender/pkg/render/output"
)

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for service requests.
type Options struct {
	// Input is the structure reference: a local path, an http(s) URL, or an
	// inline base64file:// payload.
	Input string `json:"input"`

	// Engine is an explicit path to the engine binary. When empty, discovery
	// falls back to the environment override and then PATH.
	Engine string `json:"engine,omitempty"`

	// Params are the raw render parameters; unset fields take the documented
	// defaults.
	Params config.Params `json:"params"`

	// KeepArtifacts disables removal of the temporary structure copy, script,
	// and raster. Useful for debugging a failing render.
	KeepArtifacts bool `json:"keep_artifacts,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInputMalformed, "input reference is required")
	}
	o.Params.ValidateAndSetDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Batch is the decoded raster as a one-image pixel batch.
	Batch *output.Batch

	// Raster holds the raw encoded raster bytes, ready to write to disk or
	// embed in a service response.
	Raster []byte

	// Script is the generated engine script text, kept for diagnostics.
	Script string

	// EnginePath is the engine binary that performed the render.
	EnginePath string

	// StructurePath is the local structure file that was rendered.
	StructurePath string

	// Stats contains timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics, one duration per stage.
type Stats struct {
	ResolveTime time.Duration
	LocateTime  time.Duration
	CompileTime time.Duration
	ScriptTime  time.Duration
	RenderTime  time.Duration
	DecodeTime  time.Duration
}

// Total returns the summed duration of all stages.
func (s Stats) Total() time.Duration {
	return s.ResolveTime + s.LocateTime + s.CompileTime + s.ScriptTime + s.RenderTime + s.DecodeTime
}
