// Package pkg provides the core libraries for molrender.
//
// # Overview
//
// Molrender turns molecular structure files (PDB, mmCIF) into raster images
// by driving the PyMOL engine as an external subprocess. The pkg directory
// is organized as follows:
//
//  1. [render] - Pipeline stages (input, config, script, engine, output)
//  2. [pipeline] - Orchestration of the six stages into one run
//  3. [queue] - Folder queues of structure files
//  4. [registry] - Immutable operation table for the HTTP surface
//  5. [errors] - Structured errors with machine-readable codes
//  6. [observability] - Optional instrumentation hooks
//
// # Architecture
//
// The typical data flow through molrender:
//
//	Structure reference (path / URL / inline payload)
//	         ↓
//	    [render/input] (resolve to a local file)
//	         ↓
//	    [render/config] (compile raw parameters to a typed configuration)
//	         ↓
//	    [render/script] (generate the engine script)
//	         ↓
//	    [render/engine] (locate and run the engine subprocess)
//	         ↓
//	    [render/output] (decode the rendered raster)
//
// # Quick Start
//
// Render a structure through the full pipeline:
//
//	import "github.com/molviz/molrender/pkg/pipeline"
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:  "structures/1abc.pdb",
//	    Params: config.Params{Preset: "high"},
//	})
//
// Every run is stateless: nothing is cached and temporary artifacts are
// removed on completion.
//
// [render]: https://pkg.go.dev/github.com/molviz/molrender/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/molviz/molrender/pkg/pipeline
// [queue]: https://pkg.go.dev/github.com/molviz/molrender/pkg/queue
// [registry]: https://pkg.go.dev/github.com/molviz/molrender/pkg/registry
// [errors]: https://pkg.go.dev/github.com/molviz/molrender/pkg/errors
// [observability]: https://pkg.go.dev/github.com/molviz/molrender/pkg/observability
package pkg
