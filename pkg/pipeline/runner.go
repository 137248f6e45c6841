package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/molviz/molrender/pkg/errors"
	"github.com/molviz/molrender/pkg/observability"
	"github.com/molviz/molrender/pkg/render/config"
	"github.com/molviz/molrender/pkg/render/engine"
	"github.com/molviz/molrender/pkg/render/input"
	"github.com/molviz/molrender/pkg/render/output"
	"github.com/molviz/molrender/pkg/render/script"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for its collaborators and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Resolver *input.Resolver
	Executor engine.Executor
	Logger   *log.Logger
}

// NewRunner creates a runner with the default resolver and the subprocess
// executor. If logger is nil, the package default logger is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Resolver: input.NewResolver(),
		Executor: engine.CommandExecutor{},
		Logger:   logger,
	}
}

// Execute runs the complete resolve → locate → compile → generate → execute
// → decode pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	result := &Result{}

	// Stage 1: Resolve
	resolveStart := time.Now()
	resolved, err := r.Resolver.Resolve(ctx, opts.Input)
	if err != nil {
		stageDone(ctx, observability.StageResolve, resolveStart, err)
		return nil, err
	}
	if resolved.Temporary && !opts.KeepArtifacts {
		defer os.Remove(resolved.Path)
	}
	result.StructurePath = resolved.Path
	result.Stats.ResolveTime = stageDone(ctx, observability.StageResolve, resolveStart, nil)
	logger.Debug("resolved structure",
		"path", resolved.Path,
		"temporary", resolved.Temporary,
		"duration", result.Stats.ResolveTime)

	// Stage 2: Locate
	locateStart := time.Now()
	enginePath, err := engine.Locate(opts.Engine)
	if err != nil {
		stageDone(ctx, observability.StageLocate, locateStart, err)
		return nil, err
	}
	result.EnginePath = enginePath
	result.Stats.LocateTime = stageDone(ctx, observability.StageLocate, locateStart, nil)
	logger.Debug("located engine", "path", enginePath)

	// Stage 3: Compile
	compileStart := time.Now()
	cfg, err := config.Compile(opts.Params)
	if err != nil {
		stageDone(ctx, observability.StageCompile, compileStart, err)
		return nil, err
	}
	result.Stats.CompileTime = stageDone(ctx, observability.StageCompile, compileStart, nil)

	// Stage 4: Generate
	scriptStart := time.Now()
	rasterPath := tempArtifact(".png")
	scriptText := script.Generate(cfg, resolved.Path, rasterPath).String()
	scriptPath := tempArtifact(".pml")
	if err := os.WriteFile(scriptPath, []byte(scriptText), 0600); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write engine script")
	}
	if !opts.KeepArtifacts {
		defer os.Remove(scriptPath)
		defer os.Remove(rasterPath)
	}
	result.Script = scriptText
	result.Stats.ScriptTime = stageDone(ctx, observability.StageScript, scriptStart, nil)
	logger.Debug("generated script", "path", scriptPath, "raster", rasterPath)

	// Stage 5: Execute
	renderStart := time.Now()
	runErr := r.Executor.Run(ctx, enginePath, scriptPath)
	observability.Pipeline().OnEngineInvocation(ctx, enginePath, time.Since(renderStart), runErr)
	if runErr != nil {
		stageDone(ctx, observability.StageRender, renderStart, runErr)
		return nil, runErr
	}
	result.Stats.RenderTime = stageDone(ctx, observability.StageRender, renderStart, nil)
	logger.Info("engine finished",
		"engine", enginePath,
		"duration", result.Stats.RenderTime)

	// Stage 6: Decode
	decodeStart := time.Now()
	raster, err := os.ReadFile(rasterPath)
	if err != nil {
		err = errors.New(errors.ErrCodeOutputMissing,
			"engine did not produce an image (%s missing)", rasterPath)
		stageDone(ctx, observability.StageDecode, decodeStart, err)
		return nil, err
	}
	batch, err := output.Decode(raster)
	if err != nil {
		stageDone(ctx, observability.StageDecode, decodeStart, err)
		return nil, err
	}
	result.Raster = raster
	result.Batch = batch
	result.Stats.DecodeTime = stageDone(ctx, observability.StageDecode, decodeStart, nil)

	img := batch.Images[0]
	logger.Info("decoded raster",
		"width", img.Width,
		"height", img.Height,
		"duration", result.Stats.DecodeTime)

	return result, nil
}

// tempArtifact returns a unique path in the temp directory for a per-run
// artifact. Unique names keep concurrent runs from clobbering each other.
func tempArtifact(suffix string) string {
	return filepath.Join(os.TempDir(), "molrender-"+uuid.NewString()+suffix)
}

// stageDone reports a finished stage to the registered hooks and returns its
// duration.
func stageDone(ctx context.Context, stage string, start time.Time, err error) time.Duration {
	d := time.Since(start)
	observability.Pipeline().OnStageComplete(ctx, stage, d, err)
	return d
}
