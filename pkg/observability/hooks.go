// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about pipeline stages and engine
// invocations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach avoids import cycles (hooks are registered by main, not by
// libraries) and keeps the core library free of observability frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnStageComplete(ctx, "resolve", duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Pipeline stage names reported to hooks.
const (
	StageResolve = "resolve"
	StageLocate  = "locate"
	StageCompile = "compile"
	StageScript  = "script"
	StageRender  = "render"
	StageDecode  = "decode"
)

// PipelineHooks receives events from the rendering pipeline.
type PipelineHooks interface {
	// OnStageComplete records a finished pipeline stage. err is nil on
	// success.
	OnStageComplete(ctx context.Context, stage string, duration time.Duration, err error)

	// OnEngineInvocation records an engine subprocess run.
	OnEngineInvocation(ctx context.Context, enginePath string, duration time.Duration, exitErr error)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnStageComplete(context.Context, string, time.Duration, error)    {}
func (NoopPipelineHooks) OnEngineInvocation(context.Context, string, time.Duration, error) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline
// operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores the hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
