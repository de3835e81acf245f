// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about pipeline execution and media encoding.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so the library packages
// stay free of import cycles and of any particular metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetEncodeHooks(&myEncodeHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLoadStart(ctx, path)
//	// ... read geometry ...
//	observability.Pipeline().OnLoadComplete(ctx, path, tips, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the visualization pipeline.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, path string)
	OnLoadComplete(ctx context.Context, path string, tipCount int, duration time.Duration, err error)

	// Scene events
	OnSceneStart(ctx context.Context, kind string, panelCount int)
	OnSceneComplete(ctx context.Context, kind string, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Encode Hooks
// =============================================================================

// EncodeHooks receives events from frame capture and the external encoders.
type EncodeHooks interface {
	// OnFrame records one rendered frame.
	OnFrame(ctx context.Context, index, total int)

	// OnToolStart records the launch of an external encoder.
	OnToolStart(ctx context.Context, tool string, frames int)

	// OnToolComplete records the encoder exit.
	OnToolComplete(ctx context.Context, tool string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnSceneStart(context.Context, string, int)                         {}
func (NoopPipelineHooks) OnSceneComplete(context.Context, string, time.Duration, error)     {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                           {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)  {}

// NoopEncodeHooks is a no-op implementation of EncodeHooks.
type NoopEncodeHooks struct{}

func (NoopEncodeHooks) OnFrame(context.Context, int, int)                            {}
func (NoopEncodeHooks) OnToolStart(context.Context, string, int)                     {}
func (NoopEncodeHooks) OnToolComplete(context.Context, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	encodeHooks   EncodeHooks   = NoopEncodeHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetEncodeHooks registers custom encode hooks.
// This should be called once at application startup before any frames are rendered.
func SetEncodeHooks(h EncodeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		encodeHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Encode returns the registered encode hooks.
func Encode() EncodeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return encodeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	encodeHooks = NoopEncodeHooks{}
}
