package engine

import (
	"time"

	"github.com/kestrel3d/rdgo/engine/window"
	"github.com/kestrel3d/rdgo/respool"
	"github.com/kestrel3d/rdgo/rhi"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// The tick callback will be called at this rate for game logic updates.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Second / time.Duration(fps)
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create and manage one internally.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithBackend sets the rhi.Backend the engine drives every frame's
// rdg.Builder against, and builds the transient resource pool manager
// shared by every frame graph from it.
//
// Parameters:
//   - backend: the realized rhi.Backend (mockbackend for tests, wgpubackend otherwise)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithBackend(backend rhi.Backend) EngineBuilderOption {
	return func(e *engine) {
		e.backend = backend
		e.pools = respool.NewManager(backend)
	}
}

// WithSwapchainFormat overrides the swapchain's pixel format. Defaults to
// rhi.FormatRGBA8Unorm.
func WithSwapchainFormat(format rhi.Format) EngineBuilderOption {
	return func(e *engine) {
		e.swapchainFormat = format
	}
}

// WithSwapchainImageCount overrides the swapchain's backbuffer count.
// Defaults to 2 (double-buffered).
func WithSwapchainImageCount(count uint32) EngineBuilderOption {
	return func(e *engine) {
		e.swapchainImageCount = count
	}
}

// WithPresentMode overrides the swapchain's present mode. Defaults to
// rhi.PresentModeVSync.
func WithPresentMode(mode rhi.PresentMode) EngineBuilderOption {
	return func(e *engine) {
		e.swapchainPresentMode = mode
	}
}

// WithGraph registers a FrameGraph at the given z-index key during engine
// construction. Graphs contribute passes in ascending key order during the
// render loop.
//
// Parameters:
//   - key: the z-index determining build order (lower builds first)
//   - g: the FrameGraph to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithGraph(key int, g FrameGraph) EngineBuilderOption {
	return func(e *engine) {
		e.graphs[key] = g
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Second / time.Duration(fps)
	}
}
