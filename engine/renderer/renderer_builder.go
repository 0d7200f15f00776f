package renderer

import (
	"time"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/hosterror"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/profiler"

	"github.com/rs/zerolog"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithFrameLimit caps the frame rate. Pass 0 to uncap (the wgpu default, where VSync paces frames).
//
// Parameters:
//   - fps: maximum frames per second
//
// Returns:
//   - RendererBuilderOption: a function that applies the frame limit to a renderer
func WithFrameLimit(fps float64) RendererBuilderOption {
	return func(r *renderer) {
		if fps <= 0 {
			r.frameLimit = 0
			return
		}
		r.frameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// WithHostErrors sets the channel frame panics and surface errors are reported to.
//
// Parameters:
//   - ch: the host error channel
//
// Returns:
//   - RendererBuilderOption: a function that applies the channel to a renderer
func WithHostErrors(ch hosterror.Channel) RendererBuilderOption {
	return func(r *renderer) {
		if ch != nil {
			r.hostErrors = ch
		}
	}
}

// WithBackend replaces the backend selected by the backend type.
//
// Parameters:
//   - backend: the backend to draw with
//
// Returns:
//   - RendererBuilderOption: a function that applies the backend to a renderer
func WithBackend(backend RendererBackend) RendererBuilderOption {
	return func(r *renderer) {
		r.backend = backend
	}
}

// WithProfiler sets the profiler ticked every frame while profiling is enabled.
func WithProfiler(p *profiler.Profiler) RendererBuilderOption {
	return func(r *renderer) {
		r.profiler = p
	}
}

// WithLogger sets the logger used by the renderer.
func WithLogger(logger zerolog.Logger) RendererBuilderOption {
	return func(r *renderer) {
		r.logger = logger
	}
}
