package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/animator"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/hosterror"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/loader"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/probe"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scene"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/telemetry"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/window"

	"github.com/rs/zerolog"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithRenderer sets the renderer whose frame goroutine drives the backdrop. Required.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithWindow sets the window hosting the renderer's surface. Without a window, Run waits
// on its context instead of a message pump.
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

// WithLoader sets the asset loader. Its cache outlives every mount.
//
// Parameters:
//   - l: the loader
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLoader(l loader.Loader) EngineBuilderOption {
	return func(e *engine) {
		e.loader = l
	}
}

// WithAnimator sets the animation playback controller.
//
// Parameters:
//   - c: the controller
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithAnimator(c animator.Controller) EngineBuilderOption {
	return func(e *engine) {
		e.animator = c
	}
}

// WithProbe sets the capability probe run at the start of every mount.
//
// Parameters:
//   - p: the probe
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProbe(p probe.Probe) EngineBuilderOption {
	return func(e *engine) {
		e.prober = p
	}
}

// WithScene sets the scene the asset and fallback are composed into.
//
// Parameters:
//   - s: the Scene
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithHostErrors sets the process-wide error channel each mount listens to.
// Pass the same channel to the renderer so its frame faults reach the mount; when omitted
// the renderer's channel is used.
//
// Parameters:
//   - ch: the host error channel
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithHostErrors(ch hosterror.Channel) EngineBuilderOption {
	return func(e *engine) {
		e.hostErrors = ch
	}
}

// WithAssetPath sets the asset to mount.
//
// Parameters:
//   - path: a file path or an http(s) URL
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithAssetPath(path string) EngineBuilderOption {
	return func(e *engine) {
		if path != "" {
			e.assetPath = path
		}
	}
}

// WithErrorKeywords sets the substrings that attribute an untyped host error to the backdrop.
// The asset's base name is always added.
//
// Parameters:
//   - keywords: the keyword list; nil keeps the defaults
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithErrorKeywords(keywords []string) EngineBuilderOption {
	return func(e *engine) {
		e.keywords = keywords
	}
}

// WithLoadTimeout bounds how long a mount waits for its asset. Zero waits forever.
//
// Parameters:
//   - d: the timeout
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLoadTimeout(d time.Duration) EngineBuilderOption {
	return func(e *engine) {
		if d < 0 {
			d = 0
		}
		e.loadTimeout = d
	}
}

// WithProcedural sets the motion used when the asset has no playable clips.
//
// Parameters:
//   - p: the procedural motion
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProcedural(p animator.Procedural) EngineBuilderOption {
	return func(e *engine) {
		e.procedural = p
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithInstruments sets the metric instruments.
func WithInstruments(i *telemetry.Instruments) EngineBuilderOption {
	return func(e *engine) {
		e.instruments = i
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}
