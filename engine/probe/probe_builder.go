package probe

import (
	"github.com/rs/zerolog"
)

// ProbeBuilderOption is a functional option for configuring a Probe via NewProbe.
type ProbeBuilderOption func(*probe)

// WithContextFactory is an option builder that sets the factory a probe acquires contexts from.
// It is required for BackendTypeFunc and overrides the default factory of other backends.
//
// Parameters:
//   - f: the context factory
//
// Returns:
//   - ProbeBuilderOption: a function that applies the factory option to a probe
func WithContextFactory(f ContextFactory) ProbeBuilderOption {
	return func(p *probe) {
		p.factory = f
	}
}

// WithForceFallbackAdapter is an option builder that makes the WebGPU probe request a software adapter.
//
// Parameters:
//   - force: true to request the fallback adapter
//
// Returns:
//   - ProbeBuilderOption: a function that applies the fallback option to a probe
func WithForceFallbackAdapter(force bool) ProbeBuilderOption {
	return func(p *probe) {
		p.forceFallbackAdapter = force
	}
}

// WithLogger is an option builder that sets the Probe's logger.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - ProbeBuilderOption: a function that applies the logger option to a probe
func WithLogger(logger zerolog.Logger) ProbeBuilderOption {
	return func(p *probe) {
		p.logger = logger
	}
}
