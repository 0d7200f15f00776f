package animator

import (
	"github.com/rs/zerolog"
)

// ControllerBuilderOption is a functional option for configuring a Controller during construction.
type ControllerBuilderOption func(*controller)

// WithMixerFactory is an option builder that sets how the Controller creates a Mixer per binding.
//
// Parameters:
//   - f: returns a fresh Mixer for each Bind
//
// Returns:
//   - ControllerBuilderOption: a function that applies the mixer factory option to a controller
func WithMixerFactory(f func() Mixer) ControllerBuilderOption {
	return func(c *controller) {
		c.newMixer = f
	}
}

// WithLogger is an option builder that sets the Controller's logger.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - ControllerBuilderOption: a function that applies the logger option to a controller
func WithLogger(logger zerolog.Logger) ControllerBuilderOption {
	return func(c *controller) {
		c.logger = logger
	}
}
