package display

import (
	"github.com/Carmen-Shannon/oxy-backdrop/engine/telemetry"

	"github.com/rs/zerolog"
)

// MachineBuilderOption is a functional option for configuring a Machine via NewMachine.
type MachineBuilderOption func(*machine)

// WithLogger is an option builder that sets the Machine's logger.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - MachineBuilderOption: a function that applies the logger option to a machine
func WithLogger(logger zerolog.Logger) MachineBuilderOption {
	return func(m *machine) {
		m.logger = logger
	}
}

// WithInstruments is an option builder that sets the metric instruments transitions are recorded to.
//
// Parameters:
//   - i: the instruments
//
// Returns:
//   - MachineBuilderOption: a function that applies the instruments option to a machine
func WithInstruments(i *telemetry.Instruments) MachineBuilderOption {
	return func(m *machine) {
		m.instruments = i
	}
}
