package scheduler

import (
	"github.com/rs/zerolog"
)

// SchedulerBuilderOption is a functional option for configuring a Scheduler via NewScheduler.
type SchedulerBuilderOption func(*scheduler)

// WithFrameSource is an option builder that sets where the Scheduler registers its tick.
//
// Parameters:
//   - src: the frame source
//
// Returns:
//   - SchedulerBuilderOption: a function that applies the frame source option to a scheduler
func WithFrameSource(src FrameSource) SchedulerBuilderOption {
	return func(s *scheduler) {
		s.source = src
	}
}

// WithLiveness is an option builder that adds an owner liveness check run before every tick.
// When the predicate returns false the scheduler stops itself without running the tick.
//
// Parameters:
//   - live: the liveness predicate
//
// Returns:
//   - SchedulerBuilderOption: a function that applies the liveness option to a scheduler
func WithLiveness(live func() bool) SchedulerBuilderOption {
	return func(s *scheduler) {
		s.liveness = live
	}
}

// WithErrorHandler is an option builder that sets the callback receiving tick failures.
//
// Parameters:
//   - fn: receives a *fault.RuntimeError wrapping the failure
//
// Returns:
//   - SchedulerBuilderOption: a function that applies the error handler option to a scheduler
func WithErrorHandler(fn func(error)) SchedulerBuilderOption {
	return func(s *scheduler) {
		s.onError = fn
	}
}

// WithLogger is an option builder that sets the Scheduler's logger.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - SchedulerBuilderOption: a function that applies the logger option to a scheduler
func WithLogger(logger zerolog.Logger) SchedulerBuilderOption {
	return func(s *scheduler) {
		s.logger = logger
	}
}
