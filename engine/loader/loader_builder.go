package loader

import (
	"net/http"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/telemetry"

	"github.com/rs/zerolog"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithBackend is an option builder that replaces the backend selected by the backend type.
//
// Parameters:
//   - b: the backend that fetches and decodes assets
//
// Returns:
//   - LoaderBuilderOption: a function that applies the backend option to a loader
func WithBackend(b Backend) LoaderBuilderOption {
	return func(l *loader) {
		l.backend = b
	}
}

// WithWorkers is an option builder that sets how many loads may run concurrently.
//
// Parameters:
//   - n: the worker pool size, at least 1
//
// Returns:
//   - LoaderBuilderOption: a function that applies the workers option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = n
	}
}

// WithHTTPClient is an option builder that sets the client the glTF backend uses for URLs.
//
// Parameters:
//   - c: the HTTP client
//
// Returns:
//   - LoaderBuilderOption: a function that applies the client option to a loader
func WithHTTPClient(c *http.Client) LoaderBuilderOption {
	return func(l *loader) {
		l.httpClient = c
	}
}

// WithLogger is an option builder that sets the Loader's logger.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(logger zerolog.Logger) LoaderBuilderOption {
	return func(l *loader) {
		l.logger = logger
	}
}

// WithInstruments is an option builder that sets the metric instruments the Loader records to.
//
// Parameters:
//   - i: the instruments
//
// Returns:
//   - LoaderBuilderOption: a function that applies the instruments option to a loader
func WithInstruments(i *telemetry.Instruments) LoaderBuilderOption {
	return func(l *loader) {
		l.instruments = i
	}
}
