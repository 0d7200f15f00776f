// Package telemetry holds the OpenTelemetry instruments shared by the backdrop components.
// Instruments come from the global meter provider, which is a no-op until the host installs one.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/Carmen-Shannon/oxy-backdrop"

// Instruments groups the counters recorded by the loader, display machine and engine.
// A nil *Instruments is valid and records nothing.
type Instruments struct {
	loadRequests  metric.Int64Counter
	cacheHits     metric.Int64Counter
	fetches       metric.Int64Counter
	loadFailures  metric.Int64Counter
	invalidations metric.Int64Counter
	transitions   metric.Int64Counter
	hostErrors    metric.Int64Counter
}

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// New creates the instruments on the given meter.
//
// Parameters:
//   - m: the meter to create instruments on; nil selects the global meter
//
// Returns:
//   - *Instruments: the created instruments
//   - error: error if any instrument cannot be created
func New(m metric.Meter) (*Instruments, error) {
	if m == nil {
		m = meter()
	}

	i := &Instruments{}
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&i.loadRequests, "backdrop.loader.requests", "Asset load requests"},
		{&i.cacheHits, "backdrop.loader.cache_hits", "Asset requests served from the cache"},
		{&i.fetches, "backdrop.loader.fetches", "Asset fetches issued to the backend"},
		{&i.loadFailures, "backdrop.loader.failures", "Asset loads that failed"},
		{&i.invalidations, "backdrop.loader.invalidations", "Cache entries invalidated"},
		{&i.transitions, "backdrop.display.transitions", "Display state transitions"},
		{&i.hostErrors, "backdrop.host_errors", "Uncaught host errors observed by the mount"},
	}
	for _, c := range counters {
		counter, err := m.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("creating %s counter: %w", c.name, err)
		}
		*c.dst = counter
	}
	return i, nil
}

// Default returns instruments on the global meter, falling back to a no-op meter
// if the global provider refuses to create them.
//
// Returns:
//   - *Instruments: usable instruments, never nil
func Default() *Instruments {
	if i, err := New(nil); err == nil {
		return i
	}
	i, _ := New(noop.Meter{})
	return i
}

// LoadRequested records a Request or Load call for path.
func (i *Instruments) LoadRequested(ctx context.Context, path string) {
	if i != nil {
		add(ctx, i.loadRequests, attribute.String("path", path))
	}
}

// CacheHit records a request answered by an existing cache entry.
func (i *Instruments) CacheHit(ctx context.Context, path string) {
	if i != nil {
		add(ctx, i.cacheHits, attribute.String("path", path))
	}
}

// Fetched records a fetch submitted to the backend.
func (i *Instruments) Fetched(ctx context.Context, path string) {
	if i != nil {
		add(ctx, i.fetches, attribute.String("path", path))
	}
}

// LoadFailed records a load that resolved as failed.
func (i *Instruments) LoadFailed(ctx context.Context, path string) {
	if i != nil {
		add(ctx, i.loadFailures, attribute.String("path", path))
	}
}

// Invalidated records a cache eviction.
func (i *Instruments) Invalidated(ctx context.Context, path string) {
	if i != nil {
		add(ctx, i.invalidations, attribute.String("path", path))
	}
}

// Transitioned records a display state change.
func (i *Instruments) Transitioned(ctx context.Context, from, to string) {
	if i != nil {
		add(ctx, i.transitions, attribute.String("from", from), attribute.String("to", to))
	}
}

// HostError records an uncaught host error and whether the subsystem filter accepted it.
func (i *Instruments) HostError(ctx context.Context, matched bool) {
	if i != nil {
		add(ctx, i.hostErrors, attribute.Bool("matched", matched))
	}
}

func add(ctx context.Context, c metric.Int64Counter, attrs ...attribute.KeyValue) {
	if c == nil {
		return
	}
	c.Add(ctx, 1, metric.WithAttributes(attrs...))
}
