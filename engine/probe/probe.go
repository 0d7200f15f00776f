package probe

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// ProbeBackendType identifies how the rendering context is acquired.
type ProbeBackendType int

const (
	// BackendTypeWGPU probes by creating a throwaway WebGPU instance and requesting an adapter.
	BackendTypeWGPU ProbeBackendType = iota
	// BackendTypeFunc probes through a caller-supplied ContextFactory (see WithContextFactory).
	BackendTypeFunc
)

// ErrNoFactory is returned by a BackendTypeFunc probe that has no ContextFactory.
var ErrNoFactory = errors.New("probe: no context factory configured")

// ProbeContext is a rendering context acquired only to prove it can be acquired.
type ProbeContext interface {
	// Release frees the context and everything created with it.
	Release()
}

// ContextFactory acquires a ProbeContext.
type ContextFactory interface {
	// CreateProbeContext attempts to acquire a rendering context.
	//
	// Returns:
	//   - ProbeContext: the acquired context, released by the probe
	//   - error: error if no context can be created
	CreateProbeContext() (ProbeContext, error)
}

// ContextFactoryFunc adapts an ordinary function to the ContextFactory interface.
type ContextFactoryFunc func() (ProbeContext, error)

// CreateProbeContext calls f().
func (f ContextFactoryFunc) CreateProbeContext() (ProbeContext, error) {
	return f()
}

// probe is the implementation of the Probe interface.
type probe struct {
	mu      sync.Mutex
	factory ContextFactory
	logger  zerolog.Logger
	lastErr error

	forceFallbackAdapter bool
}

// Probe determines whether a GPU rendering context can be created in the current environment.
// It is run before the 3D path is committed to, so no asset load is issued on a device that
// could never render it.
type Probe interface {
	// Probe attempts to acquire and immediately release a rendering context.
	// Any failure, including a panic inside the graphics driver binding, yields false.
	//
	// Returns:
	//   - bool: true if a context could be created
	Probe() bool

	// Err returns the cause of the most recent failed Probe, or nil.
	//
	// Returns:
	//   - error: the last failure cause
	Err() error
}

var _ Probe = &probe{}

// NewProbe creates a new Probe instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of probe backend to use (e.g., BackendTypeWGPU)
//   - options: a variadic list of ProbeBuilderOption functions to configure the Probe
//
// Returns:
//   - Probe: a new instance of Probe configured with the provided backend and options
func NewProbe(backendType ProbeBackendType, options ...ProbeBuilderOption) Probe {
	p := &probe{
		logger: zerolog.Nop(),
	}
	for _, option := range options {
		option(p)
	}

	switch backendType {
	case BackendTypeWGPU:
		if p.factory == nil {
			p.factory = newWGPUContextFactory(p.forceFallbackAdapter)
		}
	case BackendTypeFunc:
	}

	p.logger = p.logger.With().Str("component", "probe").Logger()
	return p
}

func (p *probe) Probe() bool {
	err := p.try()

	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()

	if err != nil {
		p.logger.Warn().Err(err).Msg("rendering context unavailable")
		return false
	}
	p.logger.Debug().Msg("rendering context available")
	return true
}

func (p *probe) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *probe) try() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("probe panicked: %v", r)
		}
	}()

	if p.factory == nil {
		return ErrNoFactory
	}
	ctx, err := p.factory.CreateProbeContext()
	if err != nil {
		return err
	}
	if ctx == nil {
		return errors.New("probe: factory returned no context")
	}
	ctx.Release()
	return nil
}
