// Package fault defines the error taxonomy shared by the probe, loader, animator, scheduler
// and display state machine. Each kind wraps its cause so errors.Is and errors.As keep working
// across package boundaries.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies an error by the subsystem stage that produced it.
type Kind int

const (
	// KindUnknown is returned by KindOf for errors outside the taxonomy.
	KindUnknown Kind = iota

	// KindCapability means no usable GPU rendering context is available.
	KindCapability

	// KindLoad means fetching or parsing an asset failed.
	KindLoad

	// KindBind means an animation clip could not be attached to its target.
	KindBind

	// KindRuntime means a live frame update failed or a matching host error was reported.
	KindRuntime
)

// String returns a lower-case name for the kind.
func (k Kind) String() string {
	switch k {
	case KindCapability:
		return "capability"
	case KindLoad:
		return "load"
	case KindBind:
		return "bind"
	case KindRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

// CapabilityMessage is the fixed notice surfaced when the probe reports no GPU support.
const CapabilityMessage = "3D rendering is not supported on this device."

// FallbackMessage is the generic notice prefixed to load and runtime failures.
const FallbackMessage = "Something went wrong loading the 3D scene."

// CapabilityError reports that no usable rendering context could be created.
type CapabilityError struct {
	// Err is the probe failure cause, if one was captured.
	Err error
}

func (e *CapabilityError) Error() string {
	if e.Err == nil {
		return "capability: no usable rendering context"
	}
	return fmt.Sprintf("capability: no usable rendering context: %v", e.Err)
}

func (e *CapabilityError) Unwrap() error { return e.Err }

// LoadError reports a fetch or parse failure for an asset path.
type LoadError struct {
	// Path is the asset path that failed to load.
	Path string

	// Err is the underlying fetch or parse error.
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// BindError reports that a single animation clip could not be bound.
type BindError struct {
	// Clip is the name of the clip that failed.
	Clip string

	// Err is the binding failure cause.
	Err error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind clip %q: %v", e.Clip, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// RuntimeError reports a failure during a live frame update, or a host-level error
// attributed to the 3D subsystem.
type RuntimeError struct {
	// Source names where the error was raised (e.g. "scheduler", "renderer", "host").
	Source string

	// Err is the underlying error.
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime (%s): %v", e.Source, e.Err)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// KindOf classifies err by the taxonomy types in its chain, checked in the order
// capability, load, bind, runtime.
//
// Parameters:
//   - err: the error to classify
//
// Returns:
//   - Kind: the kind, or KindUnknown when err is nil or outside the taxonomy
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var (
		capErr  *CapabilityError
		loadErr *LoadError
		bindErr *BindError
		rtErr   *RuntimeError
	)
	switch {
	case errors.As(err, &capErr):
		return KindCapability
	case errors.As(err, &loadErr):
		return KindLoad
	case errors.As(err, &bindErr):
		return KindBind
	case errors.As(err, &rtErr):
		return KindRuntime
	}
	return KindUnknown
}

// Message builds the human-readable text shown for err in the error view.
//
// Parameters:
//   - err: the error that moved the display into its error state
//
// Returns:
//   - string: the display message
func Message(err error) string {
	if KindOf(err) == KindCapability {
		return CapabilityMessage
	}
	if err == nil {
		return FallbackMessage
	}
	return FallbackMessage + " " + err.Error()
}
