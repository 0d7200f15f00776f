package display

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/fault"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/telemetry"

	"github.com/rs/zerolog"
)

// State is the display lifecycle state of one mount.
type State int

const (
	// StateCapabilityCheck is the initial state, before the rendering context is probed.
	StateCapabilityCheck State = iota
	// StateLoading means the asset is being fetched; the fallback primitive is shown.
	StateLoading
	// StateReady means the asset is attached and animating.
	StateReady
	// StateError is terminal for the mount; only a remount leaves it.
	StateError
)

func (s State) String() string {
	switch s {
	case StateCapabilityCheck:
		return "capability_check"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrInvalidTransition is returned when a transition is not allowed from the current state.
var ErrInvalidTransition = errors.New("display: invalid transition")

// ErrUnknownFailure is recorded when Fail is called without a cause.
var ErrUnknownFailure = errors.New("display: unknown failure")

var transitions = map[State][]State{
	StateCapabilityCheck: {StateLoading, StateError},
	StateLoading:         {StateReady, StateError},
	StateReady:           {StateError},
	StateError:           nil,
}

// CanTransition reports whether the table allows moving from one state to another.
//
// Parameters:
//   - from: the current state
//   - to: the requested state
//
// Returns:
//   - bool: true if allowed
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition describes one state change delivered to listeners.
type Transition struct {
	From State
	To   State
	// Err is the failure that caused a move to StateError, nil otherwise.
	Err error
}

// machine is the implementation of the Machine interface.
type machine struct {
	mu        sync.Mutex
	state     State
	err       error
	message   string
	listeners []listener
	nextID    uint64

	logger      zerolog.Logger
	instruments *telemetry.Instruments
}

type listener struct {
	id uint64
	fn func(Transition)
}

// Machine is the error/fallback state machine of a single mount.
// It starts in StateCapabilityCheck and only moves along the transition table:
// CapabilityCheck to Loading or Error, Loading to Ready or Error, Ready to Error.
type Machine interface {
	// State returns the current state.
	State() State

	// Err returns the failure that moved the machine into StateError, or nil.
	Err() error

	// Message returns the user-facing text for StateError, or "" in any other state.
	Message() string

	// ToLoading moves from StateCapabilityCheck to StateLoading.
	//
	// Returns:
	//   - error: ErrInvalidTransition from any other state
	ToLoading() error

	// ToReady moves from StateLoading to StateReady.
	//
	// Returns:
	//   - error: ErrInvalidTransition from any other state
	ToReady() error

	// Fail moves to StateError and records err and its message.
	// Only the first failure is kept; failing an errored machine is a no-op.
	//
	// Parameters:
	//   - err: the failure cause
	//
	// Returns:
	//   - bool: true if this call moved the machine into StateError
	Fail(err error) bool

	// OnTransition registers fn to be called after every state change.
	// Listeners run outside the machine's lock, in registration order.
	//
	// Parameters:
	//   - fn: the listener
	//
	// Returns:
	//   - func(): removes the listener
	OnTransition(fn func(Transition)) func()

	// View returns the presentation variant for the current state.
	View() View
}

var _ Machine = &machine{}

// NewMachine creates a new Machine in StateCapabilityCheck with the options applied.
//
// Parameters:
//   - options: a variadic list of MachineBuilderOption functions to configure the Machine
//
// Returns:
//   - Machine: a new instance of Machine configured with the provided options
func NewMachine(options ...MachineBuilderOption) Machine {
	m := &machine{
		state:  StateCapabilityCheck,
		logger: zerolog.Nop(),
	}
	for _, option := range options {
		option(m)
	}
	m.logger = m.logger.With().Str("component", "display").Logger()
	return m
}

func (m *machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *machine) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *machine) Message() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.message
}

func (m *machine) ToLoading() error {
	return m.transition(StateLoading, nil)
}

func (m *machine) ToReady() error {
	return m.transition(StateReady, nil)
}

func (m *machine) Fail(err error) bool {
	return m.transition(StateError, err) == nil
}

func (m *machine) OnTransition(fn func(Transition)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners = append(m.listeners, listener{id: id, fn: fn})
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			for i, l := range m.listeners {
				if l.id == id {
					m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (m *machine) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return viewFor(m.state, m.message)
}

func (m *machine) transition(to State, err error) error {
	m.mu.Lock()
	from := m.state
	if !CanTransition(from, to) {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	m.state = to
	if to == StateError {
		m.message = fault.Message(err)
		if err == nil {
			err = ErrUnknownFailure
		}
		m.err = err
	}
	listeners := make([]listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	ev := m.logger.Info()
	if err != nil {
		ev = m.logger.Warn().Err(err).Str("kind", fault.KindOf(err).String())
	}
	ev.Str("from", from.String()).Str("to", to.String()).Msg("display transition")
	m.instruments.Transitioned(context.Background(), from.String(), to.String())

	t := Transition{From: from, To: to, Err: err}
	for _, l := range listeners {
		l.fn(t)
	}
	return nil
}
