package display

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/fault"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_HappyPath(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, StateCapabilityCheck, m.State())
	assert.Equal(t, View{Kind: ViewFallback, Loading: true}, m.View())

	require.NoError(t, m.ToLoading())
	assert.Equal(t, StateLoading, m.State())
	assert.Equal(t, View{Kind: ViewFallback, Loading: true}, m.View())

	require.NoError(t, m.ToReady())
	assert.Equal(t, StateReady, m.State())
	assert.Equal(t, View{Kind: ViewLoaded}, m.View())
	assert.Empty(t, m.Message())
	assert.NoError(t, m.Err())
}

func TestMachine_InvalidTransitions(t *testing.T) {
	m := NewMachine()

	assert.ErrorIs(t, m.ToReady(), ErrInvalidTransition)
	assert.Equal(t, StateCapabilityCheck, m.State())

	require.NoError(t, m.ToLoading())
	assert.ErrorIs(t, m.ToLoading(), ErrInvalidTransition)

	require.NoError(t, m.ToReady())
	assert.ErrorIs(t, m.ToLoading(), ErrInvalidTransition)
	assert.ErrorIs(t, m.ToReady(), ErrInvalidTransition)
	assert.Equal(t, StateReady, m.State())
}

func TestMachine_ErrorIsTerminal(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.ToLoading())

	first := &fault.LoadError{Path: "jellyfish.glb", Err: errors.New("404 Not Found")}
	assert.True(t, m.Fail(first))
	assert.False(t, m.Fail(errors.New("second")))

	assert.Equal(t, StateError, m.State())
	assert.Same(t, first, m.Err())
	assert.Equal(t, fault.FallbackMessage+" "+first.Error(), m.Message())
	assert.ErrorIs(t, m.ToLoading(), ErrInvalidTransition)
	assert.ErrorIs(t, m.ToReady(), ErrInvalidTransition)

	v := m.View()
	assert.Equal(t, ViewMessage, v.Kind)
	assert.True(t, v.Retry)
	assert.Equal(t, m.Message(), v.Message)
}

func TestMachine_CapabilityMessage(t *testing.T) {
	m := NewMachine()

	assert.True(t, m.Fail(&fault.CapabilityError{Err: errors.New("no adapter")}))
	assert.Equal(t, fault.CapabilityMessage, m.Message())
}

func TestMachine_FailFromEveryLiveState(t *testing.T) {
	for _, setup := range []func(Machine){
		func(Machine) {},
		func(m Machine) { _ = m.ToLoading() },
		func(m Machine) { _ = m.ToLoading(); _ = m.ToReady() },
	} {
		m := NewMachine()
		setup(m)
		assert.True(t, m.Fail(nil))
		assert.Equal(t, fault.FallbackMessage, m.Message())
		assert.Error(t, m.Err())
	}
}

func TestMachine_Listeners(t *testing.T) {
	m := NewMachine()

	var seen []Transition
	unsubscribe := m.OnTransition(func(tr Transition) {
		assert.Equal(t, tr.To, m.State())
		seen = append(seen, tr)
	})

	require.NoError(t, m.ToLoading())
	cause := errors.New("webgl context lost")
	m.Fail(cause)

	require.Len(t, seen, 2)
	assert.Equal(t, Transition{From: StateCapabilityCheck, To: StateLoading}, seen[0])
	assert.Equal(t, StateLoading, seen[1].From)
	assert.Equal(t, StateError, seen[1].To)
	assert.Same(t, cause, seen[1].Err)

	unsubscribe()
	unsubscribe()

	other := NewMachine()
	calls := 0
	other.OnTransition(func(Transition) { calls++ })
	stop := other.OnTransition(func(Transition) {})
	stop()
	require.NoError(t, other.ToLoading())
	assert.Equal(t, 1, calls)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StateCapabilityCheck, StateError))
	assert.False(t, CanTransition(StateCapabilityCheck, StateReady))
	assert.False(t, CanTransition(StateError, StateLoading))
	assert.False(t, CanTransition(StateReady, StateLoading))
}
