package hosterror

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel_ReportDeliversToSubscribers(t *testing.T) {
	c := NewChannel()

	var got []error
	unsubscribe := c.Subscribe(func(err error) { got = append(got, err) })
	require.Equal(t, 1, c.Subscribers())

	c.Report(errors.New("webgl context lost"))
	c.Report(nil)

	require.Len(t, got, 1)
	assert.EqualError(t, got[0], "webgl context lost")

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 0, c.Subscribers())

	c.Report(errors.New("after unsubscribe"))
	assert.Len(t, got, 1)
}

func TestChannel_UnsubscribeInsideCallback(t *testing.T) {
	c := NewChannel()

	calls := 0
	var unsubscribe func()
	unsubscribe = c.Subscribe(func(error) {
		calls++
		unsubscribe()
	})

	c.Report(errors.New("first"))
	c.Report(errors.New("second"))

	assert.Equal(t, 1, calls)
}

func TestChannel_Recover(t *testing.T) {
	c := NewChannel()

	var got error
	c.Subscribe(func(err error) { got = err })

	func() {
		defer c.Recover("render")
		panic("surface lost")
	}()

	var uncaught *UncaughtError
	require.ErrorAs(t, got, &uncaught)
	assert.Equal(t, "render", uncaught.Source)
	assert.Equal(t, "surface lost", uncaught.Value)
	assert.NotEmpty(t, uncaught.Stack)
	assert.Contains(t, got.Error(), "render: panic: surface lost")
}

func TestChannel_RecoverWrapsErrorValues(t *testing.T) {
	c := NewChannel()
	cause := errors.New("device lost")

	var got error
	c.Subscribe(func(err error) { got = err })

	func() {
		defer c.Recover("worker")
		panic(cause)
	}()

	assert.ErrorIs(t, got, cause)
}

func TestChannel_ConcurrentReport(t *testing.T) {
	c := NewChannel()

	var mu sync.Mutex
	count := 0
	c.Subscribe(func(error) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Report(errors.New("x"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 32, count)
}
