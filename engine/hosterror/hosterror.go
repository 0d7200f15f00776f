package hosterror

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// UncaughtError wraps a value recovered from a panic so it can travel through the error
// channel as a regular error.
type UncaughtError struct {
	// Source names the goroutine or subsystem the panic was recovered in.
	Source string

	// Value is the recovered panic value.
	Value any

	// Stack is the goroutine stack captured at recovery time.
	Stack []byte
}

func (e *UncaughtError) Error() string {
	return fmt.Sprintf("%s: panic: %v", e.Source, e.Value)
}

// Unwrap returns the recovered value when it is itself an error.
func (e *UncaughtError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// channel is the implementation of the Channel interface.
type channel struct {
	mu          sync.RWMutex
	nextID      uint64
	subscribers map[uint64]func(error)
}

// Channel is the process-wide uncaught-error notification stream. Any goroutine may report
// into it; subscribers decide for themselves whether an error concerns them.
type Channel interface {
	// Subscribe registers fn to receive every reported error.
	// fn is invoked on the reporting goroutine and must not block.
	//
	// Parameters:
	//   - fn: the subscriber callback
	//
	// Returns:
	//   - func(): unsubscribes fn; safe to call more than once
	Subscribe(fn func(error)) func()

	// Report delivers err to every current subscriber. Nil errors are dropped.
	//
	// Parameters:
	//   - err: the uncaught error
	Report(err error)

	// Recover is meant to be deferred. It recovers a panic in the calling goroutine and
	// reports it as an *UncaughtError tagged with source.
	//
	// Parameters:
	//   - source: a label for the recovering goroutine
	Recover(source string)

	// Subscribers returns the number of active subscriptions.
	//
	// Returns:
	//   - int: the subscriber count
	Subscribers() int
}

var _ Channel = &channel{}

// NewChannel creates an empty Channel.
//
// Returns:
//   - Channel: a channel with no subscribers
func NewChannel() Channel {
	return &channel{
		subscribers: make(map[uint64]func(error)),
	}
}

func (c *channel) Subscribe(fn func(error)) func() {
	if fn == nil {
		return func() {}
	}

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subscribers[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subscribers, id)
			c.mu.Unlock()
		})
	}
}

func (c *channel) Report(err error) {
	if err == nil {
		return
	}

	// Snapshot so subscribers may unsubscribe from inside their callback.
	c.mu.RLock()
	subs := make([]func(error), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.RUnlock()

	for _, fn := range subs {
		fn(err)
	}
}

func (c *channel) Recover(source string) {
	if r := recover(); r != nil {
		c.Report(&UncaughtError{Source: source, Value: r, Stack: debug.Stack()})
	}
}

func (c *channel) Subscribers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.subscribers)
}
