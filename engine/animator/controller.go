package animator

import (
	"errors"
	"sync"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/fault"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/loader"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/model"

	"github.com/rs/zerolog"
)

// ErrNotReady is returned by Bind when the handle has not resolved successfully.
var ErrNotReady = errors.New("animator: asset handle is not ready")

// binding is the implementation of the Binding interface.
type binding struct {
	mu      sync.Mutex
	handle  *loader.AssetHandle
	target  model.Node
	mixer   Mixer
	actions []Action
	stopped bool
}

// Binding is the playback state attached to one loaded asset.
// It exists from a successful Bind until Stop.
type Binding interface {
	// Handle returns the asset the binding plays.
	Handle() *loader.AssetHandle

	// Target returns the node the binding was attached to.
	Target() model.Node

	// Actions returns the clip actions that started successfully.
	Actions() []Action

	// Native reports whether at least one authored clip is playing.
	// When false the caller is expected to drive procedural motion instead.
	Native() bool

	// Update advances clip playback by dt seconds. It is a no-op after Stop.
	//
	// Parameters:
	//   - dt: the elapsed wall time since the previous update
	Update(dt float32)

	// Stop halts every action. Further Updates have no effect.
	Stop()

	// Stopped reports whether Stop has been called.
	Stopped() bool
}

var _ Binding = &binding{}

func (b *binding) Handle() *loader.AssetHandle {
	return b.handle
}

func (b *binding) Target() model.Node {
	return b.target
}

func (b *binding) Actions() []Action {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Action(nil), b.actions...)
}

func (b *binding) Native() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.actions) > 0
}

func (b *binding) Update(dt float32) {
	b.mu.Lock()
	stopped := b.stopped
	b.mu.Unlock()
	if stopped {
		return
	}
	b.mixer.Update(dt)
}

func (b *binding) Stop() {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return
	}
	b.stopped = true
	b.mu.Unlock()
	b.mixer.StopAll()
}

func (b *binding) Stopped() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stopped
}

// controller is the implementation of the Controller interface.
type controller struct {
	mu       sync.Mutex
	current  *binding
	newMixer func() Mixer
	logger   zerolog.Logger
}

// Controller binds loaded assets to playback.
// It holds at most one Binding; binding a new asset tears the previous one down first.
type Controller interface {
	// Bind starts every clip of a ready asset, looping forever from time zero.
	// A clip that cannot be bound is logged as a fault.BindError and skipped; the
	// remaining clips still play. A binding with no playing clip is not Native.
	//
	// Parameters:
	//   - h: the asset handle, which must be in LoadStateReady
	//   - target: the node the asset is attached under
	//
	// Returns:
	//   - Binding: the new binding
	//   - error: ErrNotReady if the handle is pending or failed
	Bind(h *loader.AssetHandle, target model.Node) (Binding, error)

	// Current returns the active binding, or nil.
	Current() Binding

	// Teardown stops and forgets the active binding.
	Teardown()
}

var _ Controller = &controller{}

// NewController creates a new Controller instance with the options applied.
//
// Parameters:
//   - options: a variadic list of ControllerBuilderOption functions to configure the Controller
//
// Returns:
//   - Controller: a new instance of Controller configured with the provided options
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controller{
		newMixer: NewMixer,
		logger:   zerolog.Nop(),
	}
	for _, option := range options {
		option(c)
	}
	c.logger = c.logger.With().Str("component", "animator").Logger()
	return c
}

func (c *controller) Bind(h *loader.AssetHandle, target model.Node) (Binding, error) {
	if h == nil || h.State() != loader.LoadStateReady {
		return nil, ErrNotReady
	}

	c.Teardown()

	b := &binding{
		handle: h,
		target: target,
		mixer:  c.newMixer(),
	}
	root := h.Root()
	for _, clip := range h.Clips() {
		a, err := b.mixer.ClipAction(clip, root)
		if err != nil {
			name := ""
			if clip != nil {
				name = clip.Name
			}
			bindErr := &fault.BindError{Clip: name, Err: err}
			c.logger.Warn().Err(bindErr).Str("path", h.Path()).Msg("skipping clip")
			continue
		}
		a.Reset().SetLoop(LoopRepeat, Infinite).Play()
		b.actions = append(b.actions, a)
	}

	c.mu.Lock()
	c.current = b
	c.mu.Unlock()

	c.logger.Debug().
		Str("path", h.Path()).
		Int("clips", len(h.Clips())).
		Int("playing", len(b.actions)).
		Bool("native", len(b.actions) > 0).
		Msg("bound asset")
	return b, nil
}

func (c *controller) Current() Binding {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	return c.current
}

func (c *controller) Teardown() {
	c.mu.Lock()
	b := c.current
	c.current = nil
	c.mu.Unlock()
	if b != nil {
		b.Stop()
	}
}
