package renderer

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/fault"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/hosterror"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/profiler"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scene"

	"github.com/rs/zerolog"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	surface     Surface

	callbacks []frameCallback
	nextID    uint64
	posted    []func()

	frame    scene.Frame
	attached bool

	frames    atomic.Uint64
	lastFrame time.Time
	now       func() time.Time

	quitChannel chan struct{}
	quitOnce    sync.Once
	running     atomic.Bool

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool
	frameLimit       time.Duration // minimum frame duration; 0 = uncapped

	hostErrors hosterror.Channel
	logger     zerolog.Logger

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

type frameCallback struct {
	id uint64
	fn func(dt float32)
}

// Renderer is the boundary between the backdrop and the GPU.
//
// It owns the single frame goroutine: every frame it runs the continuations queued with
// Post, then the OnFrame callbacks, then draws the last submitted scene snapshot. A panic
// in any of these is recovered and reported to the host error channel as a
// fault.RuntimeError; surface errors are reported the same way with a "wgpu:" prefix.
type Renderer interface {
	// SubmitScene replaces the snapshot drawn by subsequent frames.
	//
	// Parameters:
	//   - f: the frame snapshot
	SubmitScene(f scene.Frame)

	// OnFrame registers cb to run once per frame with the elapsed seconds since the previous frame.
	//
	// Parameters:
	//   - cb: the per-frame callback
	//
	// Returns:
	//   - func(): deregisters cb; safe to call more than once
	OnFrame(cb func(dt float32)) func()

	// Post queues fn to run on the frame goroutine at the start of the next frame.
	//
	// Parameters:
	//   - fn: the continuation
	Post(fn func())

	// Attach resumes drawing submitted snapshots.
	Attach()

	// Detach stops drawing submitted snapshots; frames only clear to the background.
	Detach()

	// Attached reports whether submitted snapshots are drawn.
	Attached() bool

	// Resize configures the underlying backend to handle a new surface size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the present mode and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Step runs exactly one frame on the calling goroutine.
	//
	// Parameters:
	//   - dt: the elapsed time to report to frame callbacks, in seconds
	Step(dt float32)

	// Frames returns the number of frames run so far.
	Frames() uint64

	// HostErrors returns the channel frame faults are reported to. Without WithHostErrors
	// the renderer owns a private channel; subscribe to it to observe those faults.
	//
	// Returns:
	//   - hosterror.Channel: the fault channel
	HostErrors() hosterror.Channel

	// EnableProfiler enables frame statistics logging.
	EnableProfiler()

	// DisableProfiler disables frame statistics logging.
	DisableProfiler()

	// Run drives frames until Quit is called or ctx is done. It blocks.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: ctx.Err() when cancelled, nil after Quit
	Run(ctx context.Context) error

	// Quit stops Run. Safe to call multiple times.
	Quit()

	// Release frees the backend's GPU resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer with the given backend type. BackendTypeWGPU requires a
// Surface (typically the window); BackendTypeHeadless ignores it and may be given nil.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - surface: the window providing the WebGPU surface
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured renderer
//   - error: if the backend could not be created or its surface configured
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		surface:     surface,
		attached:    true,
		now:         time.Now,
		quitChannel: make(chan struct{}),
		hostErrors:  hosterror.NewChannel(),
		logger:      zerolog.Nop(),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}
	r.logger = r.logger.With().Str("component", "renderer").Str("backend", backendType.String()).Logger()
	if r.profiler == nil {
		r.profiler = profiler.NewProfiler(profiler.WithLogger(r.logger))
	}

	if r.backend == nil {
		switch backendType {
		case BackendTypeHeadless:
			r.backend = newHeadlessRendererBackend()
			if r.frameLimit == 0 {
				r.frameLimit = time.Second / 60
			}
		case BackendTypeWGPU:
			fallthrough
		default:
			if surface == nil {
				return nil, fmt.Errorf("wgpu: %w", errNoSurface)
			}
			b, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter)
			if err != nil {
				return nil, fmt.Errorf("wgpu: %w", err)
			}
			r.backend = b
		}
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	width, height := 0, 0
	if surface != nil {
		width, height = surface.Width(), surface.Height()
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("wgpu: configure surface: %w", err)
	}
	return r, nil
}

func (r *renderer) SubmitScene(f scene.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frame = f
}

func (r *renderer) OnFrame(cb func(dt float32)) func() {
	if cb == nil {
		return func() {}
	}
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.callbacks = append(r.callbacks, frameCallback{id: id, fn: cb})
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			for i, c := range r.callbacks {
				if c.id == id {
					r.callbacks = append(r.callbacks[:i:i], r.callbacks[i+1:]...)
					return
				}
			}
		})
	}
}

func (r *renderer) Post(fn func()) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posted = append(r.posted, fn)
}

func (r *renderer) Attach() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attached = true
}

func (r *renderer) Detach() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attached = false
}

func (r *renderer) Attached() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attached
}

func (r *renderer) Resize(width, height int) {
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		r.report(fmt.Errorf("wgpu: resize %dx%d: %w", width, height, err))
	}
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
	if r.surface != nil {
		r.Resize(r.surface.Width(), r.surface.Height())
	}
}

func (r *renderer) Frames() uint64 {
	return r.frames.Load()
}

func (r *renderer) HostErrors() hosterror.Channel {
	return r.hostErrors
}

func (r *renderer) EnableProfiler() {
	r.profilingEnabled.Store(true)
}

func (r *renderer) DisableProfiler() {
	r.profilingEnabled.Store(false)
}

func (r *renderer) Step(dt float32) {
	r.mu.Lock()
	posted := r.posted
	r.posted = nil
	r.mu.Unlock()

	for _, fn := range posted {
		r.safeCall("post", fn)
	}

	r.mu.Lock()
	callbacks := make([]frameCallback, len(r.callbacks))
	copy(callbacks, r.callbacks)
	r.mu.Unlock()

	for _, c := range callbacks {
		if !r.registered(c.id) {
			continue
		}
		r.safeCall("frame", func() { c.fn(dt) })
	}

	r.mu.Lock()
	f := r.frame
	if !r.attached {
		f = scene.Frame{Background: f.Background}
	}
	r.mu.Unlock()

	if err := r.backend.DrawFrame(f); err != nil {
		r.report(fmt.Errorf("wgpu: draw frame: %w", err))
	}

	r.frames.Add(1)
	if r.profilingEnabled.Load() {
		r.profiler.Tick()
	}
}

// registered reports whether the callback with id is still registered. A callback removed
// by an earlier callback in the same frame must not run.
func (r *renderer) registered(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.callbacks {
		if c.id == id {
			return true
		}
	}
	return false
}

// safeCall runs fn and converts a panic into a reported runtime error.
func (r *renderer) safeCall(stage string, fn func()) {
	defer func() {
		if v := recover(); v != nil {
			r.report(&hosterror.UncaughtError{Source: "renderer " + stage, Value: v, Stack: debug.Stack()})
		}
	}()
	fn()
}

func (r *renderer) report(err error) {
	r.logger.Error().Err(err).Msg("frame error")
	r.hostErrors.Report(&fault.RuntimeError{Source: "renderer", Err: err})
}

func (r *renderer) Run(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return fmt.Errorf("renderer already running")
	}
	defer r.running.Store(false)

	r.lastFrame = r.now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.quitChannel:
			return nil
		default:
		}

		start := r.now()
		dt := float32(start.Sub(r.lastFrame).Seconds())
		r.lastFrame = start

		r.Step(dt)

		// Frame rate limiting
		if r.frameLimit > 0 {
			if remaining := r.frameLimit - r.now().Sub(start); remaining > 0 {
				select {
				case <-time.After(remaining):
				case <-ctx.Done():
				case <-r.quitChannel:
				}
			}
		}
	}
}

func (r *renderer) Quit() {
	r.quitOnce.Do(func() {
		close(r.quitChannel)
	})
}

func (r *renderer) Release() {
	r.backend.Release()
}
