package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/animator"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/display"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/fault"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/hosterror"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/loader"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/probe"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scene"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/telemetry"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/window"

	"github.com/rs/zerolog"
)

// DefaultAssetPath is the asset mounted when none is configured.
const DefaultAssetPath = "jellyfish.glb"

var (
	// ErrAlreadyMounted is returned by Mount while a mount is active.
	ErrAlreadyMounted = errors.New("engine: already mounted")

	// ErrRetryUnavailable is returned by Retry unless the active mount is in the error state.
	ErrRetryUnavailable = errors.New("engine: retry is only available in the error state")

	// ErrNoRenderer is returned by NewEngine when no renderer was supplied.
	ErrNoRenderer = errors.New("engine: no renderer configured")
)

// engine implements the Engine interface.
// Coordinates the renderer's frame goroutine, the window's message pump and the active mount.
type engine struct {
	mu      sync.Mutex
	current *mount
	mounts  atomic.Uint64

	renderer   renderer.Renderer
	loader     loader.Loader
	animator   animator.Controller
	prober     probe.Probe
	scene      scene.Scene
	window     window.Window
	hostErrors hosterror.Channel

	assetPath   string
	keywords    []string
	loadTimeout time.Duration
	procedural  animator.Procedural
	title       string

	profilingEnabled atomic.Bool

	quitChannel chan struct{}
	quitOnce    sync.Once

	instruments *telemetry.Instruments
	logger      zerolog.Logger
}

// Engine is the main entry point for the backdrop.
// It owns one mount at a time: a capability check, an asset load, playback binding and the
// per-frame scheduler, all driven by the error/fallback state machine of that mount.
type Engine interface {
	// Mount starts a new mount of the configured asset. It probes the rendering context
	// synchronously and then loads the asset in the background; the outcome is delivered
	// on the renderer's frame goroutine.
	//
	// Returns:
	//   - error: ErrAlreadyMounted if a mount is active
	Mount() error

	// Unmount stops the active mount: the scheduler, playback and per-frame presentation.
	// The loader cache is left intact and a load still in flight is ignored when it lands.
	// Safe to call when nothing is mounted.
	Unmount()

	// Retry remounts from the error state. After a load failure the failed asset is
	// invalidated first so the failure is not replayed from the cache.
	//
	// Returns:
	//   - error: ErrRetryUnavailable if no mount is in the error state
	Retry() error

	// Preload probes the rendering context and, if it is available, starts fetching the
	// configured asset in the background so a later Mount finds it cached.
	//
	// Returns:
	//   - bool: true if a fetch was requested
	Preload() bool

	// Display returns the state machine of the active mount, or nil when unmounted.
	//
	// Returns:
	//   - display.Machine: the active machine or nil
	Display() display.Machine

	// View returns the presentation variant of the active mount. When unmounted it
	// returns the capability-check view.
	//
	// Returns:
	//   - display.View: the current view
	View() display.View

	// Binding returns the active playback binding, or nil.
	Binding() animator.Binding

	// Scene returns the composed scene.
	Scene() scene.Scene

	// Loader returns the asset loader.
	Loader() loader.Loader

	// Renderer returns the renderer.
	Renderer() renderer.Renderer

	// Window returns the underlying window, or nil when running without one.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Run mounts the asset and drives frames until ctx is done, Quit is called or the
	// window closes. With a window, Run must be called from the main goroutine; it blocks
	// in the window's message pump while frames run on their own goroutine.
	//
	// Parameters:
	//   - ctx: cancels the run
	//
	// Returns:
	//   - error: a mount error, or nil on a clean shutdown
	Run(ctx context.Context) error

	// Quit signals Run to stop. Safe to call multiple times.
	Quit()

	// Release unmounts and frees the loader and renderer.
	Release()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// A renderer is required; every other collaborator defaults to a working instance:
// a glTF loader, a wgpu probe, an animation controller and the default scene.
// Without WithHostErrors the engine listens on the renderer's own channel.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: ErrNoRenderer if WithRenderer was not given
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		assetPath:   DefaultAssetPath,
		procedural:  animator.DefaultProcedural(),
		quitChannel: make(chan struct{}),
		logger:      zerolog.Nop(),
	}
	for _, opt := range options {
		opt(e)
	}
	if e.renderer == nil {
		return nil, ErrNoRenderer
	}
	e.logger = e.logger.With().Str("component", "engine").Logger()

	if e.hostErrors == nil {
		e.hostErrors = e.renderer.HostErrors()
	}
	if e.hostErrors == nil {
		e.hostErrors = hosterror.NewChannel()
	}
	if e.hostErrors != e.renderer.HostErrors() {
		e.logger.Warn().Msg("renderer reports to a different host error channel; its frame faults will not reach the mount")
	}
	if e.loader == nil {
		e.loader = loader.NewLoader(loader.BackendTypeGLTF, loader.WithLogger(e.logger), loader.WithInstruments(e.instruments))
	}
	if e.animator == nil {
		e.animator = animator.NewController(animator.WithLogger(e.logger))
	}
	if e.prober == nil {
		e.prober = probe.NewProbe(probe.BackendTypeWGPU, probe.WithLogger(e.logger))
	}
	if e.scene == nil {
		e.scene = scene.NewScene(scene.WithLogger(e.logger))
	}
	if e.keywords == nil {
		e.keywords = fault.DefaultKeywords
	}
	if e.profilingEnabled.Load() {
		e.renderer.EnableProfiler()
	}

	if e.window != nil {
		e.title = e.window.Title()
		e.window.SetResizeCallback(e.handleResize)
		e.window.SetKeyDownCallback(e.handleKeyDown)
		e.handleResize(e.window.Width(), e.window.Height())
	}
	return e, nil
}

func (e *engine) Mount() error {
	e.mu.Lock()
	if e.current != nil {
		e.mu.Unlock()
		return ErrAlreadyMounted
	}
	m := newMount(e, e.mounts.Add(1))
	e.current = m
	e.mu.Unlock()

	m.start()
	return nil
}

func (e *engine) Unmount() {
	e.mu.Lock()
	m := e.current
	e.current = nil
	e.mu.Unlock()

	if m != nil {
		m.stop()
	}
}

func (e *engine) Retry() error {
	m := e.active()
	if m == nil || m.machine.State() != display.StateError {
		return ErrRetryUnavailable
	}
	if fault.KindOf(m.machine.Err()) == fault.KindLoad {
		e.loader.Invalidate(e.assetPath)
	}
	e.logger.Info().Uint64("mount", m.id).Str("cause", fault.KindOf(m.machine.Err()).String()).Msg("retrying")

	e.Unmount()
	return e.Mount()
}

func (e *engine) Preload() bool {
	if !e.prober.Probe() {
		e.logger.Info().Str("path", e.assetPath).Msg("skipping preload, rendering context unavailable")
		return false
	}
	e.loader.Preload(e.assetPath)
	return true
}

func (e *engine) Display() display.Machine {
	if m := e.active(); m != nil {
		return m.machine
	}
	return nil
}

func (e *engine) View() display.View {
	if m := e.active(); m != nil {
		return m.machine.View()
	}
	return display.View{Kind: display.ViewFallback, Loading: true}
}

func (e *engine) Binding() animator.Binding {
	return e.animator.Current()
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Loader() loader.Loader {
	return e.loader
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
	e.renderer.EnableProfiler()
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
	e.renderer.DisableProfiler()
}

func (e *engine) Run(ctx context.Context) error {
	if err := e.Mount(); err != nil && !errors.Is(err, ErrAlreadyMounted) {
		return err
	}
	defer e.Unmount()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer e.hostErrors.Recover("render loop")
		if err := e.renderer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			e.logger.Error().Err(err).Msg("render loop stopped")
		}
	}()
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
		case <-e.quitChannel:
		}
		e.renderer.Quit()
		if e.window != nil {
			e.window.RequestClose()
		}
	}()

	if e.window != nil {
		e.window.ProcessMessages()
	} else {
		select {
		case <-ctx.Done():
		case <-e.quitChannel:
		}
	}

	cancel()
	wg.Wait()
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			e.logger.Warn().Err(err).Msg("closing window")
		}
	}
	return nil
}

// Quit signals all engine goroutines to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Release() {
	e.Unmount()
	e.loader.Close()
	e.renderer.Release()
}

func (e *engine) active() *mount {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// setTitle shows msg in the window title, or restores the configured title when msg is empty.
func (e *engine) setTitle(msg string) {
	if e.window == nil {
		return
	}
	e.window.SetTitle(common.Coalesce(msg, e.title))
}

func (e *engine) handleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.renderer.Resize(width, height)
	e.scene.Camera().SetAspect(float32(width) / float32(height))
}

func (e *engine) handleKeyDown(keyCode uint32) {
	controller := e.scene.Camera().Controller()
	switch keyCode {
	case common.KeyR:
		if err := e.Retry(); err != nil && !errors.Is(err, ErrRetryUnavailable) {
			e.logger.Error().Err(err).Msg("retry failed")
		}
	case common.KeyP:
		if e.profilingEnabled.Load() {
			e.DisableProfiler()
		} else {
			e.EnableProfiler()
		}
	case common.KeySpace:
		controller.SetAutoRotate(!controller.AutoRotate())
	case common.KeyLeft:
		controller.OrbitLeft()
	case common.KeyRight:
		controller.OrbitRight()
	case common.KeyUp:
		controller.OrbitUp()
	case common.KeyDown:
		controller.OrbitDown()
	case common.KeyEsc:
		e.Quit()
	}
}
