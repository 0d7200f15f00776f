package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/animator"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/display"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/fault"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/hosterror"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/loader"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scene"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scheduler"

	"github.com/rs/zerolog"
)

// mount is one lifetime of the backdrop, from Mount to Unmount.
// Results that arrive after the mount stopped are dropped by checking live.
type mount struct {
	id uint64
	e  *engine

	machine display.Machine
	sched   scheduler.Scheduler
	filter  fault.Filter

	live   atomic.Bool
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	cancels []func()
	binding animator.Binding

	logger zerolog.Logger
}

func newMount(e *engine, id uint64) *mount {
	m := &mount{
		id:     id,
		e:      e,
		filter: fault.NewFilter(e.keywords, e.assetPath),
		logger: e.logger.With().Uint64("mount", id).Logger(),
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.machine = display.NewMachine(display.WithLogger(m.logger), display.WithInstruments(e.instruments))
	m.sched = scheduler.NewScheduler(
		scheduler.WithFrameSource(e.renderer),
		scheduler.WithLiveness(m.ticking),
		scheduler.WithErrorHandler(func(err error) { m.machine.Fail(err) }),
		scheduler.WithLogger(m.logger),
	)
	m.live.Store(true)
	return m
}

// start runs the capability check and, when it passes, kicks off the asset load.
func (m *mount) start() {
	e := m.e
	m.track(m.machine.OnTransition(m.onTransition))
	m.track(e.hostErrors.Subscribe(m.onHostError))

	e.setTitle("")
	e.renderer.Attach()
	m.track(e.renderer.OnFrame(m.present))

	if !e.prober.Probe() {
		m.machine.Fail(&fault.CapabilityError{Err: e.prober.Err()})
		return
	}
	if err := m.machine.ToLoading(); err != nil {
		m.logger.Debug().Err(err).Msg("mount left capability check early")
		return
	}

	h := e.loader.Request(e.assetPath)
	m.logger.Debug().Str("path", h.Path()).Uint64("generation", h.Generation()).Msg("awaiting asset")
	go m.await(h)
}

// await waits for h off the frame goroutine and hands the outcome back to it with Post.
func (m *mount) await(h *loader.AssetHandle) {
	defer m.recoverFault("mount")

	ctx := m.ctx
	if m.e.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.e.loadTimeout)
		defer cancel()
	}

	err := h.Wait(ctx)
	if m.ctx.Err() != nil {
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		err = &fault.LoadError{Path: h.Path(), Err: fmt.Errorf("timed out after %s: %w", m.e.loadTimeout, err)}
	}
	m.e.renderer.Post(func() { m.resolve(h, err) })
}

// resolve runs on the frame goroutine. Binding only starts from a ready handle and frame
// updates only start once the binding exists.
func (m *mount) resolve(h *loader.AssetHandle, err error) {
	if !m.live.Load() {
		m.logger.Debug().Str("path", h.Path()).Msg("dropping load result for stopped mount")
		return
	}
	if m.machine.State() != display.StateLoading {
		return
	}
	if err != nil {
		m.machine.Fail(err)
		return
	}

	e := m.e
	b, err := e.animator.Bind(h, e.scene.Group())
	if err != nil {
		m.machine.Fail(&fault.RuntimeError{Source: "animator", Err: err})
		return
	}
	m.mu.Lock()
	m.binding = b
	m.mu.Unlock()

	e.scene.AttachModel(h.Root())
	if err := m.machine.ToReady(); err != nil {
		// The mount failed while binding; the error transition may already have detached.
		b.Stop()
		e.scene.Detach()
		return
	}
	if err := m.sched.Start(m.tick); err != nil {
		m.machine.Fail(&fault.RuntimeError{Source: "scheduler", Err: err})
		return
	}
	if !m.ticking() {
		m.sched.Stop()
	}
}

// ticking reports whether the scheduler may advance the model.
func (m *mount) ticking() bool {
	return m.live.Load() && m.machine.State() != display.StateError
}

// tick plays the asset's clips, or spins the wrapper group when there are none.
func (m *mount) tick(t scheduler.Tick) error {
	b := m.currentBinding()
	if b == nil {
		return nil
	}
	if b.Native() {
		b.Update(t.Delta)
		return nil
	}
	m.e.procedural.Apply(m.e.scene.Group(), t.Elapsed)
	return nil
}

// present advances the camera and hands the scene snapshot to the renderer.
func (m *mount) present(dt float32) {
	if !m.live.Load() {
		return
	}
	s := m.e.scene
	s.Update(dt)
	m.e.renderer.SubmitScene(s.Frame())
}

func (m *mount) onTransition(t display.Transition) {
	e := m.e
	switch t.To {
	case display.StateLoading:
		e.scene.AttachFallback(scene.DefaultFallback())
	case display.StateError:
		m.halt()
		e.renderer.Detach()
		e.scene.Detach()
		e.setTitle(m.machine.Message())
	}
}

// onHostError moves a loading or ready mount into the error state when err is attributed
// to the 3D subsystem. Anything else is ignored.
func (m *mount) onHostError(err error) {
	matched := m.filter.Match(err)
	m.e.instruments.HostError(m.ctx, matched)
	if !matched {
		m.logger.Debug().Err(err).Msg("ignoring unrelated host error")
		return
	}
	if !m.live.Load() {
		return
	}
	switch m.machine.State() {
	case display.StateLoading, display.StateReady:
		if fault.KindOf(err) == fault.KindUnknown {
			err = &fault.RuntimeError{Source: "host", Err: err}
		}
		m.machine.Fail(err)
	}
}

// halt stops the scheduler, playback and frame presentation.
func (m *mount) halt() {
	m.sched.Stop()
	if b := m.currentBinding(); b != nil {
		b.Stop()
	}
	m.mu.Lock()
	cancels := m.cancels
	m.cancels = nil
	m.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}

// stop ends the mount. The loader cache is left untouched.
func (m *mount) stop() {
	if !m.live.CompareAndSwap(true, false) {
		return
	}
	m.cancel()
	m.halt()
	m.e.animator.Teardown()
	m.e.scene.Detach()
	m.logger.Debug().Str("state", m.machine.State().String()).Msg("unmounted")
}

// recoverFault turns a panic on a mount goroutine into a runtime fault on this mount.
// Must be deferred directly.
func (m *mount) recoverFault(source string) {
	v := recover()
	if v == nil {
		return
	}
	err := &fault.RuntimeError{Source: source, Err: &hosterror.UncaughtError{Source: source, Value: v, Stack: debug.Stack()}}
	m.logger.Error().Err(err).Msg("mount goroutine panicked")
	if m.live.Load() {
		m.machine.Fail(err)
	}
}

func (m *mount) track(cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancels = append(m.cancels, cancel)
}

func (m *mount) currentBinding() animator.Binding {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.binding
}
