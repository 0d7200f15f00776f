package scheduler

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/fault"

	"github.com/rs/zerolog"
)

// ErrAlreadyStarted is returned by Start on a scheduler that is running.
var ErrAlreadyStarted = errors.New("scheduler: already started")

// ErrNoFrameSource is returned by Start when no FrameSource was configured.
var ErrNoFrameSource = errors.New("scheduler: no frame source")

// FrameSource delivers per-frame callbacks, typically the renderer's frame loop.
type FrameSource interface {
	// OnFrame registers cb to run once per frame with the frame's delta time in seconds.
	//
	// Parameters:
	//   - cb: the per-frame callback
	//
	// Returns:
	//   - func(): cancels the registration
	OnFrame(cb func(dt float32)) func()
}

// Tick describes one scheduler tick.
type Tick struct {
	// Delta is the time since the previous frame in seconds.
	Delta float32
	// Elapsed is the non-decreasing time since Start in seconds.
	Elapsed float32
	// Count is the 1-based tick number.
	Count uint64
}

// TickFunc is called once per live frame. Returning an error stops the scheduler.
type TickFunc func(t Tick) error

// scheduler is the implementation of the Scheduler interface.
type scheduler struct {
	mu      sync.Mutex
	source  FrameSource
	cancel  func()
	live    bool
	elapsed float32
	ticks   uint64
	runID   uint64

	liveness func() bool
	onError  func(error)
	logger   zerolog.Logger
}

// Scheduler registers a per-frame tick with a FrameSource and guards it.
// A tick only runs while the scheduler is live and the optional liveness predicate holds;
// a tick that fails or panics stops the scheduler and is reported as a fault.RuntimeError.
type Scheduler interface {
	// Start registers tick with the frame source.
	//
	// Parameters:
	//   - tick: the per-frame work
	//
	// Returns:
	//   - error: ErrAlreadyStarted or ErrNoFrameSource
	Start(tick TickFunc) error

	// Stop deregisters the tick. Safe to call repeatedly and from inside a tick.
	Stop()

	// Live reports whether the scheduler is registered and running.
	Live() bool

	// Ticks returns how many ticks ran since the last Start.
	Ticks() uint64

	// Elapsed returns the accumulated tick time since the last Start in seconds.
	Elapsed() float32
}

var _ Scheduler = &scheduler{}

// NewScheduler creates a new Scheduler instance with the options applied.
//
// Parameters:
//   - options: a variadic list of SchedulerBuilderOption functions to configure the Scheduler
//
// Returns:
//   - Scheduler: a new instance of Scheduler configured with the provided options
func NewScheduler(options ...SchedulerBuilderOption) Scheduler {
	s := &scheduler{
		logger: zerolog.Nop(),
	}
	for _, option := range options {
		option(s)
	}
	s.logger = s.logger.With().Str("component", "scheduler").Logger()
	return s
}

func (s *scheduler) Start(tick TickFunc) error {
	if s.source == nil {
		return ErrNoFrameSource
	}

	s.mu.Lock()
	if s.live {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.live = true
	s.elapsed = 0
	s.ticks = 0
	s.runID++
	run := s.runID
	s.mu.Unlock()

	cancel := s.source.OnFrame(func(dt float32) {
		s.frame(run, tick, dt)
	})

	s.mu.Lock()
	if s.live && s.runID == run {
		s.cancel = cancel
		s.mu.Unlock()
	} else {
		// Stopped during registration.
		s.mu.Unlock()
		cancel()
	}
	s.logger.Debug().Msg("scheduler started")
	return nil
}

func (s *scheduler) Stop() {
	s.mu.Lock()
	if !s.live {
		s.mu.Unlock()
		return
	}
	s.live = false
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.logger.Debug().Msg("scheduler stopped")
}

func (s *scheduler) Live() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

func (s *scheduler) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

func (s *scheduler) Elapsed() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

func (s *scheduler) frame(run uint64, tick TickFunc, dt float32) {
	s.mu.Lock()
	if !s.live || s.runID != run {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if s.liveness != nil && !s.liveness() {
		s.logger.Debug().Msg("owner no longer live, stopping")
		s.Stop()
		return
	}

	if dt < 0 || dt != dt {
		dt = 0
	}
	s.mu.Lock()
	s.elapsed += dt
	s.ticks++
	t := Tick{Delta: dt, Elapsed: s.elapsed, Count: s.ticks}
	s.mu.Unlock()

	if err := s.run(tick, t); err != nil {
		s.Stop()
		rerr := &fault.RuntimeError{Source: "scheduler", Err: err}
		s.logger.Error().Err(rerr).Uint64("tick", t.Count).Msg("tick failed")
		if s.onError != nil {
			s.onError(rerr)
		}
	}
}

func (s *scheduler) run(tick TickFunc, t Tick) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tick panicked: %v", r)
		}
	}()
	return tick(t)
}
