package animator

import (
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/model"
)

// LoopMode controls what an Action does when it reaches the end of its clip.
type LoopMode int

const (
	// LoopOnce plays the clip a single time and stops on its last frame.
	LoopOnce LoopMode = iota
	// LoopRepeat restarts the clip from zero each time it ends.
	LoopRepeat
)

// Infinite is the repetition count for an action that loops forever.
const Infinite = -1

// action is the implementation of the Action interface.
type action struct {
	mu          sync.Mutex
	clip        *model.AnimationClip
	loop        LoopMode
	repetitions int
	timeScale   float32
	time        float32
	loops       int
	running     bool
}

// Action is the playback state of one clip inside a Mixer.
// Configuration methods return the Action so calls can be chained.
type Action interface {
	// Clip returns the clip this action plays.
	Clip() *model.AnimationClip

	// Reset rewinds the action to time zero and clears its loop count.
	Reset() Action

	// SetLoop sets the loop mode and how many times the clip repeats (Infinite for forever).
	//
	// Parameters:
	//   - mode: the loop mode
	//   - repetitions: the repeat count, or Infinite
	SetLoop(mode LoopMode, repetitions int) Action

	// SetTimeScale sets the playback speed multiplier.
	//
	// Parameters:
	//   - scale: the speed multiplier, 1 for authored speed
	SetTimeScale(scale float32) Action

	// Play marks the action as running. The Mixer advances running actions on Update.
	Play() Action

	// Stop halts the action and rewinds it.
	Stop()

	// Running reports whether the action is advanced by the Mixer.
	Running() bool

	// Time returns the current playback position in seconds, within [0, duration].
	Time() float32

	// Loops returns how many times the clip has wrapped since the last Reset.
	Loops() int
}

var _ Action = &action{}

func (a *action) Clip() *model.AnimationClip {
	return a.clip
}

func (a *action) Reset() Action {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.time = 0
	a.loops = 0
	return a
}

func (a *action) SetLoop(mode LoopMode, repetitions int) Action {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loop = mode
	a.repetitions = repetitions
	return a
}

func (a *action) SetTimeScale(scale float32) Action {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timeScale = scale
	return a
}

func (a *action) Play() Action {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.running = true
	return a
}

func (a *action) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.running = false
	a.time = 0
	a.loops = 0
}

func (a *action) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

func (a *action) Time() float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.time
}

func (a *action) Loops() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loops
}

// advance moves the playback position by dt seconds of wall time.
func (a *action) advance(dt float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running {
		return
	}

	d := a.clip.Duration
	a.time += dt * a.timeScale
	switch a.loop {
	case LoopRepeat:
		if a.time >= d || a.time < 0 {
			wraps := int(math.Floor(float64(a.time / d)))
			a.time -= float32(wraps) * d
			if wraps < 0 {
				wraps = -wraps
			}
			a.loops += wraps
			if a.repetitions != Infinite && a.loops >= a.repetitions {
				a.time = d
				a.running = false
			}
		}
	default:
		if a.time >= d {
			a.time = d
			a.running = false
		} else if a.time < 0 {
			a.time = 0
			a.running = false
		}
	}
}

// mixer is the implementation of the Mixer interface.
type mixer struct {
	mu      sync.Mutex
	actions map[*model.AnimationClip]*action
	order   []*action
}

// Mixer drives clip playback for one bound asset.
// It owns one Action per clip and advances every running action on Update.
type Mixer interface {
	// ClipAction returns the action for clip, creating it on first use.
	// The clip must have a positive duration and every node it targets must exist in root's subtree.
	//
	// Parameters:
	//   - clip: the animation clip
	//   - root: the scene-graph root the clip animates
	//
	// Returns:
	//   - Action: the clip's action, stopped and at time zero when newly created
	//   - error: error if the clip cannot be bound to root
	ClipAction(clip *model.AnimationClip, root model.Node) (Action, error)

	// Update advances every running action by dt seconds.
	//
	// Parameters:
	//   - dt: the elapsed wall time since the previous update
	Update(dt float32)

	// StopAll stops every action the mixer has created.
	StopAll()

	// Actions returns the actions in creation order.
	Actions() []Action
}

var _ Mixer = &mixer{}

// NewMixer creates an empty Mixer.
//
// Returns:
//   - Mixer: the new mixer
func NewMixer() Mixer {
	return &mixer{
		actions: make(map[*model.AnimationClip]*action),
	}
}

func (m *mixer) ClipAction(clip *model.AnimationClip, root model.Node) (Action, error) {
	if clip == nil {
		return nil, fmt.Errorf("nil clip")
	}
	if !(clip.Duration > 0) {
		return nil, fmt.Errorf("clip %q has non-positive duration %v", clip.Name, clip.Duration)
	}
	if root == nil {
		return nil, fmt.Errorf("clip %q: no root to bind to", clip.Name)
	}
	for _, target := range clip.Targets {
		if root.Find(target) == nil {
			return nil, fmt.Errorf("clip %q targets missing node %q", clip.Name, target)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.actions[clip]; ok {
		return a, nil
	}
	a := &action{
		clip:        clip,
		loop:        LoopRepeat,
		repetitions: Infinite,
		timeScale:   1,
	}
	m.actions[clip] = a
	m.order = append(m.order, a)
	return a, nil
}

func (m *mixer) Update(dt float32) {
	if dt <= 0 {
		return
	}
	for _, a := range m.snapshot() {
		a.advance(dt)
	}
}

func (m *mixer) StopAll() {
	for _, a := range m.snapshot() {
		a.Stop()
	}
}

func (m *mixer) Actions() []Action {
	actions := m.snapshot()
	out := make([]Action, len(actions))
	for i, a := range actions {
		out[i] = a
	}
	return out
}

func (m *mixer) snapshot() []*action {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*action(nil), m.order...)
}
