package loader

import (
	"context"
	"sync"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/model"
)

// LoadState is the resolution state of an AssetHandle.
type LoadState int

const (
	// LoadStatePending means the fetch or parse has not finished.
	LoadStatePending LoadState = iota
	// LoadStateReady means the asset was decoded and Root/Clips are available.
	LoadStateReady
	// LoadStateFailed means the load finished with an error; see Err.
	LoadStateFailed
)

func (s LoadState) String() string {
	switch s {
	case LoadStatePending:
		return "pending"
	case LoadStateReady:
		return "ready"
	case LoadStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// AssetHandle is the cached future for one asset path.
// It is created by the Loader when a load is requested for an uncached path and resolved
// exactly once, by the Loader. Invalidation evicts the handle from the cache but never
// mutates it, so a holder of an evicted handle still observes its own resolution.
type AssetHandle struct {
	path       string
	generation uint64
	done       chan struct{}

	mu    sync.RWMutex
	state LoadState
	model model.Model
	err   error
}

func newAssetHandle(path string, generation uint64) *AssetHandle {
	return &AssetHandle{
		path:       path,
		generation: generation,
		done:       make(chan struct{}),
		state:      LoadStatePending,
	}
}

// Path returns the asset reference this handle was created for.
func (h *AssetHandle) Path() string {
	return h.path
}

// Generation returns the handle's identity within its Loader.
// Every handle a Loader creates gets a distinct, increasing generation.
func (h *AssetHandle) Generation() uint64 {
	return h.generation
}

// State returns the current resolution state.
func (h *AssetHandle) State() LoadState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Err returns the load failure, or nil unless State is LoadStateFailed.
func (h *AssetHandle) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}

// Model returns the decoded model, or nil unless State is LoadStateReady.
func (h *AssetHandle) Model() model.Model {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.model
}

// Root returns the scene-graph root of the loaded asset, or nil while pending or failed.
func (h *AssetHandle) Root() model.Node {
	if m := h.Model(); m != nil {
		return m.Root()
	}
	return nil
}

// Clips returns the asset's animation clips in authored order. The slice may be empty.
func (h *AssetHandle) Clips() []*model.AnimationClip {
	if m := h.Model(); m != nil {
		return m.Animations()
	}
	return nil
}

// Done returns a channel that is closed once the handle resolves.
func (h *AssetHandle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the handle resolves or ctx is done.
//
// Parameters:
//   - ctx: bounds the wait; the load itself keeps running if ctx ends first
//
// Returns:
//   - error: the load failure, ctx.Err() if the wait was abandoned, or nil when ready
func (h *AssetHandle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resolve records the outcome and wakes every waiter. Only the first call has any effect.
func (h *AssetHandle) resolve(m model.Model, err error) {
	h.mu.Lock()
	if h.state != LoadStatePending {
		h.mu.Unlock()
		return
	}
	if err != nil {
		h.state = LoadStateFailed
		h.err = err
	} else {
		h.state = LoadStateReady
		h.model = m
	}
	h.mu.Unlock()
	close(h.done)
}
