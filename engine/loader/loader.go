package loader

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/fault"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/model"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/telemetry"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/rs/zerolog"
)

// LoaderBackendType identifies the asset backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB backend (file paths and http(s) URLs).
	BackendTypeGLTF LoaderBackendType = iota
)

const defaultWorkers = 2

// Stats is a snapshot of the loader's counters.
type Stats struct {
	Requests      uint64
	Hits          uint64
	Fetches       uint64
	Failures      uint64
	Invalidations uint64
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu    sync.Mutex
	cache map[string]*AssetHandle

	backend    Backend
	httpClient *http.Client
	pool       worker.DynamicWorkerPool
	workers    int

	logger      zerolog.Logger
	instruments *telemetry.Instruments

	ctx    context.Context
	cancel context.CancelFunc

	generation atomic.Uint64
	taskID     atomic.Int64

	requests      atomic.Uint64
	hits          atomic.Uint64
	fetches       atomic.Uint64
	failures      atomic.Uint64
	invalidations atomic.Uint64
}

// Loader defines the public-facing interface for loading and caching 3D assets.
// It abstracts the transport and file format behind a Backend and keeps one AssetHandle
// per path. At most one fetch is in flight per path; every caller asking for the same
// path shares the same handle until it is invalidated.
type Loader interface {
	// Request returns the handle for path without blocking.
	// A cached handle (pending, ready or failed) is returned as is. Otherwise a pending
	// handle is registered and the fetch is submitted to the worker pool.
	//
	// Parameters:
	//   - path: the asset reference (file path or http(s) URL)
	//
	// Returns:
	//   - *AssetHandle: the shared handle for path
	Request(path string) *AssetHandle

	// Load requests path and waits for the handle to resolve.
	// If ctx ends first the wait is abandoned but the load keeps running and stays cached.
	//
	// Parameters:
	//   - ctx: bounds the wait
	//   - path: the asset reference
	//
	// Returns:
	//   - *AssetHandle: the shared handle for path, even on failure
	//   - error: a *fault.LoadError if the load failed, ctx.Err() if the wait was abandoned
	Load(ctx context.Context, path string) (*AssetHandle, error)

	// Preload starts loading path in the background. Failures are logged, never returned.
	//
	// Parameters:
	//   - path: the asset reference
	Preload(path string)

	// Invalidate evicts the handle for path regardless of its state.
	// The next Request or Load for path starts a fresh fetch. A load in flight for the
	// evicted handle still resolves that handle but never re-inserts it.
	//
	// Parameters:
	//   - path: the asset reference
	Invalidate(path string)

	// Get returns the cached handle for path without requesting it, or nil.
	//
	// Parameters:
	//   - path: the asset reference
	//
	// Returns:
	//   - *AssetHandle: the cached handle or nil
	Get(path string) *AssetHandle

	// Paths returns the cached asset references in sorted order.
	//
	// Returns:
	//   - []string: the cached paths
	Paths() []string

	// Stats returns a snapshot of the loader's counters.
	//
	// Returns:
	//   - Stats: request, hit, fetch, failure and invalidation counts
	Stats() Stats

	// Close cancels in-flight fetches. Pending handles resolve as failed.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		cache:   make(map[string]*AssetHandle),
		workers: defaultWorkers,
		logger:  zerolog.Nop(),
	}
	for _, option := range options {
		option(l)
	}

	if l.backend == nil {
		switch backendType {
		case BackendTypeGLTF:
			l.backend = newGLTFLoaderBackend(l.httpClient)
		}
	}
	if l.workers < 1 {
		l.workers = 1
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	l.ctx, l.cancel = context.WithCancel(context.Background())
	l.logger = l.logger.With().Str("component", "loader").Logger()
	return l
}

func (l *loader) Request(path string) *AssetHandle {
	l.requests.Add(1)
	l.instruments.LoadRequested(l.ctx, path)

	l.mu.Lock()
	if h, ok := l.cache[path]; ok {
		l.mu.Unlock()
		l.hits.Add(1)
		l.instruments.CacheHit(l.ctx, path)
		return h
	}
	h := newAssetHandle(path, l.generation.Add(1))
	l.cache[path] = h
	l.mu.Unlock()

	l.fetches.Add(1)
	l.instruments.Fetched(l.ctx, path)
	l.logger.Debug().Str("path", path).Uint64("generation", h.generation).Msg("fetching asset")
	l.submit(h)
	return h
}

func (l *loader) Load(ctx context.Context, path string) (*AssetHandle, error) {
	h := l.Request(path)
	if err := h.Wait(ctx); err != nil {
		return h, err
	}
	return h, nil
}

func (l *loader) Preload(path string) {
	h := l.Request(path)
	go func() {
		<-h.Done()
		if err := h.Err(); err != nil {
			l.logger.Warn().Err(err).Str("path", path).Msg("preload failed")
		}
	}()
}

func (l *loader) Invalidate(path string) {
	l.mu.Lock()
	_, ok := l.cache[path]
	delete(l.cache, path)
	l.mu.Unlock()

	if ok {
		l.invalidations.Add(1)
		l.instruments.Invalidated(l.ctx, path)
		l.logger.Debug().Str("path", path).Msg("asset invalidated")
	}
}

func (l *loader) Get(path string) *AssetHandle {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache[path]
}

func (l *loader) Paths() []string {
	l.mu.Lock()
	paths := make([]string, 0, len(l.cache))
	for p := range l.cache {
		paths = append(paths, p)
	}
	l.mu.Unlock()
	sort.Strings(paths)
	return paths
}

func (l *loader) Stats() Stats {
	return Stats{
		Requests:      l.requests.Load(),
		Hits:          l.hits.Load(),
		Fetches:       l.fetches.Load(),
		Failures:      l.failures.Load(),
		Invalidations: l.invalidations.Load(),
	}
}

func (l *loader) Close() {
	l.cancel()
}

// submit runs the backend for h on the worker pool and resolves h with the outcome.
func (l *loader) submit(h *AssetHandle) {
	l.pool.SubmitTask(worker.Task{
		ID: int(l.taskID.Add(1)),
		Do: func() (any, error) {
			m, err := l.fetch(h.path)
			l.finish(h, m, err)
			return nil, nil
		},
	})
}

func (l *loader) fetch(path string) (m model.Model, err error) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Str("path", path).Msg("asset backend panicked")
			m, err = nil, fmt.Errorf("backend panic: %v", r)
		}
	}()
	if l.backend == nil {
		return nil, fmt.Errorf("no loader backend configured")
	}
	m, err = l.backend.Load(l.ctx, path)
	if err == nil && m == nil {
		err = fmt.Errorf("backend returned no model")
	}
	return m, err
}

// finish resolves h. The cache is never written here: an evicted handle stays evicted.
// Counters are updated before waiters are released.
func (l *loader) finish(h *AssetHandle, m model.Model, err error) {
	if err != nil {
		err = &fault.LoadError{Path: h.path, Err: err}
		l.failures.Add(1)
		l.instruments.LoadFailed(l.ctx, h.path)
		l.logger.Warn().Err(err).Str("path", h.path).Uint64("generation", h.generation).Msg("asset load failed")
	} else {
		l.logger.Info().
			Str("path", h.path).
			Uint64("generation", h.generation).
			Int("clips", m.AnimationCount()).
			Msg("asset loaded")
	}
	h.resolve(m, err)
}
