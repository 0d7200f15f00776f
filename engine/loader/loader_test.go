package loader

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/fault"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedBackend blocks every load until release is closed and counts calls per path.
type gatedBackend struct {
	mu      sync.Mutex
	calls   map[string]int
	release chan struct{}
	fail    map[string]error
}

func newGatedBackend() *gatedBackend {
	return &gatedBackend{
		calls:   make(map[string]int),
		release: make(chan struct{}),
		fail:    make(map[string]error),
	}
}

func (b *gatedBackend) Load(ctx context.Context, path string) (model.Model, error) {
	b.mu.Lock()
	b.calls[path]++
	b.mu.Unlock()

	<-b.release

	b.mu.Lock()
	err := b.fail[path]
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return model.NewModel(
		model.WithName(path),
		model.WithAnimations([]*model.AnimationClip{{Name: "swim", Duration: 1}}),
	), nil
}

func (b *gatedBackend) Calls(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[path]
}

func (b *gatedBackend) Open() {
	close(b.release)
}

func TestLoader_ConcurrentLoadsFetchOnce(t *testing.T) {
	b := newGatedBackend()
	l := NewLoader(BackendTypeGLTF, WithBackend(b), WithWorkers(4))
	defer l.Close()

	const n = 16
	handles := make([]*AssetHandle, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handles[i], errs[i] = l.Load(context.Background(), "jellyfish.glb")
		}(i)
	}

	require.Eventually(t, func() bool { return b.Calls("jellyfish.glb") == 1 }, time.Second, 5*time.Millisecond)
	b.Open()
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, handles[0], handles[i])
	}
	assert.Equal(t, 1, b.Calls("jellyfish.glb"))
	assert.Equal(t, LoadStateReady, handles[0].State())
	assert.Equal(t, []string{"swim"}, clipNames(handles[0].Clips()))
	assert.Equal(t, uint64(1), l.Stats().Fetches)
	assert.Equal(t, uint64(n-1), l.Stats().Hits)
}

func TestLoader_InvalidateThenLoadReturnsFreshHandle(t *testing.T) {
	b := newGatedBackend()
	b.Open()
	l := NewLoader(BackendTypeGLTF, WithBackend(b))
	defer l.Close()

	first, err := l.Load(context.Background(), "a.glb")
	require.NoError(t, err)

	l.Invalidate("a.glb")
	assert.Nil(t, l.Get("a.glb"))

	second, err := l.Load(context.Background(), "a.glb")
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Greater(t, second.Generation(), first.Generation())
	assert.Equal(t, 2, b.Calls("a.glb"))
	assert.Equal(t, LoadStateReady, first.State())
}

func TestLoader_LateResolutionDoesNotReinsert(t *testing.T) {
	b := newGatedBackend()
	l := NewLoader(BackendTypeGLTF, WithBackend(b))
	defer l.Close()

	stale := l.Request("a.glb")
	require.Eventually(t, func() bool { return b.Calls("a.glb") == 1 }, time.Second, 5*time.Millisecond)

	l.Invalidate("a.glb")
	b.Open()
	require.NoError(t, stale.Wait(context.Background()))

	assert.Equal(t, LoadStateReady, stale.State())
	assert.Nil(t, l.Get("a.glb"))
	assert.Empty(t, l.Paths())
}

func TestLoader_FailedLoadIsCachedUntilInvalidated(t *testing.T) {
	b := newGatedBackend()
	b.fail["missing.glb"] = errors.New("open missing.glb: no such file or directory")
	b.Open()
	l := NewLoader(BackendTypeGLTF, WithBackend(b))
	defer l.Close()

	h, err := l.Load(context.Background(), "missing.glb")
	require.Error(t, err)
	assert.Equal(t, LoadStateFailed, h.State())
	assert.Nil(t, h.Root())

	var loadErr *fault.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "missing.glb", loadErr.Path)
	assert.Equal(t, fault.KindLoad, fault.KindOf(err))

	again, err := l.Load(context.Background(), "missing.glb")
	require.Error(t, err)
	assert.Same(t, h, again)
	assert.Equal(t, 1, b.Calls("missing.glb"))

	l.Invalidate("missing.glb")
	_, _ = l.Load(context.Background(), "missing.glb")
	assert.Equal(t, 2, b.Calls("missing.glb"))
	assert.Equal(t, uint64(2), l.Stats().Failures)
}

func TestLoader_CanceledWaitLeavesLoadRunning(t *testing.T) {
	b := newGatedBackend()
	l := NewLoader(BackendTypeGLTF, WithBackend(b))
	defer l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h, err := l.Load(ctx, "slow.glb")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, LoadStatePending, h.State())

	b.Open()
	require.NoError(t, h.Wait(context.Background()))
	assert.Same(t, h, l.Get("slow.glb"))
}

func TestLoader_PreloadPopulatesCache(t *testing.T) {
	b := newGatedBackend()
	b.Open()
	l := NewLoader(BackendTypeGLTF, WithBackend(b))
	defer l.Close()

	l.Preload("a.glb")
	h := l.Get("a.glb")
	require.NotNil(t, h)
	require.NoError(t, h.Wait(context.Background()))

	again, err := l.Load(context.Background(), "a.glb")
	require.NoError(t, err)
	assert.Same(t, h, again)
	assert.Equal(t, 1, b.Calls("a.glb"))
}

func TestLoader_BackendPanicFailsHandle(t *testing.T) {
	var calls atomic.Int32
	l := NewLoader(BackendTypeGLTF, WithBackend(BackendFunc(func(ctx context.Context, path string) (model.Model, error) {
		calls.Add(1)
		panic("decoder exploded")
	})))
	defer l.Close()

	h, err := l.Load(context.Background(), "bad.glb")
	require.Error(t, err)
	assert.Equal(t, LoadStateFailed, h.State())
	assert.Contains(t, err.Error(), "decoder exploded")
	assert.Equal(t, int32(1), calls.Load())
}

func TestLoader_NilModelFailsHandle(t *testing.T) {
	l := NewLoader(BackendTypeGLTF, WithBackend(BackendFunc(func(ctx context.Context, path string) (model.Model, error) {
		return nil, nil
	})))
	defer l.Close()

	_, err := l.Load(context.Background(), "empty.glb")
	require.Error(t, err)
}

func clipNames(clips []*model.AnimationClip) []string {
	names := make([]string, len(clips))
	for i, c := range clips {
		names[i] = c.Name
	}
	return names
}
