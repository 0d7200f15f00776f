package renderer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/fault"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/hosterror"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBackend struct {
	headlessRendererBackendImpl
	err error
}

func (b *failingBackend) DrawFrame(scene.Frame) error {
	return b.err
}

type errorSink struct {
	mu   sync.Mutex
	errs []error
}

func (s *errorSink) add(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

func (s *errorSink) all() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error{}, s.errs...)
}

func newHeadless(t *testing.T, options ...RendererBuilderOption) (*renderer, *headlessRendererBackendImpl, *errorSink) {
	t.Helper()
	backend := newHeadlessRendererBackend()
	ch := hosterror.NewChannel()
	sink := &errorSink{}
	ch.Subscribe(sink.add)
	r, err := NewRenderer(BackendTypeHeadless, nil, append([]RendererBuilderOption{WithBackend(backend), WithHostErrors(ch)}, options...)...)
	require.NoError(t, err)
	return r.(*renderer), backend, sink
}

func TestRenderer_StepOrder(t *testing.T) {
	r, backend, _ := newHeadless(t)

	var order []string
	r.OnFrame(func(dt float32) {
		order = append(order, "frame")
		assert.Equal(t, float32(0.25), dt)
	})
	r.Post(func() { order = append(order, "post") })

	r.Step(0.25)
	r.Step(0.25)

	assert.Equal(t, []string{"post", "frame", "frame"}, order)
	assert.Equal(t, uint64(2), r.Frames())
	drawn, _ := backend.Drawn()
	assert.Equal(t, uint64(2), drawn)
}

func TestRenderer_PostFromPostRunsNextFrame(t *testing.T) {
	r, _, _ := newHeadless(t)

	ran := 0
	r.Post(func() {
		r.Post(func() { ran++ })
	})
	r.Step(0)
	assert.Equal(t, 0, ran)
	r.Step(0)
	assert.Equal(t, 1, ran)
}

func TestRenderer_CancelFrameCallback(t *testing.T) {
	r, _, _ := newHeadless(t)

	calls := 0
	var cancelSecond func()
	r.OnFrame(func(float32) { cancelSecond() })
	cancelSecond = r.OnFrame(func(float32) { calls++ })

	r.Step(0)
	assert.Equal(t, 0, calls)
	cancelSecond()
}

func TestRenderer_SubmitAndDetach(t *testing.T) {
	r, backend, _ := newHeadless(t)

	f := scene.Frame{
		Background: mgl32.Vec3{0.2, 0.2, 0.2},
		Content:    scene.ContentFallback,
		Draws:      []scene.Draw{{Name: "sphere", Mesh: -1}},
	}
	r.SubmitScene(f)
	r.Step(0)
	_, last := backend.Drawn()
	assert.Equal(t, scene.ContentFallback, last.Content)

	r.Detach()
	assert.False(t, r.Attached())
	r.Step(0)
	_, last = backend.Drawn()
	assert.True(t, last.Empty())
	assert.Empty(t, last.Draws)
	assert.Equal(t, f.Background, last.Background)

	r.Attach()
	r.Step(0)
	_, last = backend.Drawn()
	assert.Len(t, last.Draws, 1)
}

func TestRenderer_PanicsAreReported(t *testing.T) {
	r, _, sink := newHeadless(t)

	r.OnFrame(func(float32) { panic("boom") })
	after := 0
	r.OnFrame(func(float32) { after++ })
	r.Post(func() { panic(errors.New("webgl context lost")) })

	assert.NotPanics(t, func() { r.Step(0) })
	assert.Equal(t, 1, after)

	errs := sink.all()
	require.Len(t, errs, 2)
	for _, err := range errs {
		assert.Equal(t, fault.KindRuntime, fault.KindOf(err))
		var uncaught *hosterror.UncaughtError
		assert.ErrorAs(t, err, &uncaught)
	}
	assert.True(t, fault.NewFilter(nil, "").Match(errs[0]))
}

func TestRenderer_SurfaceErrorsPrefixed(t *testing.T) {
	ch := hosterror.NewChannel()
	sink := &errorSink{}
	ch.Subscribe(sink.add)
	r, err := NewRenderer(BackendTypeHeadless, nil,
		WithBackend(&failingBackend{err: errors.New("surface lost")}),
		WithHostErrors(ch),
	)
	require.NoError(t, err)

	r.Step(0)
	errs := sink.all()
	require.Len(t, errs, 1)
	assert.True(t, strings.Contains(errs[0].Error(), "wgpu:"))
	assert.Equal(t, fault.KindRuntime, fault.KindOf(errs[0]))
	assert.Equal(t, uint64(1), r.Frames())
}

func TestRenderer_WGPUNeedsSurface(t *testing.T) {
	_, err := NewRenderer(BackendTypeWGPU, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wgpu:")
}

func TestRenderer_RunStopsOnQuitAndContext(t *testing.T) {
	r, _, _ := newHeadless(t, WithFrameLimit(1000))

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()
	require.Eventually(t, func() bool { return r.Frames() > 2 }, time.Second, time.Millisecond)

	assert.Error(t, r.Run(context.Background()))
	r.Quit()
	r.Quit()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Quit")
	}

	r2, _, _ := newHeadless(t)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { done <- r2.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRenderer_ProfilerToggle(t *testing.T) {
	r, _, _ := newHeadless(t)
	r.EnableProfiler()
	assert.True(t, r.profilingEnabled.Load())
	r.Step(0)
	r.DisableProfiler()
	assert.False(t, r.profilingEnabled.Load())
}

func TestBackendType_String(t *testing.T) {
	assert.Equal(t, "wgpu", BackendTypeWGPU.String())
	assert.Equal(t, "headless", BackendTypeHeadless.String())
}
