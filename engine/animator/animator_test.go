package animator

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/loader"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/model"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jellyfishRoot() model.Node {
	return model.NewNode(
		model.WithNodeName("jellyfish"),
		model.WithChildren(
			model.NewNode(model.WithNodeName("bell"), model.WithChildren(
				model.NewNode(model.WithNodeName("tentacle")),
			)),
		),
	)
}

// loadHandle resolves a handle for a model with the given clips through a real Loader.
func loadHandle(t *testing.T, clips []*model.AnimationClip) *loader.AssetHandle {
	t.Helper()
	l := loader.NewLoader(loader.BackendTypeGLTF, loader.WithBackend(loader.BackendFunc(
		func(ctx context.Context, path string) (model.Model, error) {
			return model.NewModel(
				model.WithName("jellyfish"),
				model.WithRoot(jellyfishRoot()),
				model.WithAnimations(clips),
			), nil
		},
	)))
	t.Cleanup(l.Close)

	h, err := l.Load(context.Background(), "jellyfish.glb")
	require.NoError(t, err)
	return h
}

func TestMixer_LoopRepeatWraps(t *testing.T) {
	m := NewMixer()
	clip := &model.AnimationClip{Name: "swim", Duration: 2}

	a, err := m.ClipAction(clip, jellyfishRoot())
	require.NoError(t, err)
	assert.False(t, a.Running())

	a.Reset().SetLoop(LoopRepeat, Infinite).Play()
	m.Update(1.5)
	assert.InDelta(t, 1.5, a.Time(), 1e-6)

	m.Update(1.0)
	assert.InDelta(t, 0.5, a.Time(), 1e-5)
	assert.Equal(t, 1, a.Loops())
	assert.True(t, a.Running())

	m.Update(10)
	assert.True(t, a.Running())
	assert.Equal(t, 6, a.Loops())
}

func TestMixer_FiniteRepeatsStop(t *testing.T) {
	m := NewMixer()
	a, err := m.ClipAction(&model.AnimationClip{Name: "pulse", Duration: 1}, jellyfishRoot())
	require.NoError(t, err)

	a.SetLoop(LoopRepeat, 2).Play()
	m.Update(1.5)
	assert.True(t, a.Running())
	m.Update(1.0)
	assert.False(t, a.Running())
}

func TestMixer_LoopOnceClamps(t *testing.T) {
	m := NewMixer()
	a, err := m.ClipAction(&model.AnimationClip{Name: "pulse", Duration: 1}, jellyfishRoot())
	require.NoError(t, err)

	a.SetLoop(LoopOnce, 1).SetTimeScale(2).Play()
	m.Update(0.75)

	assert.False(t, a.Running())
	assert.InDelta(t, 1, a.Time(), 1e-6)
}

func TestMixer_ClipActionValidation(t *testing.T) {
	m := NewMixer()
	root := jellyfishRoot()

	_, err := m.ClipAction(&model.AnimationClip{Name: "empty", Duration: 0}, root)
	assert.Error(t, err)

	_, err = m.ClipAction(&model.AnimationClip{Name: "nan", Duration: float32(math.NaN())}, root)
	assert.Error(t, err)

	_, err = m.ClipAction(&model.AnimationClip{Name: "orphan", Duration: 1, Targets: []string{"fin"}}, root)
	assert.ErrorContains(t, err, "fin")

	clip := &model.AnimationClip{Name: "swim", Duration: 1, Targets: []string{"tentacle"}}
	first, err := m.ClipAction(clip, root)
	require.NoError(t, err)
	second, err := m.ClipAction(clip, root)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Len(t, m.Actions(), 1)
}

func TestController_BindRequiresReadyHandle(t *testing.T) {
	c := NewController()

	_, err := c.Bind(nil, model.NewNode())
	assert.ErrorIs(t, err, ErrNotReady)

	l := loader.NewLoader(loader.BackendTypeGLTF, loader.WithBackend(loader.BackendFunc(
		func(ctx context.Context, path string) (model.Model, error) {
			return nil, errors.New("gltf: bad magic")
		},
	)))
	defer l.Close()
	h, _ := l.Load(context.Background(), "broken.glb")

	_, err = c.Bind(h, model.NewNode())
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Nil(t, c.Current())
}

func TestController_BindStartsClipsAndSkipsBroken(t *testing.T) {
	h := loadHandle(t, []*model.AnimationClip{
		{Name: "swim", Duration: 2, Targets: []string{"bell"}},
		{Name: "broken", Duration: 0},
		{Name: "orphan", Duration: 1, Targets: []string{"fin"}},
		{Name: "pulse", Duration: 1, Targets: []string{"tentacle"}},
	})
	c := NewController()
	target := model.NewNode(model.WithNodeName("group"))

	b, err := c.Bind(h, target)
	require.NoError(t, err)

	assert.True(t, b.Native())
	require.Len(t, b.Actions(), 2)
	assert.Equal(t, "swim", b.Actions()[0].Clip().Name)
	assert.Equal(t, "pulse", b.Actions()[1].Clip().Name)
	for _, a := range b.Actions() {
		assert.True(t, a.Running())
		assert.Zero(t, a.Time())
	}
	assert.Equal(t, target, b.Target())
	assert.Same(t, h, b.Handle())

	b.Update(0.5)
	assert.InDelta(t, 0.5, b.Actions()[0].Time(), 1e-6)
}

func TestController_NoClipsIsNotNative(t *testing.T) {
	h := loadHandle(t, nil)
	c := NewController()

	b, err := c.Bind(h, model.NewNode())
	require.NoError(t, err)
	assert.False(t, b.Native())
	assert.Empty(t, b.Actions())
}

func TestController_RebindTearsDownPrevious(t *testing.T) {
	h := loadHandle(t, []*model.AnimationClip{{Name: "swim", Duration: 1}})
	c := NewController()

	first, err := c.Bind(h, model.NewNode())
	require.NoError(t, err)
	second, err := c.Bind(h, model.NewNode())
	require.NoError(t, err)

	assert.True(t, first.Stopped())
	assert.False(t, first.Actions()[0].Running())
	assert.False(t, second.Stopped())
	assert.Equal(t, second, c.Current())

	c.Teardown()
	assert.True(t, second.Stopped())
	assert.Nil(t, c.Current())

	second.Update(1)
	assert.Zero(t, second.Actions()[0].Time())
}

func TestProcedural_RotationMonotonic(t *testing.T) {
	n := model.NewNode(model.WithPosition(mgl32.Vec3{1, 0, 2}))
	p := DefaultProcedural()

	prev := n.Rotation()[1]
	for i := 1; i <= 100; i++ {
		p.Apply(n, float32(i)/60)
		cur := n.Rotation()[1]
		assert.Greater(t, cur, prev)
		prev = cur
	}
	assert.InDelta(t, 0.1, prev, 1e-5)

	pos := n.Position()
	assert.Equal(t, float32(1), pos[0])
	assert.Equal(t, float32(2), pos[2])
	assert.InDelta(t, 0.1*math.Sin(100.0/60*0.3), pos[1], 1e-5)
}

func TestProcedural_NilNode(t *testing.T) {
	assert.NotPanics(t, func() { DefaultProcedural().Apply(nil, 1) })
}
