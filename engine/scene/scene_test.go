package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/light"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/model"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScene_Defaults(t *testing.T) {
	s := NewScene()

	require.NotNil(t, s.Camera())
	assert.True(t, s.Camera().Position().ApproxEqualThreshold(mgl32.Vec3{0, 0, 5}, 1e-5))
	assert.Equal(t, Fog{Near: 5, Far: 15}, s.Fog())
	assert.Equal(t, GroupName, s.Group().Name())
	assert.Equal(t, ContentNone, s.Content().Kind)

	lights := s.Lights()
	require.Len(t, lights, 3)
	assert.Equal(t, light.LightTypeAmbient, lights[0].Type())
	assert.Equal(t, float32(0.4), lights[0].Intensity())
	assert.Equal(t, mgl32.Vec3{10, 10, 10}, lights[1].Position())
	assert.Equal(t, float32(0.6), lights[1].Intensity())
	assert.Equal(t, mgl32.Vec3{-10, -10, -10}, lights[2].Position())
	assert.Equal(t, lights[1].Color(), lights[2].Color())
}

func TestScene_ContentSlotHoldsOne(t *testing.T) {
	s := NewScene()

	s.AttachFallback(DefaultFallback())
	c := s.Content()
	assert.Equal(t, ContentFallback, c.Kind)
	assert.Equal(t, float32(1), c.Primitive.Radius)
	assert.Equal(t, 32, c.Primitive.WidthSegments)
	assert.Equal(t, 16, c.Primitive.HeightSegments)
	assert.Len(t, s.Group().Children(), 1)

	root := model.NewNode(model.WithNodeName("jellyfish"), model.WithChildren(
		model.NewNode(model.WithNodeName("bell"), model.WithMesh(0)),
	))
	s.AttachModel(root)
	children := s.Group().Children()
	require.Len(t, children, 1)
	assert.Same(t, root, children[0])
	assert.Equal(t, ContentModel, s.Content().Kind)
	assert.Same(t, s.Group(), root.Parent())

	s.Detach()
	assert.Empty(t, s.Group().Children())
	assert.Equal(t, ContentNone, s.Content().Kind)
	assert.Nil(t, root.Parent())
}

func TestScene_AttachNilModelDetaches(t *testing.T) {
	s := NewScene()
	s.AttachFallback(DefaultFallback())
	s.AttachModel(nil)
	assert.Equal(t, ContentNone, s.Content().Kind)
}

func TestScene_DetachResetsGroup(t *testing.T) {
	s := NewScene()
	s.AttachFallback(DefaultFallback())
	s.Group().RotateY(1.5)

	s.Detach()
	assert.Equal(t, mgl32.Vec3{}, s.Group().Rotation())
}

func TestScene_Frame(t *testing.T) {
	s := NewScene(WithBackground(mgl32.Vec3{0.1, 0.1, 0.1}))
	assert.True(t, s.Frame().Empty())

	root := model.NewNode(model.WithNodeName("jellyfish"), model.WithChildren(
		model.NewNode(model.WithNodeName("bell"), model.WithMesh(0), model.WithPosition(mgl32.Vec3{0, 2, 0})),
		model.NewNode(model.WithNodeName("pivot")),
	))
	s.AttachModel(root)
	s.Group().SetPosition(mgl32.Vec3{1, 0, 0})

	f := s.Frame()
	assert.False(t, f.Empty())
	assert.Equal(t, ContentModel, f.Content)
	assert.Equal(t, mgl32.Vec3{0.1, 0.1, 0.1}, f.Background)
	assert.Len(t, f.Lights, 3)
	require.Len(t, f.Draws, 1)
	assert.Equal(t, "bell", f.Draws[0].Name)
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, f.Draws[0].World.Col(3).Vec3())
	assert.Equal(t, s.Camera().ViewMatrix(), f.View)

	s.AttachFallback(DefaultFallback())
	f = s.Frame()
	require.Len(t, f.Draws, 1)
	assert.Equal(t, -1, f.Draws[0].Mesh)
	assert.Equal(t, ShapeSphere, f.Primitive.Shape)
}

func TestScene_DisabledLightsSkipped(t *testing.T) {
	l := light.NewLight(light.LightTypePoint, light.WithEnabled(false))
	s := NewScene(WithLights(l))
	assert.Empty(t, s.Frame().Lights)
}

func TestScene_UpdateMovesCamera(t *testing.T) {
	s := NewScene()
	before := s.Camera().Position()
	s.Update(1)
	assert.NotEqual(t, before, s.Camera().Position())
}

func TestPrimitive_VertexCount(t *testing.T) {
	assert.Equal(t, 33*17, DefaultFallback().VertexCount())
}
