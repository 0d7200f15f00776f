package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_Hierarchy(t *testing.T) {
	bell := NewNode(WithNodeName("bell"))
	tentacle := NewNode(WithNodeName("tentacle"))
	root := NewNode(WithNodeName("root"), WithChildren(bell))
	bell.AddChild(tentacle)

	assert.Equal(t, root, bell.Parent())
	assert.Equal(t, bell, tentacle.Parent())
	assert.Nil(t, root.Parent())
	assert.Equal(t, tentacle, root.Find("tentacle"))
	assert.Nil(t, root.Find("missing"))

	var names []string
	root.Walk(func(n Node) { names = append(names, n.Name()) })
	assert.Equal(t, []string{"root", "bell", "tentacle"}, names)
}

func TestNode_AddChildRejectsCycles(t *testing.T) {
	parent := NewNode(WithNodeName("parent"))
	child := NewNode(WithNodeName("child"))
	parent.AddChild(child)

	child.AddChild(parent)
	parent.AddChild(parent)

	assert.Nil(t, parent.Parent())
	assert.Empty(t, child.Children())
}

func TestNode_Reparent(t *testing.T) {
	a := NewNode(WithNodeName("a"))
	b := NewNode(WithNodeName("b"))
	c := NewNode(WithNodeName("c"))
	a.AddChild(c)

	b.AddChild(c)

	assert.Empty(t, a.Children())
	require.Len(t, b.Children(), 1)
	assert.Equal(t, b, c.Parent())

	b.RemoveChild(c)
	assert.Nil(t, c.Parent())
	assert.Empty(t, b.Children())
}

func TestNode_RotateYAccumulates(t *testing.T) {
	n := NewNode()

	n.RotateY(0.25)
	n.RotateY(0.25)

	assert.InDelta(t, 0.5, n.Rotation()[1], 1e-6)
	assert.Equal(t, mgl32.QuatIdent(), n.Transform().Orientation)
}

func TestNode_WorldMatrix(t *testing.T) {
	parent := NewNode(WithPosition(mgl32.Vec3{1, 0, 0}))
	child := NewNode(WithPosition(mgl32.Vec3{0, 2, 0}))
	parent.AddChild(child)

	world := child.WorldMatrix()
	assert.InDelta(t, 1, world.At(0, 3), 1e-6)
	assert.InDelta(t, 2, world.At(1, 3), 1e-6)
}

func TestDecomposeMatrix(t *testing.T) {
	want := Transform{
		Translation: mgl32.Vec3{1, 2, 3},
		Orientation: mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}),
		Scale:       mgl32.Vec3{2, 2, 2},
	}

	got := DecomposeMatrix(want.Matrix())

	assert.True(t, got.Translation.ApproxEqualThreshold(want.Translation, 1e-5))
	assert.True(t, got.Scale.ApproxEqualThreshold(want.Scale, 1e-5))
	assert.True(t, got.Orientation.OrientationEqualThreshold(want.Orientation, 1e-4))
}

func TestModel_Animations(t *testing.T) {
	m := NewModel(
		WithName("jellyfish"),
		WithAnimations([]*AnimationClip{{Name: "swim", Duration: 2}, {Name: "pulse", Duration: 1}}),
	)

	require.NotNil(t, m.Root())
	assert.Equal(t, "jellyfish", m.Root().Name())
	assert.Equal(t, 2, m.AnimationCount())
	assert.Equal(t, []string{"swim", "pulse"}, m.AnimationNames())
	assert.Equal(t, 1, m.GetAnimationIndex("pulse"))
	assert.Equal(t, -1, m.GetAnimationIndex("idle"))
}
