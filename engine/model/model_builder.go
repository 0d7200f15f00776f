package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithRoot is an option builder that sets the scene-graph root of the Model.
//
// Parameters:
//   - root: the root node of the imported hierarchy
//
// Returns:
//   - ModelBuilderOption: a function that applies the root option to a model
func WithRoot(root Node) ModelBuilderOption {
	return func(m *model) {
		m.root = root
	}
}

// WithAnimations is an option builder that sets the animation clips bundled with the Model.
//
// Parameters:
//   - animations: the clips, in authored order
//
// Returns:
//   - ModelBuilderOption: a function that applies the animations option to a model
func WithAnimations(animations []*AnimationClip) ModelBuilderOption {
	return func(m *model) {
		m.animations = animations
	}
}

// WithMeshCount is an option builder that records how many meshes the asset declares.
//
// Parameters:
//   - count: the mesh count
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh count option to a model
func WithMeshCount(count int) ModelBuilderOption {
	return func(m *model) {
		m.meshCount = count
	}
}

// NodeBuilderOption is a functional option for configuring a Node via NewNode.
type NodeBuilderOption func(*node)

// WithNodeName is an option builder that sets the name of the Node.
//
// Parameters:
//   - name: the node identifier
//
// Returns:
//   - NodeBuilderOption: a function that applies the name option to a node
func WithNodeName(name string) NodeBuilderOption {
	return func(n *node) {
		n.name = name
	}
}

// WithTransform is an option builder that sets the local transform of the Node.
//
// Parameters:
//   - t: the local transform
//
// Returns:
//   - NodeBuilderOption: a function that applies the transform option to a node
func WithTransform(t Transform) NodeBuilderOption {
	return func(n *node) {
		n.transform = t
	}
}

// WithPosition is an option builder that sets the local translation of the Node.
//
// Parameters:
//   - p: the local translation
//
// Returns:
//   - NodeBuilderOption: a function that applies the position option to a node
func WithPosition(p mgl32.Vec3) NodeBuilderOption {
	return func(n *node) {
		n.transform.Translation = p
	}
}

// WithMesh is an option builder that sets the mesh index rendered by the Node.
//
// Parameters:
//   - index: the mesh index, or -1 for none
//
// Returns:
//   - NodeBuilderOption: a function that applies the mesh option to a node
func WithMesh(index int) NodeBuilderOption {
	return func(n *node) {
		n.mesh = index
	}
}

// WithChildren is an option builder that attaches children to the Node at construction.
//
// Parameters:
//   - children: the child nodes
//
// Returns:
//   - NodeBuilderOption: a function that applies the children option to a node
func WithChildren(children ...Node) NodeBuilderOption {
	return func(n *node) {
		for _, c := range children {
			n.AddChild(c)
		}
	}
}
