package model

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// node is the implementation of the Node interface.
type node struct {
	mu        sync.RWMutex
	name      string
	transform Transform
	parent    *node
	children  []*node
	mesh      int
}

// Node is a scene-graph node: a named local transform with children.
// All methods are safe for concurrent use.
type Node interface {
	// Name returns the node identifier.
	Name() string

	// Transform returns a copy of the node's local transform.
	//
	// Returns:
	//   - Transform: the local transform
	Transform() Transform

	// SetTransform replaces the node's local transform.
	//
	// Parameters:
	//   - t: the new local transform
	SetTransform(t Transform)

	// Position returns the local translation.
	Position() mgl32.Vec3

	// SetPosition sets the local translation.
	//
	// Parameters:
	//   - p: the new translation
	SetPosition(p mgl32.Vec3)

	// Rotation returns the Euler rotation (radians) applied on top of the authored orientation.
	Rotation() mgl32.Vec3

	// SetRotation sets the Euler rotation (radians).
	//
	// Parameters:
	//   - r: the new Euler rotation
	SetRotation(r mgl32.Vec3)

	// RotateY adds angle radians to the Euler rotation about the vertical axis.
	//
	// Parameters:
	//   - angle: the rotation increment in radians
	RotateY(angle float32)

	// LocalMatrix composes the local transform into a matrix.
	LocalMatrix() mgl32.Mat4

	// WorldMatrix composes the local transform with every ancestor's.
	WorldMatrix() mgl32.Mat4

	// Mesh returns the index of the mesh this node renders, or -1.
	Mesh() int

	// Parent returns the parent node, or nil for a root.
	Parent() Node

	// Children returns a copy of the child list.
	Children() []Node

	// AddChild attaches child under this node, detaching it from any previous parent.
	// Adding a node to itself or to one of its descendants is a no-op.
	//
	// Parameters:
	//   - child: the node to attach
	AddChild(child Node)

	// RemoveChild detaches child if it is a direct child of this node.
	//
	// Parameters:
	//   - child: the node to detach
	RemoveChild(child Node)

	// Find returns the first node named name in this subtree (depth-first, self included).
	//
	// Parameters:
	//   - name: the node name to look for
	//
	// Returns:
	//   - Node: the matching node, or nil
	Find(name string) Node

	// Walk calls fn for every node in this subtree, depth-first, self first.
	//
	// Parameters:
	//   - fn: the visitor
	Walk(fn func(Node))
}

var _ Node = &node{}

// NewNode creates a new Node with an identity transform and the options applied.
//
// Parameters:
//   - options: functional options configuring the node
//
// Returns:
//   - Node: the new node
func NewNode(options ...NodeBuilderOption) Node {
	n := &node{
		transform: IdentityTransform(),
		mesh:      -1,
	}
	for _, opt := range options {
		opt(n)
	}
	return n
}

func (n *node) Name() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.name
}

func (n *node) Transform() Transform {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.transform
}

func (n *node) SetTransform(t Transform) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.transform = t
}

func (n *node) Position() mgl32.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.transform.Translation
}

func (n *node) SetPosition(p mgl32.Vec3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.transform.Translation = p
}

func (n *node) Rotation() mgl32.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.transform.Rotation
}

func (n *node) SetRotation(r mgl32.Vec3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.transform.Rotation = r
}

func (n *node) RotateY(angle float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.transform.Rotation[1] += angle
}

func (n *node) LocalMatrix() mgl32.Mat4 {
	return n.Transform().Matrix()
}

func (n *node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parentNode(); p != nil; p = p.parentNode() {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

func (n *node) Mesh() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.mesh
}

func (n *node) Parent() Node {
	if p := n.parentNode(); p != nil {
		return p
	}
	return nil
}

func (n *node) Children() []Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *node) AddChild(child Node) {
	c, ok := child.(*node)
	if !ok || c == nil {
		return
	}
	for p := n; p != nil; p = p.parentNode() {
		if p == c {
			return
		}
	}

	if old := c.parentNode(); old != nil {
		old.RemoveChild(c)
	}

	n.mu.Lock()
	n.children = append(n.children, c)
	n.mu.Unlock()

	c.mu.Lock()
	c.parent = n
	c.mu.Unlock()
}

func (n *node) RemoveChild(child Node) {
	c, ok := child.(*node)
	if !ok || c == nil {
		return
	}

	n.mu.Lock()
	removed := false
	for i, existing := range n.children {
		if existing == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			removed = true
			break
		}
	}
	n.mu.Unlock()

	if removed {
		c.mu.Lock()
		c.parent = nil
		c.mu.Unlock()
	}
}

func (n *node) Find(name string) Node {
	var found Node
	n.Walk(func(x Node) {
		if found == nil && x.Name() == name {
			found = x
		}
	})
	return found
}

func (n *node) Walk(fn func(Node)) {
	fn(n)
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

// parentNode returns the typed parent under the read lock.
func (n *node) parentNode() *node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.parent
}
