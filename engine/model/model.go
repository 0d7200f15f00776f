package model

// model is the implementation of the Model interface.
type model struct {
	name       string
	root       Node
	animations []*AnimationClip
	meshCount  int
}

// Model defines the interface for an imported 3D asset.
// A Model owns the scene-graph root produced by the loader and the ordered list of
// animation clips authored with it. It is produced by the Loader after fetching and
// decoding an asset file.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Root retrieves the scene-graph root of the imported hierarchy.
	//
	// Returns:
	//   - Node: the root node
	Root() Node

	// Animations retrieves all animation clips bundled with this model.
	//
	// Returns:
	//   - []*AnimationClip: the animation clips, possibly empty
	Animations() []*AnimationClip

	// AnimationCount returns the number of available animation clips.
	//
	// Returns:
	//   - int: the animation count
	AnimationCount() int

	// AnimationNames returns the names of all animation clips.
	//
	// Returns:
	//   - []string: the animation clip names
	AnimationNames() []string

	// GetAnimationIndex returns the index of an animation by name, or -1 if not found.
	//
	// Parameters:
	//   - name: the animation clip name to search for
	//
	// Returns:
	//   - int: the animation index, or -1 if not found
	GetAnimationIndex(name string) int

	// MeshCount returns the number of meshes the asset declares.
	//
	// Returns:
	//   - int: the mesh count
	MeshCount() int
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
// A model without a root is given an empty one so callers never see a nil root.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	if m.root == nil {
		m.root = NewNode(WithNodeName(m.name))
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Root() Node {
	return m.root
}

func (m *model) Animations() []*AnimationClip {
	return m.animations
}

func (m *model) AnimationCount() int {
	return len(m.animations)
}

func (m *model) AnimationNames() []string {
	names := make([]string, len(m.animations))
	for i, anim := range m.animations {
		names[i] = anim.Name
	}
	return names
}

func (m *model) GetAnimationIndex(name string) int {
	for i, anim := range m.animations {
		if anim.Name == name {
			return i
		}
	}
	return -1
}

func (m *model) MeshCount() int {
	return m.meshCount
}
