package scene

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/camera"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/light"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/model"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// GroupName is the name of the wrapper node every piece of content is attached under.
const GroupName = "backdrop_group"

// ContentKind identifies what the scene's content slot holds.
type ContentKind int

const (
	// ContentNone means nothing is attached.
	ContentNone ContentKind = iota
	// ContentModel means a loaded asset graph is attached.
	ContentModel
	// ContentFallback means the placeholder primitive is attached.
	ContentFallback
)

func (k ContentKind) String() string {
	switch k {
	case ContentNone:
		return "none"
	case ContentModel:
		return "model"
	case ContentFallback:
		return "fallback"
	default:
		return fmt.Sprintf("content(%d)", int(k))
	}
}

// Fog is linear distance fog.
type Fog struct {
	Color mgl32.Vec3
	Near  float32
	Far   float32
}

// Content is the current value of the content slot.
type Content struct {
	Kind ContentKind
	// Node is the attached graph root for ContentModel, or the node standing in for the primitive.
	Node model.Node
	// Primitive describes the placeholder for ContentFallback.
	Primitive Primitive
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu sync.Mutex

	camera     camera.Camera
	lights     []light.Light
	fog        Fog
	background mgl32.Vec3

	group   model.Node
	content Content

	logger zerolog.Logger
}

// Scene composes the backdrop: a camera, lights, fog, a background color and a
// content slot that holds either a loaded asset graph or the fallback primitive.
// All content is attached under a single wrapper group node which procedural
// motion drives, so the asset's own nodes stay free for clip animation.
// Thread-safe for concurrent access.
type Scene interface {
	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Lights returns the scene's lights in draw order.
	Lights() []light.Light

	// Fog returns the fog settings.
	Fog() Fog

	// Background returns the clear color.
	Background() mgl32.Vec3

	// Group returns the wrapper node content is attached under.
	Group() model.Node

	// AttachModel places root into the content slot, replacing whatever was there.
	//
	// Parameters:
	//   - root: the loaded asset graph; nil is treated as Detach
	AttachModel(root model.Node)

	// AttachFallback places the placeholder primitive into the content slot, replacing whatever was there.
	//
	// Parameters:
	//   - p: the primitive to show
	AttachFallback(p Primitive)

	// Detach empties the content slot and resets the group transform.
	Detach()

	// Content returns the current content slot value.
	Content() Content

	// Update advances the camera by dt seconds.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Update(dt float32)

	// Frame returns a snapshot of everything the renderer needs for one frame.
	//
	// Returns:
	//   - Frame: the immutable snapshot
	Frame() Frame
}

var _ Scene = &scene{}

// NewScene creates a Scene with the backdrop defaults: the default camera, black fog
// from 5 to 15 units, an ambient light at 0.4 and two blue point lights at
// (10, 10, 10) and (-10, -10, -10).
//
// Parameters:
//   - options: a variadic list of SceneBuilderOption functions to configure the Scene
//
// Returns:
//   - Scene: the new scene with an empty content slot
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		fog:    Fog{Color: mgl32.Vec3{0, 0, 0}, Near: 5, Far: 15},
		group:  model.NewNode(model.WithNodeName(GroupName)),
		logger: zerolog.Nop(),
	}
	for _, option := range options {
		option(s)
	}
	if s.camera == nil {
		s.camera = camera.NewCamera()
	}
	if s.lights == nil {
		s.lights = DefaultLights()
	}
	s.logger = s.logger.With().Str("component", "scene").Logger()
	return s
}

// DefaultLights returns the backdrop's default lighting rig.
//
// Returns:
//   - []light.Light: ambient 0.4 plus two #4F9BFF point lights
func DefaultLights() []light.Light {
	blue, _ := light.ParseHexColor("#4F9BFF")
	return []light.Light{
		light.NewLight(light.LightTypeAmbient, light.WithIntensity(0.4)),
		light.NewLight(light.LightTypePoint,
			light.WithPosition(mgl32.Vec3{10, 10, 10}),
			light.WithIntensity(0.6),
			light.WithColor(blue),
		),
		light.NewLight(light.LightTypePoint,
			light.WithPosition(mgl32.Vec3{-10, -10, -10}),
			light.WithIntensity(0.4),
			light.WithColor(blue),
		),
	}
}

func (s *scene) Camera() camera.Camera {
	return s.camera
}

func (s *scene) Lights() []light.Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) Fog() Fog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fog
}

func (s *scene) Background() mgl32.Vec3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background
}

func (s *scene) Group() model.Node {
	return s.group
}

func (s *scene) AttachModel(root model.Node) {
	if root == nil {
		s.Detach()
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	s.group.AddChild(root)
	s.content = Content{Kind: ContentModel, Node: root}
	s.logger.Debug().Str("root", root.Name()).Msg("model attached")
}

func (s *scene) AttachFallback(p Primitive) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	n := model.NewNode(model.WithNodeName(p.Shape.String()))
	s.group.AddChild(n)
	s.content = Content{Kind: ContentFallback, Node: n, Primitive: p}
	s.logger.Debug().Str("shape", p.Shape.String()).Msg("fallback attached")
}

func (s *scene) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	s.group.SetTransform(model.IdentityTransform())
}

// clearLocked removes the current content from the group. Caller must hold the mutex.
func (s *scene) clearLocked() {
	if s.content.Node != nil {
		s.group.RemoveChild(s.content.Node)
	}
	s.content = Content{}
}

func (s *scene) Content() Content {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

func (s *scene) Update(dt float32) {
	s.camera.Update(dt)
}

func (s *scene) Frame() Frame {
	s.mu.Lock()
	content := s.content
	f := Frame{
		Background: s.background,
		Fog:        s.fog,
		Content:    content.Kind,
		Primitive:  content.Primitive,
	}
	for _, l := range s.lights {
		if l.Enabled() {
			f.Lights = append(f.Lights, l.Snapshot())
		}
	}
	s.mu.Unlock()

	f.View = s.camera.ViewMatrix()
	f.Projection = s.camera.ProjectionMatrix()
	f.CameraPosition = s.camera.Position()

	switch content.Kind {
	case ContentModel:
		content.Node.Walk(func(n model.Node) {
			if n.Mesh() >= 0 {
				f.Draws = append(f.Draws, Draw{Name: n.Name(), Mesh: n.Mesh(), World: n.WorldMatrix()})
			}
		})
	case ContentFallback:
		f.Draws = append(f.Draws, Draw{Name: content.Node.Name(), Mesh: -1, World: content.Node.WorldMatrix()})
	}
	return f
}
