package scene

import (
	"github.com/Carmen-Shannon/oxy-backdrop/engine/light"

	"github.com/go-gl/mathgl/mgl32"
)

// Draw is one renderable node in a frame snapshot.
type Draw struct {
	Name string
	// Mesh is the asset mesh index, or -1 for the fallback primitive.
	Mesh  int
	World mgl32.Mat4
}

// Frame is an immutable snapshot of a Scene handed to the renderer once per frame.
type Frame struct {
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	CameraPosition mgl32.Vec3
	Background     mgl32.Vec3
	Fog            Fog
	Lights         []light.State
	Content        ContentKind
	Primitive      Primitive
	Draws          []Draw
}

// Empty reports whether the frame has nothing to draw.
func (f Frame) Empty() bool {
	return f.Content == ContentNone
}
