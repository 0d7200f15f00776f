package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// PrimitiveShape identifies a procedural placeholder shape.
type PrimitiveShape int

const (
	// ShapeSphere is a UV sphere.
	ShapeSphere PrimitiveShape = iota
)

func (s PrimitiveShape) String() string {
	switch s {
	case ShapeSphere:
		return "sphere"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// Primitive is the placeholder shown while the asset loads or after it fails.
type Primitive struct {
	Shape          PrimitiveShape
	Radius         float32
	WidthSegments  int
	HeightSegments int
	Color          mgl32.Vec3
}

// DefaultFallback returns a unit sphere with 32 by 16 segments.
func DefaultFallback() Primitive {
	return Primitive{
		Shape:          ShapeSphere,
		Radius:         1,
		WidthSegments:  32,
		HeightSegments: 16,
		Color:          mgl32.Vec3{0.31, 0.61, 1},
	}
}

// VertexCount returns the number of vertices the primitive tessellates into.
func (p Primitive) VertexCount() int {
	return (p.WidthSegments + 1) * (p.HeightSegments + 1)
}
