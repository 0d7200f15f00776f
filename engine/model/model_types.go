package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

// --- Transform Types ---

// Transform represents a decomposed local transform.
type Transform struct {
	// Translation is the position offset relative to the parent.
	Translation mgl32.Vec3

	// Orientation is the authored rotation as a quaternion.
	Orientation mgl32.Quat

	// Rotation is an additional Euler rotation (radians, XYZ order) applied after Orientation.
	// Procedural motion drives this component so authored orientation is never overwritten.
	Rotation mgl32.Vec3

	// Scale is the scale factor along each axis.
	Scale mgl32.Vec3
}

// IdentityTransform returns a transform with no translation, no rotation and unit scale.
//
// Returns:
//   - Transform: the identity transform
func IdentityTransform() Transform {
	return Transform{
		Orientation: mgl32.QuatIdent(),
		Scale:       mgl32.Vec3{1, 1, 1},
	}
}

// Matrix composes the transform into a 4x4 local matrix (T * R(orientation) * R(euler) * S).
//
// Returns:
//   - mgl32.Mat4: the local transform matrix
func (t Transform) Matrix() mgl32.Mat4 {
	euler := mgl32.HomogRotate3DX(t.Rotation[0]).
		Mul4(mgl32.HomogRotate3DY(t.Rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(t.Rotation[2]))
	return mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2]).
		Mul4(t.Orientation.Mat4()).
		Mul4(euler).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// DecomposeMatrix splits a column-major TRS matrix into a Transform.
// Shear is discarded.
//
// Parameters:
//   - m: the matrix to decompose
//
// Returns:
//   - Transform: the decomposed transform
func DecomposeMatrix(m mgl32.Mat4) Transform {
	t := IdentityTransform()
	t.Translation = m.Col(3).Vec3()

	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	t.Scale = mgl32.Vec3{sx, sy, sz}
	if sx == 0 || sy == 0 || sz == 0 {
		return t
	}

	rot := mgl32.Mat3FromCols(
		m.Col(0).Vec3().Mul(1/sx),
		m.Col(1).Vec3().Mul(1/sy),
		m.Col(2).Vec3().Mul(1/sz),
	)
	t.Orientation = mgl32.Mat4ToQuat(rot.Mat4()).Normalize()
	return t
}

// --- Animation Types ---

// AnimationClip describes a single authored animation bundled with an asset.
// Keyframe data stays with the underlying engine; only what playback needs is kept here.
type AnimationClip struct {
	// Name is the animation identifier.
	Name string

	// Duration is the total length of the animation in seconds.
	Duration float32

	// Targets are the names of the nodes the clip's channels animate.
	Targets []string
}
