package light

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every surface uniformly, with no position or direction.
	LightTypeAmbient LightType = iota

	// LightTypePoint emits in all directions from a position.
	LightTypePoint

	// LightTypeDirectional has a direction and no position.
	LightTypeDirectional
)

func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypePoint:
		return "point"
	case LightTypeDirectional:
		return "directional"
	default:
		return fmt.Sprintf("light(%d)", int(t))
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType LightType
	position  mgl32.Vec3
	direction mgl32.Vec3
	color     mgl32.Vec3
	intensity float32
	enabled   bool
}

// Light defines a light source in the backdrop scene.
//
// Lights are plain descriptors: the scene owns them and hands copies to the
// renderer in each frame snapshot. Type-specific properties return their zero
// values when not applicable (an ambient light has no position).
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (ambient, point or directional)
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for ambient and directional lights.
	Position() mgl32.Vec3

	// Direction returns the normalized direction of a directional light.
	Direction() mgl32.Vec3

	// Color returns the RGB color of the light in linear [0, 1] components.
	Color() mgl32.Vec3

	// Intensity returns the scalar intensity multiplier for the light.
	Intensity() float32

	// Enabled returns whether this light contributes to the frame.
	Enabled() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p mgl32.Vec3)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - c: color as (r, g, b)
	SetColor(c mgl32.Vec3)

	// SetIntensity sets the scalar intensity multiplier.
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light.
	SetEnabled(enabled bool)

	// Snapshot returns an immutable copy of the light's current values.
	//
	// Returns:
	//   - State: the copied values
	Snapshot() State
}

// State is a value copy of a light taken for one frame.
type State struct {
	Type      LightType
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with white color, intensity 1
// and any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		direction: mgl32.Vec3{0, -1, 0},
		color:     mgl32.Vec3{1, 1, 1},
		intensity: 1.0,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	return l.direction
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(p mgl32.Vec3) {
	l.position = p
}

func (l *lightImpl) SetColor(c mgl32.Vec3) {
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) Snapshot() State {
	return State{
		Type:      l.lightType,
		Position:  l.position,
		Direction: l.direction,
		Color:     l.color,
		Intensity: l.intensity,
	}
}
