package scene

import (
	"github.com/Carmen-Shannon/oxy-backdrop/engine/camera"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/light"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithCamera replaces the default camera.
//
// Parameters:
//   - cam: the camera to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.camera = cam
	}
}

// WithLights replaces the default lighting rig. An empty, non-nil slice yields an unlit scene.
//
// Parameters:
//   - lights: the lights to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lights = append([]light.Light{}, lights...)
	}
}

// WithFog sets the fog color and distance range.
func WithFog(fog Fog) SceneBuilderOption {
	return func(s *scene) {
		s.fog = fog
	}
}

// WithBackground sets the clear color.
func WithBackground(color mgl32.Vec3) SceneBuilderOption {
	return func(s *scene) {
		s.background = color
	}
}

// WithLogger sets the logger used by the scene.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger zerolog.Logger) SceneBuilderOption {
	return func(s *scene) {
		s.logger = logger
	}
}
