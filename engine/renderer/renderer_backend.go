package renderer

import (
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scene"

	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeHeadless runs the frame loop without a GPU. Frames are recorded, not drawn.
	BackendTypeHeadless
)

func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeWGPU:
		return "wgpu"
	case BackendTypeHeadless:
		return "headless"
	default:
		return "unknown"
	}
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// Surface is the window-side source of a WebGPU surface.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// RendererBackend draws one frame snapshot per call.
type RendererBackend interface {
	// ConfigureSurface (re)configures the presentation surface for a new size.
	// A zero width or height (minimized window) is accepted and skips drawing until resized.
	//
	// Parameters:
	//   - width: the surface width in pixels
	//   - height: the surface height in pixels
	//
	// Returns:
	//   - error: if the surface could not be configured
	ConfigureSurface(width, height int) error

	// SetPresentMode selects the present mode used by the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// DrawFrame acquires the next surface texture, renders f into it and presents it.
	//
	// Parameters:
	//   - f: the frame snapshot
	//
	// Returns:
	//   - error: if the surface texture could not be acquired or the commands failed
	DrawFrame(f scene.Frame) error

	// Release frees every GPU object held by the backend.
	Release()
}
