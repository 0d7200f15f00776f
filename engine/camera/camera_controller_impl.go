package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-backdrop/common"

	"github.com/go-gl/mathgl/mgl32"
)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	// Camera position (computed from target + spherical coords)
	position mgl32.Vec3
	target   mgl32.Vec3

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	minElevation float32
	maxElevation float32

	orbitSpeed float32

	autoRotate      bool
	autoRotateSpeed float32

	// initial position requested by WithPosition, resolved after all options
	initialPosition *mgl32.Vec3
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new orbit controller.
// Defaults place the camera 5 units in front of the origin on +Z, auto-rotating at
// speed 0.5 with elevation limited to roughly -10 to +36 degrees.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:     &sync.Mutex{},
		target: mgl32.Vec3{0, 0, 0},

		radius:    5.0,
		azimuth:   0.0,
		elevation: 0.0,

		orbitSpeed: 0.03,

		autoRotate:      true,
		autoRotateSpeed: 0.5,
	}
	cc.minElevation, cc.maxElevation = polarToElevation(math.Pi/2.5, math.Pi/1.8)

	for _, option := range options {
		option(cc)
	}

	if cc.initialPosition != nil {
		cc.setFromPosition(*cc.initialPosition)
		cc.initialPosition = nil
	}
	cc.elevation = common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
	return cc
}

// polarToElevation converts a polar angle range (measured down from +Y) into an
// elevation range (measured up from the horizontal plane).
func polarToElevation(minPolar, maxPolar float64) (minElevation, maxElevation float32) {
	return float32(math.Pi/2 - maxPolar), float32(math.Pi/2 - minPolar)
}

// --- internal helpers ---

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cosElev := float32(math.Cos(float64(cc.elevation)))
	sinElev := float32(math.Sin(float64(cc.elevation)))
	cosAzim := float32(math.Cos(float64(cc.azimuth)))
	sinAzim := float32(math.Sin(float64(cc.azimuth)))

	cc.position = cc.target.Add(mgl32.Vec3{
		cc.radius * cosElev * sinAzim,
		cc.radius * sinElev,
		cc.radius * cosElev * cosAzim,
	})
}

// setFromPosition derives spherical coordinates from a world-space position.
// Caller must hold the mutex or be constructing the controller.
func (cc *cameraControllerImpl) setFromPosition(p mgl32.Vec3) {
	offset := p.Sub(cc.target)
	cc.radius = offset.Len()
	if cc.radius < 1e-6 {
		cc.radius = 1e-6
		return
	}
	cc.azimuth = float32(math.Atan2(float64(offset[0]), float64(offset[2])))
	cc.elevation = float32(math.Asin(float64(common.Clamp(offset[1]/cc.radius, -1, 1))))
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(target mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = target
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitLeft() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth -= cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitRight() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth += cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = common.Clamp(cc.elevation+cc.orbitSpeed, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitDown() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = common.Clamp(cc.elevation-cc.orbitSpeed, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = azimuth
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = common.Clamp(elevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) MinElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minElevation
}

func (cc *cameraControllerImpl) MaxElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxElevation
}

func (cc *cameraControllerImpl) AutoRotate() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.autoRotate
}

func (cc *cameraControllerImpl) SetAutoRotate(enabled bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.autoRotate = enabled
}

func (cc *cameraControllerImpl) AutoRotateSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.autoRotateSpeed
}

func (cc *cameraControllerImpl) Update(dt float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.autoRotate || dt <= 0 {
		return
	}
	// Speed 1 is one orbit per 60 seconds, turning left.
	cc.azimuth -= 2 * math.Pi / 60 * cc.autoRotateSpeed * dt
	cc.azimuth = float32(math.Mod(float64(cc.azimuth), 2*math.Pi))
	cc.updatePosition()
}
