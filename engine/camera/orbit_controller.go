package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-tour/common"
)

// orbitControllerImpl is the implementation of OrbitController.
// Orbit methods modify spherical coordinates and recompute position; planar methods
// translate both position and target along local camera axes, preserving the orbit relationship.
type orbitControllerImpl struct {
	mu *sync.Mutex

	// Camera position (computed from target + spherical coords)
	position common.Vec3
	target   common.Vec3

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed       float32
	mouseSensitivity float32
	zoomSpeed        float32
	panSpeed         float32
}

var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates a new orbit controller with defaults suited to viewing
// a building-sized scene from outside.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(options ...OrbitControllerOption) OrbitController {
	cc := &orbitControllerImpl{
		mu: &sync.Mutex{},

		radius:    15.0,
		azimuth:   0.0,
		elevation: float32(math.Pi / 8),

		minRadius:    5.0,
		maxRadius:    50.0,
		minElevation: 0.05,
		maxElevation: float32(math.Pi/2 - 0.1),

		orbitSpeed:       0.03,
		mouseSensitivity: 0.005,
		zoomSpeed:        1.0,

		panSpeed: 1.0,
	}

	for _, option := range options {
		option(cc)
	}

	cc.radius = common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.elevation = common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
	return cc
}

// updatePosition recomputes the camera position from spherical coordinates.
// Must be called whenever radius, azimuth, elevation, or target changes.
// Caller must hold the mutex.
func (cc *orbitControllerImpl) updatePosition() {
	cosElev := float32(math.Cos(float64(cc.elevation)))
	sinElev := float32(math.Sin(float64(cc.elevation)))
	cosAzim := float32(math.Cos(float64(cc.azimuth)))
	sinAzim := float32(math.Sin(float64(cc.azimuth)))

	cc.position = cc.target.Add(common.Vec3{
		cc.radius * cosElev * sinAzim,
		cc.radius * sinElev,
		cc.radius * cosElev * cosAzim,
	})
}

// localAxes computes the camera's horizontal right and full forward axes consistent with the LookAt matrix.
// If position and target coincide, both are zero.
// Caller must hold the mutex.
func (cc *orbitControllerImpl) localAxes() (right, forward common.Vec3) {
	backward := cc.position.Sub(cc.target)
	if backward.Length() < 1e-8 {
		return
	}
	backward = backward.Normalize()

	// right = cross(worldUp, backward) with worldUp = (0, 1, 0)
	right = common.Vec3{backward[2], 0, -backward[0]}
	if right.Length() < 1e-8 {
		return common.Vec3{}, common.Vec3{}
	}
	return right.Normalize(), backward.Scale(-1)
}

func (cc *orbitControllerImpl) Position() common.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *orbitControllerImpl) Target() common.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *orbitControllerImpl) SetTarget(target common.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = target
	cc.updatePosition()
}

func (cc *orbitControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = common.Clamp(cc.radius-delta*cc.zoomSpeed, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *orbitControllerImpl) Orbit(dAzimuth, dElevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth += dAzimuth * cc.mouseSensitivity
	cc.elevation = common.Clamp(cc.elevation+dElevation*cc.mouseSensitivity, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *orbitControllerImpl) OrbitLeft() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth -= cc.orbitSpeed
	cc.updatePosition()
}

func (cc *orbitControllerImpl) OrbitRight() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth += cc.orbitSpeed
	cc.updatePosition()
}

func (cc *orbitControllerImpl) OrbitUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = common.Clamp(cc.elevation+cc.orbitSpeed, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *orbitControllerImpl) OrbitDown() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = common.Clamp(cc.elevation-cc.orbitSpeed, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *orbitControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *orbitControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = common.Clamp(radius, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *orbitControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *orbitControllerImpl) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = azimuth
	cc.updatePosition()
}

func (cc *orbitControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *orbitControllerImpl) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = common.Clamp(elevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *orbitControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	right, _ := cc.localAxes()
	offset := right.Scale(delta * cc.panSpeed)
	cc.target = cc.target.Add(offset)
	cc.position = cc.position.Add(offset)
}

func (cc *orbitControllerImpl) PanForward(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	_, forward := cc.localAxes()
	offset := forward.Scale(delta * cc.panSpeed)
	cc.target = cc.target.Add(offset)
	cc.position = cc.position.Add(offset)
}
