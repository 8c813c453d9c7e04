package camera

import "github.com/Carmen-Shannon/oxy-tour/common"

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*orbitControllerImpl)

// WithRadius sets the initial orbit radius (distance from target).
//
// Parameters:
//   - radius: distance from the orbit target
//
// Returns:
//   - OrbitControllerOption: functional option to set the radius
func WithRadius(radius float32) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.radius = radius
	}
}

// WithAzimuth sets the initial horizontal angle around the Y axis.
//
// Parameters:
//   - azimuth: horizontal angle in radians (0 = +Z axis)
//
// Returns:
//   - OrbitControllerOption: functional option to set the azimuth
func WithAzimuth(azimuth float32) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.azimuth = azimuth
	}
}

// WithElevation sets the initial vertical angle from the horizontal plane.
//
// Parameters:
//   - elevation: vertical angle in radians (0 = horizontal)
//
// Returns:
//   - OrbitControllerOption: functional option to set the elevation
func WithElevation(elevation float32) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.elevation = elevation
	}
}

// WithTarget sets the look-at/pivot point.
//
// Parameters:
//   - target: world-space pivot point
//
// Returns:
//   - OrbitControllerOption: functional option to set the target position
func WithTarget(target common.Vec3) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.target = target
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - OrbitControllerOption: functional option to set radius bounds
func WithRadiusBounds(min, max float32) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.minRadius = min
		cc.maxRadius = max
	}
}

// WithElevationBounds sets the minimum and maximum elevation angles.
//
// Parameters:
//   - min: minimum vertical angle in radians (prevents looking straight down)
//   - max: maximum vertical angle in radians (prevents flipping over)
//
// Returns:
//   - OrbitControllerOption: functional option to set elevation bounds
func WithElevationBounds(min, max float32) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.minElevation = min
		cc.maxElevation = max
	}
}

// WithOrbitSpeed sets the keyboard orbit speed.
//
// Parameters:
//   - speed: radians per orbit call
//
// Returns:
//   - OrbitControllerOption: functional option to set orbit speed
func WithOrbitSpeed(speed float32) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.orbitSpeed = speed
	}
}

// WithMouseSensitivity sets the mouse drag sensitivity.
//
// Parameters:
//   - sensitivity: multiplier for mouse movement
//
// Returns:
//   - OrbitControllerOption: functional option to set mouse sensitivity
func WithMouseSensitivity(sensitivity float32) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - OrbitControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithPanSpeed sets the planar pan speed multiplier.
//
// Parameters:
//   - speed: multiplier for pan input
//
// Returns:
//   - OrbitControllerOption: functional option to set pan speed
func WithPanSpeed(speed float32) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.panSpeed = speed
	}
}
