package camera

import "github.com/Carmen-Shannon/oxy-tour/common"

// CameraController defines the base interface for camera control systems.
// Controllers own positional state (position, target). Camera reads from controller
// and computes view/projection matrices.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - common.Vec3: world-space camera position
	Position() common.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - common.Vec3: world-space target position
	Target() common.Vec3
}

// OrbitController provides third-person orbit controls using spherical coordinates
// (radius, azimuth, elevation) relative to the target/pivot point, and planar panning
// along the camera's local axes. Panning shifts both position and target by the same
// offset, preserving the orbit relationship.
type OrbitController interface {
	CameraController

	// SetTarget sets the look-at/pivot point and recomputes position from spherical coordinates.
	//
	// Parameters:
	//   - target: world-space coordinates
	SetTarget(target common.Vec3)

	// Zoom adjusts the camera's distance by modifying orbit radius.
	// Positive delta zooms in (closer to target).
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// Orbit rotates the camera around the target by the given deltas, scaled by MouseSensitivity.
	// Elevation is clamped to its bounds.
	//
	// Parameters:
	//   - dAzimuth: horizontal delta
	//   - dElevation: vertical delta
	Orbit(dAzimuth, dElevation float32)

	// OrbitLeft rotates the camera left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step, clamped to max elevation.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step, clamped to min elevation.
	OrbitDown()

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// SetRadius sets the orbit radius directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// Azimuth returns the current horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// SetAzimuth sets the horizontal angle directly and recomputes position.
	//
	// Parameters:
	//   - azimuth: new horizontal angle in radians
	SetAzimuth(azimuth float32)

	// Elevation returns the current vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// SetElevation sets the vertical angle directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - elevation: new vertical angle in radians
	SetElevation(elevation float32)

	// PanRight translates the camera along its local right axis.
	// Positive delta moves right, negative moves left.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanRight(delta float32)

	// PanForward translates the camera along its local forward axis (dolly).
	// Positive delta moves toward the target, negative moves away.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanForward(delta float32)
}

// Pose is a first-person camera pose: an eye position plus heading angles.
type Pose struct {
	Position common.Vec3
	Yaw      float32
	Pitch    float32
}

// FirstPersonController is a yaw/pitch camera rig used for walking through interiors.
// Yaw 0 looks down -Z and positive yaw turns left. Pitch is clamped to the configured bounds.
type FirstPersonController interface {
	CameraController

	// Pose returns the current position and heading.
	//
	// Returns:
	//   - Pose: the current pose
	Pose() Pose

	// SetPose replaces the current pose. Pitch is clamped to the configured bounds.
	//
	// Parameters:
	//   - pose: the new pose
	SetPose(pose Pose)

	// SetPosition moves the eye without changing heading.
	//
	// Parameters:
	//   - position: world-space eye position
	SetPosition(position common.Vec3)

	// Yaw returns the heading around the Y axis in radians.
	//
	// Returns:
	//   - float32: yaw in radians
	Yaw() float32

	// Pitch returns the vertical look angle in radians.
	//
	// Returns:
	//   - float32: pitch in radians
	Pitch() float32

	// Look rotates the view by raw pointer deltas scaled by the look sensitivity.
	// A positive dx turns right and a positive dy looks down, matching screen axes.
	//
	// Parameters:
	//   - dx: horizontal pointer delta
	//   - dy: vertical pointer delta
	Look(dx, dy float32)

	// LookAt derives yaw and pitch so the rig faces target from its current position.
	//
	// Parameters:
	//   - target: world-space point to face
	LookAt(target common.Vec3)

	// Forward returns the horizontal unit vector the rig is facing.
	//
	// Returns:
	//   - common.Vec3: forward direction on the XZ plane
	Forward() common.Vec3

	// Right returns the horizontal unit vector to the rig's right.
	//
	// Returns:
	//   - common.Vec3: right direction on the XZ plane
	Right() common.Vec3

	// PitchBounds returns the configured pitch range.
	//
	// Returns:
	//   - min, max: pitch bounds in radians
	PitchBounds() (min, max float32)
}
