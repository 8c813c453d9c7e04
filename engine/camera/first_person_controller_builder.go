package camera

import "github.com/Carmen-Shannon/oxy-tour/common"

// FirstPersonControllerOption is a functional option for configuring a FirstPersonController.
type FirstPersonControllerOption func(*firstPersonControllerImpl)

// WithPose sets the initial pose of the rig.
//
// Parameters:
//   - pose: starting position and heading
//
// Returns:
//   - FirstPersonControllerOption: functional option to set the pose
func WithPose(pose Pose) FirstPersonControllerOption {
	return func(fp *firstPersonControllerImpl) {
		fp.position = pose.Position
		fp.yaw = pose.Yaw
		fp.pitch = pose.Pitch
	}
}

// WithEyePosition sets the initial eye position of the rig.
//
// Parameters:
//   - position: world-space eye position
//
// Returns:
//   - FirstPersonControllerOption: functional option to set the position
func WithEyePosition(position common.Vec3) FirstPersonControllerOption {
	return func(fp *firstPersonControllerImpl) {
		fp.position = position
	}
}

// WithPitchBounds sets the minimum and maximum pitch angles.
//
// Parameters:
//   - min: lowest pitch in radians (looking down is negative)
//   - max: highest pitch in radians
//
// Returns:
//   - FirstPersonControllerOption: functional option to set pitch bounds
func WithPitchBounds(min, max float32) FirstPersonControllerOption {
	return func(fp *firstPersonControllerImpl) {
		fp.minPitch = min
		fp.maxPitch = max
	}
}

// WithLookSensitivity sets the multiplier applied to Look deltas.
//
// Parameters:
//   - sensitivity: radians per unit of look input
//
// Returns:
//   - FirstPersonControllerOption: functional option to set look sensitivity
func WithLookSensitivity(sensitivity float32) FirstPersonControllerOption {
	return func(fp *firstPersonControllerImpl) {
		fp.lookSensitivity = sensitivity
	}
}
