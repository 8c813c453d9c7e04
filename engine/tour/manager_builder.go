package tour

import (
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"go.uber.org/zap"
)

// ManagerBuilderOption is a functional option applied to a manager during construction via NewManager.
type ManagerBuilderOption func(*manager)

// WithLogger sets the logger used by the manager.
//
// Parameters:
//   - logger: the zap logger, nil keeps the no-op default
//
// Returns:
//   - ManagerBuilderOption: a function that sets the logger
func WithLogger(logger *zap.Logger) ManagerBuilderOption {
	return func(m *manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithTable replaces the built-in location table. The table must contain its fallback location.
//
// Parameters:
//   - table: the location table
//
// Returns:
//   - ManagerBuilderOption: a function that sets the table
func WithTable(table *LocationTable) ManagerBuilderOption {
	return func(m *manager) {
		m.table = table
	}
}

// WithAction registers the host callback run by action hotspots naming key.
//
// Parameters:
//   - key: the action key used in the location table
//   - fn: the callback
//
// Returns:
//   - ManagerBuilderOption: a function that registers the action
func WithAction(key string, fn func()) ManagerBuilderOption {
	return func(m *manager) {
		if fn != nil {
			m.actions[key] = fn
		}
	}
}

// WithRig supplies the first-person rig the tour drives.
//
// Parameters:
//   - rig: the camera rig
//
// Returns:
//   - ManagerBuilderOption: a function that sets the rig
func WithRig(rig camera.FirstPersonController) ManagerBuilderOption {
	return func(m *manager) {
		m.rig = rig
	}
}

// WithStartLocation sets the location the first Start enters.
//
// Parameters:
//   - id: the location id, unknown ids fall back on entry
//
// Returns:
//   - ManagerBuilderOption: a function that sets the start location
func WithStartLocation(id string) ManagerBuilderOption {
	return func(m *manager) {
		m.session.CurrentLocationID = id
	}
}

// WithEyeHeight sets the fixed camera height.
func WithEyeHeight(height float32) ManagerBuilderOption {
	return func(m *manager) {
		m.eyeHeight = height
	}
}

// WithMovementSpeed sets the walking speed in units per second.
func WithMovementSpeed(speed float32) ManagerBuilderOption {
	return func(m *manager) {
		if speed >= 0 {
			m.movementSpeed = speed
		}
	}
}

// WithSprintMultiplier scales the walking speed while ShiftLeft is held.
func WithSprintMultiplier(multiplier float32) ManagerBuilderOption {
	return func(m *manager) {
		if multiplier > 0 {
			m.sprintMultiplier = multiplier
		}
	}
}

// WithLookSpeed sets how fast the view turns toward an off-centre pointer, in radians per second at
// the surface edge. Zero disables pointer look.
func WithLookSpeed(speed float32) ManagerBuilderOption {
	return func(m *manager) {
		m.lookSpeed = speed
	}
}

// WithFadeTiming sets the teleport fade and hold durations in seconds.
//
// Parameters:
//   - fade: duration of each fade
//   - hold: time the screen stays opaque after the location swap
//
// Returns:
//   - ManagerBuilderOption: a function that sets the timing
func WithFadeTiming(fade, hold float32) ManagerBuilderOption {
	return func(m *manager) {
		if fade >= 0 {
			m.fadeDuration = fade
		}
		if hold >= 0 {
			m.holdDuration = hold
		}
	}
}

// WithOnActiveChange registers a callback run after every Start and End.
//
// Parameters:
//   - fn: receives true after Start and false after End
//
// Returns:
//   - ManagerBuilderOption: a function that registers the callback
func WithOnActiveChange(fn func(active bool)) ManagerBuilderOption {
	return func(m *manager) {
		if fn != nil {
			m.onActiveChange = append(m.onActiveChange, fn)
		}
	}
}
