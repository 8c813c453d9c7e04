package tour

import (
	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/google/uuid"
)

// CameraSnapshot is the render camera state captured when a tour starts.
type CameraSnapshot struct {
	Controller camera.CameraController
	Position   common.Vec3
	Target     common.Vec3
	Fov        float32

	// View is the view matrix at capture time. It is restored when Controller is nil.
	View [16]float32

	// Pose is set when the saved controller is itself a first-person rig.
	Pose *camera.Pose
}

// Session is the state of one tour run.
type Session struct {
	Active            bool
	CurrentLocationID string
	SavedCamera       *CameraSnapshot
	SavedVisibility   map[uuid.UUID]bool

	// generation advances on every Start and End; delayed callbacks compare it to detect staleness.
	generation uint64
}

// Generation returns the run counter of the session.
func (s Session) Generation() uint64 {
	return s.generation
}

func captureCamera(cam camera.Camera) *CameraSnapshot {
	snap := &CameraSnapshot{
		Controller: cam.Controller(),
		Fov:        cam.Fov(),
		View:       cam.ViewMatrix(),
	}
	if snap.Controller != nil {
		snap.Position = snap.Controller.Position()
		snap.Target = snap.Controller.Target()
	}
	if fp, ok := snap.Controller.(camera.FirstPersonController); ok {
		pose := fp.Pose()
		snap.Pose = &pose
	}
	return snap
}

func (s *CameraSnapshot) restore(cam camera.Camera) {
	if fp, ok := s.Controller.(camera.FirstPersonController); ok && s.Pose != nil {
		fp.SetPose(*s.Pose)
	}
	cam.SetFov(s.Fov)
	cam.SetController(s.Controller)
	if s.Controller == nil {
		cam.SetViewMatrix(s.View)
	}
}
