package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-tour/common"
)

// firstPersonControllerImpl is the implementation of FirstPersonController.
type firstPersonControllerImpl struct {
	mu *sync.Mutex

	position common.Vec3
	yaw      float32
	pitch    float32

	minPitch float32
	maxPitch float32

	lookSensitivity float32
}

var _ FirstPersonController = &firstPersonControllerImpl{}

// NewFirstPersonController creates a first-person rig standing at the origin and facing -Z.
// The default pitch range is [-π/4, π/4].
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - FirstPersonController: the newly created controller
func NewFirstPersonController(options ...FirstPersonControllerOption) FirstPersonController {
	fp := &firstPersonControllerImpl{
		mu:              &sync.Mutex{},
		minPitch:        -math.Pi / 4,
		maxPitch:        math.Pi / 4,
		lookSensitivity: 1.0,
	}
	for _, option := range options {
		option(fp)
	}
	if fp.minPitch > fp.maxPitch {
		panic("camera: first person controller min pitch exceeds max pitch")
	}
	fp.pitch = common.Clamp(fp.pitch, fp.minPitch, fp.maxPitch)
	return fp
}

// direction returns the full view direction including pitch.
// Caller must hold the mutex.
func (fp *firstPersonControllerImpl) direction() common.Vec3 {
	sy, cy := math.Sincos(float64(fp.yaw))
	sp, cp := math.Sincos(float64(fp.pitch))
	return common.Vec3{
		float32(-sy * cp),
		float32(sp),
		float32(-cy * cp),
	}
}

func (fp *firstPersonControllerImpl) Position() common.Vec3 {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.position
}

func (fp *firstPersonControllerImpl) Target() common.Vec3 {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.position.Add(fp.direction())
}

func (fp *firstPersonControllerImpl) Pose() Pose {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return Pose{Position: fp.position, Yaw: fp.yaw, Pitch: fp.pitch}
}

func (fp *firstPersonControllerImpl) SetPose(pose Pose) {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	fp.position = pose.Position
	fp.yaw = pose.Yaw
	fp.pitch = common.Clamp(pose.Pitch, fp.minPitch, fp.maxPitch)
}

func (fp *firstPersonControllerImpl) SetPosition(position common.Vec3) {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	fp.position = position
}

func (fp *firstPersonControllerImpl) Yaw() float32 {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.yaw
}

func (fp *firstPersonControllerImpl) Pitch() float32 {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.pitch
}

func (fp *firstPersonControllerImpl) Look(dx, dy float32) {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	fp.yaw -= dx * fp.lookSensitivity
	fp.pitch = common.Clamp(fp.pitch-dy*fp.lookSensitivity, fp.minPitch, fp.maxPitch)
}

func (fp *firstPersonControllerImpl) LookAt(target common.Vec3) {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	d := target.Sub(fp.position)
	l := d.Length()
	if l < 1e-8 {
		return
	}
	fp.yaw = float32(math.Atan2(float64(-d[0]), float64(-d[2])))
	fp.pitch = common.Clamp(float32(math.Asin(float64(d[1]/l))), fp.minPitch, fp.maxPitch)
}

func (fp *firstPersonControllerImpl) Forward() common.Vec3 {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	s, c := math.Sincos(float64(fp.yaw))
	return common.Vec3{float32(-s), 0, float32(-c)}
}

func (fp *firstPersonControllerImpl) Right() common.Vec3 {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	s, c := math.Sincos(float64(fp.yaw))
	return common.Vec3{float32(c), 0, float32(-s)}
}

func (fp *firstPersonControllerImpl) PitchBounds() (min, max float32) {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.minPitch, fp.maxPitch
}
