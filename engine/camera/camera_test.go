package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/stretchr/testify/require"
)

func TestCamera_Ray(t *testing.T) {
	rig := NewFirstPersonController(WithEyePosition(common.Vec3{0, 1.7, 0}))
	cam := NewCamera(
		WithFov(75*math.Pi/180),
		WithAspect(16.0/9.0),
		WithNear(0.1),
		WithFar(1000),
		WithController(rig),
	)

	t.Run("Center Looks Forward", func(t *testing.T) {
		ray := cam.Ray(0, 0)
		require.InDelta(t, 0, ray.Direction[0], 1e-3)
		require.InDelta(t, 0, ray.Direction[1], 1e-3)
		require.InDelta(t, -1, ray.Direction[2], 1e-3)
		require.InDelta(t, 1.7, ray.Origin[1], 1e-3)
	})

	t.Run("Hits Sphere Ahead", func(t *testing.T) {
		_, ok := common.Sphere{Center: common.Vec3{0, 1.7, -5}, Radius: 0.2}.IntersectRay(cam.Ray(0, 0))
		require.True(t, ok)
	})

	t.Run("Right Edge Points Right", func(t *testing.T) {
		ray := cam.Ray(1, 0)
		require.Greater(t, ray.Direction[0], float32(0.5))
	})

	t.Run("Follows Controller After Update", func(t *testing.T) {
		rig.SetPose(Pose{Position: common.Vec3{0, 1.7, 0}, Yaw: math.Pi / 2})
		cam.Update()
		ray := cam.Ray(0, 0)
		require.InDelta(t, -1, ray.Direction[0], 1e-3)
	})
}

func TestCamera_NoController(t *testing.T) {
	cam := NewCamera()
	require.Nil(t, cam.Controller())
	cam.Update()

	var identity [16]float32
	common.Identity(identity[:])
	require.Equal(t, identity, cam.ViewMatrix())
}

func TestCamera_SwapController(t *testing.T) {
	orbit := NewOrbitController(WithTarget(common.Vec3{0, 2, 0}))
	cam := NewCamera(WithController(orbit))
	before := cam.ViewMatrix()

	cam.SetController(NewFirstPersonController(WithEyePosition(common.Vec3{0, 1.7, 4})))
	require.NotEqual(t, before, cam.ViewMatrix())

	cam.SetController(orbit)
	require.Equal(t, before, cam.ViewMatrix())
}

func TestCamera_SetViewMatrix(t *testing.T) {
	t.Run("Kept Without Controller", func(t *testing.T) {
		orbit := NewOrbitController(WithTarget(common.Vec3{0, 2, 0}))
		cam := NewCamera(WithController(orbit))
		view := cam.ViewMatrix()

		cam.SetController(nil)
		var identity [16]float32
		common.Identity(identity[:])
		cam.SetViewMatrix(identity)
		require.Equal(t, identity, cam.ViewMatrix())

		cam.SetViewMatrix(view)
		cam.SetFov(1)
		cam.Update()
		require.Equal(t, view, cam.ViewMatrix())
	})

	t.Run("Ignored With Controller", func(t *testing.T) {
		cam := NewCamera(WithController(NewOrbitController()))
		before := cam.ViewMatrix()
		var zero [16]float32
		cam.SetViewMatrix(zero)
		require.Equal(t, before, cam.ViewMatrix())
	})
}
