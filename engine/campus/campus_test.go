package campus

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
	"github.com/Carmen-Shannon/oxy-tour/engine/input"
	"github.com/stretchr/testify/require"
)

func countNamed(root game_object.GameObject, name string) int {
	n := 0
	root.Traverse(func(obj game_object.GameObject) bool {
		if obj.Name() == name {
			n++
		}
		return true
	})
	return n
}

func TestBuild(t *testing.T) {
	root := Build()
	require.Equal(t, NameFaculty, root.Name())
	require.Equal(t, game_object.KindGroup, root.Kind())

	for _, name := range []string{NameBuilding, NameLeftDoor, NameRightDoor, NameFacultySign} {
		require.Equal(t, 1, countNamed(root, name), name)
	}
	require.Equal(t, 20, countNamed(root, NameWindow))
	require.Equal(t, 14, countNamed(root, "tree"))
	require.Equal(t, 4, countNamed(root, "bench"))
	require.Equal(t, 7, countNamed(root, "lampPost"))
	require.Equal(t, 2, countNamed(root, "secondaryBuilding"))

	left := root.FindByName(NameLeftDoor)
	world := left.WorldPosition()
	require.InDelta(t, -0.95, world[0], 1e-5)
	require.InDelta(t, 5.4, world[2], 1e-5)
}

type rig struct {
	fp  camera.FirstPersonController
	cam camera.Camera
}

func newRig() rig {
	fp := camera.NewFirstPersonController(camera.WithEyePosition(common.Vec3{0, 1.8, 15}))
	return rig{fp: fp, cam: camera.NewCamera(camera.WithController(fp))}
}

// aim turns the camera at target and moves the pointer to the centre of the view.
func (r rig) aim(in Interactions, target common.Vec3) {
	r.fp.LookAt(target)
	r.cam.Update()
	in.PointerMove(0, 0)
}

func TestInteractions_Register(t *testing.T) {
	root := Build()
	in := NewInteractions(newRig().cam)
	require.Equal(t, 24, in.Register(root))
	require.Equal(t, 24, in.Register(root))
	require.Panics(t, func() { NewInteractions(nil) })
}

func TestInteractions_Hover(t *testing.T) {
	t.Run("Highlights The Hovered Node Only", func(t *testing.T) {
		root := Build()
		r := newRig()
		in := NewInteractions(r.cam)
		in.Register(root)
		left, right := root.FindByName(NameLeftDoor), root.FindByName(NameRightDoor)

		r.aim(in, common.Vec3{-0.95, 1.8, 5.4})
		hovered, ok := in.Hovered()
		require.True(t, ok)
		require.Equal(t, left.ID(), hovered.ID())
		require.InDelta(t, highlightEmissive, left.Emissive(), 1e-6)
		require.Zero(t, right.Emissive())

		r.aim(in, common.Vec3{0.95, 1.8, 5.4})
		require.Zero(t, left.Emissive())
		require.InDelta(t, highlightEmissive, right.Emissive(), 1e-6)

		r.aim(in, common.Vec3{0, 100, -100})
		_, ok = in.Hovered()
		require.False(t, ok)
		require.Zero(t, right.Emissive())
	})

	t.Run("Nothing Happens While The Tour Runs", func(t *testing.T) {
		root := Build()
		r := newRig()
		in := NewInteractions(r.cam)
		in.Register(root)
		left := root.FindByName(NameLeftDoor)

		r.aim(in, common.Vec3{-0.95, 1.8, 5.4})
		in.SetTourActive(true)
		require.True(t, in.TourActive())
		require.Zero(t, left.Emissive())

		r.aim(in, common.Vec3{-0.95, 1.8, 5.4})
		require.Zero(t, left.Emissive())
		require.False(t, in.PointerClick())
		require.False(t, in.HandleEvent(input.EventPointerClick{}))
		in.Update(2)
		require.Equal(t, float32(-0.95), left.Position()[0])

		in.SetTourActive(false)
		require.True(t, in.PointerClick())
	})
}

func TestInteractions_Click(t *testing.T) {
	t.Run("Doors Slide Open And Closed", func(t *testing.T) {
		root := Build()
		r := newRig()
		in := NewInteractions(r.cam)
		in.Register(root)
		left, right := root.FindByName(NameLeftDoor), root.FindByName(NameRightDoor)

		r.aim(in, common.Vec3{-0.95, 1.8, 5.4})
		require.True(t, in.PointerClick())
		require.True(t, in.IsOpen(left.ID()))
		in.Update(0.5)
		x := left.Position()[0]
		require.Less(t, x, float32(-0.95))
		require.Greater(t, x, float32(-1.85))
		in.Update(0.5)
		require.InDelta(t, -1.85, left.Position()[0], 1e-5)
		require.Equal(t, float32(1.8), left.Position()[1])

		r.aim(in, common.Vec3{0.95, 1.8, 5.4})
		require.True(t, in.HandleEvent(input.EventPointerClick{}))
		in.Update(1)
		require.InDelta(t, 1.85, right.Position()[0], 1e-5)

		// the collider follows the door
		r.aim(in, common.Vec3{-1.85, 1.8, 5.4})
		require.True(t, in.PointerClick())
		require.False(t, in.IsOpen(left.ID()))
		in.Update(1)
		require.InDelta(t, -0.95, left.Position()[0], 1e-5)
	})

	t.Run("Windows Toggle Their Light", func(t *testing.T) {
		root := Build()
		r := newRig()
		in := NewInteractions(r.cam)
		in.Register(root)

		target := common.Vec3{-6, 3.5, 5.01}
		r.aim(in, target)
		hovered, ok := in.Hovered()
		require.True(t, ok)
		require.Equal(t, NameWindow, hovered.Name())
		original := hovered.Color()

		require.True(t, in.PointerClick())
		require.True(t, in.IsLit(hovered.ID()))
		in.Update(0.5)
		require.InDelta(t, 1, hovered.Color()[0], 1e-5)
		require.InDelta(t, 0.9, hovered.Color()[1], 1e-5)
		require.InDelta(t, 0.6, hovered.Color()[2], 1e-5)
		require.InDelta(t, litEmissive, hovered.Emissive(), 1e-5)

		// a lit window keeps its glow when the pointer leaves
		r.aim(in, common.Vec3{0, 100, -100})
		require.InDelta(t, litEmissive, hovered.Emissive(), 1e-5)

		r.aim(in, target)
		require.True(t, in.PointerClick())
		in.Update(0.5)
		require.False(t, in.IsLit(hovered.ID()))
		require.InDelta(t, original[0], hovered.Color()[0], 1e-5)
		require.InDelta(t, original[2], hovered.Color()[2], 1e-5)
		require.InDelta(t, 0, hovered.Emissive(), 1e-5)
	})

	t.Run("Sign And Building Run Callbacks", func(t *testing.T) {
		signs, buildings := 0, 0
		root := Build()
		r := newRig()
		in := NewInteractions(r.cam,
			WithOnFacultySignClick(func() { signs++ }),
			WithOnBuildingClick(func() { buildings++ }),
		)
		in.Register(root)

		r.aim(in, common.Vec3{0, 7.5, 5.1})
		require.True(t, in.PointerClick())
		r.aim(in, common.Vec3{3, 1, 5})
		require.True(t, in.PointerClick())
		require.Equal(t, 1, signs)
		require.Equal(t, 1, buildings)
	})

	t.Run("Miss Does Nothing", func(t *testing.T) {
		r := newRig()
		in := NewInteractions(r.cam)
		in.Register(Build())
		r.aim(in, common.Vec3{0, 100, -100})
		require.False(t, in.PointerClick())
	})
}
