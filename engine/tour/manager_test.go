package tour

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/content"
	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
	"github.com/Carmen-Shannon/oxy-tour/engine/hud"
	"github.com/Carmen-Shannon/oxy-tour/engine/input"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer"
	"github.com/Carmen-Shannon/oxy-tour/engine/scene"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakePresenter struct {
	visible bool
	heading float32
	name    string
	body    string
	hint    string
	hints   []string
	popups  []hud.Popup
	button  string
	buttons []string
	overlay float32
}

func (p *fakePresenter) SetVisible(visible bool)    { p.visible = visible }
func (p *fakePresenter) SetHeading(degrees float32) { p.heading = degrees }
func (p *fakePresenter) SetLocationText(name, body string) {
	p.name, p.body = name, body
}
func (p *fakePresenter) SetHint(text string) {
	p.hint = text
	p.hints = append(p.hints, text)
}
func (p *fakePresenter) ShowPopup(title, body string) {
	p.popups = append(p.popups, hud.Popup{Title: title, Body: body})
}
func (p *fakePresenter) SetActiveLocationButton(id string) {
	p.button = id
	p.buttons = append(p.buttons, id)
}
func (p *fakePresenter) SetOverlayOpacity(alpha float32) { p.overlay = alpha }

type fixture struct {
	scene     scene.Scene
	orbit     camera.OrbitController
	presenter *fakePresenter
	meshes    []game_object.GameObject
	manager   Manager
}

// newFixture builds a main scene with two visible meshes, one hidden mesh and a group.
func newFixture(t *testing.T, options ...ManagerBuilderOption) *fixture {
	t.Helper()
	r := renderer.NewRenderer(renderer.BackendTypeHeadless, nil)
	orbit := camera.NewOrbitController(camera.WithTarget(common.Vec3{0, 4, 0}))
	cam := camera.NewCamera(camera.WithController(orbit))
	sc := scene.NewScene("main", cam, r)

	building := game_object.NewMesh("building", game_object.PrimitiveBox, common.Vec3{18, 8, 10})
	door := game_object.NewMesh("door", game_object.PrimitiveBox, common.Vec3{1.8, 3.6, 0.1})
	secret := game_object.NewMesh("secret", game_object.PrimitiveSphere, common.Vec3{1, 1, 1},
		game_object.WithVisible(false),
	)
	group := game_object.NewGroup("campus", game_object.WithChildren(building, door))
	sc.Add(group)
	sc.Add(secret)

	p := &fakePresenter{}
	m := NewManager(sc, content.NewDefaultCatalog(), p, options...)
	return &fixture{
		scene:     sc,
		orbit:     orbit,
		presenter: p,
		meshes:    []game_object.GameObject{building, door, secret},
		manager:   m,
	}
}

func hotspotIDs(hs []*Hotspot) []uuid.UUID {
	ids := make([]uuid.UUID, len(hs))
	for i, h := range hs {
		ids[i] = h.ID
	}
	return ids
}

// aimAt turns the rig toward target with the pointer centred and refreshes hover.
func aimAt(f *fixture, target common.Vec3) {
	f.manager.PointerMove(0, 0)
	f.manager.Rig().LookAt(target)
	f.manager.Update(0)
}

func TestNewManager_Panics(t *testing.T) {
	f := newFixture(t)
	require.Panics(t, func() { NewManager(nil, content.NewCatalog(), f.presenter) })
	require.Panics(t, func() { NewManager(f.scene, nil, f.presenter) })
	require.Panics(t, func() { NewManager(f.scene, content.NewCatalog(), nil) })
	require.Panics(t, func() {
		NewManager(f.scene, content.NewCatalog(), f.presenter, WithTable(&LocationTable{Fallback: "x"}))
	})
}

func TestManager_StartEnd(t *testing.T) {
	t.Run("Restores Camera And Visibility", func(t *testing.T) {
		f := newFixture(t)
		cam := f.scene.Camera()
		beforeCtrl := cam.Controller()
		beforePos, beforeTarget, beforeFov := beforeCtrl.Position(), beforeCtrl.Target(), cam.Fov()
		roots := f.scene.Count()

		f.manager.Start()
		require.True(t, f.manager.Active())
		require.True(t, f.presenter.visible)
		require.Equal(t, content.LocationMainBuilding, f.manager.CurrentLocation())
		require.Equal(t, f.manager.Rig(), cam.Controller())
		for _, mesh := range f.meshes {
			require.False(t, mesh.Visible(), mesh.Name())
		}
		require.Len(t, f.manager.Session().SavedVisibility, 3)

		f.manager.KeyDown(input.KeyW)
		for i := 0; i < 10; i++ {
			f.manager.Update(0.1)
		}
		f.manager.End()

		require.False(t, f.manager.Active())
		require.False(t, f.presenter.visible)
		require.Equal(t, beforeCtrl, cam.Controller())
		require.Equal(t, beforePos, cam.Controller().Position())
		require.Equal(t, beforeTarget, cam.Controller().Target())
		require.Equal(t, beforeFov, cam.Fov())
		require.True(t, f.meshes[0].Visible())
		require.True(t, f.meshes[1].Visible())
		require.False(t, f.meshes[2].Visible())
		require.Equal(t, roots, f.scene.Count())
		require.Empty(t, f.manager.Hotspots())
		require.Nil(t, f.manager.Session().SavedCamera)
	})

	t.Run("Restores A Camera Without Controller", func(t *testing.T) {
		f := newFixture(t)
		cam := f.scene.Camera()
		cam.SetController(nil)
		before := cam.ViewMatrix()

		f.manager.Start()
		f.manager.KeyDown(input.KeyW)
		f.manager.Update(0.5)
		require.NotEqual(t, before, cam.ViewMatrix())
		f.manager.End()

		require.Nil(t, cam.Controller())
		require.Equal(t, before, cam.ViewMatrix())
	})

	t.Run("Start Twice Is A No-op", func(t *testing.T) {
		f := newFixture(t)
		f.manager.Start()
		gen := f.manager.Session().Generation()
		count := f.scene.Count()
		f.manager.Start()
		require.Equal(t, gen, f.manager.Session().Generation())
		require.Equal(t, count, f.scene.Count())
	})

	t.Run("End While Inactive Is A No-op", func(t *testing.T) {
		f := newFixture(t)
		require.NotPanics(t, f.manager.End)
		require.False(t, f.manager.Active())
		require.Zero(t, f.manager.Session().Generation())
	})

	t.Run("Removed Node Is Skipped On Restore", func(t *testing.T) {
		f := newFixture(t)
		f.manager.Start()
		require.True(t, f.scene.Remove(f.meshes[1].ID()))
		require.NotPanics(t, f.manager.End)
		require.True(t, f.meshes[0].Visible())
	})

	t.Run("Restart Resumes The Last Location", func(t *testing.T) {
		f := newFixture(t)
		f.manager.Start()
		f.manager.SetLocation(content.LocationHall)
		f.manager.End()
		require.Equal(t, content.LocationHall, f.manager.CurrentLocation())

		f.manager.Start()
		require.Equal(t, content.LocationHall, f.manager.CurrentLocation())
		require.Equal(t, common.Vec3{0, 1.7, 9}, f.manager.Rig().Position())
	})

	t.Run("Active Change Callbacks Fire", func(t *testing.T) {
		var seen []bool
		f := newFixture(t, WithOnActiveChange(func(active bool) { seen = append(seen, active) }))
		f.manager.Start()
		f.manager.Start()
		f.manager.End()
		require.Equal(t, []bool{true, false}, seen)
	})
}

func TestManager_SetLocation(t *testing.T) {
	t.Run("Unknown Location Falls Back", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		f := newFixture(t, WithLogger(zap.New(core)))
		f.manager.Start()
		f.manager.SetLocation(content.LocationLibrary)

		f.manager.SetLocation("rooftop")
		require.Equal(t, content.LocationMainBuilding, f.manager.CurrentLocation())
		require.Equal(t, 1, logs.FilterMessage("unknown location, using fallback").Len())

		fallback, _ := f.manager.Table().Lookup(content.LocationMainBuilding)
		hs := f.manager.Hotspots()
		require.Len(t, hs, len(fallback.Hotspots))
		for i, spec := range fallback.Hotspots {
			require.Equal(t, spec.Position, hs[i].Position)
		}
		require.Equal(t, "Gedung Utama", f.presenter.name)
	})

	t.Run("Previous Hotspots Are Unreachable", func(t *testing.T) {
		f := newFixture(t)
		f.manager.Start()
		before := f.manager.Hotspots()
		require.Len(t, before, 4)

		f.manager.SetLocation(content.LocationAILab)
		after := f.manager.Hotspots()
		require.Len(t, after, 3)

		reg := f.manager.(*manager).registry
		require.ElementsMatch(t, hotspotIDs(after), reg.IDs())
		for _, h := range before {
			_, ok := reg.Get(h.ID)
			require.False(t, ok)
			require.Nil(t, f.scene.Get(h.ID))
		}

		// looking at where the old info board hotspot was finds nothing from the old set
		aimAt(f, common.Vec3{0, 1.5, -7})
		if hovered, ok := f.manager.Hovered(); ok {
			require.Contains(t, hotspotIDs(after), hovered.ID)
		}
	})

	t.Run("Exactly One Location Model Is Attached", func(t *testing.T) {
		f := newFixture(t)
		roots := f.scene.Count()
		f.manager.Start()
		f.manager.SetLocation(content.LocationAILab)
		f.manager.SetLocation(content.LocationLibrary)

		models := 0
		for _, r := range f.scene.Roots() {
			for _, id := range content.DefaultLocationIDs {
				if r.Name() == id {
					models++
				}
			}
		}
		require.Equal(t, 1, models)
		require.Equal(t, roots+1+len(f.manager.Hotspots()), f.scene.Count())
	})

	t.Run("Resets Camera And HUD", func(t *testing.T) {
		f := newFixture(t)
		f.manager.Start()
		f.manager.Rig().Look(1, 0)
		f.manager.SetLocation(content.LocationCreativeSpace)

		require.Equal(t, common.Vec3{0, 1.7, 5}, f.manager.Rig().Position())
		require.InDelta(t, 0, f.manager.Rig().Yaw(), 1e-5)
		require.Equal(t, "Ruang Kreatif", f.presenter.name)
		require.Contains(t, f.presenter.body, "Papan tulis digital")
		require.Equal(t, content.LocationCreativeSpace, f.presenter.button)
	})

	t.Run("Ignored While Inactive", func(t *testing.T) {
		f := newFixture(t)
		f.manager.SetLocation(content.LocationHall)
		require.Equal(t, content.LocationMainBuilding, f.manager.CurrentLocation())
		require.Empty(t, f.manager.Hotspots())
	})

	t.Run("Unknown Action Key Resolves To A No-op", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		f := newFixture(t, WithLogger(zap.New(core)))
		f.manager.Start()
		require.Equal(t, 1, logs.FilterMessage("unknown hotspot action, hotspot does nothing").Len())

		// the reception desk sits behind the start pose
		aimAt(f, common.Vec3{0, 1, 5})
		hovered, ok := f.manager.Hovered()
		require.True(t, ok)
		_, isAction := hovered.Kind.(Action)
		require.True(t, isAction)
		require.NotPanics(t, func() { require.True(t, f.manager.ActivateHovered()) })
	})
}

func TestManager_Update(t *testing.T) {
	t.Run("Walks Forward Until Clamped", func(t *testing.T) {
		f := newFixture(t)
		f.manager.Start()
		f.manager.KeyDown(input.KeyW)

		prev := f.manager.Rig().Position()[2]
		clamped := false
		for i := 0; i < 40; i++ {
			f.manager.Update(0.1)
			pos := f.manager.Rig().Position()
			require.Equal(t, float32(1.7), pos[1])
			require.InDelta(t, 0, pos[0], 1e-4)
			if clamped {
				require.Equal(t, prev, pos[2])
			} else {
				require.LessOrEqual(t, pos[2], prev)
			}
			if pos[2] == -7 {
				clamped = true
			}
			prev = pos[2]
		}
		require.True(t, clamped)
	})

	t.Run("Stays Within Bounds", func(t *testing.T) {
		f := newFixture(t)
		f.manager.Start()
		f.manager.SetLocation(content.LocationAILab)
		loc := f.manager.Location()

		steps := [][]input.Key{
			{input.KeyD, input.KeyS, input.KeyShiftLeft},
			{input.KeyArrowLeft, input.KeyArrowUp},
			{input.KeyA},
		}
		for _, keys := range steps {
			for _, k := range keys {
				f.manager.KeyDown(k)
			}
			for i := 0; i < 50; i++ {
				f.manager.Update(0.1)
				pos := f.manager.Rig().Position()
				require.True(t, loc.Bounds.Contains(pos), pos)
				require.Equal(t, float32(1.7), pos[1])
			}
			for _, k := range keys {
				f.manager.KeyUp(k)
			}
		}
		require.Equal(t, common.Vec3{-7, 1.7, -4.5}, f.manager.Rig().Position())
	})

	t.Run("Diagonal Movement Is Normalized", func(t *testing.T) {
		f := newFixture(t)
		f.manager.Start()
		start := f.manager.Rig().Position()
		f.manager.KeyDown(input.KeyW)
		f.manager.KeyDown(input.KeyD)
		f.manager.Update(0.1)
		moved := f.manager.Rig().Position().Sub(start)
		require.InDelta(t, 0.5, moved.Length(), 1e-4)
	})

	t.Run("Keys Are Ignored While Inactive", func(t *testing.T) {
		f := newFixture(t)
		f.manager.KeyDown(input.KeyW)
		f.manager.Start()
		start := f.manager.Rig().Position()
		f.manager.Update(0.1)
		require.Equal(t, start, f.manager.Rig().Position())
	})

	t.Run("Heading Follows Yaw", func(t *testing.T) {
		f := newFixture(t)
		f.manager.Start()
		f.manager.Rig().SetPose(camera.Pose{Position: common.Vec3{0, 1.7, 0}, Yaw: math.Pi / 2})
		f.manager.Update(0)
		require.InDelta(t, 270, f.presenter.heading, 1e-3)
	})

	t.Run("Off Centre Pointer Turns The View", func(t *testing.T) {
		f := newFixture(t)
		f.manager.Start()
		f.manager.PointerMove(1, 0)
		f.manager.Update(0.5)
		require.InDelta(t, -0.6, f.manager.Rig().Yaw(), 1e-4)
	})

	t.Run("Hotspots Animate Over Time", func(t *testing.T) {
		f := newFixture(t)
		f.manager.Start()
		hs := f.manager.Hotspots()
		info, teleport := hs[0], hs[3]

		f.manager.Update(float32(math.Pi / 6))
		// sin(3t) = 1 at t = π/6
		require.InDelta(t, 1.2, info.Marker().Scale()[0], 1e-4)
		sphere := info.Collider().(common.Sphere)
		require.InDelta(t, 0.24, sphere.Radius, 1e-4)

		disc := teleport.Marker().FindByName("teleportDisc")
		require.InDelta(t, 0.1*math.Sin(math.Pi/3), disc.Position()[1], 1e-4)
		arrow := teleport.Marker().FindByName("teleportArrow")
		require.InDelta(t, 0.7, arrow.Position()[1], 1e-4)
	})
}

func TestManager_Hover(t *testing.T) {
	overlapping := &LocationTable{
		Fallback: "room",
		Locations: []Location{{
			ID:     "room",
			Name:   "Room",
			Camera: CameraView{Position: common.Vec3{0, 1.7, 4}, LookAt: common.Vec3{0, 1.7, 0}},
			Bounds: Bounds{MinX: -5, MaxX: 5, MinZ: -5, MaxZ: 5},
			Hotspots: []HotspotSpec{
				{Kind: KindInfo, Position: common.Vec3{0, 1.7, -2}, Title: "far"},
				{Kind: KindInfo, Position: common.Vec3{0, 1.7, 2}, Title: "near"},
			},
		}},
	}

	t.Run("Nearer Of Two Overlapping Hotspots Wins", func(t *testing.T) {
		f := newFixture(t, WithTable(overlapping))
		f.manager.Start()
		for i := 0; i < 5; i++ {
			f.manager.Update(0)
			h, ok := f.manager.Hovered()
			require.True(t, ok)
			require.Equal(t, "near", h.Kind.(Info).Title)
		}
		require.Equal(t, "Info: near", f.presenter.hint)
		require.Equal(t, []string{"Info: near"}, f.presenter.hints)
	})

	t.Run("Hint Clears When Nothing Is Hovered", func(t *testing.T) {
		f := newFixture(t, WithTable(overlapping), WithLookSpeed(0))
		f.manager.Start()
		f.manager.Update(0)
		require.Equal(t, "Info: near", f.presenter.hint)

		f.manager.PointerMove(0.9, 0.9)
		f.manager.Update(0)
		_, ok := f.manager.Hovered()
		require.False(t, ok)
		require.Empty(t, f.presenter.hint)
	})

	t.Run("Click On Info Shows Popup", func(t *testing.T) {
		f := newFixture(t)
		f.manager.Start()
		aimAt(f, common.Vec3{0, 1.5, -7})
		require.True(t, f.manager.HandleEvent(input.EventPointerClick{}))
		require.Equal(t, []hud.Popup{{
			Title: "Papan Informasi",
			Body:  "Informasi mengenai jadwal perkuliahan dan pengumuman fakultas.",
		}}, f.presenter.popups)
	})

	t.Run("Click On Action Runs The Callback", func(t *testing.T) {
		calls := 0
		f := newFixture(t, WithAction("reception-welcome", func() { calls++ }))
		f.manager.Start()
		aimAt(f, common.Vec3{0, 1, 5})
		require.Equal(t, "Interaksi: Meja Resepsi", f.presenter.hint)
		f.manager.PointerClick()
		require.Equal(t, 1, calls)
	})

	t.Run("Click Right After A Location Change Uses The New View", func(t *testing.T) {
		view := func(id string, lookZ float32, hotspots ...HotspotSpec) Location {
			return Location{
				ID:       id,
				Name:     id,
				Camera:   CameraView{Position: common.Vec3{0, 1.7, 0}, LookAt: common.Vec3{0, 1.7, lookZ}},
				Bounds:   Bounds{MinX: -5, MaxX: 5, MinZ: -5, MaxZ: 5},
				Hotspots: hotspots,
			}
		}
		table := &LocationTable{
			Fallback: "north",
			Locations: []Location{
				view("north", -5),
				view("south", 5, HotspotSpec{Kind: KindInfo, Position: common.Vec3{0, 1.7, 2}, Title: "south board"}),
			},
		}
		f := newFixture(t, WithTable(table))
		f.manager.Start()
		f.manager.Update(0)

		f.manager.SetLocation("south")
		require.True(t, f.manager.ActivateHovered())
		require.Len(t, f.presenter.popups, 1)
		require.Equal(t, "south board", f.presenter.popups[0].Title)
	})

	t.Run("Click On Nothing Does Nothing", func(t *testing.T) {
		f := newFixture(t)
		f.manager.Start()
		aimAt(f, common.Vec3{9, 3.9, 0})
		require.False(t, f.manager.ActivateHovered())
		require.False(t, f.manager.Transitioning())
	})
}

func TestManager_Teleport(t *testing.T) {
	teleportPos := common.Vec3{5, 0.1, -3}

	start := func(t *testing.T) *fixture {
		f := newFixture(t)
		f.manager.Start()
		aimAt(f, teleportPos)
		require.Equal(t, "Menuju Laboratorium AI", f.presenter.hint)
		require.True(t, f.manager.ActivateHovered())
		require.True(t, f.manager.Transitioning())
		return f
	}

	t.Run("Swaps Only Once Fully Occluded", func(t *testing.T) {
		f := start(t)

		f.manager.Update(0.3)
		require.Equal(t, content.LocationMainBuilding, f.manager.CurrentLocation())
		require.InDelta(t, 0.6, f.manager.OverlayOpacity(), 1e-4)

		f.manager.Update(0.3)
		require.Equal(t, content.LocationAILab, f.manager.CurrentLocation())
		require.Equal(t, float32(1), f.manager.OverlayOpacity())
		require.Len(t, f.manager.Hotspots(), 3)
		require.Equal(t, content.LocationAILab, f.presenter.button)

		// hold
		f.manager.Update(0.3)
		require.Equal(t, float32(1), f.manager.OverlayOpacity())

		f.manager.Update(0.3)
		require.InDelta(t, 0.8, f.manager.OverlayOpacity(), 1e-4)
		require.True(t, f.manager.Transitioning())

		f.manager.Update(0.5)
		require.Equal(t, float32(0), f.manager.OverlayOpacity())
		require.Equal(t, float32(0), f.presenter.overlay)
		require.False(t, f.manager.Transitioning())
	})

	t.Run("End During Fade In Leaves Session Inactive", func(t *testing.T) {
		f := start(t)
		roots := f.scene.Count()
		f.manager.Update(0.3)
		f.manager.End()
		require.Less(t, f.scene.Count(), roots)

		for i := 0; i < 4; i++ {
			require.NotPanics(t, func() { f.manager.Update(1) })
		}
		require.False(t, f.manager.Active())
		require.Equal(t, content.LocationMainBuilding, f.manager.CurrentLocation())
		require.Equal(t, float32(0), f.manager.OverlayOpacity())
		require.Equal(t, float32(0), f.presenter.overlay)
		require.False(t, f.manager.Transitioning())
		require.Empty(t, f.manager.Hotspots())
	})

	t.Run("End During Hold Stops Further Changes", func(t *testing.T) {
		f := start(t)
		f.manager.Update(0.3)
		f.manager.Update(0.3)
		require.Equal(t, content.LocationAILab, f.manager.CurrentLocation())
		buttons := len(f.presenter.buttons)

		f.manager.End()
		for i := 0; i < 4; i++ {
			f.manager.Update(1)
		}
		require.False(t, f.manager.Active())
		require.Equal(t, content.LocationAILab, f.manager.CurrentLocation())
		require.Len(t, f.presenter.buttons, buttons)
		require.Equal(t, float32(0), f.presenter.overlay)
	})

	t.Run("Stale Callbacks Stay Inert After Restart", func(t *testing.T) {
		f := start(t)
		f.manager.Update(0.3)
		f.manager.End()
		f.manager.Start()
		require.Equal(t, content.LocationMainBuilding, f.manager.CurrentLocation())

		f.manager.Update(0.3)
		f.manager.Update(1)
		require.Equal(t, content.LocationMainBuilding, f.manager.CurrentLocation())
		require.Equal(t, float32(0), f.manager.OverlayOpacity())
	})

	t.Run("Click During Transition Is Ignored", func(t *testing.T) {
		f := start(t)
		f.manager.Update(0.1)
		require.False(t, f.manager.ActivateHovered())
	})

	t.Run("Direct Set Location Abandons The Transition", func(t *testing.T) {
		f := start(t)
		f.manager.Update(0.3)
		f.manager.SetLocation(content.LocationLibrary)
		require.False(t, f.manager.Transitioning())
		require.Equal(t, float32(0), f.manager.OverlayOpacity())

		f.manager.Update(1)
		f.manager.Update(1)
		require.Equal(t, content.LocationLibrary, f.manager.CurrentLocation())
	})

	t.Run("Unknown Teleport Target Falls Back", func(t *testing.T) {
		table := &LocationTable{
			Fallback: "lobby",
			Locations: []Location{
				{
					ID:     "lobby",
					Camera: CameraView{Position: common.Vec3{0, 1.7, 4}, LookAt: common.Vec3{0, 1.7, 0}},
					Bounds: Bounds{MinX: -5, MaxX: 5, MinZ: -5, MaxZ: 5},
				},
				{
					ID:     "annex",
					Camera: CameraView{Position: common.Vec3{0, 1.7, 4}, LookAt: common.Vec3{0, 1.7, 0}},
					Bounds: Bounds{MinX: -5, MaxX: 5, MinZ: -5, MaxZ: 5},
					Hotspots: []HotspotSpec{
						{Kind: KindTeleport, Position: common.Vec3{0, 0.1, 0}, Target: "basement", Label: "down"},
					},
				},
			},
		}
		f := newFixture(t, WithTable(table), WithStartLocation("annex"))
		f.manager.Start()
		aimAt(f, common.Vec3{0, 0.1, 0})
		require.True(t, f.manager.ActivateHovered())
		f.manager.Update(0.6)
		require.Equal(t, "lobby", f.manager.CurrentLocation())
		require.Empty(t, f.manager.Hotspots())
	})
}

func TestManager_HandleEvent(t *testing.T) {
	f := newFixture(t)
	require.False(t, f.manager.HandleEvent(input.EventKeyDown{Key: input.KeyW}))
	require.False(t, f.manager.HandleEvent(input.EventResize{Width: 10, Height: 10}))

	f.manager.Start()
	require.True(t, f.manager.HandleEvent(input.EventKeyDown{Key: input.KeyW}))
	require.True(t, f.manager.HandleEvent(input.EventPointerMove{X: 2, Y: -2}))
	m := f.manager.(*manager)
	require.True(t, m.held[input.KeyW])
	require.Equal(t, float32(1), m.pointerX)
	require.Equal(t, float32(-1), m.pointerY)

	require.True(t, f.manager.HandleEvent(input.EventKeyUp{Key: input.KeyW}))
	require.False(t, m.held[input.KeyW])
}

func TestHeadingDegrees(t *testing.T) {
	cases := []struct {
		yaw  float32
		want float32
	}{
		{0, 0},
		{-math.Pi / 2, 90},
		{math.Pi, 180},
		{math.Pi / 2, 270},
		{-2 * math.Pi, 0},
		{5 * math.Pi / 2, 270},
	}
	for _, c := range cases {
		got := headingDegrees(c.yaw)
		require.GreaterOrEqual(t, got, float32(0))
		require.Less(t, got, float32(360))
		require.InDelta(t, c.want, got, 1e-3, "yaw %v", c.yaw)
	}
}
