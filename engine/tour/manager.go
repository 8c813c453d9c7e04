// Package tour implements the first-person virtual tour: a two-state machine (inactive, active at
// a location) that swaps location content and hotspots, walks a camera rig inside the room bounds,
// and keeps the HUD in sync.
//
// A Manager is not safe for concurrent use. Every call is expected on the frame goroutine; input
// arriving on other goroutines goes through an input.Queue first.
package tour

import (
	"math"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/content"
	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
	"github.com/Carmen-Shannon/oxy-tour/engine/hud"
	"github.com/Carmen-Shannon/oxy-tour/engine/input"
	"github.com/Carmen-Shannon/oxy-tour/engine/interact"
	"github.com/Carmen-Shannon/oxy-tour/engine/scene"
	"github.com/Carmen-Shannon/oxy-tour/engine/tween"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager drives the virtual tour.
type Manager interface {
	// Start captures the camera and main-scene visibility, hides the main scene's meshes, takes over
	// the camera with the first-person rig and enters the last used location. No-op while active.
	Start()

	// End removes the location content and hotspots, restores the captured camera and visibility and
	// hides the HUD. Pending transition callbacks become inert. No-op while inactive.
	End()

	// SetLocation replaces the current location. Unknown ids fall back to the table's fallback
	// location. Ignored while inactive. A running teleport transition is abandoned.
	//
	// Parameters:
	//   - id: the location to enter
	SetLocation(id string)

	// Update advances one frame: HUD heading, look, movement, bounds clamp, hotspot animation and
	// hover, in that order. While inactive only pending transition callbacks are advanced.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous frame
	Update(dt float32)

	// ActivateHovered casts a ray through the pointer and activates the hotspot it hits, if any.
	//
	// Returns:
	//   - bool: true when a hotspot was activated
	ActivateHovered() bool

	// PointerMove records the pointer position.
	//
	// Parameters:
	//   - x, y: normalized surface coordinates, x right and y up, both in [-1, 1]
	PointerMove(x, y float32)

	// PointerClick is the click input; it activates the hovered hotspot.
	PointerClick()

	// KeyDown marks a key as held while the tour captures input.
	KeyDown(key input.Key)

	// KeyUp releases a held key.
	KeyUp(key input.Key)

	// HandleEvent routes one input event to the matching input method.
	//
	// Parameters:
	//   - e: the event
	//
	// Returns:
	//   - bool: true when the tour consumed the event
	HandleEvent(e input.Event) bool

	// Active reports whether the tour controls the camera.
	Active() bool

	// CurrentLocation returns the id of the current or last used location.
	CurrentLocation() string

	// Location returns the table entry of the current location, nil while inactive.
	Location() *Location

	// Table returns the location table.
	Table() *LocationTable

	// Hotspots returns the hotspots of the active location in table order.
	Hotspots() []*Hotspot

	// Hovered returns the hovered hotspot.
	//
	// Returns:
	//   - *Hotspot: the hovered hotspot, nil when none
	//   - bool: true when a hotspot is hovered
	Hovered() (*Hotspot, bool)

	// Transitioning reports whether a teleport fade is running.
	Transitioning() bool

	// OverlayOpacity returns the current fade overlay opacity.
	OverlayOpacity() float32

	// Rig returns the first-person camera rig.
	Rig() camera.FirstPersonController

	// Session returns a copy of the session state.
	Session() Session
}

type manager struct {
	scene     scene.Scene
	provider  content.Provider
	presenter hud.Presenter
	table     *LocationTable
	logger    *zap.Logger

	rig      camera.FirstPersonController
	tweens   tween.Scheduler
	registry interact.Registry[*Hotspot]
	actions  map[string]func()

	eyeHeight        float32
	movementSpeed    float32
	sprintMultiplier float32
	lookSpeed        float32
	fadeDuration     float32
	holdDuration     float32

	session  Session
	location *Location
	model    game_object.GameObject
	hotspots []*Hotspot

	pointerX, pointerY float32
	held               map[input.Key]bool
	capturing          bool
	elapsed            float32
	hint               string

	overlay       float32
	transitioning bool
	fadeIn        tween.Handle
	fadeOut       tween.Handle

	onActiveChange []func(active bool)
}

var _ Manager = &manager{}

// NewManager creates an inactive tour over the main scene sc.
// Location content comes from provider, HUD updates go to presenter.
//
// Parameters:
//   - sc: the scene whose camera the tour takes over and whose meshes it hides
//   - provider: the location content factory
//   - presenter: the HUD
//   - options: functional options to configure the manager
//
// Returns:
//   - Manager: the newly created manager
func NewManager(sc scene.Scene, provider content.Provider, presenter hud.Presenter, options ...ManagerBuilderOption) Manager {
	if sc == nil {
		panic("tour: scene cannot be nil")
	}
	if sc.Camera() == nil {
		panic("tour: scene has no camera")
	}
	if provider == nil {
		panic("tour: content provider cannot be nil")
	}
	if presenter == nil {
		panic("tour: presenter cannot be nil")
	}

	m := &manager{
		scene:            sc,
		provider:         provider,
		presenter:        presenter,
		logger:           zap.NewNop(),
		tweens:           tween.NewScheduler(),
		registry:         interact.NewRegistry[*Hotspot](),
		actions:          make(map[string]func()),
		eyeHeight:        1.7,
		movementSpeed:    5,
		sprintMultiplier: 2,
		lookSpeed:        1.2,
		fadeDuration:     0.5,
		holdDuration:     0.5,
		held:             make(map[input.Key]bool),
	}
	for _, option := range options {
		option(m)
	}
	if m.table == nil {
		m.table = DefaultTable()
	}
	if _, ok := m.table.Lookup(m.table.Fallback); !ok {
		panic("tour: location table has no fallback location")
	}
	if m.rig == nil {
		m.rig = camera.NewFirstPersonController()
	}
	if m.session.CurrentLocationID == "" {
		m.session.CurrentLocationID = m.table.StartID()
	}
	return m
}

func (m *manager) Active() bool {
	return m.session.Active
}

func (m *manager) CurrentLocation() string {
	return m.session.CurrentLocationID
}

func (m *manager) Location() *Location {
	return m.location
}

func (m *manager) Table() *LocationTable {
	return m.table
}

func (m *manager) Hotspots() []*Hotspot {
	out := make([]*Hotspot, len(m.hotspots))
	copy(out, m.hotspots)
	return out
}

func (m *manager) Hovered() (*Hotspot, bool) {
	id, ok := m.registry.Hovered()
	if !ok {
		return nil, false
	}
	return m.registry.Get(id)
}

func (m *manager) Transitioning() bool {
	return m.transitioning
}

func (m *manager) OverlayOpacity() float32 {
	return m.overlay
}

func (m *manager) Rig() camera.FirstPersonController {
	return m.rig
}

func (m *manager) Session() Session {
	s := m.session
	if s.SavedVisibility != nil {
		s.SavedVisibility = make(map[uuid.UUID]bool, len(m.session.SavedVisibility))
		for id, v := range m.session.SavedVisibility {
			s.SavedVisibility[id] = v
		}
	}
	return s
}

func (m *manager) Start() {
	if m.session.Active {
		return
	}
	cam := m.scene.Camera()

	m.session.SavedCamera = captureCamera(cam)
	m.session.SavedVisibility = make(map[uuid.UUID]bool)
	m.scene.Traverse(func(obj game_object.GameObject) bool {
		if obj.Kind() == game_object.KindMesh {
			m.session.SavedVisibility[obj.ID()] = obj.Visible()
			obj.SetVisible(false)
		}
		return true
	})

	m.rig.SetPose(camera.Pose{Position: common.Vec3{0, m.eyeHeight, 0}})
	cam.SetController(m.rig)

	m.capturing = true
	clear(m.held)
	m.pointerX, m.pointerY = 0, 0
	m.elapsed = 0

	m.session.Active = true
	m.session.generation++
	m.presenter.SetVisible(true)
	m.setLocation(m.session.CurrentLocationID)

	m.logger.Info("tour started",
		zap.String("location", m.session.CurrentLocationID),
		zap.Int("hiddenMeshes", len(m.session.SavedVisibility)),
	)
	m.notifyActive(true)
}

func (m *manager) End() {
	if !m.session.Active {
		return
	}
	m.capturing = false
	clear(m.held)

	m.teardownLocation()
	m.setOverlay(0)
	m.transitioning = false

	cam := m.scene.Camera()
	if m.session.SavedCamera != nil {
		m.session.SavedCamera.restore(cam)
	}
	missing := 0
	for id, visible := range m.session.SavedVisibility {
		obj := m.scene.Get(id)
		if obj == nil {
			missing++
			continue
		}
		obj.SetVisible(visible)
	}

	m.presenter.SetVisible(false)
	m.session.Active = false
	m.session.generation++
	m.session.SavedCamera = nil
	m.session.SavedVisibility = nil
	m.location = nil

	m.logger.Info("tour ended",
		zap.String("location", m.session.CurrentLocationID),
		zap.Int("missingNodes", missing),
	)
	m.notifyActive(false)
}

func (m *manager) SetLocation(id string) {
	if !m.session.Active {
		m.logger.Debug("set location ignored, tour inactive", zap.String("location", id))
		return
	}
	if m.transitioning {
		m.tweens.Cancel(m.fadeIn)
		m.tweens.Cancel(m.fadeOut)
		m.transitioning = false
		m.setOverlay(0)
	}
	m.setLocation(id)
}

// setLocation swaps content, hotspots, camera view and HUD text to the location id resolves to.
func (m *manager) setLocation(id string) {
	loc, ok := m.table.Lookup(id)
	if !ok {
		m.logger.Warn("unknown location, using fallback",
			zap.String("location", id),
			zap.String("fallback", m.table.Fallback),
		)
		loc, _ = m.table.Lookup(m.table.Fallback)
	}

	m.teardownLocation()

	m.model = m.provider.Produce(loc.ID)
	if m.model != nil {
		m.scene.Add(m.model)
	} else {
		m.logger.Warn("no content for location", zap.String("location", loc.ID))
	}

	m.location = loc
	m.session.CurrentLocationID = loc.ID

	eye := loc.Bounds.Clamp(loc.Camera.Position)
	eye[1] = m.eyeHeight
	m.rig.SetPosition(eye)
	m.rig.LookAt(loc.Camera.LookAt)
	m.scene.Camera().Update()

	for _, spec := range loc.Hotspots {
		h := newHotspot(spec.Position, m.kindFor(loc.ID, spec), spec.Scale)
		h.animate(m.elapsed)
		m.hotspots = append(m.hotspots, h)
		m.scene.Add(h.Marker())
		m.registry.Register(h.ID, h.Collider(), h)
	}

	m.presenter.SetLocationText(loc.Name, loc.Description)
	m.presenter.SetActiveLocationButton(loc.ID)
	m.logger.Debug("location set", zap.String("location", loc.ID), zap.Int("hotspots", len(m.hotspots)))
}

func (m *manager) kindFor(locationID string, spec HotspotSpec) Kind {
	switch spec.Kind {
	case KindAction:
		fn, ok := m.actions[spec.Action]
		if !ok {
			m.logger.Warn("unknown hotspot action, hotspot does nothing",
				zap.String("location", locationID),
				zap.String("action", spec.Action),
			)
			fn = func() {}
		}
		return Action{Title: spec.Title, Description: spec.Description, OnActivate: fn}
	case KindTeleport:
		return Teleport{Target: spec.Target, Label: spec.Label}
	default:
		return Info{Title: spec.Title, Description: spec.Description}
	}
}

// teardownLocation detaches the location content and every hotspot.
func (m *manager) teardownLocation() {
	if m.model != nil {
		m.scene.Remove(m.model.ID())
		m.model = nil
	}
	for _, h := range m.hotspots {
		m.scene.Remove(h.Marker().ID())
	}
	m.hotspots = nil
	m.registry.Clear()
	m.setHint("")
}

func (m *manager) Update(dt float32) {
	if dt < 0 {
		dt = 0
	}
	m.tweens.Update(dt)
	if !m.session.Active {
		return
	}
	m.elapsed += dt
	cam := m.scene.Camera()

	// 1. heading
	m.presenter.SetHeading(headingDegrees(m.rig.Yaw()))

	// 2. look
	if m.lookSpeed != 0 && (m.pointerX != 0 || m.pointerY != 0) {
		m.rig.Look(m.pointerX*m.lookSpeed*dt, -m.pointerY*m.lookSpeed*dt)
	}

	// 3. movement
	pos := m.rig.Position()
	if step := m.movement(); step != (common.Vec3{}) {
		speed := m.movementSpeed * dt
		if m.held[input.KeyShiftLeft] {
			speed *= m.sprintMultiplier
		}
		pos = pos.Add(step.Scale(speed))
	}

	// 4. clamp
	if m.location != nil {
		pos = m.location.Bounds.Clamp(pos)
	}
	pos[1] = m.eyeHeight
	m.rig.SetPosition(pos)
	cam.Update()

	// 5. idle animations
	for _, h := range m.hotspots {
		h.animate(m.elapsed)
		m.registry.SetShape(h.ID, h.Collider())
	}

	// 6. hover
	f := cam.Frustum()
	m.registry.SetFrustum(&f)
	hit, ok, _ := m.registry.Hover(cam.Ray(m.pointerX, m.pointerY))
	if ok {
		m.setHint(hit.Payload.Kind.Hint())
	} else {
		m.setHint("")
	}
}

// movement sums the held movement keys into a horizontal unit direction.
func (m *manager) movement() common.Vec3 {
	if !m.capturing {
		return common.Vec3{}
	}
	var dir common.Vec3
	forward, right := m.rig.Forward(), m.rig.Right()
	if m.held[input.KeyW] || m.held[input.KeyArrowUp] {
		dir = dir.Add(forward)
	}
	if m.held[input.KeyS] || m.held[input.KeyArrowDown] {
		dir = dir.Sub(forward)
	}
	if m.held[input.KeyD] || m.held[input.KeyArrowRight] {
		dir = dir.Add(right)
	}
	if m.held[input.KeyA] || m.held[input.KeyArrowLeft] {
		dir = dir.Sub(right)
	}
	dir[1] = 0
	if dir.Length() < 1e-6 {
		return common.Vec3{}
	}
	return dir.Normalize()
}

func (m *manager) ActivateHovered() bool {
	if !m.session.Active || m.transitioning {
		return false
	}
	cam := m.scene.Camera()
	cam.Update()
	f := cam.Frustum()
	m.registry.SetFrustum(&f)
	hit, ok := m.registry.Pick(cam.Ray(m.pointerX, m.pointerY))
	if !ok {
		return false
	}

	switch k := hit.Payload.Kind.(type) {
	case Info:
		m.presenter.ShowPopup(k.Title, k.Description)
	case Action:
		if k.OnActivate != nil {
			k.OnActivate()
		}
	case Teleport:
		m.teleport(k.Target)
	}
	return true
}

// teleport fades to opaque, swaps the location once fully occluded, holds, then fades back.
// Every callback checks the session generation so an End during the fade leaves them inert.
func (m *manager) teleport(target string) {
	gen := m.session.generation
	m.transitioning = true
	m.logger.Debug("teleport started", zap.String("target", target))

	m.fadeIn = m.tweens.To(m.overlay, 1, m.fadeDuration, tween.Linear,
		func(v float32) {
			if m.live(gen) {
				m.setOverlay(v)
			}
		},
		tween.WithOnComplete(func() {
			if !m.live(gen) {
				m.logger.Debug("stale teleport swap ignored", zap.String("target", target))
				return
			}
			m.setLocation(target)
			m.fadeOut = m.tweens.To(1, 0, m.fadeDuration, tween.Linear,
				func(v float32) {
					if m.live(gen) {
						m.setOverlay(v)
					}
				},
				tween.WithDelay(m.holdDuration),
				tween.WithOnComplete(func() {
					if !m.live(gen) {
						m.logger.Debug("stale teleport fade ignored", zap.String("target", target))
						return
					}
					m.transitioning = false
				}),
			)
		}),
	)
}

// live reports whether a callback scheduled in generation gen may still act.
func (m *manager) live(gen uint64) bool {
	return m.session.Active && m.session.generation == gen
}

func (m *manager) setOverlay(alpha float32) {
	m.overlay = alpha
	m.presenter.SetOverlayOpacity(alpha)
}

func (m *manager) setHint(text string) {
	if text == m.hint {
		return
	}
	m.hint = text
	m.presenter.SetHint(text)
}

func (m *manager) PointerMove(x, y float32) {
	m.pointerX = common.Clamp(x, -1, 1)
	m.pointerY = common.Clamp(y, -1, 1)
}

func (m *manager) PointerClick() {
	m.ActivateHovered()
}

func (m *manager) KeyDown(key input.Key) {
	if !m.capturing {
		return
	}
	m.held[key] = true
}

func (m *manager) KeyUp(key input.Key) {
	delete(m.held, key)
}

func (m *manager) HandleEvent(e input.Event) bool {
	switch ev := e.(type) {
	case input.EventPointerMove:
		m.PointerMove(ev.X, ev.Y)
		return m.session.Active
	case input.EventPointerClick:
		return m.ActivateHovered()
	case input.EventKeyDown:
		m.KeyDown(ev.Key)
		return m.capturing
	case input.EventKeyUp:
		m.KeyUp(ev.Key)
		return m.capturing
	default:
		return false
	}
}

func (m *manager) notifyActive(active bool) {
	for _, fn := range m.onActiveChange {
		fn(active)
	}
}

// headingDegrees converts a yaw (positive turns left) into a compass heading that grows when
// turning right, normalized to [0, 360).
func headingDegrees(yaw float32) float32 {
	deg := math.Mod(-float64(yaw)*180/math.Pi, 360)
	if deg <= 0 {
		deg += 360
	}
	if deg >= 360 {
		deg -= 360
	}
	return float32(deg)
}
