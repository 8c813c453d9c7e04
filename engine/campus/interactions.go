package campus

import (
	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
	"github.com/Carmen-Shannon/oxy-tour/engine/input"
	"github.com/Carmen-Shannon/oxy-tour/engine/interact"
	"github.com/Carmen-Shannon/oxy-tour/engine/tween"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	highlightEmissive = 0.2
	doorSlide         = 0.9
	doorDuration      = 1.0
	windowDuration    = 0.5
	litEmissive       = 0.5
)

// litColor is the warm glass colour of a switched-on window.
var litColor = common.Vec3{1, 0.9, 0.6}

// Interactions handles pointer hover and clicks on the campus scene's interactive nodes.
// It is driven from the frame goroutine and is not safe for concurrent use.
type Interactions interface {
	// Register scans root for doors, windows, the faculty sign and the building and makes them
	// pickable. Calling it again adds nodes not yet registered.
	//
	// Parameters:
	//   - root: the campus root, usually the result of Build
	//
	// Returns:
	//   - int: the number of registered nodes
	Register(root game_object.GameObject) int

	// PointerMove records the pointer and updates the hover highlight.
	//
	// Parameters:
	//   - x, y: normalized surface coordinates, x right and y up
	PointerMove(x, y float32)

	// PointerClick activates the node under the pointer: doors slide, windows toggle their light,
	// the sign and the building run their callbacks.
	//
	// Returns:
	//   - bool: true when a node was hit
	PointerClick() bool

	// HandleEvent routes pointer events. Move events are never consumed.
	HandleEvent(e input.Event) bool

	// Update advances running door and window animations.
	Update(dt float32)

	// SetTourActive disables every interaction while the tour runs and clears the highlight.
	SetTourActive(active bool)

	// TourActive reports whether interactions are disabled by a running tour.
	TourActive() bool

	// Hovered returns the highlighted node.
	Hovered() (game_object.GameObject, bool)

	// IsOpen reports whether the door with id is open or opening.
	IsOpen(id uuid.UUID) bool

	// IsLit reports whether the window with id is lit or lighting.
	IsLit(id uuid.UUID) bool
}

type targetKind int

const (
	targetDoor targetKind = iota
	targetWindow
	targetSign
	targetBuilding
)

type target struct {
	kind targetKind
	obj  game_object.GameObject

	// doors
	direction float32
	origin    common.Vec3
	open      bool
	moving    tween.Handle

	// windows
	lit       bool
	baseColor common.Vec3
	fading    tween.Handle

	baseEmissive float32
}

type interactions struct {
	cam      camera.Camera
	registry interact.Registry[*target]
	tweens   tween.Scheduler
	logger   *zap.Logger

	pointerX, pointerY float32
	hovered            *target
	tourActive         bool

	onSignClick     func()
	onBuildingClick func()
}

var _ Interactions = &interactions{}

// NewInteractions creates the campus interaction handler casting rays from cam.
//
// Parameters:
//   - cam: the main scene camera
//   - options: functional options to configure the handler
//
// Returns:
//   - Interactions: the newly created handler
func NewInteractions(cam camera.Camera, options ...InteractionsBuilderOption) Interactions {
	if cam == nil {
		panic("campus: camera cannot be nil")
	}
	in := &interactions{
		cam:      cam,
		registry: interact.NewRegistry[*target](),
		logger:   zap.NewNop(),
	}
	for _, option := range options {
		option(in)
	}
	if in.tweens == nil {
		in.tweens = tween.NewScheduler()
	}
	return in
}

func collider(obj game_object.GameObject) interact.Shape {
	s := obj.Size().Mul(obj.Scale())
	return common.NewAABB(obj.WorldPosition(), s)
}

func (in *interactions) Register(root game_object.GameObject) int {
	root.Traverse(func(obj game_object.GameObject) bool {
		if _, ok := in.registry.Get(obj.ID()); ok {
			return true
		}
		t := &target{obj: obj, baseEmissive: obj.Emissive()}
		switch obj.Name() {
		case NameLeftDoor, NameRightDoor:
			t.kind = targetDoor
			t.origin = obj.Position()
			t.direction = 1
			if obj.Name() == NameLeftDoor {
				t.direction = -1
			}
		case NameWindow:
			t.kind = targetWindow
			t.baseColor = obj.Color()
		case NameFacultySign:
			t.kind = targetSign
		case NameBuilding:
			t.kind = targetBuilding
		default:
			return true
		}
		in.registry.Register(obj.ID(), collider(obj), t)
		return true
	})
	in.logger.Debug("campus interactions registered", zap.Int("count", in.registry.Len()))
	return in.registry.Len()
}

func (in *interactions) ray() common.Ray {
	return in.cam.Ray(in.pointerX, in.pointerY)
}

func (in *interactions) PointerMove(x, y float32) {
	in.pointerX = common.Clamp(x, -1, 1)
	in.pointerY = common.Clamp(y, -1, 1)
	if in.tourActive {
		return
	}
	f := in.cam.Frustum()
	in.registry.SetFrustum(&f)
	hit, ok, changed := in.registry.Hover(in.ray())
	if !changed {
		return
	}
	in.unhighlight()
	if ok {
		in.hovered = hit.Payload
		if !hit.Payload.lit {
			hit.Payload.obj.SetEmissive(highlightEmissive)
		}
	}
}

func (in *interactions) unhighlight() {
	if in.hovered != nil && !in.hovered.lit {
		in.hovered.obj.SetEmissive(in.hovered.baseEmissive)
	}
	in.hovered = nil
}

func (in *interactions) PointerClick() bool {
	if in.tourActive {
		return false
	}
	hit, ok := in.registry.Pick(in.ray())
	if !ok {
		return false
	}
	t := hit.Payload
	switch t.kind {
	case targetDoor:
		in.toggleDoor(t)
	case targetWindow:
		in.toggleWindow(t)
	case targetSign:
		if in.onSignClick != nil {
			in.onSignClick()
		}
	case targetBuilding:
		if in.onBuildingClick != nil {
			in.onBuildingClick()
		}
	}
	in.logger.Debug("campus node clicked", zap.String("name", t.obj.Name()))
	return true
}

func (in *interactions) toggleDoor(t *target) {
	in.tweens.Cancel(t.moving)
	to, easing := t.origin[0]+t.direction*doorSlide, tween.OutQuad
	if t.open {
		to, easing = t.origin[0], tween.InQuad
	}
	t.open = !t.open

	obj := t.obj
	t.moving = in.tweens.To(obj.Position()[0], to, doorDuration, easing, func(x float32) {
		p := obj.Position()
		p[0] = x
		obj.SetPosition(p)
		in.registry.SetShape(obj.ID(), collider(obj))
	})
}

func (in *interactions) toggleWindow(t *target) {
	in.tweens.Cancel(t.fading)
	toColor, toEmissive := litColor, float32(litEmissive)
	if t.lit {
		toColor, toEmissive = t.baseColor, t.baseEmissive
	}
	t.lit = !t.lit

	obj := t.obj
	fromColor, fromEmissive := obj.Color(), obj.Emissive()
	t.fading = in.tweens.To(0, 1, windowDuration, tween.OutQuad, func(k float32) {
		obj.SetColor(fromColor.Add(toColor.Sub(fromColor).Scale(k)))
		obj.SetEmissive(fromEmissive + (toEmissive-fromEmissive)*k)
	})
}

func (in *interactions) HandleEvent(e input.Event) bool {
	switch ev := e.(type) {
	case input.EventPointerMove:
		in.PointerMove(ev.X, ev.Y)
		return false
	case input.EventPointerClick:
		return in.PointerClick()
	}
	return false
}

func (in *interactions) Update(dt float32) {
	in.tweens.Update(dt)
}

func (in *interactions) SetTourActive(active bool) {
	in.tourActive = active
	if active {
		in.unhighlight()
		in.registry.ClearHover()
	}
}

func (in *interactions) TourActive() bool {
	return in.tourActive
}

func (in *interactions) Hovered() (game_object.GameObject, bool) {
	if in.hovered == nil {
		return nil, false
	}
	return in.hovered.obj, true
}

func (in *interactions) IsOpen(id uuid.UUID) bool {
	t, ok := in.registry.Get(id)
	return ok && t.kind == targetDoor && t.open
}

func (in *interactions) IsLit(id uuid.UUID) bool {
	t, ok := in.registry.Get(id)
	return ok && t.kind == targetWindow && t.lit
}
