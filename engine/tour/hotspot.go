package tour

import (
	"math"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
	"github.com/Carmen-Shannon/oxy-tour/engine/interact"
	"github.com/google/uuid"
)

// Kind is the variant part of a Hotspot: exactly one of Info, Action or Teleport.
type Kind interface {
	// Hint is the text shown while the hotspot is hovered.
	Hint() string
	isKind()
}

// Info presents its title and description in a popup when activated.
type Info struct {
	Title       string
	Description string
}

// Action runs a host callback when activated.
type Action struct {
	Title       string
	Description string
	OnActivate  func()
}

// Teleport moves the tour to Target when activated.
type Teleport struct {
	Target string
	Label  string
}

func (Info) isKind()     {}
func (Action) isKind()   {}
func (Teleport) isKind() {}

func (k Info) Hint() string     { return "Info: " + k.Title }
func (k Action) Hint() string   { return "Interaksi: " + k.Title }
func (k Teleport) Hint() string { return k.Label }

const (
	markerRadius  = 0.2
	pulseAmount   = 0.2
	pulseRate     = 3.0
	bobAmount     = 0.1
	bobRate       = 2.0
	arrowLift     = 0.5
	arrowBob      = 0.2
	arrowBobRate  = 3.0
	discRadius    = 0.5
	discHeight    = 0.1
	infoColor     = 0x00aaff
	actionColor   = 0xffaa00
	teleportColor = 0x00ff00
)

// animation is the idle effect state of one hotspot.
type animation struct {
	baseScale float32
	pulse     float32 // current scale factor of Info and Action markers
	bob       float32 // current vertical offset of the teleport disc
}

// Hotspot is an interactive marker of the active location.
type Hotspot struct {
	ID       uuid.UUID
	Position common.Vec3
	Kind     Kind

	marker game_object.GameObject
	disc   game_object.GameObject
	arrow  game_object.GameObject
	anim   animation
}

// newHotspot builds the hotspot and its marker nodes. The marker root carries the hotspot's ID.
func newHotspot(position common.Vec3, kind Kind, scale float32) *Hotspot {
	if scale <= 0 {
		scale = 1
	}
	h := &Hotspot{
		ID:       uuid.New(),
		Position: position,
		Kind:     kind,
		anim:     animation{baseScale: scale, pulse: 1},
	}

	switch kind.(type) {
	case Teleport:
		h.disc = game_object.NewMesh("teleportDisc", game_object.PrimitiveCylinder,
			common.Vec3{discRadius * 2, discHeight, discRadius * 2},
			game_object.WithHexColor(teleportColor),
			game_object.WithEmissive(0.7),
		)
		h.arrow = game_object.NewMesh("teleportArrow", game_object.PrimitiveCone,
			common.Vec3{0.4, 0.4, 0.4},
			game_object.WithPosition(common.Vec3{0, arrowLift, 0}),
			game_object.WithHexColor(teleportColor),
			game_object.WithEmissive(0.9),
		)
		h.marker = game_object.NewGroup("hotspot",
			game_object.WithID(h.ID),
			game_object.WithPosition(position),
			game_object.WithScale(common.Vec3{scale, scale, scale}),
			game_object.WithChildren(h.disc, h.arrow),
		)
	default:
		color := uint32(infoColor)
		if _, ok := kind.(Action); ok {
			color = actionColor
		}
		h.marker = game_object.NewMesh("hotspot", game_object.PrimitiveSphere,
			common.Vec3{markerRadius * 2, markerRadius * 2, markerRadius * 2},
			game_object.WithID(h.ID),
			game_object.WithPosition(position),
			game_object.WithScale(common.Vec3{scale, scale, scale}),
			game_object.WithHexColor(color),
			game_object.WithEmissive(0.7),
		)
	}
	return h
}

// Marker returns the scene node drawn for the hotspot.
func (h *Hotspot) Marker() game_object.GameObject {
	return h.marker
}

// Collider returns the pick shape at the hotspot's current animated pose.
func (h *Hotspot) Collider() interact.Shape {
	if _, ok := h.Kind.(Teleport); ok {
		s := h.anim.baseScale
		center := h.Position.Add(common.Vec3{0, h.anim.bob * s, 0})
		return common.NewAABB(center, common.Vec3{discRadius * 2 * s, discHeight * s, discRadius * 2 * s})
	}
	return common.Sphere{Center: h.Position, Radius: markerRadius * h.anim.baseScale * h.anim.pulse}
}

// animate poses the marker for the elapsed session time t in seconds.
func (h *Hotspot) animate(t float32) {
	s := h.anim.baseScale
	if _, ok := h.Kind.(Teleport); ok {
		h.anim.bob = bobAmount * sin(bobRate*t)
		h.disc.SetPosition(common.Vec3{0, h.anim.bob, 0})
		h.arrow.SetPosition(common.Vec3{0, arrowLift + arrowBob*sin(arrowBobRate*t), 0})
		return
	}
	h.anim.pulse = 1 + pulseAmount*sin(pulseRate*t)
	f := s * h.anim.pulse
	h.marker.SetScale(common.Vec3{f, f, f})
}

func sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}
