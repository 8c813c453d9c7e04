package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/google/uuid"
)

// Kind distinguishes grouping nodes from drawable meshes.
type Kind int

const (
	// KindGroup is a transform-only node whose children are drawn.
	KindGroup Kind = iota
	// KindMesh is a drawable primitive.
	KindMesh
)

// Primitive names the static shape a mesh node draws. Size gives its extents.
type Primitive int

const (
	PrimitiveNone Primitive = iota
	PrimitiveBox
	PrimitiveSphere
	PrimitiveCylinder
	PrimitiveCone
	PrimitivePlane
)

// String returns the lower-case name of the primitive.
func (p Primitive) String() string {
	switch p {
	case PrimitiveBox:
		return "box"
	case PrimitiveSphere:
		return "sphere"
	case PrimitiveCylinder:
		return "cylinder"
	case PrimitiveCone:
		return "cone"
	case PrimitivePlane:
		return "plane"
	default:
		return "none"
	}
}

type gameObject struct {
	id        uuid.UUID
	name      string
	kind      Kind
	primitive Primitive
	visible   atomic.Bool

	position      common.Vec3
	rotation      common.Vec3
	rotationSpeed common.Vec3
	scale         common.Vec3
	size          common.Vec3

	color    common.Vec3
	emissive float32

	parent   *gameObject
	children []*gameObject
}

// GameObject defines the interface for a node in the scene graph.
// A node is either a group or a mesh primitive, carries a local transform relative
// to its parent and a flat material (base color plus emissive strength).
// Nodes are not safe for concurrent mutation; the frame loop owns them.
type GameObject interface {
	// ID returns the node's unique identity. Clones receive fresh identities.
	//
	// Returns:
	//   - uuid.UUID: the node identity
	ID() uuid.UUID

	// Name returns the node's human-readable name. Names need not be unique.
	//
	// Returns:
	//   - string: the node name
	Name() string

	// Kind returns whether this node is a group or a mesh.
	//
	// Returns:
	//   - Kind: the node kind
	Kind() Kind

	// Primitive returns the shape drawn by a mesh node.
	//
	// Returns:
	//   - Primitive: the primitive, PrimitiveNone for groups
	Primitive() Primitive

	// Visible returns the node's own visibility flag. A visible node under a hidden
	// ancestor is still not drawn.
	//
	// Returns:
	//   - bool: true if visible
	Visible() bool

	// SetVisible sets the node's own visibility flag.
	//
	// Parameters:
	//   - visible: true to show the node
	SetVisible(visible bool)

	// Position returns the local position relative to the parent.
	//
	// Returns:
	//   - common.Vec3: local position
	Position() common.Vec3

	// SetPosition sets the local position relative to the parent.
	//
	// Parameters:
	//   - p: new local position
	SetPosition(p common.Vec3)

	// Rotation returns the local Euler rotation in radians.
	//
	// Returns:
	//   - common.Vec3: rotation around X, Y and Z
	Rotation() common.Vec3

	// SetRotation sets the local Euler rotation in radians.
	//
	// Parameters:
	//   - r: rotation around X, Y and Z
	SetRotation(r common.Vec3)

	// RotationSpeed returns the angular velocity applied by Advance, in radians per second.
	//
	// Returns:
	//   - common.Vec3: angular velocity per axis
	RotationSpeed() common.Vec3

	// SetRotationSpeed sets the angular velocity applied by Advance.
	//
	// Parameters:
	//   - s: angular velocity per axis in radians per second
	SetRotationSpeed(s common.Vec3)

	// Scale returns the local scale factors.
	//
	// Returns:
	//   - common.Vec3: scale per axis
	Scale() common.Vec3

	// SetScale sets the local scale factors.
	//
	// Parameters:
	//   - s: scale per axis
	SetScale(s common.Vec3)

	// Size returns the unscaled extents of the primitive (box dimensions, or
	// diameter/height for round shapes).
	//
	// Returns:
	//   - common.Vec3: primitive extents
	Size() common.Vec3

	// Color returns the base RGB color in [0, 1].
	//
	// Returns:
	//   - common.Vec3: RGB color
	Color() common.Vec3

	// SetColor sets the base RGB color.
	//
	// Parameters:
	//   - c: RGB color in [0, 1]
	SetColor(c common.Vec3)

	// Emissive returns the emissive intensity added on top of the base color.
	//
	// Returns:
	//   - float32: emissive intensity
	Emissive() float32

	// SetEmissive sets the emissive intensity.
	//
	// Parameters:
	//   - e: emissive intensity, 0 disables
	SetEmissive(e float32)

	// Parent returns the parent node, or nil for a root.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// Children returns a copy of the direct children list.
	//
	// Returns:
	//   - []GameObject: direct children in insertion order
	Children() []GameObject

	// AddChild attaches child under this node, detaching it from any previous parent.
	//
	// Parameters:
	//   - child: the node to attach
	AddChild(child GameObject)

	// RemoveChild detaches the direct child with the given identity.
	//
	// Parameters:
	//   - id: identity of the child to detach
	//
	// Returns:
	//   - bool: true if a child was removed
	RemoveChild(id uuid.UUID) bool

	// Find returns the node with the given identity in this subtree, including this node.
	//
	// Parameters:
	//   - id: identity to look up
	//
	// Returns:
	//   - GameObject: the node, or nil if not present
	Find(id uuid.UUID) GameObject

	// FindByName returns the first node in depth-first order with the given name.
	//
	// Parameters:
	//   - name: name to look up
	//
	// Returns:
	//   - GameObject: the node, or nil if not present
	FindByName(name string) GameObject

	// Traverse walks this subtree depth-first in pre-order. Returning false from fn
	// skips the children of the node it was called with.
	//
	// Parameters:
	//   - fn: visitor
	Traverse(fn func(GameObject) bool)

	// Advance applies RotationSpeed over dt seconds to every node in the subtree.
	//
	// Parameters:
	//   - dt: elapsed seconds
	Advance(dt float32)

	// LocalMatrix returns the node's transform relative to its parent.
	//
	// Returns:
	//   - [16]float32: column-major local matrix
	LocalMatrix() [16]float32

	// WorldMatrix composes the local transforms from the root down to this node.
	//
	// Returns:
	//   - [16]float32: column-major world matrix
	WorldMatrix() [16]float32

	// WorldPosition returns the world-space origin of this node.
	//
	// Returns:
	//   - common.Vec3: world position
	WorldPosition() common.Vec3

	// Clone deep-copies the subtree. Every copied node receives a fresh identity
	// and the copy has no parent.
	//
	// Returns:
	//   - GameObject: the detached copy
	Clone() GameObject
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new visible GameObject configured with the given options.
// Without options the node is an empty group at the origin.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		id:    uuid.New(),
		kind:  KindGroup,
		scale: common.Vec3{1, 1, 1},
		size:  common.Vec3{1, 1, 1},
		color: common.Vec3{1, 1, 1},
	}
	obj.visible.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

// NewGroup is shorthand for a named group node.
//
// Parameters:
//   - name: the group name
//   - options: additional options
//
// Returns:
//   - GameObject: the group
func NewGroup(name string, options ...GameObjectBuilderOption) GameObject {
	return NewGameObject(append([]GameObjectBuilderOption{WithName(name)}, options...)...)
}

// NewMesh is shorthand for a named mesh node drawing primitive p with extents size.
//
// Parameters:
//   - name: the mesh name
//   - p: the primitive to draw
//   - size: primitive extents
//   - options: additional options
//
// Returns:
//   - GameObject: the mesh
func NewMesh(name string, p Primitive, size common.Vec3, options ...GameObjectBuilderOption) GameObject {
	base := []GameObjectBuilderOption{WithName(name), WithPrimitive(p), WithSize(size)}
	return NewGameObject(append(base, options...)...)
}

func (g *gameObject) ID() uuid.UUID {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Kind() Kind {
	return g.kind
}

func (g *gameObject) Primitive() Primitive {
	return g.primitive
}

func (g *gameObject) Visible() bool {
	return g.visible.Load()
}

func (g *gameObject) SetVisible(visible bool) {
	g.visible.Store(visible)
}

func (g *gameObject) Position() common.Vec3 {
	return g.position
}

func (g *gameObject) SetPosition(p common.Vec3) {
	g.position = p
}

func (g *gameObject) Rotation() common.Vec3 {
	return g.rotation
}

func (g *gameObject) SetRotation(r common.Vec3) {
	g.rotation = r
}

func (g *gameObject) RotationSpeed() common.Vec3 {
	return g.rotationSpeed
}

func (g *gameObject) SetRotationSpeed(s common.Vec3) {
	g.rotationSpeed = s
}

func (g *gameObject) Scale() common.Vec3 {
	return g.scale
}

func (g *gameObject) SetScale(s common.Vec3) {
	g.scale = s
}

func (g *gameObject) Size() common.Vec3 {
	return g.size
}

func (g *gameObject) Color() common.Vec3 {
	return g.color
}

func (g *gameObject) SetColor(c common.Vec3) {
	g.color = c
}

func (g *gameObject) Emissive() float32 {
	return g.emissive
}

func (g *gameObject) SetEmissive(e float32) {
	g.emissive = e
}

func (g *gameObject) Parent() GameObject {
	if g.parent == nil {
		return nil
	}
	return g.parent
}

func (g *gameObject) Children() []GameObject {
	out := make([]GameObject, len(g.children))
	for i, c := range g.children {
		out[i] = c
	}
	return out
}

func (g *gameObject) AddChild(child GameObject) {
	c, ok := child.(*gameObject)
	if !ok || c == nil || c == g {
		return
	}
	if c.parent != nil {
		c.parent.RemoveChild(c.id)
	}
	c.parent = g
	g.children = append(g.children, c)
}

func (g *gameObject) RemoveChild(id uuid.UUID) bool {
	for i, c := range g.children {
		if c.id == id {
			c.parent = nil
			g.children = append(g.children[:i], g.children[i+1:]...)
			return true
		}
	}
	return false
}

func (g *gameObject) Find(id uuid.UUID) GameObject {
	var found GameObject
	g.Traverse(func(n GameObject) bool {
		if found != nil {
			return false
		}
		if n.ID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

func (g *gameObject) FindByName(name string) GameObject {
	var found GameObject
	g.Traverse(func(n GameObject) bool {
		if found != nil {
			return false
		}
		if n.Name() == name {
			found = n
			return false
		}
		return true
	})
	return found
}

func (g *gameObject) Traverse(fn func(GameObject) bool) {
	if !fn(g) {
		return
	}
	for _, c := range g.children {
		c.Traverse(fn)
	}
}

func (g *gameObject) Advance(dt float32) {
	if g.rotationSpeed != (common.Vec3{}) {
		g.rotation = g.rotation.Add(g.rotationSpeed.Scale(dt))
	}
	for _, c := range g.children {
		c.Advance(dt)
	}
}

func (g *gameObject) LocalMatrix() [16]float32 {
	var m [16]float32
	common.BuildModelMatrix(m[:], g.position, g.rotation, g.scale)
	return m
}

func (g *gameObject) WorldMatrix() [16]float32 {
	m := g.LocalMatrix()
	for p := g.parent; p != nil; p = p.parent {
		pm := p.LocalMatrix()
		common.Mul4(m[:], pm[:], m[:])
	}
	return m
}

func (g *gameObject) WorldPosition() common.Vec3 {
	m := g.WorldMatrix()
	return common.Vec3{m[12], m[13], m[14]}
}

func (g *gameObject) Clone() GameObject {
	return g.clone(nil)
}

func (g *gameObject) clone(parent *gameObject) *gameObject {
	c := &gameObject{
		id:            uuid.New(),
		name:          g.name,
		kind:          g.kind,
		primitive:     g.primitive,
		position:      g.position,
		rotation:      g.rotation,
		rotationSpeed: g.rotationSpeed,
		scale:         g.scale,
		size:          g.size,
		color:         g.color,
		emissive:      g.emissive,
		parent:        parent,
	}
	c.visible.Store(g.visible.Load())
	if len(g.children) > 0 {
		c.children = make([]*gameObject, 0, len(g.children))
		for _, child := range g.children {
			c.children = append(c.children, child.clone(c))
		}
	}
	return c
}
