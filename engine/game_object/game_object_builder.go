package game_object

import (
	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/google/uuid"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID overrides the generated identity of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uuid.UUID) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the name of the GameObject.
//
// Parameters:
//   - name: human-readable node name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithPrimitive turns the node into a mesh drawing p.
//
// Parameters:
//   - p: the primitive shape
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the primitive
func WithPrimitive(p Primitive) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.primitive = p
		if p == PrimitiveNone {
			obj.kind = KindGroup
		} else {
			obj.kind = KindMesh
		}
	}
}

// WithSize sets the unscaled extents of the primitive.
//
// Parameters:
//   - size: primitive extents
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the size
func WithSize(size common.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.size = size
	}
}

// WithVisible sets whether the GameObject starts visible.
//
// Parameters:
//   - visible: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the visibility
func WithVisible(visible bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.visible.Store(visible)
	}
}

// WithPosition sets the local position of the GameObject.
//
// Parameters:
//   - p: local position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(p common.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = p
	}
}

// WithScale sets the local scale of the GameObject.
//
// Parameters:
//   - s: scale per axis
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithScale(s common.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = s
	}
}

// WithRotation sets the local Euler rotation of the GameObject.
//
// Parameters:
//   - r: rotation around X, Y and Z in radians
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation
func WithRotation(r common.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = r
	}
}

// WithRotationSpeed sets the angular velocity applied each frame by Advance.
//
// Parameters:
//   - s: angular velocity per axis in radians per second
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation speed
func WithRotationSpeed(s common.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotationSpeed = s
	}
}

// WithColor sets the base RGB color.
//
// Parameters:
//   - c: RGB color in [0, 1]
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the color
func WithColor(c common.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.color = c
	}
}

// WithHexColor sets the base color from a 0xRRGGBB value.
//
// Parameters:
//   - hex: packed RGB color
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the color
func WithHexColor(hex uint32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.color = HexColor(hex)
	}
}

// WithEmissive sets the emissive intensity.
//
// Parameters:
//   - e: emissive intensity
//
// Returns:
//   - GameObjectBuilderOption: functional option to set emission
func WithEmissive(e float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.emissive = e
	}
}

// WithChildren attaches the given nodes as children.
//
// Parameters:
//   - children: nodes to attach in order
//
// Returns:
//   - GameObjectBuilderOption: functional option to attach children
func WithChildren(children ...GameObject) GameObjectBuilderOption {
	return func(obj *gameObject) {
		for _, c := range children {
			obj.AddChild(c)
		}
	}
}

// HexColor unpacks a 0xRRGGBB value into an RGB vector in [0, 1].
func HexColor(hex uint32) common.Vec3 {
	return common.Vec3{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}
