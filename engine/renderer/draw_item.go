package renderer

import (
	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
	"github.com/google/uuid"
)

// DrawItem is a flattened snapshot of one mesh node taken when it is submitted.
// Model already includes the primitive's unscaled extents.
type DrawItem struct {
	ID        uuid.UUID
	Name      string
	Primitive game_object.Primitive
	Model     [16]float32
	Color     common.Vec3
	Emissive  float32
}

// newDrawItem snapshots obj using the supplied world matrix.
func newDrawItem(obj game_object.GameObject, world [16]float32) DrawItem {
	item := DrawItem{
		ID:        obj.ID(),
		Name:      obj.Name(),
		Primitive: obj.Primitive(),
		Color:     obj.Color(),
		Emissive:  obj.Emissive(),
	}
	var extents [16]float32
	size := obj.Size()
	if item.Primitive == game_object.PrimitivePlane {
		// planes are flat in XZ; keep the normal axis unscaled
		size[1] = 1
	}
	common.Identity(extents[:])
	extents[0], extents[5], extents[10] = size[0], size[1], size[2]
	common.Mul4(item.Model[:], world[:], extents[:])
	return item
}
