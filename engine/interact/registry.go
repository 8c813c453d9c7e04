// Package interact keeps a set of pickable shapes keyed by node identity and resolves
// pointer rays against them.
package interact

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/google/uuid"
)

// Shape is a collider that can be tested against a ray.
// common.Sphere and common.AABB satisfy it.
type Shape interface {
	IntersectRay(r common.Ray) (float32, bool)
}

// Hit is the result of a successful pick.
type Hit[T any] struct {
	ID       uuid.UUID
	Distance float32
	Point    common.Vec3
	Payload  T
}

// Registry maps identities to colliders and payloads and answers nearest-hit queries.
// Entries are kept in registration order; among hits at the same distance the earliest
// registration wins, so results are stable for a fixed set of entries.
type Registry[T any] interface {
	// Register adds an entry or replaces the shape and payload of an existing one.
	// A replaced entry keeps its original registration order.
	//
	// Parameters:
	//   - id: entry identity
	//   - shape: collider
	//   - payload: value returned in hits
	Register(id uuid.UUID, shape Shape, payload T)

	// Unregister removes an entry. The hover state is cleared if it referenced the entry.
	//
	// Parameters:
	//   - id: entry identity
	//
	// Returns:
	//   - bool: true if the entry existed
	Unregister(id uuid.UUID) bool

	// Clear removes every entry and the hover state.
	Clear()

	// Len returns the number of entries.
	//
	// Returns:
	//   - int: entry count
	Len() int

	// IDs returns entry identities in registration order.
	//
	// Returns:
	//   - []uuid.UUID: identities
	IDs() []uuid.UUID

	// Get returns the payload of an entry.
	//
	// Parameters:
	//   - id: entry identity
	//
	// Returns:
	//   - T: the payload
	//   - bool: true if the entry exists
	Get(id uuid.UUID) (T, bool)

	// SetShape replaces the collider of an existing entry, used for animated markers.
	//
	// Parameters:
	//   - id: entry identity
	//   - shape: new collider
	//
	// Returns:
	//   - bool: true if the entry exists
	SetShape(id uuid.UUID, shape Shape) bool

	// SetFrustum restricts picking to entries whose bounds intersect f. Nil disables culling.
	// Shapes other than common.Sphere and common.AABB are never culled.
	//
	// Parameters:
	//   - f: view frustum or nil
	SetFrustum(f *common.Frustum)

	// Pick returns the nearest entry hit by r.
	//
	// Parameters:
	//   - r: world-space ray with unit direction
	//
	// Returns:
	//   - Hit[T]: the nearest hit
	//   - bool: false when nothing was hit
	Pick(r common.Ray) (Hit[T], bool)

	// Hover picks with r and records the result as the hovered entry.
	//
	// Parameters:
	//   - r: world-space ray with unit direction
	//
	// Returns:
	//   - Hit[T]: the hovered entry, zero when none
	//   - bool: true when an entry is hovered
	//   - bool: true when the hovered entry differs from the previous call
	Hover(r common.Ray) (Hit[T], bool, bool)

	// Hovered returns the identity of the hovered entry.
	//
	// Returns:
	//   - uuid.UUID: hovered identity, uuid.Nil when none
	//   - bool: true when an entry is hovered
	Hovered() (uuid.UUID, bool)

	// ClearHover forgets the hovered entry.
	//
	// Returns:
	//   - bool: true if an entry was hovered
	ClearHover() bool
}

type entry[T any] struct {
	id      uuid.UUID
	shape   Shape
	payload T
}

type registryImpl[T any] struct {
	mu *sync.Mutex

	entries []entry[T]
	index   map[uuid.UUID]int
	frustum *common.Frustum

	hovered    uuid.UUID
	hasHovered bool
}

var _ Registry[int] = &registryImpl[int]{}

// NewRegistry creates an empty Registry.
//
// Returns:
//   - Registry[T]: the registry
func NewRegistry[T any]() Registry[T] {
	return &registryImpl[T]{
		mu:    &sync.Mutex{},
		index: make(map[uuid.UUID]int),
	}
}

func (r *registryImpl[T]) Register(id uuid.UUID, shape Shape, payload T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i, ok := r.index[id]; ok {
		r.entries[i].shape = shape
		r.entries[i].payload = payload
		return
	}
	r.index[id] = len(r.entries)
	r.entries = append(r.entries, entry[T]{id: id, shape: shape, payload: payload})
}

func (r *registryImpl[T]) Unregister(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return false
	}
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.entries); j++ {
		r.index[r.entries[j].id] = j
	}
	if r.hasHovered && r.hovered == id {
		r.hovered, r.hasHovered = uuid.Nil, false
	}
	return true
}

func (r *registryImpl[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.index = make(map[uuid.UUID]int)
	r.hovered, r.hasHovered = uuid.Nil, false
}

func (r *registryImpl[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *registryImpl[T]) IDs() []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]uuid.UUID, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.id
	}
	return ids
}

func (r *registryImpl[T]) Get(id uuid.UUID) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return r.entries[i].payload, true
}

func (r *registryImpl[T]) SetShape(id uuid.UUID, shape Shape) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return false
	}
	r.entries[i].shape = shape
	return true
}

func (r *registryImpl[T]) SetFrustum(f *common.Frustum) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f == nil {
		r.frustum = nil
		return
	}
	copied := *f
	r.frustum = &copied
}

func (r *registryImpl[T]) Pick(ray common.Ray) (Hit[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pick(ray)
}

func (r *registryImpl[T]) Hover(ray common.Ray) (Hit[T], bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hit, ok := r.pick(ray)
	var changed bool
	switch {
	case ok:
		changed = !r.hasHovered || r.hovered != hit.ID
		r.hovered, r.hasHovered = hit.ID, true
	default:
		changed = r.hasHovered
		r.hovered, r.hasHovered = uuid.Nil, false
	}
	return hit, ok, changed
}

func (r *registryImpl[T]) Hovered() (uuid.UUID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hovered, r.hasHovered
}

func (r *registryImpl[T]) ClearHover() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	was := r.hasHovered
	r.hovered, r.hasHovered = uuid.Nil, false
	return was
}

// pick scans entries in registration order keeping the strictly nearest hit.
// Caller must hold the mutex.
func (r *registryImpl[T]) pick(ray common.Ray) (Hit[T], bool) {
	var best Hit[T]
	found := false
	for _, e := range r.entries {
		if r.frustum != nil && !inFrustum(*r.frustum, e.shape) {
			continue
		}
		d, ok := e.shape.IntersectRay(ray)
		if !ok {
			continue
		}
		if !found || d < best.Distance {
			best = Hit[T]{ID: e.id, Distance: d, Point: ray.At(d), Payload: e.payload}
			found = true
		}
	}
	return best, found
}

// inFrustum reports whether the bounding sphere of s touches f.
func inFrustum(f common.Frustum, s Shape) bool {
	switch v := s.(type) {
	case common.Sphere:
		return f.IntersectsSphere(v)
	case common.AABB:
		center := v.Min.Add(v.Max).Scale(0.5)
		radius := v.Max.Sub(v.Min).Length() * 0.5
		return f.IntersectsSphere(common.Sphere{Center: center, Radius: radius})
	default:
		return true
	}
}
