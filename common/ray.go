package common

import "math"

// Ray is a half-line starting at Origin and extending along Direction.
// Direction is expected to be unit length; distances reported by the
// intersection helpers are measured in Direction units.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Sphere is a bounding sphere in world space.
type Sphere struct {
	Center Vec3
	Radius float32
}

// IntersectRay returns the distance along r to the nearest point on the sphere.
// When the origin lies inside the sphere the exit distance is returned.
// Intersections behind the ray origin are reported as misses.
//
// Parameters:
//   - r: the ray to test
//
// Returns:
//   - float32: distance along the ray to the hit point
//   - bool: true if the ray hits the sphere
func (s Sphere) IntersectRay(r Ray) (float32, bool) {
	oc := r.Origin.Sub(s.Center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB builds a box centred on center with the given full extents.
func NewAABB(center, size Vec3) AABB {
	half := size.Scale(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// IntersectRay returns the entry distance of r into the box using the slab method.
// When the origin is inside the box, 0 is returned.
//
// Parameters:
//   - r: the ray to test
//
// Returns:
//   - float32: distance along the ray to the entry point
//   - bool: true if the ray hits the box in front of its origin
func (b AABB) IntersectRay(r Ray) (float32, bool) {
	tMin := float32(0)
	tMax := float32(math.MaxFloat32)
	for i := 0; i < 3; i++ {
		if r.Direction[i] > -1e-8 && r.Direction[i] < 1e-8 {
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / r.Direction[i]
		t0 := (b.Min[i] - r.Origin[i]) * inv
		t1 := (b.Max[i] - r.Origin[i]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}
