package common

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   Vec3
	Distance float32
}

// SignedDistance returns the signed distance from p to the plane. Positive values lie on the normal side.
func (p Plane) SignedDistance(v Vec3) float32 {
	return p.Normal.Dot(v) + p.Distance
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustumFromMatrix extracts frustum planes from a view-projection matrix.
// The matrix should be the combined Projection * View matrix with WebGPU clip depth in [0, 1].
// Uses the Gribb/Hartmann method for plane extraction.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: 16 float32 values representing the view-projection matrix (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj []float32) Frustum {
	// For column-major matrix M, row i is (M[i], M[4+i], M[8+i], M[12+i])
	row := func(i int) (Vec3, float32) {
		return Vec3{viewProj[i], viewProj[4+i], viewProj[8+i]}, viewProj[12+i]
	}
	r0, d0 := row(0)
	r1, d1 := row(1)
	r2, d2 := row(2)
	r3, d3 := row(3)

	var f Frustum
	f.Planes[FrustumLeft] = Plane{Normal: r3.Add(r0), Distance: d3 + d0}
	f.Planes[FrustumRight] = Plane{Normal: r3.Sub(r0), Distance: d3 - d0}
	f.Planes[FrustumBottom] = Plane{Normal: r3.Add(r1), Distance: d3 + d1}
	f.Planes[FrustumTop] = Plane{Normal: r3.Sub(r1), Distance: d3 - d1}
	// depth range is [0, 1] so the near plane is row2 alone
	f.Planes[FrustumNear] = Plane{Normal: r2, Distance: d2}
	f.Planes[FrustumFar] = Plane{Normal: r3.Sub(r2), Distance: d3 - d2}

	for i := range f.Planes {
		f.normalizePlane(i)
	}

	return f
}

// IntersectsSphere reports whether the sphere is at least partially inside the frustum.
//
// Parameters:
//   - s: the bounding sphere to test
//
// Returns:
//   - bool: false only when the sphere lies entirely outside one of the planes
func (f Frustum) IntersectsSphere(s Sphere) bool {
	for _, p := range f.Planes {
		if p.SignedDistance(s.Center) < -s.Radius {
			return false
		}
	}
	return true
}

// normalizePlane normalizes a frustum plane so that the normal has unit length.
func (f *Frustum) normalizePlane(index int) {
	p := &f.Planes[index]
	length := p.Normal.Length()
	if length > 0 {
		invLen := 1.0 / length
		p.Normal = p.Normal.Scale(invLen)
		p.Distance *= invLen
	}
}
