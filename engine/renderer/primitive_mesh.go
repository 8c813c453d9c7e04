package renderer

import (
	"math"

	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
)

// meshVertex is the interleaved vertex layout consumed by the unlit shader.
type meshVertex struct {
	Position [3]float32
	Normal   [3]float32
}

// meshVertexStride is the byte size of meshVertex.
const meshVertexStride = 24

// meshData is CPU-side geometry for one unit primitive.
type meshData struct {
	vertices []meshVertex
	indices  []uint32
}

// primitiveSegments controls the tessellation of round primitives.
const primitiveSegments = 24

// buildPrimitiveMesh returns unit geometry for p: every primitive fits the box
// [-0.5, 0.5]^3 so a node's Size can be applied as a plain scale.
func buildPrimitiveMesh(p game_object.Primitive) meshData {
	switch p {
	case game_object.PrimitiveBox:
		return buildBoxMesh()
	case game_object.PrimitiveSphere:
		return buildSphereMesh(primitiveSegments, primitiveSegments/2)
	case game_object.PrimitiveCylinder:
		return buildConeMesh(primitiveSegments, 0.5)
	case game_object.PrimitiveCone:
		return buildConeMesh(primitiveSegments, 0)
	case game_object.PrimitivePlane:
		return buildPlaneMesh()
	default:
		return meshData{}
	}
}

// buildBoxMesh returns 24 vertices (4 per face, so each face has a flat normal) and 36 indices.
// All outward faces wind counter-clockwise.
func buildBoxMesh() meshData {
	faces := []struct {
		normal, u, v [3]float32
	}{
		{[3]float32{0, 0, 1}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},  // Front  (+Z)
		{[3]float32{0, 0, -1}, [3]float32{-1, 0, 0}, [3]float32{0, 1, 0}}, // Back   (-Z)
		{[3]float32{1, 0, 0}, [3]float32{0, 0, -1}, [3]float32{0, 1, 0}},  // Right  (+X)
		{[3]float32{-1, 0, 0}, [3]float32{0, 0, 1}, [3]float32{0, 1, 0}},  // Left   (-X)
		{[3]float32{0, 1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, -1}},  // Top    (+Y)
		{[3]float32{0, -1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, 1}},  // Bottom (-Y)
	}

	var m meshData
	for _, f := range faces {
		base := uint32(len(m.vertices))
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			var pos [3]float32
			for i := 0; i < 3; i++ {
				pos[i] = 0.5*f.normal[i] + 0.5*c[0]*f.u[i] + 0.5*c[1]*f.v[i]
			}
			m.vertices = append(m.vertices, meshVertex{Position: pos, Normal: f.normal})
		}
		m.indices = append(m.indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// buildPlaneMesh returns a unit quad in the XZ plane facing +Y.
func buildPlaneMesh() meshData {
	up := [3]float32{0, 1, 0}
	return meshData{
		vertices: []meshVertex{
			{Position: [3]float32{-0.5, 0, 0.5}, Normal: up},
			{Position: [3]float32{0.5, 0, 0.5}, Normal: up},
			{Position: [3]float32{0.5, 0, -0.5}, Normal: up},
			{Position: [3]float32{-0.5, 0, -0.5}, Normal: up},
		},
		indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// buildSphereMesh returns a UV sphere of radius 0.5.
func buildSphereMesh(slices, stacks int) meshData {
	var m meshData
	for st := 0; st <= stacks; st++ {
		phi := math.Pi * float64(st) / float64(stacks)
		sp, cp := math.Sincos(phi)
		for sl := 0; sl <= slices; sl++ {
			theta := 2 * math.Pi * float64(sl) / float64(slices)
			sth, cth := math.Sincos(theta)
			n := [3]float32{float32(sp * cth), float32(cp), float32(sp * sth)}
			m.vertices = append(m.vertices, meshVertex{
				Position: [3]float32{n[0] * 0.5, n[1] * 0.5, n[2] * 0.5},
				Normal:   n,
			})
		}
	}
	row := uint32(slices + 1)
	for st := 0; st < stacks; st++ {
		for sl := 0; sl < slices; sl++ {
			a := uint32(st)*row + uint32(sl)
			b := a + row
			m.indices = append(m.indices, a, a+1, b, a+1, b+1, b)
		}
	}
	return m
}

// buildConeMesh returns a capped frustum of height 1 with bottom radius 0.5 and the
// given top radius. A top radius of 0.5 yields a cylinder and 0 yields a cone.
func buildConeMesh(slices int, topRadius float32) meshData {
	var m meshData
	const bottomRadius = 0.5
	slope := (bottomRadius - topRadius) // rise over run of the side normal

	// side
	for sl := 0; sl <= slices; sl++ {
		theta := 2 * math.Pi * float64(sl) / float64(slices)
		s, c := math.Sincos(theta)
		n := [3]float32{float32(c), slope, float32(s)}
		l := float32(math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
		n = [3]float32{n[0] / l, n[1] / l, n[2] / l}
		m.vertices = append(m.vertices,
			meshVertex{Position: [3]float32{float32(c) * bottomRadius, -0.5, float32(s) * bottomRadius}, Normal: n},
			meshVertex{Position: [3]float32{float32(c) * topRadius, 0.5, float32(s) * topRadius}, Normal: n},
		)
	}
	for sl := 0; sl < slices; sl++ {
		b0 := uint32(sl * 2)
		m.indices = append(m.indices, b0, b0+1, b0+2, b0+1, b0+3, b0+2)
	}

	// caps
	cap := func(y, radius float32, normal [3]float32) {
		if radius == 0 {
			return
		}
		center := uint32(len(m.vertices))
		m.vertices = append(m.vertices, meshVertex{Position: [3]float32{0, y, 0}, Normal: normal})
		for sl := 0; sl <= slices; sl++ {
			theta := 2 * math.Pi * float64(sl) / float64(slices)
			s, c := math.Sincos(theta)
			m.vertices = append(m.vertices, meshVertex{
				Position: [3]float32{float32(c) * radius, y, float32(s) * radius},
				Normal:   normal,
			})
		}
		for sl := uint32(0); sl < uint32(slices); sl++ {
			m.indices = append(m.indices, center, center+1+sl, center+2+sl)
		}
	}
	cap(-0.5, bottomRadius, [3]float32{0, -1, 0})
	cap(0.5, topRadius, [3]float32{0, 1, 0})
	return m
}
