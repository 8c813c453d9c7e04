package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSphere_IntersectRay(t *testing.T) {
	ray := Ray{Origin: Vec3{0, 0, 0}, Direction: Vec3{0, 0, -1}}

	t.Run("Hit In Front", func(t *testing.T) {
		d, ok := Sphere{Center: Vec3{0, 0, -5}, Radius: 1}.IntersectRay(ray)
		require.True(t, ok)
		require.InDelta(t, 4, d, 1e-5)
	})

	t.Run("Behind Origin Misses", func(t *testing.T) {
		_, ok := Sphere{Center: Vec3{0, 0, 5}, Radius: 1}.IntersectRay(ray)
		require.False(t, ok)
	})

	t.Run("Off Axis Misses", func(t *testing.T) {
		_, ok := Sphere{Center: Vec3{3, 0, -5}, Radius: 1}.IntersectRay(ray)
		require.False(t, ok)
	})

	t.Run("Origin Inside Returns Exit", func(t *testing.T) {
		d, ok := Sphere{Center: Vec3{0, 0, 0}, Radius: 2}.IntersectRay(ray)
		require.True(t, ok)
		require.InDelta(t, 2, d, 1e-5)
	})
}

func TestAABB_IntersectRay(t *testing.T) {
	box := NewAABB(Vec3{0, 0, -5}, Vec3{1, 0.1, 1})

	t.Run("Hit Front Face", func(t *testing.T) {
		d, ok := box.IntersectRay(Ray{Origin: Vec3{0, 0, 0}, Direction: Vec3{0, 0, -1}})
		require.True(t, ok)
		require.InDelta(t, 4.5, d, 1e-5)
	})

	t.Run("Parallel Outside Slab Misses", func(t *testing.T) {
		_, ok := box.IntersectRay(Ray{Origin: Vec3{0, 1, 0}, Direction: Vec3{0, 0, -1}})
		require.False(t, ok)
	})

	t.Run("Behind Origin Misses", func(t *testing.T) {
		_, ok := box.IntersectRay(Ray{Origin: Vec3{0, 0, 0}, Direction: Vec3{0, 0, 1}})
		require.False(t, ok)
	})

	t.Run("Origin Inside", func(t *testing.T) {
		d, ok := box.IntersectRay(Ray{Origin: Vec3{0, 0, -5}, Direction: Vec3{1, 0, 0}})
		require.True(t, ok)
		require.Equal(t, float32(0), d)
		require.True(t, box.Contains(Vec3{0, 0, -5}))
	})
}

func TestVec3(t *testing.T) {
	a := Vec3{1, 0, 0}
	b := Vec3{0, 1, 0}

	require.Equal(t, Vec3{0, 0, 1}, a.Cross(b))
	require.Equal(t, float32(0), a.Dot(b))
	require.Equal(t, Vec3{1, 1, 0}, a.Add(b))
	require.InDelta(t, 1, Vec3{3, 4, 0}.Normalize().Length(), 1e-6)
	require.Equal(t, Vec3{}, Vec3{}.Normalize())
}
