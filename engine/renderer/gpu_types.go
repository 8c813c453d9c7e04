package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// meshShaderSource is the WGSL for the lit mesh pipeline.
// Its Instance struct matches GPUInstance exactly.
//
//go:embed assets/mesh.wgsl
var meshShaderSource string

// overlayShaderSource is the WGSL for the full-screen fade pipeline.
//
//go:embed assets/overlay.wgsl
var overlayShaderSource string

// GPUInstance is the per-draw record stored in the instance storage buffer.
// Size: 144 bytes (two mat4x4<f32> and one vec4<f32>, std430 aligned).
type GPUInstance struct {
	MVP      [16]float32 // offset 0: clip-space transform
	Model    [16]float32 // offset 64: world transform, used for normals
	Color    [3]float32  // offset 128: base RGB color
	Emissive float32     // offset 140: added light in units of Color
}

// gpuInstanceSize is the byte size of one GPUInstance.
const gpuInstanceSize = 144

// Size returns the size of the GPUInstance struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// MarshalInto writes the instance into buf, which must hold at least gpuInstanceSize bytes.
//
// Parameters:
//   - buf: destination slice
func (g *GPUInstance) MarshalInto(buf []byte) {
	off := 0
	put := func(f float32) {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(f))
		off += 4
	}
	for _, f := range g.MVP {
		put(f)
	}
	for _, f := range g.Model {
		put(f)
	}
	for _, f := range g.Color {
		put(f)
	}
	put(g.Emissive)
}

// GPUOverlayParams is the uniform for the overlay fragment shader.
// Size: 16 bytes (one vec4<f32>).
type GPUOverlayParams struct {
	OverlayColor [4]float32 // offset 0: RGBA written to every fragment
}

// Marshal serializes the GPUOverlayParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUOverlayParams) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.OverlayColor[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.OverlayColor[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.OverlayColor[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.OverlayColor[3]))
	return buf
}
