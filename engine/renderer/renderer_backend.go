package renderer

import "github.com/Carmen-Shannon/oxy-tour/common"

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeHeadless selects an in-memory backend that records frames without a GPU.
	BackendTypeHeadless
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// FrameDescriptor is everything a backend needs to produce one frame.
type FrameDescriptor struct {
	ClearColor     common.Vec3
	ViewProjection [16]float32
	Items          []DrawItem

	// OverlayOpacity is the alpha of the black full-screen fade drawn after all items.
	OverlayOpacity float32
}

// RendererBackend is the interface a Renderer drives once per frame.
// BeginFrame, Submit, EndFrame and Present are always called in that order from one goroutine.
type RendererBackend interface {
	// ConfigureSurface (re)creates size-dependent resources.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode. Takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// BeginFrame acquires the frame target.
	//
	// Returns:
	//   - error: an error if the target could not be acquired
	BeginFrame() error

	// Submit encodes the frame.
	//
	// Parameters:
	//   - frame: the frame contents
	Submit(frame FrameDescriptor)

	// EndFrame finishes encoding and hands the frame to the device queue.
	EndFrame()

	// Present shows the finished frame.
	Present()

	// Release frees every resource owned by the backend.
	Release()
}
