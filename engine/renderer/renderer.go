package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
	"github.com/Carmen-Shannon/oxy-tour/engine/window"
	"go.uber.org/zap"
)

// ErrFrameInFlight is returned by BeginFrame when the previous frame was not ended.
var ErrFrameInFlight = errors.New("renderer: frame already in flight")

// FrameStats summarizes renderer activity.
type FrameStats struct {
	Frames         uint64
	DrawCount      int
	OverlayOpacity float32
}

type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	logger      *zap.Logger

	clearColor     common.Vec3
	overlayOpacity float32
	viewProjection [16]float32

	inFrame bool
	items   []DrawItem
	stats   FrameStats

	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer turns the visible meshes of a scene into frames on a backend.
// A frame is BeginFrame, any number of Draw calls, EndFrame, then Present.
type Renderer interface {
	// Resize reconfigures the surface for a new framebuffer size.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode. A call to Resize is required for it to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the background color used when a frame begins.
	//
	// Parameters:
	//   - c: RGB color in [0, 1]
	SetClearColor(c common.Vec3)

	// ClearColor returns the background color.
	//
	// Returns:
	//   - common.Vec3: RGB color
	ClearColor() common.Vec3

	// SetOverlayOpacity sets the alpha of the full-screen black overlay drawn over every frame.
	// Values are clamped to [0, 1]; 0 disables the overlay.
	//
	// Parameters:
	//   - alpha: overlay opacity
	SetOverlayOpacity(alpha float32)

	// OverlayOpacity returns the current overlay alpha.
	//
	// Returns:
	//   - float32: overlay opacity in [0, 1]
	OverlayOpacity() float32

	// SetViewProjection sets the camera matrix used for the items of the current frame.
	//
	// Parameters:
	//   - vp: column-major view-projection matrix
	SetViewProjection(vp [16]float32)

	// BeginFrame acquires the frame target.
	//
	// Returns:
	//   - error: ErrFrameInFlight if the previous frame was not ended, or a backend error
	BeginFrame() error

	// Draw queues a mesh for the current frame. Draws outside a frame and non-mesh nodes are ignored.
	//
	// Parameters:
	//   - obj: the mesh node
	//   - world: the node's world matrix
	Draw(obj game_object.GameObject, world [16]float32)

	// EndFrame submits the queued items and the overlay to the backend.
	EndFrame()

	// Present presents the finished frame.
	Present()

	// Stats returns activity counters.
	//
	// Returns:
	//   - FrameStats: counters as of the last EndFrame
	Stats() FrameStats

	// Release frees backend resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type.
// The WGPU backend draws into the window's surface; the headless backend ignores win,
// which may then be nil.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - win: the window providing the platform surface
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		logger:      zap.NewNop(),
		clearColor:  common.Vec3{0.53, 0.81, 0.92},
	}
	common.Identity(r.viewProjection[:])

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	width, height := 1, 1
	if r.backend == nil {
		switch backendType {
		case BackendTypeHeadless:
			r.backend = NewHeadlessBackend()
		case BackendTypeWGPU:
			fallthrough
		default:
			if win == nil {
				panic("renderer: wgpu backend requires a window")
			}
			msaa := MSAA4x
			if r.pendingMSAA != nil {
				msaa = *r.pendingMSAA
			}
			r.backend = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
		}
	}
	if win != nil {
		width, height = win.Width(), win.Height()
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.backend.ConfigureSurface(width, height)
	return r
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(c common.Vec3) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = c
}

func (r *renderer) ClearColor() common.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor
}

func (r *renderer) SetOverlayOpacity(alpha float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overlayOpacity = common.Clamp(alpha, 0, 1)
}

func (r *renderer) OverlayOpacity() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overlayOpacity
}

func (r *renderer) SetViewProjection(vp [16]float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewProjection = vp
}

func (r *renderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inFrame {
		return ErrFrameInFlight
	}
	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	r.inFrame = true
	r.items = r.items[:0]
	return nil
}

func (r *renderer) Draw(obj game_object.GameObject, world [16]float32) {
	if obj == nil || obj.Kind() != game_object.KindMesh {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inFrame {
		return
	}
	r.items = append(r.items, newDrawItem(obj, world))
}

func (r *renderer) EndFrame() {
	r.mu.Lock()
	if !r.inFrame {
		r.mu.Unlock()
		return
	}
	frame := FrameDescriptor{
		ClearColor:     r.clearColor,
		ViewProjection: r.viewProjection,
		Items:          r.items,
		OverlayOpacity: r.overlayOpacity,
	}
	r.inFrame = false
	r.stats.Frames++
	r.stats.DrawCount = len(r.items)
	r.stats.OverlayOpacity = r.overlayOpacity
	r.mu.Unlock()

	r.backend.Submit(frame)
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer) Release() {
	r.backend.Release()
	r.logger.Debug("renderer released", zap.Uint64("frames", r.stats.Frames))
}
