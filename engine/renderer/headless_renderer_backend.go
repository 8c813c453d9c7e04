package renderer

import "sync"

// FrameRecord is one frame captured by the headless backend.
type FrameRecord struct {
	Frame   FrameDescriptor
	Width   int
	Height  int
	Present bool
}

// HeadlessBackend is a RendererBackend that keeps the most recent frame in memory.
// It is used when no GPU or window is available and by tests that inspect draw lists.
type HeadlessBackend interface {
	RendererBackend

	// LastFrame returns a copy of the most recently submitted frame.
	//
	// Returns:
	//   - FrameRecord: the frame, zero if none was submitted
	LastFrame() FrameRecord

	// FrameCount returns how many frames were ended.
	//
	// Returns:
	//   - uint64: ended frame count
	FrameCount() uint64
}

type headlessBackendImpl struct {
	mu *sync.Mutex

	width, height int
	presentMode   PresentMode

	inFrame bool
	current FrameRecord
	last    FrameRecord
	frames  uint64
}

var _ HeadlessBackend = &headlessBackendImpl{}

// NewHeadlessBackend creates an in-memory backend.
//
// Returns:
//   - HeadlessBackend: the backend
func NewHeadlessBackend() HeadlessBackend {
	return &headlessBackendImpl{mu: &sync.Mutex{}}
}

func (h *headlessBackendImpl) ConfigureSurface(width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.width, h.height = width, height
}

func (h *headlessBackendImpl) SetPresentMode(mode PresentMode) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.presentMode = mode
}

func (h *headlessBackendImpl) BeginFrame() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.inFrame {
		return ErrFrameInFlight
	}
	h.inFrame = true
	h.current = FrameRecord{Width: h.width, Height: h.height}
	return nil
}

func (h *headlessBackendImpl) Submit(frame FrameDescriptor) {
	h.mu.Lock()
	defer h.mu.Unlock()
	frame.Items = append([]DrawItem(nil), frame.Items...)
	h.current.Frame = frame
}

func (h *headlessBackendImpl) EndFrame() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.inFrame {
		return
	}
	h.inFrame = false
	h.frames++
	h.last = h.current
}

func (h *headlessBackendImpl) Present() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last.Present = true
}

func (h *headlessBackendImpl) Release() {}

func (h *headlessBackendImpl) LastFrame() FrameRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.last
	out.Frame.Items = append([]DrawItem(nil), h.last.Frame.Items...)
	return out
}

func (h *headlessBackendImpl) FrameCount() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}
