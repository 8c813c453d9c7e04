package input

import "github.com/Carmen-Shannon/oxy-tour/common"

// Event is one input occurrence. The concrete types are EventPointerMove,
// EventPointerClick, EventKeyDown, EventKeyUp and EventResize.
type Event interface {
	isEvent()
}

// EventPointerMove reports the pointer position in normalized surface coordinates:
// x grows to the right and y grows upward, both in [-1, 1].
type EventPointerMove struct {
	X, Y float32
}

// EventPointerClick reports a primary button press at the last pointer position.
type EventPointerClick struct{}

// EventKeyDown reports a key press. Auto-repeat presses are delivered again.
type EventKeyDown struct {
	Key Key
}

// EventKeyUp reports a key release.
type EventKeyUp struct {
	Key Key
}

// EventResize reports a new framebuffer size in pixels.
type EventResize struct {
	Width, Height int
}

func (EventPointerMove) isEvent()  {}
func (EventPointerClick) isEvent() {}
func (EventKeyDown) isEvent()      {}
func (EventKeyUp) isEvent()        {}
func (EventResize) isEvent()       {}

// PixelToNDC maps a window pixel position, origin top-left, to normalized surface coordinates.
// A zero-sized surface maps everything to the centre.
//
// Parameters:
//   - x, y: pixel position
//   - width, height: surface size in pixels
//
// Returns:
//   - ndcX, ndcY: coordinates in [-1, 1], y up
func PixelToNDC(x, y float32, width, height int) (ndcX, ndcY float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	ndcX = common.Clamp(x/float32(width)*2-1, -1, 1)
	ndcY = common.Clamp(1-y/float32(height)*2, -1, 1)
	return ndcX, ndcY
}
