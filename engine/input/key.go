// Package input carries window input to the frame goroutine as plain events.
package input

// Key is a DOM-style physical key code such as "KeyW" or "ArrowUp".
type Key string

const (
	KeyW          Key = "KeyW"
	KeyA          Key = "KeyA"
	KeyS          Key = "KeyS"
	KeyD          Key = "KeyD"
	KeyE          Key = "KeyE"
	KeyT          Key = "KeyT"
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyShiftLeft  Key = "ShiftLeft"
	KeyShiftRight Key = "ShiftRight"
	KeySpace      Key = "Space"
	KeyEnter      Key = "Enter"
	KeyEscape     Key = "Escape"
	KeyUnknown    Key = ""
)
