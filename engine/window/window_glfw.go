package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-tour/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool
}

// newPlatformWindow creates the GLFW window with input callbacks and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %v", err)
	}

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		running: true,
	}
	w.internalWindow = gw

	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	// Register GLFW callbacks for input and window events.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		code := translateKey(key)
		if code == input.KeyEscape && action == glfw.Press {
			if w.onEscape != nil && w.onEscape() {
				return
			}
			gw.running = false
			win.SetShouldClose(true)
			return
		}
		if code == input.KeyUnknown {
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			if w.onKeyDown != nil {
				w.onKeyDown(code)
			}
		case glfw.Release:
			if w.onKeyUp != nil {
				w.onKeyUp(code)
			}
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft || action != glfw.Press {
			return
		}
		if w.onMouseClick != nil {
			xpos, ypos := cursorToFramebuffer(win)
			w.onMouseClick(xpos, ypos)
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if w.onMouseMove != nil {
			x, y := scaleToFramebuffer(win, xpos, ypos)
			w.onMouseMove(x, y)
		}
	})

	// Use framebuffer size callback for pixel-accurate resize events.
	// On high-DPI displays (e.g., macOS Retina), framebuffer size differs from window size.
	// The renderer requires pixel dimensions for correct surface configuration.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	// Update stored dimensions to reflect actual framebuffer size (may differ from requested on high-DPI).
	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight

	return nil
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
// Uses the wgpuglfw bridge package which has per-platform implementations (Windows, X11, Wayland, macOS).
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	if w.internalWindow == nil {
		return nil
	}
	gw := w.internalWindow.(*glfwWindow)
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

// platformIsRunningCheck returns whether the GLFW window is still active.
// Returns false if the internal window is nil, the running flag is cleared, or GLFW reports ShouldClose.
//
// Parameters:
//   - w: the engineWindow to check
//
// Returns:
//   - bool: true if the window is still running
func platformIsRunningCheck(w *engineWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
// Returns an error if the internal window has not been initialized.
//
// Parameters:
//   - w: the engineWindow to close
//
// Returns:
//   - error: error if the window is not initialized
func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.running = false
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	glfw.Terminate()
	return nil
}

// platformRequestClose flags the GLFW window for closing. glfw.Window.SetShouldClose may be
// called from any thread.
func platformRequestClose(w *engineWindow) {
	if w.internalWindow == nil {
		return
	}
	w.internalWindow.(*glfwWindow).window.SetShouldClose(true)
}

// platformProcessMessages polls GLFW for pending events without blocking.
// This is the GLFW equivalent of the Win32 PeekMessage loop.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}

// cursorToFramebuffer returns the current cursor position in framebuffer pixels.
func cursorToFramebuffer(win *glfw.Window) (float32, float32) {
	xpos, ypos := win.GetCursorPos()
	return scaleToFramebuffer(win, xpos, ypos)
}

// scaleToFramebuffer converts screen coordinates to framebuffer pixels so that pointer
// positions share a unit with Width and Height on high-DPI displays.
func scaleToFramebuffer(win *glfw.Window, xpos, ypos float64) (float32, float32) {
	ww, wh := win.GetSize()
	fw, fh := win.GetFramebufferSize()
	if ww == 0 || wh == 0 {
		return float32(xpos), float32(ypos)
	}
	return float32(xpos * float64(fw) / float64(ww)), float32(ypos * float64(fh) / float64(wh))
}

// glfwKeyCodes maps the GLFW keys the application reacts to onto DOM-style codes.
var glfwKeyCodes = map[glfw.Key]input.Key{
	glfw.KeyW:          input.KeyW,
	glfw.KeyA:          input.KeyA,
	glfw.KeyS:          input.KeyS,
	glfw.KeyD:          input.KeyD,
	glfw.KeyE:          input.KeyE,
	glfw.KeyT:          input.KeyT,
	glfw.KeyUp:         input.KeyArrowUp,
	glfw.KeyDown:       input.KeyArrowDown,
	glfw.KeyLeft:       input.KeyArrowLeft,
	glfw.KeyRight:      input.KeyArrowRight,
	glfw.KeyLeftShift:  input.KeyShiftLeft,
	glfw.KeyRightShift: input.KeyShiftRight,
	glfw.KeySpace:      input.KeySpace,
	glfw.KeyEnter:      input.KeyEnter,
	glfw.KeyEscape:     input.KeyEscape,
}

// translateKey returns the DOM-style code for key, or input.KeyUnknown.
func translateKey(key glfw.Key) input.Key {
	return glfwKeyCodes[key]
}
