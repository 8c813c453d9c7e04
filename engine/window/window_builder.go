package window

// WindowBuilderOption is a functional option applied during NewWindow.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the title bar text.
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial client area size. Non-positive values keep the default.
//
// Parameters:
//   - width: width in pixels
//   - height: height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithSizeLimits bounds how far the user may resize the window.
// Zero leaves the matching limit unchanged.
//
// Parameters:
//   - minWidth, minHeight: smallest client area in pixels
//   - maxWidth, maxHeight: largest client area in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth = coalesce(minWidth, w.minWidth)
		w.minHeight = coalesce(minHeight, w.minHeight)
		w.maxWidth = coalesce(maxWidth, w.maxWidth)
		w.maxHeight = coalesce(maxHeight, w.maxHeight)
	}
}

func coalesce(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
