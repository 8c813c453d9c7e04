package tween

// TweenOption configures a tween scheduled with Scheduler.To.
type TweenOption func(*task)

// WithDelay holds the tween at its start for the given number of seconds.
// No update callback fires during the delay.
//
// Parameters:
//   - seconds: delay length
//
// Returns:
//   - TweenOption: functional option to set the delay
func WithDelay(seconds float32) TweenOption {
	return func(t *task) {
		if seconds > 0 {
			t.delay = seconds
		}
	}
}

// WithOnComplete sets a callback fired once, after the final update, when the tween finishes.
// Cancelled tweens never fire it.
//
// Parameters:
//   - fn: completion callback
//
// Returns:
//   - TweenOption: functional option to set the completion callback
func WithOnComplete(fn func()) TweenOption {
	return func(t *task) {
		t.onComplete = fn
	}
}
