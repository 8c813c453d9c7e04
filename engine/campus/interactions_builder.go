package campus

import (
	"github.com/Carmen-Shannon/oxy-tour/engine/tween"
	"go.uber.org/zap"
)

// InteractionsBuilderOption is a functional option applied during NewInteractions.
type InteractionsBuilderOption func(*interactions)

// WithLogger sets the logger used by the interaction handler.
func WithLogger(logger *zap.Logger) InteractionsBuilderOption {
	return func(in *interactions) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// WithScheduler shares a tween scheduler with the handler. The handler advances it in Update.
//
// Parameters:
//   - s: the scheduler
//
// Returns:
//   - InteractionsBuilderOption: a function that sets the scheduler
func WithScheduler(s tween.Scheduler) InteractionsBuilderOption {
	return func(in *interactions) {
		in.tweens = s
	}
}

// WithOnFacultySignClick sets the callback run when the faculty sign is clicked.
func WithOnFacultySignClick(fn func()) InteractionsBuilderOption {
	return func(in *interactions) {
		in.onSignClick = fn
	}
}

// WithOnBuildingClick sets the callback run when the main building is clicked.
//
// Parameters:
//   - fn: the callback, typically starting the tour
//
// Returns:
//   - InteractionsBuilderOption: a function that sets the callback
func WithOnBuildingClick(fn func()) InteractionsBuilderOption {
	return func(in *interactions) {
		in.onBuildingClick = fn
	}
}
