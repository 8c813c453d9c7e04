package hud

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HubBuilderOption is a functional option applied to a hub during construction via NewHub.
type HubBuilderOption func(*hub)

// WithLogger sets the logger used by the hub.
//
// Parameters:
//   - logger: the zap logger, nil keeps the no-op default
//
// Returns:
//   - HubBuilderOption: a function that sets the logger
func WithLogger(logger *zap.Logger) HubBuilderOption {
	return func(h *hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithSendBuffer sets how many unsent messages a client may lag behind before it is dropped.
// Values below 1 are ignored.
//
// Parameters:
//   - n: per-client buffer size
//
// Returns:
//   - HubBuilderOption: a function that sets the buffer size
func WithSendBuffer(n int) HubBuilderOption {
	return func(h *hub) {
		if n > 0 {
			h.sendBuffer = n
		}
	}
}

// WithWriteTimeout bounds a single websocket write.
func WithWriteTimeout(d time.Duration) HubBuilderOption {
	return func(h *hub) {
		if d > 0 {
			h.writeTimeout = d
		}
	}
}

// WithCheckOrigin replaces the origin check of the websocket upgrader. All origins are accepted by default.
func WithCheckOrigin(fn func(r *http.Request) bool) HubBuilderOption {
	return func(h *hub) {
		if fn != nil {
			h.upgrader.CheckOrigin = fn
		}
	}
}
