package remote

import (
	"time"

	"go.uber.org/zap"
)

// ServerBuilderOption is a functional option applied during NewServer.
type ServerBuilderOption func(*server)

// WithLogger sets the logger used for requests and dropped commands.
func WithLogger(logger *zap.Logger) ServerBuilderOption {
	return func(s *server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCommandQueue shares an existing command queue with the server.
//
// Parameters:
//   - q: the queue
//
// Returns:
//   - ServerBuilderOption: a function that sets the queue
func WithCommandQueue(q CommandQueue) ServerBuilderOption {
	return func(s *server) {
		s.commands = q
	}
}

// WithQueueLimit bounds the command queue created by NewServer.
func WithQueueLimit(limit int) ServerBuilderOption {
	return func(s *server) {
		s.queueLimit = limit
	}
}

// WithShutdownTimeout bounds how long Serve waits for in-flight requests on shutdown.
func WithShutdownTimeout(d time.Duration) ServerBuilderOption {
	return func(s *server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}
