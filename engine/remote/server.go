package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/engine/hud"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server serves the remote control API.
type Server interface {
	http.Handler

	// Commands returns the queue handlers push into. The frame loop drains it.
	Commands() CommandQueue

	// Publish replaces the status served by GET /api/tour. Call it once per frame.
	//
	// Parameters:
	//   - s: the current tour status
	Publish(s Status)

	// Status returns the last published status.
	Status() Status

	// Serve listens on addr until ctx is cancelled, then shuts down gracefully and closes the hub.
	//
	// Parameters:
	//   - ctx: the server lifetime
	//   - addr: the listen address, e.g. ":8080"
	//
	// Returns:
	//   - error: a listen or shutdown error, nil after a clean shutdown
	Serve(ctx context.Context, addr string) error
}

type server struct {
	router   *gin.Engine
	hub      hud.Hub
	commands CommandQueue
	status   *statusBoard
	logger   *zap.Logger

	shutdownTimeout time.Duration
	queueLimit      int
}

var _ Server = &server{}

// NewServer creates the remote control server streaming the HUD of hub.
//
// Parameters:
//   - hub: the HUD hub serving websocket clients
//   - options: functional options to configure the server
//
// Returns:
//   - Server: the newly created server
func NewServer(hub hud.Hub, options ...ServerBuilderOption) Server {
	if hub == nil {
		panic("remote: hub cannot be nil")
	}
	s := &server{
		hub:             hub,
		status:          newStatusBoard(),
		logger:          zap.NewNop(),
		shutdownTimeout: 5 * time.Second,
	}
	for _, option := range options {
		option(s)
	}
	if s.commands == nil {
		s.commands = NewCommandQueue(s.queueLimit)
	}
	s.router = s.routes()
	return s
}

func (s *server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.handleHealth)
	r.GET("/ws", s.handleWebSocket)

	api := r.Group("/api/tour")
	{
		api.GET("", s.handleStatus)
		api.POST("/start", s.handleCommand(func(*gin.Context) Command { return Command{Type: CommandStart} }))
		api.POST("/end", s.handleCommand(func(*gin.Context) Command { return Command{Type: CommandEnd} }))
		api.POST("/location/:id", s.handleCommand(func(c *gin.Context) Command {
			return Command{Type: CommandSetLocation, Location: c.Param("id")}
		}))
	}
	return r
}

func (s *server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("remote request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *server) Commands() CommandQueue {
	return s.commands
}

func (s *server) Publish(st Status) {
	s.status.publish(st)
}

func (s *server) Status() Status {
	return s.status.get()
}

func (s *server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tour": s.status.get(),
		"hud":  s.hub.Snapshot(),
	})
}

func (s *server) handleCommand(build func(*gin.Context) Command) gin.HandlerFunc {
	return func(c *gin.Context) {
		cmd := build(c)
		if err := cmd.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !s.commands.Push(cmd) {
			s.logger.Warn("remote command dropped, queue full", zap.String("type", string(cmd.Type)))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "command queue full"})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"queued": cmd})
	}
}

func (s *server) handleWebSocket(c *gin.Context) {
	err := s.hub.Accept(c.Writer, c.Request, func(data []byte) {
		cmd, err := ParseCommand(data)
		if err != nil {
			s.logger.Warn("invalid websocket command", zap.Error(err))
			return
		}
		if !s.commands.Push(cmd) {
			s.logger.Warn("remote command dropped, queue full", zap.String("type", string(cmd.Type)))
		}
	})
	if err != nil {
		s.logger.Debug("websocket upgrade failed", zap.Error(err))
	}
}

func (s *server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("remote: listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("remote control listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		s.hub.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("remote: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("remote: shutdown: %w", err)
	}
	s.logger.Info("remote control stopped")
	return nil
}
