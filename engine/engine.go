package engine

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/engine/profiler"
	"github.com/Carmen-Shannon/oxy-tour/engine/scene"
	"github.com/Carmen-Shannon/oxy-tour/engine/window"
	"go.uber.org/zap"
)

// engine implements the Engine interface.
// A single frame goroutine owns every scene, tour and renderer call.
type engine struct {
	mu              *sync.Mutex
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window
	logger *zap.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum time between drawn frames; 0 = every tick
}

// Engine is the main entry point for the engine.
// It orchestrates the frame loop and window management.
type Engine interface {
	// Window returns the underlying window, nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the frame rate in frames per second.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called at the start of each frame, before drawing.
	// Use this for input draining, tour updates and animation.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after the active scenes are drawn.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit caps how often scenes are drawn, in frames per second.
	// Pass 0 to draw on every tick (default).
	//
	// Parameters:
	//   - fps: maximum drawn frames per second (0 = every tick)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Scenes are drawn in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining draw order (lower draws first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Run starts the frame loop and blocks until the window closes, or until Quit when headless.
	Run()

	// Quit stops the frame loop and asks the window to close.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done is closed once Quit has been called.
	Done() <-chan struct{}
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:              &sync.Mutex{},
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		scenes:          make(map[int]scene.Scene),
		logger:          zap.NewNop(),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger.Named("profiler")))
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			if width <= 0 || height <= 0 {
				return
			}
			for _, s := range e.Scenes() {
				if r := s.Renderer(); r != nil {
					r.Resize(width, height)
				}
				if c := s.Camera(); c != nil {
					c.SetAspect(float32(width) / float32(height))
				}
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.wg.Add(1)
	go e.handleFrames()

	if e.window != nil {
		e.window.ProcessMessages()
		e.Quit()
		e.wg.Wait()
		if err := e.window.Close(); err != nil {
			e.logger.Debug("window close", zap.Error(err))
		}
		return
	}
	<-e.quitChannel
	e.wg.Wait()
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// handleFrames runs the fixed-rate frame loop in its own goroutine.
// Listens for dynamic rate changes via tickRateChannel and exits when the quit channel is closed.
// A panic in a callback is logged and stops the engine.
func (e *engine) handleFrames() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("frame goroutine recovered from panic", zap.String("panic", fmt.Sprint(r)))
			e.Quit()
		}
	}()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()
	var lastDraw time.Time

	for {
		select {
		case <-e.quitChannel:
			return
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		case now := <-ticker.C:
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.frame(dt, now, &lastDraw)
		}
	}
}

// frame runs one iteration: tick, draw, render callback, profiler.
func (e *engine) frame(dt float32, now time.Time, lastDraw *time.Time) {
	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	if e.renderFrameLimit <= 0 || now.Sub(*lastDraw) >= e.renderFrameLimit {
		*lastDraw = now
		e.drawScenes()
	}

	if e.renderCallback != nil {
		e.renderCallback(dt)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

// drawScenes draws all active scenes in ascending z-index order inside one frame of
// the first active scene's renderer.
func (e *engine) drawScenes() int {
	scenes := e.Scenes()
	keys := make([]int, 0, len(scenes))
	for k := range scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var active []scene.Scene
	for _, k := range keys {
		if s := scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return 0
	}

	frameRenderer := active[0].Renderer()
	if frameRenderer == nil {
		return 0
	}
	if err := frameRenderer.BeginFrame(); err != nil {
		e.logger.Debug("frame skipped", zap.Error(err))
		return 0
	}
	draws := 0
	for _, s := range active {
		draws += s.DrawCalls()
	}
	frameRenderer.EndFrame()
	frameRenderer.Present()
	return draws
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the frame rate in frames per second.
// If the engine is running, the change takes effect on the next frame.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.mu.Lock()
	running := e.running
	e.mu.Unlock()

	if !running {
		e.engineTickRate = newRate
		return
	}
	// Non-blocking send; a pending update is replaced.
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}
