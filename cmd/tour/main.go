// Command tour runs the faculty campus scene and its first-person virtual tour.
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/campus"
	"github.com/Carmen-Shannon/oxy-tour/engine/config"
	"github.com/Carmen-Shannon/oxy-tour/engine/content"
	"github.com/Carmen-Shannon/oxy-tour/engine/hud"
	"github.com/Carmen-Shannon/oxy-tour/engine/input"
	"github.com/Carmen-Shannon/oxy-tour/engine/logger"
	"github.com/Carmen-Shannon/oxy-tour/engine/profiler"
	"github.com/Carmen-Shannon/oxy-tour/engine/remote"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer"
	"github.com/Carmen-Shannon/oxy-tour/engine/scene"
	"github.com/Carmen-Shannon/oxy-tour/engine/tour"
	"github.com/Carmen-Shannon/oxy-tour/engine/window"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	table := tour.DefaultTable()
	if cfg.LocationsFile != "" {
		if table, err = tour.LoadTable(cfg.LocationsFile); err != nil {
			return err
		}
	}

	catalog := content.NewDefaultCatalog(content.WithLogger(log.Named("content")))
	if err := catalog.Warm(content.DefaultLocationIDs...); err != nil {
		return fmt.Errorf("warm catalog: %w", err)
	}

	var win window.Window
	if !cfg.Headless {
		win = window.NewWindow(
			window.WithTitle(cfg.Title),
			window.WithSize(cfg.Width, cfg.Height),
			window.WithSizeLimits(600, 400, 0, 0),
		)
	}
	eng := engine.NewEngine(
		engine.WithLogger(log.Named("engine")),
		engine.WithTickRate(cfg.TickRate),
		engine.WithProfiling(cfg.Profiling),
		engine.WithProfiler(profiler.NewProfiler(profiler.WithLogger(log.Named("profiler")))),
		engine.WithWindow(win),
	)

	backend := renderer.BackendTypeWGPU
	if cfg.Headless {
		backend = renderer.BackendTypeHeadless
	}
	r := renderer.NewRenderer(backend, win, renderer.WithLogger(log.Named("renderer")))
	defer r.Release()

	orbit := newOrbit()
	cam := camera.NewCamera(
		camera.WithFov(float32(75*math.Pi/180)),
		camera.WithAspect(float32(cfg.Width)/float32(cfg.Height)),
		camera.WithNear(0.1),
		camera.WithFar(1000),
		camera.WithController(orbit),
	)

	root := campus.Build()
	sc := scene.NewScene("main", cam, r, scene.WithActive(true), scene.WithObjects(root))
	eng.AddScene(0, sc)

	hub := hud.NewHub(hud.WithLogger(log.Named("hud")))
	presenter := hud.Multi{hub, hud.Overlay(r)}

	var (
		tm         tour.Manager
		tourActive atomic.Bool
	)
	interactions := campus.NewInteractions(cam,
		campus.WithLogger(log.Named("campus")),
		campus.WithOnBuildingClick(func() { tm.Start() }),
		campus.WithOnFacultySignClick(func() {
			hub.ShowPopup("Fakultas Sains dan Teknologi Informasi", "Institut Teknologi Kalimantan")
		}),
	)
	interactions.Register(root)

	rig := camera.NewFirstPersonController(
		camera.WithPitchBounds(cfg.MinPitch, cfg.MaxPitch),
		camera.WithLookSensitivity(cfg.LookSensitivity),
	)
	tm = tour.NewManager(sc, catalog, presenter,
		tour.WithLogger(log.Named("tour")),
		tour.WithTable(table),
		tour.WithRig(rig),
		tour.WithStartLocation(cfg.StartLocation),
		tour.WithEyeHeight(cfg.EyeHeight),
		tour.WithMovementSpeed(cfg.MovementSpeed),
		tour.WithSprintMultiplier(cfg.SprintMultiplier),
		tour.WithAction("reception-welcome", func() {
			hub.ShowPopup("Meja Resepsi", "Selamat datang di Fakultas Sains dan Teknologi Informasi ITK!")
		}),
		tour.WithOnActiveChange(func(active bool) {
			tourActive.Store(active)
			interactions.SetTourActive(active)
		}),
	)

	server := remote.NewServer(hub, remote.WithLogger(log.Named("remote")))
	events := input.NewQueue()
	zoom := &zoomAccumulator{mu: &sync.Mutex{}}
	if win != nil {
		bindWindow(win, events, zoom, &tourActive)
	}

	eng.SetTickCallback(func(dt float32) {
		for _, ev := range events.Drain() {
			dispatch(ev, tm, interactions, orbit)
		}
		if d := zoom.take(); d != 0 && !tm.Active() {
			orbit.Zoom(d)
		}
		server.Commands().ApplyTo(tm)
		tm.Update(dt)
		interactions.Update(dt)
		sc.Update(dt)
	})
	eng.SetRenderCallback(func(float32) {
		hub.Flush()
		server.Publish(remote.StatusOf(tm))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	if cfg.Remote {
		g.Go(func() error { return server.Serve(ctx, cfg.RemoteAddr) })
	}
	g.Go(func() error {
		select {
		case <-ctx.Done():
			eng.Quit()
		case <-eng.Done():
		}
		return nil
	})

	log.Info("tour starting",
		zap.Bool("headless", cfg.Headless),
		zap.Bool("remote", cfg.Remote),
		zap.String("remote_addr", cfg.RemoteAddr),
		zap.Int("locations", len(table.Locations)),
	)
	eng.Run()
	stop()
	if !cfg.Remote {
		hub.Close()
	}
	return g.Wait()
}

// newOrbit builds the main-scene camera controller. It starts at eye (0, 5, 20) looking at the
// origin, zooms between 5 and 50 and never dips below 0.1 rad above the ground.
func newOrbit() camera.OrbitController {
	return camera.NewOrbitController(
		camera.WithTarget(common.Vec3{0, 0, 0}),
		camera.WithRadius(float32(math.Hypot(5, 20))),
		camera.WithElevation(float32(math.Atan2(5, 20))),
		camera.WithRadiusBounds(5, 50),
		camera.WithElevationBounds(0.1, 1.5),
	)
}

// bindWindow forwards window callbacks into the frame goroutine's input queue.
// Callbacks run on the window thread.
func bindWindow(win window.Window, events input.Queue, zoom *zoomAccumulator, tourActive *atomic.Bool) {
	ndc := func(x, y float32) (float32, float32) {
		return input.PixelToNDC(x, y, win.Width(), win.Height())
	}
	win.SetKeyDownCallback(func(key input.Key) { events.Push(input.EventKeyDown{Key: key}) })
	win.SetKeyUpCallback(func(key input.Key) { events.Push(input.EventKeyUp{Key: key}) })
	win.SetMouseMoveCallback(func(x, y float32) {
		nx, ny := ndc(x, y)
		events.Push(input.EventPointerMove{X: nx, Y: ny})
	})
	win.SetMouseClickCallback(func(x, y float32) {
		nx, ny := ndc(x, y)
		events.Push(input.EventPointerMove{X: nx, Y: ny})
		events.Push(input.EventPointerClick{})
	})
	win.SetScrollCallback(zoom.add)
	win.SetEscapeCallback(func() bool {
		if !tourActive.Load() {
			return false
		}
		events.Push(input.EventKeyDown{Key: input.KeyEscape})
		return true
	})
}

// dispatch routes one event: the tour first, then the campus fixtures, then the orbit camera.
func dispatch(ev input.Event, tm tour.Manager, interactions campus.Interactions, orbit camera.OrbitController) {
	if down, ok := ev.(input.EventKeyDown); ok && down.Key == input.KeyEscape {
		tm.End()
		return
	}
	if tm.HandleEvent(ev) || tm.Active() {
		return
	}
	if interactions.HandleEvent(ev) {
		return
	}
	down, ok := ev.(input.EventKeyDown)
	if !ok {
		return
	}
	switch down.Key {
	case input.KeyArrowLeft, input.KeyA:
		orbit.OrbitLeft()
	case input.KeyArrowRight, input.KeyD:
		orbit.OrbitRight()
	case input.KeyArrowUp, input.KeyW:
		orbit.OrbitUp()
	case input.KeyArrowDown, input.KeyS:
		orbit.OrbitDown()
	case input.KeyT:
		tm.Start()
	}
}

// zoomAccumulator sums scroll deltas between frames.
type zoomAccumulator struct {
	mu    *sync.Mutex
	delta float32
}

func (z *zoomAccumulator) add(d float32) {
	z.mu.Lock()
	z.delta += d
	z.mu.Unlock()
}

func (z *zoomAccumulator) take() float32 {
	z.mu.Lock()
	defer z.mu.Unlock()
	d := z.delta
	z.delta = 0
	return d
}
