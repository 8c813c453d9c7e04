package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer"
	"github.com/Carmen-Shannon/oxy-tour/engine/scene"
	"github.com/stretchr/testify/require"
)

func newTestScene(t *testing.T, r renderer.Renderer, active bool, meshes int) scene.Scene {
	t.Helper()
	s := scene.NewScene("test", camera.NewCamera(), r, scene.WithActive(active))
	for i := 0; i < meshes; i++ {
		s.Add(game_object.NewMesh("box", game_object.PrimitiveBox, common.Vec3{1, 1, 1}))
	}
	return s
}

func TestEngine_DrawScenes(t *testing.T) {
	t.Run("Active Scenes Share One Frame", func(t *testing.T) {
		r := renderer.NewRenderer(renderer.BackendTypeHeadless, nil)
		e := NewEngine(
			WithScene(0, newTestScene(t, r, true, 2)),
			WithScene(1, newTestScene(t, r, true, 1)),
			WithScene(2, newTestScene(t, r, false, 5)),
		).(*engine)

		require.Equal(t, 3, e.drawScenes())
		stats := r.Stats()
		require.Equal(t, uint64(1), stats.Frames)
		require.Equal(t, 3, stats.DrawCount)
	})

	t.Run("No Active Scene Draws Nothing", func(t *testing.T) {
		r := renderer.NewRenderer(renderer.BackendTypeHeadless, nil)
		e := NewEngine(WithScene(0, newTestScene(t, r, false, 2))).(*engine)
		require.Zero(t, e.drawScenes())
		require.Zero(t, r.Stats().Frames)
	})

	t.Run("Frame In Flight Is Skipped", func(t *testing.T) {
		r := renderer.NewRenderer(renderer.BackendTypeHeadless, nil)
		e := NewEngine(WithScene(0, newTestScene(t, r, true, 1))).(*engine)
		require.NoError(t, r.BeginFrame())
		require.Zero(t, e.drawScenes())
		r.EndFrame()
	})
}

func TestEngine_Run(t *testing.T) {
	t.Run("Headless Runs Until Quit", func(t *testing.T) {
		r := renderer.NewRenderer(renderer.BackendTypeHeadless, nil)
		e := NewEngine(WithTickRate(500), WithScene(0, newTestScene(t, r, true, 1)))

		var ticks, renders, negative atomic.Int32
		e.SetTickCallback(func(dt float32) {
			if dt < 0 {
				negative.Add(1)
			}
			ticks.Add(1)
		})
		e.SetRenderCallback(func(float32) {
			if renders.Add(1) == 5 {
				e.Quit()
			}
		})

		done := make(chan struct{})
		go func() {
			e.Run()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("engine did not stop after Quit")
		}
		require.GreaterOrEqual(t, ticks.Load(), int32(5))
		require.Zero(t, negative.Load())
		require.GreaterOrEqual(t, r.Stats().Frames, uint64(5))
	})

	t.Run("Quit Is Idempotent", func(t *testing.T) {
		e := NewEngine()
		e.Quit()
		e.Quit()
		select {
		case <-e.Done():
		default:
			t.Fatal("done channel not closed")
		}
		e.Run()
	})

	t.Run("Panic In Callback Stops The Engine", func(t *testing.T) {
		e := NewEngine(WithTickRate(500))
		e.SetTickCallback(func(float32) { panic("boom") })

		done := make(chan struct{})
		go func() {
			e.Run()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("engine did not stop after panic")
		}
	})
}

func TestEngine_Scenes(t *testing.T) {
	r := renderer.NewRenderer(renderer.BackendTypeHeadless, nil)
	s := newTestScene(t, r, true, 0)
	e := NewEngine()

	e.AddScene(3, s)
	require.Equal(t, s, e.Scene(3))
	require.Nil(t, e.Scene(4))

	cp := e.Scenes()
	delete(cp, 3)
	require.Len(t, e.Scenes(), 1)

	e.RemoveScene(3)
	require.Empty(t, e.Scenes())
}

func TestEngine_TickRate(t *testing.T) {
	e := NewEngine(WithTickRate(0), WithRenderFrameLimit(30)).(*engine)
	require.Equal(t, time.Second/60, e.engineTickRate)
	second := float64(time.Second)
	require.Equal(t, time.Duration(second/30), e.renderFrameLimit)

	e.SetTickRate(120)
	require.Equal(t, time.Duration(second/120), e.engineTickRate)

	e.SetRenderFrameLimit(0)
	require.Zero(t, e.renderFrameLimit)
}
