package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestProfiler_Tick(t *testing.T) {
	t.Run("Reports Once Per Interval", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		clock := &fakeClock{t: time.Unix(0, 0)}
		p := NewProfiler(WithLogger(zap.New(core)), WithInterval(time.Second), withClock(clock.now))

		for i := 0; i < 9; i++ {
			clock.advance(100 * time.Millisecond)
			require.False(t, p.Tick())
		}
		clock.advance(100 * time.Millisecond)
		require.True(t, p.Tick())

		entries := logs.FilterMessage("frame stats").All()
		require.Len(t, entries, 1)
		require.InDelta(t, 10.0, entries[0].ContextMap()["fps"], 1e-9)
	})

	t.Run("Counter Resets After Report", func(t *testing.T) {
		clock := &fakeClock{t: time.Unix(0, 0)}
		p := NewProfiler(withClock(clock.now))
		clock.advance(time.Second)
		require.True(t, p.Tick())
		require.Zero(t, p.frameCount)
		require.Equal(t, clock.t, p.lastTime)
	})

	t.Run("Non Positive Interval Keeps Default", func(t *testing.T) {
		p := NewProfiler(WithInterval(0), WithLogger(nil))
		require.Equal(t, time.Second, p.updateInterval)
		require.NotNil(t, p.logger)
	})
}
