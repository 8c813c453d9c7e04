package input

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueue_Drain(t *testing.T) {
	t.Run("Preserves Order", func(t *testing.T) {
		q := NewQueue()
		q.Push(EventKeyDown{Key: KeyW})
		q.Push(EventPointerClick{})
		q.Push(EventKeyUp{Key: KeyW})

		events := q.Drain()
		require.Equal(t, []Event{EventKeyDown{Key: KeyW}, EventPointerClick{}, EventKeyUp{Key: KeyW}}, events)
		require.Nil(t, q.Drain())
		require.Zero(t, q.Len())
	})

	t.Run("Coalesces Consecutive Pointer Moves", func(t *testing.T) {
		q := NewQueue()
		q.Push(EventPointerMove{X: 0.1, Y: 0.1})
		q.Push(EventPointerMove{X: 0.2, Y: 0.2})
		q.Push(EventPointerClick{})
		q.Push(EventPointerMove{X: 0.3, Y: 0.3})

		require.Equal(t, []Event{
			EventPointerMove{X: 0.2, Y: 0.2},
			EventPointerClick{},
			EventPointerMove{X: 0.3, Y: 0.3},
		}, q.Drain())
	})

	t.Run("Ignores Nil", func(t *testing.T) {
		q := NewQueue()
		q.Push(nil)
		require.Zero(t, q.Len())
	})

	t.Run("Concurrent Pushes", func(t *testing.T) {
		q := NewQueue()
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					q.Push(EventKeyDown{Key: KeyA})
				}
			}()
		}
		wg.Wait()
		require.Len(t, q.Drain(), 400)
	})

	t.Run("Bounded", func(t *testing.T) {
		q := NewQueue()
		for i := 0; i < defaultQueueLimit+10; i++ {
			q.Push(EventPointerClick{})
		}
		require.Equal(t, defaultQueueLimit, q.Len())
	})
}

func TestPixelToNDC(t *testing.T) {
	x, y := PixelToNDC(400, 300, 800, 600)
	require.InDelta(t, 0, x, 1e-6)
	require.InDelta(t, 0, y, 1e-6)

	x, y = PixelToNDC(0, 0, 800, 600)
	require.Equal(t, float32(-1), x)
	require.Equal(t, float32(1), y)

	x, y = PixelToNDC(800, 600, 800, 600)
	require.Equal(t, float32(1), x)
	require.Equal(t, float32(-1), y)

	x, y = PixelToNDC(-50, 900, 800, 600)
	require.Equal(t, float32(-1), x)
	require.Equal(t, float32(-1), y)

	x, y = PixelToNDC(10, 10, 0, 0)
	require.Zero(t, x)
	require.Zero(t, y)
}
