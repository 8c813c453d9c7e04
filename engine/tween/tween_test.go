package tween

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScheduler_To(t *testing.T) {
	t.Run("Reaches Target And Completes Once", func(t *testing.T) {
		s := NewScheduler()
		var values []float32
		completed := 0
		h := s.To(0, 1, 0.5, Linear, func(v float32) { values = append(values, v) }, WithOnComplete(func() { completed++ }))

		require.True(t, s.Running(h))
		s.Update(0.25)
		require.InDelta(t, 0.5, values[len(values)-1], 1e-5)
		s.Update(0.5)
		require.Equal(t, float32(1), values[len(values)-1])
		require.Equal(t, 1, completed)
		require.False(t, s.Running(h))

		s.Update(1)
		require.Equal(t, 1, completed)
		require.Zero(t, s.Len())
	})

	t.Run("Delay Holds Then Spills Remainder", func(t *testing.T) {
		s := NewScheduler()
		var last float32 = -1
		s.To(0, 10, 1, Linear, func(v float32) { last = v }, WithDelay(0.5))

		s.Update(0.4)
		require.Equal(t, float32(-1), last)
		s.Update(0.2)
		require.InDelta(t, 1, last, 1e-4)
	})

	t.Run("Zero Duration Completes On Next Update", func(t *testing.T) {
		s := NewScheduler()
		var last float32
		done := false
		s.To(3, 7, 0, nil, func(v float32) { last = v }, WithOnComplete(func() { done = true }))
		require.False(t, done)
		s.Update(0)
		require.Equal(t, float32(7), last)
		require.True(t, done)
	})

	t.Run("Chained Tweens Start Next Update", func(t *testing.T) {
		s := NewScheduler()
		var order []string
		s.To(0, 1, 0.1, OutQuad, nil, WithOnComplete(func() {
			order = append(order, "first")
			s.To(1, 0, 0.1, InQuad, nil, WithOnComplete(func() {
				order = append(order, "second")
			}))
		}))

		s.Update(1)
		require.Equal(t, []string{"first"}, order)
		require.Equal(t, 1, s.Len())
		s.Update(1)
		require.Equal(t, []string{"first", "second"}, order)
	})
}

func TestScheduler_Cancel(t *testing.T) {
	t.Run("Cancelled Tween Never Completes", func(t *testing.T) {
		s := NewScheduler()
		done := false
		h := s.To(0, 1, 1, Linear, nil, WithOnComplete(func() { done = true }))
		require.True(t, s.Cancel(h))
		require.False(t, s.Cancel(h))
		s.Update(2)
		require.False(t, done)
	})

	t.Run("CancelAll From Callback", func(t *testing.T) {
		s := NewScheduler()
		secondDone := false
		s.To(0, 1, 0.1, Linear, nil, WithOnComplete(func() { s.CancelAll() }))
		s.To(0, 1, 0.1, Linear, nil, WithOnComplete(func() { secondDone = true }))
		s.Update(1)
		require.False(t, secondDone)
		require.Zero(t, s.Len())
	})
}

func TestEasings(t *testing.T) {
	for name, e := range map[string]Easing{"linear": Linear, "inQuad": InQuad, "outQuad": OutQuad, "inOutQuad": InOutQuad} {
		t.Run(name, func(t *testing.T) {
			require.InDelta(t, 0, e(0, 0, 1, 1), 1e-6)
			require.InDelta(t, 1, e(1, 0, 1, 1), 1e-6)
		})
	}
	require.Less(t, InQuad(0.5, 0, 1, 1), float32(0.5))
	require.Greater(t, OutQuad(0.5, 0, 1, 1), float32(0.5))
}
