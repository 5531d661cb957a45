package searcher

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBound(t *testing.T) {
	t.Run("maximizing node", func(t *testing.T) {
		b := newBound(true, -10, 10)

		alpha, beta := b.window()
		require.Equal(t, -10, alpha)
		require.Equal(t, 10, beta)

		b.tighten(-20)
		require.Equal(t, -10, b.load(), "A worse score should not loosen the bound")
		b.tighten(4)
		require.Equal(t, 4, b.load())
		require.False(t, b.crossed())
		b.tighten(10)
		require.True(t, b.crossed(), "alpha >= beta")
	})

	t.Run("minimizing node", func(t *testing.T) {
		b := newBound(false, -10, 10)

		b.tighten(12)
		require.Equal(t, 10, b.load())
		b.tighten(-3)
		alpha, beta := b.window()
		require.Equal(t, -10, alpha)
		require.Equal(t, -3, beta)
		require.False(t, b.crossed())
		b.tighten(-11)
		require.True(t, b.crossed())
	})

	t.Run("concurrent tightening keeps the best score", func(t *testing.T) {
		b := newBound(true, -Infinity, Infinity)

		var wg sync.WaitGroup
		for i := 0; i < 64; i++ {
			wg.Add(1)
			go func(score int) {
				defer wg.Done()
				b.tighten(score)
			}(i * 7 % 101)
		}
		wg.Wait()

		best := 0
		for i := 0; i < 64; i++ {
			best = max(best, i*7%101)
		}
		require.Equal(t, best, b.load())
	})
}
