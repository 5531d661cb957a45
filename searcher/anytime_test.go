package searcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedEngine returns the depth as the move and records every call.
type scriptedEngine struct {
	events *[]string
	stop   func(depth int)
}

func (e scriptedEngine) Search(pos Position[int], depth int) (Result[int], SearchMetric) {
	*e.events = append(*e.events, "search")
	if e.stop != nil {
		e.stop(depth)
	}
	return Result[int]{Move: depth, Found: true, Score: depth}, SearchMetric{Depth: depth}
}

type recordingPublisher struct {
	events    *[]string
	published []int
	failAt    int
}

var errSlotClosed = errors.New("slot closed")

func (p *recordingPublisher) Publish(move int, found bool) error {
	*p.events = append(*p.events, "publish")
	p.published = append(p.published, move)
	if p.failAt != 0 && len(p.published) == p.failAt {
		return errSlotClosed
	}
	return nil
}

func TestAnytime(t *testing.T) {
	b := &treeBuilder{}
	root := b.node(First, 0)

	t.Run("publishes every depth in order", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var events []string
		engine := scriptedEngine{events: &events, stop: func(depth int) {
			if depth == 4 {
				cancel()
			}
		}}
		publisher := &recordingPublisher{events: &events}

		err := Anytime[int](ctx, engine, root, publisher)

		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, []int{1, 2, 3, 4}, publisher.published, "Depth 4 completes before cancellation is seen")
		require.Equal(t, []string{
			"search", "publish", "search", "publish", "search", "publish", "search", "publish",
		}, events, "Each depth is published before the next one starts")
	})

	t.Run("publish failure stops the loop", func(t *testing.T) {
		var events []string
		publisher := &recordingPublisher{events: &events, failAt: 2}

		err := Anytime[int](context.Background(), scriptedEngine{events: &events}, root, publisher)

		require.ErrorIs(t, err, errSlotClosed)
		require.ErrorContains(t, err, "depth 2")
		require.Equal(t, []int{1, 2}, publisher.published)
	})

	t.Run("cancelled before the first depth", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var events []string
		err := Anytime[int](ctx, scriptedEngine{events: &events}, root, &recordingPublisher{events: &events})

		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, events)
	})

	t.Run("real engine improves with depth", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		_, tree := classic()
		publisher := &cancellingPublisher{cancel: cancel, after: 3}
		err := Anytime[int](ctx, NewAlphaBeta[int](), tree, publisher)

		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, []int{1, 0, 0}, publisher.moves,
			"Depth 1 prefers the second branch, deeper searches see its refutation")
	})
}

type cancellingPublisher struct {
	cancel func()
	after  int
	moves  []int
}

func (p *cancellingPublisher) Publish(move int, found bool) error {
	p.moves = append(p.moves, move)
	if len(p.moves) == p.after {
		p.cancel()
	}
	return nil
}
