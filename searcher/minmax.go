package searcher

import (
	"slices"
	"sync"

	"github.com/samber/lo"
)

// MinMax evaluates every node of the tree down to a fixed depth.
type MinMax[M comparable] struct {
	settings settings
}

func NewMinMax[M comparable](options ...Option) *MinMax[M] {
	return &MinMax[M]{settings: newSettings(options)}
}

// Search returns the best move at pos looking depth plies ahead. The
// maximizing player is the one on turn at pos.
func (m *MinMax[M]) Search(pos Position[M], depth int) (Result[M], SearchMetric) {
	s := m.settings.begin(pos.CurrentPlayer(), depth)

	var result Result[M]
	switch m.settings.mode {
	case Functional:
		result = m.functional(s, pos, depth)
	case Parallel:
		result = m.parallel(s, pos, depth)
	default:
		result = m.sequential(s, pos, depth)
	}
	return result, s.metrics.Complete()
}

func (m *MinMax[M]) sequential(s *search, node Position[M], depth int) Result[M] {
	s.metrics.AddNode()
	if depth == 0 {
		return leaf(node, s.maximizing)
	}

	maximizing := node.CurrentPlayer() == s.maximizing
	best := Result[M]{Score: worst(maximizing)}
	for move := range node.Movements() {
		child := m.sequential(s, node.Play(move), depth-1)
		if !best.Found || better(maximizing, child.Score, best.Score) {
			best = Result[M]{Move: move, Found: true, Score: child.Score}
		}
	}
	if !best.Found { // No legal move
		return leaf(node, s.maximizing)
	}
	return best
}

func (m *MinMax[M]) functional(s *search, node Position[M], depth int) Result[M] {
	s.metrics.AddNode()
	if depth == 0 {
		return leaf(node, s.maximizing)
	}

	scored := lo.Map(slices.Collect(node.Movements()), func(move M, _ int) Result[M] {
		child := m.functional(s, node.Play(move), depth-1)
		return Result[M]{Move: move, Found: true, Score: child.Score}
	})
	if len(scored) == 0 {
		return leaf(node, s.maximizing)
	}
	return pick(scored, node.CurrentPlayer() == s.maximizing)
}

func (m *MinMax[M]) parallel(s *search, node Position[M], depth int) Result[M] {
	s.metrics.AddNode()
	if depth == 0 {
		return leaf(node, s.maximizing)
	}

	moves := slices.Collect(node.Movements())
	if len(moves) == 0 {
		return leaf(node, s.maximizing)
	}

	scored := make([]Result[M], len(moves))
	var wg sync.WaitGroup
	for i, move := range moves {
		s.spawn(&wg, depth, func() {
			child := m.parallel(s, node.Play(move), depth-1)
			scored[i] = Result[M]{Move: move, Found: true, Score: child.Score}
		})
	}
	wg.Wait()

	return pick(scored, node.CurrentPlayer() == s.maximizing)
}

// pick reduces scored children to the best one, keeping the earliest on ties.
func pick[M comparable](scored []Result[M], maximizing bool) Result[M] {
	if maximizing {
		return lo.MaxBy(scored, func(a, b Result[M]) bool { return a.Score > b.Score })
	}
	return lo.MinBy(scored, func(a, b Result[M]) bool { return a.Score < b.Score })
}
