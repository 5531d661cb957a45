package searcher

import (
	"slices"
	"sync"

	"github.com/samber/lo"
)

// AlphaBeta is Min-Max with an [alpha, beta] pruning window. It returns the
// same score as MinMax at the same depth while visiting fewer nodes.
type AlphaBeta[M comparable] struct {
	settings settings
}

func NewAlphaBeta[M comparable](options ...Option) *AlphaBeta[M] {
	return &AlphaBeta[M]{settings: newSettings(options)}
}

// Search returns the best move at pos looking depth plies ahead. The
// maximizing player is the one on turn at pos and the root window is
// (-Infinity, +Infinity).
func (a *AlphaBeta[M]) Search(pos Position[M], depth int) (Result[M], SearchMetric) {
	s := a.settings.begin(pos.CurrentPlayer(), depth)

	var result Result[M]
	switch a.settings.mode {
	case Functional:
		result = a.functional(s, pos, depth, -Infinity, Infinity)
	case Parallel:
		result = a.parallel(s, pos, depth, -Infinity, Infinity)
	default:
		result = a.sequential(s, pos, depth, -Infinity, Infinity)
	}
	return result, s.metrics.Complete()
}

// sequential only moves the bound on strict improvement, so a child tying the
// bound never becomes the chosen move. A node where no child beats the
// window returns no move and its worst score.
func (a *AlphaBeta[M]) sequential(s *search, node Position[M], depth, alpha, beta int) Result[M] {
	s.metrics.AddNode()
	if depth == 0 {
		return leaf(node, s.maximizing)
	}

	maximizing := node.CurrentPlayer() == s.maximizing
	best := Result[M]{Score: worst(maximizing)}
	expanded := false
	for move := range node.Movements() {
		expanded = true
		child := a.sequential(s, node.Play(move), depth-1, alpha, beta)
		if maximizing && child.Score > alpha {
			alpha = child.Score
			best = Result[M]{Move: move, Found: true, Score: child.Score}
		} else if !maximizing && child.Score < beta {
			beta = child.Score
			best = Result[M]{Move: move, Found: true, Score: child.Score}
		}
		if alpha >= beta {
			s.metrics.AddCutoff()
			break
		}
	}
	if !expanded { // No legal move
		return leaf(node, s.maximizing)
	}
	return best
}

type window[M comparable] struct {
	alpha, beta int
	best        Result[M]
}

func (a *AlphaBeta[M]) functional(s *search, node Position[M], depth, alpha, beta int) Result[M] {
	s.metrics.AddNode()
	if depth == 0 {
		return leaf(node, s.maximizing)
	}

	moves := slices.Collect(node.Movements())
	if len(moves) == 0 {
		return leaf(node, s.maximizing)
	}

	maximizing := node.CurrentPlayer() == s.maximizing
	initial := window[M]{alpha: alpha, beta: beta, best: Result[M]{Score: worst(maximizing)}}
	final := lo.Reduce(moves, func(w window[M], move M, _ int) window[M] {
		if w.alpha >= w.beta { // Pruned
			return w
		}
		child := a.functional(s, node.Play(move), depth-1, w.alpha, w.beta)
		if maximizing && child.Score > w.alpha {
			w.alpha = child.Score
			w.best = Result[M]{Move: move, Found: true, Score: child.Score}
		} else if !maximizing && child.Score < w.beta {
			w.beta = child.Score
			w.best = Result[M]{Move: move, Found: true, Score: child.Score}
		}
		if w.alpha >= w.beta {
			s.metrics.AddCutoff()
		}
		return w
	}, initial)
	return final.best
}

// parallel searches siblings concurrently against a shared bound. A child
// result is a candidate only if it beat the bound it was searched with: a
// child that failed low may report a tied score that is not its true value.
func (a *AlphaBeta[M]) parallel(s *search, node Position[M], depth, alpha, beta int) Result[M] {
	s.metrics.AddNode()
	if depth == 0 {
		return leaf(node, s.maximizing)
	}

	moves := slices.Collect(node.Movements())
	if len(moves) == 0 {
		return leaf(node, s.maximizing)
	}

	maximizing := node.CurrentPlayer() == s.maximizing
	shared := newBound(maximizing, alpha, beta)
	candidates := make([]Result[M], len(moves))
	var wg sync.WaitGroup
	for i, move := range moves {
		s.spawn(&wg, depth, func() {
			if shared.crossed() {
				return
			}
			childAlpha, childBeta := shared.window()
			seen := childBeta
			if maximizing {
				seen = childAlpha
			}
			child := a.parallel(s, node.Play(move), depth-1, childAlpha, childBeta)
			if better(maximizing, child.Score, seen) {
				candidates[i] = Result[M]{Move: move, Found: true, Score: child.Score}
				shared.tighten(child.Score)
			}
		})
	}
	wg.Wait()

	if shared.crossed() {
		s.metrics.AddCutoff()
	}
	found := lo.Filter(candidates, func(r Result[M], _ int) bool { return r.Found })
	if len(found) == 0 {
		return Result[M]{Score: worst(maximizing)}
	}
	return pick(found, maximizing)
}
