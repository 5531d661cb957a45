package strategy

import (
	"fmt"

	"blobwar/searcher"
)

type Strategy[M comparable] interface {
	// ComputeNextMove returns the move to play at pos, or false when pos has
	// no legal move
	ComputeNextMove(pos searcher.Position[M]) (M, bool)
	String() string
}

// Measured is implemented by strategies that search, so callers can record
// the metrics of the last decision.
type Measured interface {
	LastMetric() searcher.SearchMetric
}

// Search plays the move a fixed-depth engine finds best.
type Search[M comparable] struct {
	name   string
	level  int
	engine searcher.Engine[M]
	last   searcher.SearchMetric
}

// MinMax looks level-1 plies ahead with a Min-Max engine.
func MinMax[M comparable](level int, options ...searcher.Option) *Search[M] {
	return newSearch("Min - Max", level, searcher.NewMinMax[M](options...))
}

// AlphaBeta looks level-1 plies ahead with an Alpha-Beta engine.
func AlphaBeta[M comparable](level int, options ...searcher.Option) *Search[M] {
	return newSearch("Alpha - Beta", level, searcher.NewAlphaBeta[M](options...))
}

func newSearch[M comparable](name string, level int, engine searcher.Engine[M]) *Search[M] {
	if level < 1 {
		panic(fmt.Sprintf("search level must be at least 1, got %d", level))
	}
	return &Search[M]{name: name, level: level, engine: engine}
}

// Plies is the depth handed to the engine. Level 1 still searches one ply so
// that a legal move is always returned.
func (s *Search[M]) Plies() int {
	return max(s.level-1, 1)
}

func (s *Search[M]) ComputeNextMove(pos searcher.Position[M]) (M, bool) {
	result, metric := s.engine.Search(pos, s.Plies())
	s.last = metric
	return result.Move, result.Found
}

func (s *Search[M]) LastMetric() searcher.SearchMetric {
	return s.last
}

func (s *Search[M]) String() string {
	return fmt.Sprintf("%s (max level: %d)", s.name, s.level)
}
