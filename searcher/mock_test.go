package searcher

import (
	"iter"
	"math/rand"
	"sync/atomic"
)

// mockTree is an explicit game tree. Move i leads to children[i].
type mockTree struct {
	player   Player
	value    int8
	children []*mockTree
	// enumerations counts Movements calls over the whole tree
	enumerations *atomic.Int64
}

func (m *mockTree) Movements() iter.Seq[int] {
	m.enumerations.Add(1)
	return func(yield func(int) bool) {
		for i := range m.children {
			if !yield(i) {
				return
			}
		}
	}
}

func (m *mockTree) Play(move int) Position[int] {
	return m.children[move]
}

func (m *mockTree) Value() int8 {
	return m.value
}

func (m *mockTree) CurrentPlayer() Player {
	return m.player
}

type treeBuilder struct {
	enumerations atomic.Int64
}

func (b *treeBuilder) node(player Player, value int8, children ...*mockTree) *mockTree {
	return &mockTree{player: player, value: value, children: children, enumerations: &b.enumerations}
}

// random grows a tree of the given height. Players usually alternate but
// sometimes move twice in a row, and some inner nodes have no children.
func (b *treeBuilder) random(rng *rand.Rand, player Player, height int) *mockTree {
	value := int8(rng.Intn(256) - 128)
	if height == 0 {
		return b.node(player, value)
	}
	width := rng.Intn(5)
	children := make([]*mockTree, width)
	for i := range children {
		next := player.Opponent()
		if rng.Intn(6) == 0 {
			next = player
		}
		children[i] = b.random(rng, next, height-1)
	}
	return b.node(player, value, children...)
}

// reference is a plain recursive Min-Max used to check the engines.
func reference(node *mockTree, depth int, maximizing Player) int {
	if depth == 0 || len(node.children) == 0 {
		if node.player == maximizing {
			return int(node.value)
		}
		return -int(node.value)
	}
	best := reference(node.children[0], depth-1, maximizing)
	for _, child := range node.children[1:] {
		score := reference(child, depth-1, maximizing)
		if node.player == maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}

type engineCase struct {
	name   string
	engine Engine[int]
}

var parallelOptions = []Option{WithMode(Parallel), WithGoroutines(4), WithParallelDepth(1), WithMetrics()}

func allEngines() []engineCase {
	return []engineCase{
		{"minmax sequential", NewMinMax[int](WithMetrics())},
		{"minmax functional", NewMinMax[int](WithMode(Functional), WithMetrics())},
		{"minmax parallel", NewMinMax[int](parallelOptions...)},
		{"alphabeta sequential", NewAlphaBeta[int](WithMetrics())},
		{"alphabeta functional", NewAlphaBeta[int](WithMode(Functional), WithMetrics())},
		{"alphabeta parallel", NewAlphaBeta[int](parallelOptions...)},
	}
}
