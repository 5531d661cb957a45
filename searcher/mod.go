package searcher

import "iter"

// Infinity bounds every score a search can return. Position values fit in an
// int8, so a negated value never exceeds 128.
const Infinity = 1<<15 - 1

// Player identifies whose turn it is at a node.
type Player uint8

const (
	First Player = iota
	Second
)

func (p Player) Opponent() Player {
	return 1 - p
}

func (p Player) String() string {
	if p == First {
		return "first"
	}
	return "second"
}

// Position is an immutable game state at one node of the search tree. Games
// that want to be searched implement it.
type Position[M comparable] interface {
	// Movements lazily enumerates the legal moves in a fixed order.
	Movements() iter.Seq[M]
	// Play returns the position reached by move, leaving the receiver intact.
	Play(move M) Position[M]
	// Value scores the position from the perspective of the player on turn.
	Value() int8
	CurrentPlayer() Player
}

// Result is the outcome of searching one node: the best move, if any, and its
// score from the maximizing player's perspective.
type Result[M comparable] struct {
	Move  M
	Found bool
	Score int
}

// Engine searches a position to a fixed number of plies.
type Engine[M comparable] interface {
	Search(pos Position[M], depth int) (Result[M], SearchMetric)
}

func leaf[M comparable](node Position[M], maximizing Player) Result[M] {
	if node.CurrentPlayer() == maximizing {
		return Result[M]{Score: int(node.Value())}
	}
	return Result[M]{Score: -int(node.Value())}
}

func worst(maximizing bool) int {
	if maximizing {
		return -Infinity
	}
	return Infinity
}

// better reports whether score beats current for the side to move.
func better(maximizing bool, score, current int) bool {
	if maximizing {
		return score > current
	}
	return score < current
}
