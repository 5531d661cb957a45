package game

import (
	"iter"
	"math/bits"

	"blobwar/searcher"
)

// Board is the complete game state. It is a small value: copying it is the
// way to branch, and every operation returns a new Board.
type Board struct {
	Red   uint64 // Red blobs, one bit per square
	Blue  uint64 // Blue blobs
	Holes uint64 // Squares nobody can play on
	Turn  searcher.Player
}

// NewBoard returns the starting position: red in a1 and h8, blue in a8 and
// h1, red to move.
func NewBoard() Board {
	return Board{
		Red:  1<<NewSquare(0, 0) | 1<<NewSquare(Size-1, Size-1),
		Blue: 1<<NewSquare(Size-1, 0) | 1<<NewSquare(0, Size-1),
		Turn: Red,
	}
}

func (b Board) blobs(p searcher.Player) uint64 {
	if p == Red {
		return b.Red
	}
	return b.Blue
}

func (b Board) empty() uint64 {
	return ^(b.Red | b.Blue | b.Holes)
}

// Movements enumerates clones by destination square, then jumps by source
// and destination square.
func (b Board) Movements() iter.Seq[Move] {
	own := b.blobs(b.Turn)
	empty := b.empty()
	return func(yield func(Move) bool) {
		more := squares(empty, func(to Square) bool {
			if adjacent[to]&own == 0 {
				return true
			}
			return yield(Clone(to))
		})
		if !more {
			return
		}
		squares(own, func(from Square) bool {
			return squares(jumpable[from]&empty, func(to Square) bool {
				return yield(Jump(from, to))
			})
		})
	}
}

func (b Board) HasMoves() bool {
	for range b.Movements() {
		return true
	}
	return false
}

// Apply plays m for the player on turn and hands the turn over. Opponent
// blobs next to the destination change color.
func (b Board) Apply(m Move) Board {
	own, opp := b.Red, b.Blue
	if b.Turn == Blue {
		own, opp = opp, own
	}

	own |= 1 << m.To
	if !m.IsClone() {
		own &^= 1 << m.From
	}
	captured := adjacent[m.To] & opp
	own |= captured
	opp &^= captured

	next := Board{Holes: b.Holes, Turn: b.Turn.Opponent()}
	if b.Turn == Red {
		next.Red, next.Blue = own, opp
	} else {
		next.Red, next.Blue = opp, own
	}
	return next
}

func (b Board) Play(m Move) searcher.Position[Move] {
	return b.Apply(m)
}

// Pass hands the turn over without moving, for a player who is stuck.
func (b Board) Pass() Board {
	b.Turn = b.Turn.Opponent()
	return b
}

func (b Board) CurrentPlayer() searcher.Player {
	return b.Turn
}

// Count returns the number of blobs p has on the board.
func (b Board) Count(p searcher.Player) int {
	return bits.OnesCount64(b.blobs(p))
}
