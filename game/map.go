package game

import (
	"fmt"
	"math/bits"
)

// Square indexes a board cell as row*Size + col, a1 being 0 and h8 63.
type Square uint8

func NewSquare(row, col int) Square {
	return Square(row*Size + col)
}

func (s Square) Row() int { return int(s) / Size }
func (s Square) Col() int { return int(s) % Size }

func (s Square) String() string {
	return fmt.Sprintf("%c%d", 'a'+s.Col(), s.Row()+1)
}

func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return 0, fmt.Errorf("%w: square %q", ErrNotation, text)
	}
	col := int(text[0]) - 'a'
	row := int(text[1]) - '1'
	if col < 0 || col >= Size || row < 0 || row >= Size {
		return 0, fmt.Errorf("%w: square %q", ErrNotation, text)
	}
	return NewSquare(row, col), nil
}

// distance is the king distance between two squares.
func distance(a, b Square) int {
	return max(abs(a.Row()-b.Row()), abs(a.Col()-b.Col()))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// adjacent and jumpable hold, per square, the squares at king distance
// exactly 1 and exactly 2.
var adjacent, jumpable [Squares]uint64

func init() {
	for a := Square(0); a < Squares; a++ {
		for b := Square(0); b < Squares; b++ {
			switch distance(a, b) {
			case 1:
				adjacent[a] |= 1 << b
			case 2:
				jumpable[a] |= 1 << b
			}
		}
	}
}

// squares yields the squares set in mask in increasing order.
func squares(mask uint64, yield func(Square) bool) bool {
	for mask != 0 {
		s := Square(bits.TrailingZeros64(mask))
		if !yield(s) {
			return false
		}
		mask &= mask - 1
	}
	return true
}
