package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotation    = errors.New("invalid notation")
	ErrInvalidMove = errors.New("invalid move")
)

// Move either clones a blob onto an adjacent empty square (From == To, the
// source blob does not matter) or jumps a blob two squares away.
type Move struct {
	From Square
	To   Square
}

func Clone(to Square) Move {
	return Move{From: to, To: to}
}

func Jump(from, to Square) Move {
	return Move{From: from, To: to}
}

func (m Move) IsClone() bool {
	return m.From == m.To
}

// Valid checks the move's geometry, not its legality on a board.
func (m Move) Valid() bool {
	if m.From >= Squares || m.To >= Squares {
		return false
	}
	return m.IsClone() || distance(m.From, m.To) == 2
}

func (m Move) String() string {
	if m.IsClone() {
		return m.To.String()
	}
	return m.From.String() + "-" + m.To.String()
}

// ParseMove reads "d4" as a clone onto d4 and "b2-d4" as a jump.
func ParseMove(text string) (Move, error) {
	text = strings.TrimSpace(strings.ToLower(text))
	from, to, isJump := strings.Cut(text, "-")
	if !isJump {
		sq, err := ParseSquare(from)
		if err != nil {
			return Move{}, err
		}
		return Clone(sq), nil
	}

	src, err := ParseSquare(from)
	if err != nil {
		return Move{}, err
	}
	dst, err := ParseSquare(to)
	if err != nil {
		return Move{}, err
	}
	m := Jump(src, dst)
	if !m.Valid() {
		return Move{}, fmt.Errorf("%w: %s does not jump two squares", ErrInvalidMove, m)
	}
	return m, nil
}

// MoveCodec packs moves into the 32-bit codes published through shared
// memory: source square in the second byte, destination in the first.
type MoveCodec struct{}

func (MoveCodec) Encode(m Move) (uint32, error) {
	if !m.Valid() {
		return 0, fmt.Errorf("%w: from %d to %d", ErrInvalidMove, m.From, m.To)
	}
	return uint32(m.From)<<8 | uint32(m.To), nil
}

func (MoveCodec) Decode(code uint32) (Move, error) {
	if code>>16 != 0 {
		return Move{}, fmt.Errorf("%w: code %#x", ErrInvalidMove, code)
	}
	m := Move{From: Square(code >> 8), To: Square(code & 0xff)}
	if !m.Valid() {
		return Move{}, fmt.Errorf("%w: code %#x", ErrInvalidMove, code)
	}
	return m, nil
}
