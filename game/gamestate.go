package game

import (
	"fmt"
	"strings"
)

const (
	redCell   = 'R'
	blueCell  = 'B'
	holeCell  = '#'
	emptyCell = '.'
)

// String renders the board on one line, rank 8 first, ranks separated by
// '/', followed by the player on turn: "B......R/......../..... r".
func (b Board) String() string {
	var sb strings.Builder
	for row := Size - 1; row >= 0; row-- {
		for col := 0; col < Size; col++ {
			sb.WriteByte(b.cell(NewSquare(row, col)))
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}
	if b.Turn == Red {
		sb.WriteString(" r")
	} else {
		sb.WriteString(" b")
	}
	return sb.String()
}

// Display renders the board over several lines with coordinates.
func (b Board) Display() string {
	var sb strings.Builder
	for row := Size - 1; row >= 0; row-- {
		fmt.Fprintf(&sb, "%d ", row+1)
		for col := 0; col < Size; col++ {
			sb.WriteByte(b.cell(NewSquare(row, col)))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh\n")
	fmt.Fprintf(&sb, "%s to move (red %d, blue %d)", ColorName(b.Turn), b.Count(Red), b.Count(Blue))
	return sb.String()
}

func (b Board) cell(s Square) byte {
	bit := uint64(1) << s
	switch {
	case b.Red&bit != 0:
		return redCell
	case b.Blue&bit != 0:
		return blueCell
	case b.Holes&bit != 0:
		return holeCell
	default:
		return emptyCell
	}
}

// ParseBoard reads the format produced by Board.String.
func ParseBoard(text string) (Board, error) {
	cells, turn, ok := strings.Cut(strings.TrimSpace(text), " ")
	if !ok {
		return Board{}, fmt.Errorf("%w: board %q has no player on turn", ErrNotation, text)
	}
	rows := strings.Split(cells, "/")
	if len(rows) != Size {
		return Board{}, fmt.Errorf("%w: board has %d ranks", ErrNotation, len(rows))
	}

	var b Board
	for i, line := range rows {
		if len(line) != Size {
			return Board{}, fmt.Errorf("%w: rank %d has %d cells", ErrNotation, Size-i, len(line))
		}
		row := Size - 1 - i
		for col := 0; col < Size; col++ {
			bit := uint64(1) << NewSquare(row, col)
			switch line[col] {
			case redCell:
				b.Red |= bit
			case blueCell:
				b.Blue |= bit
			case holeCell:
				b.Holes |= bit
			case emptyCell:
			default:
				return Board{}, fmt.Errorf("%w: unexpected cell %q", ErrNotation, line[col])
			}
		}
	}

	switch strings.TrimSpace(turn) {
	case "r":
		b.Turn = Red
	case "b":
		b.Turn = Blue
	default:
		return Board{}, fmt.Errorf("%w: unknown player %q", ErrNotation, turn)
	}
	return b, nil
}
