package game

import "blobwar/searcher"

// Value is the blob difference from the point of view of the player on
// turn: positive when the player to move is ahead.
func (b Board) Value() int8 {
	return int8(b.Count(b.Turn) - b.Count(b.Turn.Opponent()))
}

// IsOver reports whether the game has ended: one side is wiped out, the board
// is full, or neither side can move.
func (b Board) IsOver() bool {
	if b.Red == 0 || b.Blue == 0 || b.empty() == 0 {
		return true
	}
	return !b.HasMoves() && !b.Pass().HasMoves()
}

// Winner returns the player with more blobs, or false on a draw.
func (b Board) Winner() (searcher.Player, bool) {
	red, blue := b.Count(Red), b.Count(Blue)
	switch {
	case red > blue:
		return Red, true
	case blue > red:
		return Blue, true
	default:
		return 0, false
	}
}
