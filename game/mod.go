package game

import "blobwar/searcher"

// Blobwar is played on an 8x8 board by two colors. Red moves first.

const (
	Size    = 8
	Squares = Size * Size
)

const (
	Red  = searcher.First
	Blue = searcher.Second
)

// ColorName names a player by its blob color.
func ColorName(p searcher.Player) string {
	if p == Red {
		return "red"
	}
	return "blue"
}
