package strategy

import (
	"bufio"
	"fmt"
	"io"
	"slices"

	"github.com/rs/zerolog/log"

	"blobwar/searcher"
	"blobwar/utils"
)

// Human asks for moves on a terminal.
type Human[M comparable] struct {
	in    *bufio.Scanner
	out   io.Writer
	parse func(string) (M, error)
}

func NewHuman[M comparable](in io.Reader, out io.Writer, parse func(string) (M, error)) *Human[M] {
	return &Human[M]{in: bufio.NewScanner(in), out: out, parse: parse}
}

// ComputeNextMove prompts until a legal move is entered. It panics when the
// input ends first.
func (h *Human[M]) ComputeNextMove(pos searcher.Position[M]) (M, bool) {
	legal := slices.Collect(pos.Movements())
	if len(legal) == 0 {
		var none M
		return none, false
	}

	for {
		fmt.Fprintf(h.out, "%v\nmove: ", pos)
		if !h.in.Scan() {
			panic(fmt.Sprintf("human input closed: %v", h.in.Err()))
		}
		move, err := h.parse(h.in.Text())
		if err != nil {
			log.Debug().Err(err).Msg("unparsable move")
			fmt.Fprintf(h.out, "%v\n", err)
			continue
		}
		if utils.FindIndex(legal, move) < 0 {
			fmt.Fprintf(h.out, "illegal move %v\n", move)
			continue
		}
		return move, true
	}
}

func (h *Human[M]) String() string {
	return "Human"
}
