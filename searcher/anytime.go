package searcher

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Publisher receives the best move found so far after every completed depth.
type Publisher[M comparable] interface {
	Publish(move M, found bool) error
}

// Anytime deepens the search one ply at a time, publishing each depth's move
// before starting the next one. It has no stopping condition of its own: the
// owner of the process is expected to kill it and read whatever was last
// published. It only returns when publishing fails or ctx is cancelled
// between two depths.
func Anytime[M comparable](ctx context.Context, engine Engine[M], pos Position[M], publisher Publisher[M]) error {
	for depth := 1; ; depth++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, metric := engine.Search(pos, depth)
		if err := publisher.Publish(result.Move, result.Found); err != nil {
			return fmt.Errorf("failed to publish depth %d result: %w", depth, err)
		}

		log.Debug().
			Int("depth", depth).
			Bool("found", result.Found).
			Int("score", result.Score).
			Int64("nodes", metric.Nodes).
			Dur("elapsed", metric.Duration).
			Msg("published-depth")
	}
}
