package engine

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"blobwar/config"
	"blobwar/game"
	"blobwar/searcher"
	"blobwar/strategy"
)

// NewStrategy builds the strategy p describes. worker is the command that
// starts an anytime worker process.
func NewStrategy(p config.Player, worker []string) (strategy.Strategy[game.Move], error) {
	mode, err := searcher.ParseMode(p.Mode)
	if err != nil {
		return nil, err
	}
	options := []searcher.Option{
		searcher.WithMode(mode),
		searcher.WithGoroutines(p.Goroutines),
		searcher.WithParallelDepth(p.ParallelDepth),
		searcher.WithMetrics(),
	}

	switch p.Algorithm {
	case "minmax":
		return strategy.MinMax[game.Move](p.Level, options...), nil
	case "alphabeta":
		return strategy.AlphaBeta[game.Move](p.Level, options...), nil
	case "greedy":
		return strategy.NewGreedy[game.Move](p.Seed), nil
	case "human":
		return strategy.NewHuman(os.Stdin, os.Stdout, game.ParseMove), nil
	case "anytime":
		algorithm := p.Anytime
		if algorithm == "" {
			algorithm = "alphabeta"
		}
		command := append(slices.Clone(worker), "anytime",
			"-algorithm", algorithm,
			"-mode", p.Mode,
			"-goroutines", strconv.Itoa(p.Goroutines),
			"-parallel-depth", strconv.Itoa(p.ParallelDepth))
		return NewAnytime(Supervisor{Command: command, Deadline: p.Deadline}), nil
	default:
		return nil, fmt.Errorf("unknown algorithm %q", p.Algorithm)
	}
}
