package engine

import (
	"context"
	"flag"
	"fmt"

	"github.com/rs/zerolog/log"

	"blobwar/game"
	"blobwar/searcher"
	"blobwar/shmem"
)

// WorkerArgs is the command line of an anytime worker process.
type WorkerArgs struct {
	Slot          string
	Board         string
	Algorithm     string
	Mode          string
	Goroutines    int
	ParallelDepth int
}

func ParseWorkerArgs(args []string) (WorkerArgs, error) {
	var w WorkerArgs
	fs := flag.NewFlagSet("anytime", flag.ContinueOnError)
	fs.StringVar(&w.Slot, "slot", "", "shared memory slot to publish moves to")
	fs.StringVar(&w.Board, "board", "", "position to search, in compact board notation")
	fs.StringVar(&w.Algorithm, "algorithm", "alphabeta", "alphabeta or minmax")
	fs.StringVar(&w.Mode, "mode", searcher.Parallel.String(), "sequential, functional or parallel")
	fs.IntVar(&w.Goroutines, "goroutines", 0, "goroutines for the parallel mode, 0 for GOMAXPROCS")
	fs.IntVar(&w.ParallelDepth, "parallel-depth", searcher.DefaultParallelDepth, "smallest depth still searched in parallel")
	if err := fs.Parse(args); err != nil {
		return WorkerArgs{}, err
	}
	if w.Slot == "" || w.Board == "" {
		return WorkerArgs{}, fmt.Errorf("both --slot and --board are required")
	}
	return w, nil
}

func (w WorkerArgs) engine() (searcher.Engine[game.Move], error) {
	mode, err := searcher.ParseMode(w.Mode)
	if err != nil {
		return nil, err
	}
	options := []searcher.Option{
		searcher.WithMode(mode),
		searcher.WithGoroutines(w.Goroutines),
		searcher.WithParallelDepth(w.ParallelDepth),
		searcher.WithMetrics(),
	}
	switch w.Algorithm {
	case "alphabeta":
		return searcher.NewAlphaBeta[game.Move](options...), nil
	case "minmax":
		return searcher.NewMinMax[game.Move](options...), nil
	default:
		return nil, fmt.Errorf("unknown algorithm %q", w.Algorithm)
	}
}

// Work deepens the search on the worker's board until the process is killed
// or ctx is cancelled, publishing every completed depth to the slot. A slot
// that cannot be connected yields shmem.ErrConnect.
func Work(ctx context.Context, w WorkerArgs) error {
	board, err := game.ParseBoard(w.Board)
	if err != nil {
		return err
	}
	eng, err := w.engine()
	if err != nil {
		return err
	}

	slot, err := shmem.Connect(w.Slot)
	if err != nil {
		return err
	}
	defer slot.Close()

	log.Debug().Str("slot", w.Slot).Str("board", w.Board).Msg("worker-started")
	return searcher.Anytime(ctx, eng, board, shmem.NewAtomicMove[game.Move](slot, game.MoveCodec{}))
}
