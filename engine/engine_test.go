package engine

import (
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"

	"blobwar/game"
	"blobwar/searcher"
	"blobwar/strategy"
)

const workerEnv = "BLOBWAR_TEST_WORKER"

// TestMain doubles as an anytime worker when the test binary is started by a
// Supervisor.
func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv(workerEnv) == "1" {
		args, err := ParseWorkerArgs(os.Args[2:])
		if err == nil {
			err = Work(context.Background(), args)
		}
		log.Error().Err(err).Msg("worker stopped")
		os.Exit(1)
	}
	os.Exit(m.Run())
}

// Cloning to b1 takes both blue blobs
const captureBoard = "......../......../......../......../......../......../.BB...../R....... r"

// Red is walled in for good, blue is free
const stuckBoard = "B......./......../......../......../......../###...../###...../R##..... r"

func parse(t *testing.T, text string) game.Board {
	t.Helper()
	b, err := game.ParseBoard(text)
	require.NoError(t, err)
	return b
}

type silentStrategy struct{}

func (silentStrategy) ComputeNextMove(pos searcher.Position[game.Move]) (game.Move, bool) {
	return game.Move{}, false
}

func (silentStrategy) String() string {
	return "Silent"
}

type fixedStrategy struct {
	move game.Move
}

func (f fixedStrategy) ComputeNextMove(pos searcher.Position[game.Move]) (game.Move, bool) {
	return f.move, true
}

func (f fixedStrategy) String() string {
	return "Fixed"
}

func TestLocalEngine(t *testing.T) {
	t.Run("full game", func(t *testing.T) {
		red := strategy.AlphaBeta[game.Move](2, searcher.WithMetrics())
		blue := strategy.NewGreedy[game.Move](3)
		e := LocalEngine(game.NewBoard(), red, blue, 30)

		winner, gameMetric, moveMetrics := e.Run()

		require.LessOrEqual(t, len(moveMetrics), 30)
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves+gameMetric.Passes)
		require.Equal(t, "red", gameMetric.StartingPlayer)
		require.Equal(t, winner, gameMetric.Winner)
		require.Equal(t, e.Board.Count(game.Red), gameMetric.RedBlobs)
		require.False(t, gameMetric.EndTime.Before(gameMetric.StartTime))
		for i, m := range moveMetrics {
			require.Equal(t, i+1, m.Step)
			if m.Player == "red" {
				require.Equal(t, 1, m.Depth, "Search metrics are recorded for searching strategies")
			} else {
				require.Zero(t, m.Nodes)
			}
		}
	})

	t.Run("winning move ends the game", func(t *testing.T) {
		red := strategy.AlphaBeta[game.Move](3)
		e := LocalEngine(parse(t, captureBoard), red, strategy.NewGreedy[game.Move](1), 10)

		winner, gameMetric, moveMetrics := e.Run()

		require.Equal(t, "red", winner)
		require.Len(t, moveMetrics, 1)
		require.Equal(t, "b1", moveMetrics[0].Move)
		require.Equal(t, 4, gameMetric.RedBlobs)
		require.True(t, e.Board.IsOver())
	})

	t.Run("stuck player passes", func(t *testing.T) {
		red := strategy.MinMax[game.Move](2)
		e := LocalEngine(parse(t, stuckBoard), red, strategy.NewGreedy[game.Move](1), 6)

		winner, gameMetric, moveMetrics := e.Run()

		require.Len(t, moveMetrics, 6)
		require.Equal(t, 3, gameMetric.Passes, "Red passes on every turn")
		require.Empty(t, moveMetrics[0].Move)
		require.NotEmpty(t, moveMetrics[1].Move)
		require.Equal(t, "blue", winner, "Blue leads when the turn limit is hit")
	})

	t.Run("illegal moves are replaced", func(t *testing.T) {
		red := fixedStrategy{move: game.Clone(game.NewSquare(4, 4))}
		e := LocalEngine(game.NewBoard(), red, strategy.NewGreedy[game.Move](1), 1)

		_, _, moveMetrics := e.Run()

		require.Equal(t, "b1", moveMetrics[0].Move, "The first legal move is played instead")
	})

	t.Run("missing moves are replaced when moves exist", func(t *testing.T) {
		e := LocalEngine(game.NewBoard(), silentStrategy{}, strategy.NewGreedy[game.Move](1), 2)

		_, gameMetric, moveMetrics := e.Run()

		require.Zero(t, gameMetric.Passes, "Red has legal moves so it cannot pass")
		require.Equal(t, "b1", moveMetrics[0].Move)
	})

	t.Run("construction", func(t *testing.T) {
		require.Panics(t, func() { LocalEngine(game.NewBoard(), nil, strategy.NewGreedy[game.Move](1), 10) })
		require.Panics(t, func() {
			LocalEngine(game.NewBoard(), strategy.NewGreedy[game.Move](1), strategy.NewGreedy[game.Move](1), 0)
		})
		require.Panics(t, func() {
			LocalEngine(game.NewBoard(), strategy.NewGreedy[game.Move](1), strategy.NewGreedy[game.Move](1), MaxMoves+1)
		})
	})
}
