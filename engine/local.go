package engine

import (
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"blobwar/experiments/metrics"
	"blobwar/game"
	"blobwar/strategy"
	"blobwar/utils"
)

// Local pits two in-process strategies against each other.
type Local struct {
	Board      game.Board
	Strategies [2]strategy.Strategy[game.Move] // Indexed by player: red, blue
	MaxTurns   int
}

func LocalEngine(board game.Board, red, blue strategy.Strategy[game.Move], maxTurns int) *Local {
	if red == nil || blue == nil {
		panic("both players need a strategy")
	}
	if maxTurns < 1 || maxTurns > MaxMoves {
		panic("max turns out of range")
	}
	return &Local{
		Board:      board,
		Strategies: [2]strategy.Strategy[game.Move]{red, blue},
		MaxTurns:   maxTurns,
	}
}

// Run executes the game loop. A player without a move passes.
func (e *Local) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: game.ColorName(e.Board.Turn),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s (%v) against %s (%v), %s is starting",
		game.ColorName(game.Red), e.Strategies[game.Red],
		game.ColorName(game.Blue), e.Strategies[game.Blue],
		gameMetric.StartingPlayer)

	for turn := 1; !e.Board.IsOver() && turn <= e.MaxTurns; turn++ {
		player := e.Board.Turn
		s := e.Strategies[player]

		start := time.Now()
		move, ok := s.ComputeNextMove(e.Board)
		moveMetric := metrics.MoveMetric{
			Step:     turn,
			Player:   game.ColorName(player),
			Duration: time.Since(start),
		}
		if measured, isMeasured := s.(strategy.Measured); isMeasured {
			moveMetric.SearchMetric = measured.LastMetric()
		}

		move, ok = e.legal(move, ok)
		if !ok {
			log.Debug().Msgf("turn %d: %s passes", turn, moveMetric.Player)
			gameMetric.Passes++
			e.Board = e.Board.Pass()
		} else {
			moveMetric.Move = move.String()
			log.Debug().Msgf("turn %d: %s plays %v", turn, moveMetric.Player, move)
			e.Board = e.Board.Apply(move)
		}
		moveMetrics = append(moveMetrics, moveMetric)
		if zerolog.GlobalLevel() <= zerolog.DebugLevel {
			log.Debug().Msg("\n" + e.Board.Display())
		}
	}

	winner := ""
	if w, ok := e.Board.Winner(); ok {
		winner = game.ColorName(w)
	}
	if e.Board.IsOver() {
		log.Info().Msgf("game over after %d turns, winner: %q", len(moveMetrics), winner)
	} else {
		log.Info().Msgf("stopped after %d turns, leading: %q", e.MaxTurns, winner)
	}

	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics) - gameMetric.Passes
	gameMetric.RedBlobs = e.Board.Count(game.Red)
	gameMetric.BlueBlobs = e.Board.Count(game.Blue)
	return winner, gameMetric, moveMetrics
}

// legal replaces an illegal or missing move by the first legal one. It
// returns false only when the board has no legal move.
func (e *Local) legal(move game.Move, found bool) (game.Move, bool) {
	moves := slices.Collect(e.Board.Movements())
	if found && utils.FindIndex(moves, move) >= 0 {
		return move, true
	}
	if len(moves) == 0 {
		return game.Move{}, false
	}
	if found {
		log.Warn().Msgf("%v is not legal on %v, playing %v instead", move, e.Board, moves[0])
	} else {
		log.Warn().Msgf("no move on %v, playing %v instead", e.Board, moves[0])
	}
	return moves[0], true
}
