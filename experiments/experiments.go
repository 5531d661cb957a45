package experiments

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"blobwar/config"
	"blobwar/engine"
	"blobwar/experiments/metrics"
	"blobwar/game"
	"blobwar/searcher"
)

type Options struct {
	Games       int // Per match up
	Concurrency int // Games of one match up played at once
	MaxTurns    int
	Dir         string
	Worker      []string // Anytime worker command
}

var experiments = map[string]func(Options) (string, error){
	"modes":      RunModesExperiment,
	"levels":     RunLevelsExperiment,
	"throughput": RunThroughputExperiment,
}

// Names lists the experiments Run knows.
func Names() []string {
	names := lo.Keys(experiments)
	sort.Strings(names)
	return names
}

// Run executes the named experiment and returns the folder holding its records.
func Run(name string, opts Options) (string, error) {
	run, ok := experiments[name]
	if !ok {
		return "", fmt.Errorf("unknown experiment %q, expected one of %s", name, strings.Join(Names(), ", "))
	}
	return run(opts)
}

func agent(id int, algorithm string, level int, mode searcher.Mode) metrics.AgentConfig {
	return metrics.AgentConfig{ID: id, Player: config.Player{
		Algorithm:     algorithm,
		Level:         level,
		Mode:          mode.String(),
		ParallelDepth: searcher.DefaultParallelDepth,
		Seed:          uint64(id),
	}}
}

// RunModesExperiment pairs every search mode against the sequential
// Alpha-Beta baseline, alternating colors.
func RunModesExperiment(opts Options) (string, error) {
	baseline := agent(0, "alphabeta", 4, searcher.Sequential)
	configs := []metrics.AgentConfig{
		agent(1, "alphabeta", 4, searcher.Functional),
		agent(2, "alphabeta", 4, searcher.Parallel),
		agent(3, "minmax", 4, searcher.Sequential),
		agent(4, "minmax", 4, searcher.Parallel),
	}
	matchUps := [][2]metrics.AgentConfig{}
	for _, c := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, c}, [2]metrics.AgentConfig{c, baseline})
	}
	return runExperiment("modes", append(configs, baseline), matchUps, opts)
}

// RunLevelsExperiment pits deeper Alpha-Beta searches against the greedy
// player.
func RunLevelsExperiment(opts Options) (string, error) {
	baseline := agent(0, "greedy", 1, searcher.Sequential)
	configs := []metrics.AgentConfig{
		agent(1, "alphabeta", 2, searcher.Sequential),
		agent(2, "alphabeta", 3, searcher.Sequential),
		agent(3, "alphabeta", 4, searcher.Parallel),
		agent(4, "alphabeta", 5, searcher.Parallel),
	}
	matchUps := lo.Map(configs, func(c metrics.AgentConfig, _ int) [2]metrics.AgentConfig {
		return [2]metrics.AgentConfig{c, baseline}
	})
	return runExperiment("levels", append(configs, baseline), matchUps, opts)
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig, opts Options) (string, error) {
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		games := make([]metrics.GameRecord, opts.Games)
		moves := make([][]metrics.MoveRecord, opts.Games)
		g := errgroup.Group{}
		g.SetLimit(opts.Concurrency)
		for i := 0; i < opts.Games; i++ {
			id := mi*opts.Games + i + 1
			g.Go(func() error {
				winner, gameMetric, moveMetrics, err := runGame(config1, config2, opts)
				if err != nil {
					return fmt.Errorf("game %d: %w", id, err)
				}
				games[i] = metrics.GameRecord{
					ID:         id,
					Agent1:     config1.ID,
					Agent2:     config2.ID,
					GameMetric: gameMetric,
				}
				moves[i] = lo.Map(moveMetrics, func(mm metrics.MoveMetric, _ int) metrics.MoveRecord {
					return metrics.MoveRecord{Game: id, MoveMetric: mm}
				})
				log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %q", mi+1, len(matchUps), i+1, opts.Games, winner)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return "", err
		}
		gameRecords = append(gameRecords, games...)
		moveRecords = append(moveRecords, slices.Concat(moves...)...)

		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)
	return write(name, configs, gameRecords, moveRecords, opts)
}

func write(name string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord, opts Options) (string, error) {
	writer, err := metrics.NewWriter(opts.Dir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}

// runGame plays a single game, config1 as red and config2 as blue
func runGame(config1, config2 metrics.AgentConfig, opts Options) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	red, err := engine.NewStrategy(config1.Player, opts.Worker)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	blue, err := engine.NewStrategy(config2.Player, opts.Worker)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	var e engine.Engine = engine.LocalEngine(game.NewBoard(), red, blue, opts.MaxTurns)

	winner, gameMetric, moveMetrics := e.Run()
	return winner, gameMetric, moveMetrics, nil
}
