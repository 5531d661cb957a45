package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"blobwar/config"
	"blobwar/engine"
	"blobwar/experiments"
	"blobwar/game"
)

const usage = `usage: blobwar <command> [flags]

commands:
  battle      play the configured red and blue strategies against each other
  anytime     search a position until killed, publishing moves to a shared slot
  experiment  run a named experiment (%s)
`

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, usage, strings.Join(experiments.Names(), ", "))
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "battle":
		err = battle(os.Args[2:])
	case "anytime":
		anytime(os.Args[2:])
	case "experiment":
		err = experiment(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, usage, strings.Join(experiments.Names(), ", "))
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg(os.Args[1] + " failed")
	}
}

// loadConfig adds the common flags to fs, parses args and loads the config.
func loadConfig(fs *flag.FlagSet, args []string) (*config.Config, error) {
	path := fs.String("config", "", "YAML config file, BLOBWAR_* variables override it")
	debug := fs.Bool("debug", false, "log every move")
	fs.Parse(args)

	cfg, err := config.Load(*path)
	if err != nil {
		return nil, err
	}
	if *debug || cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if cfg.Worker == "" {
		if cfg.Worker, err = os.Executable(); err != nil {
			return nil, fmt.Errorf("failed to locate the anytime worker: %w", err)
		}
	}
	return cfg, nil
}

func battle(args []string) error {
	cfg, err := loadConfig(flag.NewFlagSet("battle", flag.ExitOnError), args)
	if err != nil {
		return err
	}

	board := game.NewBoard()
	if cfg.Board != "" {
		if board, err = game.ParseBoard(cfg.Board); err != nil {
			return err
		}
	}
	red, err := engine.NewStrategy(cfg.Red, []string{cfg.Worker})
	if err != nil {
		return fmt.Errorf("red: %w", err)
	}
	blue, err := engine.NewStrategy(cfg.Blue, []string{cfg.Worker})
	if err != nil {
		return fmt.Errorf("blue: %w", err)
	}

	e := engine.LocalEngine(board, red, blue, cfg.MaxTurns)
	winner, gameMetric, _ := e.Run()
	fmt.Println(e.Board.Display())
	if winner == "" {
		fmt.Printf("draw after %d moves\n", gameMetric.TotalMoves)
	} else {
		fmt.Printf("%s wins after %d moves (%v)\n", winner, gameMetric.TotalMoves, gameMetric.Duration)
	}
	return nil
}

// anytime is the worker side of engine.Supervisor. It exits only when killed,
// or on failure.
func anytime(args []string) {
	workerArgs, err := engine.ParseWorkerArgs(args)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid worker arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = engine.Work(ctx, workerArgs)
	if err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Str("slot", workerArgs.Slot).Msg("anytime worker failed")
	}
}

func experiment(args []string) error {
	fs := flag.NewFlagSet("experiment", flag.ExitOnError)
	name := fs.String("name", "", "experiment to run: "+strings.Join(experiments.Names(), ", "))
	games := fs.Int("games", 0, "games per matchup, overrides the config")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	if *games > 0 {
		cfg.Experiment.Games = *games
	}

	dir, err := experiments.Run(*name, experiments.Options{
		Games:       cfg.Experiment.Games,
		Concurrency: cfg.Experiment.Concurrency,
		MaxTurns:    cfg.MaxTurns,
		Dir:         cfg.Experiment.Dir,
		Worker:      []string{cfg.Worker},
	})
	if err != nil {
		return err
	}
	log.Info().Str("dir", dir).Msg("experiment records written")
	return nil
}
