package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"

	"blobwar/meta"
	"blobwar/searcher"
)

var ErrInvalid = errors.New("invalid configuration")

var algorithms = []string{"minmax", "alphabeta", "greedy", "human", "anytime"}

// anytimeAlgorithms are the searches an anytime worker can deepen.
var anytimeAlgorithms = []string{"alphabeta", "minmax"}

// Player configures the strategy of one side.
type Player struct {
	Algorithm     string        `mapstructure:"algorithm"`
	Anytime       string        `mapstructure:"anytime_algorithm"` // Search run by the anytime worker
	Level         int           `mapstructure:"level"`
	Mode          string        `mapstructure:"mode"`
	Goroutines    int           `mapstructure:"goroutines"`
	ParallelDepth int           `mapstructure:"parallel_depth"`
	Deadline      time.Duration `mapstructure:"deadline"`
	Seed          uint64        `mapstructure:"seed"`
}

type Experiment struct {
	Games       int    `mapstructure:"games"`
	Concurrency int    `mapstructure:"concurrency"`
	Dir         string `mapstructure:"dir"`
}

type Config struct {
	Red        Player     `mapstructure:"red"`
	Blue       Player     `mapstructure:"blue"`
	Board      string     `mapstructure:"board"` // Starting position, empty for the standard one
	MaxTurns   int        `mapstructure:"max_turns"`
	Worker     string     `mapstructure:"worker"` // Anytime worker binary, empty for this executable
	Debug      bool       `mapstructure:"debug"`
	Experiment Experiment `mapstructure:"experiment"`
}

func setDefaults(v *viper.Viper) {
	for _, side := range []string{"red", "blue"} {
		v.SetDefault(side+".level", meta.LEVEL)
		v.SetDefault(side+".anytime_algorithm", "alphabeta")
		v.SetDefault(side+".mode", searcher.Sequential.String())
		v.SetDefault(side+".goroutines", 0)
		v.SetDefault(side+".parallel_depth", meta.PARALLEL_DEPTH)
		v.SetDefault(side+".deadline", meta.DEADLINE)
		v.SetDefault(side+".seed", 1)
	}
	v.SetDefault("red.algorithm", "alphabeta")
	v.SetDefault("blue.algorithm", "minmax")
	v.SetDefault("board", "")
	v.SetDefault("max_turns", meta.MAX_TURNS)
	v.SetDefault("worker", "")
	v.SetDefault("debug", false)
	v.SetDefault("experiment.games", meta.GAMES)
	v.SetDefault("experiment.concurrency", meta.CONCURRENCY)
	v.SetDefault("experiment.dir", meta.RESULTS_DIR)
}

// Load layers defaults, the optional file at path and BLOBWAR_ environment
// variables, e.g. BLOBWAR_RED_ALGORITHM=greedy.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("blobwar")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	for side, p := range map[string]Player{"red": c.Red, "blue": c.Blue} {
		if err := p.validate(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalid, side, err)
		}
	}
	if c.MaxTurns < 1 || c.MaxTurns > meta.MAX_MOVES {
		return fmt.Errorf("%w: max_turns must be in [1, %d], got %d", ErrInvalid, meta.MAX_MOVES, c.MaxTurns)
	}
	if c.Experiment.Games < 1 || c.Experiment.Concurrency < 1 {
		return fmt.Errorf("%w: experiment games and concurrency must be positive", ErrInvalid)
	}
	return nil
}

func (p Player) validate() error {
	if !lo.Contains(algorithms, p.Algorithm) {
		return fmt.Errorf("unknown algorithm %q", p.Algorithm)
	}
	if _, err := searcher.ParseMode(p.Mode); err != nil {
		return err
	}
	if p.Level < 1 {
		return fmt.Errorf("level must be at least 1, got %d", p.Level)
	}
	if !lo.Contains(anytimeAlgorithms, p.Anytime) {
		return fmt.Errorf("unknown anytime algorithm %q", p.Anytime)
	}
	if p.Algorithm == "anytime" && p.Deadline <= 0 {
		return fmt.Errorf("anytime deadline must be positive, got %v", p.Deadline)
	}
	return nil
}
