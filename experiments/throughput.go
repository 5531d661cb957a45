package experiments

import (
	"github.com/samber/lo"

	"blobwar/experiments/metrics"
	"blobwar/searcher"
)

// RunThroughputExperiment measures how parallel Alpha-Beta scales with the
// number of goroutines. Both players share a config in each game for the
// same playing strength and similar game length.
func RunThroughputExperiment(opts Options) (string, error) {
	configs := lo.Map([]int{1, 2, 4, 8, 16}, func(goroutines int, i int) metrics.AgentConfig {
		c := agent(i+1, "alphabeta", 5, searcher.Parallel)
		c.Goroutines = goroutines
		return c
	})
	matchUps := lo.Map(configs, func(c metrics.AgentConfig, _ int) [2]metrics.AgentConfig {
		return [2]metrics.AgentConfig{c, c}
	})
	return runExperiment("throughput", configs, matchUps, opts)
}
