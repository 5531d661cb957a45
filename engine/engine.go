package engine

import (
	"blobwar/experiments/metrics"
	"blobwar/meta"
)

const MaxMoves = meta.MAX_MOVES

type Engine interface {
	// Run plays a game till it is over or a max number of turns is reached
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
