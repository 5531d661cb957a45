package metrics

import (
	"time"

	"blobwar/config"
	"blobwar/searcher"
)

// AgentConfig is one participant of an experiment.
type AgentConfig struct {
	ID int
	config.Player
}

type MoveMetric struct {
	Step     int
	Player   string // Color
	Move     string // Notation, empty for a pass
	Duration time.Duration
	searcher.SearchMetric
}

type GameMetric struct {
	StartingPlayer string // Color
	Winner         string // Color, empty for a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Passes         int
	RedBlobs       int
	BlueBlobs      int
}
