package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Mode     Mode
	Depth    int
	Duration time.Duration
	Nodes    int64 // Positions visited, root and leaves included
	Cutoffs  int64 // Times a node stopped expanding because alpha >= beta
}

type Collector interface {
	Start(mode Mode, depth int)
	AddNode()
	AddCutoff()
	Complete() SearchMetric
}

type collector struct {
	mode      Mode
	depth     int
	startTime time.Time
	nodes     atomic.Int64
	cutoffs   atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(mode Mode, depth int) {
	m.startTime = time.Now()
	m.mode = mode
	m.depth = depth
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Mode:     m.mode,
		Depth:    m.depth,
		Duration: time.Since(m.startTime),
		Nodes:    m.nodes.Load(),
		Cutoffs:  m.cutoffs.Load(),
	}
}

type dummyCollector struct {
	mode  Mode
	depth int
}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(mode Mode, depth int) { m.mode, m.depth = mode, depth }
func (m *dummyCollector) AddNode()                   {}
func (m *dummyCollector) AddCutoff()                 {}
func (m *dummyCollector) Complete() SearchMetric {
	return SearchMetric{Mode: m.mode, Depth: m.depth}
}
