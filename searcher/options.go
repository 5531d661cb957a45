package searcher

import (
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Mode selects how an engine walks the children of a node.
type Mode int

const (
	// Sequential visits children one by one in enumeration order.
	Sequential Mode = iota
	// Functional folds over the collected children.
	Functional
	// Parallel evaluates children concurrently.
	Parallel
)

var modeNames = map[Mode]string{
	Sequential: "sequential",
	Functional: "functional",
	Parallel:   "parallel",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a mode name back to its Mode.
func ParseMode(name string) (Mode, error) {
	for mode, n := range modeNames {
		if n == name {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown search mode %q", name)
}

const DefaultParallelDepth = 2

type Option func(s *settings)

type settings struct {
	mode          Mode
	goroutines    int
	parallelDepth int
	metrics       bool
}

func WithMode(mode Mode) Option {
	return func(s *settings) {
		s.mode = mode
	}
}

// WithGoroutines caps the number of extra goroutines a parallel search runs.
func WithGoroutines(goroutines int) Option {
	return func(s *settings) {
		if goroutines > 0 {
			s.goroutines = goroutines
		}
	}
}

// WithParallelDepth sets the smallest remaining depth at which a parallel
// search still fans children out. Shallower nodes are searched inline.
func WithParallelDepth(depth int) Option {
	return func(s *settings) {
		if depth > 0 {
			s.parallelDepth = depth
		}
	}
}

func WithMetrics() Option {
	return func(s *settings) {
		s.metrics = true
	}
}

func newSettings(options []Option) settings {
	s := settings{ // Default values
		mode:          Sequential,
		goroutines:    runtime.GOMAXPROCS(0),
		parallelDepth: DefaultParallelDepth,
	}
	for _, option := range options {
		option(&s)
	}
	if _, ok := modeNames[s.mode]; !ok {
		panic(fmt.Sprintf("unsupported search mode %v", s.mode))
	}
	return s
}

// search carries the per-call state shared by every node of one search.
type search struct {
	maximizing    Player
	parallelDepth int
	gate          *semaphore.Weighted
	metrics       Collector
}

func (s settings) begin(root Player, depth int) *search {
	var metrics Collector = NewDummyCollector()
	if s.metrics {
		metrics = NewCollector()
	}
	metrics.Start(s.mode, depth)
	return &search{
		maximizing:    root,
		parallelDepth: s.parallelDepth,
		gate:          semaphore.NewWeighted(int64(s.goroutines)),
		metrics:       metrics,
	}
}

// spawn runs task on its own goroutine when a token is free and inline
// otherwise, so a deep recursion never waits on the gate.
func (s *search) spawn(wg *sync.WaitGroup, depth int, task func()) {
	wg.Add(1)
	if depth < s.parallelDepth || !s.gate.TryAcquire(1) {
		defer wg.Done()
		task()
		return
	}
	go func() {
		defer wg.Done()
		defer s.gate.Release(1)
		task()
	}()
}
