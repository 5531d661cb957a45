// meta/meta.go
package meta

// MAX_TURNS caps the length of a battle.
const MAX_TURNS = 300

// MAX_MOVES is the hard limit on MAX_TURNS and any configured turn limit.
const MAX_MOVES = 10000

// LEVEL is the default search level of the MinMax and AlphaBeta strategies.
const LEVEL = 5

// PARALLEL_DEPTH is the smallest remaining depth at which parallel searches fan out.
const PARALLEL_DEPTH = 2

// DEADLINE is how long an anytime worker may think about one move.
const DEADLINE = "1s"

// GAMES is the number of games per experiment matchup.
const GAMES = 10

// CONCURRENCY is the number of games an experiment runs at once.
const CONCURRENCY = 4

// RESULTS_DIR is where experiment records are written.
const RESULTS_DIR = "experiments"
