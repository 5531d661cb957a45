package strategy

import (
	"github.com/samber/lo"
	"golang.org/x/exp/rand"

	"blobwar/searcher"
)

// Greedy plays the move leaving the best position one ply ahead, breaking
// ties at random.
type Greedy[M comparable] struct {
	rng *rand.Rand
}

func NewGreedy[M comparable](seed uint64) *Greedy[M] {
	return &Greedy[M]{rng: rand.New(rand.NewSource(seed))}
}

func (g *Greedy[M]) ComputeNextMove(pos searcher.Position[M]) (M, bool) {
	mover := pos.CurrentPlayer()
	var best []M
	bestScore := -searcher.Infinity
	for move := range pos.Movements() {
		score := childScore(pos.Play(move), mover)
		switch {
		case score > bestScore:
			bestScore = score
			best = append(best[:0], move)
		case score == bestScore:
			best = append(best, move)
		}
	}
	if len(best) == 0 {
		var none M
		return none, false
	}
	return best[g.rng.Intn(len(best))], true
}

// childScore evaluates child from the mover's point of view.
func childScore[M comparable](child searcher.Position[M], mover searcher.Player) int {
	return lo.Ternary(child.CurrentPlayer() == mover, int(child.Value()), -int(child.Value()))
}

func (g *Greedy[M]) String() string {
	return "Greedy"
}
