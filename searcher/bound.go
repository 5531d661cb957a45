package searcher

import "sync/atomic"

// bound is the pruning limit shared by the sibling tasks of one node: alpha
// at a maximizing node, beta at a minimizing one. Siblings read it before
// recursing and tighten it after finding a better score.
type bound struct {
	maximizing bool
	value      atomic.Int64
	limit      int // The caller's opposite limit, fixed for the node
}

func newBound(maximizing bool, alpha, beta int) *bound {
	b := &bound{maximizing: maximizing}
	if maximizing {
		b.value.Store(int64(alpha))
		b.limit = beta
	} else {
		b.value.Store(int64(beta))
		b.limit = alpha
	}
	return b
}

func (b *bound) load() int {
	return int(b.value.Load())
}

// window returns the alpha-beta window a child should be searched with now.
func (b *bound) window() (alpha, beta int) {
	if b.maximizing {
		return b.load(), b.limit
	}
	return b.limit, b.load()
}

// crossed reports whether the remaining siblings can be pruned.
func (b *bound) crossed() bool {
	if b.maximizing {
		return b.load() >= b.limit
	}
	return b.load() <= b.limit
}

// tighten moves the bound to score if score is better for the node's side.
func (b *bound) tighten(score int) {
	for {
		current := b.value.Load()
		if !better(b.maximizing, score, int(current)) {
			return
		}
		if b.value.CompareAndSwap(current, int64(score)) {
			return
		}
	}
}
