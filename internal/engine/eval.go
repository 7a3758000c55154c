// Package engine implements the Caro AI search engine: evaluation, move
// ordering, the transposition table, and the parallel alpha-beta core.
package engine

import "github.com/hailam/caroengine/internal/board"

// patternWeight assigns a centipawn-equivalent weight to each pattern
// strength, summed over all four directions and both players. Five is
// handled separately as a terminal MATE score rather than through this
// table.
var patternWeight = [...]int{
	board.NoPattern:   0,
	board.OpenTwo:     50,
	board.ClosedThree: 200,
	board.OpenThree:   1000,
	board.BrokenFour:  2000,
	board.ClosedFour:  2000,
	board.OpenFour:    10000,
	board.Five:        0, // terminal, handled by caller
}

// Evaluator holds the configuration knobs the static evaluator reads
// (the asymmetric defense multiplier) plus a per-worker pattern-total
// cache, since each Worker owns its own Evaluator and the cache is not
// safe to share across goroutines.
type Evaluator struct {
	Delta float64
	cache *patternCache
}

// NewEvaluator returns an evaluator using DefaultDelta with a 1<<16-entry
// pattern cache.
func NewEvaluator() *Evaluator {
	return &Evaluator{Delta: DefaultDelta, cache: newPatternCache(1 << 16)}
}

// Eval returns the static score of b from side's perspective, and whether
// the position is terminal (one side already has a five). Asymmetric:
// defense (the opponent's pattern weight) counts Delta times as much as
// offense: score = W(my) - Delta * W(opp).
func (ev *Evaluator) Eval(b *board.Board, side board.Player) (int, bool) {
	opp := side.Opponent()

	myFive, oppFive := hasFive(b, side), hasFive(b, opp)
	if myFive || oppFive {
		switch {
		case myFive && !oppFive:
			return MateScore, true
		case oppFive && !myFive:
			return -MateScore, true
		default:
			return 0, true
		}
	}

	my := ev.weightedPatternsCached(b, side)
	their := ev.weightedPatternsCached(b, opp)
	score := my - int(ev.Delta*float64(their))
	return score, false
}

// weightedPatternsCached memoizes weightedPatterns by (board hash, player)
// so repeated Eval calls at the same node during a PVS re-search or
// quiescence walk skip rescanning every stone.
func (ev *Evaluator) weightedPatternsCached(b *board.Board, player board.Player) int {
	if total, ok := ev.cache.probe(b.Hash(), int(player)); ok {
		return total
	}
	total := weightedPatterns(b, player)
	ev.cache.store(b.Hash(), int(player), total)
	return total
}

// hasFive reports whether player has any exact five-in-a-row on the board.
func hasFive(b *board.Board, player board.Player) bool {
	own := b.Bits(player)
	opp := b.Bits(player.Opponent())
	size := b.Size()
	found := false
	own.ForEach(func(x, y int) {
		if found {
			return
		}
		if board.LineHasExactFive(own, opp, size, x, y) {
			found = true
		}
	})
	return found
}

// weightedPatterns sums patternWeight over every occupied cell of player
// and all four directions. Each contiguous pattern is counted once per
// direction per cell that anchors it (the scanning cell itself), which
// over-counts long runs relative to a "count distinct lines" scheme but
// is a stable, monotone proxy that is cheap to compute incrementally.
func weightedPatterns(b *board.Board, player board.Player) int {
	own := b.Bits(player)
	opp := b.Bits(player.Opponent())
	size := b.Size()

	total := 0
	own.ForEach(func(x, y int) {
		for _, d := range boardDirections() {
			p := board.ClassifyPattern(own, opp, size, x, y, d[0], d[1])
			total += patternWeight[p]
		}
	})
	return total
}

// boardDirections mirrors board.directions; duplicated here (rather than
// exported from board) since the evaluator is the only code outside the
// board package that iterates all four axes.
func boardDirections() [4][2]int {
	return [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}
}
