package engine

import (
	"math"
	"sync/atomic"

	"github.com/hailam/caroengine/internal/board"
)

// Infinity bounds the alpha-beta window before any aspiration narrowing.
const Infinity = MateScore + MaxPly

// lmrReductions is a Stockfish-style precomputed reduction table indexed
// by [depth][moveIndex], built once at package init so the hot loop never
// computes a logarithm.
var lmrReductions [64][64]int

func init() {
	for d := 1; d < 64; d++ {
		for m := 1; m < 64; m++ {
			lmrReductions[d][m] = int(0.5 + math.Log(float64(d))*math.Log(float64(m))/2.0)
		}
	}
}

// searchStackEntry holds per-ply state during the recursive search.
type searchStackEntry struct {
	staticEval int
	move       board.Move
	improving  bool
}

// Worker runs one Lazy SMP search lane: its own move history/search
// stack and its own move orderer, kept per-worker to avoid any
// synchronization on the hot path, while reading and writing the
// shared transposition table.
type Worker struct {
	id        int
	tt        *TranspositionTable
	orderer   *MoveOrderer
	eval      *Evaluator
	cancelled *atomic.Bool

	stack   []searchStackEntry
	history []board.Move

	nodes     uint64
	rootDepth int
}

// NewWorker returns a worker sharing tt and cancelled with its siblings,
// with its own ordering and evaluation state.
func NewWorker(id int, size int, tt *TranspositionTable, cancelled *atomic.Bool) *Worker {
	return &Worker{
		id:        id,
		tt:        tt,
		orderer:   NewMoveOrderer(size),
		eval:      NewEvaluator(),
		cancelled: cancelled,
		stack:     make([]searchStackEntry, MaxPly+8),
	}
}

// Reset clears per-search state (killers, history age, node count) ahead
// of a new root call.
func (w *Worker) Reset() {
	w.orderer.Clear()
	w.nodes = 0
	w.history = w.history[:0]
}

// Nodes returns the worker's node count for the current search.
func (w *Worker) Nodes() uint64 { return w.nodes }

// checkCancelled polls the shared flag every 4096 nodes: frequent enough
// to honor a deadline promptly, rare enough to stay off the hot path.
func (w *Worker) checkCancelled() bool {
	if w.nodes&4095 == 0 && w.cancelled.Load() {
		return true
	}
	return false
}

// SearchRoot runs one iterative-deepening iteration at depth within the
// given aspiration window. Returns the best move, its score, and whether
// the iteration completed (false means it was cancelled mid-flight and
// its result must not be adopted, since a partial iteration's best move
// reflects whatever subtree happened to finish first, not the truly
// best move at that depth).
func (w *Worker) SearchRoot(b *board.Board, toMove board.Player, depth, alpha, beta int) (board.Move, int, bool) {
	w.rootDepth = depth
	picker := NewPicker(w.orderer, b, toMove, board.NoMove, 0, w.history)

	bestMove := board.NoMove
	bestScore := -Infinity
	first := true
	moveIndex := 0

	for {
		m, priority, done := picker.Next()
		if done {
			break
		}
		child, err := b.Place(m)
		if err != nil {
			continue
		}
		moveIndex++

		var score int
		if first {
			score = -w.negamax(child, toMove.Opponent(), depth-1, -beta, -alpha, 1, m, priority)
			first = false
		} else {
			score = w.pvsChild(child, toMove.Opponent(), depth, -alpha-1, -alpha, 1, m, priority, moveIndex)
			if score > alpha && score < beta {
				score = -w.negamax(child, toMove.Opponent(), depth-1, -beta, -alpha, 1, m, priority)
			}
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}

		if w.checkCancelled() {
			return bestMove, bestScore, false
		}
	}

	return bestMove, bestScore, true
}

// pvsChild runs a null-window probe for a non-first root move, applying
// the same adaptive LMR the interior search uses.
func (w *Worker) pvsChild(child *board.Board, side board.Player, parentDepth, alpha, beta, ply int, m board.Move, priority Priority, moveIndex int) int {
	depth := parentDepth - 1
	reduced := w.reduction(parentDepth, moveIndex, priority)
	score := -w.negamax(child, side, depth-reduced, -beta, -alpha, ply, m, priority)
	if reduced > 0 && score > alpha {
		score = -w.negamax(child, side, depth, -beta, -alpha, ply, m, priority)
	}
	return score
}

// reduction computes the adaptive late-move-reduction depth cut: only
// for quiet, non-forced moves at depth >= 3 past the late-move threshold.
func (w *Worker) reduction(depth, moveIndex int, priority Priority) int {
	const lateMoveThreshold = 4
	if depth < 3 || priority != PriorityQuiet || moveIndex < lateMoveThreshold {
		return 0
	}
	r := 1 + (moveIndex-lateMoveThreshold)/4
	if r > 3 {
		r = 3
	}
	return r
}

// negamax is the recursive alpha-beta core: principal variation search
// with null-window probes for later siblings and adaptive late move
// reduction. Aspiration re-search happens at the root, in driver.go.
func (w *Worker) negamax(b *board.Board, toMove board.Player, depth, alpha, beta, ply int, prevMove board.Move, prevPriority Priority) int {
	w.nodes++
	if w.checkCancelled() {
		return alpha
	}

	alphaOrig := alpha

	probe, entry := w.tt.Probe(b.Hash(), depth, alpha, beta, ply)
	if probe == Usable {
		return int(entry.Score)
	}
	ttMove := entry.BestMove

	if depth <= 0 {
		return w.quiescence(b, toMove, alpha, beta, ply, 0)
	}

	if ply < len(w.stack) {
		w.stack[ply].staticEval, _ = w.eval.Eval(b, toMove)
	}

	picker := NewPicker(w.orderer, b, toMove, ttMove, ply, w.history)

	bestScore := -Infinity
	bestMove := board.NoMove
	first := true
	moveIndex := 0
	var quietTried []board.Move

	for {
		m, priority, done := picker.Next()
		if done {
			break
		}
		child, err := b.Place(m)
		if err != nil {
			continue
		}
		if child.IsWin(m) {
			w.recordCutoff(toMove, b, m, prevMove, depth, ply, priority, quietTried)
			w.tt.Store(b.Hash(), depth, MateScore-ply-1, TTLowerBound, m, w.stack[ply].staticEval, ply, w.id, w.rootDepth)
			return MateScore - ply - 1
		}
		moveIndex++
		if priority == PriorityQuiet {
			quietTried = append(quietTried, m)
		}

		w.history = append(w.history, m)
		var score int
		if first {
			score = -w.negamax(child, toMove.Opponent(), depth-1, -beta, -alpha, ply+1, m, priority)
			first = false
		} else {
			reduced := w.reduction(depth, moveIndex, priority)
			score = -w.negamax(child, toMove.Opponent(), depth-1-reduced, -alpha-1, -alpha, ply+1, m, priority)
			if score > alpha {
				if reduced > 0 {
					score = -w.negamax(child, toMove.Opponent(), depth-1, -alpha-1, -alpha, ply+1, m, priority)
				}
				if score > alpha && score < beta {
					score = -w.negamax(child, toMove.Opponent(), depth-1, -beta, -alpha, ply+1, m, priority)
				}
			}
		}
		w.history = w.history[:len(w.history)-1]

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			w.recordCutoff(toMove, b, m, prevMove, depth, ply, priority, quietTried)
			break
		}
	}

	if bestMove == board.NoMove {
		return 0
	}

	flag := TTExact
	if bestScore <= alphaOrig {
		flag = TTUpperBound
	} else if bestScore >= beta {
		flag = TTLowerBound
	}
	w.tt.Store(b.Hash(), depth, bestScore, flag, bestMove, w.stack[ply].staticEval, ply, w.id, w.rootDepth)

	return bestScore
}

// recordCutoff updates killers, butterfly history, and continuation
// history after a beta-cutoff (or a winning move): the cutoff move gets
// a bonus, every quiet move tried before it gets a matching penalty.
func (w *Worker) recordCutoff(toMove board.Player, b *board.Board, cutoff, prevMove board.Move, depth, ply int, priority Priority, quietTriedBefore []board.Move) {
	if priority == PriorityQuiet {
		w.orderer.UpdateKillers(cutoff, ply)
		w.orderer.UpdateHistory(toMove, cutoff, b.Size(), depth, true)
		w.orderer.UpdateContinuation(toMove, prevMove, cutoff, b.Size(), depth, 0, true)
		w.orderer.UpdateCounterMove(toMove, prevMove, cutoff, b.Size())
	}
	for _, q := range quietTriedBefore {
		if q == cutoff {
			continue
		}
		w.orderer.UpdateHistory(toMove, q, b.Size(), depth, false)
		w.orderer.UpdateContinuation(toMove, prevMove, q, b.Size(), depth, 0, false)
	}
}

// quiescence extends search beyond depth 0 along threat-creating and
// threat-blocking moves only (threatAndBlockMoves). No TT writes: entries here would be depth-0 and immediately
// shadowed by the next iteration's real search of the same node.
func (w *Worker) quiescence(b *board.Board, toMove board.Player, alpha, beta, ply, qdepth int) int {
	w.nodes++
	if w.checkCancelled() {
		return alpha
	}

	standPat, terminal := w.eval.Eval(b, toMove)
	if terminal {
		return standPat
	}
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if qdepth >= 4 {
		return alpha
	}

	candidates := threatAndBlockMoves(b, toMove)
	for _, m := range candidates {
		child, err := b.Place(m)
		if err != nil {
			continue
		}
		if child.IsWin(m) {
			return MateScore - ply - 1
		}
		score := -w.quiescence(child, toMove.Opponent(), -beta, -alpha, ply+1, qdepth+1)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// threatAndBlockMoves enumerates the quiescence move set: moves creating
// an open-three-or-better threat for toMove, plus moves blocking the
// opponent's open-three-or-better threats.
func threatAndBlockMoves(b *board.Board, toMove board.Player) []board.Move {
	seen := make(map[board.Move]bool)
	var out []board.Move

	for _, t := range board.ListThreats(b, toMove) {
		if !seen[t.Cell] {
			seen[t.Cell] = true
			out = append(out, t.Cell)
		}
	}
	for _, t := range board.ListThreats(b, toMove.Opponent()) {
		if t.Pattern >= board.OpenThree && !seen[t.Cell] {
			seen[t.Cell] = true
			out = append(out, t.Cell)
		}
	}
	return out
}
