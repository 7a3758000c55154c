package engine

import (
	"context"
	"time"

	"github.com/hailam/caroengine/internal/board"
)

// VCFResult is the outcome of a VCF proof search: either a proven win
// starting with Move (mate in MateInPlies), or a search that ran out of
// threats or budget without proving anything.
type VCFResult struct {
	Found       bool
	Move        board.Move
	MateInPlies int
	NodesSearched int
	MaxDepth      int
}

// VCFSolver runs an iterative-deepening AND/OR proof search restricted
// to forcing four-threats ("Victory by Continuous Four"). At OR nodes
// (the side trying to win) any four-threat move that leads to a proven
// win wins the node. At AND nodes (the opponent) every possible
// blocking response must lead to a win for the node to be proven.
type VCFSolver struct {
	nodes int
	maxDepthSeen int
}

// NewVCFSolver returns a fresh solver (state resets per call to Solve).
func NewVCFSolver() *VCFSolver {
	return &VCFSolver{}
}

// Solve attempts to prove a forced win for toMove within maxDepth plies or
// until the deadline, whichever comes first.
func (s *VCFSolver) Solve(ctx context.Context, b *board.Board, toMove board.Player, maxDepth int, deadline time.Time) VCFResult {
	s.nodes = 0
	s.maxDepthSeen = 0

	for depth := 1; depth <= maxDepth; depth++ {
		if time.Now().After(deadline) || ctx.Err() != nil {
			break
		}
		if won, move, mateIn := s.orSearch(ctx, b, toMove, depth, deadline); won {
			return VCFResult{Found: true, Move: move, MateInPlies: mateIn, NodesSearched: s.nodes, MaxDepth: s.maxDepthSeen}
		}
	}
	return VCFResult{Found: false, NodesSearched: s.nodes, MaxDepth: s.maxDepthSeen}
}

// orSearch tries every four-threat move for toMove; the node wins if any
// one of them leads to an immediate five or a won AND node.
func (s *VCFSolver) orSearch(ctx context.Context, b *board.Board, toMove board.Player, depthLeft int, deadline time.Time) (bool, board.Move, int) {
	s.nodes++
	if depthLeft <= 0 {
		return false, board.NoMove, 0
	}
	if depthLeft > s.maxDepthSeen {
		s.maxDepthSeen = depthLeft
	}

	for _, t := range board.ListThreats(b, toMove) {
		if t.Pattern < board.BrokenFour {
			continue
		}
		if ctx.Err() != nil || time.Now().After(deadline) {
			return false, board.NoMove, 0
		}

		next, err := b.Place(t.Cell)
		if err != nil {
			continue
		}
		if next.IsWin(t.Cell) {
			return true, t.Cell, 1
		}

		won, _, mateIn := s.andSearch(ctx, next, toMove.Opponent(), depthLeft-1, deadline)
		if won {
			return true, t.Cell, mateIn + 1
		}
	}
	return false, board.NoMove, 0
}

// andSearch requires every forced block of the opponent to still lead to
// a win for the proving side; if the opponent has any reply that escapes,
// the node fails.
func (s *VCFSolver) andSearch(ctx context.Context, b *board.Board, defender board.Player, depthLeft int, deadline time.Time) (bool, board.Move, int) {
	s.nodes++
	if depthLeft <= 0 {
		return false, board.NoMove, 0
	}

	attacker := defender.Opponent()
	blockers := board.MustBlockCells(b, defender)
	if len(blockers) == 0 {
		// No forced four to block: the attacker's threat was only a
		// three or weaker, so the proof chain is broken here.
		return false, board.NoMove, 0
	}

	worstMate := 0
	for _, block := range blockers {
		if ctx.Err() != nil || time.Now().After(deadline) {
			return false, board.NoMove, 0
		}
		next, err := b.Place(block)
		if err != nil {
			continue
		}
		won, move, mateIn := s.orSearch(ctx, next, attacker, depthLeft-1, deadline)
		if !won {
			return false, board.NoMove, 0
		}
		if mateIn > worstMate {
			worstMate = mateIn
		}
		_ = move
	}
	return true, board.NoMove, worstMate
}
