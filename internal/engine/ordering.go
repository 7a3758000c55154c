package engine

import "github.com/hailam/caroengine/internal/board"

// historyClamp bounds the magnitude of every butterfly and continuation
// history entry, so repeated bonuses or penalties cannot grow without limit.
const (
	historyClamp = 400000
)

// MoveOrderer owns the per-game move-ordering state: killers (reset every
// root search), and butterfly/continuation history (persist across moves,
// aged by halving on Clear). Sized to the board's actual cell count
// rather than MaxCells, since Caro boards are usually much smaller than
// the 32x32 ceiling and a MaxCells-sized continuation table per ply-back
// would be wasteful.
type MoveOrderer struct {
	cells int

	killers [MaxPly][2]board.Move

	// butterflyHistory[player.Index()][cell]
	butterflyHistory [2][]int

	// continuationHistory[pliesBack][player.Index()][prevCell][cell]
	continuationHistory [continuationDepth][2][][]int

	// counterMoves[player.Index()][prevCell]
	counterMoves [2][]board.Move
}

// continuationDepth is how many plies of continuation history are kept,
// not just the immediately preceding move.
const continuationDepth = 6

// NewMoveOrderer allocates ordering state for a board of the given size.
func NewMoveOrderer(size int) *MoveOrderer {
	cells := size * size
	mo := &MoveOrderer{cells: cells}
	for i := range mo.killers {
		mo.killers[i][0], mo.killers[i][1] = board.NoMove, board.NoMove
	}
	for p := 0; p < 2; p++ {
		mo.butterflyHistory[p] = make([]int, cells)
		mo.counterMoves[p] = make([]board.Move, cells)
		for i := range mo.counterMoves[p] {
			mo.counterMoves[p][i] = board.NoMove
		}
	}
	for d := 0; d < continuationDepth; d++ {
		for p := 0; p < 2; p++ {
			mo.continuationHistory[d][p] = make([][]int, cells)
			for c := range mo.continuationHistory[d][p] {
				mo.continuationHistory[d][p][c] = make([]int, cells)
			}
		}
	}
	return mo
}

// Clear resets killers for a new root search and ages (halves) the
// persistent history tables rather than zeroing them outright.
func (mo *MoveOrderer) Clear() {
	for i := range mo.killers {
		mo.killers[i][0] = board.NoMove
		mo.killers[i][1] = board.NoMove
	}
	for p := 0; p < 2; p++ {
		for c := range mo.butterflyHistory[p] {
			mo.butterflyHistory[p][c] /= 2
		}
		for c := range mo.counterMoves[p] {
			mo.counterMoves[p][c] = board.NoMove
		}
	}
	for d := 0; d < continuationDepth; d++ {
		for p := 0; p < 2; p++ {
			for i := range mo.continuationHistory[d][p] {
				row := mo.continuationHistory[d][p][i]
				for j := range row {
					row[j] /= 2
				}
			}
		}
	}
}

func clampHistory(v int) int {
	if v > historyClamp {
		return historyClamp
	}
	if v < -historyClamp {
		return -historyClamp
	}
	return v
}

// cellOf converts a Move to its flat cell index for a board of size n.
func cellOf(m board.Move, n int) int {
	if m == board.NoMove {
		return -1
	}
	return m.Y*n + m.X
}

// UpdateKillers records a beta-cutoff move at ply, shifting the previous
// first killer into the second slot.
func (mo *MoveOrderer) UpdateKillers(m board.Move, ply int) {
	if ply >= MaxPly || mo.killers[ply][0] == m {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

// UpdateHistory applies a +depth^2 bonus (beta-cutoff) or -depth^2 penalty
// (tried-but-not-best) to the butterfly table for player at m's cell.
func (mo *MoveOrderer) UpdateHistory(player board.Player, m board.Move, size, depth int, good bool) {
	cell := cellOf(m, size)
	if cell < 0 {
		return
	}
	bonus := depth * depth
	idx := player.Index()
	if good {
		mo.butterflyHistory[idx][cell] = clampHistory(mo.butterflyHistory[idx][cell] + bonus)
	} else {
		mo.butterflyHistory[idx][cell] = clampHistory(mo.butterflyHistory[idx][cell] - bonus)
	}
}

// UpdateContinuation applies the same bonus/penalty to the continuation
// history for player's move, keyed by the move pliesBack moves ago (0 =
// immediately preceding move), up to continuationDepth.
func (mo *MoveOrderer) UpdateContinuation(player board.Player, prev, m board.Move, size, depth, pliesBack int, good bool) {
	if pliesBack >= continuationDepth || prev == board.NoMove {
		return
	}
	prevCell, cell := cellOf(prev, size), cellOf(m, size)
	if prevCell < 0 || cell < 0 {
		return
	}
	bonus := depth * depth
	idx := player.Index()
	row := mo.continuationHistory[pliesBack][idx][prevCell]
	if good {
		row[cell] = clampHistory(row[cell] + bonus)
	} else {
		row[cell] = clampHistory(row[cell] - bonus)
	}
}

// UpdateCounterMove records that m refuted the opponent's move prev.
func (mo *MoveOrderer) UpdateCounterMove(player board.Player, prev, m board.Move, size int) {
	prevCell := cellOf(prev, size)
	if prevCell < 0 {
		return
	}
	mo.counterMoves[player.Index()][prevCell] = m
}

// CounterMove returns the recorded refutation for prev, or NoMove.
func (mo *MoveOrderer) CounterMove(player board.Player, prev board.Move, size int) board.Move {
	prevCell := cellOf(prev, size)
	if prevCell < 0 {
		return board.NoMove
	}
	return mo.counterMoves[player.Index()][prevCell]
}

// quietScore combines butterfly history, up to continuationDepth levels
// of continuation history, a small center-proximity bonus, and a bonus
// for being adjacent to an existing stone: Caro positions are local, so
// moves far from any stone are ranked lower, though the picker still
// yields them.
func (mo *MoveOrderer) quietScore(b *board.Board, player board.Player, history []board.Move, m board.Move) int {
	size := b.Size()
	cell := cellOf(m, size)
	score := mo.butterflyHistory[player.Index()][cell]

	for d := 0; d < continuationDepth && d < len(history); d++ {
		prev := history[len(history)-1-d]
		prevCell := cellOf(prev, size)
		if prevCell < 0 {
			continue
		}
		score += mo.continuationHistory[d][player.Index()][prevCell][cell] / (d + 1)
	}

	center := float64(size-1) / 2
	dx := float64(m.X) - center
	dy := float64(m.Y) - center
	dist := dx*dx + dy*dy
	score += int(200 - dist)

	if adjacentToStone(b, m) {
		score += 500
	}
	return score
}

// adjacentToStone reports whether any of the 8 neighboring cells of m is
// occupied, the locality heuristic behind quietScore's adjacency bonus.
func adjacentToStone(b *board.Board, m board.Move) bool {
	occ := b.Occupied()
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			x, y := m.X+dx, m.Y+dy
			if b.InBounds(x, y) && occ.Test(x, y) {
				return true
			}
		}
	}
	return false
}

// SortMoves sorts a move list by descending score via in-place selection
// sort.
func SortMoves(moves *board.MoveList, scores []int) {
	n := moves.Len()
	for i := 0; i < n-1; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			if scores[j] > scores[best] {
				best = j
			}
		}
		if best != i {
			moves.Swap(i, best)
			scores[i], scores[best] = scores[best], scores[i]
		}
	}
}
