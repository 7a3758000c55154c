package engine

import "github.com/hailam/caroengine/internal/board"

// pickStage names the staged move-ordering phases the picker walks
// through in order: hash move, forced blocks, winning moves, threats,
// killers/counter-moves, then quiet moves.
type pickStage int

const (
	stageHash pickStage = iota
	stageMustBlock
	stageWinning
	stageThreat
	stageKiller
	stageCounter
	stageQuiet
	stageDone
)

// Picker yields moves to the search's move loop one at a time, advancing
// through stages and skipping any move already yielded by an earlier
// stage. Constructing it performs the threat/must-block classification
// once per node and reuses it across the whole staged walk.
type Picker struct {
	orderer  *MoveOrderer
	board    *board.Board
	toMove   board.Player
	ttMove   board.Move
	ply      int
	history  []board.Move // move history, most recent last

	stage pickStage
	seen  map[board.Move]bool

	mustBlock []board.Move
	mbIdx     int
	winning   []board.Move
	wIdx      int
	threat    []board.Move
	tIdx      int

	quiet       *board.MoveList
	quietScores []int
	quietIdx    int
}

// NewPicker classifies the position once and returns a ready-to-drain
// picker for toMove at the given ply, with ttMove (possibly NoMove)
// searched first and history giving continuation-history context.
func NewPicker(mo *MoveOrderer, b *board.Board, toMove board.Player, ttMove board.Move, ply int, history []board.Move) *Picker {
	p := &Picker{
		orderer: mo,
		board:   b,
		toMove:  toMove,
		ttMove:  ttMove,
		ply:     ply,
		history: history,
		seen:    make(map[board.Move]bool),
	}

	blockers := board.MustBlockCells(b, toMove)
	p.mustBlock = dedupMoves(blockers)

	threats := board.ListThreats(b, toMove)
	for _, t := range threats {
		switch {
		case t.Pattern >= board.OpenFour:
			p.winning = append(p.winning, t.Cell)
		case t.Pattern == board.OpenThree || t.Pattern == board.BrokenFour:
			p.threat = append(p.threat, t.Cell)
		}
	}

	all := b.Moves()
	p.quiet = board.NewMoveList()
	for i := 0; i < all.Len(); i++ {
		p.quiet.Add(all.Get(i))
	}
	p.quietScores = make([]int, p.quiet.Len())
	for i := 0; i < p.quiet.Len(); i++ {
		p.quietScores[i] = mo.quietScore(b, toMove, history, p.quiet.Get(i))
	}

	return p
}

func dedupMoves(moves []board.Move) []board.Move {
	seen := make(map[board.Move]bool, len(moves))
	out := moves[:0]
	for _, m := range moves {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// Priority classifies how "forced" a move is, consumed by the alpha-beta
// core to decide whether LMR should skip reducing it.
type Priority int

const (
	PriorityQuiet Priority = iota
	PriorityKiller
	PriorityThreat
	PriorityForced // hash move or must-block
)

// Next returns the next candidate move, its priority, and whether the
// picker is exhausted.
func (p *Picker) Next() (board.Move, Priority, bool) {
	for {
		switch p.stage {
		case stageHash:
			p.stage = stageMustBlock
			if p.ttMove != board.NoMove && p.board.InBounds(p.ttMove.X, p.ttMove.Y) && !p.seen[p.ttMove] {
				p.seen[p.ttMove] = true
				return p.ttMove, PriorityForced, false
			}

		case stageMustBlock:
			if p.mbIdx < len(p.mustBlock) {
				m := p.mustBlock[p.mbIdx]
				p.mbIdx++
				if !p.seen[m] {
					p.seen[m] = true
					return m, PriorityForced, false
				}
				continue
			}
			p.stage = stageWinning

		case stageWinning:
			if p.wIdx < len(p.winning) {
				m := p.winning[p.wIdx]
				p.wIdx++
				if !p.seen[m] {
					p.seen[m] = true
					return m, PriorityThreat, false
				}
				continue
			}
			p.stage = stageThreat

		case stageThreat:
			if p.tIdx < len(p.threat) {
				m := p.threat[p.tIdx]
				p.tIdx++
				if !p.seen[m] {
					p.seen[m] = true
					return m, PriorityThreat, false
				}
				continue
			}
			p.stage = stageKiller

		case stageKiller:
			p.stage = stageCounter
			if p.ply < MaxPly {
				for _, k := range p.orderer.killers[p.ply] {
					if k != board.NoMove && p.board.InBounds(k.X, k.Y) && p.board.PlayerAt(k.X, k.Y) == board.Empty && !p.seen[k] {
						p.seen[k] = true
						return k, PriorityKiller, false
					}
				}
			}

		case stageCounter:
			p.stage = stageQuiet
			var prev board.Move = board.NoMove
			if len(p.history) > 0 {
				prev = p.history[len(p.history)-1]
			}
			cm := p.orderer.CounterMove(p.toMove, prev, p.board.Size())
			if cm != board.NoMove && p.board.InBounds(cm.X, cm.Y) && p.board.PlayerAt(cm.X, cm.Y) == board.Empty && !p.seen[cm] {
				p.seen[cm] = true
				return cm, PriorityKiller, false
			}

		case stageQuiet:
			for p.quietIdx < p.quiet.Len() {
				PickBest(p.quiet, p.quietScores, p.quietIdx)
				m := p.quiet.Get(p.quietIdx)
				p.quietIdx++
				if !p.seen[m] {
					p.seen[m] = true
					return m, PriorityQuiet, false
				}
			}
			p.stage = stageDone

		case stageDone:
			return board.NoMove, PriorityQuiet, true
		}
	}
}

// PickBest moves the highest-scoring remaining move (from index onward) to
// index, a lazy partial selection sort so the picker need not fully sort
// the quiet-move tail when a cutoff ends the loop early.
func PickBest(moves *board.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < moves.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}
