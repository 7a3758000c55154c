package board

// Threat names a candidate move and the strongest pattern it would create
// for the player considered, across that move's four directions.
type Threat struct {
	Cell    Move
	Pattern Pattern
}

// ListThreats returns every empty cell whose occupation by player would
// create a pattern of at least OpenThree strength in some direction. The
// VCF solver and the move orderer's winning/threat stages both consume
// this list; ordering here is row-major, callers are expected to sort by
// Pattern themselves if priority matters.
func ListThreats(b *Board, player Player) []Threat {
	own := b.planes[player.Index()]
	opp := b.planes[player.Opponent().Index()]
	occ := own.Or(opp)

	var threats []Threat
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			if occ.Test(x, y) {
				continue
			}
			best := strongestPatternAt(own, opp, b.size, x, y)
			if best >= OpenThree {
				threats = append(threats, Threat{Cell: Move{X: x, Y: y}, Pattern: best})
			}
		}
	}
	return threats
}

// strongestPatternAt classifies all four directions through a hypothetical
// own stone at (x, y) and returns the strongest pattern found.
func strongestPatternAt(own, opp Planes, size, x, y int) Pattern {
	// classifyWindow inspects stateOwn cells only, so temporarily treating
	// (x, y) as occupied requires scanning with it forced own; scanLine
	// already does this implicitly only if the bit is set, so set it on a
	// throwaway clone rather than mutate the caller's plane.
	trial := own.Clone()
	trial.Set(x, y)

	best := NoPattern
	for _, d := range directions {
		p := ClassifyPattern(trial, opp, size, x, y, d[0], d[1])
		if p > best {
			best = p
		}
	}
	return best
}

// MustBlockCells returns every empty cell where the opponent's stone would
// form a broken four or stronger: both the cell that would complete an
// existing four into a five and any cell that would extend a three into a
// four. An empty result means the opponent has no such cell; the picker's
// threat stage (not this function) handles softer open-three pressure
// separately.
func MustBlockCells(b *Board, toMove Player) []Move {
	opp := toMove.Opponent()
	fours := ListThreats(b, opp)

	var blockers []Move
	for _, t := range fours {
		if t.Pattern >= BrokenFour {
			blockers = append(blockers, t.Cell)
		}
	}
	return blockers
}
