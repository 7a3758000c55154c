package board

// Pattern classifies the strength of a line of stones through a cell along
// one of the four directions a five-in-a-row can form on.
type Pattern uint8

const (
	NoPattern Pattern = iota
	OpenTwo
	ClosedThree
	OpenThree
	BrokenFour
	ClosedFour
	OpenFour
	Five
)

func (p Pattern) String() string {
	switch p {
	case OpenTwo:
		return "open-two"
	case ClosedThree:
		return "closed-three"
	case OpenThree:
		return "open-three"
	case BrokenFour:
		return "broken-four"
	case ClosedFour:
		return "closed-four"
	case OpenFour:
		return "open-four"
	case Five:
		return "five"
	default:
		return "none"
	}
}

// directions lists the four axes a line can run along; each is stored as
// one (dx, dy) since a line is symmetric about its cell.
var directions = [4][2]int{
	{1, 0},  // horizontal
	{0, 1},  // vertical
	{1, 1},  // diagonal /
	{1, -1}, // diagonal \
}

// cellState is the classification of one cell relative to the player whose
// pattern is being evaluated.
type cellState uint8

const (
	stateEmpty cellState = iota
	stateOwn
	stateBlocked // opponent stone or off the board
)

// scanLine samples cellState for 5 cells on either side of (x, y) along
// (dx, dy), returning a window indexed [-5, 5] as window[i+5].
func scanLine(own, opp Planes, size, x, y, dx, dy int) [11]cellState {
	var window [11]cellState
	for i := -5; i <= 5; i++ {
		cx, cy := x+dx*i, y+dy*i
		if cx < 0 || cy < 0 || cx >= size || cy >= size {
			window[i+5] = stateBlocked
			continue
		}
		switch {
		case own.Test(cx, cy):
			window[i+5] = stateOwn
		case opp.Test(cx, cy):
			window[i+5] = stateBlocked
		default:
			window[i+5] = stateEmpty
		}
	}
	return window
}

// ClassifyPattern returns the strongest pattern the given player has along
// direction (dx, dy) through (x, y). The contiguous-run count always
// includes (x, y) whatever the cell holds, but the broken-four check reads
// the cell's actual state in own, so callers probing a candidate move pass
// own bits with that cell already set; callers probing the last move pass
// the board's own bits.
func ClassifyPattern(own, opp Planes, size, x, y, dx, dy int) Pattern {
	w := scanLine(own, opp, size, x, y, dx, dy)
	return classifyWindow(w)
}

// runAt returns the contiguous run length of stateOwn cells containing
// index center (5, the cell itself) within w, and whether each end of that
// run is open (next cell is stateEmpty).
func runAt(w [11]cellState) (length, lo, hi int, openLo, openHi bool) {
	lo, hi = 5, 5
	for lo > 0 && w[lo-1] == stateOwn {
		lo--
	}
	for hi < 10 && w[hi+1] == stateOwn {
		hi++
	}
	length = hi - lo + 1
	openLo = lo > 0 && w[lo-1] == stateEmpty
	openHi = hi < 10 && w[hi+1] == stateEmpty
	return
}

// classifyWindow implements the pattern table described for Caro line
// evaluation: contiguous runs of length 5 are five, length 4 with one or
// two open extensions are open/closed four, and so on down to open-two.
// Broken patterns (a single gap inside an otherwise-own run) are detected
// by also scanning one gap-fill position before falling back to the
// contiguous classification.
func classifyWindow(w [11]cellState) Pattern {
	length, lo, hi, openLo, openHi := runAt(w)

	if length >= 5 {
		return Five
	}

	if length == 4 {
		switch {
		case openLo && openHi:
			return OpenFour
		case openLo || openHi:
			return ClosedFour
		default:
			return NoPattern
		}
	}

	if broken := classifyBrokenFour(w, lo, hi); broken != NoPattern {
		return broken
	}

	if length == 3 {
		switch {
		case openLo && openHi:
			return OpenThree
		case openLo || openHi:
			return ClosedThree
		default:
			return NoPattern
		}
	}

	if length == 2 {
		if openLo && openHi {
			return OpenTwo
		}
		return NoPattern
	}

	return NoPattern
}

// classifyBrokenFour looks for the "own own _ own own" or "own _ own own"
// shape (a single internal gap) extending from the run [lo, hi] that, once
// filled, would complete a five with at least one open end: a gap-four
// threat that forces an immediate response just like a contiguous four.
func classifyBrokenFour(w [11]cellState, lo, hi int) Pattern {
	// Extend outward through exactly one gap on either side and count
	// total own stones in the resulting 5-wide window.
	tryWindow := func(start int) Pattern {
		if start < 0 || start+4 > 10 {
			return NoPattern
		}
		ownCount, gaps := 0, 0
		for i := start; i <= start+4; i++ {
			switch w[i] {
			case stateOwn:
				ownCount++
			case stateEmpty:
				gaps++
			default:
				return NoPattern
			}
		}
		if ownCount == 4 && gaps == 1 {
			openLeft := start > 0 && w[start-1] == stateEmpty
			openRight := start+5 <= 10 && w[start+5] == stateEmpty
			if openLeft || openRight {
				return BrokenFour
			}
		}
		return NoPattern
	}

	for start := lo - 3; start <= hi; start++ {
		if p := tryWindow(start); p != NoPattern {
			return p
		}
	}
	return NoPattern
}
