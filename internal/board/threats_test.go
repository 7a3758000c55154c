package board

import "testing"

func threatCells(threats []Threat) map[Move]Pattern {
	m := make(map[Move]Pattern, len(threats))
	for _, t := range threats {
		m[t.Cell] = t.Pattern
	}
	return m
}

func buildOpenThreeBoard(t *testing.T) *Board {
	t.Helper()
	b, err := New(15)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	moves := []Move{
		{X: 5, Y: 7}, {X: 0, Y: 0}, // First, Second (filler)
		{X: 6, Y: 7}, {X: 0, Y: 1},
		{X: 7, Y: 7}, {X: 0, Y: 2},
	}
	for _, m := range moves {
		b, err = b.Place(m)
		if err != nil {
			t.Fatalf("Place(%v): %v", m, err)
		}
	}
	return b
}

func TestListThreatsFindsOpenThreeExtensions(t *testing.T) {
	b := buildOpenThreeBoard(t)
	threats := threatCells(ListThreats(b, First))

	for _, cell := range []Move{{X: 4, Y: 7}, {X: 8, Y: 7}} {
		p, ok := threats[cell]
		if !ok {
			t.Fatalf("expected %v to be listed as a threat", cell)
		}
		if p != OpenFour {
			t.Errorf("expected %v to create OpenFour, got %v", cell, p)
		}
	}
}

func TestListThreatsIgnoresOccupiedCells(t *testing.T) {
	b := buildOpenThreeBoard(t)
	threats := ListThreats(b, First)
	for _, th := range threats {
		if b.PlayerAt(th.Cell.X, th.Cell.Y) != Empty {
			t.Errorf("expected only empty cells in threat list, got occupied %v", th.Cell)
		}
	}
}

func TestMustBlockCellsCatchesOpponentFourThreats(t *testing.T) {
	b := buildOpenThreeBoard(t)
	blockers := make(map[Move]bool)
	for _, m := range MustBlockCells(b, Second) {
		blockers[m] = true
	}
	if !blockers[Move{X: 4, Y: 7}] || !blockers[Move{X: 8, Y: 7}] {
		t.Errorf("expected both open-four-creating cells to be must-block cells, got %v", blockers)
	}
}

func TestMustBlockCellsEmptyWithoutForcingThreat(t *testing.T) {
	b, _ := New(15)
	b, _ = b.Place(Move{X: 7, Y: 7})
	if got := MustBlockCells(b, Second); len(got) != 0 {
		t.Errorf("expected no must-block cells from a single stone, got %v", got)
	}
}

func TestMustBlockCellsCatchesFiveCompletingCell(t *testing.T) {
	b, _ := New(15)
	moves := []Move{
		{X: 3, Y: 7}, {X: 0, Y: 0}, // First builds a closed four, Second filler
		{X: 4, Y: 7}, {X: 0, Y: 1},
		{X: 5, Y: 7}, {X: 0, Y: 2},
		{X: 6, Y: 7}, {X: 0, Y: 3},
	}
	var err error
	for _, m := range moves {
		b, err = b.Place(m)
		if err != nil {
			t.Fatalf("Place(%v): %v", m, err)
		}
	}
	// First now has four in a row at x=3..6,y=7; x=7,y=7 completes it to a
	// five and must be flagged as a forced block for Second.
	blockers := make(map[Move]bool)
	for _, m := range MustBlockCells(b, Second) {
		blockers[m] = true
	}
	if !blockers[Move{X: 7, Y: 7}] {
		t.Errorf("expected the five-completing cell to be a must-block cell, got %v", blockers)
	}
}
