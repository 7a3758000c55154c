package board

import "testing"

func TestNewRejectsOutOfRangeSizes(t *testing.T) {
	if _, err := New(MinBoardSize - 1); err == nil {
		t.Error("expected an error for a board smaller than MinBoardSize")
	}
	if _, err := New(MaxBoardSize + 1); err == nil {
		t.Error("expected an error for a board larger than MaxBoardSize")
	}
	if _, err := New(MinBoardSize); err != nil {
		t.Errorf("expected MinBoardSize to be accepted, got %v", err)
	}
}

func TestPlaceAlternatesSideToMove(t *testing.T) {
	b, err := New(15)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if b.ToMove() != First {
		t.Fatalf("expected First to move initially, got %v", b.ToMove())
	}

	next, err := b.Place(Move{X: 7, Y: 7})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if next.ToMove() != Second {
		t.Errorf("expected Second to move after First's move, got %v", next.ToMove())
	}
	if next.PlayerAt(7, 7) != First {
		t.Errorf("expected First's stone at (7,7), got %v", next.PlayerAt(7, 7))
	}
	if next.MoveNumber() != b.MoveNumber()+1 {
		t.Errorf("expected move number to advance by one")
	}
}

func TestPlaceRejectsOccupiedCell(t *testing.T) {
	b, _ := New(15)
	b, _ = b.Place(Move{X: 3, Y: 3})
	if _, err := b.Place(Move{X: 3, Y: 3}); err == nil {
		t.Error("expected an error placing on an occupied cell")
	}
}

func TestPlaceRejectsOutOfBounds(t *testing.T) {
	b, _ := New(15)
	if _, err := b.Place(Move{X: -1, Y: 0}); err == nil {
		t.Error("expected an error for a negative coordinate")
	}
	if _, err := b.Place(Move{X: 15, Y: 0}); err == nil {
		t.Error("expected an error for a coordinate at the board edge")
	}
}

func TestPlaceDoesNotMutateOriginal(t *testing.T) {
	b, _ := New(15)
	next, err := b.Place(Move{X: 7, Y: 7})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if b.PlayerAt(7, 7) != Empty {
		t.Error("expected the original board to remain unmutated")
	}
	if next.PlayerAt(7, 7) == Empty {
		t.Error("expected the returned board to carry the new stone")
	}
}

func TestMovesExcludesOccupiedCells(t *testing.T) {
	b, _ := New(5)
	total := b.Moves().Len()
	if total != 25 {
		t.Fatalf("expected 25 candidate moves on an empty 5x5 board, got %d", total)
	}

	next, _ := b.Place(Move{X: 2, Y: 2})
	if got := next.Moves().Len(); got != 24 {
		t.Errorf("expected 24 candidate moves after one placement, got %d", got)
	}
	if next.Moves().Contains(Move{X: 2, Y: 2}) {
		t.Error("expected the occupied cell to be excluded from Moves()")
	}
}

func TestHashChangesAfterEachMove(t *testing.T) {
	b, _ := New(15)
	start := b.Hash()
	next, err := b.Place(Move{X: 7, Y: 7})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if next.Hash() == start {
		t.Error("expected the hash to change after placing a stone")
	}
}

func TestHashDiffersForDifferentPositions(t *testing.T) {
	b, _ := New(15)
	a, err := b.Place(Move{X: 1, Y: 1})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	c, err := b.Place(Move{X: 2, Y: 2})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if a.Hash() == c.Hash() {
		t.Error("expected distinct positions to hash differently")
	}
}
