package engine

import (
	"testing"

	"github.com/hailam/caroengine/internal/board"
)

func TestEvalEmptyBoardIsZero(t *testing.T) {
	b, err := board.New(15)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	ev := NewEvaluator()
	score, terminal := ev.Eval(b, board.First)
	if terminal {
		t.Fatal("expected an empty board to be non-terminal")
	}
	if score != 0 {
		t.Errorf("expected a score of 0 on an empty board, got %d", score)
	}
}

func TestEvalDetectsFiveAsTerminal(t *testing.T) {
	b, _ := board.New(15)
	moves := []board.Move{
		{X: 3, Y: 7}, {X: 3, Y: 8},
		{X: 4, Y: 7}, {X: 4, Y: 8},
		{X: 5, Y: 7}, {X: 5, Y: 8},
		{X: 6, Y: 7}, {X: 6, Y: 8},
		{X: 7, Y: 7}, // First completes the five
	}
	var err error
	for _, m := range moves {
		b, err = b.Place(m)
		if err != nil {
			t.Fatalf("Place(%v): %v", m, err)
		}
	}

	ev := NewEvaluator()
	score, terminal := ev.Eval(b, board.First)
	if !terminal {
		t.Fatal("expected a completed five to be terminal")
	}
	if score != MateScore {
		t.Errorf("expected MateScore for the side with the five, got %d", score)
	}

	score, terminal = ev.Eval(b, board.Second)
	if !terminal {
		t.Fatal("expected a completed five to be terminal from either side's view")
	}
	if score != -MateScore {
		t.Errorf("expected -MateScore for the side without the five, got %d", score)
	}
}

func TestEvalFavorsMoreDevelopedSide(t *testing.T) {
	b, _ := board.New(15)
	moves := []board.Move{
		{X: 5, Y: 7}, {X: 0, Y: 0},
		{X: 6, Y: 7}, {X: 0, Y: 1},
	}
	var err error
	for _, m := range moves {
		b, err = b.Place(m)
		if err != nil {
			t.Fatalf("Place(%v): %v", m, err)
		}
	}

	ev := NewEvaluator()
	score, terminal := ev.Eval(b, board.First)
	if terminal {
		t.Fatal("expected a non-terminal position")
	}
	if score <= 0 {
		t.Errorf("expected First (with an open two) to score above 0, got %d", score)
	}
}

func TestWeightedPatternsCachedMatchesUncached(t *testing.T) {
	b, _ := board.New(15)
	b, _ = b.Place(board.Move{X: 7, Y: 7})

	ev := NewEvaluator()
	cached := ev.weightedPatternsCached(b, board.First)
	direct := weightedPatterns(b, board.First)
	if cached != direct {
		t.Errorf("expected cached and direct weightedPatterns to agree, got %d vs %d", cached, direct)
	}

	// Second call should hit the cache and still agree.
	if again := ev.weightedPatternsCached(b, board.First); again != cached {
		t.Errorf("expected a cache hit to return the same total, got %d vs %d", again, cached)
	}
}
