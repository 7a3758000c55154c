package engine

import (
	"context"
	"testing"
	"time"

	"github.com/hailam/caroengine/internal/board"
)

func TestFindBestMoveReturnsALegalMove(t *testing.T) {
	b, err := board.New(15)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	ctrl := NewController(DefaultOptions(), nil, nil)

	limits := TimeLimits{TimeRemaining: 10 * time.Second, MoveNumber: 0}
	res, err := ctrl.FindBestMove(context.Background(), b, board.First, Easy, limits)
	if err != nil {
		t.Fatalf("FindBestMove: %v", err)
	}
	if !res.Move.Valid(15) || b.PlayerAt(res.Move.X, res.Move.Y) != board.Empty {
		t.Errorf("expected a legal empty-cell move, got %v", res.Move)
	}
}

func TestFindBestMoveRejectsWrongSide(t *testing.T) {
	b, err := board.New(15)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	ctrl := NewController(DefaultOptions(), nil, nil)

	_, err = ctrl.FindBestMove(context.Background(), b, board.Empty, Easy, TimeLimits{TimeRemaining: time.Second})
	if err == nil {
		t.Fatal("expected an error for Empty as the side to move")
	}
}

func TestFindBestMoveRejectsFullBoard(t *testing.T) {
	b, err := board.New(board.MinBoardSize)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	for y := 0; y < board.MinBoardSize; y++ {
		for x := 0; x < board.MinBoardSize; x++ {
			b, err = b.Place(board.Move{X: x, Y: y})
			if err != nil {
				t.Fatalf("Place(%d,%d): %v", x, y, err)
			}
		}
	}
	ctrl := NewController(DefaultOptions(), nil, nil)
	_, err = ctrl.FindBestMove(context.Background(), b, board.First, Easy, TimeLimits{TimeRemaining: time.Second})
	if err == nil {
		t.Fatal("expected an error on a full board")
	}
}

func TestBraindeadSubstituteReturnsALegalMove(t *testing.T) {
	b, err := board.New(15)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	m, ok := braindeadSubstitute(b, board.First)
	if !ok {
		t.Fatal("expected a substitute move on an empty board")
	}
	if !m.Valid(15) {
		t.Errorf("expected a valid move, got %v", m)
	}
}
