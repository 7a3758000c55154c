package engine

import (
	"context"
	"testing"
	"time"

	"github.com/hailam/caroengine/internal/board"
)

func TestVCFSolveFindsNothingOnEmptyBoard(t *testing.T) {
	b, err := board.New(15)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	solver := NewVCFSolver()
	result := solver.Solve(context.Background(), b, board.First, 6, time.Now().Add(time.Second))

	if result.Found {
		t.Errorf("expected no forced win on an empty board, got %+v", result)
	}
}

func TestVCFSolveRespectsExpiredDeadline(t *testing.T) {
	b, err := board.New(15)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	solver := NewVCFSolver()
	result := solver.Solve(context.Background(), b, board.First, 6, time.Now().Add(-time.Second))

	if result.Found {
		t.Errorf("expected an already-expired deadline to prevent any proof, got %+v", result)
	}
	if result.NodesSearched != 0 {
		t.Errorf("expected zero nodes searched past the deadline, got %d", result.NodesSearched)
	}
}

func TestVCFSolveRespectsCancelledContext(t *testing.T) {
	b, err := board.New(15)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	solver := NewVCFSolver()
	result := solver.Solve(ctx, b, board.First, 6, time.Now().Add(time.Second))

	if result.Found {
		t.Errorf("expected a pre-cancelled context to prevent any proof, got %+v", result)
	}
}
