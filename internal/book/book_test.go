package book

import (
	"testing"

	"github.com/hailam/caroengine/internal/board"
)

func newTestBoard(t *testing.T) *board.Board {
	t.Helper()
	b, err := board.New(15)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	return b
}

func TestBookPutAndLookup(t *testing.T) {
	bk, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	defer bk.Close()

	pos := newTestBoard(t)
	center := pos.Size() / 2
	reply := board.Move{X: center, Y: center}

	if err := bk.PutPosition(pos, []BookEntry{{Move: reply, Weight: 100}}); err != nil {
		t.Fatalf("PutPosition: %v", err)
	}

	got, ok := bk.Lookup(pos, board.First, 20, 0)
	if !ok {
		t.Fatal("expected book hit")
	}
	if got != reply && !sameUnderSymmetry(got, reply, pos.Size()) {
		t.Errorf("lookup returned %v, want a symmetric image of %v", got, reply)
	}
}

func TestBookMiss(t *testing.T) {
	bk, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	defer bk.Close()

	pos := newTestBoard(t)
	if _, ok := bk.Lookup(pos, board.First, 20, 0); ok {
		t.Error("expected miss on empty book")
	}
}

func TestBookDepthCutoff(t *testing.T) {
	bk, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	defer bk.Close()

	pos := newTestBoard(t)
	reply := board.Move{X: pos.Size() / 2, Y: pos.Size() / 2}
	if err := bk.PutPosition(pos, []BookEntry{{Move: reply, Weight: 1}}); err != nil {
		t.Fatalf("PutPosition: %v", err)
	}

	if _, ok := bk.Lookup(pos, board.First, 4, 10); ok {
		t.Error("expected miss when currentPly exceeds maxPly")
	}
}

func sameUnderSymmetry(got, want board.Move, size int) bool {
	for sym := 0; sym < 8; sym++ {
		if board.CanonicalMove(want, size, sym) == got {
			return true
		}
	}
	return false
}
