package board

import "testing"

func TestPlanesSetTestClear(t *testing.T) {
	p := NewPlanes(15)
	if p.Test(3, 4) {
		t.Fatal("expected a fresh plane to be empty")
	}
	p.Set(3, 4)
	if !p.Test(3, 4) {
		t.Error("expected Test to report true after Set")
	}
	if p.Test(4, 3) {
		t.Error("expected an unset neighbor cell to remain false")
	}
	p.Clear(3, 4)
	if p.Test(3, 4) {
		t.Error("expected Test to report false after Clear")
	}
}

func TestPlanesCloneIsIndependent(t *testing.T) {
	p := NewPlanes(15)
	p.Set(1, 1)
	clone := p.Clone()
	clone.Set(2, 2)

	if p.Test(2, 2) {
		t.Error("expected the original plane to be unaffected by mutating the clone")
	}
	if !clone.Test(1, 1) {
		t.Error("expected the clone to carry over bits set before cloning")
	}
}

func TestPlanesPopCount(t *testing.T) {
	p := NewPlanes(15)
	if p.PopCount() != 0 {
		t.Fatalf("expected 0 bits set initially, got %d", p.PopCount())
	}
	p.Set(0, 0)
	p.Set(5, 5)
	p.Set(14, 14)
	if got := p.PopCount(); got != 3 {
		t.Errorf("expected 3 bits set, got %d", got)
	}
}

func TestPlanesOrAndAndNot(t *testing.T) {
	a := NewPlanes(15)
	b := NewPlanes(15)
	a.Set(1, 1)
	b.Set(2, 2)

	or := a.Or(b)
	if !or.Test(1, 1) || !or.Test(2, 2) {
		t.Error("expected Or to carry bits from both operands")
	}

	and := a.And(b)
	if and.PopCount() != 0 {
		t.Error("expected And of disjoint planes to be empty")
	}

	both := a.Clone()
	both.Set(2, 2)
	andNot := both.AndNot(b)
	if andNot.Test(2, 2) {
		t.Error("expected AndNot to remove bits present in the argument")
	}
	if !andNot.Test(1, 1) {
		t.Error("expected AndNot to preserve bits absent from the argument")
	}
}

func TestPlanesNot(t *testing.T) {
	p := NewPlanes(5)
	p.Set(0, 0)
	inv := p.Not()
	if inv.Test(0, 0) {
		t.Error("expected Not to clear a previously-set bit")
	}
	if !inv.Test(1, 0) {
		t.Error("expected Not to set a previously-clear in-bounds bit")
	}
}

func TestPlanesForEachVisitsSetBits(t *testing.T) {
	p := NewPlanes(15)
	want := map[[2]int]bool{{1, 1}: true, {7, 7}: true, {14, 0}: true}
	for c := range want {
		p.Set(c[0], c[1])
	}

	seen := map[[2]int]bool{}
	p.ForEach(func(x, y int) {
		seen[[2]int{x, y}] = true
	})

	if len(seen) != len(want) {
		t.Fatalf("expected %d visited cells, got %d", len(want), len(seen))
	}
	for c := range want {
		if !seen[c] {
			t.Errorf("expected ForEach to visit %v", c)
		}
	}
}

func TestPlanesEmpty(t *testing.T) {
	p := NewPlanes(15)
	if !p.Empty() {
		t.Fatal("expected a fresh plane to report Empty")
	}
	p.Set(3, 3)
	if p.Empty() {
		t.Error("expected a plane with a set bit to report non-empty")
	}
}

func TestPlanesDirectionalShifts(t *testing.T) {
	p := NewPlanes(15)
	p.Set(7, 7)

	if got := p.East(); !got.Test(8, 7) {
		t.Error("expected East() to shift the bit one column right")
	}
	if got := p.West(); !got.Test(6, 7) {
		t.Error("expected West() to shift the bit one column left")
	}
	if got := p.South(); !got.Test(7, 6) {
		t.Error("expected South() to shift the bit one row down")
	}
	if got := p.North(); !got.Test(7, 8) {
		t.Error("expected North() to shift the bit one row up")
	}
}

func TestPlanesShiftOffBoardVanishes(t *testing.T) {
	p := NewPlanes(15)
	p.Set(14, 7)
	east := p.East()
	if !east.Empty() {
		t.Error("expected shifting off the east edge to produce an empty plane")
	}

	q := NewPlanes(15)
	q.Set(0, 7)
	west := q.West()
	if !west.Empty() {
		t.Error("expected shifting off the west edge to produce an empty plane")
	}
}
