package engine

import "testing"

func TestPatternCacheStoreAndProbe(t *testing.T) {
	pc := newPatternCache(64)
	pc.store(0xABCD, 0, 42)

	total, ok := pc.probe(0xABCD, 0)
	if !ok || total != 42 {
		t.Fatalf("expected (42, true), got (%d, %v)", total, ok)
	}
}

func TestPatternCacheMiss(t *testing.T) {
	pc := newPatternCache(64)
	if _, ok := pc.probe(0xABCD, 0); ok {
		t.Fatal("expected miss on an empty cache")
	}
}

func TestPatternCacheDistinguishesPlayers(t *testing.T) {
	pc := newPatternCache(64)
	pc.store(0xABCD, 0, 10)
	pc.store(0xABCD, 1, -10)

	first, _ := pc.probe(0xABCD, 0)
	second, _ := pc.probe(0xABCD, 1)
	if first == second {
		t.Fatalf("expected distinct totals per player, got %d and %d", first, second)
	}
}

func TestPatternCacheClear(t *testing.T) {
	pc := newPatternCache(64)
	pc.store(0xABCD, 0, 42)
	pc.clear()

	if _, ok := pc.probe(0xABCD, 0); ok {
		t.Fatal("expected miss after clear")
	}
}

func TestNewPatternCacheRoundsDownToPowerOfTwo(t *testing.T) {
	pc := newPatternCache(100)
	if len(pc.entries) != 64 {
		t.Errorf("expected 64 entries, got %d", len(pc.entries))
	}
	if pc.mask != 63 {
		t.Errorf("expected mask 63, got %d", pc.mask)
	}
}
