package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hailam/caroengine/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "caroengine-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	dbDir := filepath.Join(tmpDir, "db")
	store, err := Open(dbDir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDefaultPreferences(t *testing.T) {
	prefs := DefaultPreferences()
	if prefs.Username != "Player" {
		t.Errorf("expected username 'Player', got %q", prefs.Username)
	}
	if prefs.Difficulty != engine.Medium {
		t.Errorf("expected medium difficulty, got %v", prefs.Difficulty)
	}
	if prefs.BoardSize != 15 {
		t.Errorf("expected board size 15, got %d", prefs.BoardSize)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	store := openTestStore(t)

	prefs := DefaultPreferences()
	prefs.Username = "Alice"
	prefs.Difficulty = engine.Hard
	if err := store.SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}

	loaded, err := store.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if loaded.Username != "Alice" || loaded.Difficulty != engine.Hard {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestRecordMatchAndWinRate(t *testing.T) {
	store := openTestStore(t)

	results := []MatchResult{
		{Won: true, Difficulty: engine.Medium, Duration: time.Second},
		{Won: false, Difficulty: engine.Medium, Duration: time.Second},
		{Draw: true, Difficulty: engine.Medium, Duration: time.Second},
	}
	for _, r := range results {
		if err := store.RecordMatch(r); err != nil {
			t.Fatalf("RecordMatch: %v", err)
		}
	}

	stats, err := store.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	if stats.GamesPlayed != 3 || stats.Wins != 1 || stats.Losses != 1 || stats.Draws != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if rate := stats.WinRate(); rate < 33.0 || rate > 34.0 {
		t.Errorf("expected ~33%% win rate, got %.2f%%", rate)
	}
}

func TestFirstLaunch(t *testing.T) {
	store := openTestStore(t)

	first, err := store.IsFirstLaunch()
	if err != nil {
		t.Fatalf("IsFirstLaunch: %v", err)
	}
	if !first {
		t.Error("expected first launch to be true initially")
	}

	if err := store.MarkFirstLaunchComplete(); err != nil {
		t.Fatalf("MarkFirstLaunchComplete: %v", err)
	}

	first, err = store.IsFirstLaunch()
	if err != nil {
		t.Fatalf("IsFirstLaunch: %v", err)
	}
	if first {
		t.Error("expected first launch to be false after marking complete")
	}
}
