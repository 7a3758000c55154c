package storage

import (
	"encoding/json"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/hailam/caroengine/internal/engine"
)

const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
)

// UserPreferences stores the player's standing choices between matches.
type UserPreferences struct {
	Username   string           `json:"username"`
	Difficulty engine.Difficulty `json:"difficulty"`
	BoardSize  int              `json:"board_size"`
	LastPlayed time.Time        `json:"last_played"`
}

// DefaultPreferences returns the out-of-the-box settings.
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:   "Player",
		Difficulty: engine.Medium,
		BoardSize:  15,
		LastPlayed: time.Now(),
	}
}

// MatchStats aggregates completed-match outcomes, keyed by difficulty.
type MatchStats struct {
	GamesPlayed    int            `json:"games_played"`
	Wins           int            `json:"wins"`
	Losses         int            `json:"losses"`
	Draws          int            `json:"draws"`
	WinsByDiff     map[string]int `json:"wins_by_difficulty"`
	TotalPlayTime  time.Duration  `json:"total_play_time"`
	LongestWinStrk int            `json:"longest_win_streak"`
	CurrentStreak  int            `json:"current_streak"`
}

// NewMatchStats returns empty match statistics.
func NewMatchStats() *MatchStats {
	return &MatchStats{WinsByDiff: make(map[string]int)}
}

// MatchResult is one completed match, reported by the caller after the
// game ends.
type MatchResult struct {
	Won        bool
	Draw       bool
	Difficulty engine.Difficulty
	Duration   time.Duration
}

// Store wraps a badger database holding user preferences and match
// history, separate from the opening book's database.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the match-history store at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// IsFirstLaunch reports whether MarkFirstLaunchComplete has never been called.
func (s *Store) IsFirstLaunch() (bool, error) {
	first := true
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		first = false
		return nil
	})
	return first, err
}

// MarkFirstLaunchComplete records that first-launch setup has run.
func (s *Store) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences persists prefs, stamping LastPlayed with the current time.
func (s *Store) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads stored preferences, or DefaultPreferences if none
// have been saved yet.
func (s *Store) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})
	return prefs, err
}

// SaveStats persists stats.
func (s *Store) SaveStats(stats *MatchStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads stored stats, or NewMatchStats if none have been saved yet.
func (s *Store) LoadStats() (*MatchStats, error) {
	stats := NewMatchStats()
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	return stats, err
}

// RecordMatch loads the current stats, folds result into them, and saves
// the result back in one call.
func (s *Store) RecordMatch(result MatchResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlayTime += result.Duration

	diffKey := result.Difficulty.String()

	switch {
	case result.Draw:
		stats.Draws++
		stats.CurrentStreak = 0
	case result.Won:
		stats.Wins++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestWinStrk {
			stats.LongestWinStrk = stats.CurrentStreak
		}
		stats.WinsByDiff[diffKey]++
	default:
		stats.Losses++
		stats.CurrentStreak = 0
	}

	return s.SaveStats(stats)
}

// WinRate returns the win rate as a percentage (0-100).
func (s *MatchStats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}
