// Package storage resolves the platform data directory and persists match
// history/preferences in a badger database, separate from internal/book's
// opening-book database (different lifetime and access pattern: this one
// is written once per completed game, the book is read on every move).
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "caroengine"

// GetDataDir returns the platform-specific data directory for the
// application, creating it if necessary.
// - macOS: ~/Library/Application Support/caroengine/
// - Linux: ~/.local/share/caroengine/ (or $XDG_DATA_HOME/caroengine)
// - Windows: %APPDATA%/caroengine/
func GetDataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// GetBookDir returns the directory internal/book should open its opening
// book database in.
func GetBookDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	bookDir := filepath.Join(dataDir, "book")
	if err := os.MkdirAll(bookDir, 0755); err != nil {
		return "", err
	}
	return bookDir, nil
}

// GetStatsDir returns the directory for storing the match-history BadgerDB.
func GetStatsDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	dbDir := filepath.Join(dataDir, "stats")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}
	return dbDir, nil
}
