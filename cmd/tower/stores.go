package main

import (
	"fmt"

	"github.com/vovakirdan/crazy-tower/internal/platform/tui"
	"github.com/vovakirdan/crazy-tower/internal/storage"
	"github.com/vovakirdan/crazy-tower/internal/tower"
)

// High score backends selectable with --store.
const (
	storeSQLite = "sqlite"
	storeGData  = "gdata"
)

// stores holds the opened persistence for one command.
type stores struct {
	db       *storage.Store    // Score history and high scores; nil if unavailable
	saveData *storage.SaveData // High scores when --store=gdata
}

// openStores opens the backends selected by --store. A missing database
// is not fatal: the game runs without history.
func openStores() (*stores, error) {
	s := &stores{}

	db, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
	} else {
		s.db = db
	}

	switch flagStore {
	case storeSQLite:
	case storeGData:
		sd, err := storage.OpenSaveData(storage.AppName)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.saveData = sd
	default:
		s.Close()
		return nil, fmt.Errorf("unknown --store %q (want %s or %s)", flagStore, storeSQLite, storeGData)
	}

	s.wire()
	return s, nil
}

// wire hands the high score backend to the tower package.
func (s *stores) wire() {
	switch {
	case s.saveData != nil:
		tower.SetStore(s.saveData)
	case s.db != nil:
		tower.SetStore(s.db)
	default:
		tower.SetStore(nil)
	}
}

// recorder returns the score history writer, or nil.
func (s *stores) recorder() tui.ScoreRecorder {
	if s.db == nil {
		return nil
	}
	return s.db
}

// source returns the score history reader, or nil.
func (s *stores) source() tui.ScoreSource {
	if s.db == nil {
		return nil
	}
	return s.db
}

// deleteHighScore clears the stored best for a variant.
func (s *stores) deleteHighScore(gameID string) error {
	key := tower.HighScoreKey(gameID)
	if s.saveData != nil {
		return s.saveData.DeleteKey(key)
	}
	if s.db != nil {
		return s.db.DeleteKey(key)
	}
	return nil
}

// Close releases the database.
func (s *stores) Close() {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logger.Warn("could not close scores database", "error", err)
		}
	}
}
