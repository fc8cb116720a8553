package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []struct {
		game          string
		score, height int
	}{
		{"tower", 105, 420},
		{"tower", 45, 180},
		{"tower", 210, 900},
		{"tower_powerup", 500, 2100},
	}
	for _, r := range runs {
		if _, err := store.SaveScore(r.game, r.score, r.height); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("tower", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 210 || scores[1].Score != 105 || scores[2].Score != 45 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Height != 900 {
		t.Errorf("Expected height 900 for the best run, got %d", scores[0].Height)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}

	powerScores, err := store.TopScores("tower_powerup", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(powerScores) != 1 {
		t.Errorf("Expected 1 tower_powerup score, got %d", len(powerScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("tower", (i+1)*15, 0)
	}

	scores, err := store.TopScores("tower", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 75 || scores[1].Score != 60 || scores[2].Score != 45 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	all, err := store.AllScores("tower")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(all))
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("tower", 30, 0)
	store.SaveScore("tower", 90, 0)
	store.SaveScore("tower_powerup", 300, 0)

	if stats, _ := store.GetGameStats("tower"); stats.HighScore != 90 {
		t.Errorf("Expected high score of 90, got %d", stats.HighScore)
	}

	if err := store.ClearScores("tower"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores("tower", 10); len(scores) != 0 {
		t.Errorf("Expected 0 tower scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("tower_powerup", 10); len(scores) != 1 {
		t.Error("tower_powerup scores should not be affected by clearing tower")
	}
}

func TestStoreKeyValue(t *testing.T) {
	store := openTestStore(t)

	v, ok, err := store.GetInt("crazyTowerHighScore")
	if err != nil || ok || v != 0 {
		t.Fatalf("GetInt on missing key = %d, %v, %v", v, ok, err)
	}

	if err := store.SetInt("crazyTowerHighScore", 45); err != nil {
		t.Fatalf("SetInt() failed: %v", err)
	}
	if err := store.SetInt("crazyTowerHighScore", 120); err != nil {
		t.Fatalf("SetInt() overwrite failed: %v", err)
	}

	v, ok, err = store.GetInt("crazyTowerHighScore")
	if err != nil || !ok || v != 120 {
		t.Errorf("GetInt = %d, %v, %v; expected 120, true, nil", v, ok, err)
	}

	if err := store.DeleteKey("crazyTowerHighScore"); err != nil {
		t.Fatalf("DeleteKey() failed: %v", err)
	}
	if _, ok, _ := store.GetInt("crazyTowerHighScore"); ok {
		t.Error("key should be gone after DeleteKey")
	}
}

func TestStoreKeyValuePersistsAcrossOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SetInt("crazyTowerHighScore", 75)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if v, ok, _ := store.GetInt("crazyTowerHighScore"); !ok || v != 75 {
		t.Errorf("after reopen GetInt = %d, %v; expected 75", v, ok)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("tower")
	if err != nil {
		t.Fatalf("GetGameStats() on empty table failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore("tower", 30, 120)
	store.SaveScore("tower", 60, 400)
	store.SaveScore("tower_powerup", 90, 800)

	stats, err = store.GetGameStats("tower")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 60 || stats.BestHeight != 400 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 45 || stats.TotalScore != 90 {
		t.Errorf("avg/total = %v/%d, expected 45/90", stats.AvgScore, stats.TotalScore)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["tower_powerup"].HighScore != 90 {
		t.Errorf("all stats = %v", all)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
