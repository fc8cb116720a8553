package storage

import "testing"

func openTestSaveData(t *testing.T) *SaveData {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)

	s, err := OpenSaveData("crazy-tower-test")
	if err != nil {
		t.Skipf("save data unavailable here: %v", err)
	}
	return s
}

func TestSaveDataRoundTrip(t *testing.T) {
	s := openTestSaveData(t)

	if v, ok, err := s.GetInt("crazyTowerHighScore"); err != nil || ok || v != 0 {
		t.Fatalf("GetInt on missing item = %d, %v, %v", v, ok, err)
	}

	if err := s.SetInt("crazyTowerHighScore", 135); err != nil {
		t.Fatalf("SetInt() failed: %v", err)
	}
	if v, ok, err := s.GetInt("crazyTowerHighScore"); err != nil || !ok || v != 135 {
		t.Errorf("GetInt = %d, %v, %v; expected 135, true, nil", v, ok, err)
	}

	if err := s.DeleteKey("crazyTowerHighScore"); err != nil {
		t.Fatalf("DeleteKey() failed: %v", err)
	}
	if _, ok, _ := s.GetInt("crazyTowerHighScore"); ok {
		t.Error("item should be empty after DeleteKey")
	}
}
