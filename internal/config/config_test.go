package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseTower(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded config does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultTowerConfig()) {
		t.Errorf("embedded config differs from DefaultTowerConfig():\n%+v\n%+v", cfg, DefaultTowerConfig())
	}
}

func TestDefaultsAreValid(t *testing.T) {
	if err := DefaultTowerConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tower.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadTowerCustomPathPartialOverride(t *testing.T) {
	path := writeConfig(t, "field:\n  gap_min: 60\nscoring:\n  reward: 20\n")

	cfg, err := LoadTower(path)
	if err != nil {
		t.Fatalf("LoadTower: %v", err)
	}
	if cfg.Field.GapMin != 60 || cfg.Scoring.Reward != 20 {
		t.Errorf("overrides not applied: gap_min=%d reward=%d", cfg.Field.GapMin, cfg.Scoring.Reward)
	}
	if cfg.Field.GapMax != 75 || cfg.Physics.Gravity != 1000 {
		t.Errorf("unset values lost their defaults: gap_max=%d gravity=%v", cfg.Field.GapMax, cfg.Physics.Gravity)
	}
}

func TestLoadTowerErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
			wantErr: "config: read",
		},
		{
			name:    "bad yaml",
			path:    func(t *testing.T) string { return writeConfig(t, "field: [1, 2\n") },
			wantErr: "parse",
		},
		{
			name:    "invalid values",
			path:    func(t *testing.T) string { return writeConfig(t, "field:\n  gap_min: 80\n") },
			wantErr: "gap_min (80) exceeds field.gap_max (75)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadTower(tc.path(t))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadTowerSearchOrder(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadTower("")
	if err != nil {
		t.Fatalf("LoadTower: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultTowerConfig()) {
		t.Error("with no config files the embedded default should be used")
	}

	// A local file beats the embedded default
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", FileName), []byte("field:\n  max_tries: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadTower("")
	if cfg.Field.MaxTries != 4 {
		t.Errorf("local config not used: max_tries=%d", cfg.Field.MaxTries)
	}

	// A user file beats the local one
	home := os.Getenv("HOME")
	userDir := filepath.Join(home, ".tower", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, FileName), []byte("field:\n  max_tries: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadTower("")
	if cfg.Field.MaxTries != 7 {
		t.Errorf("user config not used: max_tries=%d", cfg.Field.MaxTries)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *TowerConfig)
	}{
		{"gap range inverted", func(c *TowerConfig) { c.Field.GapMin, c.Field.GapMax = 80, 60 }},
		{"x band inverted", func(c *TowerConfig) { c.Field.XMin, c.Field.XMax = 300, 50 }},
		{"no tries", func(c *TowerConfig) { c.Field.MaxTries = 0 }},
		{"zero reward", func(c *TowerConfig) { c.Scoring.Reward = 0 }},
		{"no gravity", func(c *TowerConfig) { c.Physics.Gravity = 0 }},
		{"chance above one", func(c *TowerConfig) { c.PowerUps.Chance = 1.5 }},
		{"gap out of reach", func(c *TowerConfig) { c.Field.GapMax = 130 }},
		{"scaled gap out of reach", func(c *TowerConfig) { c.Difficulty.Scaling.GapIncrease = 60 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTowerConfig()
			tc.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestApplyTowerPreset(t *testing.T) {
	cfg := DefaultTowerConfig()
	ApplyTowerPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	cfg = DefaultTowerConfig()
	ApplyTowerPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset difficulty = %+v", cfg.Difficulty)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("hard preset produced an invalid config: %v", err)
	}

	cfg = DefaultTowerConfig()
	ApplyTowerPreset(&cfg, DifficultyEasy)
	if cfg.Difficulty.Scaling.GapIncrease >= DefaultTowerConfig().Difficulty.Scaling.GapIncrease {
		t.Error("easy preset should keep gaps narrower")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in     string
		want   DifficultyPreset
		wantOK bool
	}{
		{"easy", DifficultyEasy, true},
		{"fixed", DifficultyFixed, true},
		{"", "", true},
		{"nightmare", "", false},
	}
	for _, tc := range tests {
		got, ok := ParsePreset(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("ParsePreset(%q) = %q, %v; expected %q, %v", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultTowerConfig().Difficulty
	cfg.Enabled = true
	d := NewDifficultyManager(cfg)

	if lvl := d.Level(0, 0); lvl != 0 {
		t.Errorf("Level(0) = %v, expected 0", lvl)
	}
	if lvl := d.Level(750, 0); lvl != 0.5 {
		t.Errorf("Level(750) = %v, expected 0.5", lvl)
	}
	if lvl := d.Level(99999, 0); lvl != 1 {
		t.Errorf("Level past max_at = %v, expected 1", lvl)
	}

	if got := d.GapMax(55, 75, 0, 0); got != 75 {
		t.Errorf("GapMax at level 0 = %d, expected 75", got)
	}
	if got := d.GapMax(55, 75, 1500, 0); got != 90 {
		t.Errorf("GapMax at level 1 = %d, expected 90", got)
	}

	if got := d.PowerUpChance(0.25, 0, 0); got != 0.25 {
		t.Errorf("PowerUpChance at level 0 = %v, expected 0.25", got)
	}
	if got := d.PowerUpChance(0.25, 1500, 0); got != 0.125 {
		t.Errorf("PowerUpChance at level 1 = %v, expected 0.125", got)
	}

	cfg.Enabled = false
	cfg.InitialLevel = 0.3
	d = NewDifficultyManager(cfg)
	if lvl := d.Level(1500, 0); lvl != 0.3 {
		t.Errorf("disabled Level = %v, expected initial 0.3", lvl)
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 600},
	})
	if lvl := d.Level(0, 300); lvl != 0.5 {
		t.Errorf("Level(ticks=300) = %v, expected 0.5", lvl)
	}
}
