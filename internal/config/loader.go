package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the tower config file name in every search location.
const FileName = "tower.yaml"

// LoadTower loads the tower configuration. Values missing from a file keep
// their defaults.
// Search order: customPath -> ~/.tower/configs/tower.yaml -> ./configs/tower.yaml -> embedded default
func LoadTower(customPath string) (TowerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TowerConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parseTower(data)
		if err != nil {
			return TowerConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parseTower(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parseTower(defaultTowerYAML)
	if err != nil {
		return DefaultTowerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseTower decodes YAML over the defaults and validates the result.
func parseTower(data []byte) (TowerConfig, error) {
	cfg := DefaultTowerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TowerConfig{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return TowerConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tower", "configs", filename)
}

// Validate rejects configurations the game cannot run with.
func (c TowerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	f := c.Field
	check(f.GapMin > 0, "field.gap_min must be positive, got %d", f.GapMin)
	check(f.GapMin <= f.GapMax, "field.gap_min (%d) exceeds field.gap_max (%d)", f.GapMin, f.GapMax)
	check(f.XMin <= f.XMax, "field.x_min (%d) exceeds field.x_max (%d)", f.XMin, f.XMax)
	check(f.MaxTries >= 1, "field.max_tries must be at least 1, got %d", f.MaxTries)
	check(f.InitialCount >= 0, "field.initial_count must not be negative, got %d", f.InitialCount)
	check(f.PlatformWidth > 0 && f.PlatformHeight > 0, "field platform size must be positive")

	p := c.Physics
	check(p.Gravity > 0, "physics.gravity must be positive, got %v", p.Gravity)
	check(p.JumpSpeed > 0, "physics.jump_speed must be positive, got %v", p.JumpSpeed)
	check(p.MoveSpeed >= 0, "physics.move_speed must not be negative, got %v", p.MoveSpeed)

	check(c.Player.Width > 0 && c.Player.Height > 0, "player size must be positive")
	check(c.Scoring.Reward > 0, "scoring.reward must be positive, got %d", c.Scoring.Reward)
	check(c.Camera.WorldWidth > 0, "camera.world_width must be positive, got %v", c.Camera.WorldWidth)
	check(c.Camera.ViewHeight > 0, "camera.view_height must be positive, got %v", c.Camera.ViewHeight)
	check(c.PowerUps.Chance >= 0 && c.PowerUps.Chance <= 1, "powerups.chance must be within [0, 1], got %v", c.PowerUps.Chance)

	// The widest gap must stay within a plain jump.
	if p.Gravity > 0 && p.JumpSpeed > 0 {
		apex := p.JumpSpeed * p.JumpSpeed / (2 * p.Gravity)
		widest := f.GapMax + c.Difficulty.Scaling.GapIncrease
		check(float64(widest) < apex, "gap of %d is out of jump reach (apex %.0f)", widest, apex)
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ApplyTowerPreset modifies the config based on a difficulty preset.
func ApplyTowerPreset(cfg *TowerConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust how wide gaps get based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Scaling.GapIncrease = 5
		cfg.PowerUps.Chance = 0.35
	case DifficultyHard:
		cfg.Difficulty.Scaling.GapIncrease = 25
	}
}
