package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	// Clamp progress to [0, 1]
	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// GapMax returns the current upper bound of the vertical platform gap.
// The gap widens as difficulty increases; it never drops below baseMin.
func (d *DifficultyManager) GapMax(baseMin, baseMax int, score int, ticks int) int {
	level := d.Level(score, ticks)
	result := baseMax + int(math.Round(level*float64(d.cfg.Scaling.GapIncrease)))
	if result < baseMin {
		result = baseMin
	}
	return result
}

// PowerUpChance returns the current chance of a power-up on a new platform.
func (d *DifficultyManager) PowerUpChance(base float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	// Chance decreases from base to base * (1 - reduction)
	return clampF(base*(1.0-level*d.cfg.Scaling.PowerUpReduction), 0.0, 1.0)
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
