// Package config provides YAML-based configuration loading and difficulty
// management for the tower.
package config

// TowerConfig contains all configuration for the tower game.
type TowerConfig struct {
	Physics    TowerPhysics     `yaml:"physics"`
	Player     TowerPlayer      `yaml:"player"`
	Field      TowerField       `yaml:"field"`
	Scoring    TowerScoring     `yaml:"scoring"`
	Camera     TowerCamera      `yaml:"camera"`
	PowerUps   TowerPowerUps    `yaml:"powerups"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TowerPhysics defines player motion in world units per second.
type TowerPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpSpeed    float64 `yaml:"jump_speed"`
	MoveSpeed    float64 `yaml:"move_speed"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
}

// TowerPlayer defines the player's start position and collider.
type TowerPlayer struct {
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TowerField defines platform placement.
type TowerField struct {
	InitialCount   int     `yaml:"initial_count"`
	StartPlatformX float64 `yaml:"start_platform_x"`
	StartPlatformY float64 `yaml:"start_platform_y"`
	GapMin         int     `yaml:"gap_min"`
	GapMax         int     `yaml:"gap_max"`
	XMin           int     `yaml:"x_min"`
	XMax           int     `yaml:"x_max"`
	MinDX          float64 `yaml:"min_dx"`
	MinDY          float64 `yaml:"min_dy"`
	MaxTries       int     `yaml:"max_tries"`
	Lookahead      float64 `yaml:"lookahead"`
	PruneMargin    float64 `yaml:"prune_margin"`
	PlatformWidth  float64 `yaml:"platform_width"`
	PlatformHeight float64 `yaml:"platform_height"`
}

// TowerScoring defines points and persistence.
type TowerScoring struct {
	Reward       int    `yaml:"reward"`
	HighScoreKey string `yaml:"high_score_key"`
}

// TowerCamera defines the visible window.
type TowerCamera struct {
	WorldWidth   float64 `yaml:"world_width"`
	ViewHeight   float64 `yaml:"view_height"`
	FollowOffset float64 `yaml:"follow_offset"` // Player distance below the camera top before it scrolls
	CatchUpSecs  float64 `yaml:"catch_up_secs"`
}

// TowerPowerUps defines the jump boost pickups.
type TowerPowerUps struct {
	Enabled        bool    `yaml:"enabled"`
	Chance         float64 `yaml:"chance"`
	JumpMultiplier float64 `yaml:"jump_multiplier"`
	DurationSecs   float64 `yaml:"duration_secs"`
	Size           float64 `yaml:"size"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	GapIncrease      int     `yaml:"gap_increase"`      // Added to the maximum gap at max difficulty
	PowerUpReduction float64 `yaml:"powerup_reduction"` // Fraction of the power-up chance removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string is valid and means
// no preset: the config file's difficulty section applies as written.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed, "":
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
