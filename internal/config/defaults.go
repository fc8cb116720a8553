package config

import (
	_ "embed"
)

//go:embed defaults/tower.yaml
var defaultTowerYAML []byte

// DefaultTowerConfig returns the default tower configuration.
func DefaultTowerConfig() TowerConfig {
	return TowerConfig{
		Physics: TowerPhysics{
			Gravity:      1000,
			JumpSpeed:    500,
			MoveSpeed:    200,
			MaxFallSpeed: 900,
		},
		Player: TowerPlayer{
			StartX: 200,
			StartY: 500,
			Width:  20,
			Height: 30,
		},
		Field: TowerField{
			InitialCount:   8,
			StartPlatformX: 200,
			StartPlatformY: 550,
			GapMin:         55,
			GapMax:         75,
			XMin:           50,
			XMax:           300,
			MinDX:          70,
			MinDY:          40,
			MaxTries:       10,
			Lookahead:      100,
			PruneMargin:    700,
			PlatformWidth:  80,
			PlatformHeight: 12,
		},
		Scoring: TowerScoring{
			Reward:       15,
			HighScoreKey: "crazyTowerHighScore",
		},
		Camera: TowerCamera{
			WorldWidth:   400,
			ViewHeight:   600,
			FollowOffset: 300,
			CatchUpSecs:  0.25,
		},
		PowerUps: TowerPowerUps{
			Enabled:        false,
			Chance:         0.25,
			JumpMultiplier: 1.5,
			DurationSecs:   5,
			Size:           16,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1500,
			},
			Scaling: ScalingConfig{
				GapIncrease:      15,
				PowerUpReduction: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultTowerYAML
}
