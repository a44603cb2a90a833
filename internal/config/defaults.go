package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default Tetris configuration: a 10x20
// board, one gravity step per second and no progression.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: TetrisBoard{
			Width:  10,
			Height: 20,
		},
		Gravity: TetrisGravity{
			IntervalMS:    1000,
			MinIntervalMS: 100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 4.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tetris":
		return defaultTetrisYAML
	default:
		return nil
	}
}
