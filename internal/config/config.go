// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import "time"

// TetrisConfig contains all configuration for the Tetris game.
type TetrisConfig struct {
	Board      TetrisBoard      `yaml:"board"`
	Gravity    TetrisGravity    `yaml:"gravity"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TetrisBoard defines the playfield size in cells.
type TetrisBoard struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TetrisGravity defines how often the falling piece moves down on its own.
type TetrisGravity struct {
	IntervalMS    int `yaml:"interval_ms"`     // at difficulty level 0
	MinIntervalMS int `yaml:"min_interval_ms"` // floor when difficulty speeds it up
}

// Interval returns the base gravity interval.
func (g TetrisGravity) Interval() time.Duration {
	return time.Duration(g.IntervalMS) * time.Millisecond
}

// MinInterval returns the fastest gravity interval difficulty may reach.
func (g TetrisGravity) MinInterval() time.Duration {
	return time.Duration(g.MinIntervalMS) * time.Millisecond
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
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
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
