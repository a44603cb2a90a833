package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTetris loads Tetris configuration.
// Search order: customPath -> ~/.arcade/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default
func LoadTetris(customPath string) (TetrisConfig, error) {
	cfg, err := load("tetris.yaml", customPath, defaultTetrisYAML, DefaultTetrisConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects configurations the game cannot run with.
func (c TetrisConfig) Validate() error {
	if c.Board.Width < 4 || c.Board.Height < 4 {
		return fmt.Errorf("config: board %dx%d is smaller than a tetrimino", c.Board.Width, c.Board.Height)
	}
	if c.Gravity.IntervalMS < 0 || c.Gravity.MinIntervalMS < 0 {
		return fmt.Errorf("config: negative gravity interval")
	}
	return nil
}

// load reads a game config over the hardcoded defaults, so a file only needs
// the keys it changes. A custom path must exist and parse; the user and local
// directories are skipped silently when missing or invalid.
func load[T any](filename, customPath string, embedded []byte, fallback func() T) (T, error) {
	cfg := fallback()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			user := fallback()
			if err := yaml.Unmarshal(data, &user); err == nil {
				return user, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		local := fallback()
		if err := yaml.Unmarshal(data, &local); err == nil {
			return local, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
