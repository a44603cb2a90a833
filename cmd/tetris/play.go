package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/retro-tetris/internal/config"
	"github.com/vovakirdan/retro-tetris/internal/core"
	gametetris "github.com/vovakirdan/retro-tetris/internal/games/tetris"
	"github.com/vovakirdan/retro-tetris/internal/platform/tui"
	"github.com/vovakirdan/retro-tetris/internal/registry"
	"github.com/vovakirdan/retro-tetris/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing. Without an argument the tetris game is started.

Controls:
  Left/A/H     - Move left
  Right/D/L    - Move right
  Up/W/K/X     - Rotate clockwise
  Down/S/J     - Soft drop (one row)
  P            - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at the base speed, gravity quickens with the score
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, gravity stays at the configured interval

Examples:
  tetris play
  tetris play --difficulty hard
  tetris play --seed 42
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// applyGameFlags hands the config path and preset to the game before it is created.
func applyGameFlags() error {
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	gametetris.SetConfigPath(flagConfig)
	gametetris.SetDifficultyPreset(flagDifficulty)
	return nil
}

// runtimeConfig sizes the runtime to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := gameArg(args)

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available games.")
		os.Exit(1)
	}

	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Play without saving
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
