package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-tetris/internal/platform/tui"
	"github.com/vovakirdan/retro-tetris/internal/registry"
	"github.com/vovakirdan/retro-tetris/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the game menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a game and Tab for
the scoreboard. After a game ends, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start game
  Tab          - Scoreboard
  Q            - Quit

Examples:
  tetris menu
  tetris menu --difficulty easy
  tetris menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) {
	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, defaultGameID, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Keep size changes seen by the menu
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, defaultGameID, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// A fresh seed per game unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.RunFromMenu(game, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
