// tetris is a terminal Tetris, playable locally or over SSH.
//
// Usage:
//
//	tetris list              - List available games
//	tetris play [game]       - Play a game (default: tetris)
//	tetris menu              - Start menu with the scoreboard
//	tetris serve             - Start SSH server for remote play
//	tetris scores [game]     - Show high scores
//	tetris games             - List recorded games
//	tetris replay <id>       - Re-simulate a recorded game
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arcade/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register games
	_ "github.com/vovakirdan/retro-tetris/internal/games/tetris"
)

const defaultGameID = "tetris"

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Retro Tetris - falling blocks in your terminal",
	Long: `Retro Tetris is a terminal version of the classic falling block game.
Games are recorded and can be replayed from the scores database.

Available commands:
  list     - Show all available games
  play     - Play directly
  menu     - Interactive menu with the scoreboard
  serve    - Start SSH server for remote play
  scores   - View high scores
  games    - List recorded games
  replay   - Re-simulate a recorded game

Examples:
  tetris play
  tetris play --difficulty hard
  tetris menu
  tetris serve --ssh :2222
  tetris replay 3`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(replayCmd)
}

// gameArg returns the game named on the command line, or the default.
func gameArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultGameID
}
