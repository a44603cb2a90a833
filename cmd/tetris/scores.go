package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-tetris/internal/registry"
	"github.com/vovakirdan/retro-tetris/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top 10 high scores. Scores with a recorded game list
the recording ID to pass to 'tetris replay'.

Examples:
  tetris scores
  tetris scores tetris`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := gameArg(args)

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tetris play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-16s  %s\n", "Rank", "Score", "Lines", "Date", "Replay")
	fmt.Printf("  %-4s  %-10s  %-6s  %-16s  %s\n", "----", "-----", "-----", "----", "------")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		replay := "-"
		if entry.HasReplay() {
			replay = fmt.Sprintf("#%d", entry.RecordingID)
		}
		fmt.Printf("  %-4d  %-10d  %-6d  %-16s  %s\n", i+1, entry.Score, entry.Lines, dateStr, replay)
	}

	fmt.Println()
	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Printf("Best: %d  Games: %d  Lines: %d\n", stats.HighScore, stats.GamesCount, stats.TotalLines)
	}
}
