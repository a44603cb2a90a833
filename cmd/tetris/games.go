package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-tetris/internal/storage"
)

var flagGamesLimit int

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List recorded games",
	Long: `List the most recently recorded games. Pass an ID to 'tetris replay'
to re-simulate one.

Examples:
  tetris games
  tetris games --limit 5`,
	Args: cobra.NoArgs,
	Run:  runGames,
}

func init() {
	gamesCmd.Flags().IntVar(&flagGamesLimit, "limit", 20, "Number of games to show")
}

func runGames(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	games, err := store.RecentRecordings(flagGamesLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving games: %v\n", err)
		os.Exit(1)
	}

	if len(games) == 0 {
		fmt.Println("No recorded games yet.")
		return
	}

	fmt.Printf("  %-5s  %-10s  %-6s  %-7s  %-8s  %s\n", "ID", "Score", "Lines", "Board", "Moves", "Date")
	fmt.Printf("  %-5s  %-10s  %-6s  %-7s  %-8s  %s\n", "--", "-----", "-----", "-----", "-----", "----")

	for _, g := range games {
		rec := g.Recording
		board := fmt.Sprintf("%dx%d", rec.Width, rec.Height)
		fmt.Printf("  %-5d  %-10d  %-6d  %-7s  %-8d  %s\n",
			g.ID, g.Score, rec.Lines, board, len(rec.Moves), g.CreatedAt.Format("2006-01-02 15:04"))
	}
}
