package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-tetris/internal/storage"
	engine "github.com/vovakirdan/retro-tetris/internal/tetris"
)

var flagShowBoard bool

// errReplayMismatch reports a replay that disagrees with the stored result.
var errReplayMismatch = errors.New("replay does not match the recorded result")

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded game",
	Long: `Replay a recorded game headlessly from its seed and move log and
check that the result matches the stored score.

Examples:
  tetris replay 3
  tetris replay 3 --board`,
	Args:          cobra.ExactArgs(1),
	RunE:          runReplay,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	replayCmd.Flags().BoolVar(&flagShowBoard, "board", false, "Print the final board")
}

// runReplay returns errors instead of exiting so the store is always closed.
func runReplay(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "replay"})

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid recording ID %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("could not open scores database: %w", err)
	}
	defer store.Close()

	final, err := verifyRecording(cmd.Context(), store, id, logger)
	if flagShowBoard && (err == nil || errors.Is(err, errReplayMismatch)) {
		fmt.Fprintln(cmd.OutOrStdout(), final.Board())
	}
	return err
}

// verifyRecording replays recording id and checks its score and lines
// against the stored result. The replayed session is returned on success
// and on a mismatch.
func verifyRecording(ctx context.Context, store *storage.Store, id int64, logger *log.Logger) (engine.Session, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	entry, err := store.Recording(id)
	if errors.Is(err, storage.ErrNotFound) {
		return engine.Session{}, fmt.Errorf("no such recording %d: %w", id, err)
	}
	if err != nil {
		return engine.Session{}, fmt.Errorf("could not load recording %d: %w", id, err)
	}

	rec := entry.Recording
	if err := engine.ValidateMoves(rec.Moves); err != nil {
		return engine.Session{}, fmt.Errorf("corrupt move log in recording %d: %w", id, err)
	}

	final, applied := replayRecording(ctx, rec.Width, rec.Height, rec.Seed, rec.Moves)

	logger.Info("Replayed",
		"id", id,
		"seed", rec.Seed,
		"moves", applied,
		"score", final.Score(),
		"lines", final.Lines(),
		"game_over", final.GameOver())

	if final.Score() != entry.Score || final.Lines() != rec.Lines {
		logger.Error("Replay does not match the recorded result",
			"stored_score", entry.Score, "replayed_score", final.Score(),
			"stored_lines", rec.Lines, "replayed_lines", final.Lines())
		return final, fmt.Errorf("recording %d: %w", id, errReplayMismatch)
	}
	logger.Info("Replay matches the recorded result")
	return final, nil
}

// replayRecording feeds every move through a driver with gravity disabled
// and returns the final session together with the number of moves applied.
// Moves after game over are not applied.
func replayRecording(ctx context.Context, width, height int, seed int64, moves string) (engine.Session, int) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d := engine.NewDriver(engine.NewGame(width, height, seed), 0, nil)
	result := make(chan engine.Session, 1)
	go func() {
		result <- d.Run(ctx)
	}()

	applied := 0
	for i := 0; i < len(moves); i++ {
		if !d.Send(ctx, engine.Move(moves[i])) {
			break
		}
		applied++
	}

	cancel()
	return <-result, applied
}
