package tetris

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/retro-tetris/internal/core"
)

func verticalI(x, y int) ActivePiece {
	p := NewActivePiece(TypeI, x, y)
	p.Mask = Rotate(p.Mask)
	return p
}

func TestNewGame(t *testing.T) {
	s := NewGame(10, 20, 42)

	assert.Equal(t, 10, s.Board().Width())
	assert.Equal(t, 20, s.Board().Height())
	assert.Equal(t, 0, s.Board().Filled())
	assert.Equal(t, PhaseFalling, s.Phase())
	assert.False(t, s.GameOver())
	assert.Equal(t, 0, s.Score())

	p := s.Active()
	assert.Equal(t, 4, p.X)
	assert.Equal(t, 0, p.Y)
	assert.True(t, DefinitionFor(p.Type).Shape.Equal(p.Mask), "first piece starts unrotated")
}

func TestNewGameDefaultsDimensions(t *testing.T) {
	s := NewGame(0, -1, 1)
	assert.Equal(t, DefaultWidth, s.Board().Width())
	assert.Equal(t, DefaultHeight, s.Board().Height())
}

func TestSameSeedSamePieces(t *testing.T) {
	a := NewGame(10, 20, 7)
	b := NewGame(10, 20, 7)

	for i := 0; i < 500 && !a.GameOver(); i++ {
		a, b = Tick(a), Tick(b)
		require.Equal(t, a.Active().Type, b.Active().Type, "tick %d", i)
		require.Equal(t, a.Board().String(), b.Board().String(), "tick %d", i)
	}
}

func TestPieceSelectionCoversCatalog(t *testing.T) {
	seen := make(map[Type]bool)
	for seed := range int64(200) {
		seen[NewGame(10, 20, seed).Active().Type] = true
	}
	assert.Len(t, seen, len(Types), "every tetrimino should eventually be drawn")
}

func TestOperationsDoNotModifyReceiver(t *testing.T) {
	s := NewGame(10, 20, 11).Spawn(TypeT)
	board, piece, score := s.Board().String(), s.Active(), s.Score()

	_ = s.MoveLeft()
	_ = s.MoveRight()
	_ = s.RotateCW()
	_ = s.MoveDown()
	_ = s.PlacePiece()

	assert.Equal(t, board, s.Board().String())
	assert.Equal(t, score, s.Score())
	if diff := cmp.Diff(piece, s.Active()); diff != "" {
		t.Errorf("active piece changed (-before +after):\n%s", diff)
	}
}

func TestRandomStreamIsPartOfTheValue(t *testing.T) {
	s := NewGame(10, 20, 5)

	first := s.PlacePiece()
	second := s.PlacePiece()

	assert.Equal(t, first.Active().Type, second.Active().Type,
		"locking from the same session twice must draw the same next piece")
}

func TestMoveLeftRight(t *testing.T) {
	s := NewGame(10, 20, 1).Spawn(TypeO)

	s = s.MoveLeft()
	assert.Equal(t, 3, s.Active().X)

	for range 10 {
		s = s.MoveLeft()
	}
	assert.Equal(t, 0, s.Active().X, "stops at the left wall")

	for range 20 {
		s = s.MoveRight()
	}
	assert.Equal(t, 8, s.Active().X, "stops at the right wall")
	assert.Equal(t, 0, s.Locked(), "sideways moves never lock")
}

func TestMoveBlockedByStack(t *testing.T) {
	s := NewGame(10, 20, 1).
		WithBoard(NewBoard(10, 20).With(3, 1, core.ColorRed)).
		Spawn(TypeO)

	s = s.MoveLeft()
	assert.Equal(t, 4, s.Active().X, "blocked move is a no-op")
}

func TestODropsToFloorThenLocks(t *testing.T) {
	s := NewGame(10, 20, 9).Spawn(TypeO)
	require.Equal(t, 4, s.Active().X)
	require.Equal(t, 0, s.Active().Y)

	for i := 1; i <= 18; i++ {
		s = s.MoveDown()
		require.Equal(t, i, s.Active().Y, "move %d", i)
		require.Equal(t, 0, s.Locked())
	}
	require.Equal(t, 18, s.Active().Y, "a two-row piece rests with its top at row 18")

	s = s.MoveDown()

	assert.Equal(t, 1, s.Locked(), "the blocked move locks the piece")
	for _, pt := range []Point{{4, 18}, {5, 18}, {4, 19}, {5, 19}} {
		assert.True(t, s.Board().Occupied(pt.X, pt.Y), "cell %v", pt)
	}
	assert.Equal(t, 0, s.Active().Y, "next piece spawns at the top")
	assert.Equal(t, PhaseFalling, s.Phase())
}

func TestVerticalIClearsBottomRow(t *testing.T) {
	board := NewBoard(10, 20).WithRow(19, core.ColorGray, 0)
	s := NewGame(10, 20, 2).WithBoard(board).WithPiece(verticalI(0, 16))

	s = s.MoveDown()

	assert.Equal(t, 100, s.Score())
	assert.Equal(t, 1, s.Lines())
	assert.Equal(t, 20, s.Board().Height())
	assert.Equal(t, 3, s.Board().Filled())
	assert.False(t, s.GameOver())
}

func TestMultiRowClearScoresFlat(t *testing.T) {
	board := NewBoard(10, 20)
	for y := 16; y < 20; y++ {
		board = board.WithRow(y, core.ColorGray, 0)
	}
	s := NewGame(10, 20, 2).WithBoard(board).WithPiece(verticalI(0, 16))

	s = s.PlacePiece()

	assert.Equal(t, 400, s.Score(), "four rows score 4 x 100 with no bonus")
	assert.Equal(t, 4, s.Lines())
	assert.Equal(t, 0, s.Board().Filled())
}

func TestLockAtTopRowIsNotGameOver(t *testing.T) {
	board := NewBoard(10, 20).With(4, 2, core.ColorRed).With(5, 2, core.ColorRed)
	s := NewGame(10, 20, 4).WithBoard(board).Spawn(TypeO)
	require.Equal(t, 4, s.Active().X)
	require.Equal(t, 0, s.Active().Y)
	require.False(t, CanMoveTo(s.Board(), 4, 1, s.Active().Mask))

	s = s.MoveDown()

	assert.False(t, s.GameOver(), "a cell at row 0 is still on the board")
	assert.Equal(t, 1, s.Locked())
	assert.True(t, s.Board().Occupied(4, 0))
	assert.True(t, s.Board().Occupied(5, 1))
	assert.Less(t, s.Active().Y, 0, "the next piece waits above the taken spawn")
}

func TestLockAboveBoardEndsGame(t *testing.T) {
	board := NewBoard(10, 20).With(0, 19, core.ColorRed)
	s := NewGame(10, 20, 4).WithBoard(board).WithPiece(NewActivePiece(TypeO, 4, -1))

	s = s.PlacePiece()

	assert.True(t, s.GameOver())
	assert.Equal(t, PhaseGameOver, s.Phase())
	assert.Equal(t, board.String(), s.Board().String(), "a refused lock writes nothing")
	assert.Equal(t, 0, s.Locked())
}

func TestBlockedSpawnLocksOutOnNextStep(t *testing.T) {
	board := NewBoard(10, 20).With(4, 0, core.ColorRed)
	s := NewGame(10, 20, 4).WithBoard(board).Spawn(TypeO)

	require.False(t, s.GameOver(), "spawning alone never ends the game")
	assert.Equal(t, -2, s.Active().Y)
	assert.Equal(t, PhaseFalling, s.Phase())

	moved := ApplyCommand(ApplyCommand(s, CommandLeft), CommandRotateCW)
	assert.Equal(t, s.Active(), moved.Active(), "a piece above the board cannot move")

	s = Tick(s)

	assert.True(t, s.GameOver())
	assert.Equal(t, PhaseGameOver, s.Phase())
	assert.Equal(t, board.String(), s.Board().String())
	assert.Equal(t, 0, s.Locked())
}

func TestGameOverIsTerminal(t *testing.T) {
	s := Tick(NewGame(10, 20, 4).
		WithBoard(NewBoard(10, 20).With(4, 0, core.ColorRed)).
		Spawn(TypeO))
	require.True(t, s.GameOver())

	board, piece, score := s.Board().String(), s.Active(), s.Score()
	after := Tick(s)
	for _, cmd := range []Command{CommandLeft, CommandRight, CommandRotateCW, CommandDrop} {
		after = ApplyCommand(after, cmd)
	}
	after = after.PlacePiece().Spawn(TypeI)

	assert.True(t, after.GameOver())
	assert.Equal(t, board, after.Board().String())
	assert.Equal(t, score, after.Score())
	if diff := cmp.Diff(piece, after.Active()); diff != "" {
		t.Errorf("active piece changed after game over (-before +after):\n%s", diff)
	}
}

func TestRotateCW(t *testing.T) {
	s := NewGame(10, 20, 1).Spawn(TypeT)
	s = s.MoveDown()

	s = s.RotateCW()

	assert.True(t, ParseMask("#.", "##", "#.").Equal(s.Active().Mask))
	assert.Equal(t, 4, s.Active().X, "rotation keeps the anchor")
	assert.Equal(t, 1, s.Active().Y)
}

func TestRotateAgainstWallIsRejected(t *testing.T) {
	s := NewGame(10, 20, 1).WithPiece(verticalI(9, 5))

	s = s.RotateCW()

	assert.True(t, ParseMask("#", "#", "#", "#").Equal(s.Active().Mask), "no wall kick")
	assert.Equal(t, 9, s.Active().X)
}

func TestRotateIntoStackIsRejected(t *testing.T) {
	board := NewBoard(10, 20).With(6, 1, core.ColorRed)
	s := NewGame(10, 20, 1).WithBoard(board).WithPiece(NewActivePiece(TypeI, 4, 0))

	rotated := s.RotateCW()
	require.True(t, CanMoveTo(board, 4, 0, Rotate(s.Active().Mask)))
	assert.True(t, Rotate(s.Active().Mask).Equal(rotated.Active().Mask))

	blocked := s.WithBoard(board.With(4, 2, core.ColorRed)).RotateCW()
	assert.True(t, ParseMask("####").Equal(blocked.Active().Mask))
}

func TestApplyCommandDrop(t *testing.T) {
	s := NewGame(10, 20, 1).Spawn(TypeO)
	s = ApplyCommand(s, CommandDrop)
	assert.Equal(t, 1, s.Active().Y, "drop is a single soft-drop step")
}

// Random play keeps the board shape and scoring invariants.
func TestRandomPlayInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	commands := []Command{CommandLeft, CommandRight, CommandRotateCW, CommandDrop}

	for game := 0; game < 20; game++ {
		s := NewGame(10, 20, int64(game))
		prevScore := 0
		for step := 0; step < 5000 && !s.GameOver(); step++ {
			if rng.Intn(3) == 0 {
				s = Tick(s)
			} else {
				s = ApplyCommand(s, commands[rng.Intn(len(commands))])
			}

			b := s.Board()
			require.Equal(t, 20, b.Height())
			for y := range b.Height() {
				require.Len(t, b.Row(y), 10)
			}
			require.Empty(t, b.FullRows(), "full rows never survive a lock")
			require.GreaterOrEqual(t, s.Score(), prevScore)
			require.Equal(t, s.Lines()*PointsPerRow, s.Score())
			if p := s.Active(); !s.GameOver() && p.Y >= 0 {
				require.True(t, CanMoveTo(b, p.X, p.Y, p.Mask), "falling piece must fit on the board")
			}
			prevScore = s.Score()
		}
	}
}
