package tetris

import (
	"fmt"
	"math/rand/v2"
)

// Phase is the position of a session in the piece lifecycle.
type Phase int

const (
	PhaseSpawned Phase = iota
	PhaseFalling
	PhaseLocking
	PhaseRowClearCheck
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSpawned:
		return "spawned"
	case PhaseFalling:
		return "falling"
	case PhaseLocking:
		return "locking"
	case PhaseRowClearCheck:
		return "row_clear_check"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// pcgStream is the fixed PCG increment; the seed selects the state.
const pcgStream = 0x5851f42d4c957f2d

// Session is one game: the board, the falling piece, the score and the
// random stream used to pick pieces. It is a value: operations return a new
// Session and leave their receiver unchanged, including the random state.
type Session struct {
	board  Board
	active ActivePiece
	score  int
	lines  int
	locked int
	phase  Phase
	rng    rand.PCG
}

// NewGame starts a session on an empty width×height board with a random first
// piece. The same seed always produces the same sequence of pieces.
func NewGame(width, height int, seed int64) Session {
	s := Session{
		board: NewBoard(width, height),
		rng:   *rand.NewPCG(uint64(seed), pcgStream),
	}
	return s.spawnRandom()
}

// Tick applies gravity: the piece moves down one row or locks.
func Tick(s Session) Session {
	return s.MoveDown()
}

// ApplyCommand applies one player command.
func ApplyCommand(s Session, cmd Command) Session {
	switch cmd {
	case CommandLeft:
		return s.MoveLeft()
	case CommandRight:
		return s.MoveRight()
	case CommandRotateCW:
		return s.RotateCW()
	case CommandDrop:
		return s.MoveDown()
	default:
		return s
	}
}

// Board returns the locked cells. The falling piece is not part of it.
func (s Session) Board() Board {
	return s.board
}

// Active returns the falling piece.
func (s Session) Active() ActivePiece {
	p := s.active
	p.Mask = p.Mask.Clone()
	return p
}

// Score returns the points earned so far.
func (s Session) Score() int {
	return s.score
}

// Lines returns the number of rows cleared so far.
func (s Session) Lines() int {
	return s.lines
}

// Locked returns the number of pieces written into the board.
func (s Session) Locked() int {
	return s.locked
}

// Phase returns the lifecycle phase.
func (s Session) Phase() Phase {
	return s.phase
}

// GameOver reports whether the session has ended. A finished session ignores
// every further operation.
func (s Session) GameOver() bool {
	return s.phase == PhaseGameOver
}

// MoveLeft shifts the piece one column left when the target is free.
func (s Session) MoveLeft() Session {
	return s.shift(-1)
}

// MoveRight shifts the piece one column right when the target is free.
func (s Session) MoveRight() Session {
	return s.shift(1)
}

func (s Session) shift(dx int) Session {
	if s.GameOver() {
		return s
	}
	if CanMoveTo(s.board, s.active.X+dx, s.active.Y, s.active.Mask) {
		s.active.X += dx
	}
	return s
}

// RotateCW turns the piece clockwise in place. A rotation that does not fit
// is dropped; no offsets are tried.
func (s Session) RotateCW() Session {
	if s.GameOver() {
		return s
	}
	rotated := Rotate(s.active.Mask)
	if CanMoveTo(s.board, s.active.X, s.active.Y, rotated) {
		s.active.Mask = rotated
	}
	return s
}

// MoveDown moves the piece one row down, or locks it when the row below is blocked.
func (s Session) MoveDown() Session {
	if s.GameOver() {
		return s
	}
	if CanMoveTo(s.board, s.active.X, s.active.Y+1, s.active.Mask) {
		s.active.Y++
		return s
	}
	return s.PlacePiece()
}

// PlacePiece locks the falling piece where it is, clears full rows, scores
// them and spawns the next piece. A piece reaching above the board ends the game
// with the board unchanged.
func (s Session) PlacePiece() Session {
	if s.GameOver() {
		return s
	}

	s.phase = PhaseLocking
	res := Lock(s.board, s.active)
	if res.LockedOut {
		s.phase = PhaseGameOver
		return s
	}
	s.board = res.Board
	s.locked++

	s.phase = PhaseRowClearCheck
	s.lines += res.Cleared
	s.score += res.Cleared * PointsPerRow

	return s.spawnRandom()
}

// WithBoard returns the session with its board replaced.
// The falling piece is kept as is.
func (s Session) WithBoard(b Board) Session {
	s.board = b.Clone()
	return s
}

// WithPiece returns the session with p as the falling piece.
func (s Session) WithPiece(p ActivePiece) Session {
	p.Mask = p.Mask.Clone()
	s.active = p
	if !s.GameOver() {
		s.phase = PhaseFalling
	}
	return s
}

// Spawn returns the session with a fresh piece of type t at the spawn position.
func (s Session) Spawn(t Type) Session {
	if s.GameOver() {
		return s
	}
	return s.spawn(t)
}

func (s Session) spawnRandom() Session {
	r := rand.New(&s.rng)
	return s.spawn(Types[r.IntN(len(Types))])
}

// spawn places a new piece. When the spawn position is taken the piece
// waits just above the board instead; it cannot move there, so the next
// MoveDown locks it with cells above row 0 and ends the game.
func (s Session) spawn(t Type) Session {
	s.phase = PhaseSpawned
	x, y := SpawnPosition(s.board.width)
	s.active = NewActivePiece(t, x, y)
	if !CanMoveTo(s.board, x, y, s.active.Mask) {
		s.active.Y = -s.active.Mask.Rows()
	}
	s.phase = PhaseFalling
	return s
}

// String summarizes the session for debugging.
func (s Session) String() string {
	return fmt.Sprintf("tetris{piece=%s at (%d,%d) score=%d lines=%d phase=%s}",
		s.active.Type, s.active.X, s.active.Y, s.score, s.lines, s.phase)
}
