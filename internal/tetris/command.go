package tetris

import "fmt"

// Command is a discrete player input.
type Command int

const (
	CommandLeft Command = iota
	CommandRight
	CommandRotateCW
	CommandDrop // soft drop: one row down
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandLeft:
		return "left"
	case CommandRight:
		return "right"
	case CommandRotateCW:
		return "rotate"
	case CommandDrop:
		return "drop"
	default:
		return "unknown"
	}
}

// Move is one entry of a game log: either a gravity tick or a command.
// A seed, a board size and the sequence of moves reproduce a game exactly.
type Move byte

const (
	MoveTick   Move = '.'
	MoveLeft   Move = 'L'
	MoveRight  Move = 'R'
	MoveRotate Move = 'C'
	MoveDrop   Move = 'D'
)

// MoveFor returns the log entry for a command.
func MoveFor(cmd Command) Move {
	switch cmd {
	case CommandLeft:
		return MoveLeft
	case CommandRight:
		return MoveRight
	case CommandRotateCW:
		return MoveRotate
	default:
		return MoveDrop
	}
}

// Valid reports whether m is a known move.
func (m Move) Valid() bool {
	switch m {
	case MoveTick, MoveLeft, MoveRight, MoveRotate, MoveDrop:
		return true
	}
	return false
}

// Apply performs the move on s. Unknown moves leave s unchanged.
func (m Move) Apply(s Session) Session {
	switch m {
	case MoveTick:
		return Tick(s)
	case MoveLeft:
		return ApplyCommand(s, CommandLeft)
	case MoveRight:
		return ApplyCommand(s, CommandRight)
	case MoveRotate:
		return ApplyCommand(s, CommandRotateCW)
	case MoveDrop:
		return ApplyCommand(s, CommandDrop)
	default:
		return s
	}
}

// ValidateMoves checks that every byte of a move log is a known move.
func ValidateMoves(moves string) error {
	for i := range len(moves) {
		if !Move(moves[i]).Valid() {
			return fmt.Errorf("tetris: invalid move %q at offset %d", moves[i], i)
		}
	}
	return nil
}

// Replay rebuilds a game from its seed, board size and move log.
func Replay(width, height int, seed int64, moves string) (Session, error) {
	if err := ValidateMoves(moves); err != nil {
		return Session{}, err
	}
	s := NewGame(width, height, seed)
	for i := range len(moves) {
		s = Move(moves[i]).Apply(s)
	}
	return s, nil
}
