package tetris

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick   uint64
	Seed   int64
	Score  int
	Lines  int
	Locked int
	Piece  string
	PieceX int
	PieceY int
	Phase  string
	Board  string
	Moves  int
	State  GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.session.GameOver():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	p := g.session.Active()
	return Snapshot{
		Tick:   g.tick,
		Seed:   g.seed,
		Score:  g.session.Score(),
		Lines:  g.session.Lines(),
		Locked: g.session.Locked(),
		Piece:  p.Type.String(),
		PieceX: p.X,
		PieceY: p.Y,
		Phase:  g.session.Phase().String(),
		Board:  g.session.Board().String(),
		Moves:  g.moves.Len(),
		State:  state,
	}
}
