// Package tetris adapts the falling-block engine to the arcade platform.
// The platform calls Step once per simulation frame; gravity is counted in
// frames derived from the configured interval and the runtime tick rate.
package tetris

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/retro-tetris/internal/config"
	"github.com/vovakirdan/retro-tetris/internal/core"
	"github.com/vovakirdan/retro-tetris/internal/registry"
	engine "github.com/vovakirdan/retro-tetris/internal/tetris"
)

// Layout constants.
const (
	hudHeight  = 2 // title line + separator
	cellWidth  = 2 // screen columns per board cell
	panelGap   = 2
	panelWidth = 16
)

// Visual characters for rendering
const (
	BlockChar = '█'
	EmptyChar = '·'
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// Game implements registry.Game for Tetris.
type Game struct {
	session engine.Session
	seed    int64      // seed of the current session
	seeds   *rand.Rand // seeds for restarts

	tick         uint64
	tickRate     int
	gravityTicks int // frames since the last gravity step
	moves        strings.Builder

	cfg        config.TetrisConfig
	difficulty *config.DifficultyManager

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// New creates a new Tetris game instance.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		cfg = config.DefaultTetrisConfig()
	}
	if difficultyPreset != "" {
		config.ApplyTetrisPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.seeds = rand.New(rand.NewSource(runtime.Seed))
	g.tickRate = runtime.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.screenW = runtime.ScreenW
	g.screenH = runtime.ScreenH

	g.start(runtime.Seed)
}

// start begins a fresh session, keeping config and screen size.
func (g *Game) start(seed int64) {
	g.seed = seed
	g.session = engine.NewGame(g.cfg.Board.Width, g.cfg.Board.Height, seed)
	g.tick = 0
	g.gravityTicks = 0
	g.moves.Reset()
	g.paused = false
	g.tooSmall = !g.fits(g.screenW, g.screenH)
}

// fits reports whether the board and HUD fit on a w×h screen.
func (g *Game) fits(w, h int) bool {
	b := g.session.Board()
	return w >= b.Width()*cellWidth+2 && h >= b.Height()+2+hudHeight
}

// Resize updates the screen size without restarting the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = !g.fits(w, h)
}

// Step advances the game by one frame. A frame applies at most one change
// to the session: a player command when one is pressed, otherwise gravity
// once enough frames have passed.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.session.GameOver() {
		g.start(g.seeds.Int63())
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.session.GameOver() {
		g.paused = !g.paused
	}

	if g.session.GameOver() || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	g.gravityTicks++

	if cmd, ok := commandFor(in); ok {
		g.apply(engine.MoveFor(cmd))
		return core.StepResult{State: g.State()}
	}

	if frames := g.gravityFrames(); frames > 0 && g.gravityTicks >= frames {
		g.gravityTicks = 0
		g.apply(engine.MoveTick)
	}

	return core.StepResult{State: g.State()}
}

// commandFor picks the player command of a frame. When several keys land
// in the same frame the first in this order wins.
func commandFor(in core.InputFrame) (engine.Command, bool) {
	switch {
	case in.Has(core.ActionLeft):
		return engine.CommandLeft, true
	case in.Has(core.ActionRight):
		return engine.CommandRight, true
	case in.Has(core.ActionRotate):
		return engine.CommandRotateCW, true
	case in.Has(core.ActionDrop):
		return engine.CommandDrop, true
	}
	return 0, false
}

func (g *Game) apply(m engine.Move) {
	g.session = m.Apply(g.session)
	g.moves.WriteByte(byte(m))
}

// GravityInterval returns the current time between gravity steps.
// Zero means gravity is off.
func (g *Game) GravityInterval() time.Duration {
	return g.difficulty.Interval(g.cfg.Gravity.Interval(), g.cfg.Gravity.MinInterval(),
		g.session.Score(), int(g.tick))
}

// gravityFrames converts the gravity interval into simulation frames.
func (g *Game) gravityFrames() int {
	iv := g.GravityInterval()
	if iv <= 0 {
		return 0
	}
	frames := int((iv*time.Duration(g.tickRate) + time.Second/2) / time.Second)
	return max(1, frames)
}

// Level returns the display level (1-10).
func (g *Game) Level() int {
	return g.difficulty.Tier(g.session.Score(), int(g.tick))
}

// Session returns the engine state.
func (g *Game) Session() engine.Session {
	return g.session
}

// Recording returns the replay log of the current session.
func (g *Game) Recording() core.Recording {
	b := g.session.Board()
	return core.Recording{
		Seed:   g.seed,
		Width:  b.Width(),
		Height: b.Height(),
		Lines:  g.session.Lines(),
		Moves:  g.moves.String(),
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		Lines:    g.session.Lines(),
		GameOver: g.session.GameOver(),
		Paused:   g.paused,
	}
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Seed: %d, Moves: %d\n", g.tick, g.seed, g.moves.Len())
	fmt.Fprintf(&b, "%s\n", g.session)
	b.WriteString(g.session.Board().String())
	return b.String()
}
