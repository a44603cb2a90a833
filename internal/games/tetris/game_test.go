package tetris

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/retro-tetris/internal/core"
	"github.com/vovakirdan/retro-tetris/internal/registry"
	engine "github.com/vovakirdan/retro-tetris/internal/tetris"
)

const testConfig = `board:
  width: 10
  height: 20
gravity:
  interval_ms: 1000
  min_interval_ms: 100
difficulty:
  enabled: false
`

// useTestConfig pins the config file so results do not depend on the
// user's ~/.arcade directory.
func useTestConfig(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
	})
}

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	useTestConfig(t)
	g := New()
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24, TickRate: 60})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("tetris") {
		t.Fatal("tetris is not registered")
	}
	g, err := registry.Create("tetris")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Title() != "Tetris" {
		t.Errorf("Title = %q", g.Title())
	}
	if _, ok := g.(registry.Recorder); !ok {
		t.Error("tetris game should expose its recording")
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, 12345)
	g2 := newTestGame(t, 12345)

	script := []core.Action{core.ActionLeft, core.ActionRotate, core.ActionRight, core.ActionDrop}
	for i := 0; i < 2000; i++ {
		var in core.InputFrame
		if i%7 == 0 {
			in = frame(script[(i/7)%len(script)])
		} else {
			in = frame()
		}
		g1.Step(in)
		g2.Step(in)
	}

	if diff := cmp.Diff(g1.Snapshot(), g2.Snapshot()); diff != "" {
		t.Errorf("snapshots differ (-g1 +g2):\n%s", diff)
	}
}

func TestGravityFollowsInterval(t *testing.T) {
	g := newTestGame(t, 1)

	if got := g.gravityFrames(); got != 60 {
		t.Fatalf("gravityFrames = %d, want 60 at 1000ms and 60 ticks/s", got)
	}

	for i := 0; i < 59; i++ {
		g.Step(frame())
	}
	if y := g.Snapshot().PieceY; y != 0 {
		t.Fatalf("piece fell early: y=%d", y)
	}

	g.Step(frame())
	if y := g.Snapshot().PieceY; y != 1 {
		t.Errorf("after one interval y=%d, want 1", y)
	}
}

func TestCommandTakesTheFrame(t *testing.T) {
	g := newTestGame(t, 1)
	startX := g.Snapshot().PieceX

	for i := 0; i < 59; i++ {
		g.Step(frame())
	}
	// Gravity is due on this frame, but the command wins.
	g.Step(frame(core.ActionLeft))

	snap := g.Snapshot()
	if snap.PieceY != 0 {
		t.Errorf("gravity applied alongside a command: y=%d", snap.PieceY)
	}
	if snap.PieceX != startX-1 {
		t.Errorf("x = %d, want %d", snap.PieceX, startX-1)
	}

	g.Step(frame())
	if y := g.Snapshot().PieceY; y != 1 {
		t.Errorf("deferred gravity did not fire on the next frame: y=%d", y)
	}
}

func TestOneCommandPerFrame(t *testing.T) {
	g := newTestGame(t, 1)
	startX := g.Snapshot().PieceX

	g.Step(frame(core.ActionLeft, core.ActionRight, core.ActionDrop))

	snap := g.Snapshot()
	if snap.PieceX != startX-1 || snap.PieceY != 0 {
		t.Errorf("expected only the left move, got (%d,%d)", snap.PieceX, snap.PieceY)
	}
	if snap.Moves != 1 {
		t.Errorf("Moves = %d, want 1", snap.Moves)
	}
}

func TestDropIsOneRow(t *testing.T) {
	g := newTestGame(t, 1)
	g.Step(frame(core.ActionDrop))
	if y := g.Snapshot().PieceY; y != 1 {
		t.Errorf("y = %d, want 1", y)
	}
}

func TestPauseFreezesGame(t *testing.T) {
	g := newTestGame(t, 1)

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	before := g.Snapshot()
	for i := 0; i < 200; i++ {
		g.Step(frame(core.ActionDrop))
	}
	if diff := cmp.Diff(before, g.Snapshot()); diff != "" {
		t.Errorf("paused game changed (-before +after):\n%s", diff)
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("expected unpaused")
	}
}

func forceGameOver(g *Game) {
	blocked := engine.NewBoard(10, 20).With(4, 0, core.ColorRed)
	g.session = engine.Tick(g.session.WithBoard(blocked).Spawn(engine.TypeO))
}

func TestGameOverStopsAndRestarts(t *testing.T) {
	g := newTestGame(t, 1)
	g.Step(frame(core.ActionLeft))
	forceGameOver(g)

	if !g.State().GameOver {
		t.Fatal("expected game over")
	}
	before := g.Snapshot()
	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionPause))
	if diff := cmp.Diff(before, g.Snapshot()); diff != "" {
		t.Errorf("finished game changed (-before +after):\n%s", diff)
	}

	g.Step(frame(core.ActionRestart))
	snap := g.Snapshot()
	if snap.State != StatePlaying || snap.Score != 0 || snap.Moves != 0 || snap.Tick != 0 {
		t.Errorf("restart did not begin a fresh game: %+v", snap)
	}
	if strings.Contains(snap.Board, "#") {
		t.Error("restart kept locked cells")
	}
}

func TestRestartIgnoredWhilePlaying(t *testing.T) {
	g := newTestGame(t, 1)
	g.Step(frame(core.ActionLeft))
	g.Step(frame(core.ActionRestart))
	if g.Snapshot().Moves != 1 {
		t.Error("restart should only work after game over")
	}
}

func TestRecordingReplaysGame(t *testing.T) {
	g := newTestGame(t, 77)

	actions := []core.Action{core.ActionLeft, core.ActionRight, core.ActionRotate, core.ActionDrop, core.ActionDrop}
	for i := 0; i < 20000 && !g.State().GameOver; i++ {
		if i%3 == 0 {
			g.Step(frame(actions[(i*31)%len(actions)]))
		} else {
			g.Step(frame())
		}
	}

	rec := g.Recording()
	if rec.Seed != 77 || rec.Width != 10 || rec.Height != 20 {
		t.Fatalf("unexpected recording header: %+v", rec)
	}
	if rec.Lines != g.State().Lines {
		t.Errorf("recording lines = %d, want %d", rec.Lines, g.State().Lines)
	}

	replayed, err := engine.Replay(rec.Width, rec.Height, rec.Seed, rec.Moves)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if replayed.Score() != g.State().Score {
		t.Errorf("replayed score %d, live score %d", replayed.Score(), g.State().Score)
	}
	if replayed.Board().String() != g.Session().Board().String() {
		t.Error("replayed board differs from live board")
	}
}

func TestDifficultyPresetSpeedsGravity(t *testing.T) {
	useTestConfig(t)
	SetDifficultyPreset("hard")

	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24, TickRate: 60})

	if iv := g.GravityInterval(); iv >= time.Second {
		t.Errorf("hard preset interval = %v, want faster than 1s", iv)
	}
	if lvl := g.Level(); lvl <= 1 {
		t.Errorf("hard preset level = %d, want above 1", lvl)
	}
}

func TestFixedPresetKeepsInterval(t *testing.T) {
	useTestConfig(t)
	SetDifficultyPreset("fixed")

	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24, TickRate: 60})

	if iv := g.GravityInterval(); iv != time.Second {
		t.Errorf("interval = %v, want 1s", iv)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD missing score: %q", screen.Row(0))
	}

	box := g.boardRect(screen)
	if got := screen.Get(box.X, box.Y); got != '┌' {
		t.Errorf("top-left corner = %q", got)
	}
	if got := screen.Get(box.Right()-1, box.Bottom()-1); got != '┘' {
		t.Errorf("bottom-right corner = %q", got)
	}

	p := g.Session().Active()
	pt := p.Cells()[0]
	cell := screen.GetCell(box.X+1+pt.X*cellWidth, box.Y+1+pt.Y)
	if cell.Rune != BlockChar || cell.Color != p.Color {
		t.Errorf("active piece cell = %+v, want %q in %v", cell, BlockChar, p.Color)
	}

	forceGameOver(g)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Game Over!") {
		t.Error("game over overlay missing")
	}
}

func TestTooSmallScreen(t *testing.T) {
	useTestConfig(t)
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 20, ScreenH: 10, TickRate: 60})

	if g.Snapshot().State != StatePausedSmall {
		t.Fatalf("state = %s, want %s", g.Snapshot().State, StatePausedSmall)
	}
	g.Step(frame(core.ActionDrop))
	if g.Snapshot().Moves != 0 {
		t.Error("game advanced on a too-small screen")
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("missing too-small message")
	}

	g.Resize(80, 24)
	if g.Snapshot().State != StatePlaying {
		t.Error("resize did not resume the game")
	}
}
