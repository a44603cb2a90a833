package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retro-tetris/internal/core"
	"github.com/vovakirdan/retro-tetris/internal/registry"
	"github.com/vovakirdan/retro-tetris/internal/storage"
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	menuBack   bool // B/Esc returns to a menu instead of doing nothing
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// WithLogger returns the model with game results logged to l.
func (m Model) WithLogger(l *log.Logger) Model {
	m.logger = l
	return m
}

// WithMenuBack lets B/Esc leave a paused or finished game for the menu.
func (m Model) WithMenuBack() Model {
	m.menuBack = true
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menuBack && m.inputFrame.Has(core.ActionBack) &&
		(m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	switch {
	case m.gameState.GameOver && !m.scoreSaved:
		m.saveScore()
		m.scoreSaved = true
	case !m.gameState.GameOver:
		// A restarted game can be saved again.
		m.scoreSaved = false
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScore stores the finished game, with its recording when the game
// keeps one. Failures are logged and never interrupt play.
func (m Model) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}

	var (
		id  int64
		err error
	)
	if rec, ok := m.game.(registry.Recorder); ok {
		id, err = m.store.SaveRecordedGame(m.game.ID(), m.gameState.Score, rec.Recording())
	} else {
		id, err = m.store.SaveScore(m.game.ID(), m.gameState.Score, m.gameState.Lines)
	}

	if m.logger == nil {
		return
	}
	if err != nil {
		m.logger.Warn("could not save score", "game", m.game.ID(), "error", err)
		return
	}
	m.logger.Info("game over",
		"game", m.game.ID(),
		"score", m.gameState.Score,
		"lines", m.gameState.Lines,
		"id", id,
	)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	return run(NewModel(game, store, cfg))
}

// RunFromMenu is like Run, but Back after game over or while paused
// ends the program so the caller can show its menu again.
func RunFromMenu(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	return run(NewModel(game, store, cfg).WithMenuBack())
}

func run(model Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
