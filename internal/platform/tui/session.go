package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retro-tetris/internal/core"
	"github.com/vovakirdan/retro-tetris/internal/registry"
	"github.com/vovakirdan/retro-tetris/internal/storage"
)

// sessionView is the screen a SessionModel is showing.
type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewScores
)

// SessionModel manages the full session flow: menu -> game or scoreboard -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	gameID     string
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	view       sessionView
	menu       MenuModel
	game       Model
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a session that plays gameID. logger may be nil.
func NewSessionModel(store *storage.Store, gameID string, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	return SessionModel{
		gameID: gameID,
		store:  store,
		logger: logger,
		config: cfg,
		menu:   NewMenuModel(store, gameID, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.store, m.gameID, m.config.ScreenW, m.config.ScreenH)
		m.view = viewScores
		return m, m.scoreboard.Init()

	case m.menu.StartGame():
		game, err := registry.Create(m.gameID)
		if err != nil {
			if m.logger != nil {
				m.logger.Error("cannot create game", "game", m.gameID, "error", err)
			}
			m.menu = NewMenuModel(m.store, m.gameID, m.config)
			return m, nil
		}
		if m.logger != nil {
			m.logger.Info("game started", "game", game.ID())
		}

		m.game = NewModel(game, m.store, m.config).WithLogger(m.logger).WithMenuBack()
		m.view = viewGame
		return m, m.game.Init()
	}

	// The menu quits the program to report a choice; swallow that here.
	return m, filterQuit(cmd)
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		return m.backToMenu()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is open.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.store, m.gameID, m.config)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// filterQuit drops tea.Quit so a sub-model cannot end the whole session.
func filterQuit(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			return nil
		}
		return msg
	}
}
