package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retro-tetris/internal/core"
	"github.com/vovakirdan/retro-tetris/internal/storage"
	"github.com/vovakirdan/retro-tetris/internal/tetris"
)

// menuEntry is one line of the title menu.
type menuEntry int

const (
	entryPlay menuEntry = iota
	entryScores
	entryQuit
)

var menuEntries = []menuEntry{entryPlay, entryScores, entryQuit}

// String returns the entry label.
func (e menuEntry) String() string {
	switch e {
	case entryPlay:
		return "Start Game"
	case entryScores:
		return "High Scores"
	case entryQuit:
		return "Quit"
	default:
		return "?"
	}
}

// MenuModel is the title screen: the piece gallery, the player's totals
// and a short menu to start a game or open the scoreboard.
type MenuModel struct {
	gameID         string
	stats          storage.GameStats
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	start          bool // Set when user starts a game
	openScoreboard bool // True if user asked for the scoreboard
}

// NewMenuModel creates the title menu for gameID. store may be nil.
func NewMenuModel(store *storage.Store, gameID string, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		gameID:    gameID,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	if store != nil {
		if stats, err := store.GetGameStats(gameID); err == nil {
			m.stats = *stats
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		return m.choose(menuEntries[m.cursor])

	case MenuActionScoreboard:
		return m.choose(entryScores)
	}

	return m, nil
}

// choose acts on a menu entry. Every choice ends the menu program.
func (m MenuModel) choose(e menuEntry) (tea.Model, tea.Cmd) {
	switch e {
	case entryPlay:
		m.start = true
	case entryScores:
		m.openScoreboard = true
	default:
		m.quitting = true
	}
	return m, tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("R E T R O   T E T R I S"), m.width))
	b.WriteString("\n\n")

	for _, line := range strings.Split(pieceGallery(), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.stats.GamesCount > 0 {
		totals := fmt.Sprintf("Best %d  |  Games %d  |  Lines %d",
			m.stats.HighScore, m.stats.GamesCount, m.stats.TotalLines)
		b.WriteString(centerText(totals, m.width))
		b.WriteString("\n\n")
	}

	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	for i, e := range menuEntries {
		line := "  " + e.String() + "  "
		if i == m.cursor {
			line = selectedStyle.Render("> " + e.String() + " <")
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// pieceGallery draws the seven tetriminos side by side in their colors.
func pieceGallery() string {
	pieces := make([]string, 0, 2*len(tetris.Types))
	for _, t := range tetris.Types {
		def := tetris.DefinitionFor(t)
		style, ok := colorStyles[def.Color]
		if !ok {
			style = colorStyles[core.ColorDefault]
		}

		rows := make([]string, def.Shape.Rows())
		for r := range rows {
			var line strings.Builder
			for c := range def.Shape.Cols() {
				if def.Shape.At(r, c) {
					line.WriteString(style.Render("██"))
				} else {
					line.WriteString("  ")
				}
			}
			rows[r] = line.String()
		}
		pieces = append(pieces, strings.Join(rows, "\n"), "  ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, pieces[:len(pieces)-1]...)
}

// StartGame reports whether the user chose to start a game.
func (m MenuModel) StartGame() bool {
	return m.start
}

// GameID returns the game the menu starts.
func (m MenuModel) GameID() string {
	return m.gameID
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Styled text is measured
// by its printed width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the title menu for gameID and returns the user's choice.
func RunMenu(store *storage.Store, gameID string, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, gameID, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.StartGame():
		result.GameID = m.GameID()
	default:
		result.Quit = true
	}

	return result, nil
}
