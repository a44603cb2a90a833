package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retro-tetris/internal/registry"
	"github.com/vovakirdan/retro-tetris/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForStats = 80  // Minimum width to show the stats panel
	statsWidth       = 20  // Width of the stats panel
	tableMinWidth    = 50  // Minimum table width
	maxScores        = 100 // Max rows to load per tab
)

// scoreTab is one listing of the scoreboard.
type scoreTab int

const (
	tabTopScores scoreTab = iota
	tabMostLines
	tabReplays
	scoreTabCount
)

// String returns the tab label.
func (t scoreTab) String() string {
	switch t {
	case tabTopScores:
		return "Top Scores"
	case tabMostLines:
		return "Most Lines"
	case tabReplays:
		return "Replays"
	default:
		return "?"
	}
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next list"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev list"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the finished games of one game ID: best scores,
// most cleared lines and the recorded games that can be replayed.
type ScoreboardModel struct {
	gameID    string
	title     string
	store     *storage.Store
	tab       scoreTab
	scores    []storage.ScoreEntry     // rows of the score and lines tabs
	replays   []storage.RecordingEntry // rows of the replays tab
	stats     storage.GameStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
	showStats bool
}

// NewScoreboardModel creates a scoreboard for gameID. store may be nil.
func NewScoreboardModel(store *storage.Store, gameID string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		gameID:    gameID,
		title:     gameTitle(gameID),
		store:     store,
		keys:      DefaultScoreboardKeyMap(),
		help:      h,
		width:     width,
		height:    height,
		showStats: width >= minWidthForStats,
	}
	if store != nil {
		if stats, err := store.GetGameStats(gameID); err == nil {
			m.stats = *stats
		}
	}

	m.table = m.createTable()
	m.load()
	return m
}

// gameTitle returns the registered title of id, or id itself.
func gameTitle(id string) string {
	for _, g := range registry.List() {
		if g.ID == id {
			return g.Title
		}
	}
	return id
}

// columns returns the table columns of the current tab.
func (m *ScoreboardModel) columns() []table.Column {
	if m.tab == tabReplays {
		return []table.Column{
			{Title: "ID", Width: 6},
			{Title: "Score", Width: 8},
			{Title: "Lines", Width: 6},
			{Title: "Board", Width: 7},
			{Title: "Moves", Width: 7},
			{Title: "Date", Width: 14},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Lines", Width: 6},
		{Title: "Date", Width: 14},
		{Title: "Replay", Width: 8},
	}
}

// createTable creates a new table for the current tab and size.
func (m *ScoreboardModel) createTable() table.Model {
	columns := m.columns()

	tableWidth := m.width - 4 // Margins
	if m.showStats {
		tableWidth -= statsWidth + 3 // Panel + border + gap
	}

	// Give spare room to the date column
	if tableWidth > tableMinWidth {
		date := len(columns) - 1
		if m.tab != tabReplays {
			date = 3
		}
		columns[date].Width += min(tableWidth-tableMinWidth, 6)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-10), // Header, tabs, help and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the rows of the current tab.
func (m *ScoreboardModel) load() {
	m.scores, m.replays = nil, nil
	if m.store != nil {
		var err error
		switch m.tab {
		case tabTopScores:
			m.scores, err = m.store.TopScores(m.gameID, maxScores)
		case tabMostLines:
			m.scores, err = m.store.TopLines(m.gameID, maxScores)
		case tabReplays:
			m.replays, err = m.recordings()
		}
		if err != nil {
			m.scores, m.replays = nil, nil
		}
	}
	m.updateTableRows()
}

// recordings returns the recorded games of this scoreboard's game.
func (m *ScoreboardModel) recordings() ([]storage.RecordingEntry, error) {
	all, err := m.store.RecentRecordings(maxScores)
	if err != nil {
		return nil, err
	}
	mine := all[:0]
	for _, r := range all {
		if r.GameID == m.gameID {
			mine = append(mine, r)
		}
	}
	return mine, nil
}

// updateTableRows fills the table from the loaded rows.
func (m *ScoreboardModel) updateTableRows() {
	var rows []table.Row
	if m.tab == tabReplays {
		rows = make([]table.Row, len(m.replays))
		for i, r := range m.replays {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", r.ID),
				fmt.Sprintf("%d", r.Score),
				fmt.Sprintf("%d", r.Recording.Lines),
				fmt.Sprintf("%dx%d", r.Recording.Width, r.Recording.Height),
				fmt.Sprintf("%d", len(r.Recording.Moves)),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	} else {
		rows = make([]table.Row, len(m.scores))
		for i, s := range m.scores {
			replay := "-"
			if s.HasReplay() {
				replay = fmt.Sprintf("#%d", s.RecordingID)
			}
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", s.Score),
				fmt.Sprintf("%d", s.Lines),
				s.CreatedAt.Format("Jan 02 15:04"),
				replay,
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// switchTab moves to the tab delta steps away, wrapping around.
func (m *ScoreboardModel) switchTab(delta int) {
	m.tab = scoreTab((int(m.tab) + delta + int(scoreTabCount)) % int(scoreTabCount))
	m.table = m.createTable()
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.switchTab(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.switchTab(-1)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showStats = m.width >= minWidthForStats
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	b.WriteString(centerText(titleStyle.Render("HIGH SCORES - "+m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableBox := boxStyle.Render(m.renderTableContent())

	if m.showStats {
		statsBox := boxStyle.Width(statsWidth).Render(m.renderStats())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, statsBox, "  ", tableBox))
	} else {
		b.WriteString(centerText(m.renderStatsLine(), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(tableBox, m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs renders the tab bar with the current tab highlighted.
func (m ScoreboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, scoreTabCount)
	for t := range scoreTabCount {
		if t == m.tab {
			tabs[t] = activeTabStyle.Render(t.String())
		} else {
			tabs[t] = tabStyle.Render(t.String())
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderStats renders the totals panel of the wide layout.
func (m ScoreboardModel) renderStats() string {
	last := "-"
	if !m.stats.LastPlayed.IsZero() {
		last = m.stats.LastPlayed.Format("Jan 02")
	}
	return strings.Join([]string{
		"Totals",
		strings.Repeat("-", statsWidth-4),
		fmt.Sprintf("Best   %d", m.stats.HighScore),
		fmt.Sprintf("Games  %d", m.stats.GamesCount),
		fmt.Sprintf("Lines  %d", m.stats.TotalLines),
		fmt.Sprintf("Avg    %.0f", m.stats.AvgScore),
		fmt.Sprintf("Last   %s", last),
	}, "\n")
}

// renderStatsLine is the one-line totals of the narrow layout.
func (m ScoreboardModel) renderStatsLine() string {
	return fmt.Sprintf("Best %d  Games %d  Lines %d",
		m.stats.HighScore, m.stats.GamesCount, m.stats.TotalLines)
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.table.Rows()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		if m.tab == tabReplays {
			return emptyStyle.Render("No recorded games yet.\nFinish a game to record it!")
		}
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen for gameID.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, gameID string, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, gameID, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
