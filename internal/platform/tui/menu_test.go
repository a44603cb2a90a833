package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/retro-tetris/internal/core"
)

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func TestMenuEntries(t *testing.T) {
	tests := []struct {
		name       string
		downs      int
		start      bool
		scoreboard bool
		quit       bool
	}{
		{"start game", 0, true, false, false},
		{"high scores", 1, false, true, false},
		{"quit", 2, false, false, true},
		{"cursor stops at the last entry", 5, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMenuModel(nil, "scripted", core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
			for range tt.downs {
				m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
			}

			m, cmd := menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

			if !isQuit(cmd) {
				t.Error("every choice should end the menu program")
			}
			if m.StartGame() != tt.start || m.WantsScoreboard() != tt.scoreboard || m.IsQuitting() != tt.quit {
				t.Errorf("start=%v scoreboard=%v quit=%v, expected %v %v %v",
					m.StartGame(), m.WantsScoreboard(), m.IsQuitting(), tt.start, tt.scoreboard, tt.quit)
			}
		})
	}
}

func TestMenuTabOpensScoreboard(t *testing.T) {
	m := NewMenuModel(nil, "scripted", core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})

	if !m.WantsScoreboard() || m.StartGame() {
		t.Error("tab should open the scoreboard")
	}
}

func TestMenuShowsTotals(t *testing.T) {
	store := openStore(t)
	store.SaveScore("scripted", 1200, 12)
	store.SaveScore("scripted", 300, 3)

	m := NewMenuModel(store, "scripted", core.RuntimeConfig{ScreenW: 100, ScreenH: 30})
	view := m.View()

	for _, want := range []string{"R E T R O", "Best 1200", "Games 2", "Lines 15", "Start Game", "High Scores"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}
	if m.GameID() != "scripted" {
		t.Errorf("GameID = %q, expected scripted", m.GameID())
	}
}

func TestPieceGalleryDrawsEveryPiece(t *testing.T) {
	gallery := pieceGallery()

	lines := strings.Split(gallery, "\n")
	if len(lines) != 2 {
		t.Fatalf("gallery has %d lines, expected 2 (the tallest piece)", len(lines))
	}
	// 4 cells per piece, 2 columns per cell.
	if got := strings.Count(gallery, "█"); got != 7*4*2 {
		t.Errorf("gallery has %d block runes, expected %d", got, 7*4*2)
	}
}

func TestCenterTextIgnoresStyling(t *testing.T) {
	got := centerText("\x1b[1mab\x1b[0m", 6)
	if !strings.HasPrefix(got, "  \x1b[1m") {
		t.Errorf("centerText = %q, expected two spaces of padding", got)
	}
}
