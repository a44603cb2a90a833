package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/retro-tetris/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"up arrow rotates", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotate, false},
		{"w rotates", runeKey('w'), core.ActionRotate, false},
		{"down arrow drops", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDrop, false},
		{"s drops", runeKey('s'), core.ActionDrop, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"quit", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action {
				t.Errorf("action = %v, want %v", action, tt.action)
			}
			if quit != tt.quit {
				t.Errorf("quit = %v, want %v", quit, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyLeft}, &frame) {
		t.Error("left is not a quit key")
	}
	km.MapKeyToFrame(runeKey('z'), &frame)

	if !frame.Has(core.ActionLeft) {
		t.Error("frame should contain Left")
	}
	if frame.Has(core.ActionNone) {
		t.Error("unbound keys must not be recorded")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('b'), MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestGameKeyMapHelp(t *testing.T) {
	keys := DefaultGameKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Error("short help is empty")
	}
	for _, group := range keys.FullHelp() {
		for _, b := range group {
			if b.Help().Key == "" || b.Help().Desc == "" {
				t.Errorf("binding %v has no help text", b.Keys())
			}
		}
	}
}
