package tetris

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/retro-tetris/internal/core"
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		b := g.session.Board()
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d", b.Width()*cellWidth+2, b.Height()+2+hudHeight))
		return
	}

	box := g.boardRect(dst)
	dst.DrawBox(box, core.ColorGray)
	g.renderBoard(dst, box)
	g.renderPanel(dst, box)

	switch {
	case g.session.GameOver():
		g.renderOverlay(dst, "Game Over!", fmt.Sprintf("Score: %d", g.session.Score()), "R restart  B menu")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// boardRect returns the framed playfield, centered below the HUD.
func (g *Game) boardRect(dst *core.Screen) core.Rect {
	b := g.session.Board()
	w := b.Width()*cellWidth + 2
	h := b.Height() + 2
	area := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight)
	r := area.Centered(w, h)
	r.Y = hudHeight
	return r
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Tetris | Score: %d  Lines: %d  Level: %d",
		g.session.Score(), g.session.Lines(), g.Level())
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderBoard draws locked cells, then the falling piece over them.
func (g *Game) renderBoard(dst *core.Screen, box core.Rect) {
	b := g.session.Board()
	for y := range b.Height() {
		for x := range b.Width() {
			c := b.At(x, y)
			if c.Filled {
				g.drawCell(dst, box, x, y, BlockChar, c.Color)
			} else {
				g.drawCell(dst, box, x, y, EmptyChar, core.ColorGray)
			}
		}
	}

	if g.session.GameOver() {
		return
	}
	p := g.session.Active()
	for _, pt := range p.Cells() {
		if b.InBounds(pt.X, pt.Y) {
			g.drawCell(dst, box, pt.X, pt.Y, BlockChar, p.Color)
		}
	}
}

// drawCell paints one board cell, two columns wide.
func (g *Game) drawCell(dst *core.Screen, box core.Rect, x, y int, r rune, c core.Color) {
	sx := box.X + 1 + x*cellWidth
	sy := box.Y + 1 + y
	if r == EmptyChar {
		dst.SetColored(sx, sy, ' ', c)
		dst.SetColored(sx+1, sy, r, c)
		return
	}
	for i := range cellWidth {
		dst.SetColored(sx+i, sy, r, c)
	}
}

// renderPanel draws score and controls beside the board when there is room.
func (g *Game) renderPanel(dst *core.Screen, box core.Rect) {
	x := box.Right() + panelGap
	if x+panelWidth > dst.Width() {
		return
	}
	y := box.Y + 1
	lines := []string{
		"SCORE", fmt.Sprint(g.session.Score()), "",
		"LINES", fmt.Sprint(g.session.Lines()), "",
		"LEVEL", fmt.Sprint(g.Level()), "",
		"←/→  move",
		"↑    rotate",
		"↓    drop",
		"P    pause",
	}
	for i, l := range lines {
		c := core.ColorDefault
		if i%3 == 0 && i < 9 {
			c = core.ColorBrightCyan
		}
		dst.DrawTextColored(x, y+i, l, c)
	}
}

// renderOverlay draws a centered box with one message per line.
func (g *Game) renderOverlay(dst *core.Screen, lines ...string) {
	w := 0
	for _, l := range lines {
		w = max(w, utf8.RuneCountInString(l))
	}
	r := dst.Bounds().Centered(w+4, len(lines)+2)

	dst.DrawRect(r, ' ')
	dst.DrawBox(r, core.ColorBrightWhite)
	for i, l := range lines {
		x := r.X + (r.W-utf8.RuneCountInString(l))/2
		dst.DrawText(x, r.Y+1+i, l)
	}
}
