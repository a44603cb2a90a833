package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retro-tetris/internal/core"
)

// palette maps screen colors to terminal colors. The seven piece colors use
// bright 256-color values so stacked blocks stay apart from the gray grid.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:           "196", // Z
	core.ColorGreen:         "46",  // S
	core.ColorYellow:        "226", // O
	core.ColorBlue:          "33",  // J
	core.ColorMagenta:       "201", // T
	core.ColorCyan:          "51",  // I
	core.ColorOrange:        "208", // L
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorGray:          "240",
}

// colorStyles holds one foreground style per palette entry.
var colorStyles = func() map[core.Color]lipgloss.Style {
	styles := map[core.Color]lipgloss.Style{core.ColorDefault: lipgloss.NewStyle()}
	for c, tc := range palette {
		styles[c] = lipgloss.NewStyle().Foreground(tc)
	}
	return styles
}()

// styleFor returns the style of c, plain for unknown colors.
func styleFor(c core.Color) lipgloss.Style {
	if s, ok := colorStyles[c]; ok {
		return s
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of one color share a single styled run, so a row of
// locked blocks costs one escape sequence rather than one per cell.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}
