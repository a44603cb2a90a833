package tetris

import (
	"strings"

	"github.com/vovakirdan/retro-tetris/internal/core"
)

// Default board dimensions.
const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// Cell is one board square. The zero value is empty.
type Cell struct {
	Filled bool
	Color  core.Color
}

// Board is a fixed-size grid of cells, indexed rows[y][x] with y = 0 at the top.
// Boards are treated as values: the engine copies before writing, so a Board
// obtained from a Session is never changed behind the caller's back.
type Board struct {
	width  int
	height int
	rows   [][]Cell
}

// NewBoard returns an all-empty width×height board.
// Non-positive dimensions fall back to the defaults.
func NewBoard(width, height int) Board {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	b := Board{width: width, height: height, rows: make([][]Cell, height)}
	for y := range b.rows {
		b.rows[y] = make([]Cell, width)
	}
	return b
}

// Width returns the number of columns.
func (b Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b Board) Height() int {
	return b.height
}

// InBounds reports whether (x, y) lies on the board.
func (b Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the cell at (x, y); out-of-bounds positions read as empty.
func (b Board) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Cell{}
	}
	return b.rows[y][x]
}

// Occupied reports whether (x, y) is on the board and filled.
func (b Board) Occupied(x, y int) bool {
	return b.At(x, y).Filled
}

// Row returns a copy of row y, or nil when y is out of range.
func (b Board) Row(y int) []Cell {
	if y < 0 || y >= b.height {
		return nil
	}
	return append([]Cell(nil), b.rows[y]...)
}

// Clone returns a deep copy.
func (b Board) Clone() Board {
	out := Board{width: b.width, height: b.height, rows: make([][]Cell, b.height)}
	for y := range b.rows {
		out.rows[y] = append([]Cell(nil), b.rows[y]...)
	}
	return out
}

// With returns a copy of the board with (x, y) filled in color c.
// Out-of-bounds positions leave the copy unchanged.
func (b Board) With(x, y int, c core.Color) Board {
	out := b.Clone()
	if out.InBounds(x, y) {
		out.rows[y][x] = Cell{Filled: true, Color: c}
	}
	return out
}

// WithRow returns a copy of the board with every column of row y filled
// except the listed holes.
func (b Board) WithRow(y int, c core.Color, holes ...int) Board {
	out := b.Clone()
	if y < 0 || y >= out.height {
		return out
	}
	for x := range out.width {
		out.rows[y][x] = Cell{Filled: true, Color: c}
	}
	for _, x := range holes {
		if x >= 0 && x < out.width {
			out.rows[y][x] = Cell{}
		}
	}
	return out
}

// Filled returns the number of occupied cells.
func (b Board) Filled() int {
	n := 0
	for _, row := range b.rows {
		for _, c := range row {
			if c.Filled {
				n++
			}
		}
	}
	return n
}

// FullRows returns the indexes of rows with every cell occupied, top to bottom.
func (b Board) FullRows() []int {
	var full []int
	for y, row := range b.rows {
		if rowFull(row) {
			full = append(full, y)
		}
	}
	return full
}

// String renders the board with '#' for filled and '.' for empty cells.
func (b Board) String() string {
	var sb strings.Builder
	for y, row := range b.rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			if c.Filled {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

func rowFull(row []Cell) bool {
	for _, c := range row {
		if !c.Filled {
			return false
		}
	}
	return true
}

// clearFullRows removes every full row in place, shifting the remaining rows
// down and refilling the top with empty rows. Returns the number removed.
func (b *Board) clearFullRows() int {
	kept := make([][]Cell, 0, b.height)
	for _, row := range b.rows {
		if !rowFull(row) {
			kept = append(kept, row)
		}
	}
	cleared := b.height - len(kept)
	if cleared == 0 {
		return 0
	}
	rows := make([][]Cell, 0, b.height)
	for range cleared {
		rows = append(rows, make([]Cell, b.width))
	}
	b.rows = append(rows, kept...)
	return cleared
}
