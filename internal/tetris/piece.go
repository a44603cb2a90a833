// Package tetris implements the board and piece simulation of a Tetris game.
//
// The package is pure: a Session is a value, every operation takes a Session
// and returns the next one, and nothing here reads the clock or the terminal.
// Timing and input live in the collaborators (Driver, the arcade adapter).
package tetris

import "github.com/vovakirdan/retro-tetris/internal/core"

// Type identifies one of the seven tetriminos.
type Type int

const (
	TypeI Type = iota
	TypeO
	TypeT
	TypeS
	TypeZ
	TypeJ
	TypeL
)

// Types lists every tetrimino in catalog order.
var Types = [...]Type{TypeI, TypeO, TypeT, TypeS, TypeZ, TypeJ, TypeL}

// String returns the single-letter piece name.
func (t Type) String() string {
	switch t {
	case TypeI:
		return "I"
	case TypeO:
		return "O"
	case TypeT:
		return "T"
	case TypeS:
		return "S"
	case TypeZ:
		return "Z"
	case TypeJ:
		return "J"
	case TypeL:
		return "L"
	default:
		return "?"
	}
}

// Definition is the immutable catalog entry for a tetrimino.
type Definition struct {
	Shape Mask
	Color core.Color
}

type catalogEntry struct {
	rows  [][]int
	color core.Color
}

var catalog = [...]catalogEntry{
	TypeI: {rows: [][]int{{1, 1, 1, 1}}, color: core.ColorCyan},
	TypeO: {rows: [][]int{{1, 1}, {1, 1}}, color: core.ColorYellow},
	TypeT: {rows: [][]int{{0, 1, 0}, {1, 1, 1}}, color: core.ColorMagenta},
	TypeS: {rows: [][]int{{0, 1, 1}, {1, 1, 0}}, color: core.ColorGreen},
	TypeZ: {rows: [][]int{{1, 1, 0}, {0, 1, 1}}, color: core.ColorRed},
	TypeJ: {rows: [][]int{{1, 0, 0}, {1, 1, 1}}, color: core.ColorBlue},
	TypeL: {rows: [][]int{{0, 0, 1}, {1, 1, 1}}, color: core.ColorOrange},
}

// DefinitionFor returns the shape and color of a tetrimino.
// The returned mask is a fresh copy. t must be one of Types.
func DefinitionFor(t Type) Definition {
	e := catalog[t]
	return Definition{Shape: NewMask(e.rows), Color: e.color}
}

// ActivePiece is the falling piece: its current (possibly rotated) mask and
// the board position of the mask's top-left corner.
type ActivePiece struct {
	Type  Type
	Mask  Mask
	Color core.Color
	X, Y  int
}

// NewActivePiece creates a piece of type t with its mask anchored at (x, y).
func NewActivePiece(t Type, x, y int) ActivePiece {
	def := DefinitionFor(t)
	return ActivePiece{Type: t, Mask: def.Shape, Color: def.Color, X: x, Y: y}
}

// Cells returns the absolute board coordinates covered by the piece.
func (p ActivePiece) Cells() []Point {
	pts := make([]Point, 0, 4)
	p.Mask.each(func(r, c int) {
		pts = append(pts, Point{X: p.X + c, Y: p.Y + r})
	})
	return pts
}

// Covers reports whether the piece occupies board cell (x, y).
func (p ActivePiece) Covers(x, y int) bool {
	return p.Mask.At(y-p.Y, x-p.X)
}

// Point is a board coordinate; Y grows downward.
type Point struct {
	X, Y int
}
