package tetris

// PointsPerRow is the score for each cleared row. Clears are flat:
// removing N rows in one lock scores N*PointsPerRow.
const PointsPerRow = 100

// CanMoveTo reports whether mask m fits with its top-left corner at (x, y):
// every set cell must land on the board (no row above the top, none past the
// floor or the side walls) and on an empty square.
func CanMoveTo(b Board, x, y int, m Mask) bool {
	for r, row := range m {
		for c, set := range row {
			if !set {
				continue
			}
			bx, by := x+c, y+r
			if !b.InBounds(bx, by) || b.rows[by][bx].Filled {
				return false
			}
		}
	}
	return true
}

// LockResult is the outcome of writing a piece into a board.
type LockResult struct {
	Board     Board // Board after writing and clearing; the input board when LockedOut
	Cleared   int   // Number of full rows removed
	LockedOut bool  // Piece had a cell above row 0; nothing was written
}

// Lock writes piece p into a copy of b and removes the full rows.
// If any cell of p sits above the visible board (y < 0) the lock is refused
// and the original board is returned untouched.
func Lock(b Board, p ActivePiece) LockResult {
	cells := p.Cells()
	for _, pt := range cells {
		if pt.Y < 0 {
			return LockResult{Board: b, LockedOut: true}
		}
	}

	out := b.Clone()
	for _, pt := range cells {
		if out.InBounds(pt.X, pt.Y) {
			out.rows[pt.Y][pt.X] = Cell{Filled: true, Color: p.Color}
		}
	}
	cleared := out.clearFullRows()
	return LockResult{Board: out, Cleared: cleared}
}

// SpawnPosition returns where new pieces appear on a board of the given width.
func SpawnPosition(width int) (x, y int) {
	return width/2 - 1, 0
}
