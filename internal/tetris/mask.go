package tetris

import "strings"

// Mask is a rectangular grid of occupied flags, indexed [row][col].
type Mask [][]bool

// NewMask builds a mask from 0/1 rows.
func NewMask(rows [][]int) Mask {
	m := make(Mask, len(rows))
	for r, row := range rows {
		m[r] = make([]bool, len(row))
		for c, v := range row {
			m[r][c] = v != 0
		}
	}
	return m
}

// ParseMask builds a mask from strings where '#' marks a set cell,
// e.g. ParseMask(".#.", "###") is the T piece.
func ParseMask(rows ...string) Mask {
	m := make(Mask, len(rows))
	for r, row := range rows {
		m[r] = make([]bool, len(row))
		for c := range len(row) {
			m[r][c] = row[c] == '#'
		}
	}
	return m
}

// Rows returns the number of rows.
func (m Mask) Rows() int {
	return len(m)
}

// Cols returns the number of columns.
func (m Mask) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// At reports whether (r, c) is set. Out-of-range positions are unset.
func (m Mask) At(r, c int) bool {
	if r < 0 || r >= len(m) || c < 0 || c >= len(m[r]) {
		return false
	}
	return m[r][c]
}

// Clone returns a deep copy.
func (m Mask) Clone() Mask {
	out := make(Mask, len(m))
	for r := range m {
		out[r] = append([]bool(nil), m[r]...)
	}
	return out
}

// Equal reports whether both masks have the same shape and cells.
func (m Mask) Equal(o Mask) bool {
	if len(m) != len(o) {
		return false
	}
	for r := range m {
		if len(m[r]) != len(o[r]) {
			return false
		}
		for c := range m[r] {
			if m[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// Rectangular reports whether the mask is non-empty and every row has the same length.
func (m Mask) Rectangular() bool {
	if len(m) == 0 || len(m[0]) == 0 {
		return false
	}
	for _, row := range m {
		if len(row) != len(m[0]) {
			return false
		}
	}
	return true
}

// Count returns the number of set cells.
func (m Mask) Count() int {
	n := 0
	m.each(func(int, int) { n++ })
	return n
}

// String renders the mask with '#' and '.', one row per line.
func (m Mask) String() string {
	var b strings.Builder
	for r, row := range m {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, set := range row {
			if set {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

// each calls fn for every set cell.
func (m Mask) each(fn func(r, c int)) {
	for r, row := range m {
		for c, set := range row {
			if set {
				fn(r, c)
			}
		}
	}
}

// Rotate returns the mask turned 90° clockwise: an R×C mask becomes C×R
// with out[c][R-1-r] = m[r][c].
func Rotate(m Mask) Mask {
	rows, cols := m.Rows(), m.Cols()
	out := make(Mask, cols)
	for c := range cols {
		out[c] = make([]bool, rows)
		for r := range rows {
			out[c][rows-1-r] = m[r][c]
		}
	}
	return out
}
