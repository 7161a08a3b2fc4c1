// Package grid provides the fixed-size cell store the game places blocks into.
// Row 0 is the top of the visible field; rows grow downwards.
package grid

import (
	"fmt"
	"strings"
)

// Coord addresses a cell by column X and row Y.
type Coord struct {
	X, Y int
}

// Grid stores rows*cols cells in row-major order.
type Grid struct {
	cols  int
	rows  int
	cells []Block
}

// New creates an empty grid with the given dimensions.
func New(cols, rows int) *Grid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &Grid{
		cols:  cols,
		rows:  rows,
		cells: make([]Block, cols*rows),
	}
}

func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// At returns the block at (x, y), or Empty when out of bounds.
func (g *Grid) At(x, y int) Block {
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.cells[y*g.cols+x]
}

// Place writes b at (x, y). Writes outside the grid are ignored.
func (g *Grid) Place(x, y int, b Block) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.cols+x] = b
}

// IsOccupied is the collision test for a single-cell piece. Rows below the
// bottom and columns outside the walls are occupied; rows above the top
// (the buffer zone) are free.
func (g *Grid) IsOccupied(x, y int) bool {
	if y >= g.rows {
		return true
	}
	if x < 0 || x >= g.cols {
		return true
	}
	if y < 0 {
		return false
	}
	return !g.cells[y*g.cols+x].IsEmpty()
}

// Clear empties the listed cells.
func (g *Grid) Clear(coords ...Coord) {
	for _, c := range coords {
		g.Place(c.X, c.Y, Empty)
	}
}

// Compact applies gravity: scanning each column bottom-up, every empty cell
// takes the nearest non-empty cell above it. Returns whether any block moved.
func (g *Grid) Compact() bool {
	moved := false
	for x := 0; x < g.cols; x++ {
		for y := g.rows - 1; y > 0; y-- {
			if !g.At(x, y).IsEmpty() {
				continue
			}
			for above := y - 1; above >= 0; above-- {
				b := g.At(x, above)
				if b.IsEmpty() {
					continue
				}
				g.Place(x, y, b)
				g.Place(x, above, Empty)
				moved = true
				break
			}
		}
	}
	return moved
}

// TopRowOccupied reports whether any cell of row 0 holds a block.
func (g *Grid) TopRowOccupied() bool {
	for x := 0; x < g.cols; x++ {
		if !g.At(x, 0).IsEmpty() {
			return true
		}
	}
	return false
}

// Count returns the number of non-empty cells.
func (g *Grid) Count() int {
	n := 0
	for _, b := range g.cells {
		if !b.IsEmpty() {
			n++
		}
	}
	return n
}

func (g *Grid) Reset() {
	clear(g.cells)
}

func (g *Grid) Clone() *Grid {
	cells := make([]Block, len(g.cells))
	copy(cells, g.cells)
	return &Grid{cols: g.cols, rows: g.rows, cells: cells}
}

// String renders the grid one row per line using the Parse alphabet.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.rows; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < g.cols; x++ {
			b.WriteString(g.At(x, y).String())
		}
	}
	return b.String()
}

// Parse builds a grid from one string per row: '.' is empty, '0'-'9' an
// ordinary color and '*' a wildcard. All rows must have the same width.
func Parse(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}
	g := New(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.cols {
			return nil, fmt.Errorf("row %d: width %d, want %d", y, len(row), g.cols)
		}
		for x, ch := range []byte(row) {
			switch {
			case ch == '.':
			case ch == '*':
				g.Place(x, y, Wildcard)
			case ch >= '0' && ch <= '9':
				g.Place(x, y, Ordinary(int(ch-'0')))
			default:
				return nil, fmt.Errorf("row %d col %d: unexpected %q", y, x, ch)
			}
		}
	}
	return g, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(rows ...string) *Grid {
	g, err := Parse(rows...)
	if err != nil {
		panic(err)
	}
	return g
}
