// Package match finds triplets of matching blocks on a grid.
//
// A detection cycle first probes the windows anchored on every wildcard
// block. Only when none of them matches does it fall back to scanning every
// horizontal and vertical triplet of the grid.
package match

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/rainbowdrop/grid"
)

// Flash is a matched cell together with the block it held when detected.
type Flash struct {
	grid.Coord
	Block grid.Block
}

// Result is the outcome of one detection cycle.
type Result struct {
	// Cells holds every matched cell once, in discovery order.
	Cells []Flash
	// Lines counts matching triplets, including overlapping ones.
	Lines int
	// Anchored is set when the cells came from the wildcard-anchored pass.
	Anchored bool
}

func (r Result) Found() bool {
	return len(r.Cells) > 0
}

// Wildcards returns how many matched cells hold a wildcard.
func (r Result) Wildcards() int {
	n := 0
	for _, f := range r.Cells {
		if f.Block.IsWildcard() {
			n++
		}
	}
	return n
}

func (r Result) Coords() []grid.Coord {
	coords := make([]grid.Coord, len(r.Cells))
	for i, f := range r.Cells {
		coords[i] = f.Coord
	}
	return coords
}

// Triplet reports whether three cells form a match. Empty cells never match.
// With no wildcard all three colors must be equal, with one wildcard the two
// ordinary colors must be equal, and two or three wildcards always match.
func Triplet(a, b, c grid.Block) bool {
	if a.IsEmpty() || b.IsEmpty() || c.IsEmpty() {
		return false
	}

	var ordinary [3]grid.Block
	n := 0
	for _, blk := range [3]grid.Block{a, b, c} {
		if !blk.IsWildcard() {
			ordinary[n] = blk
			n++
		}
	}

	switch n {
	case 3:
		return a == b && b == c
	case 2:
		return ordinary[0] == ordinary[1]
	default:
		return true
	}
}

// window offsets probed from a wildcard cell: left, right, up, down.
var anchorWindows = [4][3]grid.Coord{
	{{X: -2}, {X: -1}, {}},
	{{}, {X: 1}, {X: 2}},
	{{Y: -2}, {Y: -1}, {}},
	{{}, {Y: 1}, {Y: 2}},
}

type collector struct {
	g      *grid.Grid
	seen   *intmap.Map[int, struct{}]
	result Result
}

func newCollector(g *grid.Grid) *collector {
	return &collector{
		g:    g,
		seen: intmap.New[int, struct{}](16),
	}
}

func (c *collector) add(cells [3]grid.Coord) {
	c.result.Lines++
	for _, cell := range cells {
		key := cell.Y*c.g.Cols() + cell.X
		if _, ok := c.seen.Get(key); ok {
			continue
		}
		c.seen.Put(key, struct{}{})
		c.result.Cells = append(c.result.Cells, Flash{Coord: cell, Block: c.g.At(cell.X, cell.Y)})
	}
}

func (c *collector) try(cells [3]grid.Coord) {
	for _, cell := range cells {
		if !c.g.InBounds(cell.X, cell.Y) {
			return
		}
	}
	a := c.g.At(cells[0].X, cells[0].Y)
	b := c.g.At(cells[1].X, cells[1].Y)
	d := c.g.At(cells[2].X, cells[2].Y)
	if Triplet(a, b, d) {
		c.add(cells)
	}
}

// Detect runs one detection cycle over g.
func Detect(g *grid.Grid) Result {
	if res := detectAnchored(g); res.Found() {
		return res
	}
	return detectPlain(g)
}

func detectAnchored(g *grid.Grid) Result {
	c := newCollector(g)
	for y := 0; y < g.Rows(); y++ {
		for x := 0; x < g.Cols(); x++ {
			if !g.At(x, y).IsWildcard() {
				continue
			}
			for _, w := range anchorWindows {
				var cells [3]grid.Coord
				for i, off := range w {
					cells[i] = grid.Coord{X: x + off.X, Y: y + off.Y}
				}
				c.try(cells)
			}
		}
	}
	c.result.Anchored = c.result.Found()
	return c.result
}

func detectPlain(g *grid.Grid) Result {
	c := newCollector(g)
	for y := 0; y < g.Rows(); y++ {
		for x := 0; x+2 < g.Cols(); x++ {
			c.try([3]grid.Coord{{X: x, Y: y}, {X: x + 1, Y: y}, {X: x + 2, Y: y}})
		}
	}
	for x := 0; x < g.Cols(); x++ {
		for y := 0; y+2 < g.Rows(); y++ {
			c.try([3]grid.Coord{{X: x, Y: y}, {X: x, Y: y + 1}, {X: x, Y: y + 2}})
		}
	}
	return c.result
}
