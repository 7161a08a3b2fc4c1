package main

import (
	"github.com/plus3/rainbowdrop/game"
	"github.com/plus3/rainbowdrop/grid"
	"github.com/plus3/rainbowdrop/match"
)

// Bot steers every new piece to the column where it would complete a match,
// or else onto the lowest stack.
type Bot struct {
	target  int
	steered bool
}

func (b *Bot) Act(s *game.Session) {
	v := s.Snapshot()
	if !v.HasPiece {
		b.steered = false
		return
	}
	if !b.steered {
		b.target = chooseColumn(v.Grid, v.Piece.Block)
		b.steered = true
	}

	switch {
	case v.Piece.X == b.target:
		s.Handle(game.SoftDrop())
	case s.Handle(game.SetColumn(b.target)):
	case v.Piece.X < b.target:
		s.Handle(game.MoveRight())
	default:
		s.Handle(game.MoveLeft())
	}
}

// landingRow returns the row a block dropped into column x comes to rest on,
// or -1 when the column is full.
func landingRow(g *grid.Grid, x int) int {
	if g.IsOccupied(x, 0) {
		return -1
	}
	y := 0
	for !g.IsOccupied(x, y+1) {
		y++
	}
	return y
}

func chooseColumn(g *grid.Grid, block grid.Block) int {
	best, bestScore := 0, -1
	for x := 0; x < g.Cols(); x++ {
		y := landingRow(g, x)
		if y < 0 {
			continue
		}
		trial := g.Clone()
		trial.Place(x, y, block)

		score := y
		if res := match.Detect(trial); res.Found() {
			score += 100 * len(res.Cells)
		}
		if score > bestScore {
			best, bestScore = x, score
		}
	}
	return best
}
