package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/rainbowdrop/game"
	"github.com/plus3/rainbowdrop/grid"
)

var (
	background = color.RGBA{18, 18, 28, 255}
	frameColor = color.RGBA{90, 90, 110, 255}
	outline    = color.RGBA{0, 0, 0, 255}

	palette = []color.RGBA{
		{231, 76, 60, 255},
		{52, 152, 219, 255},
		{46, 204, 113, 255},
		{241, 196, 15, 255},
		{155, 89, 182, 255},
		{230, 126, 34, 255},
		{26, 188, 156, 255},
		{236, 112, 160, 255},
		{149, 165, 166, 255},
		{94, 64, 51, 255},
	}
	rainbow = []color.RGBA{
		{231, 76, 60, 255},
		{241, 196, 15, 255},
		{46, 204, 113, 255},
		{52, 152, 219, 255},
		{155, 89, 182, 255},
	}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	v := g.session.Snapshot()
	size := float32(g.cfg.BlockSize)
	w := float32(v.Grid.Cols()) * size
	h := float32(v.Grid.Rows()) * size

	vector.StrokeRect(screen, margin-2, margin-2, w+4, h+4, 2, frameColor, false)

	flashing := make(map[grid.Coord]bool, len(v.Flashing))
	for _, fb := range v.Flashing {
		flashing[fb.Coord] = v.Visible(fb)
	}

	for y := 0; y < v.Grid.Rows(); y++ {
		for x := 0; x < v.Grid.Cols(); x++ {
			b := v.Grid.At(x, y)
			if b.IsEmpty() {
				continue
			}
			if shown, ok := flashing[grid.Coord{X: x, Y: y}]; ok && !shown {
				continue
			}
			drawBlock(screen, x, y, size, b)
		}
	}
	if v.HasPiece && v.Piece.Y >= 0 {
		drawBlock(screen, v.Piece.X, v.Piece.Y, size, v.Piece.Block)
	}

	g.drawPanel(screen, int(w)+2*margin, v)

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func drawBlock(screen *ebiten.Image, x, y int, size float32, b grid.Block) {
	px := margin + float32(x)*size
	py := margin + float32(y)*size

	if b.IsWildcard() {
		stripe := size / float32(len(rainbow))
		for i, c := range rainbow {
			vector.DrawFilledRect(screen, px, py+float32(i)*stripe, size, stripe, c, false)
		}
	} else {
		idx, _ := b.Color()
		vector.DrawFilledRect(screen, px, py, size, size, palette[idx%len(palette)], false)
	}
	vector.StrokeRect(screen, px, py, size, size, 1, outline, false)
}

func (g *Game) drawPanel(screen *ebiten.Image, left int, v game.View) {
	var b strings.Builder
	fmt.Fprintf(&b, "PLAYER %s\n\n", v.Player)
	fmt.Fprintf(&b, "SCORE  %d\n", v.Score)
	fmt.Fprintf(&b, "SPEED  %s\n\n", v.FallInterval)
	notices := v.Notices()
	for _, n := range notices {
		b.WriteString(strings.ToUpper(n) + "\n")
	}
	for range 2 - min(len(notices), 2) {
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString("A/D or arrows: move\nS or down: drop\nmouse: pick column\n\n")

	if v.Over {
		b.WriteString("GAME OVER\npress R to restart\n\n")
	}

	b.WriteString("TOP SCORES\n")
	for i, e := range g.board {
		fmt.Fprintf(&b, "%2d. %-10s %d\n", i+1, e.Name, e.Score)
	}

	ebitenutil.DebugPrintAt(screen, b.String(), left, margin)
}
