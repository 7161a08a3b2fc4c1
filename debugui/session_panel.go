package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/rainbowdrop/game"
	"github.com/plus3/rainbowdrop/grid"
)

// SessionPanel shows the live state of a game session and a miniature of
// its grid.
type SessionPanel struct {
	showGrid bool
	cellSize float32
}

func NewSessionPanel(cellSize float32) *SessionPanel {
	return &SessionPanel{showGrid: true, cellSize: cellSize}
}

type field struct {
	label string
	value string
}

func sessionFields(v game.View) []field {
	fields := []field{
		{"Player", v.Player},
		{"Clock", v.Now.String()},
		{"Score", fmt.Sprintf("%d", v.Score)},
		{"Combo", fmt.Sprintf("%d", v.Combo)},
		{"Fall Interval", v.FallInterval.String()},
		{"Clears", fmt.Sprintf("%d", v.Clears)},
		{"Last Award", fmt.Sprintf("%d x%.1f = %d", v.LastAward.Base, v.LastAward.Multiplier, v.LastAward.Points)},
		{"Cascade", v.Cascade.String()},
		{"Flashing", fmt.Sprintf("%d", len(v.Flashing))},
		{"Blocks", fmt.Sprintf("%d", v.Grid.Count())},
	}
	if v.HasPiece {
		fields = append(fields, field{"Piece", fmt.Sprintf("%s at (%d,%d)", v.Piece.Block, v.Piece.X, v.Piece.Y)})
	} else {
		fields = append(fields, field{"Piece", "-"})
	}
	if v.Over {
		fields = append(fields, field{"State", "game over"})
	}
	return fields
}

func (sp *SessionPanel) Render(v game.View) {
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SessionTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Field")
		imgui.TableSetupColumn("Value")
		imgui.TableHeadersRow()

		for _, f := range sessionFields(v) {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(f.label)
			imgui.TableNextColumn()
			imgui.Text(f.value)
		}

		imgui.EndTable()
	}

	imgui.Checkbox("Show Grid", &sp.showGrid)
	if sp.showGrid {
		sp.drawGrid(v)
	}

	if len(v.Flashing) > 0 && imgui.TreeNodeStr("Flashing Blocks") {
		for _, fb := range v.Flashing {
			imgui.BulletText(fmt.Sprintf("(%d,%d) %s since %s", fb.X, fb.Y, fb.Block, fb.Start))
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (sp *SessionPanel) drawGrid(v game.View) {
	drawList := imgui.WindowDrawList()
	origin := imgui.CursorScreenPos()
	size := sp.cellSize

	for y := 0; y < v.Grid.Rows(); y++ {
		for x := 0; x < v.Grid.Cols(); x++ {
			b := v.Grid.At(x, y)
			if b.IsEmpty() {
				continue
			}
			lo := imgui.NewVec2(origin.X+float32(x)*size, origin.Y+float32(y)*size)
			hi := imgui.NewVec2(lo.X+size-1, lo.Y+size-1)
			drawList.AddRectFilled(lo, hi, imgui.ColorU32Vec4(blockColor(b)))
		}
	}
	if v.HasPiece && v.Piece.Y >= 0 {
		lo := imgui.NewVec2(origin.X+float32(v.Piece.X)*size, origin.Y+float32(v.Piece.Y)*size)
		hi := imgui.NewVec2(lo.X+size-1, lo.Y+size-1)
		drawList.AddRectFilled(lo, hi, imgui.ColorU32Vec4(blockColor(v.Piece.Block)))
	}

	imgui.Dummy(imgui.NewVec2(float32(v.Grid.Cols())*size, float32(v.Grid.Rows())*size))
}

var palette = [...]imgui.Vec4{
	imgui.NewVec4(0.91, 0.30, 0.24, 1),
	imgui.NewVec4(0.20, 0.60, 0.86, 1),
	imgui.NewVec4(0.18, 0.80, 0.44, 1),
	imgui.NewVec4(0.95, 0.77, 0.06, 1),
	imgui.NewVec4(0.61, 0.35, 0.71, 1),
	imgui.NewVec4(0.90, 0.49, 0.13, 1),
	imgui.NewVec4(0.10, 0.74, 0.61, 1),
	imgui.NewVec4(0.93, 0.44, 0.63, 1),
	imgui.NewVec4(0.58, 0.65, 0.65, 1),
	imgui.NewVec4(0.36, 0.25, 0.20, 1),
}

func blockColor(b grid.Block) imgui.Vec4 {
	if b.IsWildcard() {
		return imgui.NewVec4(1, 1, 1, 1)
	}
	color, _ := b.Color()
	return palette[color%len(palette)]
}
