package match_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/plus3/rainbowdrop/grid"
	"github.com/plus3/rainbowdrop/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	W = grid.Wildcard
	E = grid.Empty
)

func c(color int) grid.Block { return grid.Ordinary(color) }

func TestTriplet(t *testing.T) {
	tests := []struct {
		name    string
		a, b, d grid.Block
		want    bool
	}{
		{"w0 equal", c(2), c(2), c(2), true},
		{"w0 last differs", c(2), c(2), c(3), false},
		{"w0 first differs", c(1), c(2), c(2), false},
		{"w1 leading wildcard", W, c(4), c(4), true},
		{"w1 middle wildcard", c(4), W, c(4), true},
		{"w1 trailing wildcard", c(4), c(4), W, true},
		{"w1 unequal", c(4), W, c(5), false},
		{"w1 unequal trailing", c(0), c(1), W, false},
		{"w2", W, W, c(4), true},
		{"w2 split", W, c(0), W, true},
		{"w3", W, W, W, true},
		{"empty first", E, c(1), c(1), false},
		{"empty with wildcards", W, W, E, false},
		{"all empty", E, E, E, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, match.Triplet(tt.a, tt.b, tt.d))
		})
	}
}

func TestDetectPlainHorizontal(t *testing.T) {
	g := grid.New(6, 10)
	g.Place(0, 9, c(2))
	g.Place(1, 9, c(2))
	g.Place(2, 9, c(2))

	res := match.Detect(g)

	require.True(t, res.Found())
	assert.False(t, res.Anchored)
	assert.Equal(t, 1, res.Lines)
	assert.Equal(t, []grid.Coord{{X: 0, Y: 9}, {X: 1, Y: 9}, {X: 2, Y: 9}}, res.Coords())
	for _, f := range res.Cells {
		assert.Equal(t, c(2), f.Block)
	}
}

func TestDetectNoMatch(t *testing.T) {
	g := grid.MustParse(
		"......",
		"12.12.",
		"211221",
	)

	res := match.Detect(g)

	assert.False(t, res.Found())
	assert.Zero(t, res.Lines)
}

func TestDetectUnionsOverlappingTriplets(t *testing.T) {
	// L-shape: row of three plus a column of three sharing the corner.
	g := grid.MustParse(
		"3...",
		"3...",
		"3330",
	)

	res := match.Detect(g)

	require.True(t, res.Found())
	assert.Equal(t, 2, res.Lines)
	assert.Len(t, res.Cells, 5, "shared corner must be flashed once")
	assert.Equal(t, []grid.Coord{
		{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2},
		{X: 0, Y: 0}, {X: 0, Y: 1},
	}, res.Coords())
}

func TestDetectRunOfFour(t *testing.T) {
	g := grid.MustParse("1111")

	res := match.Detect(g)

	assert.Equal(t, 2, res.Lines)
	assert.Len(t, res.Cells, 4)
}

func TestDetectScanOrderHorizontalThenVertical(t *testing.T) {
	g := grid.MustParse(
		".4...",
		".4...",
		".4555",
	)

	res := match.Detect(g)

	require.Len(t, res.Cells, 6)
	assert.Equal(t, grid.Coord{X: 2, Y: 2}, res.Cells[0].Coord)
	assert.Equal(t, grid.Coord{X: 1, Y: 0}, res.Cells[3].Coord)
}

func TestDetectAnchored(t *testing.T) {
	t.Run("wildcard with two equal neighbours to the left", func(t *testing.T) {
		g := grid.MustParse("44*")

		res := match.Detect(g)

		assert.True(t, res.Anchored)
		assert.Equal(t, 3, len(res.Cells))
		assert.Equal(t, 1, res.Wildcards())
	})

	t.Run("wildcard below two equal blocks", func(t *testing.T) {
		g := grid.MustParse(
			"2",
			"2",
			"*",
		)

		res := match.Detect(g)

		assert.True(t, res.Anchored)
		assert.Len(t, res.Cells, 3)
	})

	t.Run("two wildcards and any ordinary", func(t *testing.T) {
		g := grid.MustParse("**5")

		res := match.Detect(g)

		assert.True(t, res.Anchored)
		assert.Len(t, res.Cells, 3)
		assert.Equal(t, 2, res.Wildcards())
	})

	t.Run("three wildcards", func(t *testing.T) {
		g := grid.MustParse(
			"*",
			"*",
			"*",
		)

		res := match.Detect(g)

		assert.True(t, res.Anchored)
		assert.Equal(t, 3, res.Wildcards())
	})

	t.Run("windows crossing the border are skipped", func(t *testing.T) {
		g := grid.MustParse("*1")

		res := match.Detect(g)

		assert.False(t, res.Found())
	})

	t.Run("unequal ordinaries do not match", func(t *testing.T) {
		g := grid.MustParse("12*")

		res := match.Detect(g)

		assert.False(t, res.Found())
	})
}

func TestDetectAnchoredSuppressesPlainScan(t *testing.T) {
	g := grid.MustParse(
		".....",
		"111..",
		"33*..",
	)

	res := match.Detect(g)

	require.True(t, res.Anchored)
	assert.Equal(t, []grid.Coord{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}, res.Coords(),
		"the ordinary row of ones waits for the next cycle")
}

func TestDetectMiddleWildcardFallsBackToPlainScan(t *testing.T) {
	// The wildcard sits between the pair, so no anchored window covers it.
	g := grid.MustParse("4*4")

	res := match.Detect(g)

	require.True(t, res.Found())
	assert.False(t, res.Anchored)
	assert.Equal(t, 1, res.Wildcards())
}

func ExampleDetect() {
	g := grid.MustParse(
		"......",
		"..2...",
		"..2...",
		"2*2...",
	)

	res := match.Detect(g)
	cells := make([]string, 0, len(res.Cells))
	for _, f := range res.Cells {
		cells = append(cells, fmt.Sprintf("(%d,%d)=%s", f.X, f.Y, f.Block))
	}
	fmt.Println(strings.Join(cells, " "))
	fmt.Println("anchored:", res.Anchored)

	// Output:
	// (0,3)=2 (1,3)=* (2,3)=2 (2,1)=2 (2,2)=2
	// anchored: false
}
