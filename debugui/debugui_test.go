package debugui

import (
	"testing"

	"github.com/plus3/rainbowdrop/config"
	"github.com/plus3/rainbowdrop/game"
	"github.com/plus3/rainbowdrop/grid"
	"github.com/stretchr/testify/assert"
)

func TestFrameHistoryAverage(t *testing.T) {
	h := newFrameHistory(4)
	assert.Zero(t, h.average())

	for _, ms := range []float32{10, 20, 30, 40, 50} {
		h.push(ms)
	}

	// 10 was overwritten by 50.
	assert.InDelta(t, 35.0, h.average(), 1e-6)
}

func TestFrameHistoryNeverEmpty(t *testing.T) {
	h := newFrameHistory(0)
	h.push(16)
	assert.Equal(t, float32(16), h.average())
}

func TestOverlayAdd(t *testing.T) {
	o := NewOverlay()
	o.Add(func() {})
	o.Add(func() {})

	assert.Equal(t, 2, o.Len())
	assert.Equal(t, InputState{}, o.Input())
}

func TestSessionFields(t *testing.T) {
	s, err := game.New(config.Default(), "ana")
	if !assert.NoError(t, err) {
		return
	}

	fields := sessionFields(s.Snapshot())

	got := map[string]string{}
	for _, f := range fields {
		got[f.label] = f.value
	}
	assert.Equal(t, "ana", got["Player"])
	assert.Equal(t, "0", got["Score"])
	assert.Equal(t, "idle", got["Cascade"])
	assert.Equal(t, "-", got["Piece"])
	assert.NotContains(t, got, "State")
}

func TestBlockColor(t *testing.T) {
	assert.Equal(t, palette[2], blockColor(grid.Ordinary(2)))
	assert.Equal(t, palette[1], blockColor(grid.Ordinary(11)))
	assert.NotEqual(t, blockColor(grid.Ordinary(0)), blockColor(grid.Wildcard))
}
