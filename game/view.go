package game

import (
	"fmt"
	"time"

	"github.com/plus3/rainbowdrop/cascade"
	"github.com/plus3/rainbowdrop/grid"
	"github.com/plus3/rainbowdrop/piece"
	"github.com/plus3/rainbowdrop/score"
)

// View is a copy of the session state for renderers and tooling. It does
// not alias the session's grid.
type View struct {
	Player string
	Now    time.Duration

	Grid     *grid.Grid
	Piece    piece.Piece
	HasPiece bool
	Flashing []cascade.FlashingBlock

	Score        int
	Combo        int
	FallInterval time.Duration
	LastAward    score.Award
	// LastClear is the clock reading of the most recent clear; only
	// meaningful when Clears is positive.
	LastClear time.Duration
	Clears    int

	Cascade cascade.State
	Over    bool

	flashDuration time.Duration
	flashCount    int
}

// Visible reports whether fb is in the shown half of its blink at v.Now.
func (v View) Visible(fb cascade.FlashingBlock) bool {
	return cascade.Visible(fb, v.Now, v.flashDuration, v.flashCount)
}

// noticeDuration is how long the notices of a clear stay on screen.
const noticeDuration = 1500 * time.Millisecond

// Notices returns the combo and speed-up messages of the most recent clear
// while it is recent enough to show.
func (v View) Notices() []string {
	if v.Clears == 0 || v.Now-v.LastClear >= noticeDuration {
		return nil
	}
	var notices []string
	if v.LastAward.Combo > 0 {
		notices = append(notices, fmt.Sprintf("%d combo! x%.1f", v.LastAward.Combo, v.LastAward.Multiplier))
	}
	if v.LastAward.SpeedUp {
		notices = append(notices, "speed up!")
	}
	return notices
}
