// Package score turns cleared batches into points and tracks combos and
// the fall speed they unlock.
package score

import (
	"math"
	"time"
)

// Rules are the scoring tunables.
type Rules struct {
	BaseScore         int
	RainbowScore      int
	SuperRainbowScore int
	ComboTimeout      time.Duration
	ComboMultiplier   float64

	InitialMoveInterval    time.Duration
	MinMoveInterval        time.Duration
	SpeedIncreaseThreshold int
	SpeedIncreaseRate      float64
}

// State is the cumulative score state of one session.
type State struct {
	Score int
	Combo int
	// LastClear is the clock reading of the most recent clear; only
	// meaningful once Cleared is set.
	LastClear              time.Duration
	Cleared                bool
	FallInterval           time.Duration
	LastSpeedIncreaseScore int
}

// Batch describes one clearing transition.
type Batch struct {
	Cells     int
	Wildcards int
}

// Award is the outcome of applying a batch.
type Award struct {
	Base       int
	Combo      int
	Multiplier float64
	Points     int
	// SpeedUp is set when this award crossed the next speed threshold.
	SpeedUp      bool
	FallInterval time.Duration
}

// Tracker applies scoring events to a State.
type Tracker struct {
	rules Rules
	state State
}

func NewTracker(rules Rules) *Tracker {
	return &Tracker{
		rules: rules,
		state: State{FallInterval: rules.InitialMoveInterval},
	}
}

func (t *Tracker) State() State {
	return t.state
}

func (t *Tracker) Score() int {
	return t.state.Score
}

func (t *Tracker) FallInterval() time.Duration {
	return t.state.FallInterval
}

// BaseFor returns the points a batch is worth before the combo multiplier.
func (r Rules) BaseFor(b Batch) int {
	switch {
	case b.Wildcards == 3:
		return r.SuperRainbowScore
	case b.Wildcards > 0:
		return r.RainbowScore
	default:
		return r.BaseScore
	}
}

// Apply scores one clearing transition that happened at now.
func (t *Tracker) Apply(now time.Duration, b Batch) Award {
	s := &t.state
	base := t.rules.BaseFor(b)

	multiplier := 1.0
	if s.Cleared && now-s.LastClear < t.rules.ComboTimeout {
		s.Combo++
		multiplier = 1 + float64(s.Combo)*t.rules.ComboMultiplier
	} else {
		s.Combo = 0
	}
	s.LastClear = now
	s.Cleared = true

	points := int(math.Floor(float64(base) * multiplier))
	s.Score += points

	award := Award{
		Base:       base,
		Combo:      s.Combo,
		Multiplier: multiplier,
		Points:     points,
	}

	if s.Score >= s.LastSpeedIncreaseScore+t.rules.SpeedIncreaseThreshold {
		s.FallInterval = max(
			time.Duration(math.Round(float64(s.FallInterval)*t.rules.SpeedIncreaseRate)),
			t.rules.MinMoveInterval,
		)
		s.LastSpeedIncreaseScore = s.Score
		award.SpeedUp = true
	}
	award.FallInterval = s.FallInterval

	return award
}
