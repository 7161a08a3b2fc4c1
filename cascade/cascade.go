// Package cascade resolves the clear, gravity and re-match chain that follows
// a landing. The resolver never blocks: the visible flash before each clear is
// a timer on the session scheduler, and the chain resumes when it fires.
package cascade

import (
	"time"

	"github.com/plus3/rainbowdrop/engine"
	"github.com/plus3/rainbowdrop/grid"
	"github.com/plus3/rainbowdrop/match"
	"github.com/plus3/rainbowdrop/score"
	"go.uber.org/zap"
)

type State int

const (
	Idle State = iota
	Detecting
	Flashing
	Clearing
	Falling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Detecting:
		return "detecting"
	case Flashing:
		return "flashing"
	case Clearing:
		return "clearing"
	case Falling:
		return "falling"
	default:
		return "unknown"
	}
}

// FlashingBlock is a matched cell waiting for its clear.
type FlashingBlock struct {
	grid.Coord
	Block grid.Block
	Start time.Duration
}

// Scheduler is the part of the session scheduler the resolver needs.
type Scheduler interface {
	Clock() engine.Clock
	After(delay time.Duration, fn func()) engine.TimerID
	Cancel(id engine.TimerID) bool
}

// Scorer converts a cleared batch into an award.
type Scorer interface {
	Apply(now time.Duration, b score.Batch) score.Award
}

// Clear reports one clearing transition.
type Clear struct {
	At    time.Duration
	Cells []match.Flash
	Award score.Award
	// Depth is the 1-based position of this clear within its cascade.
	Depth int
}

type Options struct {
	FlashDuration time.Duration
	SettleDelay   time.Duration
	// OnClear, when set, is called after every clearing transition.
	OnClear func(Clear)
	Logger  *zap.Logger
}

// Resolver runs the Idle → Detecting → Flashing → Clearing → Falling loop.
type Resolver struct {
	grid   *grid.Grid
	sched  Scheduler
	scorer Scorer
	opts   Options
	log    *zap.Logger

	state     State
	flashing  []FlashingBlock
	depth     int
	lastDepth int
	pending   bool
	stopped   bool
	// anchored is set when the flash set came from the wildcard-anchored
	// pass, which skips the plain scan.
	anchored bool

	timer    engine.TimerID
	hasTimer bool
}

func New(g *grid.Grid, sched Scheduler, scorer Scorer, opts Options) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		grid:   g,
		sched:  sched,
		scorer: scorer,
		opts:   opts,
		log:    logger,
	}
}

func (r *Resolver) State() State {
	return r.state
}

// Busy reports whether a cascade is in progress.
func (r *Resolver) Busy() bool {
	return r.state != Idle
}

// Flashing returns the cells currently waiting to be cleared.
func (r *Resolver) Flashing() []FlashingBlock {
	out := make([]FlashingBlock, len(r.flashing))
	copy(out, r.flashing)
	return out
}

// Depth returns the number of clears so far in the running cascade, or in
// the last finished one when idle.
func (r *Resolver) Depth() int {
	if r.state == Idle {
		return r.lastDepth
	}
	return r.depth
}

// Trigger starts a detection cycle. While a cascade is running the request
// is remembered and served a settle delay after the cascade finishes.
func (r *Resolver) Trigger() {
	if r.stopped {
		return
	}
	if r.state != Idle {
		r.pending = true
		return
	}
	r.cancelTimer()
	r.depth = 0
	r.state = Detecting
	r.run()
}

// Stop freezes the resolver. Pending timers are cancelled and the flash set
// is dropped without scoring.
func (r *Resolver) Stop() {
	r.stopped = true
	r.cancelTimer()
	r.flashing = nil
	r.pending = false
	r.state = Idle
}

func (r *Resolver) run() {
	for {
		switch r.state {
		case Detecting:
			res := match.Detect(r.grid)
			if !res.Found() {
				r.finish()
				continue
			}
			now := r.sched.Clock().Now()
			r.flashing = r.flashing[:0]
			for _, f := range res.Cells {
				r.flashing = append(r.flashing, FlashingBlock{Coord: f.Coord, Block: f.Block, Start: now})
			}
			r.log.Debug("match found",
				zap.Int("cells", len(res.Cells)),
				zap.Int("lines", res.Lines),
				zap.Bool("anchored", res.Anchored),
				zap.Int("depth", r.depth+1),
			)
			r.anchored = res.Anchored
			r.state = Flashing
			r.arm(r.opts.FlashDuration, r.endFlash)
			return

		case Clearing:
			r.clear()
			r.state = Falling

		case Falling:
			moved := false
			for i := 0; i <= r.grid.Rows() && r.grid.Compact(); i++ {
				moved = true
			}
			switch {
			case moved:
				r.state = Detecting
			case r.anchored:
				// Plain triplets left behind by an anchored clear are
				// picked up a settle delay later.
				r.arm(r.opts.SettleDelay, r.recheck)
				return
			default:
				r.finish()
			}

		default:
			return
		}
	}
}

func (r *Resolver) endFlash() {
	r.hasTimer = false
	if r.stopped || r.state != Flashing {
		return
	}
	r.state = Clearing
	r.run()
}

func (r *Resolver) recheck() {
	r.hasTimer = false
	if r.stopped || r.state != Falling {
		return
	}
	r.state = Detecting
	r.run()
}

func (r *Resolver) clear() {
	now := r.sched.Clock().Now()
	cells := make([]match.Flash, len(r.flashing))
	coords := make([]grid.Coord, len(r.flashing))
	wildcards := 0
	for i, fb := range r.flashing {
		cells[i] = match.Flash{Coord: fb.Coord, Block: fb.Block}
		coords[i] = fb.Coord
		if fb.Block.IsWildcard() {
			wildcards++
		}
	}
	r.grid.Clear(coords...)
	r.flashing = r.flashing[:0]
	r.depth++

	award := r.scorer.Apply(now, score.Batch{Cells: len(cells), Wildcards: wildcards})
	r.log.Debug("cleared",
		zap.Int("cells", len(cells)),
		zap.Int("wildcards", wildcards),
		zap.Int("points", award.Points),
		zap.Int("combo", award.Combo),
		zap.Int("depth", r.depth),
	)
	if r.opts.OnClear != nil {
		r.opts.OnClear(Clear{At: now, Cells: cells, Award: award, Depth: r.depth})
	}
}

func (r *Resolver) finish() {
	if r.depth > 0 {
		r.log.Debug("cascade settled", zap.Int("depth", r.depth))
	}
	r.lastDepth = r.depth
	r.state = Idle
	if r.pending {
		r.pending = false
		r.arm(r.opts.SettleDelay, r.Trigger)
	}
}

func (r *Resolver) arm(delay time.Duration, fn func()) {
	r.cancelTimer()
	r.timer = r.sched.After(delay, fn)
	r.hasTimer = true
}

func (r *Resolver) cancelTimer() {
	if r.hasTimer {
		r.sched.Cancel(r.timer)
		r.hasTimer = false
	}
}

// Visible reports whether a flashing block is drawn at now. The flash
// duration is split into flashCount periods that alternate shown and hidden.
func Visible(fb FlashingBlock, now, flashDuration time.Duration, flashCount int) bool {
	if flashCount <= 0 || flashDuration <= 0 {
		return true
	}
	period := flashDuration / time.Duration(flashCount)
	elapsed := now - fb.Start
	if period <= 0 || elapsed < 0 {
		return true
	}
	return (elapsed/period)%2 == 0
}
