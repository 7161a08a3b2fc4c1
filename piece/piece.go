// Package piece controls the single falling block: spawning, the timed
// descent, landing, and the lateral moves requested by the player.
package piece

import (
	"math/rand/v2"
	"time"

	"github.com/plus3/rainbowdrop/grid"
)

// Piece is the active falling block. Y is negative while the piece is in
// the buffer zone above the visible grid.
type Piece struct {
	X      int
	Y      int
	Block  grid.Block
	Moving bool
}

type State int

const (
	NoPiece State = iota
	Falling
	GameOver
)

func (s State) String() string {
	switch s {
	case NoPiece:
		return "no-piece"
	case Falling:
		return "falling"
	case GameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

type EventKind int

const (
	None EventKind = iota
	Spawned
	Moved
	Landed
	Ended
)

// Event is what a Tick did.
type Event struct {
	Kind  EventKind
	At    grid.Coord
	Block grid.Block
}

type Rules struct {
	BufferRows         int
	Colors             int
	RainbowBlockChance float64
	SpawnDelay         time.Duration
}

// Controller owns the active piece of one session.
type Controller struct {
	grid  *grid.Grid
	rules Rules
	rng   *rand.Rand

	state    State
	piece    Piece
	lastX    int
	hasLast  bool
	lastMove time.Duration
	landedAt time.Duration
	landed   bool
}

// NewController creates a controller that spawns its first piece on the
// first tick.
func NewController(g *grid.Grid, rules Rules, rng *rand.Rand) *Controller {
	return &Controller{
		grid:  g,
		rules: rules,
		rng:   rng,
	}
}

func (c *Controller) State() State {
	return c.state
}

// Piece returns the active piece; ok is false when there is none.
func (c *Controller) Piece() (Piece, bool) {
	if c.state != Falling {
		return Piece{}, false
	}
	return c.piece, true
}

// Tick advances the controller to now. interval is the current fall interval.
func (c *Controller) Tick(now, interval time.Duration) Event {
	switch c.state {
	case NoPiece:
		if c.landed && now-c.landedAt < c.rules.SpawnDelay {
			return Event{}
		}
		c.spawn(now)
		return Event{Kind: Spawned, At: grid.Coord{X: c.piece.X, Y: c.piece.Y}, Block: c.piece.Block}
	case Falling:
		return c.fall(now, interval)
	default:
		return Event{}
	}
}

func (c *Controller) spawn(now time.Duration) {
	cols := c.grid.Cols()
	x := c.rng.IntN(cols)
	if c.hasLast && cols > 1 {
		for x == c.lastX {
			x = c.rng.IntN(cols)
		}
	}

	block := grid.Ordinary(c.rng.IntN(max(c.rules.Colors, 1)))
	if c.rng.Float64() < c.rules.RainbowBlockChance {
		block = grid.Wildcard
	}

	c.piece = Piece{X: x, Y: -c.rules.BufferRows, Block: block, Moving: true}
	c.lastX = x
	c.hasLast = true
	c.lastMove = now
	c.state = Falling
}

func (c *Controller) fall(now, interval time.Duration) Event {
	if now-c.lastMove < interval {
		return Event{}
	}

	p := &c.piece
	if !c.grid.IsOccupied(p.X, p.Y+1) {
		p.Y++
		c.lastMove = now
		return Event{Kind: Moved, At: grid.Coord{X: p.X, Y: p.Y}, Block: p.Block}
	}

	at := grid.Coord{X: p.X, Y: p.Y}
	p.Moving = false
	if p.Y < 0 {
		c.state = GameOver
		return Event{Kind: Ended, At: at, Block: p.Block}
	}

	c.grid.Place(p.X, p.Y, p.Block)
	c.state = NoPiece
	c.landed = true
	c.landedAt = now
	return Event{Kind: Landed, At: at, Block: p.Block}
}

// End forces the terminal state.
func (c *Controller) End() {
	c.piece.Moving = false
	c.state = GameOver
}

func (c *Controller) active() bool {
	return c.state == Falling && c.piece.Moving
}

// MoveLeft shifts the piece one column left when that cell is free.
func (c *Controller) MoveLeft() bool {
	return c.shift(-1)
}

// MoveRight shifts the piece one column right when that cell is free.
func (c *Controller) MoveRight() bool {
	return c.shift(1)
}

func (c *Controller) shift(dx int) bool {
	if !c.active() {
		return false
	}
	x := c.piece.X + dx
	if c.grid.IsOccupied(x, c.piece.Y) {
		return false
	}
	c.piece.X = x
	return true
}

// SetColumn moves the piece straight to column x, as a pointer does.
// Cells between the current and target column are not checked.
func (c *Controller) SetColumn(x int) bool {
	if !c.active() || x == c.piece.X {
		return false
	}
	if x < 0 || x >= c.grid.Cols() || c.grid.IsOccupied(x, c.piece.Y) {
		return false
	}
	c.piece.X = x
	return true
}

// SoftDrop moves the piece down one row immediately and restarts the fall
// timer. It never lands the piece.
func (c *Controller) SoftDrop(now time.Duration) bool {
	if !c.active() {
		return false
	}
	if c.grid.IsOccupied(c.piece.X, c.piece.Y+1) {
		return false
	}
	c.piece.Y++
	c.lastMove = now
	return true
}
