// Package game wires the grid, piece controller, cascade resolver and score
// tracker into one playable session driven by a scheduler tick.
package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/plus3/rainbowdrop/cascade"
	"github.com/plus3/rainbowdrop/config"
	"github.com/plus3/rainbowdrop/engine"
	"github.com/plus3/rainbowdrop/grid"
	"github.com/plus3/rainbowdrop/leaderboard"
	"github.com/plus3/rainbowdrop/piece"
	"github.com/plus3/rainbowdrop/score"
	"go.uber.org/zap"
)

type options struct {
	clock  engine.Clock
	rng    *rand.Rand
	logger *zap.Logger
}

type Option func(*options)

// WithClock replaces the wall clock, typically with an engine.ManualClock.
func WithClock(c engine.Clock) Option {
	return func(o *options) { o.clock = c }
}

func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Session is one game from first spawn to game over. It is not safe for
// concurrent use; every call is expected on the tick goroutine.
type Session struct {
	cfg    config.Config
	player string
	log    *zap.Logger

	clock   engine.Clock
	sched   *engine.Scheduler
	grid    *grid.Grid
	score   *score.Tracker
	cascade *cascade.Resolver
	piece   *piece.Controller

	lastAward score.Award
	clears    int
	over      bool
}

// New validates cfg and builds a session for player.
func New(cfg config.Config, player string, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	e, err := leaderboard.Entry{Name: player}.Validate()
	if err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = engine.NewSystemClock()
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	s := &Session{
		cfg:    cfg,
		player: e.Name,
		log:    o.logger.With(zap.String("player", e.Name)),
		clock:  o.clock,
		sched:  engine.NewScheduler(o.clock),
		grid:   grid.New(cfg.Cols, cfg.Rows),
		score:  score.NewTracker(scoreRules(cfg)),
	}
	s.cascade = cascade.New(s.grid, s.sched, s.score, cascade.Options{
		FlashDuration: cfg.FlashDuration,
		SettleDelay:   cfg.SettleDelay,
		OnClear:       s.onClear,
		Logger:        s.log,
	})
	s.piece = piece.NewController(s.grid, pieceRules(cfg), o.rng)
	s.sched.Register(&pieceSystem{session: s})

	s.log.Info("session started",
		zap.Int("cols", cfg.Cols),
		zap.Int("rows", cfg.Rows),
		zap.Duration("fall_interval", cfg.InitialMoveInterval),
	)
	return s, nil
}

func scoreRules(cfg config.Config) score.Rules {
	return score.Rules{
		BaseScore:              cfg.BaseScore,
		RainbowScore:           cfg.RainbowScore,
		SuperRainbowScore:      cfg.SuperRainbowScore,
		ComboTimeout:           cfg.ComboTimeout,
		ComboMultiplier:        cfg.ComboMultiplier,
		InitialMoveInterval:    cfg.InitialMoveInterval,
		MinMoveInterval:        cfg.MinMoveInterval,
		SpeedIncreaseThreshold: cfg.SpeedIncreaseThreshold,
		SpeedIncreaseRate:      cfg.SpeedIncreaseRate,
	}
}

func pieceRules(cfg config.Config) piece.Rules {
	return piece.Rules{
		BufferRows:         cfg.BufferRows,
		Colors:             cfg.Colors,
		RainbowBlockChance: cfg.RainbowBlockChance,
		SpawnDelay:         cfg.SpawnDelay,
	}
}

// Tick runs one frame: due cascade timers, then the falling piece, then the
// work the piece deferred. A finished session ignores ticks.
func (s *Session) Tick() {
	if s.over {
		return
	}
	s.sched.Once()
}

// Handle applies a player intent. It reports whether the intent changed
// anything.
func (s *Session) Handle(in Intent) bool {
	if s.over {
		return false
	}
	switch in.Kind {
	case IntentMoveLeft:
		return s.piece.MoveLeft()
	case IntentMoveRight:
		return s.piece.MoveRight()
	case IntentSoftDrop:
		return s.piece.SoftDrop(s.clock.Now())
	case IntentSetColumn:
		return s.piece.SetColumn(in.Column)
	default:
		return false
	}
}

func (s *Session) onClear(c cascade.Clear) {
	s.lastAward = c.Award
	s.clears++
	if c.Award.Combo > 0 {
		s.log.Debug("combo",
			zap.Int("combo", c.Award.Combo),
			zap.Float64("multiplier", c.Award.Multiplier),
		)
	}
	if c.Award.SpeedUp {
		s.log.Debug("speed up",
			zap.Int("score", s.score.Score()),
			zap.Duration("fall_interval", c.Award.FallInterval),
		)
	}
}

func (s *Session) end(now time.Duration) {
	s.over = true
	s.piece.End()
	s.cascade.Stop()
	s.sched.Clear()
	s.log.Info("game over",
		zap.Int("score", s.score.Score()),
		zap.Int("clears", s.clears),
		zap.Duration("played", now),
	)
}

func (s *Session) Over() bool {
	return s.over
}

func (s *Session) Score() int {
	return s.score.Score()
}

func (s *Session) Player() string {
	return s.player
}

// Config returns the configuration the session was built with.
func (s *Session) Config() config.Config {
	return s.cfg
}

// Scheduler exposes the session scheduler for stats and debug tooling.
func (s *Session) Scheduler() *engine.Scheduler {
	return s.sched
}

// Result is the leaderboard entry for the session's current score.
func (s *Session) Result() leaderboard.Entry {
	return leaderboard.Entry{
		Name:  s.player,
		Score: s.score.Score(),
		When:  time.Now(),
	}
}

func (s *Session) Snapshot() View {
	st := s.score.State()
	p, hasPiece := s.piece.Piece()
	return View{
		Player:        s.player,
		Now:           s.clock.Now(),
		Grid:          s.grid.Clone(),
		Piece:         p,
		HasPiece:      hasPiece,
		Flashing:      s.cascade.Flashing(),
		Score:         st.Score,
		Combo:         st.Combo,
		FallInterval:  st.FallInterval,
		LastAward:     s.lastAward,
		LastClear:     st.LastClear,
		Clears:        s.clears,
		Cascade:       s.cascade.State(),
		Over:          s.over,
		flashDuration: s.cfg.FlashDuration,
		flashCount:    s.cfg.FlashCount,
	}
}
