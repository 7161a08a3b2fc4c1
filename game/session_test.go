package game

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/plus3/rainbowdrop/cascade"
	"github.com/plus3/rainbowdrop/config"
	"github.com/plus3/rainbowdrop/engine"
	"github.com/plus3/rainbowdrop/grid"
	"github.com/plus3/rainbowdrop/leaderboard"
	"github.com/plus3/rainbowdrop/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestSession(t *testing.T, cfg config.Config) (*Session, *engine.ManualClock) {
	t.Helper()
	clock := engine.NewManualClock()
	s, err := New(cfg, "tester",
		WithClock(clock),
		WithRand(rand.New(rand.NewPCG(7, 11))),
		WithLogger(zaptest.NewLogger(t)),
	)
	require.NoError(t, err)
	return s, clock
}

// dropAt waits for the next piece, steers it to column x and lets it land.
func dropAt(t *testing.T, s *Session, clock *engine.ManualClock, x int) {
	t.Helper()
	for i := 0; !s.Snapshot().HasPiece; i++ {
		require.Less(t, i, 1000, "piece never spawned")
		clock.Advance(10 * time.Millisecond)
		s.Tick()
	}
	s.Handle(SetColumn(x))
	for s.Handle(SoftDrop()) {
	}
	clock.Advance(s.Snapshot().FallInterval)
	s.Tick()
	require.False(t, s.Snapshot().HasPiece, "piece should have landed")
}

func TestNewValidates(t *testing.T) {
	cfg := config.Default()
	cfg.Cols = 0

	_, err := New(cfg, "tester")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = New(config.Default(), "  ")
	assert.ErrorIs(t, err, leaderboard.ErrNameRequired)
}

func TestLandingTriggersClear(t *testing.T) {
	cfg := config.Default()
	cfg.Colors = 1
	cfg.RainbowBlockChance = 0
	cfg.SpeedIncreaseThreshold = 10
	s, clock := newTestSession(t, cfg)

	dropAt(t, s, clock, 0)
	dropAt(t, s, clock, 1)
	assert.Equal(t, cascade.Idle, s.Snapshot().Cascade)

	dropAt(t, s, clock, 2)

	v := s.Snapshot()
	assert.Equal(t, cascade.Flashing, v.Cascade)
	require.Len(t, v.Flashing, 3)
	for _, fb := range v.Flashing {
		assert.Equal(t, 9, fb.Y)
		assert.True(t, v.Visible(fb))
	}
	assert.Equal(t, 3, v.Grid.Count(), "blocks stay on the grid while flashing")

	clock.Advance(cfg.FlashDuration)
	s.Tick()

	v = s.Snapshot()
	assert.Equal(t, cascade.Idle, v.Cascade)
	assert.Equal(t, 10, v.Score)
	assert.Equal(t, 0, v.Grid.Count())
	assert.Equal(t, 1, v.Clears)
	assert.Equal(t, 10, v.LastAward.Points)
	assert.True(t, v.LastAward.SpeedUp)
	assert.Equal(t, 320*time.Millisecond, v.FallInterval)
	assert.Equal(t, []string{"speed up!"}, v.Notices())

	clock.Advance(noticeDuration)
	assert.Empty(t, s.Snapshot().Notices(), "notices expire")
}

func TestNotices(t *testing.T) {
	tests := []struct {
		name string
		view View
		want []string
	}{
		{"no clear yet", View{Now: time.Second}, nil},
		{"plain clear", View{Now: time.Second, Clears: 1, LastClear: time.Second, LastAward: score.Award{Points: 10}}, nil},
		{
			"combo",
			View{Now: 1200 * time.Millisecond, Clears: 2, LastClear: time.Second, LastAward: score.Award{Combo: 2, Multiplier: 2}},
			[]string{"2 combo! x2.0"},
		},
		{
			"combo and speed up",
			View{Now: time.Second, Clears: 2, LastClear: time.Second, LastAward: score.Award{Combo: 1, Multiplier: 1.5, SpeedUp: true}},
			[]string{"1 combo! x1.5", "speed up!"},
		},
		{
			"expired",
			View{Now: 3 * time.Second, Clears: 2, LastClear: time.Second, LastAward: score.Award{Combo: 1, Multiplier: 1.5}},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.Notices())
		})
	}
}

func TestSnapshotDoesNotAliasGrid(t *testing.T) {
	s, _ := newTestSession(t, config.Default())

	v := s.Snapshot()
	v.Grid.Place(0, 0, grid.Wildcard)

	assert.Equal(t, 0, s.grid.Count())
}

func TestHandleMovesPiece(t *testing.T) {
	s, _ := newTestSession(t, config.Default())
	assert.False(t, s.Handle(MoveLeft()), "no piece yet")

	s.Tick()
	require.True(t, s.Snapshot().HasPiece)
	require.True(t, s.Handle(SetColumn(0)) || s.Snapshot().Piece.X == 0)

	assert.False(t, s.Handle(MoveLeft()))
	assert.True(t, s.Handle(MoveRight()))
	assert.Equal(t, 1, s.Snapshot().Piece.X)
	assert.False(t, s.Handle(Intent{Kind: IntentKind(99)}))
}

func TestGameOverFreezesSession(t *testing.T) {
	cfg := config.Default()
	cfg.Cols = 1
	cfg.Rows = 3
	cfg.Colors = 10
	cfg.RainbowBlockChance = 0
	s, clock := newTestSession(t, cfg)

	for i := 0; !s.Over(); i++ {
		require.Less(t, i, 100000, "game never ended")
		clock.Advance(100 * time.Millisecond)
		s.Tick()
	}

	v := s.Snapshot()
	assert.False(t, v.HasPiece)
	assert.True(t, v.Over)
	assert.Equal(t, 3, v.Grid.Count())
	assert.Zero(t, s.Scheduler().Pending())

	clock.Advance(time.Hour)
	s.Tick()
	assert.False(t, s.Handle(SoftDrop()))
	assert.Equal(t, v.Grid.String(), s.Snapshot().Grid.String())
	assert.Equal(t, v.Score, s.Snapshot().Score)

	res := s.Result()
	assert.Equal(t, "tester", res.Name)
	assert.Equal(t, v.Score, res.Score)
}

func TestGameOverStopsCascade(t *testing.T) {
	cfg := config.Default()
	cfg.Cols = 3
	cfg.Rows = 3
	cfg.FlashDuration = 2 * time.Second
	s, clock := newTestSession(t, cfg)

	s.grid.Place(0, 0, grid.Ordinary(2))
	s.grid.Place(1, 0, grid.Ordinary(3))
	s.grid.Place(2, 0, grid.Ordinary(4))
	s.grid.Place(0, 1, grid.Ordinary(5))
	s.grid.Place(1, 1, grid.Ordinary(6))
	s.grid.Place(2, 1, grid.Ordinary(7))
	for x := range 3 {
		s.grid.Place(x, 2, grid.Ordinary(1))
	}

	s.cascade.Trigger()
	require.Equal(t, cascade.Flashing, s.cascade.State())

	for i := 0; !s.Over(); i++ {
		require.Less(t, i, 10, "game never ended")
		s.Tick()
		clock.Advance(cfg.InitialMoveInterval)
	}
	require.Less(t, clock.Now(), cfg.FlashDuration)

	clock.Advance(time.Minute)
	s.Tick()

	assert.Equal(t, 0, s.Score())
	assert.Equal(t, cascade.Idle, s.cascade.State())
	assert.Empty(t, s.Snapshot().Flashing)
	assert.Equal(t, 9, s.grid.Count(), "the flashed row is never cleared")
}

func TestSchedulerStatsNamePieceSystem(t *testing.T) {
	s, _ := newTestSession(t, config.Default())
	s.Tick()

	stats := s.Scheduler().GetStats()

	require.Len(t, stats.Systems, 1)
	assert.Equal(t, "pieceSystem", stats.Systems[0].Name)
	assert.EqualValues(t, 1, stats.Systems[0].ExecutionCount)
}
