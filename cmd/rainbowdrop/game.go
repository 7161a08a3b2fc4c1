package main

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/rainbowdrop/config"
	"github.com/plus3/rainbowdrop/debugui"
	debugui_ebiten "github.com/plus3/rainbowdrop/debugui/ebiten"
	"github.com/plus3/rainbowdrop/game"
	"github.com/plus3/rainbowdrop/leaderboard"
	"go.uber.org/zap"
)

const (
	margin     = 20
	panelWidth = 220
)

// Game adapts a session to ebiten.Game.
type Game struct {
	cfg    config.Config
	player string
	rng    *rand.Rand
	store  leaderboard.Store
	log    *zap.Logger

	session  *game.Session
	board    []leaderboard.Entry
	recorded bool
	pointer  game.Pointer

	imgui *debugui_ebiten.ImguiBackend
	timer *debugui.FrameTimer
}

func newGame(cfg config.Config, player string, seed uint64, store leaderboard.Store, logger *zap.Logger) (*Game, error) {
	g := &Game{
		cfg:     cfg,
		player:  player,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		store:   store,
		log:     logger,
	}
	if err := g.restart(); err != nil {
		return nil, err
	}

	board, err := store.Load(context.Background())
	if err != nil {
		logger.Warn("load leaderboard", zap.Error(err))
	}
	g.board = board
	return g, nil
}

func (g *Game) restart() error {
	s, err := game.New(g.cfg, g.player, game.WithRand(g.rng), game.WithLogger(g.log))
	if err != nil {
		return err
	}
	g.session = s
	g.recorded = false
	return nil
}

func (g *Game) attachDebug(overlay *debugui.Overlay, backend *debugui_ebiten.ImguiBackend) {
	g.imgui = backend
	g.timer = debugui.NewFrameTimer()

	sessionPanel := debugui.NewSessionPanel(12)
	perf := debugui.NewPerformanceStats("Session Scheduler", 120)
	overlay.Add(func() { sessionPanel.Render(g.session.Snapshot()) })
	overlay.Add(func() { perf.Render(g.session.Scheduler().GetStats(), g.timer.GetDeltaTime()) })
}

func (g *Game) screenSize() (int, int) {
	w := g.cfg.Cols*g.cfg.BlockSize + 2*margin + panelWidth
	h := g.cfg.Rows*g.cfg.BlockSize + 2*margin
	return w, h
}

func (g *Game) Update() error {
	var input debugui.InputState
	if g.imgui != nil {
		g.imgui.Update()
		input = g.imgui.Input()
	}

	if g.session.Over() {
		g.recordOnce()
		if !input.WantCaptureKeyboard && inpututil.IsKeyJustPressed(ebiten.KeyR) {
			return g.restart()
		}
		return nil
	}

	if !input.WantCaptureKeyboard {
		g.handleKeys()
	}
	if !input.WantCaptureMouse {
		g.handleMouse()
	}

	g.session.Tick()
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.pointer.Release()
		g.session.Handle(game.MoveLeft())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.pointer.Release()
		g.session.Handle(game.MoveRight())
	}
	if repeating(ebiten.KeyArrowDown) || repeating(ebiten.KeyS) {
		g.session.Handle(game.SoftDrop())
	}
}

// repeating reports a key press on its first tick and then every few ticks
// while the key is held.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d > 12 && d%3 == 0)
}

func (g *Game) handleMouse() {
	x, y := ebiten.CursorPosition()
	col := (x - margin) / g.cfg.BlockSize
	inside := x >= margin && col < g.cfg.Cols && y >= 0 && y < g.cfg.Rows*g.cfg.BlockSize+2*margin
	if inside {
		g.pointer.Hover(col)
	}
	if in, ok := g.pointer.Intent(g.session.Snapshot()); ok {
		g.session.Handle(in)
	}
}

func (g *Game) recordOnce() {
	if g.recorded {
		return
	}
	g.recorded = true

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	res := g.session.Result()
	board, err := g.store.Record(ctx, res)
	if err != nil {
		g.log.Error("record score", zap.Error(err), zap.Int("score", res.Score))
		return
	}
	g.board = board
	g.log.Info("score recorded", zap.Int("score", res.Score), zap.Int("board", len(board)))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.screenSize()
}
