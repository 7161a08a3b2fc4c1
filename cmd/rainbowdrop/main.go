package main

import (
	"flag"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/rainbowdrop/config"
	"github.com/plus3/rainbowdrop/debugui"
	debugui_ebiten "github.com/plus3/rainbowdrop/debugui/ebiten"
	"github.com/plus3/rainbowdrop/engine"
	"github.com/plus3/rainbowdrop/leaderboard/backend"
	"go.uber.org/zap"
)

func main() {
	player := flag.String("player", "", "Player name recorded on the leaderboard (required).")
	scores := flag.String("scores", "", "Leaderboard file; a .db path selects SQLite, anything else JSON. Defaults to the user config dir.")
	debug := flag.Bool("debug", false, "Show the ImGui debug overlay and log at debug level.")
	seed := flag.Uint64("seed", 0, "Random seed for piece generation; 0 picks one.")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	store, closeStore, err := backend.Open(*scores)
	if err != nil {
		logger.Fatal("open leaderboard", zap.Error(err))
	}
	defer func() { _ = closeStore() }()

	if *seed == 0 {
		*seed = rand.Uint64()
	}
	logger.Info("starting", zap.Uint64("seed", *seed), zap.String("scores", *scores))

	g, err := newGame(cfg, *player, *seed, store, logger)
	if err != nil {
		logger.Fatal("start game", zap.Error(err))
	}

	width, height := g.screenSize()
	if *debug {
		overlay := debugui.NewOverlay()
		clock := engine.NewSystemClock()
		g.attachDebug(overlay, debugui_ebiten.New("rainbowdrop (debug)", width+480, height+240, overlay, clock))
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle("rainbowdrop")
	}

	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("run game", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
