package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/plus3/rainbowdrop/config"
	"github.com/plus3/rainbowdrop/engine"
	"github.com/plus3/rainbowdrop/game"
	"github.com/plus3/rainbowdrop/leaderboard"
	"github.com/plus3/rainbowdrop/leaderboard/backend"
	"go.uber.org/zap"
)

const frameStep = 16 * time.Millisecond

func main() {
	games := flag.Int("games", 10, "Number of games the bot plays.")
	seed := flag.Uint64("seed", 1, "Seed of the first game; game i uses seed+i.")
	maxFrames := flag.Int("frames", 200000, "Frame limit per game.")
	scores := flag.String("scores", "", "Optional leaderboard file to record the bot's scores in.")
	verbose := flag.Bool("v", false, "Log session events at debug level.")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			log.Fatalf("Failed to build logger: %v", err)
		}
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Simulating %d games...\n", *games)
	report := &Report{
		Games:     *games,
		Seed:      *seed,
		MaxFrames: *maxFrames,
		FrameStep: frameStep,
	}

	startTime := time.Now()
	for i := range *games {
		res, ticks, err := runGame(cfg, *seed+uint64(i), *maxFrames, logger)
		if err != nil {
			log.Fatalf("Game %d failed: %v", i+1, err)
		}
		report.Results = append(report.Results, res)
		report.Score.Samples = append(report.Score.Samples, res.Score)
		report.Clears.Samples = append(report.Clears.Samples, res.Clears)
		report.GameTime.Samples = append(report.GameTime.Samples, res.Played)
		report.TickTime.Samples = append(report.TickTime.Samples, ticks...)
	}
	report.TotalTime = time.Since(startTime)
	report.Score.Finalize()
	report.Clears.Finalize()
	report.GameTime.Finalize()
	report.TickTime.Finalize()

	log.Println("Simulation finished.")

	if *scores != "" {
		if err := record(*scores, report.Results); err != nil {
			log.Fatalf("Failed to record scores: %v", err)
		}
	}

	fmt.Println("\n\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// runGame plays one bot game on a manual clock and returns its result and
// the wall time of every tick.
func runGame(cfg config.Config, seed uint64, maxFrames int, logger *zap.Logger) (GameResult, []time.Duration, error) {
	clock := engine.NewManualClock()
	s, err := game.New(cfg, "bot",
		game.WithClock(clock),
		game.WithRand(rand.New(rand.NewPCG(seed, seed))),
		game.WithLogger(logger.With(zap.Uint64("seed", seed))),
	)
	if err != nil {
		return GameResult{}, nil, err
	}

	res := GameResult{Seed: seed}
	ticks := make([]time.Duration, 0, 1024)
	bot := &Bot{}

	for res.Frames < maxFrames && !s.Over() {
		clock.Advance(frameStep)
		bot.Act(s)

		start := time.Now()
		s.Tick()
		ticks = append(ticks, time.Since(start))
		res.Frames++

		res.MaxCombo = max(res.MaxCombo, s.Snapshot().Combo)
	}

	v := s.Snapshot()
	res.Score = v.Score
	res.Clears = v.Clears
	res.Played = v.Now
	res.Over = v.Over
	return res, ticks, nil
}

func record(path string, results []GameResult) error {
	store, closeStore, err := backend.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, r := range results {
		entry := leaderboard.Entry{Name: "bot", Score: r.Score, When: time.Now()}
		if _, err := store.Record(ctx, entry); err != nil {
			return fmt.Errorf("record seed %d: %w", r.Seed, err)
		}
	}
	return nil
}
