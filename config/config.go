// Package config holds the tunables of a game session.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrInvalid is returned by Validate for configurations no session can run with.
var ErrInvalid = errors.New("invalid config")

// Config is consumed read-only by a session. Every field can be overridden
// from the environment with the RAINBOWDROP_ prefix.
type Config struct {
	Cols       int `env:"COLS"        envDefault:"6"`
	Rows       int `env:"ROWS"        envDefault:"10"`
	BlockSize  int `env:"BLOCK_SIZE"  envDefault:"40"`
	BufferRows int `env:"BUFFER_ROWS" envDefault:"2"`
	// Colors is the number of ordinary block kinds.
	Colors int `env:"COLORS" envDefault:"6"`

	SpawnDelay             time.Duration `env:"SPAWN_DELAY"              envDefault:"800ms"`
	InitialMoveInterval    time.Duration `env:"INITIAL_MOVE_INTERVAL"    envDefault:"400ms"`
	MinMoveInterval        time.Duration `env:"MIN_MOVE_INTERVAL"        envDefault:"100ms"`
	SpeedIncreaseThreshold int           `env:"SPEED_INCREASE_THRESHOLD" envDefault:"50"`
	SpeedIncreaseRate      float64       `env:"SPEED_INCREASE_RATE"      envDefault:"0.8"`

	FlashDuration time.Duration `env:"FLASH_DURATION" envDefault:"500ms"`
	FlashCount    int           `env:"FLASH_COUNT"    envDefault:"3"`
	// SettleDelay separates the end of a cascade from a re-check requested by
	// a piece that landed while the cascade was running.
	SettleDelay time.Duration `env:"SETTLE_DELAY" envDefault:"50ms"`

	RainbowBlockChance float64       `env:"RAINBOW_BLOCK_CHANCE" envDefault:"0.1"`
	BaseScore          int           `env:"BASE_SCORE"           envDefault:"10"`
	RainbowScore       int           `env:"RAINBOW_SCORE"        envDefault:"5"`
	SuperRainbowScore  int           `env:"SUPER_RAINBOW_SCORE"  envDefault:"20"`
	ComboTimeout       time.Duration `env:"COMBO_TIMEOUT"        envDefault:"1s"`
	ComboMultiplier    float64       `env:"COMBO_MULTIPLIER"     envDefault:"0.5"`
}

const envPrefix = "RAINBOWDROP_"

// Default returns the stock configuration, matching the envDefault tags.
func Default() Config {
	return Config{
		Cols:                   6,
		Rows:                   10,
		BlockSize:              40,
		BufferRows:             2,
		Colors:                 6,
		SpawnDelay:             800 * time.Millisecond,
		InitialMoveInterval:    400 * time.Millisecond,
		MinMoveInterval:        100 * time.Millisecond,
		SpeedIncreaseThreshold: 50,
		SpeedIncreaseRate:      0.8,
		FlashDuration:          500 * time.Millisecond,
		FlashCount:             3,
		SettleDelay:            50 * time.Millisecond,
		RainbowBlockChance:     0.1,
		BaseScore:              10,
		RainbowScore:           5,
		SuperRainbowScore:      20,
		ComboTimeout:           time.Second,
		ComboMultiplier:        0.5,
	}
}

// Load returns the stock configuration overridden by RAINBOWDROP_* variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the game rules cannot work with.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Cols > 0, "cols must be positive, got %d", c.Cols)
	check(c.Rows > 0, "rows must be positive, got %d", c.Rows)
	check(c.Cols >= 3 || c.Rows >= 3, "grid %dx%d cannot hold a triplet", c.Cols, c.Rows)
	check(c.BufferRows >= 1, "buffer rows must be at least 1, got %d", c.BufferRows)
	check(c.Colors >= 1 && c.Colors <= 10, "colors must be within 1..10, got %d", c.Colors)
	check(c.SpawnDelay >= 0, "spawn delay must not be negative")
	check(c.MinMoveInterval > 0, "min move interval must be positive")
	check(c.InitialMoveInterval >= c.MinMoveInterval, "initial move interval %s below minimum %s",
		c.InitialMoveInterval, c.MinMoveInterval)
	check(c.SpeedIncreaseThreshold > 0, "speed increase threshold must be positive")
	check(c.SpeedIncreaseRate > 0 && c.SpeedIncreaseRate <= 1, "speed increase rate must be within (0, 1], got %g",
		c.SpeedIncreaseRate)
	check(c.FlashDuration >= 0, "flash duration must not be negative")
	check(c.FlashCount > 0, "flash count must be positive")
	check(c.SettleDelay >= 0, "settle delay must not be negative")
	check(c.RainbowBlockChance >= 0 && c.RainbowBlockChance <= 1, "rainbow chance must be within [0, 1], got %g",
		c.RainbowBlockChance)
	check(c.ComboTimeout >= 0, "combo timeout must not be negative")
	check(c.ComboMultiplier >= 0, "combo multiplier must not be negative")

	return errors.Join(errs...)
}
