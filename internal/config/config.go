package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every tunable of a Pig session
type Config struct {
	// Game rules
	WinningScore    int           `env:"PIG_WINNING_SCORE" envDefault:"140"`
	InstantWinScore int           `env:"PIG_INSTANT_WIN_SCORE" envDefault:"100"`
	Timed           bool          `env:"PIG_TIMED" envDefault:"true"`
	TimeLimit       time.Duration `env:"PIG_TIME_LIMIT" envDefault:"60s"`

	// Computer players
	ComputerTarget    int  `env:"PIG_COMPUTER_TARGET" envDefault:"100"`
	ComputerThreshold int  `env:"PIG_COMPUTER_THRESHOLD" envDefault:"25"`
	AutoComputer      bool `env:"PIG_AUTO_COMPUTER" envDefault:"false"`

	// ScoreMode is "live" or "banked"
	ScoreMode string `env:"PIG_SCORE_MODE" envDefault:"live"`

	// Dice
	Seed       int64 `env:"PIG_SEED" envDefault:"0"`
	RandomSeed bool  `env:"PIG_RANDOM_SEED" envDefault:"false"`

	// Optional Redis store for the live game state
	RedisAddr     string        `env:"PIG_REDIS_ADDR"`
	RedisPassword string        `env:"PIG_REDIS_PASSWORD"`
	StateTTL      time.Duration `env:"PIG_STATE_TTL" envDefault:"1h"`

	LogLevel string `env:"PIG_LOG_LEVEL" envDefault:"warn"`
}

// Load reads an optional .env file and then parses the environment
func Load(envFiles ...string) (*Config, error) {
	if err := loadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values that the game cannot run without
func (c *Config) Validate() error {
	if c.WinningScore <= 0 {
		return fmt.Errorf("PIG_WINNING_SCORE must be positive, got %d", c.WinningScore)
	}
	if c.InstantWinScore <= 0 {
		return fmt.Errorf("PIG_INSTANT_WIN_SCORE must be positive, got %d", c.InstantWinScore)
	}
	if c.Timed && c.TimeLimit <= 0 {
		return fmt.Errorf("PIG_TIME_LIMIT must be positive when timed, got %s", c.TimeLimit)
	}
	if c.ComputerThreshold <= 0 {
		return fmt.Errorf("PIG_COMPUTER_THRESHOLD must be positive, got %d", c.ComputerThreshold)
	}
	if c.ScoreMode != "live" && c.ScoreMode != "banked" {
		return fmt.Errorf("PIG_SCORE_MODE must be live or banked, got %q", c.ScoreMode)
	}
	return nil
}

// loadDotEnv loads the given files, or ".env" when none are named.
// Missing files are fine, values already in the environment win.
func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}
