package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/polis.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`

	// RedisURL selects the Redis session repository. Empty keeps sessions in memory.
	RedisURL string `env:"REDIS_URL"`

	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1h"`
	MaxActionsPerTurn    int           `env:"MAX_ACTIONS_PER_TURN" envDefault:"3"`
	TurnTimeLimit        time.Duration `env:"TURN_TIME_LIMIT" envDefault:"120s"`

	// EventLogLimit caps the events kept per game. Zero keeps them all.
	EventLogLimit int    `env:"EVENT_LOG_LIMIT" envDefault:"0"`
	RNGSeed       uint64 `env:"RNG_SEED" envDefault:"0"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.MaxActionsPerTurn < 1 {
		return nil, fmt.Errorf("MAX_ACTIONS_PER_TURN must be positive, got %d", cfg.MaxActionsPerTurn)
	}
	if cfg.EventLogLimit < 0 {
		return nil, fmt.Errorf("EVENT_LOG_LIMIT must not be negative, got %d", cfg.EventLogLimit)
	}
	return &cfg, nil
}
