// Package config loads the bot configuration from the environment. Account
// identity and the API credential are read once at process start; everything
// else has defaults matching the reference policy (one concurrent game,
// standard variant only, ten move submission attempts).
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration.
type Config struct {
	// Token is the platform API credential.
	Token string `env:"LICHESS_TOKEN,required,notEmpty"`
	// Account is the bot's account name, used to derive the assigned color.
	Account string `env:"LICHESS_ACCOUNT,required,notEmpty"`
	// BaseURL is the API root.
	BaseURL string `env:"LICHESS_BASE_URL" envDefault:"https://lichess.org/api"`

	// MaxConcurrentSessions bounds simultaneous games. The challenge
	// arbiter and game-creation handling both consult this value.
	MaxConcurrentSessions int `env:"BOT_MAX_CONCURRENT_GAMES" envDefault:"1"`
	// Variants lists accepted ruleset keys.
	Variants []string `env:"BOT_VARIANTS" envDefault:"standard"`

	// MoveRetryLimit bounds immediate retries of a move submission.
	MoveRetryLimit int `env:"BOT_MOVE_RETRY_LIMIT" envDefault:"10"`
	// RequestsPerSecond paces outbound API calls.
	RequestsPerSecond float64 `env:"BOT_REQUESTS_PER_SECOND" envDefault:"8"`

	// EventBufferSize sets stream channel buffering.
	EventBufferSize int `env:"BOT_EVENT_BUFFER_SIZE" envDefault:"64"`
	// MoveBufferSize sets per-session move channel buffering.
	MoveBufferSize int `env:"BOT_MOVE_BUFFER_SIZE" envDefault:"8"`
	// GameIdleTimeout closes a session whose stream stays silent this long.
	// Zero disables the check.
	GameIdleTimeout time.Duration `env:"BOT_GAME_IDLE_TIMEOUT" envDefault:"0"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"BOT_LOG_LEVEL" envDefault:"info"`
	// LogFormat is text or json.
	LogFormat string `env:"BOT_LOG_FORMAT" envDefault:"text"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks invariants the env tags cannot express.
func (c *Config) Validate() error {
	if c.MaxConcurrentSessions < 1 {
		return fmt.Errorf("BOT_MAX_CONCURRENT_GAMES must be at least 1, got %d", c.MaxConcurrentSessions)
	}
	if c.MoveRetryLimit < 1 {
		return fmt.Errorf("BOT_MOVE_RETRY_LIMIT must be at least 1, got %d", c.MoveRetryLimit)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("BOT_REQUESTS_PER_SECOND must be positive, got %v", c.RequestsPerSecond)
	}
	if len(c.Variants) == 0 {
		return fmt.Errorf("BOT_VARIANTS must name at least one variant")
	}
	return nil
}
