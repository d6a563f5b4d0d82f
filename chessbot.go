// Package chessbot provides a high-level façade over the session
// orchestration runner and the platform client. Most applications interact
// with this package by:
//  1. Loading a config.Config from the environment
//  2. Supplying a core.EngineFactory for their move-selection engine
//  3. Calling New and running the returned runner until shutdown
//
// The façade delegates orchestration to runner.Runner while keeping setup
// ergonomics concise: it wires the lichess client, registry, arbiter and
// logger from one configuration value.
package chessbot

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/greypawn/chessbot/arbiter"
	"github.com/greypawn/chessbot/config"
	"github.com/greypawn/chessbot/core"
	"github.com/greypawn/chessbot/lichess"
	"github.com/greypawn/chessbot/logging"
	"github.com/greypawn/chessbot/registry"
	"github.com/greypawn/chessbot/runner"
)

// Options configures the façade.
type Options struct {
	// Logger defaults to a slog-backed logger built from the config's level
	// and format.
	Logger logging.Logger
	// HTTPClient overrides the platform client's transport, mainly for
	// tests.
	HTTPClient *http.Client
}

// New wires a ready-to-run bot from configuration and an engine factory.
func New(cfg *config.Config, engines core.EngineFactory, optFns ...func(o *Options)) (*runner.Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		logger = logging.New(&logging.Config{Level: level, Format: cfg.LogFormat})
	}

	client := lichess.New(cfg.Token, func(o *lichess.Options) {
		o.BaseURL = cfg.BaseURL
		o.MoveRetryLimit = cfg.MoveRetryLimit
		o.EventBufferSize = cfg.EventBufferSize
		o.Limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 4)
		o.Logger = logger
		if opts.HTTPClient != nil {
			o.HTTPClient = opts.HTTPClient
		}
	})

	return runner.New(cfg.Account, engines, client, client, func(o *runner.Options) {
		o.Registry = registry.New()
		o.Arbiter = arbiter.New(cfg.MaxConcurrentSessions, cfg.Variants)
		o.Logger = logger
		o.MoveBufferSize = cfg.MoveBufferSize
		o.GameIdleTimeout = cfg.GameIdleTimeout
	}), nil
}
