package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LICHESS_TOKEN", "tok")
	t.Setenv("LICHESS_ACCOUNT", "bot")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://lichess.org/api", cfg.BaseURL)
	assert.Equal(t, 1, cfg.MaxConcurrentSessions)
	assert.Equal(t, []string{"standard"}, cfg.Variants)
	assert.Equal(t, 10, cfg.MoveRetryLimit)
	assert.Equal(t, time.Duration(0), cfg.GameIdleTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LICHESS_TOKEN", "tok")
	t.Setenv("LICHESS_ACCOUNT", "bot")
	t.Setenv("BOT_MAX_CONCURRENT_GAMES", "3")
	t.Setenv("BOT_VARIANTS", "standard,chess960")
	t.Setenv("BOT_GAME_IDLE_TIMEOUT", "2m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxConcurrentSessions)
	assert.Equal(t, []string{"standard", "chess960"}, cfg.Variants)
	assert.Equal(t, 2*time.Minute, cfg.GameIdleTimeout)
}

func TestLoadMissingCredential(t *testing.T) {
	t.Setenv("LICHESS_TOKEN", "")
	t.Setenv("LICHESS_ACCOUNT", "bot")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Setenv("LICHESS_TOKEN", "tok")
	t.Setenv("LICHESS_ACCOUNT", "bot")
	t.Setenv("BOT_MOVE_RETRY_LIMIT", "0")

	_, err := Load()
	assert.ErrorContains(t, err, "BOT_MOVE_RETRY_LIMIT")
}
