// Package logging provides a minimal logging interface and adapters for the
// bot.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the runner and the platform client use for
// observability. This package includes:
//
//   - Logger interface for dependency injection
//   - BotLogger wrapping Go's structured logging with contextual helpers
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// The design intentionally keeps the interface minimal so callers can plug
// any structured logger while the built-in slog-backed implementation covers
// the common case.
package logging
