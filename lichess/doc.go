// Package lichess implements the platform client: the outbound API gateway
// (accept, decline, abort, move) and the inbound NDJSON event streams. One
// Client serves both roles so a single rate limiter paces every outbound
// call.
//
// The global event stream reconnects with exponential backoff on disconnect;
// a per-game stream does not — its closure is the session-end signal the
// runner expects.
package lichess
