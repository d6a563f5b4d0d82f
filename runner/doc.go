// Package runner is the session orchestration layer. One Runner consumes the
// global event stream, routes records to the challenge arbiter or to
// session handling, and owns every session's lifecycle: per-game stream
// consumption, engine setup on the first full-state record, in-order state
// forwarding, asynchronous move relay, and exactly-once teardown.
//
// Concurrency model: the global stream is consumed by a single goroutine, so
// challenge decisions and session creation are serialized against each
// other. Each session gets its own goroutine that consumes the per-game
// stream in delivery order, plus a relay goroutine that drains the engine's
// move channel into the gateway. Outbound calls never run on a stream
// consumer goroutine, so a slow network call cannot stall ingestion.
package runner
