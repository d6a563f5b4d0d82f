package core

import "context"

// StreamProvider opens the inbound event streams.
//
// Both methods return a channel that delivers decoded records in the order
// the stream delivered them. The channel is closed when the stream ends or
// the context is canceled; malformed records are dropped by the provider and
// never surface.
//
// The global event stream is expected to outlive transient disconnects: the
// provider reconnects internally and only closes the channel on context
// cancellation or permanent failure. A per-game stream performs no
// reconnection — its closure means the game is over as far as the session is
// concerned.
type StreamProvider interface {
	OpenEventStream(ctx context.Context) (<-chan Event, error)
	OpenGameStream(ctx context.Context, gameID string) (<-chan Event, error)
}
