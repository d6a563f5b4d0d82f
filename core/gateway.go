package core

import "context"

// Gateway performs the outbound platform calls. Each call is a single
// authenticated request keyed by a challenge or game identifier.
//
// Retry semantics are part of the implementation contract: SubmitMove retries
// transient failures up to a fixed bound before reporting the move lost;
// accept, decline and abort are single-shot — the remote side re-offers,
// times out or force-aborts on its own, so blind retries risk double-acting.
type Gateway interface {
	AcceptChallenge(ctx context.Context, challengeID string) error
	DeclineChallenge(ctx context.Context, challengeID string) error
	AbortGame(ctx context.Context, gameID string) error
	SubmitMove(ctx context.Context, gameID, move string) error
}
