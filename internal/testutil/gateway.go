package testutil

import (
	"context"
	"sync"

	"github.com/greypawn/chessbot/core"
)

// MoveCall records one submitted move.
type MoveCall struct {
	GameID string
	Move   string
}

// FakeGateway records every outbound call. Safe for concurrent access.
type FakeGateway struct {
	mu       sync.Mutex
	accepted []string
	declined []string
	aborted  []string
	moves    []MoveCall

	AcceptErr  error
	DeclineErr error
	AbortErr   error
	MoveErr    error
}

var _ core.Gateway = (*FakeGateway)(nil)

// AcceptChallenge records the challenge id.
func (g *FakeGateway) AcceptChallenge(_ context.Context, challengeID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.accepted = append(g.accepted, challengeID)
	return g.AcceptErr
}

// DeclineChallenge records the challenge id.
func (g *FakeGateway) DeclineChallenge(_ context.Context, challengeID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.declined = append(g.declined, challengeID)
	return g.DeclineErr
}

// AbortGame records the game id.
func (g *FakeGateway) AbortGame(_ context.Context, gameID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.aborted = append(g.aborted, gameID)
	return g.AbortErr
}

// SubmitMove records the move.
func (g *FakeGateway) SubmitMove(_ context.Context, gameID, move string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.moves = append(g.moves, MoveCall{GameID: gameID, Move: move})
	return g.MoveErr
}

// Accepted returns a copy of the accepted challenge ids.
func (g *FakeGateway) Accepted() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.accepted...)
}

// Declined returns a copy of the declined challenge ids.
func (g *FakeGateway) Declined() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.declined...)
}

// Aborted returns a copy of the aborted game ids.
func (g *FakeGateway) Aborted() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.aborted...)
}

// Moves returns a copy of the submitted moves.
func (g *FakeGateway) Moves() []MoveCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]MoveCall(nil), g.moves...)
}
