package core

import (
	"context"
	"sync"
	"time"
)

// SessionState tracks where a session is in its lifecycle.
type SessionState int

const (
	// SessionCreated: the game-start record was observed and policy admitted
	// the session, but its stream is not being consumed yet.
	SessionCreated SessionState = iota
	// SessionAwaitingFirstState: the per-game stream is open, no full-state
	// record has been processed.
	SessionAwaitingFirstState
	// SessionActive: the engine is set up and receives every state record.
	SessionActive
	// SessionFinished: torn down; no further records are processed.
	SessionFinished
)

// String returns the state name.
func (s SessionState) String() string {
	switch s {
	case SessionCreated:
		return "created"
	case SessionAwaitingFirstState:
		return "awaiting-first-state"
	case SessionActive:
		return "active"
	case SessionFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Session is the orchestration state for one active game, from creation to
// teardown. It is safe for concurrent access.
//
// Contract:
//   - Activate succeeds at most once; the engine is owned exclusively by the
//     session from that point.
//   - Finish runs its teardown hook exactly once, cancels the per-game stream
//     first, and is safe to call from multiple goroutines.
type Session struct {
	id      string
	cancel  context.CancelFunc
	created time.Time

	mu     sync.RWMutex
	state  SessionState
	color  Color
	engine Engine

	finishOnce sync.Once
}

// NewSession creates a session in the created state. cancel closes the
// session's per-game stream and is invoked during Finish.
func NewSession(id string, cancel context.CancelFunc) *Session {
	return &Session{id: id, cancel: cancel, created: time.Now()}
}

// ID returns the server-assigned game identifier.
func (s *Session) ID() string { return s.id }

// Created returns the session creation time.
func (s *Session) Created() time.Time { return s.created }

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// AwaitFirstState marks the per-game stream as open.
func (s *Session) AwaitFirstState() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SessionCreated {
		s.state = SessionAwaitingFirstState
	}
}

// Activate records the assigned color and engine and moves the session to
// active. It returns false if the session already completed setup or is
// finished, in which case the caller still owns the engine it passed in.
func (s *Session) Activate(color Color, engine Engine) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionAwaitingFirstState {
		return false
	}
	s.state = SessionActive
	s.color = color
	s.engine = engine
	return true
}

// SetupComplete reports whether the first full-state record has been
// processed and the engine initialized.
func (s *Session) SetupComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine != nil
}

// Color returns the side this session plays. Valid once SetupComplete.
func (s *Session) Color() Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.color
}

// Engine returns the engine owned by this session, or nil before setup.
func (s *Session) Engine() Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// Finish tears the session down exactly once: the stream context is canceled
// so no further records are consumed, then fn runs (engine stop, logging).
// Returns true if this call performed the teardown.
func (s *Session) Finish(fn func()) bool {
	ran := false
	s.finishOnce.Do(func() {
		s.mu.Lock()
		s.state = SessionFinished
		s.mu.Unlock()
		if s.cancel != nil {
			s.cancel()
		}
		if fn != nil {
			fn()
		}
		ran = true
	})
	return ran
}
