package registry

import (
	"errors"
	"sync"

	"github.com/greypawn/chessbot/core"
)

var (
	// ErrSessionExists is returned by Insert when a session with the same
	// game identifier is already active.
	ErrSessionExists = errors.New("session already exists")
)

// Registry is an in-memory session registry safe for concurrent access.
// Constructed at process start and passed by handle to the runner; never
// accessed as ambient state.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*core.Session
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{sessions: make(map[string]*core.Session)}
}

// Insert registers a session, failing if its identifier is already present.
// Check and insert happen under one lock so two concurrent game-start records
// for the same identifier cannot both create a session.
func (r *Registry) Insert(sess *core.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sess.ID()]; ok {
		return ErrSessionExists
	}
	r.sessions[sess.ID()] = sess
	return nil
}

// Get returns the active session for the identifier, if any.
func (r *Registry) Get(id string) (*core.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

// Remove deletes and returns the session for the identifier. The second
// return is false when the identifier is not active, which is how duplicate
// or late teardown attempts are detected and dropped.
func (r *Registry) Remove(id string) (*core.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	delete(r.sessions, id)
	return sess, true
}

// Count returns the number of active sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// IDs returns the identifiers of all active sessions, for shutdown sweeps.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}
