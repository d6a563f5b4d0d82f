package testutil

import (
	"sync"

	"github.com/greypawn/chessbot/core"
)

// SetupCall records one Engine.Setup invocation.
type SetupCall struct {
	Color       core.Color
	InitialMs   int64
	IncrementMs int64
	Variant     string
}

// FakeEngine records lifecycle calls and lets tests emit moves through the
// callback handed to Start. Safe for concurrent access.
type FakeEngine struct {
	mu      sync.Mutex
	setups  []SetupCall
	updates []core.StateUpdate
	starts  int
	stops   int
	onMove  core.MoveFunc

	SetupErr  error
	StartErr  error
	UpdateErr error
	StopErr   error
}

var _ core.Engine = (*FakeEngine)(nil)

// Setup records the call.
func (e *FakeEngine) Setup(color core.Color, initialMs, incrementMs int64, variant string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setups = append(e.setups, SetupCall{Color: color, InitialMs: initialMs, IncrementMs: incrementMs, Variant: variant})
	return e.SetupErr
}

// Start captures the move callback.
func (e *FakeEngine) Start(onMove core.MoveFunc) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.starts++
	if e.StartErr == nil {
		e.onMove = onMove
	}
	return e.StartErr
}

// UpdateState records the update.
func (e *FakeEngine) UpdateState(update core.StateUpdate) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.updates = append(e.updates, update)
	return e.UpdateErr
}

// Stop records the call.
func (e *FakeEngine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stops++
	return e.StopErr
}

// EmitMove invokes the captured callback, as the real engine would from its
// worker goroutine. Returns false if Start has not been called.
func (e *FakeEngine) EmitMove(move string) bool {
	e.mu.Lock()
	onMove := e.onMove
	e.mu.Unlock()
	if onMove == nil {
		return false
	}
	onMove(move)
	return true
}

// Setups returns a copy of the recorded setup calls.
func (e *FakeEngine) Setups() []SetupCall {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]SetupCall, len(e.setups))
	copy(out, e.setups)
	return out
}

// Updates returns a copy of the recorded state updates.
func (e *FakeEngine) Updates() []core.StateUpdate {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]core.StateUpdate, len(e.updates))
	copy(out, e.updates)
	return out
}

// StartCount returns how many times Start was called.
func (e *FakeEngine) StartCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.starts
}

// StopCount returns how many times Stop was called.
func (e *FakeEngine) StopCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stops
}

// FakeEngineFactory hands out one FakeEngine per game id and remembers them
// for assertions.
type FakeEngineFactory struct {
	mu      sync.Mutex
	engines map[string]*FakeEngine

	// Err makes the factory fail when set.
	Err error
}

// NewFakeEngineFactory constructs an empty factory.
func NewFakeEngineFactory() *FakeEngineFactory {
	return &FakeEngineFactory{engines: make(map[string]*FakeEngine)}
}

// Factory is the core.EngineFactory the runner consumes.
func (f *FakeEngineFactory) Factory(gameID string) (core.Engine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	eng := &FakeEngine{}
	f.engines[gameID] = eng
	return eng, nil
}

// Engine returns the engine created for the game, if any.
func (f *FakeEngineFactory) Engine(gameID string) (*FakeEngine, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	eng, ok := f.engines[gameID]
	return eng, ok
}

// Created returns how many engines the factory has handed out.
func (f *FakeEngineFactory) Created() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.engines)
}
