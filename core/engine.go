package core

// MoveFunc receives a move chosen by the engine, in the server's notation.
// The engine invokes it at its own pace, at most once per ply, from whatever
// goroutine it computes on.
type MoveFunc func(move string)

// StateUpdate is the authoritative game state forwarded to an engine: the
// full move history as one space-delimited string, both remaining clocks and
// increments in milliseconds, and the current status tag.
type StateUpdate struct {
	Moves     string
	WhiteTime int64
	BlackTime int64
	WhiteInc  int64
	BlackInc  int64
	Status    Status
}

// StateUpdateFrom converts an incremental state record into the engine-facing
// update.
func StateUpdateFrom(st GameState) StateUpdate {
	return StateUpdate{
		Moves:     st.Moves,
		WhiteTime: st.WhiteTime,
		BlackTime: st.BlackTime,
		WhiteInc:  st.WhiteInc,
		BlackInc:  st.BlackInc,
		Status:    st.Status,
	}
}

// Engine is the narrow interface to an external move-selection engine. One
// instance serves exactly one game. Its search strategy and board
// representation are opaque to the bot.
//
// Contract:
//   - Setup is called exactly once, before Start.
//   - Start hands over the move callback; the engine computes asynchronously
//     and may invoke the callback at any later time.
//   - UpdateState is called only after Start, in the order the corresponding
//     records were delivered for the game.
//   - Stop is called exactly once and must be safe to call while a move
//     callback is in flight.
type Engine interface {
	Setup(color Color, initialMs, incrementMs int64, variant string) error
	Start(onMove MoveFunc) error
	UpdateState(update StateUpdate) error
	Stop() error
}

// EngineFactory creates a fresh engine instance for one game. Called once per
// session, on receipt of the first full-state record.
type EngineFactory func(gameID string) (Engine, error)
