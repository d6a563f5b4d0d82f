package testutil

import "github.com/greypawn/chessbot/core"

// ChallengeEvent builds a challenge record.
func ChallengeEvent(id, variant string) core.Event {
	return core.Event{
		Type: core.EventChallenge,
		Challenge: &core.Challenge{
			ID:      id,
			Variant: core.Variant{Key: variant},
		},
	}
}

// GameStartEvent builds a gameStart record.
func GameStartEvent(gameID string) core.Event {
	return core.Event{Type: core.EventGameStart, Game: &core.GameRef{ID: gameID}}
}

// GameFinishEvent builds a gameFinish record.
func GameFinishEvent(gameID string) core.Event {
	return core.Event{Type: core.EventGameFinish, Game: &core.GameRef{ID: gameID}}
}

// GameFullEvent builds a full-state record with an embedded initial state in
// the started status.
func GameFullEvent(gameID, white, black string, initialMs, incrementMs int64) core.Event {
	return core.Event{
		Type: core.EventGameFull,
		Full: &core.GameFull{
			ID:      gameID,
			White:   core.Player{ID: white, Name: white},
			Black:   core.Player{ID: black, Name: black},
			Clock:   core.Clock{Initial: initialMs, Increment: incrementMs},
			Variant: core.Variant{Key: "standard"},
			State: core.GameState{
				WhiteTime: initialMs,
				BlackTime: initialMs,
				WhiteInc:  incrementMs,
				BlackInc:  incrementMs,
				Status:    core.StatusStarted,
			},
		},
	}
}

// GameStateEvent builds an incremental state record.
func GameStateEvent(moves string, status core.Status) core.Event {
	return core.Event{
		Type: core.EventGameState,
		State: &core.GameState{
			Moves:     moves,
			WhiteTime: 295000,
			BlackTime: 298000,
			Status:    status,
		},
	}
}
