package core

import (
	"encoding/json"
	"fmt"
)

// EventType classifies a stream record by its "type" field.
type EventType string

// Record types recognized on the global event stream and the per-game
// streams. Anything else is passed through with only the type set so routing
// can skip it without failing.
const (
	EventChallenge  EventType = "challenge"
	EventGameStart  EventType = "gameStart"
	EventGameFinish EventType = "gameFinish"
	EventGameFull   EventType = "gameFull"
	EventGameState  EventType = "gameState"
)

// Player identifies one side of a game or the sender of a challenge.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// Variant names the ruleset a game is played under.
type Variant struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Clock carries the initial time budget and per-move increment in
// milliseconds.
type Clock struct {
	Initial   int64 `json:"initial"`
	Increment int64 `json:"increment"`
}

// Challenge is an inbound game offer delivered on the global stream.
type Challenge struct {
	ID         string  `json:"id"`
	Variant    Variant `json:"variant"`
	Challenger Player  `json:"challenger"`
	Rated      bool    `json:"rated"`
	Speed      string  `json:"speed"`
}

// GameRef carries just the game identifier, as found on gameStart and
// gameFinish records.
type GameRef struct {
	ID string `json:"id"`
}

// GameState is an incremental state record: the cumulative move list in the
// server's notation plus both clocks and a status tag.
type GameState struct {
	Moves     string `json:"moves"`
	WhiteTime int64  `json:"wtime"`
	BlackTime int64  `json:"btime"`
	WhiteInc  int64  `json:"winc"`
	BlackInc  int64  `json:"binc"`
	Status    Status `json:"status"`
	Winner    string `json:"winner,omitempty"`
}

// GameFull is the first record on a per-game stream: the complete game
// configuration with the initial state embedded.
type GameFull struct {
	ID      string    `json:"id"`
	White   Player    `json:"white"`
	Black   Player    `json:"black"`
	Clock   Clock     `json:"clock"`
	Variant Variant   `json:"variant"`
	State   GameState `json:"state"`
}

// Event is one decoded stream record. Exactly one payload pointer is set for
// recognized types; unrecognized types carry only Type.
type Event struct {
	Type      EventType
	Challenge *Challenge
	Game      *GameRef
	Full      *GameFull
	State     *GameState
}

// DecodeEvent parses one NDJSON line into an Event. Unknown record types are
// not an error: the returned event carries the type and no payload so callers
// can skip it. A decode error means the line is not a usable record and
// should be dropped.
func DecodeEvent(line []byte) (Event, error) {
	var head struct {
		Type EventType `json:"type"`
	}
	if err := json.Unmarshal(line, &head); err != nil {
		return Event{}, fmt.Errorf("decode record envelope: %w", err)
	}

	ev := Event{Type: head.Type}
	switch head.Type {
	case EventChallenge:
		var body struct {
			Challenge Challenge `json:"challenge"`
		}
		if err := json.Unmarshal(line, &body); err != nil {
			return Event{}, fmt.Errorf("decode challenge record: %w", err)
		}
		ev.Challenge = &body.Challenge
	case EventGameStart, EventGameFinish:
		var body struct {
			Game GameRef `json:"game"`
		}
		if err := json.Unmarshal(line, &body); err != nil {
			return Event{}, fmt.Errorf("decode %s record: %w", head.Type, err)
		}
		ev.Game = &body.Game
	case EventGameFull:
		var full GameFull
		if err := json.Unmarshal(line, &full); err != nil {
			return Event{}, fmt.Errorf("decode full state record: %w", err)
		}
		ev.Full = &full
	case EventGameState:
		var state GameState
		if err := json.Unmarshal(line, &state); err != nil {
			return Event{}, fmt.Errorf("decode state record: %w", err)
		}
		ev.State = &state
	}
	return ev, nil
}
