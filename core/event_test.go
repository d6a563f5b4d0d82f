package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent_Challenge(t *testing.T) {
	line := []byte(`{"type":"challenge","challenge":{"id":"c1","rated":false,"speed":"blitz","variant":{"key":"standard","name":"Standard"},"challenger":{"id":"opp","name":"Opponent","rating":1800}}}`)

	ev, err := DecodeEvent(line)
	require.NoError(t, err)
	require.Equal(t, EventChallenge, ev.Type)
	require.NotNil(t, ev.Challenge)
	assert.Equal(t, "c1", ev.Challenge.ID)
	assert.Equal(t, "standard", ev.Challenge.Variant.Key)
	assert.Equal(t, "Opponent", ev.Challenge.Challenger.Name)
}

func TestDecodeEvent_GameStartAndFinish(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"type":"gameStart","game":{"id":"g1"}}`))
	require.NoError(t, err)
	require.Equal(t, EventGameStart, ev.Type)
	require.NotNil(t, ev.Game)
	assert.Equal(t, "g1", ev.Game.ID)

	ev, err = DecodeEvent([]byte(`{"type":"gameFinish","game":{"id":"g1"}}`))
	require.NoError(t, err)
	assert.Equal(t, EventGameFinish, ev.Type)
}

func TestDecodeEvent_GameFull(t *testing.T) {
	line := []byte(`{"type":"gameFull","id":"g1","white":{"id":"bot","name":"bot"},"black":{"id":"opp","name":"opp"},"clock":{"initial":300000,"increment":0},"variant":{"key":"standard"},"state":{"type":"gameState","moves":"","wtime":300000,"btime":300000,"winc":0,"binc":0,"status":"started"}}`)

	ev, err := DecodeEvent(line)
	require.NoError(t, err)
	require.Equal(t, EventGameFull, ev.Type)
	require.NotNil(t, ev.Full)
	assert.Equal(t, "g1", ev.Full.ID)
	assert.Equal(t, "bot", ev.Full.White.Name)
	assert.Equal(t, int64(300000), ev.Full.Clock.Initial)
	assert.Equal(t, StatusStarted, ev.Full.State.Status)
}

func TestDecodeEvent_GameState(t *testing.T) {
	line := []byte(`{"type":"gameState","moves":"e2e4 e7e5","wtime":295000,"btime":298000,"winc":0,"binc":0,"status":"started"}`)

	ev, err := DecodeEvent(line)
	require.NoError(t, err)
	require.NotNil(t, ev.State)
	assert.Equal(t, "e2e4 e7e5", ev.State.Moves)
	assert.Equal(t, int64(295000), ev.State.WhiteTime)
}

func TestDecodeEvent_UnknownTypeIsNotAnError(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"type":"challengeDeclined","challenge":{"id":"c1"}}`))
	require.NoError(t, err)
	assert.Equal(t, EventType("challengeDeclined"), ev.Type)
	assert.Nil(t, ev.Challenge)
	assert.Nil(t, ev.Game)
}

func TestDecodeEvent_Malformed(t *testing.T) {
	_, err := DecodeEvent([]byte(`{"type":`))
	assert.Error(t, err)
}

func TestStatusTerminal(t *testing.T) {
	terminal := []Status{
		StatusAborted, StatusMate, StatusResign, StatusStalemate,
		StatusTimeout, StatusDraw, StatusOutOfTime, StatusCheat,
		StatusNoStart, StatusUnknownFinish, StatusVariantEnd,
	}
	for _, st := range terminal {
		assert.True(t, st.Terminal(), "status %q should be terminal", st)
	}
	assert.False(t, StatusStarted.Terminal())
	assert.False(t, StatusCreated.Terminal())
	assert.False(t, Status("").Terminal())
}
