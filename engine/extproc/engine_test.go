package extproc

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greypawn/chessbot/core"
)

// echoEngine answers every state message with a fixed move.
const echoEngine = `while read line; do
  case "$line" in
    *'"op":"state"'*) echo '{"move":"e2e4"}' ;;
    *'"op":"quit"'*) exit 0 ;;
  esac
done`

func newShellEngine(t *testing.T) core.Engine {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-based test engine requires a POSIX shell")
	}
	factory := Factory("/bin/sh", "-c", echoEngine)
	eng, err := factory("g1")
	require.NoError(t, err)
	return eng
}

func TestEngineRoundTrip(t *testing.T) {
	eng := newShellEngine(t)
	require.NoError(t, eng.Setup(core.ColorWhite, 300000, 0, "standard"))

	moves := make(chan string, 4)
	require.NoError(t, eng.Start(func(move string) { moves <- move }))
	require.NoError(t, eng.UpdateState(core.StateUpdate{Moves: "", Status: core.StatusStarted}))

	select {
	case move := <-moves:
		assert.Equal(t, "e2e4", move)
	case <-time.After(5 * time.Second):
		t.Fatal("no move from engine process")
	}

	assert.NoError(t, eng.Stop())
}

func TestStopIsIdempotent(t *testing.T) {
	eng := newShellEngine(t)
	require.NoError(t, eng.Setup(core.ColorBlack, 60000, 1000, "standard"))
	require.NoError(t, eng.Start(func(string) {}))

	assert.NoError(t, eng.Stop())
	assert.NoError(t, eng.Stop())
}

func TestCallsBeforeSetup(t *testing.T) {
	factory := Factory("/bin/true")
	eng, err := factory("g1")
	require.NoError(t, err)

	assert.ErrorIs(t, eng.Start(func(string) {}), ErrNotRunning)
	assert.ErrorIs(t, eng.UpdateState(core.StateUpdate{}), ErrNotRunning)
}

func TestSetupFailsForMissingBinary(t *testing.T) {
	factory := Factory("/nonexistent/engine-binary")
	eng, err := factory("g1")
	require.NoError(t, err)

	assert.Error(t, eng.Setup(core.ColorWhite, 0, 0, "standard"))
}
