package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{in: "debug", want: LogLevelDebug},
		{in: "info", want: LogLevelInfo},
		{in: "", want: LogLevelInfo},
		{in: "WARN", want: LogLevelWarn},
		{in: "warning", want: LogLevelWarn},
		{in: "error", want: LogLevelError},
		{in: "verbose", want: LogLevelInfo, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestBotLoggerLevelsAndContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: LogLevelInfo, Format: "json", Output: &buf})

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger.WithComponent("runner").WithGame("g1").Info("session active", "color", "white")
	out := buf.String()
	assert.Contains(t, out, `"component":"runner"`)
	assert.Contains(t, out, `"game_id":"g1"`)
	assert.Contains(t, out, `"color":"white"`)
}
