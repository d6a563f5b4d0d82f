package arbiter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greypawn/chessbot/core"
)

func challenge(variant string) *core.Challenge {
	return &core.Challenge{ID: "c1", Variant: core.Variant{Key: variant}}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		bound   int
		accepts []string
		variant string
		active  int
		accept  bool
		reason  string
	}{
		{name: "accept with free slot", bound: 1, variant: "standard", active: 0, accept: true},
		{name: "decline at bound", bound: 1, variant: "standard", active: 1, reason: ReasonSessionLimit},
		{name: "decline above bound", bound: 1, variant: "standard", active: 2, reason: ReasonSessionLimit},
		{name: "decline unsupported variant", bound: 1, variant: "atomic", active: 0, reason: ReasonUnsupportedVariant},
		{name: "bound wins over variant", bound: 1, variant: "atomic", active: 1, reason: ReasonSessionLimit},
		{name: "larger bound", bound: 3, variant: "standard", active: 2, accept: true},
		{name: "extra variant allowed", bound: 1, accepts: []string{"standard", "chess960"}, variant: "chess960", active: 0, accept: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(tt.bound, tt.accepts)
			v := a.Decide(challenge(tt.variant), tt.active)
			assert.Equal(t, tt.accept, v.Accept)
			assert.Equal(t, tt.reason, v.Reason)
		})
	}
}

// accept ⟺ active < bound ∧ variant supported, across the whole grid.
func TestDecideProperty(t *testing.T) {
	a := New(2, []string{"standard"})
	for active := 0; active <= 4; active++ {
		for _, variant := range []string{"standard", "crazyhouse"} {
			v := a.Decide(challenge(variant), active)
			want := active < 2 && variant == "standard"
			assert.Equal(t, want, v.Accept, "active=%d variant=%s", active, variant)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	a := New(0, nil)
	assert.Equal(t, 1, a.MaxSessions())
	assert.True(t, a.Decide(challenge("standard"), 0).Accept)
	assert.False(t, a.Decide(challenge("horde"), 0).Accept)
}
