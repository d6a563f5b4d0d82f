package arbiter

import (
	"github.com/greypawn/chessbot/core"
)

// Decline reasons reported alongside a negative verdict.
const (
	ReasonSessionLimit       = "session limit reached"
	ReasonUnsupportedVariant = "unsupported variant"
)

// Verdict is the outcome of a challenge decision.
type Verdict struct {
	Accept bool
	Reason string
}

// Arbiter applies the accept/decline policy.
type Arbiter struct {
	maxSessions int
	variants    map[string]struct{}
}

// New constructs an arbiter with the given concurrency bound and supported
// variant keys. A bound below one is clamped to one; an empty variant list
// defaults to the standard variant.
func New(maxSessions int, variants []string) *Arbiter {
	if maxSessions < 1 {
		maxSessions = 1
	}
	if len(variants) == 0 {
		variants = []string{"standard"}
	}
	set := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		set[v] = struct{}{}
	}
	return &Arbiter{maxSessions: maxSessions, variants: set}
}

// MaxSessions returns the configured concurrency bound.
func (a *Arbiter) MaxSessions() int { return a.maxSessions }

// AdmitsNewSession reports whether a new session fits under the bound. The
// same check gates challenge acceptance and game creation.
func (a *Arbiter) AdmitsNewSession(activeSessions int) bool {
	return activeSessions < a.maxSessions
}

// Decide returns the verdict for a challenge given the current count of
// active sessions: accept iff the bound admits a new session and the
// challenge's variant is supported.
func (a *Arbiter) Decide(ch *core.Challenge, activeSessions int) Verdict {
	if !a.AdmitsNewSession(activeSessions) {
		return Verdict{Reason: ReasonSessionLimit}
	}
	if _, ok := a.variants[ch.Variant.Key]; !ok {
		return Verdict{Reason: ReasonUnsupportedVariant}
	}
	return Verdict{Accept: true}
}
