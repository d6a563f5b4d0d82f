// Package arbiter decides whether inbound challenges are accepted or
// declined. The policy is deliberately small: a named concurrency bound and a
// supported-variant set, consulted both here and by game-creation handling so
// the two call sites cannot drift apart.
package arbiter
