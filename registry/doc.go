// Package registry holds the authoritative mapping from game identifier to
// session. It is the single source of truth for "is a game active": session
// creation races and late records for torn-down games are both resolved by
// its atomic check-then-insert and check-then-remove operations.
package registry
