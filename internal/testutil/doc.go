// Package testutil provides shared test doubles and record builders: a
// scripted engine, a recording gateway, a channel-fed stream provider, and
// constructors for the stream records the orchestration tests feed through
// the runner.
package testutil
