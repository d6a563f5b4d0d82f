package testutil

import (
	"context"
	"sync"

	"github.com/greypawn/chessbot/core"
)

// FakeStreams implements core.StreamProvider over channels tests feed
// directly. Per-game channels respect context cancellation the way the real
// provider does: the consumer-facing channel closes when the game context is
// canceled or the feed side is closed.
type FakeStreams struct {
	mu     sync.Mutex
	events chan core.Event
	games  map[string]chan core.Event

	// OpenGameErr makes OpenGameStream fail when set.
	OpenGameErr error
}

var _ core.StreamProvider = (*FakeStreams)(nil)

// NewFakeStreams constructs a provider with a buffered global feed.
func NewFakeStreams() *FakeStreams {
	return &FakeStreams{
		events: make(chan core.Event, 32),
		games:  make(map[string]chan core.Event),
	}
}

// OpenEventStream returns the global feed.
func (s *FakeStreams) OpenEventStream(context.Context) (<-chan core.Event, error) {
	return s.events, nil
}

// OpenGameStream returns a channel bridged from the game's feed, closing on
// context cancellation.
func (s *FakeStreams) OpenGameStream(ctx context.Context, gameID string) (<-chan core.Event, error) {
	if s.OpenGameErr != nil {
		return nil, s.OpenGameErr
	}
	feed := s.gameFeed(gameID)
	out := make(chan core.Event, 32)
	go func() {
		defer close(out)
		for {
			select {
			case ev, ok := <-feed:
				if !ok {
					return
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// PushEvent delivers a record on the global stream.
func (s *FakeStreams) PushEvent(ev core.Event) {
	s.events <- ev
}

// CloseEvents ends the global stream.
func (s *FakeStreams) CloseEvents() {
	close(s.events)
}

// PushGame delivers a record on a game's stream.
func (s *FakeStreams) PushGame(gameID string, ev core.Event) {
	s.gameFeed(gameID) <- ev
}

// CloseGame ends a game's stream, as a remote disconnect would.
func (s *FakeStreams) CloseGame(gameID string) {
	s.mu.Lock()
	feed, ok := s.games[gameID]
	if ok {
		delete(s.games, gameID)
	}
	s.mu.Unlock()
	if ok {
		close(feed)
	}
}

func (s *FakeStreams) gameFeed(gameID string) chan core.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	feed, ok := s.games[gameID]
	if !ok {
		feed = make(chan core.Event, 32)
		s.games[gameID] = feed
	}
	return feed
}
