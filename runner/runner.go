package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/greypawn/chessbot/arbiter"
	"github.com/greypawn/chessbot/core"
	"github.com/greypawn/chessbot/logging"
	"github.com/greypawn/chessbot/registry"
)

// ErrEventStreamClosed is returned by Run when the global event stream
// closes for a reason other than context cancellation.
var ErrEventStreamClosed = errors.New("event stream closed")

// statusInterval paces the periodic active-session snapshot log.
const statusInterval = time.Minute

// Options holds dependency and configuration overrides passed to New.
type Options struct {
	// Registry is the authoritative session mapping. Defaults to a fresh
	// in-memory registry.
	Registry *registry.Registry
	// Arbiter applies the challenge policy. Defaults to one concurrent
	// standard game.
	Arbiter *arbiter.Arbiter
	// Logger defaults to NoOp.
	Logger logging.Logger
	// MoveBufferSize sets the per-session move channel buffering.
	MoveBufferSize int
	// GameIdleTimeout closes a session whose stream delivers nothing for
	// this long. Zero disables the check.
	GameIdleTimeout time.Duration
}

// Runner coordinates the bot: routes global-stream records, creates and
// tears down sessions, and relays engine moves. Public methods are safe for
// concurrent use; Run is called once.
type Runner struct {
	id      string
	account string

	engines  core.EngineFactory
	gateway  core.Gateway
	streams  core.StreamProvider
	registry *registry.Registry
	arbiter  *arbiter.Arbiter
	logger   logging.Logger

	moveBufferSize  int
	gameIdleTimeout time.Duration

	tasks taskGroup
}

// New constructs a Runner. account is the bot's account name on the
// platform, used to derive the assigned color from full-state records.
func New(account string, engines core.EngineFactory, gateway core.Gateway, streams core.StreamProvider, optFns ...func(o *Options)) *Runner {
	opts := Options{
		Registry:       registry.New(),
		Arbiter:        arbiter.New(1, nil),
		Logger:         logging.NoOpLogger{},
		MoveBufferSize: 8,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Runner{
		id:              uuid.NewString(),
		account:         account,
		engines:         engines,
		gateway:         gateway,
		streams:         streams,
		registry:        opts.Registry,
		arbiter:         opts.Arbiter,
		logger:          opts.Logger,
		moveBufferSize:  opts.MoveBufferSize,
		gameIdleTimeout: opts.GameIdleTimeout,
	}
}

// ActiveSessions returns the current number of non-terminal sessions.
func (r *Runner) ActiveSessions() int { return r.registry.Count() }

// Run consumes the global event stream until the context is canceled,
// then tears down every remaining session and waits for in-flight work.
// A nil error means a clean, cancellation-driven shutdown.
func (r *Runner) Run(ctx context.Context) error {
	events, err := r.streams.OpenEventStream(ctx)
	if err != nil {
		return fmt.Errorf("open event stream: %w", err)
	}
	r.logger.Info("listening to event stream", "run_id", r.id, "account", r.account)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					return ErrEventStreamClosed
				}
				r.dispatch(gctx, ev)
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})
	g.Go(func() error {
		ticker := time.NewTicker(statusInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.logger.Debug("status", "active_sessions", r.registry.Count())
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})
	err = g.Wait()

	for _, id := range r.registry.IDs() {
		r.finishSession(id)
	}
	r.tasks.Wait()

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// dispatch routes one global-stream record. Unrecognized types are skipped
// so new record types never break routing.
func (r *Runner) dispatch(ctx context.Context, ev core.Event) {
	switch ev.Type {
	case core.EventChallenge:
		if ev.Challenge != nil {
			r.handleChallenge(ctx, ev.Challenge)
		}
	case core.EventGameStart:
		if ev.Game != nil && ev.Game.ID != "" {
			r.handleGameStart(ctx, ev.Game.ID)
		}
	case core.EventGameFinish:
		if ev.Game != nil {
			r.finishSession(ev.Game.ID)
		}
	default:
		r.logger.Debug("ignoring event", "type", ev.Type)
	}
}

// handleChallenge asks the arbiter for a verdict and issues exactly one
// outbound call off the stream goroutine. Call failures are logged and not
// retried; the remote side re-offers or times the challenge out.
func (r *Runner) handleChallenge(ctx context.Context, ch *core.Challenge) {
	verdict := r.arbiter.Decide(ch, r.registry.Count())
	r.tasks.Go(func() {
		if verdict.Accept {
			if err := r.gateway.AcceptChallenge(ctx, ch.ID); err != nil {
				r.logger.Error("challenge accept failed", "challenge_id", ch.ID, "error", err)
				return
			}
			r.logger.Info("challenge accepted",
				"challenge_id", ch.ID, "variant", ch.Variant.Key, "challenger", ch.Challenger.Name)
			return
		}
		if err := r.gateway.DeclineChallenge(ctx, ch.ID); err != nil {
			r.logger.Error("challenge decline failed", "challenge_id", ch.ID, "error", err)
			return
		}
		r.logger.Info("challenge declined", "challenge_id", ch.ID, "reason", verdict.Reason)
	})
}

// handleGameStart creates a session if the concurrency bound admits it,
// otherwise aborts the game. The bound check and the uniqueness check are
// distinct: the former is policy, the latter is the registry's atomic
// check-then-insert.
func (r *Runner) handleGameStart(ctx context.Context, gameID string) {
	if !r.arbiter.AdmitsNewSession(r.registry.Count()) {
		r.logger.Warn("session limit reached, aborting game",
			"game_id", gameID, "limit", r.arbiter.MaxSessions())
		r.tasks.Go(func() {
			if err := r.gateway.AbortGame(ctx, gameID); err != nil {
				r.logger.Error("game abort failed", "game_id", gameID, "error", err)
			}
		})
		return
	}

	gameCtx, cancel := context.WithCancel(ctx)
	sess := core.NewSession(gameID, cancel)
	if err := r.registry.Insert(sess); err != nil {
		cancel()
		r.logger.Warn("duplicate game start", "game_id", gameID)
		return
	}

	events, err := r.streams.OpenGameStream(gameCtx, gameID)
	if err != nil {
		r.logger.Error("game stream open failed", "game_id", gameID, "error", err)
		r.finishSession(gameID)
		return
	}
	sess.AwaitFirstState()
	r.logger.Info("session created", "game_id", gameID)

	r.tasks.Go(func() { r.runSession(gameCtx, sess, events) })
}

// runSession consumes one game's stream in delivery order until the game
// ends, the stream closes, the optional idle timeout fires, or the context
// is canceled. Stream closure is treated as game end.
func (r *Runner) runSession(ctx context.Context, sess *core.Session, events <-chan core.Event) {
	defer r.finishSession(sess.ID())

	var idle *time.Timer
	var idleC <-chan time.Time
	if r.gameIdleTimeout > 0 {
		idle = time.NewTimer(r.gameIdleTimeout)
		idleC = idle.C
		defer idle.Stop()
	}

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if idle != nil {
				if !idle.Stop() {
					select {
					case <-idle.C:
					default:
					}
				}
				idle.Reset(r.gameIdleTimeout)
			}
			if finished := r.handleGameEvent(ctx, sess, ev); finished {
				return
			}
		case <-idleC:
			r.logger.Warn("game stream idle, closing session",
				"game_id", sess.ID(), "timeout", r.gameIdleTimeout)
			return
		case <-ctx.Done():
			return
		}
	}
}

// handleGameEvent routes one per-game record. Records for identifiers no
// longer in the registry are dropped: the session was torn down while this
// record sat in the buffer.
func (r *Runner) handleGameEvent(ctx context.Context, sess *core.Session, ev core.Event) bool {
	if _, ok := r.registry.Get(sess.ID()); !ok {
		r.logger.Debug("dropping record for closed session", "game_id", sess.ID(), "type", ev.Type)
		return true
	}
	switch ev.Type {
	case core.EventGameFull:
		if ev.Full != nil {
			return r.handleGameFull(ctx, sess, ev.Full)
		}
	case core.EventGameState:
		if ev.State != nil {
			return r.forwardState(sess, *ev.State)
		}
	default:
		r.logger.Debug("ignoring game record", "game_id", sess.ID(), "type", ev.Type)
	}
	return false
}

// handleGameFull processes the first full-state record: derive the assigned
// color, create and set up the engine, start it with the move callback, and
// forward the embedded initial state. Later full-state records are ignored.
func (r *Runner) handleGameFull(ctx context.Context, sess *core.Session, full *core.GameFull) bool {
	if sess.SetupComplete() {
		r.logger.Debug("ignoring repeated full state", "game_id", sess.ID())
		return false
	}

	color := core.ColorWhite
	if full.Black.Name == r.account {
		color = core.ColorBlack
	}

	eng, err := r.engines(sess.ID())
	if err != nil {
		r.logger.Error("engine creation failed", "game_id", sess.ID(), "error", err)
		return true
	}
	if err := eng.Setup(color, full.Clock.Initial, full.Clock.Increment, full.Variant.Key); err != nil {
		r.logger.Error("engine setup failed", "game_id", sess.ID(), "error", err)
		eng.Stop()
		return true
	}
	if !sess.Activate(color, eng) {
		// Lost a teardown race; the engine never joined the session.
		eng.Stop()
		return true
	}

	moves := make(chan string, r.moveBufferSize)
	if err := eng.Start(func(move string) {
		// A callback landing after teardown is a no-op.
		if ctx.Err() != nil {
			return
		}
		select {
		case moves <- move:
		case <-ctx.Done():
		}
	}); err != nil {
		r.logger.Error("engine start failed", "game_id", sess.ID(), "error", err)
		return true
	}
	r.tasks.Go(func() { r.relayMoves(ctx, sess.ID(), moves) })

	r.logger.Info("session active",
		"game_id", sess.ID(), "color", color, "variant", full.Variant.Key,
		"white", full.White.Name, "black", full.Black.Name,
		"initial_ms", full.Clock.Initial, "increment_ms", full.Clock.Increment)

	return r.forwardState(sess, full.State)
}

// forwardState delivers one state record to the engine and reports whether
// the status ends the game. Records arriving before setup are dropped: the
// engine only sees updates once it exists.
func (r *Runner) forwardState(sess *core.Session, st core.GameState) bool {
	if !sess.SetupComplete() {
		r.logger.Debug("dropping state before setup", "game_id", sess.ID())
		return false
	}
	if err := sess.Engine().UpdateState(core.StateUpdateFrom(st)); err != nil {
		r.logger.Error("engine state update failed", "game_id", sess.ID(), "error", err)
	}
	if st.Status.Terminal() {
		r.logger.Info("game over", "game_id", sess.ID(), "status", st.Status, "winner", st.Winner)
		r.finishSession(sess.ID())
		return true
	}
	return false
}

// relayMoves drains the engine's move channel into the gateway. It is an
// independent producer: state forwarding never waits on a submission.
func (r *Runner) relayMoves(ctx context.Context, gameID string, moves <-chan string) {
	for {
		if ctx.Err() != nil {
			return
		}
		select {
		case move := <-moves:
			r.logger.Info("submitting move", "game_id", gameID, "move", move)
			if err := r.gateway.SubmitMove(ctx, gameID, move); err != nil {
				r.logger.Error("move submission failed", "game_id", gameID, "move", move, "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// finishSession tears a session down exactly once: remove it from the
// registry so late records miss their lookup, cancel its stream, stop its
// engine. Safe to call from the router, the session goroutine, and shutdown
// concurrently.
func (r *Runner) finishSession(gameID string) {
	sess, ok := r.registry.Remove(gameID)
	if !ok {
		return
	}
	sess.Finish(func() {
		if eng := sess.Engine(); eng != nil {
			if err := eng.Stop(); err != nil {
				r.logger.Error("engine stop failed", "game_id", gameID, "error", err)
			}
		}
	})
	r.logger.Info("session closed", "game_id", gameID, "active_sessions", r.registry.Count())
}
