package lichess

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/greypawn/chessbot/logging"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://lichess.org/api"

// DefaultMoveRetryLimit bounds immediate retries of a move submission.
const DefaultMoveRetryLimit = 10

// ErrMoveLost is wrapped into the error returned by SubmitMove when every
// attempt failed. The engine has already advanced past the ply, so the move
// cannot be replayed; the caller can only log it.
var ErrMoveLost = errors.New("move lost")

// Options configures a Client.
type Options struct {
	// BaseURL overrides the API root, mainly for tests.
	BaseURL string
	// HTTPClient performs all requests. Defaults to a client without a
	// global timeout: stream requests are long-lived by design and are
	// bounded by their context instead.
	HTTPClient *http.Client
	// Limiter paces every outbound call. Defaults to 8 req/s with a small
	// burst, conservative against the platform's rate limits.
	Limiter *rate.Limiter
	// MoveRetryLimit bounds immediate retries of SubmitMove.
	MoveRetryLimit int
	// EventBufferSize sets the stream channel buffering.
	EventBufferSize int
	// Logger for stream lifecycle and retry reporting.
	Logger logging.Logger
}

// Client is an authenticated lichess API client implementing core.Gateway
// and core.StreamProvider. Safe for concurrent use.
type Client struct {
	baseURL         string
	token           string
	httpClient      *http.Client
	limiter         *rate.Limiter
	moveRetryLimit  int
	eventBufferSize int
	logger          logging.Logger
}

// New constructs a Client for the given API token.
func New(token string, optFns ...func(o *Options)) *Client {
	opts := Options{
		BaseURL:         DefaultBaseURL,
		HTTPClient:      &http.Client{},
		Limiter:         rate.NewLimiter(rate.Limit(8), 4),
		MoveRetryLimit:  DefaultMoveRetryLimit,
		EventBufferSize: 64,
		Logger:          logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{
		baseURL:         opts.BaseURL,
		token:           token,
		httpClient:      opts.HTTPClient,
		limiter:         opts.Limiter,
		moveRetryLimit:  opts.MoveRetryLimit,
		eventBufferSize: opts.EventBufferSize,
		logger:          opts.Logger,
	}
}

// AcceptChallenge accepts the challenge. Not retried: on failure the remote
// side re-offers or times the challenge out.
func (c *Client) AcceptChallenge(ctx context.Context, challengeID string) error {
	return c.post(ctx, "/challenge/"+url.PathEscape(challengeID)+"/accept")
}

// DeclineChallenge declines the challenge. Not retried.
func (c *Client) DeclineChallenge(ctx context.Context, challengeID string) error {
	return c.post(ctx, "/challenge/"+url.PathEscape(challengeID)+"/decline")
}

// AbortGame aborts the game. Not retried: the remote side force-aborts on
// its own if the bot never plays.
func (c *Client) AbortGame(ctx context.Context, gameID string) error {
	return c.post(ctx, "/bot/game/"+url.PathEscape(gameID)+"/abort")
}

// SubmitMove plays a move, retrying immediately up to the configured bound
// and stopping on the first acknowledgment. When every attempt fails the
// returned error wraps ErrMoveLost.
func (c *Client) SubmitMove(ctx context.Context, gameID, move string) error {
	path := "/bot/game/" + url.PathEscape(gameID) + "/move/" + url.PathEscape(move)
	var lastErr error
	for attempt := 1; attempt <= c.moveRetryLimit; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = c.post(ctx, path)
		if lastErr == nil {
			return nil
		}
		c.logger.Debug("move submission attempt failed",
			"game_id", gameID, "move", move, "attempt", attempt, "error", lastErr)
	}
	return fmt.Errorf("%w: game %s move %s after %d attempts: %v",
		ErrMoveLost, gameID, move, c.moveRetryLimit, lastErr)
}

// post performs one rate-limited authenticated POST with an empty body.
func (c *Client) post(ctx context.Context, path string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("POST %s: unexpected status %s", path, resp.Status)
	}
	return nil
}
