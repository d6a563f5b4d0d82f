package lichess

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/greypawn/chessbot/core"
)

// Stream scanner sizing. Full-state records carry the complete move history,
// so lines can grow well past bufio's default.
const (
	scanInitialBuf = 64 * 1024
	scanMaxBuf     = 1024 * 1024
)

// OpenEventStream connects to the global event stream. The initial connect
// is synchronous so credential problems surface at startup; afterwards the
// stream reconnects with exponential backoff and the returned channel only
// closes on context cancellation.
func (c *Client) OpenEventStream(ctx context.Context) (<-chan core.Event, error) {
	body, err := c.connect(ctx, "/stream/event")
	if err != nil {
		return nil, err
	}
	ch := make(chan core.Event, c.eventBufferSize)
	go func() {
		defer close(ch)
		bo := backoff.NewExponentialBackOff()
		for {
			n, scanErr := c.scan(ctx, body, ch)
			if n > 0 {
				bo.Reset()
			}
			for {
				if ctx.Err() != nil {
					return
				}
				wait := bo.NextBackOff()
				c.logger.Warn("event stream disconnected, reconnecting",
					"error", scanErr, "retry_in", wait)
				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return
				}
				b, err := c.connect(ctx, "/stream/event")
				if err != nil {
					scanErr = err
					continue
				}
				body = b
				break
			}
			c.logger.Info("event stream reconnected")
		}
	}()
	return ch, nil
}

// OpenGameStream connects to the stream for one game. No reconnection: when
// the connection drops the channel closes and the session is torn down as if
// a finish record had arrived.
func (c *Client) OpenGameStream(ctx context.Context, gameID string) (<-chan core.Event, error) {
	body, err := c.connect(ctx, "/bot/game/stream/"+gameID)
	if err != nil {
		return nil, err
	}
	ch := make(chan core.Event, c.eventBufferSize)
	go func() {
		defer close(ch)
		if _, err := c.scan(ctx, body, ch); err != nil && ctx.Err() == nil {
			c.logger.Warn("game stream closed", "game_id", gameID, "error", err)
		}
	}()
	return ch, nil
}

// connect issues the authenticated GET and hands back the response body for
// line scanning.
func (c *Client) connect(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status %s", path, resp.Status)
	}
	return resp.Body, nil
}

// scan reads NDJSON lines until the body ends or the context is canceled,
// delivering decoded records in order. Blank keep-alive lines and records
// that fail to decode are dropped. Returns how many records were delivered;
// a nil error means the remote side closed the stream cleanly.
func (c *Client) scan(ctx context.Context, body io.ReadCloser, ch chan<- core.Event) (int, error) {
	defer body.Close()

	delivered := 0
	sc := bufio.NewScanner(body)
	sc.Buffer(make([]byte, 0, scanInitialBuf), scanMaxBuf)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		ev, err := core.DecodeEvent(line)
		if err != nil {
			c.logger.Debug("skipping malformed record", "error", err)
			continue
		}
		select {
		case ch <- ev:
			delivered++
		case <-ctx.Done():
			return delivered, ctx.Err()
		}
	}
	return delivered, sc.Err()
}
