package extproc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/greypawn/chessbot/core"
	"github.com/greypawn/chessbot/logging"
)

// stopGrace is how long Stop waits for the process to exit after the quit
// message before killing it.
const stopGrace = 2 * time.Second

// ErrNotRunning is returned when a call arrives before Setup started the
// process or after Stop.
var ErrNotRunning = errors.New("engine process not running")

// setupMsg and stateMsg are the bot → engine messages.
type setupMsg struct {
	Op        string `json:"op"`
	Color     string `json:"color"`
	Initial   int64  `json:"initial"`
	Increment int64  `json:"increment"`
	Variant   string `json:"variant"`
}

type stateMsg struct {
	Op        string `json:"op"`
	Moves     string `json:"moves"`
	WhiteTime int64  `json:"wtime"`
	BlackTime int64  `json:"btime"`
	WhiteInc  int64  `json:"winc"`
	BlackInc  int64  `json:"binc"`
	Status    string `json:"status"`
}

type quitMsg struct {
	Op string `json:"op"`
}

// moveMsg is the engine → bot message.
type moveMsg struct {
	Move string `json:"move"`
}

// Engine drives one external engine process for one game.
type Engine struct {
	gameID string
	path   string
	args   []string
	logger logging.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	enc    *json.Encoder

	done     chan struct{}
	stopOnce sync.Once
}

var _ core.Engine = (*Engine)(nil)

// Factory returns a core.EngineFactory spawning the given binary once per
// game.
func Factory(path string, args ...string) core.EngineFactory {
	return FactoryWithLogger(logging.NoOpLogger{}, path, args...)
}

// FactoryWithLogger is Factory with process lifecycle logging.
func FactoryWithLogger(logger logging.Logger, path string, args ...string) core.EngineFactory {
	return func(gameID string) (core.Engine, error) {
		return &Engine{
			gameID: gameID,
			path:   path,
			args:   args,
			logger: logger,
			done:   make(chan struct{}),
		}, nil
	}
}

// Setup starts the process and sends the setup message.
func (e *Engine) Setup(color core.Color, initialMs, incrementMs int64, variant string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cmd != nil {
		return fmt.Errorf("engine for game %s already set up", e.gameID)
	}

	cmd := exec.Command(e.path, e.args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("engine stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("engine stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start engine %s: %w", e.path, err)
	}

	e.cmd = cmd
	e.stdin = stdin
	e.stdout = stdout
	e.enc = json.NewEncoder(stdin)
	e.logger.Debug("engine process started", "game_id", e.gameID, "path", e.path, "pid", cmd.Process.Pid)

	return e.enc.Encode(setupMsg{
		Op:        "setup",
		Color:     string(color),
		Initial:   initialMs,
		Increment: incrementMs,
		Variant:   variant,
	})
}

// Start begins reading moves from the process.
func (e *Engine) Start(onMove core.MoveFunc) error {
	e.mu.Lock()
	stdout := e.stdout
	e.mu.Unlock()
	if stdout == nil {
		return ErrNotRunning
	}
	go e.readMoves(stdout, onMove)
	return nil
}

// UpdateState forwards one state record to the process.
func (e *Engine) UpdateState(update core.StateUpdate) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.enc == nil {
		return ErrNotRunning
	}
	return e.enc.Encode(stateMsg{
		Op:        "state",
		Moves:     update.Moves,
		WhiteTime: update.WhiteTime,
		BlackTime: update.BlackTime,
		WhiteInc:  update.WhiteInc,
		BlackInc:  update.BlackInc,
		Status:    string(update.Status),
	})
}

// Stop asks the process to quit and kills it after a grace period. Safe to
// call while a move is being read; any move surfacing after Stop is dropped.
func (e *Engine) Stop() error {
	var err error
	e.stopOnce.Do(func() {
		close(e.done)

		e.mu.Lock()
		cmd := e.cmd
		if e.enc != nil {
			e.enc.Encode(quitMsg{Op: "quit"}) // best effort
		}
		if e.stdin != nil {
			e.stdin.Close()
		}
		e.mu.Unlock()

		if cmd == nil {
			return
		}
		waited := make(chan error, 1)
		go func() { waited <- cmd.Wait() }()
		select {
		case err = <-waited:
		case <-time.After(stopGrace):
			e.logger.Warn("engine did not exit, killing", "game_id", e.gameID)
			cmd.Process.Kill()
			err = <-waited
		}
	})
	return err
}

// readMoves parses move messages until the pipe closes or Stop is called.
func (e *Engine) readMoves(stdout io.Reader, onMove core.MoveFunc) {
	sc := bufio.NewScanner(stdout)
	for sc.Scan() {
		select {
		case <-e.done:
			return
		default:
		}
		var msg moveMsg
		if err := json.Unmarshal(sc.Bytes(), &msg); err != nil || msg.Move == "" {
			e.logger.Debug("skipping engine output", "game_id", e.gameID, "line", sc.Text())
			continue
		}
		onMove(msg.Move)
	}
}
