package remote

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/hedgeheart/internal/core"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	readLimit    = 1 << 16
)

// Options configures a Bridge.
type Options struct {
	URL               string
	ReconnectInterval time.Duration
	MaxRetries        int
	Logger            *log.Logger
	Dialer            *websocket.Dialer
}

// Bridge is the game side of the controller link. The frame loop polls
// actions and hands back observations; the connection runs on its own
// goroutines.
type Bridge struct {
	opts   Options
	log    *log.Logger
	dialer *websocket.Dialer

	mu      sync.Mutex
	pending *core.Command

	out       chan core.Observation
	connected atomic.Bool
	attempts  atomic.Int64
}

// NewBridge creates a bridge. Call Run to connect.
func NewBridge(opts Options) *Bridge {
	if opts.ReconnectInterval <= 0 {
		opts.ReconnectInterval = 3 * time.Second
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	dialer := opts.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	return &Bridge{
		opts:   opts,
		log:    logger,
		dialer: dialer,
		out:    make(chan core.Observation, 1),
	}
}

// Poll takes the latest unconsumed action. Older actions that arrived in the
// same frame are dropped.
func (b *Bridge) Poll() (core.Command, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == nil {
		return 0, false
	}
	c := *b.pending
	b.pending = nil
	return c, true
}

func (b *Bridge) store(c core.Command) {
	b.mu.Lock()
	b.pending = &c
	b.mu.Unlock()
}

// answer requests an observation for a message that carried no action. An
// action already waiting for the frame loop answers it instead.
func (b *Bridge) answer() {
	b.mu.Lock()
	if b.pending == nil {
		c := core.CommandNone
		b.pending = &c
	}
	b.mu.Unlock()
}

// Send queues an observation for the controller, replacing one that was not
// written yet. It never blocks.
func (b *Bridge) Send(obs core.Observation) {
	for {
		select {
		case b.out <- obs:
			return
		default:
		}
		select {
		case <-b.out:
		default:
		}
	}
}

// Connected reports whether a controller connection is open.
func (b *Bridge) Connected() bool {
	return b.connected.Load()
}

// Attempts returns how many times the bridge dialed.
func (b *Bridge) Attempts() int {
	return int(b.attempts.Load())
}

// Run connects and serves the controller until ctx is done. A dropped or
// failed connection is retried after the reconnect interval; a successful
// connection resets the retry budget. Once the budget is spent Run returns
// nil and the game keeps running without a controller.
func (b *Bridge) Run(ctx context.Context) error {
	retries := 0
	for {
		b.attempts.Add(1)
		conn, _, err := b.dialer.DialContext(ctx, b.opts.URL, nil)
		if err == nil {
			retries = 0
			b.log.Info("controller connected", "url", b.opts.URL)
			b.serve(ctx, conn)
			b.log.Info("controller disconnected", "url", b.opts.URL)
		} else if ctx.Err() == nil {
			b.log.Warn("controller dial failed", "url", b.opts.URL, "err", err)
		}

		if ctx.Err() != nil {
			return nil
		}
		if retries >= b.opts.MaxRetries {
			b.log.Info("giving up on controller", "retries", retries)
			return nil
		}
		retries++

		t := time.NewTimer(b.opts.ReconnectInterval)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
	}
}

// serve pumps one connection until it drops or ctx is done. Reads happen on a
// separate goroutine; this goroutine is the only writer.
func (b *Bridge) serve(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()
	b.connected.Store(true)
	defer b.connected.Store(false)

	// Observations queued while disconnected answer nothing.
	select {
	case <-b.out:
	default:
	}

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) &&
					!errors.Is(err, websocket.ErrCloseSent) {
					b.log.Debug("controller read", "err", err)
				}
				return
			}
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			cmd, ok := DecodeAction(data)
			if !ok {
				b.log.Debug("controller message is not an action", "msg", string(data))
				b.answer()
				continue
			}
			b.store(cmd)
		}
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			//nolint:errcheck
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-done:
			return
		case obs := <-b.out:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(obs); err != nil {
				b.log.Warn("controller write", "err", err)
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
