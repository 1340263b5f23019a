package remote

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/hedgeheart/internal/core"
)

// DefaultScript is the action sequence a scripted controller plays.
var DefaultScript = []core.Command{
	core.CommandStart,
	core.CommandJump, core.CommandLeft, core.CommandRight, core.CommandIdle,
	core.CommandJump, core.CommandLeft, core.CommandRight, core.CommandIdle,
	core.CommandJump, core.CommandLeft, core.CommandRight, core.CommandIdle,
	core.CommandJump, core.CommandLeft, core.CommandRight, core.CommandIdle,
	core.CommandIdle,
	core.CommandJump, core.CommandLeft, core.CommandRight, core.CommandIdle,
	core.CommandJump, core.CommandLeft, core.CommandRight, core.CommandIdle,
	core.CommandStart, core.CommandJump,
}

// ControllerOptions configures a scripted controller.
type ControllerOptions struct {
	Script   []core.Command
	Interval time.Duration // pause between answered actions
	Logger   *log.Logger
	// OnObservation, if set, receives every observation the game returns.
	OnObservation func(core.Observation)
}

// Controller is a websocket server that drives a connected game through a
// fixed script. Each action waits for the game's observation; a done
// observation ends the episode.
type Controller struct {
	opts     ControllerOptions
	log      *log.Logger
	upgrader websocket.Upgrader
}

// NewController creates a scripted controller.
func NewController(opts ControllerOptions) *Controller {
	if len(opts.Script) == 0 {
		opts.Script = DefaultScript
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		opts: opts,
		log:  logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and plays the script.
func (c *Controller) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.log.Warn("upgrade", "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(readLimit)

	c.log.Info("game connected", "remote", r.RemoteAddr)
	defer c.log.Info("game disconnected", "remote", r.RemoteAddr)

	total := 0
	for i, cmd := range c.opts.Script {
		msg, err := EncodeAction(cmd)
		if err != nil {
			c.log.Error("encode action", "err", err)
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			c.log.Warn("write", "err", err)
			return
		}
		c.log.Debug("sent action", "step", i, "action", cmd)

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.log.Warn("read", "err", err)
			return
		}
		obs, err := DecodeObservation(data)
		if err != nil {
			c.log.Warn("bad observation", "err", err)
			continue
		}
		total += obs.Reward
		c.log.Info("observation", "step", i, "action", cmd, "reward", obs.Reward, "total", total, "done", obs.Done)
		if c.opts.OnObservation != nil {
			c.opts.OnObservation(obs)
		}
		if obs.Done {
			c.log.Info("episode over", "total", total)
			break
		}

		if c.opts.Interval > 0 {
			t := time.NewTimer(c.opts.Interval)
			select {
			case <-r.Context().Done():
				t.Stop()
				return
			case <-t.C:
			}
		}
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	//nolint:errcheck
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "script finished"))
}
