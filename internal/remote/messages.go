// Package remote connects the game to an external controller over a
// websocket. The controller sends actions; the game answers each consumed
// action with an observation of the scene.
package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vovakirdan/hedgeheart/internal/core"
)

// ActionMessage is an inbound controller message. Action is either a
// movement code 0..3 or a command name.
type ActionMessage struct {
	Action json.RawMessage `json:"action"`
}

var commandNames = map[string]core.Command{
	"left":  core.CommandLeft,
	"right": core.CommandRight,
	"jump":  core.CommandJump,
	"idle":  core.CommandIdle,
	"start": core.CommandStart,
	"reset": core.CommandReset,
}

// DecodeAction parses an inbound message. ok is false for anything that is
// not a known action.
func DecodeAction(data []byte) (cmd core.Command, ok bool) {
	var msg ActionMessage
	if err := json.Unmarshal(data, &msg); err != nil || len(msg.Action) == 0 {
		return 0, false
	}
	raw := bytes.TrimSpace(msg.Action)
	if bytes.Equal(raw, []byte("null")) {
		return 0, false
	}

	var code int
	if err := json.Unmarshal(raw, &code); err == nil {
		c := core.Command(code)
		if !c.Movement() {
			return 0, false
		}
		return c, true
	}

	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return 0, false
	}
	c, ok := commandNames[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// EncodeAction builds the outbound message for a command. Movement goes by
// code, session commands by name.
func EncodeAction(c core.Command) ([]byte, error) {
	var action any
	switch {
	case c.Movement():
		action = int(c)
	case c == core.CommandStart || c == core.CommandReset:
		action = c.String()
	default:
		return nil, fmt.Errorf("remote: unknown command %d", int(c))
	}
	return json.Marshal(map[string]any{"action": action})
}

// ParseScript parses a comma separated list of command names such as
// "start,jump,left,idle".
func ParseScript(s string) ([]core.Command, error) {
	var script []core.Command
	for _, field := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(field))
		if name == "" {
			continue
		}
		c, ok := commandNames[name]
		if !ok {
			return nil, fmt.Errorf("remote: unknown command %q", field)
		}
		script = append(script, c)
	}
	if len(script) == 0 {
		return nil, fmt.Errorf("remote: empty script")
	}
	return script, nil
}

// DecodeObservation parses an observation sent by the game.
func DecodeObservation(data []byte) (core.Observation, error) {
	var obs core.Observation
	if err := json.Unmarshal(data, &obs); err != nil {
		return obs, fmt.Errorf("remote: decode observation: %w", err)
	}
	return obs, nil
}
