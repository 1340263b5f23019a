package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/hedgeheart/internal/core"
)

func TestDecodeAction(t *testing.T) {
	tests := []struct {
		in   string
		want core.Command
		ok   bool
	}{
		{`{"action": 0}`, core.CommandLeft, true},
		{`{"action": 1}`, core.CommandRight, true},
		{`{"action": 2}`, core.CommandJump, true},
		{`{"action": 3}`, core.CommandIdle, true},
		{`{"action": "Start"}`, core.CommandStart, true},
		{`{"action": "Reset"}`, core.CommandReset, true},
		{`{"action": "Jump"}`, core.CommandJump, true},
		{`{"action": "idle"}`, core.CommandIdle, true},
		{`{"action": 4}`, 0, false},
		{`{"action": 100}`, 0, false},
		{`{"action": 1.5}`, 0, false},
		{`{"action": "Dance"}`, 0, false},
		{`{"action": null}`, 0, false},
		{`{}`, 0, false},
		{`not json`, 0, false},
	}

	for _, tt := range tests {
		got, ok := DecodeAction([]byte(tt.in))
		if ok != tt.ok || got != tt.want {
			t.Errorf("DecodeAction(%s) = %v, %v, expected %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestEncodeActionRoundTrip(t *testing.T) {
	for _, c := range DefaultScript {
		msg, err := EncodeAction(c)
		if err != nil {
			t.Fatalf("EncodeAction(%v) error = %v", c, err)
		}
		got, ok := DecodeAction(msg)
		if !ok || got != c {
			t.Errorf("DecodeAction(EncodeAction(%v)) = %v, %v", c, got, ok)
		}
	}
	if _, err := EncodeAction(core.Command(42)); err == nil {
		t.Error("EncodeAction(42) error = nil, expected an error")
	}
}

func TestParseScript(t *testing.T) {
	script, err := ParseScript(" Start, jump,,LEFT ,idle")
	if err != nil {
		t.Fatalf("ParseScript() error = %v", err)
	}
	want := []core.Command{core.CommandStart, core.CommandJump, core.CommandLeft, core.CommandIdle}
	if len(script) != len(want) {
		t.Fatalf("ParseScript() = %v, expected %v", script, want)
	}
	for i := range want {
		if script[i] != want[i] {
			t.Errorf("ParseScript()[%d] = %v, expected %v", i, script[i], want[i])
		}
	}

	for _, bad := range []string{"", " , ", "start,dance"} {
		if _, err := ParseScript(bad); err == nil {
			t.Errorf("ParseScript(%q) error = nil, expected an error", bad)
		}
	}
}

func TestPollKeepsLatest(t *testing.T) {
	b := NewBridge(Options{})
	if _, ok := b.Poll(); ok {
		t.Fatal("Poll() on an empty slot returned an action")
	}
	b.store(core.CommandLeft)
	b.store(core.CommandJump)
	if c, ok := b.Poll(); !ok || c != core.CommandJump {
		t.Errorf("Poll() = %v, %v, expected the last action", c, ok)
	}
	if _, ok := b.Poll(); ok {
		t.Error("Poll() should consume the action")
	}
}

func TestSendReplacesUnwritten(t *testing.T) {
	b := NewBridge(Options{})
	b.Send(core.Observation{Reward: 1})
	b.Send(core.Observation{Reward: 2})
	select {
	case obs := <-b.out:
		if obs.Reward != 2 {
			t.Errorf("queued Reward = %d, expected 2", obs.Reward)
		}
	default:
		t.Fatal("nothing queued")
	}
}

func wsURL(s *httptest.Server) string {
	return "ws" + strings.TrimPrefix(s.URL, "http")
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestBridgeExchange(t *testing.T) {
	upgrader := websocket.Upgrader{}
	got := make(chan core.Observation, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"action": 2}`)); err != nil {
			return
		}
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		obs, err := DecodeObservation(data)
		if err == nil {
			got <- obs
		}
		conn.ReadMessage() //nolint:errcheck
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	b := NewBridge(Options{URL: wsURL(srv), ReconnectInterval: 10 * time.Millisecond})
	done := make(chan struct{})
	go func() {
		b.Run(ctx) //nolint:errcheck
		close(done)
	}()

	var cmd core.Command
	waitFor(t, "an action", func() bool {
		c, ok := b.Poll()
		cmd = c
		return ok
	})
	if cmd != core.CommandJump {
		t.Errorf("Poll() = %v, expected Jump", cmd)
	}

	b.Send(core.Observation{State: [][]int{{1, 0}, {0, 2}}, Reward: 7, Done: true})
	select {
	case obs := <-got:
		if obs.Reward != 7 || !obs.Done || obs.State[1][1] != 2 {
			t.Errorf("server got %+v", obs)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server never received the observation")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestAnswerKeepsPendingAction(t *testing.T) {
	b := NewBridge(Options{})

	b.answer()
	if c, ok := b.Poll(); !ok || c != core.CommandNone {
		t.Errorf("Poll() = %v, %v, expected None, true", c, ok)
	}

	b.store(core.CommandJump)
	b.answer()
	if c, ok := b.Poll(); !ok || c != core.CommandJump {
		t.Errorf("Poll() = %v, %v, expected the pending Jump", c, ok)
	}
}

func TestBridgeAnswersUnknownMessage(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"action": "dance"}`)); err != nil {
			return
		}
		conn.ReadMessage() //nolint:errcheck
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b := NewBridge(Options{URL: wsURL(srv), ReconnectInterval: 10 * time.Millisecond})
	go b.Run(ctx) //nolint:errcheck

	var cmd core.Command
	waitFor(t, "a reply request", func() bool {
		c, ok := b.Poll()
		cmd = c
		return ok
	})
	if cmd != core.CommandNone {
		t.Errorf("Poll() = %v, expected None for an unknown action", cmd)
	}
}

func TestBridgeReconnects(t *testing.T) {
	upgrader := websocket.Upgrader{}
	var conns atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		if conns.Add(1) == 1 {
			// Drop the first connection.
			return
		}
		conn.WriteMessage(websocket.TextMessage, []byte(`{"action": "Start"}`)) //nolint:errcheck
		conn.ReadMessage()                                                      //nolint:errcheck
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b := NewBridge(Options{URL: wsURL(srv), ReconnectInterval: 10 * time.Millisecond, MaxRetries: 3})
	go b.Run(ctx) //nolint:errcheck

	waitFor(t, "an action after reconnect", func() bool {
		c, ok := b.Poll()
		return ok && c == core.CommandStart
	})
	if n := conns.Load(); n < 2 {
		t.Errorf("connections = %d, expected a reconnect", n)
	}
}

func TestBridgeGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := wsURL(srv)
	srv.Close()

	b := NewBridge(Options{URL: url, ReconnectInterval: 5 * time.Millisecond, MaxRetries: 2})
	done := make(chan error, 1)
	go func() { done <- b.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v, expected a silent give-up", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not give up")
	}
	if n := b.Attempts(); n != 3 {
		t.Errorf("Attempts() = %d, expected 3", n)
	}
	if b.Connected() {
		t.Error("Connected() = true after giving up")
	}
}

func TestControllerDrivesBridge(t *testing.T) {
	var mu sync.Mutex
	var seen []core.Observation
	ctrl := NewController(ControllerOptions{
		Script: []core.Command{core.CommandStart, core.CommandJump, core.CommandLeft, core.CommandIdle},
		OnObservation: func(obs core.Observation) {
			mu.Lock()
			seen = append(seen, obs)
			mu.Unlock()
		},
	})
	srv := httptest.NewServer(ctrl)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b := NewBridge(Options{URL: wsURL(srv), ReconnectInterval: time.Hour})
	go b.Run(ctx) //nolint:errcheck

	// Play the game side: answer each action, ending the episode on the third.
	var actions []core.Command
	waitFor(t, "three actions", func() bool {
		c, ok := b.Poll()
		if !ok {
			return false
		}
		actions = append(actions, c)
		b.Send(core.Observation{Reward: len(actions), Done: len(actions) == 3})
		return len(actions) == 3
	})

	want := []core.Command{core.CommandStart, core.CommandJump, core.CommandLeft}
	for i, c := range want {
		if actions[i] != c {
			t.Errorf("action %d = %v, expected %v", i, actions[i], c)
		}
	}
	waitFor(t, "three observations", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 3
	})
	mu.Lock()
	defer mu.Unlock()
	if !seen[2].Done || seen[1].Reward != 2 {
		t.Errorf("controller saw %+v", seen)
	}
}
