package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hedgeheart/internal/core"
)

// Terminals report key presses and auto-repeats but no releases. A held
// key is considered released once it has not repeated for a while; the
// first press waits longer to cover the repeat delay.
const (
	firstHold  = 300 * time.Millisecond
	repeatHold = 100 * time.Millisecond
)

// KeyMap defines the key bindings for play.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Jump       key.Binding
	Down       key.Binding
	Start      key.Binding
	Screenshot key.Binding
	Scores     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Down, k.Start, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump, k.Down},
		{k.Start, k.Scores, k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Jump: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w/space", "jump"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "drop"),
		),
		Start: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space/enter", "start"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^s", "screenshot"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "runs"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a game action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Start):
		return core.ActionStart
	}
	return core.ActionNone
}

// holdTracker turns key presses into press and release edges.
type holdTracker struct {
	until map[core.Action]time.Duration
}

func newHoldTracker() *holdTracker {
	return &holdTracker{until: make(map[core.Action]time.Duration)}
}

// press records a key press at now. It emits a press edge only if the key
// was not already held.
func (h *holdTracker) press(a core.Action, now time.Duration, frame *core.InputFrame) {
	if _, held := h.until[a]; held {
		h.until[a] = now + repeatHold
		return
	}
	h.until[a] = now + firstHold
	frame.Press(a, core.SourceKeyboard)
}

// expire releases keys that stopped repeating.
func (h *holdTracker) expire(now time.Duration, frame *core.InputFrame) {
	for a, until := range h.until {
		if now >= until {
			delete(h.until, a)
			frame.Release(a, core.SourceKeyboard)
		}
	}
}

func (h *holdTracker) held(a core.Action) bool {
	_, ok := h.until[a]
	return ok
}
