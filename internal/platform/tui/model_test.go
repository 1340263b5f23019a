package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hedgeheart/internal/config"
	"github.com/vovakirdan/hedgeheart/internal/core"
	"github.com/vovakirdan/hedgeheart/internal/game"
	"github.com/vovakirdan/hedgeheart/internal/runner"
	"github.com/vovakirdan/hedgeheart/internal/storage"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Countdown.Target = "100s"
	cfg.Decorations.Enabled = false

	r, err := runner.New(runner.Options{
		Config: cfg,
		Seed:   5,
		Now:    func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("runner.New() error = %v", err)
	}
	return NewModel(r, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func ticks(m Model, n int) Model {
	for i := 0; i < n; i++ {
		m = send(m, TickMsg{})
	}
	return m
}

func TestSpaceStartsRun(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = ticks(m, 1)

	if got := m.runner.Game().Session().State; got != game.StateDuring {
		t.Errorf("State = %v, expected %v", got, game.StateDuring)
	}
}

func TestSpaceJumpsDuringRun(t *testing.T) {
	m := newTestModel(t)
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	m = send(m, space)
	m = ticks(m, 1)
	if m.runner.Game().Intent().Jump {
		t.Fatal("the space that starts a run should not jump")
	}

	m = send(m, space)
	m = ticks(m, 1)
	if got := m.runner.Game().Session().State; got != game.StateDuring {
		t.Fatalf("State = %v, expected the run to go on", got)
	}
	if !m.runner.Game().Intent().Jump {
		t.Error("space during a run should hold jump")
	}
	m = ticks(m, 30)
	if m.runner.Game().Intent().Jump {
		t.Error("jump should be released once space stopped repeating")
	}
}

func TestEnterDoesNotJump(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = ticks(m, 1)
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = ticks(m, 1)
	if m.runner.Game().Intent().Jump {
		t.Error("enter during a run should not jump")
	}
}

func TestHeldKeyReleasesWithoutRepeats(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeyLeft})
	m = ticks(m, 5)
	if !m.runner.Game().Intent().Left {
		t.Fatal("left should be held right after the press")
	}

	m = ticks(m, 20)
	if m.runner.Game().Intent().Left {
		t.Error("left should be released once the key stopped repeating")
	}
}

func TestTouchButtons(t *testing.T) {
	m := newTestModel(t)
	l := m.runner.Game().Layout(m.screen.Width(), m.screen.Height())

	m = send(m, tea.MouseMsg{X: l.Right.X + 1, Y: l.Right.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = ticks(m, 30)
	if !m.runner.Game().Intent().Right {
		t.Fatal("touch press on the right button should hold right")
	}

	m = send(m, tea.MouseMsg{X: l.Right.X + 1, Y: l.Right.Y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m = ticks(m, 1)
	if m.runner.Game().Intent().Right {
		t.Error("touch release should release right")
	}
}

func TestClickOnPromptStarts(t *testing.T) {
	m := newTestModel(t)
	l := m.runner.Game().Layout(m.screen.Width(), m.screen.Height())
	cx, cy := l.Prompt.Center()

	m = send(m, tea.MouseMsg{X: cx, Y: cy, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = ticks(m, 1)
	if got := m.runner.Game().Session().State; got != game.StateDuring {
		t.Errorf("State = %v, expected a click on the prompt to start", got)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestViewShowsHelpLine(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 24 {
		t.Errorf("View() has %d lines, expected 24", len(lines))
	}
	if !strings.Contains(lines[len(lines)-1], "jump") {
		t.Errorf("last line = %q, expected the key help", lines[len(lines)-1])
	}
}

type memoryHistory struct {
	runs []storage.Run
}

func (h *memoryHistory) BestRuns(outcome string, _ int) ([]storage.Run, error) {
	var out []storage.Run
	for _, r := range h.runs {
		if outcome == "" || r.Outcome == outcome {
			out = append(out, r)
		}
	}
	return out, nil
}

func (h *memoryHistory) Stats() (*storage.Stats, error) {
	return &storage.Stats{Runs: len(h.runs)}, nil
}

func TestSessionOpensRunHistory(t *testing.T) {
	history := &memoryHistory{runs: []storage.Run{
		{Player: "alice", Outcome: storage.OutcomeWon, Score: 3, Clock: 90},
		{Player: "bob", Outcome: storage.OutcomeLost, Score: 400, Clock: 12},
	}}
	s := SessionModel{play: newTestModel(t), history: history}

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	if s.scoreboard == nil {
		t.Fatal("tab should open the run history")
	}
	if got := len(s.scoreboard.runs); got != 2 {
		t.Errorf("scoreboard shows %d runs, expected 2", got)
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	if got := len(s.scoreboard.runs); got != 1 || s.scoreboard.runs[0].Player != "alice" {
		t.Errorf("won tab runs = %+v, expected alice only", s.scoreboard.runs)
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.scoreboard != nil {
		t.Error("esc should return to play")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "hedge", core.ColorBrown)
	s.DrawTextColored(5, 0, "heart", core.ColorGold)

	out := RenderScreen(s)
	if !strings.Contains(out, "hedge") || !strings.Contains(out, "heart") {
		t.Errorf("RenderScreen() = %q, expected the drawn text", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("RenderScreen() has %d newlines, expected 1", strings.Count(out, "\n"))
	}
}
