package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hedgeheart/internal/core"
	"github.com/vovakirdan/hedgeheart/internal/game"
	"github.com/vovakirdan/hedgeheart/internal/runner"
)

// Touch buttons in the order their release edges are emitted.
var touchActions = []core.Action{core.ActionLeft, core.ActionRight, core.ActionJump, core.ActionDown}

// Model is the Bubble Tea model for playing Hedgeheart.
type Model struct {
	runner   *runner.Runner
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	holds    *holdTracker
	touches  map[core.Action]bool
	frame    core.InputFrame
	elapsed  time.Duration
	quitting bool
	scores   bool // run history requested
}

// NewModel creates a new Bubble Tea model driving the given runner.
func NewModel(r *runner.Runner, cfg core.RuntimeConfig) Model {
	cfg.TickRate = cfg.TickRateOrDefault()
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		runner:  r,
		screen:  core.NewScreen(cfg.ScreenW, playRows(cfg.ScreenH)),
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    h,
		holds:   newHoldTracker(),
		touches: make(map[core.Action]bool),
		frame:   core.NewInputFrame(),
	}
}

// The last terminal row is reserved for the help line.
func playRows(h int) int {
	return max(1, h-1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Scores):
		m.scores = true
		return m, nil
	}

	switch a := m.keys.Action(msg); a {
	case core.ActionNone:
	case core.ActionStart:
		// Space doubles as jump while a run is on.
		if isSpace(msg) && !m.runner.Game().Session().CanStart() {
			m.holds.press(core.ActionJump, m.elapsed, &m.frame)
			break
		}
		m.frame.Press(core.ActionStart, core.SourceKeyboard)
	default:
		m.holds.press(a, m.elapsed, &m.frame)
	}
	return m, nil
}

// handleMouse maps clicks on the touch buttons and the start prompt.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		l := m.runner.Game().Layout(m.screen.Width(), m.screen.Height())
		if l.Prompt.Contains(msg.X, msg.Y) {
			m.frame.Press(core.ActionStart, core.SourceTouch)
			return m, nil
		}
		if a, ok := buttonAt(l, msg.X, msg.Y); ok && !m.touches[a] {
			m.touches[a] = true
			m.frame.Press(a, core.SourceTouch)
		}

	case tea.MouseActionRelease:
		for _, a := range touchActions {
			if m.touches[a] {
				delete(m.touches, a)
				m.frame.Release(a, core.SourceTouch)
			}
		}
	}
	return m, nil
}

func isSpace(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeySpace || msg.String() == " "
}

func buttonAt(l game.Layout, x, y int) (core.Action, bool) {
	switch {
	case l.Left.Contains(x, y):
		return core.ActionLeft, true
	case l.Right.Contains(x, y):
		return core.ActionRight, true
	case l.Jump.Contains(x, y):
		return core.ActionJump, true
	case l.Down.Contains(x, y):
		return core.ActionDown, true
	}
	return core.ActionNone, false
}

// handleResize processes window resize events. The world is kept in world
// units, so a resize only changes how it is drawn.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playRows(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the simulation by one fixed frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	dt := time.Second / time.Duration(m.config.TickRate)
	m.elapsed += dt
	m.holds.expire(m.elapsed, &m.frame)

	m.runner.Step(dt, m.frame)
	m.frame = core.NewInputFrame()

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.runner.Game().Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".hedgeheart", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("hedgeheart_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.runner.Game().Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program driving the runner. A nil history
// disables the run history screen.
func Run(r *runner.Runner, history RunSource, cfg core.RuntimeConfig) error {
	model := NewSessionModel(r, history, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // touch buttons
	)

	_, err := p.Run()
	return err
}
