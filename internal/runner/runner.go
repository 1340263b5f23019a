// Package runner drives a game from a frame loop. It feeds the remote
// controller into the input frame, answers with observations and records
// finished runs.
package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hedgeheart/internal/config"
	"github.com/vovakirdan/hedgeheart/internal/core"
	"github.com/vovakirdan/hedgeheart/internal/game"
	"github.com/vovakirdan/hedgeheart/internal/physics"
	"github.com/vovakirdan/hedgeheart/internal/storage"
)

// Remote is the controller link as seen by the frame loop.
type Remote interface {
	Poll() (core.Command, bool)
	Send(obs core.Observation)
}

// Recorder persists finished runs.
type Recorder interface {
	SaveRun(r storage.Run) (int64, error)
}

// Options configures a Runner.
type Options struct {
	Config   config.GameConfig
	Seed     int64
	Player   string
	Recorder Recorder
	Remote   Remote
	Logger   *log.Logger
	Now      func() time.Time
}

// Runner owns one game and its physics world.
type Runner struct {
	game     *game.Game
	world    *physics.World
	remote   Remote
	recorder Recorder
	log      *log.Logger
	player   string
	seed     int64

	runs int
	last *game.Result
}

// New builds the world and the game.
func New(opts Options) (*Runner, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == "" {
		player = "local"
	}

	w := opts.Config.World
	r := &Runner{
		world:    physics.New(physics.Config{Width: w.Width, Height: w.Height, Gravity: w.Gravity}),
		remote:   opts.Remote,
		recorder: opts.Recorder,
		log:      logger,
		player:   player,
		seed:     opts.Seed,
	}

	g, err := game.New(r.world, game.Options{
		Config: opts.Config,
		Seed:   opts.Seed,
		Now:    opts.Now,
		Audio:  game.NewSilent(),
		Logger: logger,
		OnEnd:  r.record,
	})
	if err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}
	r.game = g
	return r, nil
}

// Game returns the driven game.
func (r *Runner) Game() *game.Game {
	return r.game
}

// Runs returns how many runs ended.
func (r *Runner) Runs() int {
	return r.runs
}

// Last returns the result of the latest finished run.
func (r *Runner) Last() (game.Result, bool) {
	if r.last == nil {
		return game.Result{}, false
	}
	return *r.last, true
}

// Step advances the game by one frame. A pending remote action joins the
// frame and is answered with an observation.
func (r *Runner) Step(dt time.Duration, in core.InputFrame) game.StepResult {
	if r.remote != nil {
		if c, ok := r.remote.Poll(); ok {
			in.SetRemote(c)
		}
	}
	res := r.game.Tick(dt, in)
	if res.Observation != nil && r.remote != nil {
		r.remote.Send(*res.Observation)
	}
	return res
}

func (r *Runner) record(res game.Result) {
	r.runs++
	r.last = &res
	if r.recorder == nil {
		return
	}
	run := storage.Run{
		Player:    r.player,
		Outcome:   outcomeName(res.Outcome),
		Score:     res.Score,
		Clock:     res.Clock,
		Speed:     res.Speed,
		Passed:    res.Passed,
		Remote:    res.Remote,
		Seed:      r.seed,
		StartedAt: res.StartedAt,
		EndedAt:   res.EndedAt,
	}
	if _, err := r.recorder.SaveRun(run); err != nil {
		r.log.Warn("could not save run", "err", err)
	}
}

func outcomeName(o game.Outcome) string {
	if o == game.OutcomeWon {
		return storage.OutcomeWon
	}
	return storage.OutcomeLost
}

// HeadlessOptions configures RunHeadless.
type HeadlessOptions struct {
	TickRate  int
	AutoStart bool // start a new run whenever none is in progress
	MaxRuns   int  // stop after this many finished runs, 0 for no limit
}

// RunHeadless drives the game in real time without a terminal until ctx is
// done or MaxRuns runs finished.
func (r *Runner) RunHeadless(ctx context.Context, opts HeadlessOptions) error {
	rate := core.RuntimeConfig{TickRate: opts.TickRate}.TickRateOrDefault()
	dt := time.Second / time.Duration(rate)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	r.log.Info("headless loop started", "fps", rate, "auto_start", opts.AutoStart)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		in := core.NewInputFrame()
		if opts.AutoStart && r.game.Session().CanStart() {
			in.Press(core.ActionStart, core.SourceKeyboard)
		}
		r.Step(dt, in)

		if opts.MaxRuns > 0 && r.runs >= opts.MaxRuns {
			r.log.Info("headless loop finished", "runs", r.runs)
			return nil
		}
	}
}
