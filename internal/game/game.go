// Package game implements the Hedgeheart runner: a hedgehog crosses a
// scrolling ground, dodging obstacles, while a countdown to the meeting with
// Hedgeheart ticks down. Passing obstacles takes time off the countdown;
// reaching the end spawns the winner heart.
package game

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hedgeheart/internal/config"
	"github.com/vovakirdan/hedgeheart/internal/core"
	"github.com/vovakirdan/hedgeheart/internal/countdown"
	"github.com/vovakirdan/hedgeheart/internal/sched"
)

const (
	flashLifetime = time.Second
	flashRise     = 50.0 // world units per second
)

// Options configures a Game.
type Options struct {
	Config config.GameConfig
	Seed   int64
	Now    func() time.Time
	Audio  Audio
	Logger *log.Logger
	OnEnd  func(Result)
}

// Flash is a floating score label shown when an obstacle is passed.
type Flash struct {
	Text string
	X, Y float64
	Age  time.Duration
}

// StepResult is returned by Tick.
type StepResult struct {
	State State
	// Observation is set on ticks that consumed a remote command.
	Observation *core.Observation
}

// Game owns one scene and the sessions played in it. It is not safe for
// concurrent use; the frame loop drives it.
type Game struct {
	cfg     config.GameConfig
	p       Provider
	cat     *Catalog
	sched   *sched.Scheduler
	diff    *Difficulty
	spawner *Spawner
	grid    Grid
	audio   Audio
	log     *log.Logger
	now     func() time.Time
	onEnd   func(Result)
	target  time.Time

	input    Aggregator
	rewarder Rewarder
	sess     Session
	remote   bool // a remote command was consumed this session

	player    core.EntityID
	ground    core.EntityID
	obstacles []*Obstacle
	clouds    []core.EntityID
	party     []core.EntityID
	flashes   []Flash
	scroll    float64
	lastMove  time.Duration
}

// New builds the scene in the before state.
func New(p Provider, opts Options) (*Game, error) {
	cfg := opts.Config
	cat, err := NewCatalog(cfg)
	if err != nil {
		return nil, err
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	target, err := countdown.Target(cfg.Countdown.Target, now())
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	audio := opts.Audio
	if audio == nil {
		audio = NewSilent()
	}

	g := &Game{
		cfg:    cfg,
		p:      p,
		cat:    cat,
		sched:  sched.New(),
		audio:  audio,
		log:    logger,
		now:    now,
		onEnd:  opts.OnEnd,
		target: target,
		diff:   NewDifficulty(cfg.Difficulty),
	}
	g.spawner = NewSpawner(opts.Seed, cat, cfg.Spawn, cfg.World, g.diff)
	g.grid = NewGrid(cfg.World.Width, cfg.World.Height, cfg.Remote.GridCols, cfg.Remote.GridRows)
	g.lastMove = -time.Hour

	g.buildScene()
	g.sess = Session{
		State: StateBefore,
		Score: countdown.RemainingSeconds(target, now()),
		Speed: g.diff.Speed(),
	}
	g.sess.Epoch = g.sched.NewEpoch()
	g.armAmbient()

	return g, nil
}

func (g *Game) buildScene() {
	w := g.cfg.World
	pc := g.cfg.Player

	g.ground = g.p.CreateStatic("ground", w.Width/2, w.GroundHeight-w.ColliderOffset, w.Width*1.2, 0)

	g.player = g.p.Create(core.BodySpec{
		Name:  "hedgehog",
		X:     pc.StartX,
		Y:     pc.StartY,
		W:     pc.Width,
		H:     pc.Height,
		Depth: pc.Depth,
	})
	g.p.SetBounce(g.player, pc.Bounce)
	g.p.SetCollideWorldBounds(g.player, true)
	g.p.SetFlipX(g.player, true)
	g.p.Collide(g.player, g.ground, nil)
	g.p.SetVelocityX(g.player, g.diff.Speed()*g.cfg.Difficulty.VelocityFactor*pc.LaunchFactor)
}

// armAmbient schedules the tasks that run in every live state: the one
// second clock and the background clouds.
func (g *Game) armAmbient() {
	g.sched.Every(time.Second, g.onSecond)
	if g.cfg.Decorations.Enabled {
		g.armCloud()
	}
}

// Start begins a new run. From after the scene is rebuilt; from during it is
// a forced restart.
func (g *Game) Start() {
	if g.sess.State == StateAfter {
		g.resetScene()
	}
	g.clearObstacles()

	g.diff.Reset()
	g.audio.SetRate(CuePass, 1)
	g.rewarder.Reset()
	g.remote = false
	g.sess = Session{
		State:     StateDuring,
		Score:     countdown.RemainingSeconds(g.target, g.now()),
		Speed:     g.diff.Speed(),
		StartedAt: g.now(),
	}
	g.sess.Epoch = g.sched.NewEpoch()
	g.armAmbient()
	g.armSpawn()

	g.log.Info("run started", "score", countdown.Format(g.sess.Score), "speed", g.sess.Speed, "epoch", g.sess.Epoch)
}

// resetScene undoes everything the end of a run left behind.
func (g *Game) resetScene() {
	for _, id := range append(g.clouds, g.party...) {
		g.p.Destroy(id)
	}
	g.clouds = nil
	g.party = nil
	g.flashes = nil

	pc := g.cfg.Player
	g.p.StopAnimations(g.player)
	g.p.SetTint(g.player, core.TintNone)
	g.p.SetPosition(g.player, pc.StartX, pc.StartY)
	g.p.SetVelocity(g.player, 0, 0)
	g.p.SetFlipX(g.player, true)
	g.p.Resume()
	g.input.Clear()
}

func (g *Game) clearObstacles() {
	for _, o := range g.obstacles {
		g.p.Destroy(o.ID)
	}
	g.obstacles = nil
}

func (g *Game) onSecond() {
	if g.sess.State == StateDuring {
		g.sess.Clock++
	}
	if g.sess.Score > 0 {
		g.sess.Score--
	}
	if g.sess.State == StateDuring && g.diff.Tick(g.sess.Clock) {
		g.sess.Speed = g.diff.Speed()
		g.audio.SetRate(CuePass, g.audio.Rate(CuePass)+g.cfg.Difficulty.PassCuePitchStep)
		g.log.Debug("speed up", "clock", g.sess.Clock, "speed", g.sess.Speed)
	}
}

func (g *Game) armSpawn() {
	g.sched.After(g.spawner.NextDelay(), func() {
		g.spawn(g.spawner.Pick())
		g.armSpawn()
	})
}

func (g *Game) armCloud() {
	dec := g.cfg.Decorations
	delay := time.Duration(g.spawner.Between(dec.MinDelayMs, dec.MaxDelayMs)) * time.Millisecond
	g.sched.After(delay, func() {
		g.addCloud()
		g.armCloud()
	})
}

// spawn puts an archetype into the world as live obstacles.
func (g *Game) spawn(a Archetype) []*Obstacle {
	var out []*Obstacle
	for _, pl := range g.spawner.Place(a) {
		id := g.place(pl)
		g.p.Collide(id, g.ground, nil)
		g.p.Collide(g.player, id, g.onCollide)
		o := &Obstacle{ID: id, Archetype: pl.Archetype, EffectiveScore: pl.EffectiveScore}
		g.obstacles = append(g.obstacles, o)
		out = append(out, o)
	}
	g.log.Debug("spawned", "name", a.Name, "count", len(out), "speed", g.diff.Speed())
	return out
}

// place creates the body for a placement without any collider.
func (g *Game) place(pl Placement) core.EntityID {
	a := pl.Archetype
	id := g.p.Create(core.BodySpec{Name: a.Sprite, X: pl.X, Y: pl.Y, W: a.Width, H: a.Height, Depth: a.Depth})
	g.p.SetGravity(id, pl.Gravity)
	g.p.SetVelocityX(id, pl.VX)
	g.p.Animate(id, pl.Motion)
	return id
}

func (g *Game) addCloud() {
	c := g.spawner.Cloud(g.cfg.Decorations)
	id := g.p.Create(core.BodySpec{Name: "cloud", X: c.X, Y: c.Y, W: c.W, H: c.H})
	g.p.SetGravity(id, -g.p.Gravity())
	g.p.SetVelocityX(id, c.VX)
	g.p.SetProperty(id, core.PropAlpha, c.Alpha)
	g.clouds = append(g.clouds, id)
}

func (g *Game) onCollide(_, other core.EntityID) {
	if g.sess.State != StateDuring {
		return
	}
	for _, o := range g.obstacles {
		if o.ID == other {
			g.end(o)
			return
		}
	}
}

// end moves the session to after. The winner heart celebrates; anything
// else knocks the hedgehog out.
func (g *Game) end(o *Obstacle) {
	g.sess.State = StateAfter
	g.sess.EndedAt = g.now()
	g.sess.Epoch = g.sched.NewEpoch()
	g.p.Pause()
	g.p.SetVelocity(g.player, 0, 0)

	_, h := g.p.Size()
	if o.Archetype.Winner {
		g.sess.Outcome = OutcomeWon
		g.p.SetTint(g.player, core.TintWinner)
		g.audio.Play(CueWinner)
		for _, a := range g.cat.Celebration {
			for _, pl := range g.spawner.Place(a) {
				g.party = append(g.party, g.place(pl))
			}
		}
		g.p.Animate(g.player, core.Motion{Tweens: []core.Tween{{
			Prop: core.PropY, By: -100, Duration: 500 * time.Millisecond,
			Ease: core.EaseSineIn, Yoyo: true, Repeat: core.RepeatForever,
		}}})
	} else {
		g.sess.Outcome = OutcomeLost
		g.p.SetTint(g.player, core.TintLost)
		g.audio.Play(CueHit)
		g.p.Animate(g.player, core.Motion{Tweens: []core.Tween{{
			Prop: core.PropY, By: h, Duration: time.Second, Ease: core.EaseBackIn,
		}}})
	}

	g.log.Info("run ended", "outcome", g.sess.Outcome, "by", o.Archetype.Name,
		"left", countdown.Format(g.sess.Score), "clock", g.sess.Clock, "passed", g.sess.Passed)

	if g.onEnd != nil {
		g.onEnd(Result{
			Outcome:   g.sess.Outcome,
			Score:     g.sess.Score,
			Clock:     g.sess.Clock,
			Speed:     g.sess.Speed,
			Passed:    g.sess.Passed,
			Remote:    g.remote,
			StartedAt: g.sess.StartedAt,
			EndedAt:   g.sess.EndedAt,
		})
	}
}

// Command applies a remote controller command.
func (g *Game) Command(c core.Command) {
	switch c {
	case core.CommandStart:
		if g.sess.CanStart() {
			g.Start()
		}
	case core.CommandReset:
		g.Start()
	default:
		g.input.Command(c)
	}
	g.remote = true
}

// Tick advances the game by dt: input, timers, player control, physics,
// pass tracking, obstacle steering, culling and the win check.
func (g *Game) Tick(dt time.Duration, in core.InputFrame) StepResult {
	for _, e := range in.Edges {
		if e.Action == core.ActionStart {
			if e.Pressed && g.sess.CanStart() {
				g.Start()
			}
			continue
		}
		g.input.Apply(e)
	}
	if in.Remote != nil {
		g.Command(*in.Remote)
	}

	g.sched.Advance(dt)
	g.control()
	g.p.Step(dt)

	if g.sess.State == StateDuring {
		g.trackPasses()
		g.steer()
		g.cull()
		g.checkWinner()
	}
	if g.sess.State != StateAfter {
		g.scroll += g.diff.Speed() * g.cfg.Difficulty.VelocityFactor * dt.Seconds()
	}
	g.ageFlashes(dt)

	res := StepResult{State: g.sess.State}
	if in.Remote != nil {
		obs := g.Observation()
		res.Observation = &obs
	}
	return res
}

// control turns the input record into player velocity.
func (g *Game) control() {
	if g.sess.State == StateAfter {
		return
	}
	pc := g.cfg.Player
	base := g.diff.Speed() * g.cfg.Difficulty.VelocityFactor
	in := g.input.Intent()

	if g.sess.State == StateDuring {
		g.p.SetVelocityX(g.player, -base)
	}
	switch {
	case in.Left:
		g.p.SetVelocityX(g.player, -base*pc.LeftFactor)
		g.p.SetFlipX(g.player, false)
		g.moveCue()
	case in.Right:
		g.p.SetVelocityX(g.player, base*pc.RightFactor)
		g.p.SetFlipX(g.player, true)
		g.moveCue()
	}

	onGround := g.p.OnGround(g.player)
	switch {
	case in.Jump && onGround:
		g.p.SetVelocityY(g.player, pc.JumpVelocity)
		g.audio.Play(CueJump)
	case in.Down && !onGround:
		g.p.SetVelocityY(g.player, pc.DropVelocity)
	}
}

func (g *Game) moveCue() {
	cooldown := time.Duration(g.cfg.Player.MoveCueCooldownMs) * time.Millisecond
	if now := g.sched.Now(); now-g.lastMove > cooldown {
		g.audio.Play(CueMove)
		g.lastMove = now
	}
}

func (g *Game) trackPasses() {
	px, _ := g.p.Position(g.player)
	for _, pass := range Track(px, g.obstacles, g.p.Position) {
		o := pass.Obstacle
		g.sess.Score -= o.EffectiveScore
		g.sess.Passed++
		if o.EffectiveScore > 0 {
			g.flashes = append(g.flashes, Flash{
				Text: "- " + countdown.Format(o.EffectiveScore),
				X:    pass.X,
				Y:    pass.Y - 50,
			})
			g.audio.Play(CuePass)
		}
	}
}

// steer keeps obstacle velocity in step with the platform speed. Obstacles
// that reached the left edge keep what they have.
func (g *Game) steer() {
	for _, o := range g.obstacles {
		x, _ := g.p.Position(o.ID)
		if x <= 0 {
			continue
		}
		vx := g.diff.Velocity(o.Archetype.SpeedFactor)
		if cur, _ := g.p.Velocity(o.ID); cur != vx {
			g.p.SetVelocityX(o.ID, vx)
		}
	}
}

// cull destroys entities that left the world on the left or bottom.
func (g *Game) cull() {
	_, h := g.p.Size()
	gone := func(id core.EntityID) bool {
		b := g.p.Box(id)
		return b.Right() < 0 || b.Top() > h
	}

	live := g.obstacles[:0]
	for _, o := range g.obstacles {
		if gone(o.ID) {
			g.p.Destroy(o.ID)
			continue
		}
		live = append(live, o)
	}
	for i := len(live); i < len(g.obstacles); i++ {
		g.obstacles[i] = nil
	}
	g.obstacles = live

	clouds := g.clouds[:0]
	for _, id := range g.clouds {
		if gone(id) {
			g.p.Destroy(id)
			continue
		}
		clouds = append(clouds, id)
	}
	g.clouds = clouds
}

func (g *Game) checkWinner() {
	if g.sess.WinnerTriggered || g.sess.Score >= g.cfg.Countdown.WinThreshold {
		return
	}
	g.sess.WinnerTriggered = true
	g.spawn(g.cat.Winner)
	g.log.Info("winner heart spawned", "score", g.sess.Score)
}

func (g *Game) ageFlashes(dt time.Duration) {
	live := g.flashes[:0]
	for _, f := range g.flashes {
		f.Age += dt
		if f.Age >= flashLifetime {
			continue
		}
		f.Y -= flashRise * dt.Seconds()
		live = append(live, f)
	}
	g.flashes = live
}

// Observation snapshots the grid for the remote controller and advances the
// reward baseline.
func (g *Game) Observation() core.Observation {
	px, py := g.p.Position(g.player)
	return core.Observation{
		State:  Observe(g.grid, [2]float64{px, py}, g.obstacles, g.p.Position),
		Reward: g.rewarder.Reward(g.sess.Score),
		Done:   g.sess.State == StateAfter,
	}
}

// Session returns a copy of the session state.
func (g *Game) Session() Session {
	return g.sess
}

// Obstacles returns a copy of the live obstacles.
func (g *Game) Obstacles() []Obstacle {
	out := make([]Obstacle, len(g.obstacles))
	for i, o := range g.obstacles {
		out[i] = *o
	}
	return out
}

// Player returns the player entity.
func (g *Game) Player() core.EntityID {
	return g.player
}

// Intent returns the current control record.
func (g *Game) Intent() Intent {
	return g.input.Intent()
}

// Decorations returns the number of clouds and celebration entities.
func (g *Game) Decorations() int {
	return len(g.clouds) + len(g.party)
}

// Target returns the countdown target.
func (g *Game) Target() time.Time {
	return g.target
}

// Status is the line shown under the world.
func (g *Game) Status() string {
	switch {
	case g.sess.State != StateAfter:
		return "Time to Hedgeheart: " + countdown.Format(g.sess.Score)
	case g.sess.Outcome == OutcomeWon:
		return "Congratulations! You made it to Hedgeheart!"
	default:
		return "Journey Over! Only " + countdown.Format(g.sess.Score) + " to go to Hedgeheart"
	}
}

// Prompt is the start control label, empty while a run is in progress.
func (g *Game) Prompt() string {
	switch g.sess.State {
	case StateBefore:
		return "Start game?"
	case StateAfter:
		return "Play again?"
	default:
		return ""
	}
}
