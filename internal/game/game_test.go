package game

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/hedgeheart/internal/config"
	"github.com/vovakirdan/hedgeheart/internal/core"
	"github.com/vovakirdan/hedgeheart/internal/physics"
)

var _ Provider = (*physics.World)(nil)

const frame = time.Second / 60

var testNow = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// recordingAudio counts the cues a game plays.
type recordingAudio struct {
	*Silent
	plays map[Cue]int
}

func (a *recordingAudio) Play(c Cue) { a.plays[c]++ }

func (a *recordingAudio) Plays(c Cue) int { return a.plays[c] }

func newTestGame(t *testing.T, mutate func(*config.GameConfig)) (*Game, *physics.World, *recordingAudio) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Countdown.Target = "100s"
	cfg.Decorations.Enabled = false
	if mutate != nil {
		mutate(&cfg)
	}
	w := physics.New(physics.Config{Width: cfg.World.Width, Height: cfg.World.Height, Gravity: cfg.World.Gravity})
	audio := &recordingAudio{Silent: NewSilent(), plays: make(map[Cue]int)}
	g, err := New(w, Options{
		Config: cfg,
		Seed:   7,
		Now:    func() time.Time { return testNow },
		Audio:  audio,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g, w, audio
}

// noSpawns keeps the spawn chain quiet for the length of a test.
func noSpawns(cfg *config.GameConfig) {
	cfg.Spawn.MinGapMs = 10_000_000
	cfg.Spawn.MaxGapMs = 10_000_000
}

func run(g *Game, d time.Duration) {
	for i := 0; i < int(d/frame); i++ {
		g.Tick(frame, core.NewInputFrame())
	}
}

func rock(score int) Archetype {
	return Archetype{
		Name: "rock", Sprite: "cactus", SpeedFactor: 1, StartHeight: 300,
		Gravity: GravityUp, Width: 80, Height: 90, Score: score,
	}
}

// onPlayer moves an obstacle onto the player.
func onPlayer(g *Game, w *physics.World, o *Obstacle) {
	px, py := w.Position(g.player)
	w.SetPosition(o.ID, px, py)
}

func TestNewStartsBefore(t *testing.T) {
	g, w, _ := newTestGame(t, nil)

	s := g.Session()
	if s.State != StateBefore {
		t.Errorf("State = %v, expected before", s.State)
	}
	if s.Score != 100 {
		t.Errorf("Score = %d, expected 100", s.Score)
	}
	if s.Speed != 1 {
		t.Errorf("Speed = %v, expected idle speed 1", s.Speed)
	}
	if vx, _ := w.Velocity(g.Player()); vx != 1800 {
		t.Errorf("player launch vx = %v, expected 1800", vx)
	}
	if g.Prompt() != "Start game?" {
		t.Errorf("Prompt() = %q, expected %q", g.Prompt(), "Start game?")
	}
}

func TestBeforeClockCountsDownOnly(t *testing.T) {
	g, _, _ := newTestGame(t, nil)

	run(g, 3*time.Second+frame)

	s := g.Session()
	if s.Score != 97 {
		t.Errorf("Score = %d, expected 97", s.Score)
	}
	if s.Clock != 0 {
		t.Errorf("Clock = %d, expected 0 before a run", s.Clock)
	}
	if len(g.Obstacles()) != 0 {
		t.Error("no obstacles should spawn before a run")
	}
}

func TestCollisionLoses(t *testing.T) {
	var results []Result
	g, w, audio := newTestGame(t, nil)
	g.onEnd = func(r Result) { results = append(results, r) }
	g.Start()
	g.Tick(frame, core.NewInputFrame())

	obs := g.spawn(rock(3600))
	if obs[0].EffectiveScore != 7200 {
		t.Fatalf("EffectiveScore = %d, expected 7200 at speed 2", obs[0].EffectiveScore)
	}
	onPlayer(g, w, obs[0])
	res := g.Tick(frame, core.NewInputFrame())

	s := g.Session()
	if res.State != StateAfter || s.State != StateAfter {
		t.Fatalf("State = %v, expected after", s.State)
	}
	if s.Outcome != OutcomeLost {
		t.Errorf("Outcome = %v, expected lost", s.Outcome)
	}
	if vx, vy := w.Velocity(g.Player()); vx != 0 || vy != 0 {
		t.Errorf("player velocity = (%v, %v), expected zero", vx, vy)
	}
	if !w.Paused() {
		t.Error("world should be paused")
	}
	if audio.Plays(CueHit) != 1 {
		t.Errorf("hit cue played %d times, expected 1", audio.Plays(CueHit))
	}
	if g.Prompt() != "Play again?" {
		t.Errorf("Prompt() = %q, expected the restart control", g.Prompt())
	}
	if !strings.HasPrefix(g.Status(), "Journey Over! Only ") {
		t.Errorf("Status() = %q, expected the final score message", g.Status())
	}
	if len(results) != 1 || results[0].Outcome != OutcomeLost {
		t.Errorf("OnEnd results = %+v, expected one lost result", results)
	}
}

func TestRemoteStartFromBefore(t *testing.T) {
	g, _, _ := newTestGame(t, nil)

	in := core.NewInputFrame()
	in.SetRemote(core.CommandStart)
	res := g.Tick(frame, in)

	s := g.Session()
	if s.State != StateDuring {
		t.Fatalf("State = %v, expected during", s.State)
	}
	if s.Clock != 0 || s.Speed != 2 || s.WinnerTriggered {
		t.Errorf("session = %+v, expected a fresh run", s)
	}
	if res.Observation == nil {
		t.Fatal("a remote command should produce an observation")
	}
	if res.Observation.Done {
		t.Error("Done = true during a run")
	}
	if res.Observation.Reward != 0 {
		t.Errorf("first Reward = %d, expected 0", res.Observation.Reward)
	}
	if len(res.Observation.State) != 10 || len(res.Observation.State[0]) != 10 {
		t.Errorf("grid = %dx%d, expected 10x10", len(res.Observation.State), len(res.Observation.State[0]))
	}
}

func TestRemoteStartIgnoredDuring(t *testing.T) {
	g, _, _ := newTestGame(t, noSpawns)
	g.Start()
	run(g, 2*time.Second+frame)
	epoch := g.Session().Epoch

	in := core.NewInputFrame()
	in.SetRemote(core.CommandStart)
	g.Tick(frame, in)

	if s := g.Session(); s.Epoch != epoch || s.Clock != 2 {
		t.Errorf("Start during a run restarted it: %+v", s)
	}

	in = core.NewInputFrame()
	in.SetRemote(core.CommandReset)
	g.Tick(frame, in)
	if s := g.Session(); s.Epoch == epoch || s.Clock != 0 {
		t.Errorf("Reset should force a restart, got %+v", s)
	}
}

func TestRemoteMovementOverwritesIntent(t *testing.T) {
	g, _, _ := newTestGame(t, nil)

	in := core.NewInputFrame()
	in.Press(core.ActionLeft, core.SourceKeyboard)
	in.Press(core.ActionDown, core.SourceTouch)
	g.Tick(frame, in)

	in = core.NewInputFrame()
	in.SetRemote(core.CommandJump)
	g.Tick(frame, in)

	if got := g.Intent(); got != (Intent{Jump: true}) {
		t.Errorf("Intent() = %+v, expected only jump", got)
	}
}

func TestNoneCommandOnlyObserves(t *testing.T) {
	g, _, _ := newTestGame(t, noSpawns)

	in := core.NewInputFrame()
	in.Press(core.ActionLeft, core.SourceKeyboard)
	g.Tick(frame, in)

	in = core.NewInputFrame()
	in.SetRemote(core.CommandNone)
	res := g.Tick(frame, in)

	if res.Observation == nil {
		t.Fatal("a remote message without an action should still be answered")
	}
	if got := g.Intent(); got != (Intent{Left: true}) {
		t.Errorf("Intent() = %+v, expected left to stay held", got)
	}
	if got := g.Session().State; got != StateBefore {
		t.Errorf("State = %v, expected %v", got, StateBefore)
	}
}

func TestWinnerSpawnsOnce(t *testing.T) {
	g, _, _ := newTestGame(t, func(cfg *config.GameConfig) {
		noSpawns(cfg)
		cfg.Countdown.Target = "5s"
	})
	g.Start()

	run(g, 500*time.Millisecond)

	hearts := 0
	for _, o := range g.Obstacles() {
		if o.Archetype.Winner {
			hearts++
		}
	}
	if hearts != 1 {
		t.Errorf("hearts = %d, expected exactly 1", hearts)
	}
	if !g.Session().WinnerTriggered {
		t.Error("WinnerTriggered = false after the heart spawned")
	}
}

func TestWinnerCollisionCelebrates(t *testing.T) {
	var results []Result
	g, w, audio := newTestGame(t, func(cfg *config.GameConfig) {
		noSpawns(cfg)
		cfg.Countdown.Target = "5s"
	})
	g.onEnd = func(r Result) { results = append(results, r) }
	g.Start()
	g.Tick(frame, core.NewInputFrame())

	obs := g.Obstacles()
	if len(obs) != 1 {
		t.Fatalf("obstacles = %d, expected the heart only", len(obs))
	}
	onPlayer(g, w, g.obstacles[0])
	g.Tick(frame, core.NewInputFrame())

	s := g.Session()
	if s.State != StateAfter || s.Outcome != OutcomeWon {
		t.Fatalf("session = %v/%v, expected after/won", s.State, s.Outcome)
	}
	if audio.Plays(CueWinner) != 1 || audio.Plays(CueHit) != 0 {
		t.Errorf("cues winner=%d hit=%d, expected 1 and 0", audio.Plays(CueWinner), audio.Plays(CueHit))
	}
	if g.Decorations() != len(g.cat.Celebration) {
		t.Errorf("Decorations() = %d, expected %d celebration entities", g.Decorations(), len(g.cat.Celebration))
	}
	if g.Status() != "Congratulations! You made it to Hedgeheart!" {
		t.Errorf("Status() = %q", g.Status())
	}
	for _, sp := range w.Sprites() {
		if sp.ID == g.Player() && sp.Tint != core.TintWinner {
			t.Errorf("player tint = %v, expected winner tint", sp.Tint)
		}
	}
	if len(results) != 1 || results[0].Outcome != OutcomeWon {
		t.Errorf("OnEnd results = %+v, expected one won result", results)
	}
}

func TestRestartResets(t *testing.T) {
	g, w, _ := newTestGame(t, nil)
	g.Start()
	run(g, 2*time.Second+frame)
	g.spawn(rock(10))
	onPlayer(g, w, g.obstacles[len(g.obstacles)-1])
	g.Tick(frame, core.NewInputFrame())
	if g.Session().State != StateAfter {
		t.Fatal("expected the run to end")
	}
	ended := g.Session()

	in := core.NewInputFrame()
	in.Press(core.ActionStart, core.SourceKeyboard)
	g.Tick(frame, in)

	s := g.Session()
	if s.State != StateDuring {
		t.Fatalf("State = %v, expected during", s.State)
	}
	if s.Clock != 0 || s.Score != 100 || s.Speed != 2 || s.WinnerTriggered || s.Outcome != OutcomeNone {
		t.Errorf("session = %+v, expected a fresh run", s)
	}
	if s.Epoch <= ended.Epoch {
		t.Errorf("Epoch = %d, expected more than %d", s.Epoch, ended.Epoch)
	}
	if n := len(g.Obstacles()); n != 0 {
		t.Errorf("obstacles = %d, expected none after restart", n)
	}
	if w.Paused() {
		t.Error("world should resume on restart")
	}
	for _, sp := range w.Sprites() {
		if sp.ID == g.Player() && sp.Tint != core.TintNone {
			t.Errorf("player tint = %v, expected none", sp.Tint)
		}
	}
}

func TestAfterCancelsScheduledTasks(t *testing.T) {
	g, w, _ := newTestGame(t, func(cfg *config.GameConfig) {
		cfg.Spawn.MinGapMs = 500
		cfg.Spawn.MaxGapMs = 500
	})
	g.Start()
	g.Tick(frame, core.NewInputFrame())
	g.spawn(rock(10))
	onPlayer(g, w, g.obstacles[len(g.obstacles)-1])
	g.Tick(frame, core.NewInputFrame())
	ended := g.Session()
	count := len(g.Obstacles())

	run(g, 5*time.Second)

	s := g.Session()
	if s.Score != ended.Score || s.Clock != ended.Clock {
		t.Errorf("score/clock moved after the run ended: %d/%d, expected %d/%d", s.Score, s.Clock, ended.Score, ended.Clock)
	}
	if n := len(g.Obstacles()); n != count {
		t.Errorf("obstacles = %d, expected %d with spawning cancelled", n, count)
	}
}

func TestPassScoresOnce(t *testing.T) {
	g, w, audio := newTestGame(t, noSpawns)
	g.Start()
	g.Tick(frame, core.NewInputFrame())

	o := g.spawn(rock(3))[0]
	px, _ := w.Position(g.player)
	w.SetPosition(o.ID, px-150, 100)

	g.Tick(frame, core.NewInputFrame())
	g.Tick(frame, core.NewInputFrame())

	s := g.Session()
	if s.Passed != 1 {
		t.Errorf("Passed = %d, expected 1", s.Passed)
	}
	if s.Score != 100-6 {
		t.Errorf("Score = %d, expected %d", s.Score, 100-6)
	}
	if audio.Plays(CuePass) != 1 {
		t.Errorf("pass cue played %d times, expected 1", audio.Plays(CuePass))
	}
	flashes := g.flashes
	if len(flashes) != 1 || flashes[0].Text != "- 6 seconds" {
		t.Errorf("flashes = %+v, expected one %q", flashes, "- 6 seconds")
	}

	run(g, time.Second+frame)
	if len(g.flashes) != 0 {
		t.Error("flash should fade after a second")
	}
}

func TestZeroScorePassIsSilent(t *testing.T) {
	g, w, audio := newTestGame(t, noSpawns)
	g.Start()

	o := g.spawn(rock(0))[0]
	px, _ := w.Position(g.player)
	w.SetPosition(o.ID, px-150, 100)
	g.Tick(frame, core.NewInputFrame())

	if g.Session().Passed != 1 {
		t.Error("a zero score obstacle still counts as passed")
	}
	if audio.Plays(CuePass) != 0 || len(g.flashes) != 0 {
		t.Error("zero score passes should not flash or play the pass cue")
	}
}

func TestSpeedIsMonotonic(t *testing.T) {
	g, _, audio := newTestGame(t, noSpawns)
	g.Start()

	prev := g.Session().Speed
	for i := 0; i < 35; i++ {
		run(g, time.Second)
		s := g.Session()
		if s.Speed < prev {
			t.Fatalf("speed dropped from %v to %v at clock %d", prev, s.Speed, s.Clock)
		}
		prev = s.Speed
	}
	if prev <= 2 {
		t.Errorf("Speed = %v, expected speed-ups after 35 seconds", prev)
	}
	if rate := audio.Rate(CuePass); rate <= 1 {
		t.Errorf("pass cue rate = %v, expected it to rise with speed", rate)
	}
}

func TestRestartResetsPassCuePitch(t *testing.T) {
	g, _, audio := newTestGame(t, noSpawns)
	g.Start()
	run(g, 25*time.Second)
	if rate := audio.Rate(CuePass); rate <= 1 {
		t.Fatalf("pass cue rate = %v, expected it to rise during the run", rate)
	}

	g.Command(core.CommandReset)
	if rate := audio.Rate(CuePass); rate != 1 {
		t.Errorf("pass cue rate = %v after restart, expected 1", rate)
	}
}

func TestClusterSpawnsMembers(t *testing.T) {
	g, _, _ := newTestGame(t, noSpawns)
	g.Start()

	var cluster Archetype
	for _, a := range g.cat.Obstacles {
		if a.Cluster() {
			cluster = a
		}
	}
	obs := g.spawn(cluster)
	if len(obs) != len(cluster.Members) {
		t.Fatalf("spawned %d, expected %d members", len(obs), len(cluster.Members))
	}
	if obs[0].EffectiveScore != cluster.Score*2 {
		t.Errorf("first member score = %d, expected %d", obs[0].EffectiveScore, cluster.Score*2)
	}
	for _, o := range obs[1:] {
		if o.EffectiveScore != 0 {
			t.Errorf("other member score = %d, expected 0", o.EffectiveScore)
		}
	}
}

func TestObstaclesFollowSpeed(t *testing.T) {
	g, w, _ := newTestGame(t, noSpawns)
	g.Start()
	o := g.spawn(rock(1))[0]
	w.SetPosition(o.ID, 700, 100)

	g.diff.speed = 3
	g.Tick(frame, core.NewInputFrame())

	if vx, _ := w.Velocity(o.ID); vx != -180 {
		t.Errorf("vx = %v, expected -180 at speed 3", vx)
	}
	if o.EffectiveScore != 2 {
		t.Errorf("EffectiveScore = %d, should stay fixed at spawn", o.EffectiveScore)
	}
}

func TestOffscreenObstaclesAreCulled(t *testing.T) {
	g, w, _ := newTestGame(t, noSpawns)
	g.Start()
	o := g.spawn(rock(1))[0]
	w.SetPosition(o.ID, -100, 100)

	g.Tick(frame, core.NewInputFrame())

	if len(g.Obstacles()) != 0 {
		t.Error("obstacle past the left edge should be culled")
	}
	if w.Exists(o.ID) {
		t.Error("culled obstacle body should be destroyed")
	}
}

func TestJumpOnlyFromGround(t *testing.T) {
	g, w, audio := newTestGame(t, noSpawns)
	g.Start()
	run(g, 2*time.Second)
	if !w.OnGround(g.Player()) {
		t.Fatal("player should have landed")
	}

	in := core.NewInputFrame()
	in.Press(core.ActionJump, core.SourceKeyboard)
	g.Tick(frame, in)
	if _, vy := w.Velocity(g.Player()); vy >= 0 {
		t.Errorf("vy = %v, expected an upward jump", vy)
	}
	g.Tick(frame, core.NewInputFrame())
	if audio.Plays(CueJump) != 1 {
		t.Errorf("jump cue played %d times, expected 1 while airborne", audio.Plays(CueJump))
	}
}

func TestGameDeterminism(t *testing.T) {
	play := func() (Session, []string) {
		g, _, _ := newTestGame(t, nil)
		g.Start()
		for i := 0; i < 30*60 && g.Session().State == StateDuring; i++ {
			in := core.NewInputFrame()
			if i%40 == 0 {
				in.Press(core.ActionJump, core.SourceKeyboard)
			} else if i%40 == 1 {
				in.Release(core.ActionJump, core.SourceKeyboard)
			}
			g.Tick(frame, in)
		}
		var names []string
		for _, o := range g.Obstacles() {
			names = append(names, o.Archetype.Name)
		}
		return g.Session(), names
	}

	s1, n1 := play()
	s2, n2 := play()
	if s1 != s2 {
		t.Errorf("sessions differ:\n%+v\n%+v", s1, s2)
	}
	if strings.Join(n1, ",") != strings.Join(n2, ",") {
		t.Errorf("obstacles differ: %v vs %v", n1, n2)
	}
}

func TestRenderShowsPromptAndHUD(t *testing.T) {
	g, _, _ := newTestGame(t, nil)
	run(g, frame)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Start game?", "Time to Hedgeheart: ", "Spd: 1.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("frame does not contain %q", want)
		}
	}

	l := g.Layout(80, 24)
	if l.Prompt.W == 0 {
		t.Error("Layout().Prompt should be set before a run")
	}
	g.Start()
	if l := g.Layout(80, 24); l.Prompt.W != 0 {
		t.Error("Layout().Prompt should be hidden during a run")
	}
	if l.Jump.Y != 23 || l.Left.Y != 23 {
		t.Errorf("touch buttons at rows %d/%d, expected the bottom row", l.Left.Y, l.Jump.Y)
	}
}
