package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/hedgeheart/internal/config"
	"github.com/vovakirdan/hedgeheart/internal/core"
)

// Obstacle is a live obstacle in the world. Position and velocity live in
// the provider.
type Obstacle struct {
	ID             core.EntityID
	Archetype      Archetype
	Passed         bool
	EffectiveScore int // fixed at spawn
}

// Placement is everything needed to put one archetype into the world.
type Placement struct {
	Archetype      Archetype
	X, Y           float64
	VX             float64
	Gravity        float64 // body gravity on top of world gravity
	Motion         core.Motion
	EffectiveScore int
}

// Spawner picks and places obstacles. All randomness of a run goes through
// its seeded source so runs replay from a seed.
type Spawner struct {
	rng   *rand.Rand
	cat   *Catalog
	cfg   config.SpawnConfig
	world config.WorldConfig
	diff  *Difficulty
}

// NewSpawner creates a spawner with the given RNG seed.
func NewSpawner(seed int64, cat *Catalog, cfg config.SpawnConfig, world config.WorldConfig, diff *Difficulty) *Spawner {
	return &Spawner{
		rng:   rand.New(rand.NewSource(seed)),
		cat:   cat,
		cfg:   cfg,
		world: world,
		diff:  diff,
	}
}

// Between returns a uniform integer in [lo, hi].
func (s *Spawner) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// NextDelay returns the wait before the next spawn. Faster platforms spawn
// more often.
func (s *Spawner) NextDelay() time.Duration {
	speed := s.diff.Speed()
	lo := int(float64(s.cfg.MinGapMs) / speed)
	hi := int(float64(s.cfg.MaxGapMs) / speed)
	return time.Duration(s.Between(lo, hi)) * time.Millisecond
}

// Pick selects an archetype from the eligible prefix of the catalog.
func (s *Spawner) Pick() Archetype {
	n := s.diff.Eligible(len(s.cat.Obstacles))
	return s.cat.Obstacles[s.rng.Intn(n)]
}

// Place expands a into placements at the current speed.
func (s *Spawner) Place(a Archetype) []Placement {
	members := a.Expand()
	out := make([]Placement, 0, len(members))
	for _, m := range members {
		out = append(out, s.place(m))
	}
	return out
}

func (s *Spawner) place(a Archetype) Placement {
	var delay time.Duration
	if a.Pattern.delayed() {
		delay = time.Duration(s.Between(0, 1000)) * time.Millisecond
	}
	return Placement{
		Archetype: a,
		X:         s.world.Width + s.cfg.Margin + a.XOffset,
		Y:         a.StartHeight,
		VX:        s.diff.Velocity(a.SpeedFactor),
		Gravity:   s.gravity(a.Gravity),
		Motion: Motion(a, MotionEnv{
			WorldW:         s.world.Width,
			WorldH:         s.world.Height,
			PlatformSpeed:  s.diff.Speed(),
			VelocityFactor: s.diff.cfg.VelocityFactor,
			StartY:         a.StartHeight,
			Delay:          delay,
		}),
		EffectiveScore: s.diff.EffectiveScore(a.Score),
	}
}

func (s *Spawner) gravity(g Gravity) float64 {
	switch g {
	case GravityUp:
		return -s.world.Gravity
	case GravityDown:
		return s.world.Gravity
	default:
		return 0
	}
}

// Cloud is a background decoration placement.
type Cloud struct {
	X, Y  float64
	W, H  float64
	Alpha float64
	VX    float64
}

// Cloud rolls a new background cloud. Higher clouds are smaller and, being
// smaller, drift faster.
func (s *Spawner) Cloud(dec config.DecorationsConfig) Cloud {
	y := float64(s.Between(int(dec.MinHeight), int(dec.MaxHeight)))
	w := math.Max(20, 300-y*0.5)
	return Cloud{
		X:     s.world.Width + 100,
		Y:     y,
		W:     w,
		H:     w * 0.5,
		Alpha: float64(s.Between(5, 8)) / 10,
		VX:    s.diff.Velocity(250 / w),
	}
}
