package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/hedgeheart/internal/config"
)

// Gravity is the direction of the extra gravity an obstacle body receives.
type Gravity int

const (
	GravityDown Gravity = iota // doubles world gravity, obstacle drops to the ground
	GravityUp                  // cancels world gravity, obstacle floats
	GravityNone                // world gravity only
)

func (g Gravity) String() string {
	switch g {
	case GravityDown:
		return "down"
	case GravityUp:
		return "up"
	case GravityNone:
		return "none"
	default:
		return "unknown"
	}
}

// Pattern is the closed set of obstacle motions.
type Pattern int

const (
	PatternNone Pattern = iota
	PatternWobble
	PatternLeftRight
	PatternLeftRightX
	PatternUpDown
	PatternDiveBomb
	PatternLeapUp
	PatternTrot
	PatternFlyBy
	PatternAppear
	PatternParty
	PatternWinnerHeart
)

var patternNames = map[string]Pattern{
	"none":        PatternNone,
	"wobble":      PatternWobble,
	"leftright":   PatternLeftRight,
	"leftrightx":  PatternLeftRightX,
	"updown":      PatternUpDown,
	"divebomb":    PatternDiveBomb,
	"leapup":      PatternLeapUp,
	"trot":        PatternTrot,
	"flyby":       PatternFlyBy,
	"appear":      PatternAppear,
	"party":       PatternParty,
	"winnerheart": PatternWinnerHeart,
}

// String returns the YAML name of the pattern.
func (p Pattern) String() string {
	for name, v := range patternNames {
		if v == p {
			return name
		}
	}
	return "unknown"
}

// ParsePattern converts a YAML motion name. Matching ignores case, dashes and
// underscores; an empty name means none.
func ParsePattern(s string) (Pattern, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(strings.TrimSpace(s)))
	if key == "" {
		return PatternNone, nil
	}
	if p, ok := patternNames[key]; ok {
		return p, nil
	}
	return PatternNone, fmt.Errorf("unknown motion %q", s)
}

// ParseGravity converts a YAML gravity name. An empty name means down.
func ParseGravity(s string) (Gravity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "down":
		return GravityDown, nil
	case "up":
		return GravityUp, nil
	case "none":
		return GravityNone, nil
	default:
		return GravityDown, fmt.Errorf("unknown gravity %q", s)
	}
}

// Archetype is an immutable description of one kind of obstacle.
type Archetype struct {
	Name           string
	Sprite         string
	SpeedFactor    float64
	StartHeight    float64
	Gravity        Gravity
	Width          float64
	Height         float64
	XOffset        float64
	Pattern        Pattern
	MotionDuration time.Duration
	Depth          int
	Score          int         // seconds taken off the countdown when passed
	Members        []Archetype // non-empty for a cluster
	Winner         bool        // the terminal heart
}

// Cluster reports whether the archetype spawns several members at once.
func (a Archetype) Cluster() bool {
	return len(a.Members) > 0
}

// Expand returns the archetypes to instantiate. A cluster yields its members
// with the cluster score on the first member; anything else yields itself.
func (a Archetype) Expand() []Archetype {
	if !a.Cluster() {
		return []Archetype{a}
	}
	out := make([]Archetype, len(a.Members))
	copy(out, a.Members)
	for i := range out {
		out[i].Score = 0
	}
	out[0].Score = a.Score
	return out
}

// Catalog holds every archetype of a run. Obstacles are ordered by
// difficulty; the spawner draws from a prefix that grows with speed.
type Catalog struct {
	Obstacles   []Archetype
	Winner      Archetype
	Celebration []Archetype
}

// NewCatalog validates the configured archetypes.
func NewCatalog(cfg config.GameConfig) (*Catalog, error) {
	var errs []error
	cat := &Catalog{}

	for i, ac := range cfg.Catalog {
		a, err := buildArchetype(ac, true)
		if err != nil {
			errs = append(errs, fmt.Errorf("catalog[%d]: %w", i, err))
			continue
		}
		cat.Obstacles = append(cat.Obstacles, a)
	}
	if len(cfg.Catalog) == 0 {
		errs = append(errs, errors.New("catalog is empty"))
	}

	winner, err := buildArchetype(cfg.Winner, false)
	if err != nil {
		errs = append(errs, fmt.Errorf("winner: %w", err))
	}
	winner.Winner = true
	cat.Winner = winner

	for i, ac := range cfg.Celebration {
		a, err := buildArchetype(ac, false)
		if err != nil {
			errs = append(errs, fmt.Errorf("celebration[%d]: %w", i, err))
			continue
		}
		cat.Celebration = append(cat.Celebration, a)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("game: invalid catalog: %w", err)
	}
	return cat, nil
}

func buildArchetype(ac config.ArchetypeConfig, allowMembers bool) (Archetype, error) {
	if strings.TrimSpace(ac.Name) == "" {
		return Archetype{}, errors.New("missing name")
	}

	if len(ac.Members) > 0 {
		if !allowMembers {
			return Archetype{}, fmt.Errorf("%s: clusters cannot be nested", ac.Name)
		}
		a := Archetype{Name: ac.Name, Score: ac.Score}
		for i, mc := range ac.Members {
			m, err := buildArchetype(mc, false)
			if err != nil {
				return Archetype{}, fmt.Errorf("%s member %d: %w", ac.Name, i, err)
			}
			a.Members = append(a.Members, m)
		}
		return a, nil
	}

	gravity, err := ParseGravity(ac.Gravity)
	if err != nil {
		return Archetype{}, fmt.Errorf("%s: %w", ac.Name, err)
	}
	pattern, err := ParsePattern(ac.Motion)
	if err != nil {
		return Archetype{}, fmt.Errorf("%s: %w", ac.Name, err)
	}
	if ac.Width <= 0 || ac.Height <= 0 {
		return Archetype{}, fmt.Errorf("%s: size must be positive, got %vx%v", ac.Name, ac.Width, ac.Height)
	}
	if ac.SpeedFactor < 0 {
		return Archetype{}, fmt.Errorf("%s: speed_factor must not be negative", ac.Name)
	}

	sprite := ac.Sprite
	if sprite == "" {
		sprite = ac.Name
	}
	return Archetype{
		Name:           ac.Name,
		Sprite:         sprite,
		SpeedFactor:    ac.SpeedFactor,
		StartHeight:    ac.StartHeight,
		Gravity:        gravity,
		Width:          ac.Width,
		Height:         ac.Height,
		XOffset:        ac.XOffset,
		Pattern:        pattern,
		MotionDuration: time.Duration(ac.MotionDuration) * time.Millisecond,
		Depth:          ac.Depth,
		Score:          ac.Score,
	}, nil
}
