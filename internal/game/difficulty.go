package game

import (
	"math"

	"github.com/vovakirdan/hedgeheart/internal/config"
)

// Difficulty owns the platform speed. Speed only moves up within a session.
type Difficulty struct {
	cfg   config.DifficultyConfig
	speed float64
}

// NewDifficulty creates a controller at idle speed.
func NewDifficulty(cfg config.DifficultyConfig) *Difficulty {
	return &Difficulty{cfg: cfg, speed: cfg.IdleSpeed}
}

// Reset returns to the base speed of a fresh run.
func (d *Difficulty) Reset() {
	d.speed = d.cfg.BaseSpeed
}

// Speed returns the current platform speed.
func (d *Difficulty) Speed() float64 {
	return d.speed
}

// Tick is called once per second with the game clock after it advanced.
// It returns true when the speed was raised.
func (d *Difficulty) Tick(clock int) bool {
	if !d.cfg.Enabled || d.cfg.SpeedUpInterval <= 0 {
		return false
	}
	if clock > 0 && clock%d.cfg.SpeedUpInterval == 0 {
		d.speed += d.cfg.SpeedUpStep
		return true
	}
	return false
}

// Velocity returns the horizontal velocity for a speed factor at the current
// platform speed. Obstacles travel right to left.
func (d *Difficulty) Velocity(speedFactor float64) float64 {
	return -d.speed * d.cfg.VelocityFactor * speedFactor
}

// Eligible returns how many catalog entries the spawner may pick from.
func (d *Difficulty) Eligible(catalogLen int) int {
	n := int(math.Round(d.speed * d.cfg.EligibilityFactor))
	return max(1, min(catalogLen, n))
}

// EffectiveScore scales an archetype score by the speed at spawn.
func (d *Difficulty) EffectiveScore(score int) int {
	return int(math.Round(float64(score) * d.speed))
}
