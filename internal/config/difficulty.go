package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. An empty value means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset. Normal keeps
// the loaded values.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	d := &cfg.Difficulty
	if IsFixedPreset(preset) {
		d.Enabled = false
		return
	}
	d.Enabled = true

	switch preset {
	case DifficultyEasy:
		d.BaseSpeed = d.IdleSpeed + (d.BaseSpeed-d.IdleSpeed)/2
		d.SpeedUpStep /= 2
		d.SpeedUpInterval *= 2
	case DifficultyHard:
		d.BaseSpeed += 1
		d.SpeedUpStep *= 1.5
		if d.SpeedUpInterval > 1 {
			d.SpeedUpInterval /= 2
		}
	}
}
