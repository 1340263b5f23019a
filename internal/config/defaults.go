package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/hedgeheart.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}

// DefaultConfig returns the embedded default configuration. If the embedded
// document cannot be parsed it falls back to a minimal hardcoded world with a
// single obstacle kind.
func DefaultConfig() GameConfig {
	var cfg GameConfig
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return fallbackConfig()
	}
	return cfg
}

func fallbackConfig() GameConfig {
	cactus := ArchetypeConfig{
		Name:        "cactusS",
		Sprite:      "cactus",
		SpeedFactor: 1,
		StartHeight: 480,
		Gravity:     "down",
		Width:       80,
		Height:      90,
		Motion:      "none",
		Depth:       5,
		Score:       3600,
	}
	return GameConfig{
		World: WorldConfig{
			Width:          800,
			Height:         600,
			GroundHeight:   565,
			ColliderOffset: 28,
			Gravity:        2000,
		},
		Player: PlayerConfig{
			StartX:            200,
			Width:             100,
			Height:            70,
			Depth:             99,
			Bounce:            0.2,
			LaunchFactor:      30,
			LeftFactor:        4.5,
			RightFactor:       3,
			JumpVelocity:      -1200,
			DropVelocity:      400,
			MoveCueCooldownMs: 250,
		},
		Difficulty: DifficultyConfig{
			Enabled:           true,
			IdleSpeed:         1,
			BaseSpeed:         2,
			VelocityFactor:    60,
			SpeedUpInterval:   10,
			SpeedUpStep:       0.2,
			EligibilityFactor: 3,
			PassCuePitchStep:  0.05,
		},
		Spawn: SpawnConfig{
			MinGapMs: 4000,
			MaxGapMs: 9000,
			Margin:   50,
		},
		Countdown: CountdownConfig{
			Target:       "6h",
			WinThreshold: 10,
		},
		Decorations: DecorationsConfig{
			Enabled:    true,
			MinDelayMs: 300,
			MaxDelayMs: 2000,
			MinHeight:  100,
			MaxHeight:  350,
		},
		Remote: RemoteConfig{
			URL:                 "ws://localhost:8081",
			ReconnectIntervalMs: 3000,
			MaxRetries:          5,
			GridCols:            10,
			GridRows:            10,
		},
		Catalog: []ArchetypeConfig{cactus},
		Winner: ArchetypeConfig{
			Name:        "cyanHeart",
			Sprite:      "heart",
			SpeedFactor: 3,
			StartHeight: 350,
			Gravity:     "none",
			Width:       400,
			Height:      360,
			Motion:      "winnerheart",
			Depth:       1,
		},
	}
}
