// Package config provides YAML-based game configuration loading and
// difficulty presets for the runner.
package config

// GameConfig contains all configuration for a Hedgeheart run.
type GameConfig struct {
	World       WorldConfig       `yaml:"world"`
	Player      PlayerConfig      `yaml:"player"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
	Spawn       SpawnConfig       `yaml:"spawn"`
	Countdown   CountdownConfig   `yaml:"countdown"`
	Decorations DecorationsConfig `yaml:"decorations"`
	Remote      RemoteConfig      `yaml:"remote"`
	Catalog     []ArchetypeConfig `yaml:"catalog"`
	Winner      ArchetypeConfig   `yaml:"winner"`
	Celebration []ArchetypeConfig `yaml:"celebration"`
}

// WorldConfig defines the world geometry in world units (pixels of the
// reference 800x600 scene).
type WorldConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	GroundHeight   float64 `yaml:"ground_height"`   // y of the ground strip center
	ColliderOffset float64 `yaml:"collider_offset"` // static collider sits this far above the ground strip
	Gravity        float64 `yaml:"gravity"`
}

// PlayerConfig defines the player body and its movement factors.
type PlayerConfig struct {
	StartX            float64 `yaml:"start_x"`
	StartY            float64 `yaml:"start_y"`
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	Depth             int     `yaml:"depth"`
	Bounce            float64 `yaml:"bounce"`
	LaunchFactor      float64 `yaml:"launch_factor"` // initial dash before a run starts
	LeftFactor        float64 `yaml:"left_factor"`
	RightFactor       float64 `yaml:"right_factor"`
	JumpVelocity      float64 `yaml:"jump_velocity"`
	DropVelocity      float64 `yaml:"drop_velocity"`
	MoveCueCooldownMs int     `yaml:"move_cue_cooldown_ms"`
}

// DifficultyConfig defines the platform speed progression.
type DifficultyConfig struct {
	Enabled           bool    `yaml:"enabled"`
	IdleSpeed         float64 `yaml:"idle_speed"` // platform speed before the first run
	BaseSpeed         float64 `yaml:"base_speed"` // platform speed at run start
	VelocityFactor    float64 `yaml:"velocity_factor"`
	SpeedUpInterval   int     `yaml:"speed_up_interval"` // seconds of game clock
	SpeedUpStep       float64 `yaml:"speed_up_step"`
	EligibilityFactor float64 `yaml:"eligibility_factor"`
	PassCuePitchStep  float64 `yaml:"pass_cue_pitch_step"`
}

// SpawnConfig defines the obstacle spawn cadence.
type SpawnConfig struct {
	MinGapMs int     `yaml:"min_gap_ms"`
	MaxGapMs int     `yaml:"max_gap_ms"`
	Margin   float64 `yaml:"margin"`
}

// CountdownConfig defines the countdown target and win condition.
type CountdownConfig struct {
	Target       string `yaml:"target"` // RFC 3339 timestamp or duration from now
	WinThreshold int    `yaml:"win_threshold"`
}

// DecorationsConfig defines background clouds.
type DecorationsConfig struct {
	Enabled    bool    `yaml:"enabled"`
	MinDelayMs int     `yaml:"min_delay_ms"`
	MaxDelayMs int     `yaml:"max_delay_ms"`
	MinHeight  float64 `yaml:"min_height"`
	MaxHeight  float64 `yaml:"max_height"`
}

// RemoteConfig defines the remote controller connection.
type RemoteConfig struct {
	Enabled             bool   `yaml:"enabled"`
	URL                 string `yaml:"url"`
	ReconnectIntervalMs int    `yaml:"reconnect_interval_ms"`
	MaxRetries          int    `yaml:"max_retries"`
	GridCols            int    `yaml:"grid_cols"`
	GridRows            int    `yaml:"grid_rows"`
}

// ArchetypeConfig is one obstacle kind as written in YAML. Enumerated fields
// stay strings here and are checked when the catalog is built.
type ArchetypeConfig struct {
	Name           string            `yaml:"name"`
	Sprite         string            `yaml:"sprite"`
	SpeedFactor    float64           `yaml:"speed_factor"`
	StartHeight    float64           `yaml:"start_height"`
	Gravity        string            `yaml:"gravity"` // up, down or none
	Width          float64           `yaml:"width"`
	Height         float64           `yaml:"height"`
	XOffset        float64           `yaml:"x_offset"`
	Motion         string            `yaml:"motion"`
	MotionDuration int               `yaml:"motion_duration_ms"`
	Depth          int               `yaml:"depth"`
	Score          int               `yaml:"score"`
	Members        []ArchetypeConfig `yaml:"members"`
}
