package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "hedgeheart.yaml"

// Load loads the runner configuration and validates it.
// Search order: customPath -> ~/.hedgeheart/configs/hedgeheart.yaml ->
// ./configs/hedgeheart.yaml -> embedded default
func Load(customPath string) (GameConfig, error) {
	cfg, err := load(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func load(customPath string) (GameConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GameConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	return DefaultConfig(), nil
}

// Parse decodes a YAML document on top of the embedded defaults, so a user
// file only needs the keys it changes. Lists replace the default lists.
func Parse(data []byte) (GameConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hedgeheart", "configs", filename)
}

// Validate checks the numeric parts of the configuration. Obstacle kinds are
// checked when the catalog is built from them.
func (c GameConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	w := c.World
	check(w.Width > 0 && w.Height > 0, "world size must be positive, got %vx%v", w.Width, w.Height)
	check(w.GroundHeight > 0 && w.GroundHeight <= w.Height, "ground_height %v outside the world", w.GroundHeight)
	check(c.Player.Width > 0 && c.Player.Height > 0, "player size must be positive")

	d := c.Difficulty
	check(d.BaseSpeed > 0, "base_speed must be positive, got %v", d.BaseSpeed)
	check(d.IdleSpeed > 0, "idle_speed must be positive, got %v", d.IdleSpeed)
	check(d.VelocityFactor > 0, "velocity_factor must be positive, got %v", d.VelocityFactor)
	check(d.SpeedUpInterval > 0, "speed_up_interval must be positive, got %d", d.SpeedUpInterval)
	check(d.SpeedUpStep >= 0, "speed_up_step must not be negative, got %v", d.SpeedUpStep)
	check(d.EligibilityFactor > 0, "eligibility_factor must be positive, got %v", d.EligibilityFactor)

	s := c.Spawn
	check(s.MinGapMs > 0 && s.MinGapMs <= s.MaxGapMs, "spawn gap [%d, %d] is not a valid range", s.MinGapMs, s.MaxGapMs)

	dec := c.Decorations
	check(dec.MinDelayMs > 0 && dec.MinDelayMs <= dec.MaxDelayMs, "decoration delay [%d, %d] is not a valid range", dec.MinDelayMs, dec.MaxDelayMs)
	check(dec.MinHeight <= dec.MaxHeight, "decoration heights [%v, %v] are not a valid range", dec.MinHeight, dec.MaxHeight)

	r := c.Remote
	check(r.GridCols > 0 && r.GridRows > 0, "observation grid must be positive, got %dx%d", r.GridCols, r.GridRows)
	check(r.ReconnectIntervalMs >= 0 && r.MaxRetries >= 0, "reconnect settings must not be negative")
	if r.Enabled {
		check(r.URL != "", "remote.url is required when remote is enabled")
	}

	check(c.Countdown.Target != "", "countdown.target is required")
	check(len(c.Catalog) > 0, "catalog must contain at least one obstacle")

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid configuration: %w", err)
	}
	return nil
}
