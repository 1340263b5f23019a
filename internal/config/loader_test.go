package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v, expected nil", err)
	}

	if len(cfg.Catalog) != 9 {
		t.Errorf("len(Catalog) = %d, expected 9", len(cfg.Catalog))
	}
	if cfg.World.Width != 800 || cfg.World.Height != 600 {
		t.Errorf("World = %vx%v, expected 800x600", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Winner.Name != "cyanHeart" {
		t.Errorf("Winner.Name = %q, expected cyanHeart", cfg.Winner.Name)
	}
	if cfg.Remote.ReconnectIntervalMs != 3000 || cfg.Remote.MaxRetries != 5 {
		t.Errorf("Remote = %+v, expected 3000ms and 5 retries", cfg.Remote)
	}
}

func TestDefaultYAMLParses(t *testing.T) {
	doc := DefaultYAML()
	if !strings.Contains(string(doc), "cyanHeart") {
		t.Fatal("DefaultYAML() should carry the winner entry")
	}

	cfg, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse(DefaultYAML()) error = %v", err)
	}
	if len(cfg.Catalog) != len(DefaultConfig().Catalog) {
		t.Errorf("len(Catalog) = %d, expected %d", len(cfg.Catalog), len(DefaultConfig().Catalog))
	}
}

func TestIsFixedPreset(t *testing.T) {
	for _, p := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed} {
		if got := IsFixedPreset(p); got != (p == DifficultyFixed) {
			t.Errorf("IsFixedPreset(%q) = %v, expected %v", p, got, p == DifficultyFixed)
		}
	}
}

func TestDefaultCatalogCluster(t *testing.T) {
	cfg := DefaultConfig()

	var cluster *ArchetypeConfig
	for i := range cfg.Catalog {
		if cfg.Catalog[i].Name == "cactusCluster" {
			cluster = &cfg.Catalog[i]
		}
	}
	if cluster == nil {
		t.Fatal("cactusCluster not found in default catalog")
	}
	if len(cluster.Members) != 3 {
		t.Fatalf("cluster members = %d, expected 3", len(cluster.Members))
	}
	if cluster.Score != 18000 {
		t.Errorf("cluster score = %d, expected 18000", cluster.Score)
	}
	offsets := map[float64]bool{}
	for _, m := range cluster.Members {
		offsets[m.XOffset] = true
	}
	if len(offsets) != 3 {
		t.Errorf("cluster members should have distinct x offsets, got %v", offsets)
	}
}

func TestFallbackConfigIsValid(t *testing.T) {
	if err := fallbackConfig().Validate(); err != nil {
		t.Errorf("fallbackConfig().Validate() = %v, expected nil", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("spawn:\n  min_gap_ms: 1000\n  max_gap_ms: 2000\n  margin: 10\ncountdown:\n  target: 30s\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Spawn.MinGapMs != 1000 || cfg.Spawn.MaxGapMs != 2000 {
		t.Errorf("Spawn = %+v, expected overridden gaps", cfg.Spawn)
	}
	if cfg.Countdown.Target != "30s" {
		t.Errorf("Countdown.Target = %q, expected 30s", cfg.Countdown.Target)
	}
	// Untouched sections keep their defaults.
	if len(cfg.Catalog) != 9 || cfg.World.Gravity != 2000 {
		t.Errorf("defaults lost after partial override: catalog=%d gravity=%v", len(cfg.Catalog), cfg.World.Gravity)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom path should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("world: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("spawn:\n  min_gap_ms: 5000\n  max_gap_ms: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(invalid)
	if err == nil || !strings.Contains(err.Error(), "spawn gap") {
		t.Errorf("Load() error = %v, expected spawn gap validation error", err)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultConfig()

	normal := base
	ApplyPreset(&normal, DifficultyNormal)
	if normal.Difficulty != base.Difficulty {
		t.Errorf("normal preset changed difficulty: %+v", normal.Difficulty)
	}

	easy := base
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Difficulty.BaseSpeed >= base.Difficulty.BaseSpeed {
		t.Errorf("easy BaseSpeed = %v, expected below %v", easy.Difficulty.BaseSpeed, base.Difficulty.BaseSpeed)
	}
	if easy.Difficulty.SpeedUpInterval <= base.Difficulty.SpeedUpInterval {
		t.Errorf("easy SpeedUpInterval = %d, expected above %d", easy.Difficulty.SpeedUpInterval, base.Difficulty.SpeedUpInterval)
	}

	hard := base
	ApplyPreset(&hard, DifficultyHard)
	if hard.Difficulty.BaseSpeed <= base.Difficulty.BaseSpeed {
		t.Errorf("hard BaseSpeed = %v, expected above %v", hard.Difficulty.BaseSpeed, base.Difficulty.BaseSpeed)
	}

	fixed := base
	ApplyPreset(&fixed, DifficultyFixed)
	if fixed.Difficulty.Enabled {
		t.Error("fixed preset should disable speed-ups")
	}
	if err := hard.Validate(); err != nil {
		t.Errorf("hard preset produced invalid config: %v", err)
	}
}
