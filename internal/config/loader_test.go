package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults %+v differ from Default() %+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.yaml")
	data := []byte("timing:\n  snake_move_ms: 50\nplayback:\n  mode: burst\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Timing.SnakeMove() != 50*time.Millisecond {
		t.Errorf("SnakeMove() = %v, expected 50ms", cfg.Timing.SnakeMove())
	}
	if cfg.Playback.Mode != PlaybackBurst {
		t.Errorf("Mode = %q, expected burst", cfg.Playback.Mode)
	}
	// Unset values keep their defaults
	if cfg.Timing.TileInOutMillis != 200 || cfg.Geometry.SnakeFloatHeight != 2.5 {
		t.Errorf("partial config lost defaults: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom path should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("timing: [1, 2"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero move", func(c *Config) { c.Timing.SnakeMoveMillis = 0 }},
		{"negative inout", func(c *Config) { c.Timing.SnakeInOutMillis = -1 }},
		{"negative stagger", func(c *Config) { c.Timing.TileStaggerMillis = -5 }},
		{"zero tile height", func(c *Config) { c.Geometry.TileHeight = 0 }},
		{"unknown mode", func(c *Config) { c.Playback.Mode = "turbo" }},
		{"zero speed", func(c *Config) { c.Playback.Speed = 0 }},
		{"zero tick rate", func(c *Config) { c.Playback.TickRate = 0 }},
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() should be valid: %v", err)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestGeometryHeights(t *testing.T) {
	g := Default().Geometry
	if g.TileRestY() != -1 {
		t.Errorf("TileRestY() = %v, expected -1", g.TileRestY())
	}
	if g.TileHiddenY() != -5 {
		t.Errorf("TileHiddenY() = %v, expected -5", g.TileHiddenY())
	}
}
