package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded YAML diverges from Default():\n got %+v\nwant %+v", cfg, Default())
	}
}

func TestLoadCustomPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "physics:\n  ai_speed: 3\nplacement:\n  variant: anchor\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Physics.AISpeed != 3 {
		t.Errorf("AISpeed = %v, expected 3", cfg.Physics.AISpeed)
	}
	if cfg.Placement.Variant != VariantAnchor {
		t.Errorf("Variant = %q, expected anchor", cfg.Placement.Variant)
	}
	// Untouched keys keep their defaults
	if cfg.Physics.BallSpeed != 0.8 || cfg.Gameplay.WinScore != 5 {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadMissingCustomFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".xrpong")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("gameplay:\n  win_score: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Gameplay.WinScore != 7 {
		t.Errorf("WinScore = %d, expected 7", cfg.Gameplay.WinScore)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XRPONG_DB_PATH", "/tmp/override.db")
	t.Setenv("XRPONG_VARIANT", "anchor")
	t.Setenv("XRPONG_AUDIO_ENABLED", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Storage.DBPath != "/tmp/override.db" {
		t.Errorf("DBPath = %q", cfg.Storage.DBPath)
	}
	if cfg.Placement.Variant != VariantAnchor {
		t.Errorf("Variant = %q", cfg.Placement.Variant)
	}
	if cfg.Audio.Enabled {
		t.Error("audio should be disabled by env")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero width", func(c *Config) { c.Board.Width = 0 }, "board size"},
		{"tall paddle", func(c *Config) { c.Board.PaddleHeight = 2 }, "paddle height"},
		{"bad variant", func(c *Config) { c.Placement.Variant = "orbit" }, "variant"},
		{"zero win score", func(c *Config) { c.Gameplay.WinScore = 0 }, "win score"},
		{"loud", func(c *Config) { c.Audio.Volume = 2 }, "volume"},
		{"no speed up", func(c *Config) { c.Physics.SpeedUp = 1 }, "speed up"},
		{"slowing", func(c *Config) { c.Physics.SpeedUp = 0.9 }, "speed up"},
		{"negative spin", func(c *Config) { c.Physics.SpinFactor = -0.5 }, "spin factor"},
		{"no spin", func(c *Config) { c.Physics.SpinFactor = 0 }, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.errSub == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errSub) {
				t.Errorf("Validate() = %v, expected error containing %q", err, tc.errSub)
			}
		})
	}
}

func TestMarshalRoundTripsVariant(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if !strings.Contains(string(data), "variant: fixed") {
		t.Errorf("marshalled YAML missing variant: %s", data)
	}
}

func TestAISpeedForPreset(t *testing.T) {
	if AISpeedForPreset(DifficultyEasy, 9) != 1.0 {
		t.Error("easy preset should be 1.0")
	}
	if AISpeedForPreset(DifficultyHard, 9) != 2.5 {
		t.Error("hard preset should be 2.5")
	}
	if AISpeedForPreset("", 9) != 9 {
		t.Error("empty preset should keep configured speed")
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/.xrpong/x.db")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, ".xrpong", "x.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got, _ := ExpandHome("/abs"); got != "/abs" {
		t.Errorf("absolute path changed: %q", got)
	}
}
