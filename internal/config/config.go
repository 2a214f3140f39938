// Package config provides YAML-based configuration loading for the game,
// with environment overrides and difficulty presets for the AI opponent.
package config

import (
	"errors"
	"fmt"
)

// Config contains all configuration for xr-pong.
type Config struct {
	Board     BoardConfig     `yaml:"board"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Gameplay  GameplayConfig  `yaml:"gameplay"`
	Placement PlacementConfig `yaml:"placement"`
	Audio     AudioConfig     `yaml:"audio"`
	Storage   StorageConfig   `yaml:"storage"`
	Server    ServerConfig    `yaml:"server"`
}

// BoardConfig defines the playfield geometry in meters.
type BoardConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	PaddleWidth  float64 `yaml:"paddle_width"`
	PaddleHeight float64 `yaml:"paddle_height"`
	BallSize     float64 `yaml:"ball_size"`
}

// PhysicsConfig defines speeds (meters per second) and bounce factors.
type PhysicsConfig struct {
	BallSpeed   float64 `yaml:"ball_speed"`
	PaddleSpeed float64 `yaml:"paddle_speed"`
	AISpeed     float64 `yaml:"ai_speed"`
	SpeedUp     float64 `yaml:"speed_up"`     // Horizontal speed factor per paddle hit
	SpinFactor  float64 `yaml:"spin_factor"`  // Vertical velocity added per meter of off-center hit
	LaunchSlope float64 `yaml:"launch_slope"` // Vertical launch speed as a fraction of ball speed
}

// GameplayConfig defines match rules.
type GameplayConfig struct {
	WinScore  int  `yaml:"win_score"`
	OnePlayer bool `yaml:"one_player"`
}

// Placement variants.
const (
	VariantFixed  = "fixed"
	VariantAnchor = "anchor"
)

// PlacementConfig defines where the board is placed.
type PlacementConfig struct {
	Variant   string     `yaml:"variant" env:"XRPONG_VARIANT"`
	Position  [3]float64 `yaml:"position"` // Fixed variant offset from the origin
	AnchorKey string     `yaml:"anchor_key" env:"XRPONG_ANCHOR_KEY"`
}

// AudioConfig defines the feedback tone output.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled" env:"XRPONG_AUDIO_ENABLED"`
	Volume     float64 `yaml:"volume" env:"XRPONG_AUDIO_VOLUME"` // Peak gain, 0..1
	SampleRate int     `yaml:"sample_rate"`
}

// StorageConfig defines persistence.
type StorageConfig struct {
	DBPath string `yaml:"db_path" env:"XRPONG_DB_PATH"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address     string `yaml:"address" env:"XRPONG_SSH_ADDR"`
	HostKeyPath string `yaml:"host_key_path" env:"XRPONG_HOST_KEY"`
	IdleTimeout int    `yaml:"idle_timeout_minutes" env:"XRPONG_IDLE_TIMEOUT"`
}

// Validate reports configuration that would make the simulation meaningless.
func (c Config) Validate() error {
	var errs []error

	b := c.Board
	if b.Width <= 0 || b.Height <= 0 {
		errs = append(errs, fmt.Errorf("board size must be positive, got %vx%v", b.Width, b.Height))
	}
	if b.PaddleWidth <= 0 || b.PaddleHeight <= 0 || b.BallSize <= 0 {
		errs = append(errs, errors.New("paddle and ball sizes must be positive"))
	}
	if b.PaddleHeight >= b.Height {
		errs = append(errs, fmt.Errorf("paddle height %v must be smaller than board height %v", b.PaddleHeight, b.Height))
	}
	if c.Physics.BallSpeed <= 0 || c.Physics.PaddleSpeed < 0 || c.Physics.AISpeed < 0 {
		errs = append(errs, errors.New("speeds must be non-negative and ball speed positive"))
	}
	if c.Physics.SpeedUp <= 1 {
		errs = append(errs, fmt.Errorf("speed up must be greater than 1, got %v", c.Physics.SpeedUp))
	}
	if c.Physics.SpinFactor < 0 {
		errs = append(errs, fmt.Errorf("spin factor must be non-negative, got %v", c.Physics.SpinFactor))
	}
	if c.Gameplay.WinScore <= 0 {
		errs = append(errs, fmt.Errorf("win score must be positive, got %d", c.Gameplay.WinScore))
	}
	switch c.Placement.Variant {
	case VariantFixed, VariantAnchor:
	default:
		errs = append(errs, fmt.Errorf("unknown placement variant %q", c.Placement.Variant))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio volume must be within [0, 1], got %v", c.Audio.Volume))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named AI difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// AISpeedForPreset returns the AI paddle speed for a preset.
// Unknown presets keep the configured speed.
func AISpeedForPreset(preset DifficultyPreset, configured float64) float64 {
	switch preset {
	case DifficultyEasy:
		return 1.0
	case DifficultyNormal:
		return 1.5
	case DifficultyHard:
		return 2.5
	default:
		return configured
	}
}
