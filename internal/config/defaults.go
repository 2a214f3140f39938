package config

import (
	_ "embed"
)

//go:embed defaults/xrpong.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Width:        2,
			Height:       1.5,
			PaddleWidth:  0.1,
			PaddleHeight: 0.4,
			BallSize:     0.05,
		},
		Physics: PhysicsConfig{
			BallSpeed:   0.8,
			PaddleSpeed: 2,
			AISpeed:     1.5,
			SpeedUp:     1.05,
			SpinFactor:  0.5,
			LaunchSlope: 0.5,
		},
		Gameplay: GameplayConfig{
			WinScore:  5,
			OnePlayer: true,
		},
		Placement: PlacementConfig{
			Variant:   VariantFixed,
			Position:  [3]float64{0, 1.2, -1.5},
			AnchorKey: "pong-anchor",
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.3,
			SampleRate: 48000,
		},
		Storage: StorageConfig{
			DBPath: "~/.xrpong/xrpong.db",
		},
		Server: ServerConfig{
			Address:     ":23235",
			IdleTimeout: 30,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
