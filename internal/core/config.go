package core

// RuntimeConfig contains configuration passed to the simulation at initialization.
type RuntimeConfig struct {
	TickRate int   // Host frames per second (default 60)
	Seed     int64 // RNG seed for deterministic launches
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}
