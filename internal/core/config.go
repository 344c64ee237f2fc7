package core

// RuntimeConfig contains runtime parameters passed down from the CLI or the
// SSH session: terminal geometry, tick rate, RNG seed, and the database path.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second
	Seed     int64  // RNG seed, 0 means time-based
	DBPath   string // Path to the profile database
	Diag     bool   // Diagnostic overlay enabled at launch
}

// DefaultRuntimeConfig returns a RuntimeConfig with sensible defaults.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0,
		DBPath:   "~/.beachbites/profile.db",
	}
}
