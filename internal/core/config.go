package core

// RuntimeConfig contains configuration passed to the runner at initialization.
// The simulation uses this to adapt to screen size and for deterministic replay.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic terrain generation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a run.
// Returned by the runner after each tick to communicate status to the platform.
type GameState struct {
	Distance float64 // Distance travelled in the current run, in cells
	Coins    int     // Coins collected across the session
	Deaths   int     // Deaths since the session started
	Dead     bool    // Whether the avatar is currently dead (awaiting respawn)
	Paused   bool    // Whether the simulation is paused
	Quit     bool    // Whether the player asked to exit
}
