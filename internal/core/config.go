package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is what a game reports to the platform after each tick.
type GameState struct {
	Level    string // ID of the level being played
	Score    int
	Stars    int  // Star rating, meaningful once Won is set
	Won      bool // Level target reached
	GameOver bool // Session finished; the platform records the result
	Paused   bool
	Back     bool // Player asked to return to the menu
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
}
