package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to lay out the board and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 30)
	Seed     int64  // RNG seed for deterministic gameplay
	Session  string // Session ID used to correlate logs and stored results
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Won      bool // Whether the game ended with all goals met
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// GameResult summarises a finished game for the leaderboard.
type GameResult struct {
	GameID         string
	Mode           string
	Level          int // 1-based campaign level, 0 for classic
	Won            bool
	Score          int
	MovesUsed      int
	LongestCascade int
	Cleared        int
	DurationSecs   int
}
