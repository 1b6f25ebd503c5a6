package match3

import "github.com/vovakirdan/creature-match/internal/games/match3/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateResolving    GameStateType = "resolving"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Level     int // 1-based campaign level, 0 in classic mode
	Score     int
	MovesLeft int
	Board     string // one glyph line per row
	Goals     []engine.GoalProgress
	Cursor    engine.Coord
	Phase     string
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	case g.engine.Busy():
		state = StateResolving
	}

	status := g.engine.Status()
	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Level:     g.Level(),
		Score:     g.score(),
		MovesLeft: status.MovesLeft,
		Board:     g.engine.Grid().String(),
		Goals:     status.Goals,
		Cursor:    g.cursor,
		Phase:     g.engine.Phase().String(),
		State:     state,
	}
}
