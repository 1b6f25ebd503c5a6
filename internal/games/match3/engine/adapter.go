package engine

import "time"

// Renderer is the presentation collaborator. The engine calls it after each
// atomic step. Animate methods return how long the presentation would like the
// driver to wait before the next step; the driver clamps this, so a renderer
// can never stall resolution.
type Renderer interface {
	// RenderGrid is called with the full board whenever it is replaced wholesale
	// (session start, reshuffle) and after a cascade settles.
	RenderGrid(snap GridSnapshot)

	// AnimateSwap is called when two tokens are exchanged. revert is true for the
	// return leg of a swap that produced no match.
	AnimateSwap(a, b Coord, revert bool) time.Duration

	// AnimateClear is called after matched cells have been emptied.
	AnimateClear(cells MatchSet) time.Duration

	// AnimateRefill is called after gravity and spawning have filled the board.
	AnimateRefill(spawns []Spawn, falls []Fall) time.Duration
}

// StatusReporter receives score, move, goal and game-over updates.
type StatusReporter interface {
	ReportScore(score int)
	ReportMoves(movesLeft int)
	ReportProgress(kind Token, collected, target int)
	ReportGameOver(won bool)
}

// NopRenderer completes every animation immediately.
type NopRenderer struct{}

func (NopRenderer) RenderGrid(GridSnapshot)                      {}
func (NopRenderer) AnimateSwap(Coord, Coord, bool) time.Duration { return 0 }
func (NopRenderer) AnimateClear(MatchSet) time.Duration          { return 0 }
func (NopRenderer) AnimateRefill([]Spawn, []Fall) time.Duration  { return 0 }

// NopStatus discards status updates.
type NopStatus struct{}

func (NopStatus) ReportScore(int)                {}
func (NopStatus) ReportMoves(int)                {}
func (NopStatus) ReportProgress(Token, int, int) {}
func (NopStatus) ReportGameOver(bool)            {}
