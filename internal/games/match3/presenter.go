package match3

import (
	"time"

	"github.com/vovakirdan/creature-match/internal/config"
	"github.com/vovakirdan/creature-match/internal/games/match3/engine"
)

// goalView is the HUD copy of one collection goal.
type goalView struct {
	kind      engine.Token
	collected int
	target    int
}

// presenter is the terminal side of the engine's Renderer and StatusReporter.
// It keeps a mirror of the board built only from adapter calls, so the screen
// never reads engine internals mid-cascade.
type presenter struct {
	anim config.AnimationConfig

	board engine.GridSnapshot

	swapping     bool
	swapA, swapB engine.Coord
	cleared      map[engine.Coord]bool
	spawned      map[engine.Coord]bool

	lastWait time.Duration
	frames   int // RenderGrid calls

	score int
	moves int
	goals []goalView
	over  bool
	won   bool
}

func newPresenter(anim config.AnimationConfig) *presenter {
	return &presenter{anim: anim}
}

func (p *presenter) RenderGrid(snap engine.GridSnapshot) {
	p.board = snap
	p.frames++
	p.idle()
}

func (p *presenter) AnimateSwap(a, b engine.Coord, revert bool) time.Duration {
	p.idle()
	p.exchange(a, b)
	p.swapping = true
	p.swapA, p.swapB = a, b
	return p.request(p.anim.Swap())
}

func (p *presenter) AnimateClear(cells engine.MatchSet) time.Duration {
	p.idle()
	p.cleared = make(map[engine.Coord]bool, cells.Len())
	for _, c := range cells {
		p.cleared[c] = true
		p.put(c, engine.Empty)
	}
	return p.request(p.anim.Clear())
}

func (p *presenter) AnimateRefill(spawns []engine.Spawn, falls []engine.Fall) time.Duration {
	p.idle()
	// Falls arrive bottom-up per column, so every destination is already vacated.
	for _, f := range falls {
		p.put(f.To, f.Token)
		p.put(f.From, engine.Empty)
	}
	p.spawned = make(map[engine.Coord]bool, len(spawns))
	for _, s := range spawns {
		p.spawned[s.At] = true
		p.put(s.At, s.Token)
	}
	return p.request(p.anim.Refill())
}

func (p *presenter) ReportScore(score int)     { p.score = score }
func (p *presenter) ReportMoves(movesLeft int) { p.moves = movesLeft }

func (p *presenter) ReportProgress(kind engine.Token, collected, target int) {
	for i := range p.goals {
		if p.goals[i].kind == kind {
			p.goals[i].collected = collected
			p.goals[i].target = target
			return
		}
	}
	p.goals = append(p.goals, goalView{kind: kind, collected: collected, target: target})
}

func (p *presenter) ReportGameOver(won bool) {
	p.over = true
	p.won = won
}

// idle drops all animation markers.
func (p *presenter) idle() {
	p.swapping = false
	p.cleared = nil
	p.spawned = nil
}

func (p *presenter) request(d time.Duration) time.Duration {
	p.lastWait = d
	return d
}

// at returns the mirrored token, or Empty outside the board.
func (p *presenter) at(c engine.Coord) engine.Token {
	if c.Row < 0 || c.Row >= len(p.board) || c.Col < 0 || c.Col >= len(p.board[c.Row]) {
		return engine.Empty
	}
	return p.board[c.Row][c.Col]
}

func (p *presenter) put(c engine.Coord, t engine.Token) {
	if c.Row < 0 || c.Row >= len(p.board) || c.Col < 0 || c.Col >= len(p.board[c.Row]) {
		return
	}
	p.board[c.Row][c.Col] = t
}

func (p *presenter) exchange(a, b engine.Coord) {
	ta, tb := p.at(a), p.at(b)
	p.put(a, tb)
	p.put(b, ta)
}

func (p *presenter) inSwap(c engine.Coord) bool {
	return p.swapping && (c == p.swapA || c == p.swapB)
}
