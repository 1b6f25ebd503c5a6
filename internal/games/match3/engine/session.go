package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Phase is the resolution state of a session. Input is accepted only in PhaseIdle.
type Phase int

const (
	PhaseIdle      Phase = iota
	PhaseSwapping        // tokens exchanged, match check pending
	PhaseReverting       // rejected swap rolled back, return animation playing
	PhaseResolving       // match set pending clear
	PhaseCascading       // cleared cells pending refill and re-detection
	PhaseSettled         // board stable, terminal check pending
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSwapping:
		return "swapping"
	case PhaseReverting:
		return "reverting"
	case PhaseResolving:
		return "resolving"
	case PhaseCascading:
		return "cascading"
	case PhaseSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Options configures a session.
type Options struct {
	Rows          int
	Cols          int
	Moves         int
	RewardPerCell int

	// Targets bounds random goal generation. Ignored when Goals is set.
	Targets TargetRange
	Goals   []Goal

	// StableStart redraws cells that already form runs on the opening board.
	StableStart bool

	// Board, when set, is used (cloned) instead of a random opening board.
	Board *Grid
}

// DefaultOptions returns the classic rules: 5x5 board, 15 moves, 10 points per cell.
func DefaultOptions() Options {
	return Options{
		Rows:          5,
		Cols:          5,
		Moves:         15,
		RewardPerCell: 10,
		Targets:       DefaultTargetRange(),
		StableStart:   false,
	}
}

// Validate checks the options for a playable game.
func (o Options) Validate() error {
	if o.Board == nil && (o.Rows < MinSide || o.Cols < MinSide) {
		return fmt.Errorf("%w: %dx%d", ErrGridTooSmall, o.Rows, o.Cols)
	}
	if o.Moves <= 0 {
		return fmt.Errorf("%w: moves must be positive, got %d", ErrInvalidConfig, o.Moves)
	}
	if o.RewardPerCell < 0 {
		return fmt.Errorf("%w: negative reward %d", ErrInvalidConfig, o.RewardPerCell)
	}
	if len(o.Goals) == 0 {
		return o.Targets.Validate()
	}
	seen := make(map[Token]bool, len(o.Goals))
	for _, g := range o.Goals {
		if !g.Kind.Valid() {
			return fmt.Errorf("%w: goal kind %v", ErrUnknownToken, g.Kind)
		}
		if seen[g.Kind] {
			return fmt.Errorf("%w: duplicate goal %v", ErrInvalidConfig, g.Kind)
		}
		if g.Required < 1 {
			return fmt.Errorf("%w: goal %v requires %d", ErrInvalidConfig, g.Kind, g.Required)
		}
		seen[g.Kind] = true
	}
	return nil
}

// Stats summarises play for leaderboards and logs.
type Stats struct {
	SwapsAccepted  int
	SwapsRejected  int
	Cascades       int // clear passes across the whole game
	LongestCascade int // most clear passes triggered by one swap
	CellsCleared   int
	Reshuffles     int
}

// GoalProgress pairs a goal with its current count.
type GoalProgress struct {
	Goal
	Collected int
}

// Done reports whether the goal is met.
func (g GoalProgress) Done() bool {
	return g.Collected >= g.Required
}

// Status is a read-only view of the game state.
type Status struct {
	Score     int
	MovesLeft int
	MovesUsed int
	Active    bool
	Won       bool
	Goals     []GoalProgress
}

// Session owns one game: grid, state, selection and the resolution phase machine.
// A session is driven from a single goroutine; it holds no package-level state, so
// any number of sessions can run side by side.
type Session struct {
	opts     Options
	rng      *rand.Rand
	grid     *Grid
	state    *State
	renderer Renderer
	status   StatusReporter

	phase     Phase
	selection Coord
	selected  bool

	swapA, swapB Coord
	accepted     bool // last swap attempt was committed
	pending      MatchSet
	steps        []CascadeStep
	outcome      Outcome
	stats        Stats
}

// NewSession creates a game. renderer and status may be nil.
func NewSession(opts Options, rng *rand.Rand, renderer Renderer, status StatusReporter) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if renderer == nil {
		renderer = NopRenderer{}
	}
	if status == nil {
		status = NopStatus{}
	}

	var (
		grid *Grid
		err  error
	)
	if opts.Board != nil {
		grid = opts.Board.Clone()
	} else {
		grid, err = NewRandomGrid(opts.Rows, opts.Cols, rng)
		if err != nil {
			return nil, err
		}
	}
	if opts.StableStart {
		grid.stabilize(rng)
	}
	if opts.Board == nil {
		// A random opening board must offer at least one move.
		for attempt := 0; attempt < maxReshuffleAttempts; attempt++ {
			if _, _, ok := FindSwap(grid); ok {
				break
			}
			grid.fill(rng)
			if opts.StableStart {
				grid.stabilize(rng)
			}
		}
	}

	goals := opts.Goals
	if len(goals) == 0 {
		goals = RandomGoals(rng, opts.Targets)
	}

	s := &Session{
		opts:     opts,
		rng:      rng,
		grid:     grid,
		state:    NewState(opts.Moves, goals),
		renderer: renderer,
		status:   status,
	}

	s.renderer.RenderGrid(s.grid.Snapshot())
	s.reportStatus()
	return s, nil
}

// Phase returns the current resolution phase.
func (s *Session) Phase() Phase { return s.phase }

// Busy reports whether a swap or cascade is in flight.
func (s *Session) Busy() bool { return s.phase != PhaseIdle }

// Active reports whether swaps are still accepted.
func (s *Session) Active() bool { return s.state.Active }

// Outcome returns the terminal result, or OutcomeNone while playing.
func (s *Session) Outcome() Outcome { return s.outcome }

// Stats returns play statistics.
func (s *Session) Stats() Stats { return s.stats }

// Rows returns the board height.
func (s *Session) Rows() int { return s.grid.rows }

// Cols returns the board width.
func (s *Session) Cols() int { return s.grid.cols }

// At returns the token at c, or Empty when out of bounds.
func (s *Session) At(c Coord) Token {
	if !s.grid.InBounds(c) {
		return Empty
	}
	return s.grid.at(c.Row, c.Col)
}

// Grid returns a copy of the board.
func (s *Session) Grid() *Grid { return s.grid.Clone() }

// Selected returns the pending first-selected cell.
func (s *Session) Selected() (Coord, bool) { return s.selection, s.selected }

// Hint returns a swap that would produce a match.
func (s *Session) Hint() (a, b Coord, ok bool) {
	if s.Busy() || !s.state.Active {
		return Coord{}, Coord{}, false
	}
	return FindSwap(s.grid)
}

// Status returns a snapshot of score, moves and goals.
func (s *Session) Status() Status {
	st := Status{
		Score:     s.state.Score,
		MovesLeft: s.state.MovesLeft,
		MovesUsed: s.opts.Moves - s.state.MovesLeft,
		Active:    s.state.Active,
		Won:       s.state.Won,
	}
	for _, g := range s.state.Goals() {
		st.Goals = append(st.Goals, GoalProgress{Goal: g, Collected: s.state.Progress(g.Kind)})
	}
	return st
}

// LastResolution returns the cascade steps of the most recent accepted swap.
func (s *Session) LastResolution() Resolution {
	return newResolution(s.steps)
}

// Advance performs one atomic step of the phase machine and returns how long the
// renderer asked to wait before the next one. more is false once the session is idle.
func (s *Session) Advance() (wait time.Duration, more bool) {
	switch s.phase {
	case PhaseIdle:
		return 0, false

	case PhaseSwapping:
		matches := FindMatches(s.grid)
		if matches.Empty() {
			s.grid.swap(s.swapA, s.swapB)
			s.stats.SwapsRejected++
			s.phase = PhaseReverting
			wait = s.renderer.AnimateSwap(s.swapA, s.swapB, true)
			break
		}
		s.commitSwap(matches)

	case PhaseReverting:
		s.phase = PhaseIdle

	case PhaseResolving:
		step := s.clear(s.pending)
		s.pending = nil
		s.phase = PhaseCascading
		wait = s.renderer.AnimateClear(step.Cleared)

	case PhaseCascading:
		step := &s.steps[len(s.steps)-1]
		s.refill(step)
		wait = s.renderer.AnimateRefill(step.Spawns, step.Falls)
		if next := FindMatches(s.grid); !next.Empty() {
			s.pending = next
			s.phase = PhaseResolving
		} else {
			s.phase = PhaseSettled
		}

	case PhaseSettled:
		s.settle()
		s.phase = PhaseIdle
	}

	return wait, s.Busy()
}

// Settle advances until the session is idle, ignoring requested waits.
func (s *Session) Settle() {
	for s.Busy() {
		s.Advance()
	}
}

// commitSwap charges the move and queues the first match set.
func (s *Session) commitSwap(matches MatchSet) {
	s.state.MovesLeft--
	s.stats.SwapsAccepted++
	s.accepted = true
	s.steps = s.steps[:0]
	s.pending = matches
	s.phase = PhaseResolving
	s.status.ReportMoves(s.state.MovesLeft)
}

// settle closes a resolution: records stats, evaluates the terminal rules and
// reshuffles a deadlocked board.
func (s *Session) settle() {
	if depth := len(s.steps); depth > s.stats.LongestCascade {
		s.stats.LongestCascade = depth
	}
	s.renderer.RenderGrid(s.grid.Snapshot())

	if outcome := s.state.Evaluate(); outcome != OutcomeNone {
		s.outcome = outcome
		s.selected = false
		s.status.ReportGameOver(outcome == OutcomeWin)
		return
	}

	if _, _, ok := FindSwap(s.grid); !ok {
		s.reshuffle()
	}
}

// reshuffle redraws a deadlocked board. Bounded: after maxReshuffleAttempts the
// last draw is kept even if it is still deadlocked.
func (s *Session) reshuffle() {
	for attempt := 0; attempt < maxReshuffleAttempts; attempt++ {
		s.grid.fill(s.rng)
		s.grid.stabilize(s.rng)
		if _, _, ok := FindSwap(s.grid); ok {
			break
		}
	}
	s.stats.Reshuffles++
	s.renderer.RenderGrid(s.grid.Snapshot())
}

func (s *Session) reportStatus() {
	s.status.ReportScore(s.state.Score)
	s.status.ReportMoves(s.state.MovesLeft)
	s.reportProgress()
}

func (s *Session) reportProgress() {
	for _, g := range s.state.Goals() {
		s.status.ReportProgress(g.Kind, s.state.Progress(g.Kind), g.Required)
	}
}
