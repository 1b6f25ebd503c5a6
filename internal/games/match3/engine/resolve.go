package engine

import "fmt"

// CascadeStep records one clear-and-refill pass.
type CascadeStep struct {
	Depth       int // 1 for the swap's own match, 2+ for chained matches
	Cleared     MatchSet
	Kinds       map[Token]int
	ScoreGained int
	Falls       []Fall
	Spawns      []Spawn
}

// Resolution summarises a full cascade.
type Resolution struct {
	Steps        []CascadeStep
	CellsCleared int
	ScoreGained  int
}

// Depth is the number of clear passes.
func (r Resolution) Depth() int { return len(r.Steps) }

func newResolution(steps []CascadeStep) Resolution {
	res := Resolution{Steps: append([]CascadeStep(nil), steps...)}
	for _, st := range steps {
		res.CellsCleared += st.Cleared.Len()
		res.ScoreGained += st.ScoreGained
	}
	return res
}

// Resolve runs the cascade loop to completion starting from an already detected
// match set: clear, score, refill, re-detect, until the board is stable.
// Every cell of initial must be in bounds and occupied; repeated cells are
// merged. Resolve does not charge a move; only an accepted swap does. A game
// that has ended returns ErrInactive.
func (s *Session) Resolve(initial MatchSet) (Resolution, error) {
	if !s.state.Active {
		return Resolution{}, ErrInactive
	}
	if s.Busy() {
		return Resolution{}, ErrBusy
	}
	if initial.Empty() {
		return Resolution{}, nil
	}
	seen := make([]bool, s.grid.rows*s.grid.cols)
	set := make(MatchSet, 0, len(initial))
	for _, c := range initial {
		t, err := s.grid.Get(c)
		if err != nil {
			return Resolution{}, err
		}
		if !t.Valid() {
			return Resolution{}, fmt.Errorf("%w: %v is empty", ErrUnknownToken, c)
		}
		if i := s.grid.index(c); !seen[i] {
			seen[i] = true
			set = append(set, c)
		}
	}

	s.steps = s.steps[:0]
	s.pending = set
	s.phase = PhaseResolving
	s.Settle()
	return s.LastResolution(), nil
}

// clear empties the pending cells, crediting progress and score per cell.
func (s *Session) clear(set MatchSet) CascadeStep {
	step := CascadeStep{
		Depth:   len(s.steps) + 1,
		Cleared: set,
		Kinds:   make(map[Token]int),
	}

	for _, c := range set {
		t := s.grid.at(c.Row, c.Col)
		if !t.Valid() {
			// The detector never reports empty cells; reaching this is a bug.
			panic(fmt.Sprintf("engine: cleared cell %v holds %v", c, t))
		}
		s.state.Collect(t, 1)
		s.state.Score += s.opts.RewardPerCell
		step.Kinds[t]++
		step.ScoreGained += s.opts.RewardPerCell
		s.grid.cells[s.grid.index(c)] = Empty
	}

	s.stats.Cascades++
	s.stats.CellsCleared += set.Len()
	s.steps = append(s.steps, step)

	s.status.ReportScore(s.state.Score)
	s.reportProgress()
	return step
}

// refill applies gravity to every column and spawns fresh tokens into the gaps.
// Afterwards the board has no empty cells.
func (s *Session) refill(step *CascadeStep) {
	for col := 0; col < s.grid.cols; col++ {
		falls, err := s.grid.ShiftDown(col)
		if err != nil {
			panic(err)
		}
		step.Falls = append(step.Falls, falls...)

		for row := 0; row < s.grid.rows && s.grid.at(row, col) == Empty; row++ {
			sp := Spawn{At: C(row, col), Token: RandomToken(s.rng)}
			if err := s.grid.Spawn(sp.At, sp.Token); err != nil {
				panic(err)
			}
			step.Spawns = append(step.Spawns, sp)
		}
	}
}
