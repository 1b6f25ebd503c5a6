package engine

import (
	"fmt"
	"math/rand"
)

// Goal is a per-kind collection target.
type Goal struct {
	Kind     Token
	Required int
}

// Outcome is the result of a terminal evaluation.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	default:
		return "none"
	}
}

// State tracks the move budget, score, goal progress and whether the game is live.
type State struct {
	MovesLeft int
	Score     int
	Active    bool
	Won       bool

	goals    []Goal
	progress map[Token]int
}

// NewState creates an active state with the given budget and goals.
func NewState(moves int, goals []Goal) *State {
	s := &State{
		MovesLeft: moves,
		Active:    true,
		goals:     append([]Goal(nil), goals...),
		progress:  make(map[Token]int, len(goals)),
	}
	for _, g := range goals {
		s.progress[g.Kind] = 0
	}
	return s
}

// Goals returns a copy of the collection targets in display order.
func (s *State) Goals() []Goal {
	return append([]Goal(nil), s.goals...)
}

// Progress returns how many tokens of kind have been cleared so far.
// Kinds without a goal are tracked too.
func (s *State) Progress(kind Token) int {
	return s.progress[kind]
}

// Collect records n cleared cells of kind. Progress never decreases.
func (s *State) Collect(kind Token, n int) {
	if n <= 0 {
		return
	}
	s.progress[kind] += n
}

// GoalsMet reports whether every goal has reached its required count.
func (s *State) GoalsMet() bool {
	for _, g := range s.goals {
		if s.progress[g.Kind] < g.Required {
			return false
		}
	}
	return true
}

// Evaluate applies the terminal rules once a cascade has settled.
// Win takes precedence over running out of moves. Once inactive the state never
// becomes active again and later calls return OutcomeNone.
func (s *State) Evaluate() Outcome {
	if !s.Active {
		return OutcomeNone
	}
	switch {
	case s.GoalsMet():
		s.Active = false
		s.Won = true
		return OutcomeWin
	case s.MovesLeft <= 0:
		s.Active = false
		return OutcomeLoss
	}
	return OutcomeNone
}

// TargetRange bounds random goal generation.
type TargetRange struct {
	MinKinds int
	MaxKinds int
	MinCount int
	MaxCount int
}

// DefaultTargetRange matches the classic rules: 1-3 kinds, 5-10 each.
func DefaultTargetRange() TargetRange {
	return TargetRange{MinKinds: 1, MaxKinds: 3, MinCount: 5, MaxCount: 10}
}

// Validate checks that the range is satisfiable with the token set.
func (tr TargetRange) Validate() error {
	if tr.MinKinds < 1 || tr.MaxKinds < tr.MinKinds || tr.MaxKinds > len(Kinds) {
		return fmt.Errorf("%w: goal kinds %d-%d", ErrInvalidConfig, tr.MinKinds, tr.MaxKinds)
	}
	if tr.MinCount < 1 || tr.MaxCount < tr.MinCount {
		return fmt.Errorf("%w: goal count %d-%d", ErrInvalidConfig, tr.MinCount, tr.MaxCount)
	}
	return nil
}

// RandomGoals draws distinct kinds without repetition, each with a uniform
// required count in [MinCount, MaxCount].
func RandomGoals(rng *rand.Rand, tr TargetRange) []Goal {
	n := tr.MinKinds + rng.Intn(tr.MaxKinds-tr.MinKinds+1)
	order := rng.Perm(len(Kinds))

	goals := make([]Goal, n)
	for i := range goals {
		goals[i] = Goal{
			Kind:     Kinds[order[i]],
			Required: tr.MinCount + rng.Intn(tr.MaxCount-tr.MinCount+1),
		}
	}
	return goals
}
