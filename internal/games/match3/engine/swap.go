package engine

import "fmt"

// ClickResult describes what a cell click did.
type ClickResult int

const (
	ClickIgnored    ClickResult = iota // inactive, busy or out of bounds
	ClickSelected                      // first cell selected
	ClickDeselected                    // same cell clicked again
	ClickReselected                    // non-neighbour clicked; it becomes the selection
	ClickSwapped                       // neighbour clicked; swap attempt started
)

func (r ClickResult) String() string {
	switch r {
	case ClickSelected:
		return "selected"
	case ClickDeselected:
		return "deselected"
	case ClickReselected:
		return "reselected"
	case ClickSwapped:
		return "swapped"
	default:
		return "ignored"
	}
}

// Click is the input entry point: one call per cell click.
// Input that cannot be acted upon is dropped, never queued.
func (s *Session) Click(row, col int) ClickResult {
	c := C(row, col)
	if !s.state.Active || s.Busy() || !s.grid.InBounds(c) {
		return ClickIgnored
	}

	if !s.selected {
		s.selection, s.selected = c, true
		return ClickSelected
	}

	first := s.selection
	switch {
	case first == c:
		s.selected = false
		return ClickDeselected
	case !first.Adjacent(c):
		s.selection = c
		return ClickReselected
	}

	s.selected = false
	if err := s.AttemptSwap(first, c); err != nil {
		return ClickIgnored
	}
	return ClickSwapped
}

// Deselect drops the pending selection.
func (s *Session) Deselect() {
	s.selected = false
}

// AttemptSwap validates and speculatively applies a swap. The match check,
// commit or rollback happen on the following Advance calls. A failed
// precondition leaves the session untouched.
func (s *Session) AttemptSwap(a, b Coord) error {
	if !s.state.Active {
		return ErrInactive
	}
	if s.Busy() {
		return ErrBusy
	}
	if !s.grid.InBounds(a) || !s.grid.InBounds(b) {
		return fmt.Errorf("%w: swap %v-%v", ErrOutOfBounds, a, b)
	}
	if !a.Adjacent(b) {
		return fmt.Errorf("%w: %v-%v", ErrInvalidSwapTarget, a, b)
	}

	s.grid.swap(a, b)
	s.swapA, s.swapB = a, b
	s.accepted = false
	s.phase = PhaseSwapping
	s.renderer.AnimateSwap(a, b, false)
	return nil
}

// SwapResult reports a swap resolved synchronously by Swap.
type SwapResult struct {
	Accepted   bool
	Resolution Resolution
	Outcome    Outcome
}

// Swap attempts a swap and settles it immediately, ignoring animation waits.
func (s *Session) Swap(a, b Coord) (SwapResult, error) {
	if err := s.AttemptSwap(a, b); err != nil {
		return SwapResult{}, err
	}
	s.Settle()

	res := SwapResult{Accepted: s.accepted, Outcome: s.outcome}
	if s.accepted {
		res.Resolution = s.LastResolution()
	}
	return res, nil
}
