package engine

import "errors"

var (
	// ErrOutOfBounds is returned for coordinates outside the grid.
	ErrOutOfBounds = errors.New("engine: coordinate out of bounds")

	// ErrInvalidSwapTarget is returned when the second cell is not an orthogonal neighbour.
	ErrInvalidSwapTarget = errors.New("engine: swap target is not adjacent")

	// ErrUnknownToken is returned for values outside the token set.
	ErrUnknownToken = errors.New("engine: unknown token kind")

	// ErrGridTooSmall is returned for grids with fewer than 3 rows or columns.
	ErrGridTooSmall = errors.New("engine: grid must be at least 3x3")

	// ErrCellOccupied is returned when spawning into a non-empty cell.
	ErrCellOccupied = errors.New("engine: cell is occupied")

	// ErrInactive is returned for swaps attempted after the game has ended.
	ErrInactive = errors.New("engine: game is over")

	// ErrBusy is returned for swaps attempted while another swap or cascade is resolving.
	ErrBusy = errors.New("engine: resolution in progress")

	// ErrInvalidConfig is returned by NewSession for unusable options.
	ErrInvalidConfig = errors.New("engine: invalid config")
)
