package engine

import (
	"fmt"
	"math/rand"
	"strings"
)

// MinSide is the smallest row or column count for which three-in-a-row is meaningful.
const MinSide = 3

// Grid is the board: a rows x cols matrix of tokens stored in row-major order.
// It is the single source of truth for game logic; renderers only project it.
type Grid struct {
	rows  int
	cols  int
	cells []Token
}

// Fall records a surviving token moving down its column during gravity.
type Fall struct {
	From  Coord
	To    Coord
	Token Token
}

// Spawn records a fresh token placed into a vacated top slot.
type Spawn struct {
	At    Coord
	Token Token
}

// GridSnapshot is an immutable copy of the board handed to renderers.
type GridSnapshot [][]Token

// NewGrid creates an empty grid.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < MinSide || cols < MinSide {
		return nil, fmt.Errorf("%w: got %dx%d", ErrGridTooSmall, rows, cols)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Token, rows*cols),
	}, nil
}

// NewRandomGrid creates a grid with every cell drawn independently and uniformly.
func NewRandomGrid(rows, cols int, rng *rand.Rand) (*Grid, error) {
	g, err := NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}
	g.fill(rng)
	return g, nil
}

// GridFromRows builds a grid from explicit rows. All rows must have equal length
// and every value must be a valid token.
func GridFromRows(rows [][]Token) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrGridTooSmall)
	}
	g, err := NewGrid(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != g.cols {
			return nil, fmt.Errorf("engine: row %d has %d cells, want %d", r, len(row), g.cols)
		}
		for c, t := range row {
			if err := g.Set(C(r, c), t); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// ParseGrid builds a grid from lines of token glyphs, e.g. "ZZZSA".
// A '.' leaves the cell empty. Used by tests and level fixtures.
func ParseGrid(lines ...string) (*Grid, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrGridTooSmall)
	}
	g, err := NewGrid(len(lines), len([]rune(strings.TrimSpace(lines[0]))))
	if err != nil {
		return nil, err
	}
	for r, line := range lines {
		glyphs := []rune(strings.TrimSpace(line))
		if len(glyphs) != g.cols {
			return nil, fmt.Errorf("engine: row %d has %d cells, want %d", r, len(glyphs), g.cols)
		}
		for c, ch := range glyphs {
			if ch == '.' {
				continue
			}
			t, err := ParseToken(string(ch))
			if err != nil {
				return nil, err
			}
			g.cells[g.index(C(r, c))] = t
		}
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether c addresses a cell of this grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

func (g *Grid) index(c Coord) int {
	return c.Row*g.cols + c.Col
}

func (g *Grid) check(c Coord) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, c, g.rows, g.cols)
	}
	return nil
}

// Get returns the token at c, or Empty for a vacated cell.
func (g *Grid) Get(c Coord) (Token, error) {
	if err := g.check(c); err != nil {
		return Empty, err
	}
	return g.cells[g.index(c)], nil
}

// Set places t at c. Empty is not accepted; use Clear.
func (g *Grid) Set(c Coord, t Token) error {
	if err := g.check(c); err != nil {
		return err
	}
	if !t.Valid() {
		return fmt.Errorf("%w: %d at %v", ErrUnknownToken, uint8(t), c)
	}
	g.cells[g.index(c)] = t
	return nil
}

// Clear marks c empty.
func (g *Grid) Clear(c Coord) error {
	if err := g.check(c); err != nil {
		return err
	}
	g.cells[g.index(c)] = Empty
	return nil
}

// Spawn fills the empty cell c with t.
func (g *Grid) Spawn(c Coord, t Token) error {
	cur, err := g.Get(c)
	if err != nil {
		return err
	}
	if cur != Empty {
		return fmt.Errorf("%w: %v holds %v", ErrCellOccupied, c, cur)
	}
	return g.Set(c, t)
}

// ShiftDown compacts the non-empty cells of col towards the bottom row,
// preserving their relative order. Vacated cells end up at the top.
// Returns one Fall per token that moved.
func (g *Grid) ShiftDown(col int) ([]Fall, error) {
	if col < 0 || col >= g.cols {
		return nil, fmt.Errorf("%w: column %d", ErrOutOfBounds, col)
	}

	var falls []Fall
	write := g.rows - 1
	for read := g.rows - 1; read >= 0; read-- {
		from := C(read, col)
		t := g.cells[g.index(from)]
		if t == Empty {
			continue
		}
		if read != write {
			to := C(write, col)
			g.cells[g.index(to)] = t
			g.cells[g.index(from)] = Empty
			falls = append(falls, Fall{From: from, To: to, Token: t})
		}
		write--
	}
	return falls, nil
}

// at is the unchecked accessor used by the detector and resolver,
// which only iterate over in-range coordinates.
func (g *Grid) at(r, c int) Token {
	return g.cells[r*g.cols+c]
}

// swap exchanges two cells without validation.
func (g *Grid) swap(a, b Coord) {
	ia, ib := g.index(a), g.index(b)
	g.cells[ia], g.cells[ib] = g.cells[ib], g.cells[ia]
}

// EmptyCount returns the number of vacated cells.
func (g *Grid) EmptyCount() int {
	n := 0
	for _, t := range g.cells {
		if t == Empty {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	cells := make([]Token, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Equal reports whether both grids have the same shape and contents.
func (g *Grid) Equal(o *Grid) bool {
	if o == nil || g.rows != o.rows || g.cols != o.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Snapshot copies the board into a fresh 2D slice.
func (g *Grid) Snapshot() GridSnapshot {
	snap := make(GridSnapshot, g.rows)
	for r := range snap {
		snap[r] = make([]Token, g.cols)
		copy(snap[r], g.cells[r*g.cols:(r+1)*g.cols])
	}
	return snap
}

// String renders the grid as glyph lines, one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			sb.WriteRune(g.at(r, c).Glyph())
		}
	}
	return sb.String()
}

const (
	maxStabilizePasses   = 1000
	maxReshuffleAttempts = 100
)

// fill redraws every cell independently.
func (g *Grid) fill(rng *rand.Rand) {
	for i := range g.cells {
		g.cells[i] = RandomToken(rng)
	}
}

// stabilize redraws matched cells until the board holds no runs.
// Bounded by maxStabilizePasses; in practice a handful of passes suffice.
func (g *Grid) stabilize(rng *rand.Rand) {
	for pass := 0; pass < maxStabilizePasses; pass++ {
		matches := FindMatches(g)
		if matches.Empty() {
			return
		}
		for _, c := range matches {
			g.cells[g.index(c)] = RandomToken(rng)
		}
	}
}
