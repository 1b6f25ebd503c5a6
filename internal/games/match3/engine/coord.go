package engine

import "fmt"

// Coord addresses a grid cell. Row 0 is the top row.
type Coord struct {
	Row int
	Col int
}

// C is shorthand for constructing a Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// Adjacent reports whether o is one of the four orthogonal neighbours of c.
func (c Coord) Adjacent(o Coord) bool {
	dr, dc := abs(c.Row-o.Row), abs(c.Col-o.Col)
	return dr+dc == 1
}

// Neighbors returns the four orthogonal neighbours (some may be out of bounds).
func (c Coord) Neighbors() [4]Coord {
	return [4]Coord{
		{c.Row - 1, c.Col},
		{c.Row + 1, c.Col},
		{c.Row, c.Col - 1},
		{c.Row, c.Col + 1},
	}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
