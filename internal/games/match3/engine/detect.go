package engine

// MinRun is the shortest run that counts as a match.
const MinRun = 3

// Run is a maximal line of identical tokens within one row or one column.
type Run struct {
	Token      Token
	Start      Coord // leftmost (horizontal) or topmost (vertical) cell
	Length     int
	Horizontal bool
}

// Cells expands the run into its coordinates.
func (r Run) Cells() []Coord {
	cells := make([]Coord, r.Length)
	for i := range cells {
		if r.Horizontal {
			cells[i] = C(r.Start.Row, r.Start.Col+i)
		} else {
			cells[i] = C(r.Start.Row+i, r.Start.Col)
		}
	}
	return cells
}

// MatchSet is a deduplicated set of matched cells in row-major order.
type MatchSet []Coord

// Len returns the number of cells.
func (m MatchSet) Len() int { return len(m) }

// Empty reports whether nothing matched.
func (m MatchSet) Empty() bool { return len(m) == 0 }

// Contains reports whether c is in the set.
func (m MatchSet) Contains(c Coord) bool {
	for _, x := range m {
		if x == c {
			return true
		}
	}
	return false
}

// FindRuns scans every row left to right and every column top to bottom,
// returning each maximal run of at least MinRun identical tokens.
// Empty cells never match and break runs.
func FindRuns(g *Grid) []Run {
	var runs []Run

	for r := 0; r < g.rows; r++ {
		runs = scanLine(runs, g.cols, func(i int) Token { return g.at(r, i) }, func(i int) Coord { return C(r, i) }, true)
	}
	for c := 0; c < g.cols; c++ {
		runs = scanLine(runs, g.rows, func(i int) Token { return g.at(i, c) }, func(i int) Coord { return C(i, c) }, false)
	}

	return runs
}

// scanLine accumulates runs along one line of length n.
func scanLine(runs []Run, n int, tokenAt func(int) Token, coordAt func(int) Coord, horizontal bool) []Run {
	start := 0
	for i := 1; i <= n; i++ {
		// A run ends at the end of the line or when the token changes.
		if i < n && tokenAt(i) == tokenAt(start) {
			continue
		}
		length := i - start
		if t := tokenAt(start); t != Empty && length >= MinRun {
			runs = append(runs, Run{
				Token:      t,
				Start:      coordAt(start),
				Length:     length,
				Horizontal: horizontal,
			})
		}
		start = i
	}
	return runs
}

// FindMatches returns the union of all run cells. A cell that belongs to both a
// horizontal and a vertical run appears once.
func FindMatches(g *Grid) MatchSet {
	runs := FindRuns(g)
	if len(runs) == 0 {
		return nil
	}

	mask := make([]bool, g.rows*g.cols)
	for _, run := range runs {
		for _, c := range run.Cells() {
			mask[g.index(c)] = true
		}
	}

	var set MatchSet
	for i, hit := range mask {
		if hit {
			set = append(set, C(i/g.cols, i%g.cols))
		}
	}
	return set
}

// HasMatch reports whether any run exists. Cheaper than FindMatches when only
// the yes/no answer matters.
func HasMatch(g *Grid) bool {
	return len(FindRuns(g)) > 0
}

// FindSwap returns the first adjacent swap (row-major, right then down) that would
// produce a match. ok is false when the board is deadlocked.
func FindSwap(g *Grid) (a, b Coord, ok bool) {
	trial := g.Clone()
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			from := C(r, c)
			for _, to := range [2]Coord{C(r, c+1), C(r+1, c)} {
				if !trial.InBounds(to) {
					continue
				}
				trial.swap(from, to)
				hit := HasMatch(trial)
				trial.swap(from, to)
				if hit {
					return from, to, true
				}
			}
		}
	}
	return Coord{}, Coord{}, false
}
