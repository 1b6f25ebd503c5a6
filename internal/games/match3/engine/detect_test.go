package engine

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestFindMatchesSingleRow(t *testing.T) {
	g := mustGrid(t,
		"ZSPKZ",
		"SPKZS",
		"AAASK",
		"KZSPA",
		"PKZSP",
	)

	got := FindMatches(g)
	want := MatchSet{C(2, 0), C(2, 1), C(2, 2)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindMatches = %v, want %v", got, want)
	}
}

func TestFindMatchesNone(t *testing.T) {
	g := mustGrid(t,
		"ZSAPK",
		"APKZS",
		"KZSAP",
		"SAPKZ",
		"PKZSA",
	)
	if got := FindMatches(g); !got.Empty() {
		t.Errorf("FindMatches = %v, want empty", got)
	}
	if HasMatch(g) {
		t.Error("HasMatch should be false")
	}
}

func TestFindRunsMaximal(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []Run
	}{
		{
			name:  "four in a row is one run",
			lines: []string{"ZZZZK", "PKSAP", "KPAPK"},
			want:  []Run{{Token: Zouwu, Start: C(0, 0), Length: 4, Horizontal: true}},
		},
		{
			name:  "run at end of row",
			lines: []string{"PKSSS", "ZAKPA", "KPAPK"},
			want:  []Run{{Token: Swooping, Start: C(0, 2), Length: 3, Horizontal: true}},
		},
		{
			name:  "vertical run",
			lines: []string{"PKS", "ZKA", "AKP", "SPA"},
			want:  []Run{{Token: Kelpie, Start: C(0, 1), Length: 3, Horizontal: false}},
		},
		{
			name:  "two runs in one row",
			lines: []string{"ZZZKAAA", "PKSPKSP", "KPAZPAK"},
			want: []Run{
				{Token: Zouwu, Start: C(0, 0), Length: 3, Horizontal: true},
				{Token: Salamander, Start: C(0, 4), Length: 3, Horizontal: true},
			},
		},
		{
			name:  "empty cells break runs",
			lines: []string{"ZZ.ZZ", "...PK", "KPAPK"},
			want:  nil,
		},
		{
			name:  "pair is not a run",
			lines: []string{"ZZKAP", "KPZPK", "SAKZA"},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindRuns(mustGrid(t, tt.lines...))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindRuns = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFindMatchesDeduplicatesCross(t *testing.T) {
	// Horizontal run in row 1 and vertical run in column 2 share (1,2).
	g := mustGrid(t,
		"PKZSA",
		"ZZZKP",
		"SAZPK",
		"KPZAS",
		"APSKZ",
	)

	got := FindMatches(g)
	want := MatchSet{C(0, 2), C(1, 0), C(1, 1), C(1, 2), C(2, 2), C(3, 2)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindMatches = %v, want %v", got, want)
	}
	if len(FindRuns(g)) != 2 {
		t.Errorf("expected 2 runs, got %v", FindRuns(g))
	}
}

func TestFindMatchesAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 200; i++ {
		rows, cols := 3+rng.Intn(6), 3+rng.Intn(6)
		g, _ := NewRandomGrid(rows, cols, rng)

		got := FindMatches(g)
		want := bruteForceMatches(g)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("board\n%s\nFindMatches = %v\nbrute force = %v", g, got, want)
		}
	}
}

// bruteForceMatches marks every cell that is part of some 3-window of equal tokens.
// The union of all 3-windows equals the union of all maximal runs of length >= 3.
func bruteForceMatches(g *Grid) MatchSet {
	hit := make(map[Coord]bool)
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			t := g.at(r, c)
			if t == Empty {
				continue
			}
			if c+2 < g.Cols() && g.at(r, c+1) == t && g.at(r, c+2) == t {
				hit[C(r, c)], hit[C(r, c+1)], hit[C(r, c+2)] = true, true, true
			}
			if r+2 < g.Rows() && g.at(r+1, c) == t && g.at(r+2, c) == t {
				hit[C(r, c)], hit[C(r+1, c)], hit[C(r+2, c)] = true, true, true
			}
		}
	}

	var set MatchSet
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if hit[C(r, c)] {
				set = append(set, C(r, c))
			}
		}
	}
	return set
}

func TestFindSwap(t *testing.T) {
	g := mustGrid(t,
		"ZZSZK",
		"PKZAP",
		"KPAPK",
		"AKPKA",
		"PAKAP",
	)
	a, b, ok := FindSwap(g)
	if !ok {
		t.Fatal("expected a valid swap")
	}
	trial := g.Clone()
	trial.swap(a, b)
	if !HasMatch(trial) {
		t.Errorf("swap %v-%v does not produce a match", a, b)
	}
	if !a.Adjacent(b) {
		t.Errorf("hint %v-%v is not adjacent", a, b)
	}

	// Each row and column of a cyclic Latin square is a permutation, so no
	// single swap can line up three equal tokens.
	latin := mustGrid(t,
		"ZSAPK",
		"APKZS",
		"KZSAP",
		"SAPKZ",
		"PKZSA",
	)
	if _, _, ok := FindSwap(latin); ok {
		t.Error("latin board should be deadlocked")
	}
}
