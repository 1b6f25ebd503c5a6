package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 5, 4, 3)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"top-left corner", 10, 5, true},
		{"inside", 12, 6, true},
		{"last cell", 13, 7, true},
		{"right edge is exclusive", 14, 6, false},
		{"bottom edge is exclusive", 12, 8, false},
		{"left of rect", 9, 6, false},
		{"above rect", 12, 4, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 10, 4)
	if r.Right() != 12 {
		t.Errorf("Right() = %d, expected 12", r.Right())
	}
	if r.Bottom() != 7 {
		t.Errorf("Bottom() = %d, expected 7", r.Bottom())
	}
	if x, y := r.Center(); x != 7 || y != 5 {
		t.Errorf("Center() = (%d, %d), expected (7, 5)", x, y)
	}
}

func TestRectCentered(t *testing.T) {
	screen := NewRect(0, 0, 80, 24)
	box := screen.Centered(20, 10)

	if box != NewRect(30, 7, 20, 10) {
		t.Errorf("Centered() = %+v", box)
	}

	// Too large boxes overflow symmetrically.
	big := NewRect(0, 0, 10, 10).Centered(14, 10)
	if big.X != -2 {
		t.Errorf("oversized Centered().X = %d, expected -2", big.X)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}

