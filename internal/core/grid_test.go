package core

import "testing"

func TestGridIndexRoundTrip(t *testing.T) {
	g := NewGrid[uint8](7, 5)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			px, py := g.Pos(g.Index(x, y))
			if px != x || py != y {
				t.Fatalf("Pos(Index(%d,%d)) = (%d,%d)", x, y, px, py)
			}
		}
	}
}

func TestGridInBoundsRejectsEdgeArithmetic(t *testing.T) {
	g := NewGrid[int](4, 3)
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{3, 2, true},
		{0 - 1, 0, false},
		{0, 0 - 1, false},
		{4, 0, false},
		{0, 3, false},
		{3 + 1, 2 + 1, false},
	}
	for _, tc := range cases {
		if got := g.InBounds(tc.x, tc.y); got != tc.want {
			t.Fatalf("InBounds(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestGridClampsDimensions(t *testing.T) {
	g := NewGrid[int](0, -3)
	if g.W != 1 || g.H != 1 || len(g.Cells()) != 1 {
		t.Fatalf("expected 1x1 grid, got %dx%d (%d cells)", g.W, g.H, len(g.Cells()))
	}
}

func TestGridFill(t *testing.T) {
	g := NewGrid[int](3, 3)
	g.Set(1, 1, 5)
	if g.At(1, 1) != 5 {
		t.Fatal("Set/At mismatch")
	}
	g.Fill(2)
	for i, v := range g.Cells() {
		if v != 2 {
			t.Fatalf("cell %d = %d after Fill", i, v)
		}
	}
}
