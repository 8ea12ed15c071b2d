package sand

import (
	"image/color"
	"slices"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func newTestWorld(w, h int) *World {
	return NewWorld(w, h, 1, 1)
}

func mustMaterial(t *testing.T, w *World, x, y int, want Material) {
	t.Helper()
	if got := w.Get(x, y).Material; got != want {
		t.Fatalf("cell (%d,%d) = %v, want %v", x, y, got, want)
	}
}

func TestNewWorldStartsEmpty(t *testing.T) {
	w := NewWorld(8, 6, 0, 1)
	if w.Width() != 8 || w.Height() != 6 || w.Scale() != 1 {
		t.Fatalf("unexpected geometry %dx%d scale %d", w.Width(), w.Height(), w.Scale())
	}
	if w.Count() != 0 {
		t.Fatalf("new world has %d particles", w.Count())
	}
	for i, c := range w.SnapshotColors() {
		if c != (color.RGBA{}) {
			t.Fatalf("cell %d color %v, want transparent", i, c)
		}
	}
}

func TestIsEmptyOutOfBounds(t *testing.T) {
	w := newTestWorld(4, 4)
	for _, pt := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {-1, -1}} {
		if w.IsEmpty(pt[0], pt[1]) {
			t.Fatalf("IsEmpty(%d,%d) should be false out of bounds", pt[0], pt[1])
		}
	}
	if !w.IsEmpty(0, 0) {
		t.Fatal("in-bounds empty cell reported occupied")
	}
}

func TestSnapshotColorsIsFreshCopy(t *testing.T) {
	w := newTestWorld(3, 3)
	w.Place(1, 1, Stone)
	snap := w.SnapshotColors()
	snap[w.grid.Index(1, 1)] = color.RGBA{}
	if w.Colors()[w.grid.Index(1, 1)] == (color.RGBA{}) {
		t.Fatal("mutating the snapshot must not affect the world")
	}
	if len(w.Colors()) != 9 {
		t.Fatalf("color buffer length %d", len(w.Colors()))
	}
}

func TestFallOneCell(t *testing.T) {
	w := newTestWorld(5, 5)
	w.Place(2, 1, Sand)
	w.Tick()
	mustMaterial(t, w, 2, 2, Sand)
	mustMaterial(t, w, 2, 1, Empty)
	if !w.Get(2, 2).FreeFalling {
		t.Fatal("a particle that fell should be free-falling")
	}
}

func TestBlockedFallStays(t *testing.T) {
	w := newTestWorld(5, 5)
	w.Place(2, 2, Sand)
	w.Place(1, 3, Stone)
	w.Place(2, 3, Stone)
	w.Place(3, 3, Stone)
	w.Tick()
	mustMaterial(t, w, 2, 2, Sand)
	if p := w.Get(2, 2); p.FreeFalling || p.Velocity.Y != 0 {
		t.Fatalf("blocked particle should be at rest: %+v", p)
	}
	if w.Stats().Queued != 0 {
		t.Fatalf("expected no moves, got %d", w.Stats().Queued)
	}
}

func TestSinkThrough(t *testing.T) {
	for _, mover := range []Material{Stone, Sand} {
		w := newTestWorld(5, 4)
		w.Place(2, 2, mover)
		w.Place(2, 3, Water)
		w.Place(1, 3, Stone)
		w.Place(3, 3, Stone)
		w.Tick()
		mustMaterial(t, w, 2, 3, mover)
		mustMaterial(t, w, 2, 2, Water)
		st := w.Stats()
		if st.Swapped != 1 || st.Invalidated != 1 {
			t.Fatalf("%v: expected one swap and one invalidated reverse move, got %+v", mover, st)
		}
	}
}

func TestStoneStaysInAir(t *testing.T) {
	w := newTestWorld(3, 5)
	w.Place(1, 1, Stone)
	for i := 0; i < 5; i++ {
		w.Tick()
	}
	mustMaterial(t, w, 1, 1, Stone)
}

func TestWaterSpreadsSideways(t *testing.T) {
	w := newTestWorld(5, 3)
	w.Place(2, 2, Water)
	w.Tick()
	left, right := w.Get(1, 2).Material, w.Get(3, 2).Material
	if (left == Water) == (right == Water) {
		t.Fatalf("water should move to exactly one side, left=%v right=%v", left, right)
	}
	mustMaterial(t, w, 2, 2, Empty)
}

func TestEdgeColumnsStayInBounds(t *testing.T) {
	w := newTestWorld(4, 3)
	w.Place(0, 1, Sand)
	w.Place(0, 2, Stone)
	w.Place(3, 1, Sand)
	w.Place(3, 2, Stone)
	w.Tick()
	mustMaterial(t, w, 1, 2, Sand)
	mustMaterial(t, w, 2, 2, Sand)
	mustMaterial(t, w, 0, 1, Empty)
	mustMaterial(t, w, 3, 1, Empty)

	b := newTestWorld(3, 3)
	b.Place(0, 2, Sand)
	b.Place(2, 2, Water)
	b.Place(1, 2, Stone)
	b.Tick()
	mustMaterial(t, b, 0, 2, Sand)
	mustMaterial(t, b, 2, 2, Water)
}

func TestRowFallsOneCellFromRest(t *testing.T) {
	w := newTestWorld(8, 8)
	for x := 0; x < 8; x++ {
		w.Place(x, 0, Sand)
	}
	w.Tick()
	for x := 0; x < 8; x++ {
		mustMaterial(t, w, x, 0, Empty)
		mustMaterial(t, w, x, 1, Sand)
	}
	if len(w.moves) != 0 {
		t.Fatal("pending moves must be cleared after resolution")
	}
}

func TestFreeFallAccelerates(t *testing.T) {
	w := newTestWorld(1, 20)
	w.Place(0, 0, Sand)
	want := []int{1, 3, 6, 10, 15, 19, 19}
	for tick, y := range want {
		w.Tick()
		mustMaterial(t, w, 0, y, Sand)
		if w.Count() != 1 {
			t.Fatalf("tick %d: particle count %d", tick, w.Count())
		}
	}
}

func TestFastFallStopsBeforeObstacle(t *testing.T) {
	w := newTestWorld(5, 10)
	w.Place(2, 0, Sand)
	w.Place(2, 5, Stone)

	w.Tick()
	mustMaterial(t, w, 2, 1, Sand)
	w.Tick()
	mustMaterial(t, w, 2, 3, Sand)
	w.Tick()
	mustMaterial(t, w, 2, 4, Sand)
	mustMaterial(t, w, 2, 5, Stone)

	p := w.Get(2, 4)
	if p.FreeFalling || p.Velocity.Y != 0 {
		t.Fatalf("landing short should reset velocity: %+v", p)
	}
	if w.Stats().Shortened != 1 {
		t.Fatalf("expected one shortened move, got %+v", w.Stats())
	}
}

func TestBlockedFarTargetSlidesDiagonally(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		w := NewWorld(5, 6, 1, seed)
		w.Place(2, 0, Sand)
		w.Place(2, 3, Stone)
		p := w.Get(2, 0)
		p.FreeFalling = true
		p.Velocity.Y = 1
		w.Set(2, 0, p)

		w.Tick()
		mustMaterial(t, w, 2, 0, Empty)
		mustMaterial(t, w, 2, 1, Empty)
		x := 1
		if w.Get(1, 1).Material != Sand {
			x = 3
		}
		mustMaterial(t, w, x, 1, Sand)
		if got := w.Get(x, 1); got.FreeFalling || got.Velocity.Y != 0 {
			t.Fatalf("seed %d: diagonal slide should end free-fall: %+v", seed, got)
		}
	}
}

func TestSharedDestinationNeverDoublesUp(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		w := NewWorld(4, 4, 1, seed)
		w.Place(0, 3, Stone)
		w.Place(1, 3, Water)
		w.Place(2, 2, Sand)
		w.Tick()
		if w.Count() != 3 {
			t.Fatalf("seed %d: particle count %d, want 3", seed, w.Count())
		}
		mustMaterial(t, w, 2, 3, Sand)
		st := w.Stats()
		if st.Committed+st.Blocked != 2 {
			t.Fatalf("seed %d: unexpected stats %+v", seed, st)
		}
	}
}

func TestConservationAndEmptyInvariant(t *testing.T) {
	w := NewWorld(64, 48, 1, 11)
	rng := w.RNG()
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			switch rng.IntN(10) {
			case 0, 1:
				w.Place(x, y, Sand)
			case 2, 3:
				w.Place(x, y, Water)
			case 4:
				w.Place(x, y, Stone)
			}
		}
	}
	counts := map[Material]int{}
	for m := Sand; m < MaterialCount; m++ {
		counts[m] = w.CountOf(m)
	}

	for tick := 0; tick < 200; tick++ {
		w.Tick()
		for m, want := range counts {
			if got := w.CountOf(m); got != want {
				t.Fatalf("tick %d: %v count %d, want %d", tick, m, got, want)
			}
		}
		for i, p := range w.grid.Cells() {
			if p.IsEmpty() && (p.Flags != FlagsNone || p.Color != (color.RGBA{})) {
				t.Fatalf("tick %d: empty cell %d carries state %+v", tick, i, p)
			}
		}
	}
}

func TestDiagonalChoiceIsFair(t *testing.T) {
	const trials = 10000
	w := NewWorld(3, 2, 1, 2024)
	left := 0
	for i := 0; i < trials; i++ {
		w.Clear()
		w.Set(1, 1, Spawn(Stone, nil))
		w.Set(1, 0, Spawn(Sand, nil))
		w.Tick()
		switch {
		case w.Get(0, 1).Material == Sand:
			left++
		case w.Get(2, 1).Material != Sand:
			t.Fatalf("trial %d: sand did not slide", i)
		}
	}

	obs := []float64{float64(left), float64(trials - left)}
	exp := []float64{trials / 2, trials / 2}
	// 10.83 is the p=0.001 critical value for one degree of freedom.
	if chi := stat.ChiSquare(obs, exp); chi > 10.83 {
		t.Fatalf("left chosen %d/%d times (chi-square %.2f)", left, trials, chi)
	}
}

func TestSameSeedSameHistory(t *testing.T) {
	run := func(seed int64) []color.RGBA {
		w := NewWorld(32, 32, 1, seed)
		for tick := 0; tick < 120; tick++ {
			if tick < 60 {
				w.Paint(16, 4, 4, Sand, 3)
				w.Paint(8, 4, 3, Water, 3)
			}
			w.Tick()
		}
		return w.SnapshotColors()
	}
	if !slices.Equal(run(7), run(7)) {
		t.Fatal("identical seeds and inputs must produce identical grids")
	}
	if slices.Equal(run(7), run(8)) {
		t.Fatal("different seeds should diverge")
	}
}

func TestTraceLineSkipsStart(t *testing.T) {
	var got [][2]int
	traceLine(0, 0, 0, 3, func(x, y int) bool {
		got = append(got, [2]int{x, y})
		return true
	})
	want := [][2]int{{0, 1}, {0, 2}, {0, 3}}
	if !slices.Equal(got, want) {
		t.Fatalf("vertical trace = %v, want %v", got, want)
	}

	got = got[:0]
	traceLine(0, 0, 4, 2, func(x, y int) bool {
		got = append(got, [2]int{x, y})
		return len(got) < 2
	})
	if want := [][2]int{{1, 0}, {2, 1}}; !slices.Equal(got, want) {
		t.Fatalf("early stop trace = %v, want %v", got, want)
	}
}

func TestMotionMaskTracksFreeFall(t *testing.T) {
	w := newTestWorld(3, 40)
	w.Place(1, 0, Sand)
	w.Place(0, 39, Stone)
	w.Tick()
	w.Tick()
	mask := w.MotionMask()
	if len(mask) != 3*40 {
		t.Fatalf("mask length %d", len(mask))
	}
	idx := w.grid.Index(1, 3)
	if mask[idx] <= 0 || mask[idx] > 1 {
		t.Fatalf("falling sand intensity %f", mask[idx])
	}
	if mask[w.grid.Index(0, 39)] != 0 {
		t.Fatal("resting stone should have no motion")
	}
}
