package sand

import (
	"image/color"
	"testing"

	prng "mad-sand/pkg/core"
)

func TestMaterialTable(t *testing.T) {
	cases := []struct {
		m      Material
		flags  Flags
		chance int
	}{
		{Empty, FlagsNone, 1},
		{Sand, Solid | MoveDown | MoveDownSide, 10},
		{Water, Liquid | MoveDown | MoveDownSide | MoveSide, 10},
		{Stone, Solid, 1},
	}
	for _, tc := range cases {
		if got := tc.m.Flags(); got != tc.flags {
			t.Fatalf("%v flags = %b, want %b", tc.m, got, tc.flags)
		}
		if got := SpawnChance(tc.m); got != tc.chance {
			t.Fatalf("%v spawn chance = %d, want %d", tc.m, got, tc.chance)
		}
	}
}

func TestSpawnEmptyIsCanonical(t *testing.T) {
	p := Spawn(Empty, prng.NewRNG(1))
	if p != (Particle{}) {
		t.Fatalf("Spawn(Empty) = %+v, want zero particle", p)
	}
	if p.Flags != FlagsNone || p.Color != (color.RGBA{}) {
		t.Fatal("empty particle must have no flags and a transparent color")
	}
}

func TestSpawnZeroesKinetics(t *testing.T) {
	p := Spawn(Water, prng.NewRNG(1))
	if p.FreeFalling || p.Velocity != (Vec2{}) {
		t.Fatalf("spawned particle should be at rest: %+v", p)
	}
	if p.SpreadFactor != 5 {
		t.Fatalf("water spread factor = %d, want 5", p.SpreadFactor)
	}
	if p.Material != Water || p.Flags != Water.Flags() {
		t.Fatalf("spawned particle has wrong identity: %+v", p)
	}
}

func TestSpawnColorJitterBounds(t *testing.T) {
	rng := prng.NewRNG(5)
	base := Sand.BaseColor()
	lo := func(v uint8) int { return int(float32(v)*(1-colorJitter)) - 1 }
	hi := func(v uint8) int { return int(float32(v)+(255-float32(v))*colorJitter) + 1 }

	distinct := map[color.RGBA]bool{}
	for i := 0; i < 1000; i++ {
		c := Spawn(Sand, rng).Color
		distinct[c] = true
		if c.A != 255 {
			t.Fatalf("alpha changed: %v", c)
		}
		for _, ch := range []struct{ got, base uint8 }{{c.R, base.R}, {c.G, base.G}, {c.B, base.B}} {
			if int(ch.got) < lo(ch.base) || int(ch.got) > hi(ch.base) {
				t.Fatalf("channel %d outside jitter range of base %d", ch.got, ch.base)
			}
		}
	}
	if len(distinct) < 10 {
		t.Fatalf("expected varied colors, got %d distinct", len(distinct))
	}
}

func TestBrightnessExtremes(t *testing.T) {
	c := color.RGBA{R: 100, G: 50, B: 200, A: 255}
	if got := brightness(c, -1); got != (color.RGBA{A: 255}) {
		t.Fatalf("full darken = %v", got)
	}
	if got := brightness(c, 1); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("full brighten = %v", got)
	}
	if got := brightness(c, 0); got != c {
		t.Fatalf("zero factor changed color: %v", got)
	}
}

func TestParseMaterial(t *testing.T) {
	for m := Empty; m < MaterialCount; m++ {
		got, err := ParseMaterial(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseMaterial(%q) = %v, %v", m.String(), got, err)
		}
	}
	if got, err := ParseMaterial(" water "); err != nil || got != Water {
		t.Fatalf("expected case/space-insensitive parse, got %v, %v", got, err)
	}
	if _, err := ParseMaterial("lava"); err == nil {
		t.Fatal("expected error for unknown material")
	}
}

func TestInvalidMaterialPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range material")
		}
	}()
	Spawn(MaterialCount, nil)
}
