package sand

import (
	"image/color"

	prng "mad-sand/pkg/core"
)

// colorJitter bounds the random brightness shift applied at spawn.
const colorJitter = 0.25

// Vec2 is a sub-cell velocity in cells per tick.
type Vec2 struct {
	X, Y float32
}

// Particle is the per-cell state. Empty cells hold the zero Particle.
type Particle struct {
	Material Material
	Flags    Flags
	Color    color.RGBA

	FreeFalling  bool
	Velocity     Vec2
	SpreadFactor int
}

// IsEmpty reports whether the particle is the Empty sentinel.
func (p Particle) IsEmpty() bool { return p.Material == Empty }

// displaces reports whether p may move into a cell holding other: the cell
// is empty, or p is a solid sinking through a liquid.
func (p Particle) displaces(other Particle) bool {
	if other.IsEmpty() {
		return true
	}
	return p.Flags.Has(Solid) && other.Flags.Has(Liquid)
}

// Spawn creates a fresh particle of material m with zeroed kinetics. The
// color is the material's base color with a random brightness jitter; a nil
// rng yields the base color.
func Spawn(m Material, rng *prng.RNG) Particle {
	spec := specFor(m)
	if m == Empty {
		return Particle{}
	}
	c := spec.base
	if rng != nil {
		c = brightness(c, float32(rng.Float64()*2-1)*colorJitter)
	}
	return Particle{
		Material:     m,
		Flags:        spec.flags,
		Color:        c,
		SpreadFactor: spec.spread,
	}
}

// brightness shifts c toward black for negative factors and toward white for
// positive ones. factor is clamped to [-1, 1]; alpha is preserved.
func brightness(c color.RGBA, factor float32) color.RGBA {
	if factor > 1 {
		factor = 1
	}
	if factor < -1 {
		factor = -1
	}
	shift := func(v uint8) uint8 {
		f := float32(v)
		if factor < 0 {
			f *= 1 + factor
		} else {
			f += (255 - f) * factor
		}
		return uint8(f)
	}
	return color.RGBA{R: shift(c.R), G: shift(c.G), B: shift(c.B), A: c.A}
}
