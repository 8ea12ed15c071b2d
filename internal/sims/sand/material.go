package sand

import (
	"fmt"
	"image/color"
	"strings"
)

// Material identifies what kind of particle occupies a cell.
type Material uint8

const (
	Empty Material = iota
	Sand
	Water
	Stone

	// MaterialCount bounds the enumeration; it is not a material.
	MaterialCount
)

// Flags is the capability bitset that drives movement and displacement.
type Flags uint32

// FlagsNone marks a particle with no capabilities (only Empty).
const FlagsNone Flags = 0

const (
	Solid Flags = 1 << iota
	Liquid
	Gas
	MoveDown
	MoveDownSide
	MoveSide
)

// Has reports whether every bit in mask is set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

type materialSpec struct {
	name   string
	flags  Flags
	base   color.RGBA
	chance int
	spread int
}

var materials = [MaterialCount]materialSpec{
	Empty: {name: "Empty", chance: 1},
	Sand: {
		name:   "Sand",
		flags:  Solid | MoveDown | MoveDownSide,
		base:   color.RGBA{R: 235, G: 200, B: 175, A: 255},
		chance: 10,
	},
	Water: {
		name:   "Water",
		flags:  Liquid | MoveDown | MoveDownSide | MoveSide,
		base:   color.RGBA{R: 175, G: 200, B: 235, A: 255},
		chance: 10,
		spread: 5,
	},
	Stone: {
		name:   "Stone",
		flags:  Solid,
		base:   color.RGBA{R: 130, G: 130, B: 130, A: 255},
		chance: 1,
	},
}

// Valid reports whether m is one of the enumerated materials.
func (m Material) Valid() bool { return m < MaterialCount }

func (m Material) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Material(%d)", uint8(m))
	}
	return materials[m].name
}

// Flags returns the static capability set for the material.
func (m Material) Flags() Flags { return specFor(m).flags }

// BaseColor returns the un-jittered spawn color.
func (m Material) BaseColor() color.RGBA { return specFor(m).base }

// SpawnChance returns the reciprocal paint probability for m: a value of 10
// means one brush cell in ten is filled per tick.
func SpawnChance(m Material) int { return specFor(m).chance }

// ParseMaterial resolves a material by name, ignoring case.
func ParseMaterial(s string) (Material, error) {
	for m := Empty; m < MaterialCount; m++ {
		if strings.EqualFold(materials[m].name, strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return Empty, fmt.Errorf("unknown material %q", s)
}

func specFor(m Material) materialSpec {
	if !m.Valid() {
		panic(fmt.Sprintf("sand: invalid material %d", uint8(m)))
	}
	return materials[m]
}
