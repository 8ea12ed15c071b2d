package sand

import (
	"image/color"

	"mad-sand/internal/core"
	prng "mad-sand/pkg/core"
)

// Move is a pending relocation recorded during evaluation. Src and Dst are
// flat indices; an invalidated move carries -1 in both.
type Move struct {
	Src, Dst int

	mat Material
}

func (m *Move) invalidate() {
	m.Src, m.Dst = -1, -1
}

// Valid reports whether the move survived destination filtering.
func (m Move) Valid() bool { return m.Src >= 0 && m.Dst >= 0 }

// TickStats summarizes what the resolver did with one tick's moves.
type TickStats struct {
	Tick        uint64
	Queued      int
	Invalidated int
	Stale       int
	Blocked     int
	Committed   int
	Swapped     int
	Shortened   int
}

// World owns the particle grid, the pending-move queue for the current tick
// and the color buffer exported to presentation.
type World struct {
	grid    *core.Grid[Particle]
	scale   int
	gravity float32

	moves  []Move
	colors []color.RGBA
	motion []float32

	rng   *prng.RNG
	tick  uint64
	stats TickStats
}

// NewWorld allocates a width x height world with every cell Empty.
func NewWorld(width, height, scale int, seed int64) *World {
	if scale <= 0 {
		scale = 1
	}
	grid := core.NewGrid[Particle](width, height)
	return &World{
		grid:    grid,
		scale:   scale,
		gravity: 1,
		colors:  make([]color.RGBA, grid.W*grid.H),
		rng:     prng.NewRNG(seed),
	}
}

// Width returns the number of columns.
func (w *World) Width() int { return w.grid.W }

// Height returns the number of rows.
func (w *World) Height() int { return w.grid.H }

// Scale returns the display pixels per simulation cell.
func (w *World) Scale() int { return w.scale }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.grid.W, H: w.grid.H} }

// RNG exposes the world's random source.
func (w *World) RNG() *prng.RNG { return w.rng }

// Gravity returns the per-tick velocity increment for free-falling particles.
func (w *World) Gravity() float32 { return w.gravity }

// SetGravity updates the free-fall acceleration. Negative values become 0.
func (w *World) SetGravity(g float32) {
	if g < 0 {
		g = 0
	}
	w.gravity = g
}

// InBounds reports whether (x, y) is inside the grid.
func (w *World) InBounds(x, y int) bool { return w.grid.InBounds(x, y) }

// IsEmpty reports whether (x, y) is inside the grid and holds no particle.
// Out-of-bounds coordinates are treated as occupied.
func (w *World) IsEmpty(x, y int) bool {
	return w.grid.InBounds(x, y) && w.grid.At(x, y).IsEmpty()
}

// Get returns the particle at (x, y). Callers must bounds-check.
func (w *World) Get(x, y int) Particle { return w.grid.At(x, y) }

// Set overwrites the particle at (x, y). Callers must bounds-check.
func (w *World) Set(x, y int, p Particle) { w.grid.Set(x, y, p) }

// Place spawns material m at (x, y) if it is in bounds.
func (w *World) Place(x, y int, m Material) bool {
	if !w.grid.InBounds(x, y) {
		return false
	}
	w.grid.Set(x, y, Spawn(m, w.rng))
	return true
}

// Clear resets every cell to Empty and drops any pending moves.
func (w *World) Clear() {
	w.grid.Fill(Particle{})
	w.moves = w.moves[:0]
	w.stats = TickStats{}
	w.tick = 0
}

// Count returns the number of non-Empty particles.
func (w *World) Count() int {
	n := 0
	for _, p := range w.grid.Cells() {
		if !p.IsEmpty() {
			n++
		}
	}
	return n
}

// CountOf returns the number of particles of material m.
func (w *World) CountOf(m Material) int {
	n := 0
	for _, p := range w.grid.Cells() {
		if p.Material == m {
			n++
		}
	}
	return n
}

// Colors refreshes and returns the internal export buffer, one color per
// cell in row-major order. The slice is reused across calls.
func (w *World) Colors() []color.RGBA {
	for i, p := range w.grid.Cells() {
		w.colors[i] = p.Color
	}
	return w.colors
}

// SnapshotColors returns a freshly allocated copy of the cell colors.
func (w *World) SnapshotColors() []color.RGBA {
	cells := w.grid.Cells()
	out := make([]color.RGBA, len(cells))
	for i, p := range cells {
		out[i] = p.Color
	}
	return out
}

// MotionMask returns one intensity in [0, 1] per cell: the fall speed of
// free-falling particles relative to the grid height, 0 elsewhere. The slice
// is reused across calls.
func (w *World) MotionMask() []float32 {
	cells := w.grid.Cells()
	if len(w.motion) != len(cells) {
		w.motion = make([]float32, len(cells))
	}
	limit := float32(w.grid.H) / 4
	if limit < 1 {
		limit = 1
	}
	for i, p := range cells {
		if !p.FreeFalling || p.Velocity.Y <= 0 {
			w.motion[i] = 0
			continue
		}
		w.motion[i] = min(p.Velocity.Y/limit, 1)
	}
	return w.motion
}

// Stats reports the most recent tick's resolution summary.
func (w *World) Stats() TickStats { return w.stats }

// Ticks returns how many ticks the world has run since construction or Clear.
func (w *World) Ticks() uint64 { return w.tick }

// Tick runs one evaluation pass and resolves the resulting moves.
func (w *World) Tick() {
	w.evaluate()
	w.resolve()
	w.tick++
	w.stats.Tick = w.tick
}
