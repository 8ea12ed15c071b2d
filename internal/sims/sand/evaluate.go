package sand

import "math"

// evaluate scans the grid bottom to top, left to right, and records at most
// one intended move per particle. Only kinetic state is written back to the
// grid during the scan; positions change in resolve.
func (w *World) evaluate() {
	w.moves = w.moves[:0]
	g := w.grid
	for y := g.H - 1; y >= 0; y-- {
		for x := 0; x < g.W; x++ {
			p := g.At(x, y)
			if p.IsEmpty() || p.Flags == FlagsNone {
				continue
			}
			switch {
			case p.Flags.Has(MoveDown) && w.moveDown(x, y):
			case p.Flags.Has(MoveDownSide) && w.moveDownSide(x, y):
			case p.Flags.Has(MoveSide) && w.moveSide(x, y):
			case !p.Flags.Has(MoveDown) && w.sink(x, y):
			}
		}
	}
}

func (w *World) queue(src, dst int, m Material) {
	w.moves = append(w.moves, Move{Src: src, Dst: dst, mat: m})
}

// accepts reports whether p could move into (x, y) right now.
func (w *World) accepts(p Particle, x, y int) bool {
	return w.grid.InBounds(x, y) && p.displaces(w.grid.At(x, y))
}

// moveDown applies gravity. A free-falling particle accelerates and targets
// y+1+floor(vy). If that cell is taken the branch fails and the particle
// loses its velocity, leaving the diagonal and lateral branches to run.
func (w *World) moveDown(x, y int) bool {
	g := w.grid
	idx := g.Index(x, y)
	cells := g.Cells()
	p := cells[idx]

	if p.FreeFalling {
		p.Velocity.Y += w.gravity
	} else {
		p.Velocity.Y = 0
	}

	ty := y + 1 + int(math.Floor(float64(p.Velocity.Y)))
	if ty > g.H-1 {
		ty = g.H - 1
	}
	if ty <= y || !w.accepts(p, x, ty) {
		p.FreeFalling = false
		p.Velocity.Y = 0
		cells[idx] = p
		return false
	}

	p.FreeFalling = true
	cells[idx] = p
	dst := g.Index(x, ty)
	w.queue(idx, dst, p.Material)
	if below := cells[dst]; !below.IsEmpty() {
		w.queue(dst, idx, below.Material)
	}
	return true
}

// moveDownSide slides a particle diagonally down, choosing a side at random
// when both are free.
func (w *World) moveDownSide(x, y int) bool {
	return w.moveLateral(x, y, y+1)
}

// moveSide spreads a particle one cell left or right.
func (w *World) moveSide(x, y int) bool {
	return w.moveLateral(x, y, y)
}

func (w *World) moveLateral(x, y, ty int) bool {
	left := w.IsEmpty(x-1, ty)
	right := w.IsEmpty(x+1, ty)
	if left && right {
		left = w.rng.Bool()
		right = !left
	}

	var tx int
	switch {
	case left:
		tx = x - 1
	case right:
		tx = x + 1
	default:
		return false
	}

	g := w.grid
	idx := g.Index(x, y)
	p := g.Cells()[idx]
	p.FreeFalling = false
	p.Velocity.Y = 0
	g.Cells()[idx] = p
	w.queue(idx, g.Index(tx, ty), p.Material)
	return true
}

// sink lets an immobile solid settle through a liquid directly beneath it.
func (w *World) sink(x, y int) bool {
	g := w.grid
	p := g.At(x, y)
	if !p.Flags.Has(Solid) || !g.InBounds(x, y+1) {
		return false
	}
	below := g.At(x, y+1)
	if !below.Flags.Has(Liquid) {
		return false
	}
	src, dst := g.Index(x, y), g.Index(x, y+1)
	w.queue(src, dst, p.Material)
	w.queue(dst, src, below.Material)
	return true
}
