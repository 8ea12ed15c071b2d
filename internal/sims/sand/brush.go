package sand

// Paint fills Empty cells inside the disc of the given radius around
// (cx, cy) with material m. Each candidate cell is filled with probability
// 1/chance, so a held brush thickens gradually. It returns the cells written.
func (w *World) Paint(cx, cy, radius int, m Material, chance int) int {
	specFor(m)
	written := 0
	w.disc(cx, cy, radius, func(x, y int) {
		if !w.IsEmpty(x, y) || !w.rng.OneIn(chance) {
			return
		}
		w.grid.Set(x, y, Spawn(m, w.rng))
		written++
	})
	return written
}

// Erase clears every in-bounds cell inside the disc around (cx, cy).
func (w *World) Erase(cx, cy, radius int) int {
	erased := 0
	w.disc(cx, cy, radius, func(x, y int) {
		if !w.grid.InBounds(x, y) {
			return
		}
		if !w.grid.At(x, y).IsEmpty() {
			erased++
		}
		w.grid.Set(x, y, Particle{})
	})
	return erased
}

// disc visits offsets in [-r, r) on both axes that lie within distance r of
// the center. Coordinates may be out of bounds.
func (w *World) disc(cx, cy, radius int, visit func(x, y int)) {
	if radius <= 0 {
		return
	}
	r2 := radius * radius
	for j := -radius; j < radius; j++ {
		for i := -radius; i < radius; i++ {
			if i*i+j*j > r2 {
				continue
			}
			visit(cx+i, cy+j)
		}
	}
}
