package sand

// resolve commits the tick's pending moves.
//
// Moves whose destination cannot accept the mover, judged against the grid
// as it stood when resolution began, are invalidated first. The queue is
// then shuffled so commit order carries no scan-order bias. Each surviving
// move either settles directly (adjacent cells) or is traced along its line
// and lands on the furthest cell reached before the path is blocked. The
// displaced occupant of the landing cell, Empty or a liquid, takes the
// mover's old cell. The queue is empty afterwards.
func (w *World) resolve() {
	stats := TickStats{Queued: len(w.moves)}
	if len(w.moves) == 0 {
		w.stats = stats
		return
	}

	cells := w.grid.Cells()
	for i := range w.moves {
		m := &w.moves[i]
		if !cells[m.Src].displaces(cells[m.Dst]) {
			m.invalidate()
			stats.Invalidated++
		}
	}

	w.rng.Shuffle(len(w.moves), func(i, j int) {
		w.moves[i], w.moves[j] = w.moves[j], w.moves[i]
	})

	for _, m := range w.moves {
		if !m.Valid() {
			continue
		}
		mover := cells[m.Src]
		if mover.Material != m.mat {
			// The source was vacated or overwritten by an earlier commit.
			stats.Stale++
			continue
		}

		landing := w.landing(mover, m.Src, m.Dst)
		if landing < 0 {
			stats.Blocked++
			continue
		}
		if landing != m.Dst {
			mover.FreeFalling = false
			mover.Velocity.Y = 0
			stats.Shortened++
		}

		displaced := cells[landing]
		cells[landing] = mover
		cells[m.Src] = displaced
		stats.Committed++
		if !displaced.IsEmpty() {
			stats.Swapped++
		}
	}

	w.moves = w.moves[:0]
	w.stats = stats
}

// landing returns the index the mover settles on when travelling from src
// toward dst, or -1 when even the first step is blocked.
func (w *World) landing(mover Particle, src, dst int) int {
	g := w.grid
	cells := g.Cells()
	sx, sy := g.Pos(src)
	dx, dy := g.Pos(dst)

	if adjacent(sx, sy, dx, dy) {
		if mover.displaces(cells[dst]) {
			return dst
		}
		return -1
	}

	land := -1
	traceLine(sx, sy, dx, dy, func(x, y int) bool {
		if !g.InBounds(x, y) {
			return false
		}
		idx := g.Index(x, y)
		if !mover.displaces(cells[idx]) {
			return false
		}
		land = idx
		return true
	})
	return land
}
