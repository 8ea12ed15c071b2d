package sand

// traceLine walks the Bresenham line from (x0, y0) to (x1, y1), calling
// visit for every cell after the start, up to and including the end. It
// stops early when visit returns false.
func traceLine(x0, y0, x1, y1 int, visit func(x, y int) bool) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for x0 != x1 || y0 != y1 {
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
		if !visit(x0, y0) {
			return
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// adjacent reports whether two cells are within one king's move.
func adjacent(x0, y0, x1, y1 int) bool {
	return abs(x1-x0) <= 1 && abs(y1-y0) <= 1
}
