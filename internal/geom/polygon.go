package geom

// CheckIsConcave reports whether the polygon, in the given vertex order, is
// not strictly convex. Every turn must go the same way; a flip in the sign of
// the edge cross product marks a reflex (or self-crossing) vertex, and a zero
// cross product marks a flat one, which is rejected as well. Fewer than
// three points never form a valid polygon.
func CheckIsConcave(points []Point) bool {
	n := len(points)
	if n < 3 {
		return true
	}
	var sign float64
	for i := range n {
		a, b, c := points[i], points[(i+1)%n], points[(i+2)%n]
		cross := b.Sub(a).Cross(c.Sub(b))
		if cross == 0 {
			return true
		}
		if sign == 0 {
			sign = cross
			continue
		}
		if (cross > 0) != (sign > 0) {
			return true
		}
	}
	return false
}

// MinIndex returns the index of the smallest value; ties resolve to the
// first occurrence. It returns -1 for an empty slice.
func MinIndex(values []float64) int {
	best := -1
	for i, v := range values {
		if best == -1 || v < values[best] {
			best = i
		}
	}
	return best
}
