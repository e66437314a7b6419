package geom

import "math"

// SqrDist returns the squared distance between a and b. Hit tests compare
// against squared thresholds to avoid the square root.
func SqrDist(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// SqrDistToLine returns the squared distance from p to the segment l.
// The projection is clamped to the segment, so points past an endpoint
// measure to that endpoint rather than to the infinite line.
func SqrDistToLine(l Line, p Point) float64 {
	d := l[1].Sub(l[0])
	len2 := d.Dot(d)
	if len2 == 0 {
		return SqrDist(p, l[0])
	}
	t := p.Sub(l[0]).Dot(d) / len2
	t = math.Max(0, math.Min(1, t))
	return SqrDist(p, l[0].Add(d.Scale(t)))
}

// AngleDeg returns the direction of l in degrees, in (-180, 180].
// Screen Y grows downward, so positive angles turn clockwise: a line
// pointing straight down is +90.
func AngleDeg(l Line) float64 {
	d := l[1].Sub(l[0])
	a := Rad2Deg(math.Atan2(d.Y, d.X))
	if a <= -180 {
		a += 360
	}
	return a
}

// Length returns the Euclidean length of l.
func Length(l Line) float64 {
	return math.Sqrt(SqrDist(l[0], l[1]))
}
