package geom

import "math"

// Translate returns a matrix moving points by v.
func Translate(v Point) Mat3 {
	return Mat3{
		1, 0, v.X,
		0, 1, v.Y,
		0, 0, 1,
	}
}

// Scale returns a matrix scaling about the origin.
func Scale(sx, sy float64) Mat3 {
	return Mat3{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	}
}

// rotate returns a rotation about the origin. Angle in radians; with
// screen Y pointing down a positive angle turns clockwise.
func rotate(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// about conjugates op so that it acts around pivot instead of the origin.
func about(op Mat3, pivot Point) Mat3 {
	return Translate(pivot).Mul(op).Mul(Translate(pivot.Scale(-1)))
}

// RotateDeg returns a rotation by deg degrees around center.
func RotateDeg(deg float64, center Point) Mat3 {
	return about(rotate(Deg2Rad(deg)), center)
}

// FlipHorizontal mirrors left and right around the vertical line through center.
func FlipHorizontal(center Point) Mat3 {
	return about(Scale(-1, 1), center)
}

// FlipVertical mirrors top and bottom around the horizontal line through center.
func FlipVertical(center Point) Mat3 {
	return about(Scale(1, -1), center)
}

// FlipAlong reflects across the infinite line through l. A zero-length
// line has no direction and yields NaN.
func FlipAlong(l Line) Mat3 {
	d := l[1].Sub(l[0])
	n := math.Hypot(d.X, d.Y)
	ux, uy := d.X/n, d.Y/n
	// Householder form of a reflection across direction (ux, uy).
	r := Mat3{
		ux*ux - uy*uy, 2 * ux * uy, 0,
		2 * ux * uy, uy*uy - ux*ux, 0,
		0, 0, 1,
	}
	return about(r, l[0])
}

// RotateToHorizontal rotates around l[0] so that l points along +X.
func RotateToHorizontal(l Line) Mat3 {
	d := l[1].Sub(l[0])
	return about(rotate(-math.Atan2(d.Y, d.X)), l[0])
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}
