package geom

import "math"

// Mat3 is a 3×3 homogeneous transform stored row-major:
// [r0c0, r0c1, r0c2, r1c0, ...]. Points are column vectors, so
// a.Mul(b) applies b first and then a.
type Mat3 [9]float64

func Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// nanMat3 is what degenerate computations return instead of a usable matrix.
func nanMat3() Mat3 {
	n := math.NaN()
	return Mat3{n, n, n, n, n, n, n, n, n}
}

// Mul returns m × b.
func (m Mat3) Mul(b Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i*3+j] = m[i*3+0]*b[0*3+j] + m[i*3+1]*b[1*3+j] + m[i*3+2]*b[2*3+j]
		}
	}
	return r
}

// At returns the element at row i, column j.
func (m Mat3) At(i, j int) float64 {
	return m[i*3+j]
}

func (m Mat3) Det() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Inverse returns the inverse of m. A singular m gives a NaN-filled matrix;
// there is no fallback to identity.
func (m Mat3) Inverse() Mat3 {
	d := m.Det()
	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return nanMat3()
	}
	invD := 1.0 / d
	return Mat3{
		(m[4]*m[8] - m[5]*m[7]) * invD,
		(m[2]*m[7] - m[1]*m[8]) * invD,
		(m[1]*m[5] - m[2]*m[4]) * invD,
		(m[5]*m[6] - m[3]*m[8]) * invD,
		(m[0]*m[8] - m[2]*m[6]) * invD,
		(m[2]*m[3] - m[0]*m[5]) * invD,
		(m[3]*m[7] - m[4]*m[6]) * invD,
		(m[1]*m[6] - m[0]*m[7]) * invD,
		(m[0]*m[4] - m[1]*m[3]) * invD,
	}
}

// IsFinite reports whether every element is finite.
func (m Mat3) IsFinite() bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// IsFlipped reports whether m reverses orientation (negative determinant).
func (m Mat3) IsFlipped() bool {
	return m.Det() < 0
}

// ApproxEqual compares m and b element-wise after scaling both so the
// bottom-right element is 1, since homogeneous matrices are only defined
// up to scale.
func (m Mat3) ApproxEqual(b Mat3, tol float64) bool {
	m, b = m.normalized(), b.normalized()
	for i := range m {
		if math.Abs(m[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func (m Mat3) normalized() Mat3 {
	if m[8] == 0 || m[8] == 1 {
		return m
	}
	s := 1 / m[8]
	for i := range m {
		m[i] *= s
	}
	return m
}

// TransformPoint applies m to p and divides by the homogeneous w.
// When w is zero the result is not finite; check Point.IsFinite.
func TransformPoint(p Point, m Mat3) Point {
	w := m[6]*p.X + m[7]*p.Y + m[8]
	return Point{
		X: (m[0]*p.X + m[1]*p.Y + m[2]) / w,
		Y: (m[3]*p.X + m[4]*p.Y + m[5]) / w,
	}
}

// TransformPoints applies m to each point of ps.
func TransformPoints(ps []Point, m Mat3) []Point {
	out := make([]Point, len(ps))
	for i, p := range ps {
		out[i] = TransformPoint(p, m)
	}
	return out
}

// TransformLine applies m to both endpoints, keeping their order.
func TransformLine(l Line, m Mat3) Line {
	return Line{TransformPoint(l[0], m), TransformPoint(l[1], m)}
}
