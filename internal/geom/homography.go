package geom

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSingularTransform is returned when a transform cannot be formed because
// the input is degenerate (collinear or coincident points).
var ErrSingularTransform = errors.New("geom: singular transform")

// collinearTolerance applies to twice the triangle area of normalized
// points, whose mean distance from their centroid is √2.
const collinearTolerance = 1e-9

// GetPerspectiveTransform returns the homography mapping src[i] to dst[i]
// exactly. The 8×8 correspondence system is solved with the bottom-right
// entry fixed to 1, after moving each point set to its centroid and scaling
// it to mean distance √2 so large screen coordinates stay well conditioned.
//
// Three or more collinear points on either side make the system singular;
// in that case the returned matrix is NaN-filled and the error wraps
// ErrSingularTransform.
func GetPerspectiveTransform(src, dst [4]Point) (Mat3, error) {
	ts, err := normalizer(src)
	if err != nil {
		return nanMat3(), fmt.Errorf("geom: perspective transform source: %w", err)
	}
	td, err := normalizer(dst)
	if err != nil {
		return nanMat3(), fmt.Errorf("geom: perspective transform destination: %w", err)
	}

	var ns, nd [4]Point
	for i := range 4 {
		ns[i] = TransformPoint(src[i], ts)
		nd[i] = TransformPoint(dst[i], td)
	}
	if hasCollinearTriple(ns) || hasCollinearTriple(nd) {
		return nanMat3(), fmt.Errorf("geom: perspective transform: collinear points: %w", ErrSingularTransform)
	}

	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)
	for i := range 4 {
		X, Y := ns[i].X, ns[i].Y
		x, y := nd[i].X, nd[i].Y
		r := 2 * i
		// x = (h0 X + h1 Y + h2) / (h6 X + h7 Y + 1)
		a.SetRow(r, []float64{X, Y, 1, 0, 0, 0, -X * x, -Y * x})
		b.SetVec(r, x)
		// y = (h3 X + h4 Y + h5) / (h6 X + h7 Y + 1)
		a.SetRow(r+1, []float64{0, 0, 0, X, Y, 1, -X * y, -Y * y})
		b.SetVec(r+1, y)
	}

	var h mat.VecDense
	if err := h.SolveVec(a, b); err != nil {
		return nanMat3(), fmt.Errorf("geom: perspective transform: %v: %w", err, ErrSingularTransform)
	}

	hn := Mat3{
		h.AtVec(0), h.AtVec(1), h.AtVec(2),
		h.AtVec(3), h.AtVec(4), h.AtVec(5),
		h.AtVec(6), h.AtVec(7), 1,
	}
	m := td.Inverse().Mul(hn).Mul(ts).normalized()
	if !m.IsFinite() {
		return nanMat3(), fmt.Errorf("geom: perspective transform: %w", ErrSingularTransform)
	}
	return m, nil
}

// normalizer returns the similarity moving ps to their centroid and scaling
// them to mean distance √2.
func normalizer(ps [4]Point) (Mat3, error) {
	var c Point
	for _, p := range ps {
		c = c.Add(p)
	}
	c = c.Scale(0.25)

	var mean float64
	for _, p := range ps {
		d := p.Sub(c)
		mean += math.Hypot(d.X, d.Y)
	}
	mean /= 4
	if mean == 0 || math.IsNaN(mean) || math.IsInf(mean, 0) {
		return nanMat3(), fmt.Errorf("coincident points: %w", ErrSingularTransform)
	}

	s := math.Sqrt2 / mean
	return Mat3{
		s, 0, -s * c.X,
		0, s, -s * c.Y,
		0, 0, 1,
	}, nil
}

func hasCollinearTriple(ps [4]Point) bool {
	for i := range 4 {
		a, b, c := ps[i], ps[(i+1)%4], ps[(i+2)%4]
		if math.Abs(b.Sub(a).Cross(c.Sub(a))) <= collinearTolerance {
			return true
		}
	}
	return false
}
