package geom

import "math"

// Point is a 2D point in screen or canonical space (value type).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line is an ordered pair of points. Direction matters for AngleDeg.
type Line [2]Point

func (a Point) Add(b Point) Point {
	return Point{a.X + b.X, a.Y + b.Y}
}

func (a Point) Sub(b Point) Point {
	return Point{a.X - b.X, a.Y - b.Y}
}

func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Cross returns the z component of the 2D cross product a × b.
func (a Point) Cross(b Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

func (a Point) Dot(b Point) float64 {
	return a.X*b.X + a.Y*b.Y
}

// IsFinite reports whether both coordinates are neither NaN nor infinite.
// Transforming through a degenerate matrix yields non-finite points, which
// must not be drawn.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// IsFinite reports whether both endpoints are finite.
func (l Line) IsFinite() bool {
	return l[0].IsFinite() && l[1].IsFinite()
}

// TranslatePoints returns a copy of ps shifted by (dx, dy).
func TranslatePoints(ps []Point, dx, dy float64) []Point {
	out := make([]Point, len(ps))
	for i, p := range ps {
		out[i] = Point{p.X + dx, p.Y + dy}
	}
	return out
}

// RectCorners returns the corners of the axis-aligned rectangle (0,0)-(w,h)
// in top-left, top-right, bottom-right, bottom-left order.
func RectCorners(w, h float64) []Point {
	return []Point{{0, 0}, {w, 0}, {w, h}, {0, h}}
}
