package geom

import "math"

// ConstrainInSpace snaps a dragged screen point so that the line from anchor
// is parallel to one of the physical axes. perspective maps screen to
// physical space and calibration maps back. The axis is whichever of the two
// the raw drag is closer to, measured in physical space rather than on
// screen, so the snap follows the calibrated grid.
func ConstrainInSpace(p, anchor Point, perspective, calibration Mat3) Point {
	pp := TransformPoint(p, perspective)
	pa := TransformPoint(anchor, perspective)
	d := pp.Sub(pa)
	if math.Abs(d.X) >= math.Abs(d.Y) {
		d.Y = 0
	} else {
		d.X = 0
	}
	return TransformPoint(pa.Add(d), calibration)
}

// SingleAxis keeps only the dominant component of v.
func SingleAxis(v Point) Point {
	if math.Abs(v.X) > math.Abs(v.Y) {
		return Point{X: v.X}
	}
	return Point{Y: v.Y}
}
