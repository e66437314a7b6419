package transform

import (
	"fmt"

	"pattern-projector/internal/geom"
)

// RotateStep is the angle of one Rotate action in degrees.
const RotateStep = 90

// Reduce returns the transform that results from applying a to t. It does
// not guard against singular input: NaN in t stays NaN.
func Reduce(t geom.Mat3, a Action) geom.Mat3 {
	switch a := a.(type) {
	case Set:
		return a.M
	case Reset:
		return geom.Identity()
	case Translate:
		return geom.Translate(a.V).Mul(t)
	case FlipHorizontal:
		return geom.FlipHorizontal(a.Center).Mul(t)
	case FlipVertical:
		return geom.FlipVertical(a.Center).Mul(t)
	case Rotate:
		return geom.RotateDeg(RotateStep, a.Center).Mul(t)
	case RotateToHorizontal:
		return geom.RotateToHorizontal(a.Line).Mul(t)
	case FlipAlong:
		return geom.FlipAlong(a.Line).Mul(t)
	case Recenter:
		layoutCenter := geom.Point{X: a.LayoutWidth / 2, Y: a.LayoutHeight / 2}
		current := geom.TransformPoint(layoutCenter, t)
		return geom.Translate(a.Center.Sub(current)).Mul(t)
	case AlignToCenter:
		move := geom.Translate(a.GridCenter.Sub(a.Line[0]))
		return move.Mul(geom.RotateToHorizontal(a.Line)).Mul(t)
	default:
		panic(fmt.Sprintf("transform: unhandled action %T", a))
	}
}
