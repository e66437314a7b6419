package measure

import (
	"fmt"
	"math"

	"pattern-projector/internal/geom"
	"pattern-projector/internal/unit"
)

// LabelOffset is how far right of and below its anchor a readout is drawn.
const LabelOffset = 10

// Readout is the length and angle label of a measurement line.
type Readout struct {
	Text string
	At   geom.Point
}

// Distance formats the length of l, given in canonical pixels, in u with
// two decimals.
func Distance(l geom.Line, u unit.Unit) string {
	return fmt.Sprintf("%.2f%s", unit.FromPixels(geom.Length(l), u), u.Suffix())
}

// Angle is the direction of l in whole degrees, counterclockwise as seen
// on screen, in [0, 360).
func Angle(l geom.Line) int {
	a := -geom.AngleDeg(l)
	if a < 0 {
		a += 360
	}
	deg := int(math.Round(a))
	if deg == 360 {
		deg = 0
	}
	return deg
}

// Measurements is the readout text of l, such as `2.50" 90°`.
func Measurements(l geom.Line, u unit.Unit) string {
	return fmt.Sprintf("%s %d°", Distance(l, u), Angle(l))
}

// ReadoutAt returns the readout of l anchored at screen point p.
func ReadoutAt(l geom.Line, u unit.Unit, p geom.Point) Readout {
	return Readout{
		Text: Measurements(l, u),
		At:   p.Add(geom.Point{X: LabelOffset, Y: LabelOffset}),
	}
}
