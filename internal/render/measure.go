package render

import (
	"image/color"

	"pattern-projector/internal/measure"
)

const (
	measureLineWidth = 4
	measureEndRadius = 30
	readoutFontSize  = 24
)

// MeasureColor is the stroke color of measurement lines.
var MeasureColor = color.NRGBA{0x93, 0x33, 0xea, 0xff}

// Measurements draws the measurement layer.
func Measurements(c *Canvas, o measure.Overlay) {
	for _, l := range o.Lines {
		c.StrokeLine(l, measureLineWidth, MeasureColor)
	}
	if a := o.Selected; a != nil {
		c.StrokeLine(a.Axis, 1, MeasureColor)
		c.Arrow(a.Line, measureLineWidth, MeasureColor)
		c.Circle(a.Line[0], measureEndRadius, measureLineWidth, MeasureColor)
		c.Circle(a.Line[1], measureEndRadius, measureLineWidth, MeasureColor)
		c.OutlinedText(a.Readout.Text, a.Readout.At, readoutFontSize, white, black)
	}
	if a := o.Pending; a != nil {
		c.StrokeLine(a.Line, measureLineWidth, MeasureColor)
		c.StrokeLine(a.Axis, 1, MeasureColor)
		c.OutlinedText(a.Readout.Text, a.Readout.At, readoutFontSize, white, black)
	}
}
