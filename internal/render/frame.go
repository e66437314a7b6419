package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/colornames"

	"pattern-projector/internal/calibration"
	"pattern-projector/internal/geom"
	"pattern-projector/internal/theme"
	"pattern-projector/internal/unit"
)

const (
	majorLineWidth = 2
	minorLineWidth = 1
	majorLineEvery = 5

	// projectionOutset extends the projected grid past the calibrated
	// rectangle, in physical units.
	projectionOutset = 8

	dimensionFontSize = 48
	dimensionInset    = 20
	paperFontSize     = 32

	handleRadius       = 10
	activeHandleRadius = 20
	crosshairSize      = 20
)

// CornerColors colors the handles by corner role.
var CornerColors = [calibration.NumCorners]color.RGBA{
	colornames.Deepskyblue,
	colornames.Gold,
	colornames.Orangered,
	colornames.Magenta,
}

var (
	white = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	black = color.NRGBA{0, 0, 0, 0xff}
)

// Frame draws one frame of the calibration or projection canvas.
func Frame(c *Canvas, s calibration.Snapshot) {
	pal := theme.PaletteAt(s.ColorProgress)
	c.Blend = Over

	if s.Calibrating {
		c.Clear(pal.Background)
		drawCalibration(c, s, pal)
		return
	}
	if !s.Ready {
		return
	}
	if s.Concave {
		c.FillPolygon(s.Points, ErrorPattern)
		return
	}
	if !s.Settings.Overlay.Disabled {
		drawOverlays(c, s, pal)
	}
}

func drawCalibration(c *Canvas, s calibration.Snapshot, pal theme.Palette) {
	if s.Ready {
		if s.Concave {
			c.FillPolygon(s.Points, ErrorPattern)
		} else {
			c.FillPolygon(s.Points, image.NewUniform(pal.Fill))
			c.Stroke(s.Points, true, majorLineWidth, nil, pal.GridLine)
			drawGrid(c, s, 0, nil, pal.GridLine)
			drawDimensionLabels(c, s)
		}
	}

	c.Blend = Difference
	defer func() { c.Blend = Over }()
	for i, p := range s.Points {
		col := CornerColors[i%calibration.NumCorners]
		switch {
		case calibration.Corner(i) != s.ActiveCorner:
			c.Circle(p, handleRadius, 4, col)
		case s.PrecisionActive:
			c.Crosshair(p, crosshairSize, 2, col)
		default:
			c.Circle(p, activeHandleRadius, 4, col)
		}
	}
}

func drawOverlays(c *Canvas, s calibration.Snapshot, pal theme.Palette) {
	o := s.Settings.Overlay
	if o.Grid {
		drawGrid(c, s, projectionOutset, []float64{1}, pal.ProjectionGrid)
	}
	if o.Border {
		drawBorder(c, s.Points, black, pal.GridLine)
	}
	if o.Paper {
		drawPaper(c, s, pal.ProjectionGrid)
	}
	if o.FlipLines {
		drawCenterLines(c, s)
	}
}

// drawGrid draws a line every physical unit, heavier every fifth one and
// at the far edges.
func drawGrid(c *Canvas, s calibration.Snapshot, outset float64, dash []float64, col color.Color) {
	width := func(i int, last float64) float64 {
		if i%majorLineEvery == 0 || float64(i) == last {
			return majorLineWidth
		}
		return minorLineWidth
	}
	for i := 0; float64(i) <= s.Width; i++ {
		x := float64(i)
		l := geom.TransformLine(geom.Line{{X: x, Y: -outset}, {X: x, Y: s.Height + outset}}, s.Grid)
		c.Stroke(l[:], false, width(i, s.Width), dash, col)
	}
	for i := 0; float64(i) <= s.Height; i++ {
		y := s.Height - float64(i)
		l := geom.TransformLine(geom.Line{{X: -outset, Y: y}, {X: s.Width + outset, Y: y}}, s.Grid)
		c.Stroke(l[:], false, width(i, s.Height), dash, col)
	}
}

func drawDimensionLabels(c *Canvas, s calibration.Snapshot) {
	c.Blend = Difference
	defer func() { c.Blend = Over }()

	suffix := s.Unit.Label()
	wText := fmt.Sprintf("%g%s", s.Width, suffix)
	hText := fmt.Sprintf("%g%s", s.Height, suffix)
	bottom := geom.TransformPoint(geom.Point{X: s.Width / 2, Y: s.Height}, s.Grid)
	left := geom.TransformPoint(geom.Point{X: 0, Y: s.Height / 2}, s.Grid)
	c.Text(wText, geom.Point{X: bottom.X - TextWidth(wText, dimensionFontSize)/2, Y: bottom.Y - dimensionInset}, dimensionFontSize, white)
	c.Text(hText, geom.Point{X: left.X + dimensionInset, Y: left.Y + dimensionFontSize/2}, dimensionFontSize, white)
}

func drawBorder(c *Canvas, ps []geom.Point, line, dash color.Color) {
	c.Stroke(ps, true, 5, nil, line)
	c.Stroke(ps, true, 1, []float64{4, 4}, dash)
}

// drawPaper outlines a standard sheet centered in the calibrated area.
func drawPaper(c *Canvas, s calibration.Snapshot, col color.Color) {
	paper := unit.PaperFor(s.Unit)
	corners := geom.TranslatePoints(
		geom.RectCorners(paper.Width, paper.Height),
		(s.Width-paper.Width)/2,
		(s.Height-paper.Height)/2,
	)
	c.Stroke(geom.TransformPoints(corners, s.Grid), true, 4, []float64{4, 2}, col)

	center := geom.TransformPoint(geom.Point{X: s.Width / 2, Y: s.Height / 2}, s.Grid)
	at := geom.Point{X: center.X - TextWidth(paper.Name, paperFontSize)/2, Y: center.Y + paperFontSize/2}
	c.Text(paper.Name, at, paperFontSize, col)
}

func drawCenterLines(c *Canvas, s calibration.Snapshot) {
	w, h := s.Width, s.Height
	for _, l := range []geom.Line{
		{{X: 0, Y: h / 2}, {X: w, Y: h / 2}},
		{{X: w / 2, Y: 0}, {X: w / 2, Y: h}},
	} {
		c.StrokeLine(geom.TransformLine(l, s.Grid), 2, colornames.Red)
	}
}
