package measure

import (
	"pattern-projector/internal/geom"
	"pattern-projector/internal/unit"
)

const (
	// LineThreshold is the squared screen distance within which a press
	// hits the body of a line.
	LineThreshold = 600

	// EndThreshold is the squared screen distance within which a press
	// grabs an endpoint of the selected line.
	EndThreshold = 2000

	// axisLength is the length, in canonical pixels, of the horizontal
	// reference drawn from the start of a measured line.
	axisLength = 96 + 48
)

// View holds the transforms a measurement event is interpreted in.
// Perspective maps screen to canonical pixels and Calibration maps back.
// Local is the content transform applied in canonical space.
type View struct {
	Perspective geom.Mat3
	Calibration geom.Mat3
	Local       geom.Mat3
	Unit        unit.Unit
}

// toStored maps a screen point into the space lines are kept in.
func (v View) toStored() geom.Mat3 {
	return v.Local.Inverse().Mul(v.Perspective)
}

// toScreen maps a stored line onto the screen.
func (v View) toScreen() geom.Mat3 {
	return v.Calibration.Mul(v.Local)
}

// Measurer holds the measurement lines of a document and the state of
// drawing or editing one. Lines are stored in canonical space before the
// local transform, so they follow the content when it moves.
type Measurer struct {
	// Measuring arms the next press to start a new line. It is cleared
	// when the line is finished.
	Measuring bool
	// AxisConstrained snaps new lines to the calibrated axes.
	AxisConstrained bool

	lines    []geom.Line
	selected int

	end        int
	dragOffset geom.Point

	drawing bool
	start   geom.Point
	moving  geom.Point
}

func NewMeasurer() *Measurer {
	return &Measurer{selected: -1, end: -1}
}

// Reset drops all lines, for example when a new document is opened.
func (m *Measurer) Reset() {
	*m = Measurer{selected: -1, end: -1}
}

func (m *Measurer) Lines() []geom.Line {
	return append([]geom.Line(nil), m.lines...)
}

// Selected returns the index of the selected line, or -1.
func (m *Measurer) Selected() int {
	return m.selected
}

// Drawing reports whether a new line is in progress.
func (m *Measurer) Drawing() bool {
	return m.drawing
}

// Down handles a press at screen point p. A press near an endpoint of the
// selected line starts dragging it. A press on a line toggles its
// selection. Otherwise the selection is cleared and, when measuring, a new
// line is started. It reports whether the press was consumed.
func (m *Measurer) Down(p geom.Point, v View) bool {
	if !m.drawing && len(m.lines) > 0 {
		toScreen := v.toScreen()
		for i, stored := range m.lines {
			l := geom.TransformLine(stored, toScreen)
			if !l.IsFinite() {
				continue
			}
			if i == m.selected {
				for end := 0; end < 2; end++ {
					if geom.SqrDist(p, l[end]) < EndThreshold {
						m.end = end
						m.dragOffset = p.Sub(l[end])
						return true
					}
				}
			}
			if geom.SqrDistToLine(l, p) < LineThreshold {
				if i == m.selected {
					m.selected = -1
				} else {
					m.selected = i
				}
				return true
			}
		}
		m.selected = -1
		m.end = -1
	}

	if !m.Measuring {
		return false
	}
	if !m.drawing {
		m.drawing = true
		m.start = p
		m.moving = p
	}
	return true
}

// Move handles pointer movement. It extends the line being drawn or moves
// the dragged endpoint, and reports whether anything changed.
func (m *Measurer) Move(p geom.Point, v View) bool {
	changed := false
	if m.drawing && m.Measuring {
		m.moving = p
		changed = true
	}
	if m.selected >= 0 && m.end >= 0 {
		pt := geom.TransformPoint(p.Sub(m.dragOffset), v.toStored())
		if pt.IsFinite() {
			m.lines[m.selected][m.end] = pt
			changed = true
		}
	}
	return changed
}

// Up ends an endpoint drag, or finishes the line being drawn and selects
// it. It reports whether a line was added.
func (m *Measurer) Up(p geom.Point, v View) bool {
	m.end = -1
	if !m.drawing || !m.Measuring {
		return false
	}
	m.drawing = false
	m.Measuring = false

	end := m.endpoint(p, v)
	l := geom.TransformLine(geom.Line{m.start, end}, v.toStored())
	if !l.IsFinite() {
		return false
	}
	m.lines = append(m.lines, l)
	m.selected = len(m.lines) - 1
	return true
}

func (m *Measurer) endpoint(p geom.Point, v View) geom.Point {
	if m.AxisConstrained {
		return geom.ConstrainInSpace(p, m.start, v.Perspective, v.Calibration)
	}
	return p
}

// Delete removes the selected line and selects its predecessor, or the
// last line when the first was removed. It reports whether a line was
// removed.
func (m *Measurer) Delete() bool {
	if m.selected < 0 || m.selected >= len(m.lines) {
		return false
	}
	n := len(m.lines)
	m.lines = append(m.lines[:m.selected], m.lines[m.selected+1:]...)
	if m.selected == 0 {
		m.selected = n - 2
	} else {
		m.selected--
	}
	m.end = -1
	return true
}

// SelectedLine returns the selected line with the local transform
// applied, the form transform actions such as FlipAlong expect.
func (m *Measurer) SelectedLine(v View) (geom.Line, bool) {
	if m.selected < 0 {
		return geom.Line{}, false
	}
	l := geom.TransformLine(m.lines[m.selected], v.Local)
	return l, l.IsFinite()
}

// Annotated is a line with its horizontal reference and readout.
type Annotated struct {
	Line    geom.Line
	Axis    geom.Line
	Readout Readout
}

// Overlay is what the measurement layer draws in one frame, in screen
// space.
type Overlay struct {
	Lines    []geom.Line
	Selected *Annotated
	Pending  *Annotated
}

// Overlay projects the lines onto the screen. Lines that do not map to
// finite points are left out.
func (m *Measurer) Overlay(v View) Overlay {
	var o Overlay
	toScreen := v.toScreen()
	for i, stored := range m.lines {
		if i == m.selected {
			continue
		}
		if l := geom.TransformLine(stored, toScreen); l.IsFinite() {
			o.Lines = append(o.Lines, l)
		}
	}

	if m.selected >= 0 && m.selected < len(m.lines) {
		local := geom.TransformLine(m.lines[m.selected], v.Local)
		screen := geom.TransformLine(local, v.Calibration)
		if screen.IsFinite() {
			o.Selected = &Annotated{
				Line:    screen,
				Axis:    axis(local[0], v.Calibration),
				Readout: ReadoutAt(local, v.Unit, screen[1]),
			}
		}
	}

	if m.drawing {
		screen := geom.Line{m.start, m.endpoint(m.moving, v)}
		canonical := geom.TransformLine(screen, v.Perspective)
		if canonical.IsFinite() {
			o.Pending = &Annotated{
				Line:    screen,
				Axis:    axis(canonical[0], v.Calibration),
				Readout: ReadoutAt(canonical, v.Unit, m.start),
			}
		}
	}
	return o
}

func axis(from geom.Point, calibration geom.Mat3) geom.Line {
	return geom.TransformLine(geom.Line{from, from.Add(geom.Point{X: axisLength})}, calibration)
}
