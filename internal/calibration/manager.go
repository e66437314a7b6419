package calibration

import (
	"errors"
	"fmt"
	"math"

	"pattern-projector/internal/geom"
	"pattern-projector/internal/store"
	"pattern-projector/internal/unit"
)

var (
	// ErrDegenerateCalibration means no homography can be derived: fewer
	// than four corners, collinear corners or an empty physical size.
	ErrDegenerateCalibration = errors.New("calibration: degenerate calibration")

	// ErrConcavePolygon means the corners do not form a convex quad. The
	// matrices are still derived but should not be used to draw a grid.
	ErrConcavePolygon = errors.New("calibration: concave polygon")
)

// NumCorners is the number of calibration corners.
const NumCorners = 4

// Matrices holds the transforms derived from the corners. Units are the
// physical unit of the calibration; pixels are canonical CSS pixels at
// 96 px/in.
type Matrices struct {
	UnitsToScreen  geom.Mat3
	ScreenToUnits  geom.Mat3
	PixelsToScreen geom.Mat3
	ScreenToPixels geom.Mat3
}

// Manager owns the calibration corners and the physical size they
// describe, and keeps the derived matrices in sync with them.
type Manager struct {
	store store.Store

	points []geom.Point
	width  float64
	height float64
	unit   unit.Unit

	m       Matrices
	ready   bool
	concave bool
	err     error
}

// New returns a manager for a width × height rectangle measured in u. It
// has no corners until Load or SetPoints is called.
func New(s store.Store, width, height float64, u unit.Unit) *Manager {
	m := &Manager{store: s, width: width, height: height, unit: u}
	m.recompute()
	return m
}

// SetPoints replaces the corners and recomputes. The returned error is the
// same as Err.
func (m *Manager) SetPoints(ps []geom.Point) error {
	m.points = append(m.points[:0:0], ps...)
	return m.recompute()
}

// SetSize changes the physical size and recomputes.
func (m *Manager) SetSize(width, height float64) error {
	m.width, m.height = width, height
	return m.recompute()
}

// SetUnit changes the physical unit and recomputes.
func (m *Manager) SetUnit(u unit.Unit) error {
	m.unit = u
	return m.recompute()
}

// Points returns a copy of the corners.
func (m *Manager) Points() []geom.Point {
	return append([]geom.Point(nil), m.points...)
}

func (m *Manager) Size() (width, height float64) { return m.width, m.height }
func (m *Manager) Unit() unit.Unit { return m.unit }

// Matrices returns the derived transforms. They are only meaningful when
// Ready reports true.
func (m *Manager) Matrices() Matrices { return m.m }

// Ready reports whether the matrices were derived.
func (m *Manager) Ready() bool { return m.ready }

// IsConcave reports whether four corners exist and form a non-convex quad.
func (m *Manager) IsConcave() bool { return m.concave }

// Err returns the state of the last recomputation: nil,
// ErrDegenerateCalibration or ErrConcavePolygon.
func (m *Manager) Err() error { return m.err }

func (m *Manager) recompute() error {
	m.ready, m.concave, m.err = false, false, nil
	m.m = Matrices{}

	if len(m.points) != NumCorners {
		m.err = fmt.Errorf("%w: %d of %d corners placed", ErrDegenerateCalibration, len(m.points), NumCorners)
		return m.err
	}
	if !(m.width > 0) || !(m.height > 0) || math.IsInf(m.width, 0) || math.IsInf(m.height, 0) {
		m.err = fmt.Errorf("%w: physical size %gx%g", ErrDegenerateCalibration, m.width, m.height)
		return m.err
	}

	var screen [NumCorners]geom.Point
	copy(screen[:], m.points)
	ppu := unit.PixelsPerUnit(m.unit)
	units := rect(m.width, m.height)
	pixels := rect(m.width*ppu, m.height*ppu)

	var err error
	if m.m.UnitsToScreen, err = geom.GetPerspectiveTransform(units, screen); err == nil {
		m.m.ScreenToUnits, err = geom.GetPerspectiveTransform(screen, units)
	}
	if err == nil {
		m.m.PixelsToScreen, err = geom.GetPerspectiveTransform(pixels, screen)
	}
	if err == nil {
		m.m.ScreenToPixels, err = geom.GetPerspectiveTransform(screen, pixels)
	}
	if err != nil {
		m.m = Matrices{}
		m.err = fmt.Errorf("%w: %w", ErrDegenerateCalibration, err)
		return m.err
	}

	m.ready = true
	if geom.CheckIsConcave(m.points) {
		m.concave = true
		m.err = ErrConcavePolygon
	}
	return m.err
}

func rect(w, h float64) [NumCorners]geom.Point {
	var r [NumCorners]geom.Point
	copy(r[:], geom.RectCorners(w, h))
	return r
}
