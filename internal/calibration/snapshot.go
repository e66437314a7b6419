package calibration

import (
	"pattern-projector/internal/geom"
	"pattern-projector/internal/settings"
	"pattern-projector/internal/unit"
)

// Corner names the role of a calibration point by its index.
type Corner int

const (
	NoCorner Corner = iota - 1
	TopLeft
	TopRight
	BottomRight
	BottomLeft
)

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomRight:
		return "bottom-right"
	case BottomLeft:
		return "bottom-left"
	}
	return "none"
}

// Valid reports whether c indexes one of the four corners.
func (c Corner) Valid() bool {
	return c >= TopLeft && c <= BottomLeft
}

// Snapshot is everything a renderer needs to draw one frame of the
// calibration or projection canvas. It holds no drawing handle.
type Snapshot struct {
	Points  []geom.Point
	Width   float64
	Height  float64
	Unit    unit.Unit
	Ready   bool
	Concave bool

	// Grid maps physical units to screen. Perspective maps screen to
	// canonical pixels; Transform maps canonical pixels to screen and
	// already includes any local transform.
	Grid        geom.Mat3
	Perspective geom.Mat3
	Transform   geom.Mat3

	Calibrating     bool
	ActiveCorner    Corner
	HoverCorner     Corner
	PrecisionActive bool

	Settings      settings.DisplaySettings
	ColorProgress float64
}

// Snapshot returns the geometric part of a frame: the corners, the size
// and the calibration matrices composed with local. The caller fills in
// interaction state.
func (m *Manager) Snapshot(local geom.Mat3, ds settings.DisplaySettings) Snapshot {
	s := Snapshot{
		Points:       m.Points(),
		Width:        m.width,
		Height:       m.height,
		Unit:         m.unit,
		Ready:        m.ready,
		Concave:      m.concave,
		Grid:         geom.Identity(),
		Perspective:  geom.Identity(),
		Transform:    geom.Identity(),
		ActiveCorner: NoCorner,
		HoverCorner:  NoCorner,
		Settings:     ds,
	}
	if m.ready {
		s.Grid = m.m.UnitsToScreen
		s.Perspective = m.m.ScreenToPixels
		s.Transform = m.m.PixelsToScreen.Mul(local)
	}
	return s
}
