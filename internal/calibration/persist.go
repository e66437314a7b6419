package calibration

import (
	"errors"
	"fmt"

	"pattern-projector/internal/geom"
	"pattern-projector/internal/store"
)

// Viewport is the size of the drawing surface in screen pixels. A zero
// viewport means the size is not known yet.
type Viewport struct {
	Width  float64
	Height float64
}

// smallScreenPoints fit on the smallest supported phone screen.
var smallScreenPoints = []geom.Point{
	{X: 100, Y: 300},
	{X: 300, Y: 300},
	{X: 300, Y: 600},
	{X: 100, Y: 600},
}

// DefaultPoints returns the corners used when nothing was saved: a quad
// covering the middle half of the viewport, or a fixed quad that fits a
// small phone when the viewport is unknown.
func DefaultPoints(v Viewport) []geom.Point {
	if !(v.Width > 0) || !(v.Height > 0) {
		return append([]geom.Point(nil), smallScreenPoints...)
	}
	x0, y0 := v.Width/4, v.Height/4
	x1, y1 := v.Width*3/4, v.Height*3/4
	return []geom.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

// Load restores the saved corners, falling back to DefaultPoints when the
// record is missing or unusable. A read or decode failure is returned after
// the fallback has been applied.
func (m *Manager) Load(v Viewport) error {
	ps, err := loadPoints(m.store)
	if err != nil || ps == nil {
		ps = DefaultPoints(v)
	}
	m.SetPoints(ps)
	return err
}

// Commit saves ps and applies them.
func (m *Manager) Commit(ps []geom.Point) error {
	m.SetPoints(ps)
	if m.store == nil {
		return nil
	}
	if err := store.SetJSON(m.store, store.KeyPoints, m.points); err != nil {
		return fmt.Errorf("calibration: commit: %w", err)
	}
	return nil
}

// loadPoints returns nil, nil when nothing was saved.
func loadPoints(s store.Store) ([]geom.Point, error) {
	if s == nil {
		return nil, nil
	}
	var ps []geom.Point
	err := store.GetJSON(s, store.KeyPoints, &ps)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("calibration: load: %w", err)
	}
	if len(ps) != NumCorners {
		return nil, fmt.Errorf("calibration: load: %d points saved, want %d", len(ps), NumCorners)
	}
	for i, p := range ps {
		if !p.IsFinite() {
			return nil, fmt.Errorf("calibration: load: point %d is not finite", i)
		}
	}
	return ps, nil
}
