package interact

import (
	"pattern-projector/internal/calibration"
	"pattern-projector/internal/geom"
)

// Key is a key the controller responds to.
type Key int

const (
	KeyTab Key = iota + 1
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

const (
	NudgeStep     = 1.0
	FineNudgeStep = 0.1
)

// KeyPress handles a key. Tab cycles the active corner and Shift+Tab
// toggles four-corner editing. Escape clears the selection. Arrow keys
// nudge the active corner, by FineNudgeStep with shift, and save. It
// reports whether the key was handled.
func (c *Controller) KeyPress(k Key, shift bool) (bool, error) {
	switch k {
	case KeyTab:
		if shift {
			c.fourCorners = !c.fourCorners
			return true, nil
		}
		if len(c.points) == 0 {
			return false, nil
		}
		next := 0
		if c.active.Valid() {
			next = int(c.active) + 1
		}
		c.active = calibration.Corner(next % len(c.points))
		return true, nil
	case KeyEscape:
		if !c.active.Valid() {
			return false, nil
		}
		c.active = calibration.NoCorner
		return true, nil
	case KeyUp, KeyDown, KeyLeft, KeyRight:
		if c.gesture != gestureNone || len(c.points) < calibration.NumCorners {
			return false, nil
		}
		ps, ok := Nudge(c.points, c.active, k, shift, c.fourCorners)
		if !ok {
			return false, nil
		}
		c.points = ps
		return true, c.cal.Commit(c.points)
	}
	return false, nil
}

// Nudge moves the corner at index active one step in the direction of an
// arrow key. When fourCorners is false every corner moves. The input is not
// modified.
func Nudge(points []geom.Point, active calibration.Corner, k Key, fine, fourCorners bool) ([]geom.Point, bool) {
	if !active.Valid() || int(active) >= len(points) {
		return nil, false
	}
	step := NudgeStep
	if fine {
		step = FineNudgeStep
	}
	var d geom.Point
	switch k {
	case KeyUp:
		d.Y = -step
	case KeyDown:
		d.Y = step
	case KeyLeft:
		d.X = -step
	case KeyRight:
		d.X = step
	default:
		return nil, false
	}

	out := append([]geom.Point(nil), points...)
	if fourCorners {
		out[active] = out[active].Add(d)
		return out, true
	}
	for i := range out {
		out[i] = out[i].Add(d)
	}
	return out, true
}
