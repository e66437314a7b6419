package interact

import (
	"time"

	"pattern-projector/internal/calibration"
	"pattern-projector/internal/geom"
	"pattern-projector/internal/settings"
)

const (
	// CornerMargin is how close, in screen pixels, a press has to be to a
	// corner to grab it.
	CornerMargin = 150

	// PrecisionDelay is how long the pointer has to stay near where it
	// was pressed before precision movement engages.
	PrecisionDelay = 500 * time.Millisecond

	// PrecisionThreshold is how far, in screen pixels, the pointer may
	// wander during PrecisionDelay before precision movement is ruled out
	// for the gesture.
	PrecisionThreshold = 5

	// PrecisionRatio divides pointer movement while precision is active.
	PrecisionRatio = 5

	MouseFilter = 1.0
	TouchFilter = 0.05
)

type gesture int

const (
	gestureNone gesture = iota
	gestureCorner
	gesturePan
)

type precision int

const (
	precisionPending precision = iota
	precisionActive
	precisionCancelled
)

// Controller edits the calibration corners from pointer and keyboard
// input. Corners move live through the manager while a gesture is in
// progress and are saved when it ends.
type Controller struct {
	cal *calibration.Manager

	points      []geom.Point
	active      calibration.Corner
	hover       calibration.Corner
	fourCorners bool

	gesture   gesture
	precision precision
	downAt    time.Time
	downPos   geom.Point
	last      geom.Point

	// Movement is measured from anchorPos and applied to base. Both are
	// reset once when precision movement engages.
	anchorPos geom.Point
	base      []geom.Point
}

// NewController returns a controller editing the corners of cal.
func NewController(cal *calibration.Manager, fourCorners bool) *Controller {
	c := &Controller{
		cal:         cal,
		active:      calibration.NoCorner,
		hover:       calibration.NoCorner,
		fourCorners: fourCorners,
	}
	c.Sync()
	return c
}

// Sync discards local edits and reloads the corners from the manager.
func (c *Controller) Sync() {
	c.points = c.cal.Points()
	c.gesture = gestureNone
}

func (c *Controller) Points() []geom.Point {
	return append([]geom.Point(nil), c.points...)
}

func (c *Controller) Active() calibration.Corner { return c.active }
func (c *Controller) Hover() calibration.Corner { return c.hover }
func (c *Controller) FourCorners() bool { return c.fourCorners }

// SetActive selects corner, or clears the selection with NoCorner.
func (c *Controller) SetActive(corner calibration.Corner) {
	if corner.Valid() && int(corner) < len(c.points) {
		c.active = corner
		return
	}
	c.active = calibration.NoCorner
}

// SetFourCorners switches between moving corners independently and moving
// the whole quad with any corner.
func (c *Controller) SetFourCorners(on bool) {
	c.fourCorners = on
}

// Precise reports whether precision movement is engaged.
func (c *Controller) Precise() bool {
	return c.gesture != gestureNone && c.precision == precisionActive
}

// Dragging reports whether a corner drag or pan is in progress.
func (c *Controller) Dragging() bool {
	return c.gesture != gestureNone
}

// Down handles a pointer press at p. While the quad is incomplete the
// press places the next corner, and the fourth corner is saved at once.
// Otherwise it grabs the nearest corner within CornerMargin, or starts
// panning all corners.
func (c *Controller) Down(p geom.Point, now time.Time) error {
	if len(c.points) < calibration.NumCorners {
		c.points = append(c.points, p)
		if len(c.points) == calibration.NumCorners {
			return c.cal.Commit(c.points)
		}
		c.cal.SetPoints(c.points)
		return nil
	}

	if corner := c.nearbyCorner(p); corner.Valid() {
		c.active = corner
		c.gesture = gestureCorner
	} else {
		c.active = calibration.NoCorner
		c.gesture = gesturePan
	}
	c.precision = precisionPending
	c.downAt = now
	c.downPos = p
	c.last = p
	c.anchorPos = p
	c.base = c.Points()
	return nil
}

// Move handles pointer movement to p. filter scales the movement, see
// MouseFilter and TouchFilter. Without a gesture in progress it only
// updates the hover hint. It reports whether the corners changed.
func (c *Controller) Move(p geom.Point, filter float64, now time.Time) bool {
	if c.gesture == gestureNone {
		c.hover = c.nearbyCorner(p)
		return false
	}

	// The pointer has been at c.last since the previous event.
	c.checkDelay(now)
	if c.precision == precisionPending && geom.SqrDist(p, c.downPos) > PrecisionThreshold*PrecisionThreshold {
		c.precision = precisionCancelled
	}
	c.last = p

	d := p.Sub(c.anchorPos).Scale(filter)
	if c.precision == precisionActive {
		d = d.Scale(1.0 / PrecisionRatio)
	}
	if c.gesture == gestureCorner && c.fourCorners {
		c.points[c.active] = c.base[c.active].Add(d)
	} else {
		for i := range c.points {
			c.points[i] = c.base[i].Add(d)
		}
	}
	c.cal.SetPoints(c.points)
	return true
}

// Tick lets precision movement engage while the pointer is held still. It
// reports whether it did.
func (c *Controller) Tick(now time.Time) bool {
	if c.gesture == gestureNone {
		return false
	}
	return c.checkDelay(now)
}

func (c *Controller) checkDelay(now time.Time) bool {
	if c.precision != precisionPending || now.Sub(c.downAt) <= PrecisionDelay {
		return false
	}
	c.precision = precisionActive
	c.anchorPos = c.last
	c.base = c.Points()
	return true
}

// Up ends the gesture and saves the corners. A release without a drag or
// pan in progress does nothing and reports false.
func (c *Controller) Up() (bool, error) {
	if c.gesture == gestureNone {
		return false, nil
	}
	c.gesture = gestureNone
	c.base = nil
	return true, c.cal.Commit(c.points)
}

func (c *Controller) nearbyCorner(p geom.Point) calibration.Corner {
	if len(c.points) < calibration.NumCorners {
		return calibration.NoCorner
	}
	d := make([]float64, len(c.points))
	for i, q := range c.points {
		d[i] = geom.SqrDist(q, p)
	}
	i := geom.MinIndex(d)
	if d[i] < CornerMargin*CornerMargin {
		return calibration.Corner(i)
	}
	return calibration.NoCorner
}

// Snapshot returns the frame to draw while calibrating.
func (c *Controller) Snapshot(local geom.Mat3, ds settings.DisplaySettings, progress float64) calibration.Snapshot {
	s := c.cal.Snapshot(local, ds)
	s.Points = c.Points()
	s.Calibrating = true
	s.ActiveCorner = c.active
	s.HoverCorner = c.hover
	s.PrecisionActive = c.Precise()
	s.ColorProgress = progress
	return s
}
