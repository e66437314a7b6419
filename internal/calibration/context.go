package calibration

import (
	"errors"
	"math"

	"pattern-projector/internal/store"
)

// Context records the window the calibration was made in. Moving the
// window, resizing it or leaving full screen invalidates the calibration.
type Context struct {
	WindowWidth  float64 `json:"windowWidth"`
	WindowHeight float64 `json:"windowHeight"`
	ScreenX      float64 `json:"screenX"`
	ScreenY      float64 `json:"screenY"`
	FullScreen   bool    `json:"fullScreen"`
}

// contextTolerance absorbs sub-pixel rounding in reported window sizes.
const contextTolerance = 1

// Invalidated reports whether cur no longer matches the context c was
// saved in.
func (c Context) Invalidated(cur Context) bool {
	if c.FullScreen != cur.FullScreen {
		return true
	}
	return math.Abs(c.WindowWidth-cur.WindowWidth) > contextTolerance ||
		math.Abs(c.WindowHeight-cur.WindowHeight) > contextTolerance ||
		math.Abs(c.ScreenX-cur.ScreenX) > contextTolerance ||
		math.Abs(c.ScreenY-cur.ScreenY) > contextTolerance
}

// SaveContext stores c as the context of the current calibration.
func SaveContext(s store.Store, c Context) error {
	return store.SetJSON(s, store.KeyCalibrationContext, c)
}

// LoadContext returns the saved context. ok is false when none was saved.
func LoadContext(s store.Store) (c Context, ok bool, err error) {
	err = store.GetJSON(s, store.KeyCalibrationContext, &c)
	if errors.Is(err, store.ErrNotFound) {
		return Context{}, false, nil
	}
	if err != nil {
		return Context{}, false, err
	}
	return c, true, nil
}
