package theme

import (
	"math"
	"time"

	"pattern-projector/internal/settings"
)

// ColorMode is the calibration color scheme. Modes are ordered so that the
// usual toggle sequence light → inverted green → inverted → light always
// moves forward around the color ring.
type ColorMode int

const (
	Light ColorMode = iota
	InvertedGreen
	Inverted

	numModes = 3
)

// TransitionDuration is how long a mode change takes to animate.
const TransitionDuration = 700 * time.Millisecond

// ModeFor derives the color mode from display settings.
func ModeFor(ds settings.DisplaySettings) ColorMode {
	switch {
	case ds.Inverted && ds.InvertedGreen:
		return InvertedGreen
	case ds.Inverted:
		return Inverted
	}
	return Light
}

// Transition is the state of the color animation. Progress lies in
// [0, numModes); integer values are the resting colors of each mode.
// Transitions are values: Target and Advance return the next state and
// never modify the receiver, so any tick source can drive them.
type Transition struct {
	Mode     ColorMode
	Progress float64

	start   float64
	end     float64
	elapsed time.Duration
}

// NewTransition returns a transition resting at mode.
func NewTransition(mode ColorMode) Transition {
	p := float64(mode)
	return Transition{Mode: mode, Progress: p, start: p, end: p}
}

// Target starts animating towards mode from the current progress,
// replacing any animation in flight. Progress only moves forward, so the
// end point is pushed past the start by whole turns of the ring.
func (t Transition) Target(mode ColorMode) Transition {
	if mode == t.Mode {
		return t
	}
	end := float64(mode)
	for end < t.Progress {
		end += numModes
	}
	return Transition{
		Mode:     mode,
		Progress: t.Progress,
		start:    t.Progress,
		end:      end,
	}
}

// Advance moves the animation forward by dt.
func (t Transition) Advance(dt time.Duration) Transition {
	if t.Done() {
		return t
	}
	t.elapsed += dt
	frac := math.Min(float64(t.elapsed)/float64(TransitionDuration), 1)
	t.Progress = math.Mod(t.start+frac*(t.end-t.start), numModes)
	if frac == 1 {
		t.start = t.Progress
		t.end = t.Progress
	}
	return t
}

// Done reports whether no animation is in flight.
func (t Transition) Done() bool {
	return t.start == t.end
}
