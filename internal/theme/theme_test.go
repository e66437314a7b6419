package theme

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"pattern-projector/internal/settings"
)

func TestModeFor(t *testing.T) {
	tests := []struct {
		inverted, green bool
		want            ColorMode
	}{
		{false, false, Light},
		{false, true, Light},
		{true, true, InvertedGreen},
		{true, false, Inverted},
	}
	for _, tt := range tests {
		ds := settings.Default()
		ds.Inverted, ds.InvertedGreen = tt.inverted, tt.green
		if got := ModeFor(ds); got != tt.want {
			t.Errorf("ModeFor(inverted=%v, green=%v) = %d, want %d", tt.inverted, tt.green, got, tt.want)
		}
	}
}

func TestTransitionForward(t *testing.T) {
	tr := NewTransition(Light).Target(InvertedGreen)
	tr = tr.Advance(TransitionDuration / 2)
	if math.Abs(tr.Progress-0.5) > 1e-9 {
		t.Errorf("halfway progress = %g, want 0.5", tr.Progress)
	}
	tr = tr.Advance(time.Second)
	if !tr.Done() || tr.Progress != 1 {
		t.Errorf("finished at %g, done=%v", tr.Progress, tr.Done())
	}
}

func TestTransitionWrapsToLight(t *testing.T) {
	tr := NewTransition(Inverted).Target(Light)
	mid := tr.Advance(TransitionDuration / 2)
	if math.Abs(mid.Progress-2.5) > 1e-9 {
		t.Errorf("progress went backwards: %g", mid.Progress)
	}
	end := mid.Advance(TransitionDuration)
	if end.Progress != 0 {
		t.Errorf("final progress = %g, want 0", end.Progress)
	}
}

func TestTransitionIsValue(t *testing.T) {
	tr := NewTransition(Light).Target(Inverted)
	_ = tr.Advance(TransitionDuration)
	if tr.Progress != 0 {
		t.Errorf("Advance modified its receiver: %g", tr.Progress)
	}
}

func TestTransitionRetarget(t *testing.T) {
	tr := NewTransition(Light).Target(Inverted).Advance(TransitionDuration * 3 / 4)
	p := tr.Progress
	tr = tr.Target(InvertedGreen)
	// Mode 1 lies behind 1.5, so it is reached by going round the ring.
	tr = tr.Advance(TransitionDuration / 2)
	if tr.Progress < p {
		t.Errorf("progress went backwards: %g -> %g", p, tr.Progress)
	}
	tr = tr.Advance(TransitionDuration)
	if tr.Progress != 1 {
		t.Errorf("final progress = %g, want 1", tr.Progress)
	}
}

func TestInterpolateColorRing(t *testing.T) {
	ring := []color.NRGBA{{0, 0, 0, 255}, {200, 100, 0, 255}}
	tests := []struct {
		p    float64
		want color.NRGBA
	}{
		{0, ring[0]},
		{1, ring[1]},
		{0.5, color.NRGBA{100, 50, 0, 255}},
		{1.5, color.NRGBA{100, 50, 0, 255}},
		{2, ring[0]},
	}
	for _, tt := range tests {
		if d := cmp.Diff(tt.want, InterpolateColorRing(ring, tt.p)); d != "" {
			t.Errorf("p=%g: %s", tt.p, d)
		}
	}
}

func TestPaletteAt(t *testing.T) {
	if got := PaletteAt(0); got.Background != light || got.GridLine != dark {
		t.Errorf("light palette: %+v", got)
	}
	if got := PaletteAt(1); got.Background != dark || got.GridLine != green {
		t.Errorf("inverted green palette: %+v", got)
	}
	if got := PaletteAt(2); got.Fill != dark || got.ProjectionGrid != light {
		t.Errorf("inverted palette: %+v", got)
	}
}
