package unit

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"pattern-projector/internal/geom"
)

func TestParse(t *testing.T) {
	for in, want := range map[string]Unit{"in": IN, "IN": IN, " cm ": CM, "CM": CM} {
		got, err := Parse(in)
		if err != nil || got != want {
			t.Errorf("Parse(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := Parse("furlong"); err == nil {
		t.Error("expected an error")
	}
}

func TestPixelsPerUnit(t *testing.T) {
	if PixelsPerUnit(IN) != 96 {
		t.Errorf("IN: %g", PixelsPerUnit(IN))
	}
	if got := FromPixels(96, CM); math.Abs(got-2.54) > 1e-12 {
		t.Errorf("96px in cm = %g", got)
	}
}

func TestCenterPoint(t *testing.T) {
	got := CenterPoint(24, 18, IN)
	if d := cmp.Diff(geom.Point{X: 1152, Y: 864}, got); d != "" {
		t.Error(d)
	}
	got = CenterPoint(2.54, 5.08, CM)
	if d := cmp.Diff(geom.Point{X: 48, Y: 96}, got, cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Error(d)
	}
}

func TestTextRoundTrip(t *testing.T) {
	var u Unit
	if err := u.UnmarshalText([]byte("cm")); err != nil || u != CM {
		t.Fatalf("got %v, %v", u, err)
	}
	b, _ := u.MarshalText()
	if string(b) != "cm" {
		t.Errorf("MarshalText = %s", b)
	}
}
