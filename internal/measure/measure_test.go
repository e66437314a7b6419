package measure

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"pattern-projector/internal/geom"
	"pattern-projector/internal/unit"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// identityView treats the screen as calibrated canonical space.
func identityView() View {
	return View{
		Perspective: geom.Identity(),
		Calibration: geom.Identity(),
		Local:       geom.Identity(),
		Unit:        unit.IN,
	}
}

func draw(m *Measurer, v View, from, to geom.Point) {
	m.Measuring = true
	m.Down(from, v)
	m.Move(to, v)
	m.Up(to, v)
}

func TestMeasurements(t *testing.T) {
	tests := []struct {
		line geom.Line
		u    unit.Unit
		want string
	}{
		{geom.Line{{X: 0, Y: 0}, {X: 96, Y: 0}}, unit.IN, `1.00" 0°`},
		{geom.Line{{X: 0, Y: 0}, {X: 0, Y: -240}}, unit.IN, `2.50" 90°`},
		{geom.Line{{X: 0, Y: 0}, {X: 0, Y: 96}}, unit.CM, `2.54cm 270°`},
		{geom.Line{{X: 0, Y: 0}, {X: -96, Y: 0}}, unit.IN, `1.00" 180°`},
		// Just below the axis rounds to 360, which reads as 0.
		{geom.Line{{X: 0, Y: 0}, {X: 1000, Y: 1}}, unit.IN, `10.42" 0°`},
	}
	for _, tt := range tests {
		if got := Measurements(tt.line, tt.u); got != tt.want {
			t.Errorf("Measurements(%v, %v) = %q, want %q", tt.line, tt.u, got, tt.want)
		}
	}
}

func TestReadoutOffset(t *testing.T) {
	r := ReadoutAt(geom.Line{{}, {X: 96}}, unit.IN, geom.Point{X: 50, Y: 60})
	if r.At != (geom.Point{X: 60, Y: 70}) {
		t.Errorf("At = %v", r.At)
	}
}

func TestDrawLine(t *testing.T) {
	m := NewMeasurer()
	v := identityView()
	if m.Down(geom.Point{X: 10, Y: 10}, v) {
		t.Error("press consumed while not measuring")
	}
	draw(m, v, geom.Point{X: 10, Y: 10}, geom.Point{X: 106, Y: 10})
	if d := cmp.Diff([]geom.Line{{{X: 10, Y: 10}, {X: 106, Y: 10}}}, m.Lines()); d != "" {
		t.Error(d)
	}
	if m.Selected() != 0 || m.Measuring || m.Drawing() {
		t.Errorf("selected=%d measuring=%v drawing=%v", m.Selected(), m.Measuring, m.Drawing())
	}
}

func TestLinesFollowContent(t *testing.T) {
	m := NewMeasurer()
	v := identityView()
	v.Local = geom.Translate(geom.Point{X: 100})
	draw(m, v, geom.Point{X: 110, Y: 10}, geom.Point{X: 210, Y: 10})
	// Stored before the local transform.
	if d := cmp.Diff(geom.Line{{X: 10, Y: 10}, {X: 110, Y: 10}}, m.Lines()[0], approx); d != "" {
		t.Error(d)
	}

	// Moving the content moves the line with it.
	v.Local = geom.Translate(geom.Point{X: 200})
	o := m.Overlay(v)
	if o.Selected == nil {
		t.Fatal("no selected line")
	}
	if d := cmp.Diff(geom.Line{{X: 210, Y: 10}, {X: 310, Y: 10}}, o.Selected.Line, approx); d != "" {
		t.Error(d)
	}
}

func TestAxisConstrained(t *testing.T) {
	m := NewMeasurer()
	v := identityView()
	m.AxisConstrained = true
	draw(m, v, geom.Point{}, geom.Point{X: 8, Y: 1})
	if d := cmp.Diff(geom.Line{{}, {X: 8}}, m.Lines()[0], approx); d != "" {
		t.Error(d)
	}
}

func TestSelection(t *testing.T) {
	m := NewMeasurer()
	v := identityView()
	draw(m, v, geom.Point{X: 0, Y: 0}, geom.Point{X: 200, Y: 0})
	draw(m, v, geom.Point{X: 0, Y: 100}, geom.Point{X: 200, Y: 100})

	// Clicking the body of the first line selects it, clicking again
	// deselects it.
	if !m.Down(geom.Point{X: 100, Y: 5}, v) || m.Selected() != 0 {
		t.Fatalf("selected = %d", m.Selected())
	}
	m.Up(geom.Point{X: 100, Y: 5}, v)
	m.Down(geom.Point{X: 100, Y: 5}, v)
	if m.Selected() != -1 {
		t.Errorf("selected = %d, want deselected", m.Selected())
	}

	// Clicking empty space clears the selection.
	m.Down(geom.Point{X: 100, Y: 105}, v)
	m.Down(geom.Point{X: 500, Y: 500}, v)
	if m.Selected() != -1 {
		t.Errorf("selected = %d", m.Selected())
	}
}

func TestEndpointDrag(t *testing.T) {
	m := NewMeasurer()
	v := identityView()
	draw(m, v, geom.Point{X: 0, Y: 0}, geom.Point{X: 200, Y: 0})

	// Grab the end 20px off and drag it down.
	if !m.Down(geom.Point{X: 210, Y: 10}, v) {
		t.Fatal("endpoint not grabbed")
	}
	m.Move(geom.Point{X: 210, Y: 60}, v)
	m.Up(geom.Point{X: 210, Y: 60}, v)
	if d := cmp.Diff(geom.Line{{}, {X: 200, Y: 50}}, m.Lines()[0], approx); d != "" {
		t.Error(d)
	}
	if m.Move(geom.Point{X: 300, Y: 300}, v) {
		t.Error("moved after release")
	}
}

func TestDelete(t *testing.T) {
	m := NewMeasurer()
	v := identityView()
	for i := 0; i < 3; i++ {
		y := float64(i * 100)
		draw(m, v, geom.Point{X: 0, Y: y}, geom.Point{X: 200, Y: y})
	}

	// Deleting the middle line selects the one before it.
	m.Down(geom.Point{X: 100, Y: 100}, v)
	if !m.Delete() || m.Selected() != 0 || len(m.Lines()) != 2 {
		t.Fatalf("selected=%d lines=%d", m.Selected(), len(m.Lines()))
	}
	// Deleting the first selects the last.
	if !m.Delete() || m.Selected() != 0 {
		t.Fatalf("selected=%d", m.Selected())
	}
	if got := m.Lines()[0][0].Y; got != 200 {
		t.Errorf("remaining line at y=%g", got)
	}
	if !m.Delete() || m.Selected() != -1 || len(m.Lines()) != 0 {
		t.Errorf("selected=%d lines=%d", m.Selected(), len(m.Lines()))
	}
	if m.Delete() {
		t.Error("deleted with nothing selected")
	}
}

func TestOverlaySkipsNonFinite(t *testing.T) {
	m := NewMeasurer()
	v := identityView()
	draw(m, v, geom.Point{X: 0, Y: 0}, geom.Point{X: 200, Y: 0})
	draw(m, v, geom.Point{X: 0, Y: 100}, geom.Point{X: 200, Y: 100})
	m.Down(geom.Point{X: 100, Y: 0}, v)
	if m.Selected() != 0 {
		t.Fatalf("selected = %d", m.Selected())
	}

	v.Calibration = geom.Identity()
	v.Calibration[0] = math.NaN()
	o := m.Overlay(v)
	if len(o.Lines) != 0 || o.Selected != nil {
		t.Errorf("non-finite lines drawn: %+v", o)
	}
}

func TestOverlayPending(t *testing.T) {
	m := NewMeasurer()
	v := identityView()
	m.Measuring = true
	m.Down(geom.Point{X: 10, Y: 10}, v)
	m.Move(geom.Point{X: 10, Y: 250}, v)
	o := m.Overlay(v)
	if o.Pending == nil {
		t.Fatal("no pending line")
	}
	want := Readout{Text: `2.50" 270°`, At: geom.Point{X: 20, Y: 20}}
	if d := cmp.Diff(want, o.Pending.Readout); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff(geom.Line{{X: 10, Y: 10}, {X: 154, Y: 10}}, o.Pending.Axis); d != "" {
		t.Error(d)
	}
}

func TestReset(t *testing.T) {
	m := NewMeasurer()
	draw(m, identityView(), geom.Point{}, geom.Point{X: 100})
	m.Reset()
	if len(m.Lines()) != 0 || m.Selected() != -1 {
		t.Error("reset kept state")
	}
}
