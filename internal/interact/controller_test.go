package interact

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"pattern-projector/internal/calibration"
	"pattern-projector/internal/geom"
	"pattern-projector/internal/store"
	"pattern-projector/internal/unit"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

var quad = []geom.Point{{X: 100, Y: 100}, {X: 500, Y: 100}, {X: 500, Y: 400}, {X: 100, Y: 400}}

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func newController(t *testing.T, fourCorners bool) (*Controller, store.Memory) {
	t.Helper()
	s := store.NewMemory()
	m := calibration.New(s, 10, 5, unit.IN)
	if err := m.SetPoints(quad); err != nil {
		t.Fatal(err)
	}
	return NewController(m, fourCorners), s
}

func savedPoints(t *testing.T, s store.Store) []geom.Point {
	t.Helper()
	var ps []geom.Point
	if err := store.GetJSON(s, store.KeyPoints, &ps); err != nil {
		t.Fatal(err)
	}
	return ps
}

func TestPrecisionDrag(t *testing.T) {
	c, _ := newController(t, true)
	c.Down(geom.Point{X: 100, Y: 100}, at(0))
	if c.Active() != calibration.TopLeft {
		t.Fatalf("active = %v", c.Active())
	}
	c.Move(geom.Point{X: 110, Y: 100}, MouseFilter, at(600))
	if !c.Precise() {
		t.Fatal("precision did not engage")
	}
	if d := cmp.Diff(geom.Point{X: 102, Y: 100}, c.Points()[0], approx); d != "" {
		t.Error(d)
	}
}

func TestPrecisionCancelledByEarlyMove(t *testing.T) {
	c, _ := newController(t, true)
	c.Down(geom.Point{X: 100, Y: 100}, at(0))
	c.Move(geom.Point{X: 110, Y: 100}, MouseFilter, at(100))
	c.Move(geom.Point{X: 120, Y: 100}, MouseFilter, at(700))
	if c.Precise() {
		t.Error("precision engaged after crossing the threshold")
	}
	if d := cmp.Diff(geom.Point{X: 120, Y: 100}, c.Points()[0], approx); d != "" {
		t.Error(d)
	}
}

func TestPrecisionDoesNotJump(t *testing.T) {
	c, _ := newController(t, true)
	c.Down(geom.Point{X: 100, Y: 100}, at(0))
	c.Move(geom.Point{X: 103, Y: 100}, MouseFilter, at(100))
	c.Move(geom.Point{X: 103, Y: 100}, MouseFilter, at(600))
	if !c.Precise() {
		t.Fatal("precision did not engage")
	}
	if d := cmp.Diff(geom.Point{X: 103, Y: 100}, c.Points()[0], approx); d != "" {
		t.Errorf("corner jumped: %s", d)
	}
	c.Move(geom.Point{X: 113, Y: 100}, MouseFilter, at(700))
	if d := cmp.Diff(geom.Point{X: 105, Y: 100}, c.Points()[0], approx); d != "" {
		t.Error(d)
	}
}

func TestTickEngagesPrecision(t *testing.T) {
	c, _ := newController(t, true)
	if c.Tick(at(0)) {
		t.Error("tick without a gesture")
	}
	c.Down(geom.Point{X: 101, Y: 99}, at(0))
	if c.Tick(at(400)) {
		t.Error("engaged before the delay")
	}
	if !c.Tick(at(501)) || !c.Precise() {
		t.Fatal("tick did not engage precision")
	}
	c.Move(geom.Point{X: 111, Y: 99}, MouseFilter, at(550))
	if d := cmp.Diff(geom.Point{X: 102, Y: 100}, c.Points()[0], approx); d != "" {
		t.Error(d)
	}
}

func TestStaleReleaseIsNoop(t *testing.T) {
	c, s := newController(t, true)
	ok, err := c.Up()
	if ok || err != nil {
		t.Errorf("Up() = %v, %v", ok, err)
	}
	if _, err := s.Get(store.KeyPoints); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("store written on a stale release: %v", err)
	}
}

func TestReleaseCommits(t *testing.T) {
	c, s := newController(t, true)
	c.Down(geom.Point{X: 500, Y: 400}, at(0))
	c.Move(geom.Point{X: 520, Y: 420}, MouseFilter, at(50))
	ok, err := c.Up()
	if !ok || err != nil {
		t.Fatalf("Up() = %v, %v", ok, err)
	}
	want := append([]geom.Point(nil), quad...)
	want[2] = geom.Point{X: 520, Y: 420}
	if d := cmp.Diff(want, savedPoints(t, s)); d != "" {
		t.Error(d)
	}
	if ok, _ := c.Up(); ok {
		t.Error("second release committed again")
	}
}

func TestPlacement(t *testing.T) {
	s := store.NewMemory()
	m := calibration.New(s, 10, 5, unit.IN)
	c := NewController(m, true)
	for i, p := range quad {
		if err := c.Down(p, at(i)); err != nil {
			t.Fatal(err)
		}
		_, err := s.Get(store.KeyPoints)
		if saved := err == nil; saved != (i == 3) {
			t.Errorf("after point %d saved=%v", i, saved)
		}
	}
	if !m.Ready() {
		t.Error("manager not ready after four points")
	}
	if c.Dragging() {
		t.Error("placement started a drag")
	}
}

func TestPan(t *testing.T) {
	c, _ := newController(t, true)
	c.Down(geom.Point{X: 300, Y: 250}, at(0))
	if c.Active() != calibration.NoCorner {
		t.Errorf("active = %v", c.Active())
	}
	c.Move(geom.Point{X: 310, Y: 240}, MouseFilter, at(50))
	want := geom.TranslatePoints(quad, 10, -10)
	if d := cmp.Diff(want, c.Points(), approx); d != "" {
		t.Error(d)
	}
}

func TestSingleCornerMovesQuad(t *testing.T) {
	c, _ := newController(t, false)
	c.Down(geom.Point{X: 100, Y: 100}, at(0))
	c.Move(geom.Point{X: 90, Y: 100}, MouseFilter, at(50))
	want := geom.TranslatePoints(quad, -10, 0)
	if d := cmp.Diff(want, c.Points(), approx); d != "" {
		t.Error(d)
	}
}

func TestTouchFilter(t *testing.T) {
	c, _ := newController(t, true)
	c.Down(geom.Point{X: 100, Y: 100}, at(0))
	c.Move(geom.Point{X: 200, Y: 100}, TouchFilter, at(50))
	if d := cmp.Diff(geom.Point{X: 105, Y: 100}, c.Points()[0], approx); d != "" {
		t.Error(d)
	}
}

func TestHover(t *testing.T) {
	c, _ := newController(t, true)
	c.Move(geom.Point{X: 480, Y: 120}, MouseFilter, at(0))
	if c.Hover() != calibration.TopRight {
		t.Errorf("hover = %v", c.Hover())
	}
	c.Move(geom.Point{X: 300, Y: 250}, MouseFilter, at(10))
	if c.Hover() != calibration.NoCorner {
		t.Errorf("hover = %v", c.Hover())
	}
}

func TestKeys(t *testing.T) {
	c, _ := newController(t, true)
	var got []calibration.Corner
	for i := 0; i < 5; i++ {
		c.KeyPress(KeyTab, false)
		got = append(got, c.Active())
	}
	want := []calibration.Corner{calibration.TopLeft, calibration.TopRight, calibration.BottomRight, calibration.BottomLeft, calibration.TopLeft}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}

	c.KeyPress(KeyTab, true)
	if c.FourCorners() {
		t.Error("shift+tab did not toggle four-corner mode")
	}
	c.KeyPress(KeyEscape, false)
	if c.Active() != calibration.NoCorner {
		t.Error("escape did not deselect")
	}
	if ok, _ := c.KeyPress(KeyEscape, false); ok {
		t.Error("escape with nothing selected was handled")
	}
}

func TestArrowNudgeCommits(t *testing.T) {
	c, s := newController(t, true)
	if ok, _ := c.KeyPress(KeyRight, false); ok {
		t.Error("nudge with no active corner")
	}
	c.SetActive(calibration.TopRight)
	c.KeyPress(KeyRight, false)
	c.KeyPress(KeyUp, true)
	want := geom.Point{X: 501, Y: 99.9}
	if d := cmp.Diff(want, savedPoints(t, s)[1], approx); d != "" {
		t.Error(d)
	}
}

func TestNudge(t *testing.T) {
	out, ok := Nudge(quad, calibration.BottomLeft, KeyDown, false, false)
	if !ok {
		t.Fatal("not handled")
	}
	if d := cmp.Diff(geom.TranslatePoints(quad, 0, 1), out); d != "" {
		t.Error(d)
	}
	if quad[3].Y != 400 {
		t.Error("input modified")
	}
	if _, ok := Nudge(quad, calibration.NoCorner, KeyDown, false, true); ok {
		t.Error("nudge without a corner")
	}
}
