package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pattern-projector/internal/calibration"
	"pattern-projector/internal/geom"
	"pattern-projector/internal/render"
	"pattern-projector/internal/settings"
	"pattern-projector/internal/unit"
)

func manager(t *testing.T) *calibration.Manager {
	t.Helper()
	m := calibration.New(nil, 10, 5, unit.IN)
	if err := m.SetPoints([]geom.Point{{X: 20, Y: 20}, {X: 220, Y: 30}, {X: 210, Y: 120}, {X: 30, Y: 110}}); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestPreviews(t *testing.T) {
	jobs := Previews(manager(t), settings.Default(), geom.Identity(), 240, 140)
	var names []string
	for _, j := range jobs {
		names = append(names, j.Name)
	}
	want := []string{
		"calibrate-light", "project-light",
		"calibrate-inverted-green", "project-inverted-green",
		"calibrate-inverted", "project-inverted",
	}
	if d := cmp.Diff(want, names); d != "" {
		t.Error(d)
	}
	if !jobs[0].Snapshot.Calibrating || jobs[1].Snapshot.Calibrating {
		t.Error("calibrating flags swapped")
	}
	if jobs[2].Snapshot.ColorProgress != 1 {
		t.Errorf("inverted green progress = %g", jobs[2].Snapshot.ColorProgress)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	jobs := Previews(manager(t), settings.Default(), geom.Identity(), 240, 140)
	jobs = append(jobs, Job{Name: "empty"})

	cfg := Config{OutputDir: dir, Format: render.PNG, Supersample: 2, Workers: 3}
	results := Run(cfg, jobs)
	if len(results) != len(jobs) {
		t.Fatalf("%d results for %d jobs", len(results), len(jobs))
	}
	for i, r := range results[:len(results)-1] {
		if !r.Success {
			t.Errorf("job %d failed: %s", i, r.Error)
			continue
		}
		img, err := render.LoadBackdrop(r.Path)
		if err != nil {
			t.Fatal(err)
		}
		if b := img.Bounds(); b.Dx() != 240 || b.Dy() != 140 {
			t.Errorf("%s: size %v", r.Name, b)
		}
	}
	if last := results[len(results)-1]; last.Success || last.Error == "" {
		t.Errorf("empty job: %+v", last)
	}

	manifest := filepath.Join(dir, "manifest.json")
	if err := WriteManifest(manifest, results); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(manifest)
	if err != nil {
		t.Fatal(err)
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if entries[0].Image != "calibrate-light.png" {
		t.Errorf("image = %q", entries[0].Image)
	}
	if entries[len(entries)-1].Image != "" {
		t.Error("failed job has an image")
	}
}

func TestRenderBackdrop(t *testing.T) {
	m := manager(t)
	ds := settings.Default()
	ds.Overlay.Disabled = true
	s := m.Snapshot(geom.Identity(), ds)

	// A 10x5 inch backdrop in canonical pixels.
	backdrop := render.NewCanvas(960, 480)
	backdrop.FillPolygon(geom.RectCorners(960, 480), render.ErrorPattern)
	img := Render(Job{Width: 240, Height: 140, Snapshot: s, Backdrop: backdrop.Image()}, 1)

	if img.NRGBAAt(120, 70).A == 0 {
		t.Error("backdrop not drawn inside the quad")
	}
	if img.NRGBAAt(5, 5).A != 0 {
		t.Error("backdrop drawn outside the quad")
	}
}
