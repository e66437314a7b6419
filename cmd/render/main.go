package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"pattern-projector/internal/batch"
	"pattern-projector/internal/calibration"
	"pattern-projector/internal/config"
	"pattern-projector/internal/geom"
	"pattern-projector/internal/measure"
	"pattern-projector/internal/render"
	"pattern-projector/internal/settings"
	"pattern-projector/internal/store"
	"pattern-projector/internal/transform"
	"pattern-projector/internal/unit"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	storePath := flag.String("store", "", "Path to the calibration state file")
	outputDir := flag.String("output", "", "Output directory (default: previews)")
	backdrop := flag.String("backdrop", "", "Pattern image drawn through the calibration (png, jpeg or tga)")
	width := flag.Float64("width", 0, "Calibration width in units (default: 24)")
	height := flag.Float64("height", 0, "Calibration height in units (default: 18)")
	unitName := flag.String("unit", "", "Calibration unit, in or cm")
	format := flag.String("format", "", "Output format: webp, png or tga (default: webp)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	line := flag.String("measure", "", "Measurement line x1,y1,x2,y2 in screen pixels")
	flip := flag.Bool("flip", false, "Flip the pattern horizontally about the calibration center")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	if err := cfg.Resolve(config.Flags{
		StorePath: *storePath,
		OutputDir: *outputDir,
		Backdrop:  *backdrop,
		Width:     *width,
		Height:    *height,
		Unit:      *unitName,
		Format:    *format,
		Workers:   *workers,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outFormat, err := render.ParseFormat(cfg.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	st := store.Open(cfg.StorePath)
	ds, err := settings.Load(st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: display settings: %v (using defaults)\n", err)
	}

	cal := calibration.New(st, cfg.Width, cfg.Height, cfg.Unit)
	if err := cal.Load(calibration.Viewport{Width: float64(cfg.ViewportWidth), Height: float64(cfg.ViewportHeight)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: calibration points: %v (using defaults)\n", err)
	}
	if err := cal.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	local := transform.NewTransformer()
	if *flip {
		w, h := cal.Size()
		local.Dispatch(transform.FlipHorizontal{Center: unit.CenterPoint(w, h, cal.Unit())})
	}

	jobs := batch.Previews(cal, ds, local.Matrix(), cfg.ViewportWidth, cfg.ViewportHeight)

	if cfg.Backdrop != "" {
		img, err := render.LoadBackdrop(cfg.Backdrop)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading backdrop: %v\n", err)
			os.Exit(1)
		}
		for i := range jobs {
			jobs[i].Backdrop = img
		}
		fmt.Printf("Backdrop: %s (%dx%d)\n", cfg.Backdrop, img.Bounds().Dx(), img.Bounds().Dy())
	}

	if *line != "" {
		l, err := parseLine(*line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: -measure: %v\n", err)
			os.Exit(1)
		}
		mx := cal.Matrices()
		view := measure.View{
			Perspective: mx.ScreenToPixels,
			Calibration: mx.PixelsToScreen,
			Local:       local.Matrix(),
			Unit:        cal.Unit(),
		}
		m := measure.NewMeasurer()
		m.Measuring = true
		m.Down(l[0], view)
		m.Move(l[1], view)
		if !m.Up(l[1], view) {
			fmt.Fprintln(os.Stderr, "Warning: measurement line could not be mapped through the calibration")
		}
		ov := m.Overlay(view)
		if ov.Selected != nil {
			fmt.Printf("Measurement: %s\n", ov.Selected.Readout.Text)
		}
		for i := range jobs {
			if !jobs[i].Snapshot.Calibrating {
				jobs[i].Measure = &ov
			}
		}
	}

	w, h := cal.Size()
	fmt.Println("Pattern projector previews")
	fmt.Printf("Calibration: %gx%g %s, ready: %t, concave: %t\n", w, h, cal.Unit().Label(), cal.Ready(), cal.IsConcave())
	fmt.Printf("Pattern flipped: %t\n", local.Matrix().IsFlipped())
	fmt.Printf("Frames: %d, Workers: %d\n", len(jobs), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir:   cfg.OutputDir,
		Format:      outFormat,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		Progress:    os.Stdout,
	}, jobs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, failed := 0, 0
	for _, r := range results {
		if r.Success {
			success++
			continue
		}
		failed++
		fmt.Printf("  %s: %s\n", r.Name, r.Error)
	}
	fmt.Printf("Rendered: %d/%d\n", success, len(jobs))

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func parseLine(s string) (geom.Line, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Line{}, fmt.Errorf("want 4 comma separated numbers, got %d", len(parts))
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Line{}, err
		}
		v[i] = f
	}
	return geom.Line{{X: v[0], Y: v[1]}, {X: v[2], Y: v[3]}}, nil
}
