package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"pattern-projector/internal/calibration"
	"pattern-projector/internal/config"
	"pattern-projector/internal/geom"
	"pattern-projector/internal/settings"
	"pattern-projector/internal/store"
	"pattern-projector/internal/unit"
)

func main() {
	storePath := flag.String("store", "", "Path to the calibration state file")
	width := flag.Float64("width", 0, "Calibration width in units (default: 24)")
	height := flag.Float64("height", 0, "Calibration height in units (default: 18)")
	unitName := flag.String("unit", "", "Calibration unit, in or cm")
	points := flag.String("points", "", "Commit corners x,y;x,y;x,y;x,y (clockwise from top left)")
	window := flag.String("window", "", "Check the saved context against width,height,screenX,screenY[,full]")
	save := flag.Bool("save-context", false, "Save -window as the calibration context")
	flag.Parse()

	var cfg config.Config
	if err := cfg.Resolve(config.Flags{StorePath: *storePath, Width: *width, Height: *height, Unit: *unitName}); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	st := store.Open(cfg.StorePath)
	cal := calibration.New(st, cfg.Width, cfg.Height, cfg.Unit)
	if err := cal.Load(calibration.Viewport{Width: float64(cfg.ViewportWidth), Height: float64(cfg.ViewportHeight)}); err != nil {
		fmt.Printf("Stored points unusable: %v\n", err)
	}

	if *points != "" {
		ps, err := parsePoints(*points)
		if err != nil {
			fmt.Printf("Error: -points: %v\n", err)
			os.Exit(1)
		}
		if err := cal.Commit(ps); err != nil {
			fmt.Printf("Committed with error: %v\n", err)
		}
	}

	fmt.Printf("Store: %s\n", cfg.StorePath)
	fmt.Printf("Size: %g x %g %s\n", cfg.Width, cfg.Height, cal.Unit().Label())
	for i, p := range cal.Points() {
		fmt.Printf("  %-12s (%.2f, %.2f)\n", calibration.Corner(i), p.X, p.Y)
	}
	fmt.Printf("Ready: %t, Concave: %t\n", cal.Ready(), cal.IsConcave())
	if err := cal.Err(); err != nil {
		fmt.Printf("Error: %v\n", err)
	}

	mx := cal.Matrices()
	fmt.Printf("Units to screen:\n%v\n", geom.Format(mx.UnitsToScreen))
	fmt.Printf("Screen to units:\n%v\n", geom.Format(mx.ScreenToUnits))
	fmt.Printf("Pixels to screen:\n%v\n", geom.Format(mx.PixelsToScreen))

	if cal.Ready() {
		center := unit.CenterPoint(cfg.Width, cfg.Height, cal.Unit())
		sc := geom.TransformPoint(center, mx.PixelsToScreen)
		back := geom.TransformPoint(sc, mx.ScreenToUnits)
		fmt.Printf("Center: (%.2f, %.2f) px -> screen (%.2f, %.2f) -> (%.3f, %.3f) %s\n",
			center.X, center.Y, sc.X, sc.Y, back.X, back.Y, cal.Unit().Label())
	}

	ds, err := settings.Load(st)
	if err != nil {
		fmt.Printf("Display settings unusable: %v\n", err)
	}
	fmt.Printf("Display: %+v\n", ds)

	if *window != "" {
		cur, err := parseContext(*window)
		if err != nil {
			fmt.Printf("Error: -window: %v\n", err)
			os.Exit(1)
		}
		saved, ok, err := calibration.LoadContext(st)
		switch {
		case err != nil:
			fmt.Printf("Context unusable: %v\n", err)
		case !ok:
			fmt.Println("Context: none saved")
		case saved.Invalidated(cur):
			fmt.Printf("Context: invalidated (saved %+v)\n", saved)
		default:
			fmt.Println("Context: valid")
		}
		if *save {
			if err := calibration.SaveContext(st, cur); err != nil {
				fmt.Printf("Error saving context: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Context saved")
		}
	}
}

func parsePoints(s string) ([]geom.Point, error) {
	var ps []geom.Point
	for _, pair := range strings.Split(s, ";") {
		v, err := parseFloats(pair)
		if err != nil {
			return nil, err
		}
		if len(v) != 2 {
			return nil, fmt.Errorf("bad point %q", pair)
		}
		ps = append(ps, geom.Point{X: v[0], Y: v[1]})
	}
	return ps, nil
}

func parseContext(s string) (calibration.Context, error) {
	parts := strings.Split(s, ",")
	full := false
	if len(parts) == 5 {
		full = strings.TrimSpace(parts[4]) == "full"
		parts = parts[:4]
	}
	v, err := parseFloats(strings.Join(parts, ","))
	if err != nil {
		return calibration.Context{}, err
	}
	if len(v) != 4 {
		return calibration.Context{}, fmt.Errorf("want width,height,screenX,screenY")
	}
	return calibration.Context{WindowWidth: v[0], WindowHeight: v[1], ScreenX: v[2], ScreenY: v[3], FullScreen: full}, nil
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
