package unit

import (
	"fmt"
	"strings"

	"pattern-projector/internal/geom"
)

// Unit is the physical unit of the calibration rectangle.
type Unit int

const (
	IN Unit = iota
	CM
)

// CSSPixelsPerInch is the reference density of canonical space. Canonical
// coordinates are CSS pixels: 96 of them make one physical inch.
const CSSPixelsPerInch = 96.0

const CentimetersPerInch = 2.54

// Parse accepts "in"/"IN" or "cm"/"CM".
func Parse(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "inch", "inches":
		return IN, nil
	case "cm", "centimeter", "centimeters":
		return CM, nil
	}
	return IN, fmt.Errorf("unit: unknown unit %q", s)
}

func (u Unit) String() string {
	if u == CM {
		return "CM"
	}
	return "IN"
}

// Label is the lowercase unit name used next to dimensions.
func (u Unit) Label() string {
	return strings.ToLower(u.String())
}

// Suffix is appended to measured lengths: cm, or the inch mark.
func (u Unit) Suffix() string {
	if u == CM {
		return "cm"
	}
	return `"`
}

func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.Label()), nil
}

func (u *Unit) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// PixelsPerUnit returns canonical pixels per physical unit.
func PixelsPerUnit(u Unit) float64 {
	if u == CM {
		return CSSPixelsPerInch / CentimetersPerInch
	}
	return CSSPixelsPerInch
}

// FromPixels converts a canonical pixel length to u.
func FromPixels(px float64, u Unit) float64 {
	return px / PixelsPerUnit(u)
}

// CenterPoint returns the center of a w×h calibration rectangle in
// canonical pixels, the pivot for rotating and flipping the pattern.
func CenterPoint(w, h float64, u Unit) geom.Point {
	ppu := PixelsPerUnit(u)
	return geom.Point{X: w * ppu * 0.5, Y: h * ppu * 0.5}
}

// Paper describes the reference sheet outlined over the grid.
type Paper struct {
	Name   string
	Width  float64
	Height float64
}

// PaperFor returns A4 landscape for centimeters and US Letter landscape
// for inches, sized in that unit.
func PaperFor(u Unit) Paper {
	if u == CM {
		return Paper{Name: "A4", Width: 29.7, Height: 21}
	}
	return Paper{Name: "11x8.5", Width: 11, Height: 8.5}
}
