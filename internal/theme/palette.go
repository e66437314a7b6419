package theme

import (
	"image/color"
	"math"

	"golang.org/x/image/colornames"
)

// Palette is the set of colors used to draw the calibration canvas at a
// given point of the color transition.
type Palette struct {
	Background     color.NRGBA
	Fill           color.NRGBA
	GridLine       color.NRGBA
	ProjectionGrid color.NRGBA
}

var (
	light = nrgba(colornames.White)
	dark  = nrgba(colornames.Black)
	green = nrgba(colornames.Limegreen)

	surfaceRing = []color.NRGBA{light, dark, dark}
	lineRing    = []color.NRGBA{dark, green, light}
)

// PaletteAt returns the palette for transition progress p.
func PaletteAt(p float64) Palette {
	surface := InterpolateColorRing(surfaceRing, p)
	line := InterpolateColorRing(lineRing, p)
	return Palette{
		Background:     surface,
		Fill:           surface,
		GridLine:       line,
		ProjectionGrid: line,
	}
}

// InterpolateColorRing blends between neighbouring colors of a ring. The
// integer part of p selects a color, the fraction blends towards the next
// one, wrapping from the last color back to the first.
func InterpolateColorRing(ring []color.NRGBA, p float64) color.NRGBA {
	n := len(ring)
	if n == 0 {
		return color.NRGBA{}
	}
	p = math.Mod(p, float64(n))
	if p < 0 {
		p += float64(n)
	}
	i := int(math.Floor(p))
	t := p - float64(i)
	a, b := ring[i%n], ring[(i+1)%n]
	return color.NRGBA{
		R: lerp8(a.R, b.R, t),
		G: lerp8(a.G, b.G, t),
		B: lerp8(a.B, b.B, t),
		A: lerp8(a.A, b.A, t),
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func nrgba(c color.RGBA) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
