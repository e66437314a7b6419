package render

import (
	"image"
	"image/color"
)

// Checkerboard is an endless two-color checker pattern usable as a fill
// source.
type Checkerboard struct {
	Size int
	A, B color.NRGBA
}

// ErrorPattern fills a calibration quad that cannot be used.
var ErrorPattern = Checkerboard{
	Size: 3,
	A:    color.NRGBA{0x55, 0x55, 0x55, 0xff},
	B:    color.NRGBA{0xcc, 0xcc, 0xcc, 0xff},
}

func (Checkerboard) ColorModel() color.Model { return color.NRGBAModel }

func (Checkerboard) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (p Checkerboard) At(x, y int) color.Color {
	n := p.Size
	if n <= 0 {
		n = 1
	}
	if (floorDiv(x, n)+floorDiv(y, n))%2 == 0 {
		return p.A
	}
	return p.B
}

func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && a < 0 {
		q--
	}
	return q
}
