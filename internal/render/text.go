package render

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"pattern-projector/internal/geom"
)

var face = basicfont.Face7x13

// TextWidth returns the width in pixels of s drawn size pixels tall.
func TextWidth(s string, size float64) float64 {
	w := font.MeasureString(face, s).Ceil()
	return float64(w) * size / float64(face.Height)
}

// Text draws s with its baseline starting at p, size pixels tall. The
// bitmap face is rendered at its native size and scaled up.
func (c *Canvas) Text(s string, p geom.Point, size float64, col color.Color) {
	if s == "" || !p.IsFinite() || size <= 0 {
		return
	}
	w := font.MeasureString(face, s).Ceil()
	h := face.Height
	glyphs := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(s)

	p = p.Scale(c.scale)
	scale := size * c.scale / float64(h)
	top := p.Y - float64(face.Ascent)*scale
	dr := image.Rect(
		int(p.X), int(top),
		int(p.X+float64(w)*scale+0.5), int(top+float64(h)*scale+0.5),
	)
	if c.Blend == Difference {
		c.blendImage(dr, glyphs)
		return
	}
	xdraw.ApproxBiLinear.Scale(c.img, dr, glyphs, glyphs.Bounds(), xdraw.Over, nil)
}

// OutlinedText draws s in fill over a border in outline, legible on any
// background.
func (c *Canvas) OutlinedText(s string, p geom.Point, size float64, outline, fill color.Color) {
	const o = 2
	for _, d := range []geom.Point{{X: -o}, {X: o}, {Y: -o}, {Y: o}, {X: -o, Y: -o}, {X: o, Y: o}, {X: -o, Y: o}, {X: o, Y: -o}} {
		c.Text(s, p.Add(d), size, outline)
	}
	c.Text(s, p, size, fill)
}

// blendImage scales src into dr and composites it with the difference
// blend.
func (c *Canvas) blendImage(dr image.Rectangle, src *image.NRGBA) {
	scaled := image.NewNRGBA(dr)
	xdraw.ApproxBiLinear.Scale(scaled, dr, src, src.Bounds(), xdraw.Src, nil)
	dr = dr.Intersect(c.img.Rect)
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		for x := dr.Min.X; x < dr.Max.X; x++ {
			s := scaled.NRGBAAt(x, y)
			if s.A == 0 {
				continue
			}
			a := float64(s.A) / 255
			i := c.img.PixOffset(x, y)
			for k, sc := range [3]uint8{s.R, s.G, s.B} {
				d := float64(c.img.Pix[i+k])
				c.img.Pix[i+k] = clamp8(d + (absDiff(d, float64(sc))-d)*a)
			}
			if c.img.Pix[i+3] < s.A {
				c.img.Pix[i+3] = s.A
			}
		}
	}
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
