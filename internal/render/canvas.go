package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"pattern-projector/internal/geom"
)

// Blend selects how shapes are composited onto the canvas.
type Blend int

const (
	Over Blend = iota
	// Difference replaces each channel with |dst - src|, which keeps
	// markers visible on both light and dark backgrounds.
	Difference
)

// Canvas is an NRGBA drawing surface. Drawing calls take screen pixels;
// the image holds scale device pixels per screen pixel.
type Canvas struct {
	img   *image.NRGBA
	r     *vector.Rasterizer
	mask  *image.Alpha
	scale float64

	Blend Blend
}

// NewCanvas allocates a transparent w × h canvas.
func NewCanvas(w, h int) *Canvas {
	return NewScaledCanvas(w, h, 1)
}

// NewScaledCanvas allocates a canvas for a w × h screen drawn at scale.
func NewScaledCanvas(w, h int, scale float64) *Canvas {
	if !(scale > 0) {
		scale = 1
	}
	dw := int(math.Ceil(float64(w) * scale))
	dh := int(math.Ceil(float64(h) * scale))
	return &Canvas{
		img:   image.NewNRGBA(image.Rect(0, 0, dw, dh)),
		r:     vector.NewRasterizer(dw, dh),
		mask:  image.NewAlpha(image.Rect(0, 0, dw, dh)),
		scale: scale,
	}
}

func (c *Canvas) Image() *image.NRGBA { return c.img }

func (c *Canvas) Bounds() image.Rectangle { return c.img.Rect }

// Clear fills the whole canvas with col.
func (c *Canvas) Clear(col color.Color) {
	draw.Draw(c.img, c.img.Rect, image.NewUniform(col), image.Point{}, draw.Src)
}

// FillPolygon fills the closed polygon ps with src.
func (c *Canvas) FillPolygon(ps []geom.Point, src image.Image) {
	if len(ps) < 3 || !finite(ps) {
		return
	}
	c.begin()
	c.r.MoveTo(c.dev(ps[0]))
	for _, p := range ps[1:] {
		c.r.LineTo(c.dev(p))
	}
	c.r.ClosePath()
	c.paint(src)
}

// StrokeLine draws a single segment.
func (c *Canvas) StrokeLine(l geom.Line, width float64, col color.Color) {
	c.Stroke(l[:], false, width, nil, col)
}

// Stroke draws the polyline ps, closing it back to the first point when
// closed is set. dash alternates on and off lengths in pixels; nil draws
// a solid line.
func (c *Canvas) Stroke(ps []geom.Point, closed bool, width float64, dash []float64, col color.Color) {
	if len(ps) < 2 || !finite(ps) || width <= 0 {
		return
	}
	if closed {
		ps = append(ps[:len(ps):len(ps)], ps[0])
	}
	c.begin()
	d := newDasher(dash)
	for i := 1; i < len(ps); i++ {
		for _, s := range d.split(ps[i-1], ps[i]) {
			c.segment(s[0].Scale(c.scale), s[1].Scale(c.scale), width*c.scale/2)
		}
	}
	c.paint(image.NewUniform(col))
}

// Circle strokes a circle of radius r around p.
func (c *Canvas) Circle(p geom.Point, r, width float64, col color.Color) {
	const n = 48
	ps := make([]geom.Point, n)
	for i := range ps {
		a := 2 * math.Pi * float64(i) / n
		ps[i] = geom.Point{X: p.X + r*math.Cos(a), Y: p.Y + r*math.Sin(a)}
	}
	c.Stroke(ps, true, width, nil, col)
}

// Crosshair strokes a plus sign of the given size centered on p.
func (c *Canvas) Crosshair(p geom.Point, size, width float64, col color.Color) {
	h := size / 2
	c.StrokeLine(geom.Line{{X: p.X - h, Y: p.Y}, {X: p.X + h, Y: p.Y}}, width, col)
	c.StrokeLine(geom.Line{{X: p.X, Y: p.Y - h}, {X: p.X, Y: p.Y + h}}, width, col)
}

// Arrow strokes l with an arrowhead at its end.
func (c *Canvas) Arrow(l geom.Line, width float64, col color.Color) {
	const headLength, headWidth = 8, 4
	d := l[1].Sub(l[0])
	n := math.Hypot(d.X, d.Y)
	if n == 0 || !l.IsFinite() {
		return
	}
	u := d.Scale(1 / n)
	v := geom.Point{X: -u.Y, Y: u.X}
	base := l[1].Sub(u.Scale(headLength))
	c.StrokeLine(geom.Line{l[0], base}, width, col)
	c.FillPolygon([]geom.Point{
		l[1],
		base.Add(v.Scale(headWidth)),
		base.Sub(v.Scale(headWidth)),
	}, image.NewUniform(col))
}

// segment adds a quad of half width hw around a-b to the current path. It
// works in device pixels.
func (c *Canvas) segment(a, b geom.Point, hw float64) {
	d := b.Sub(a)
	n := math.Hypot(d.X, d.Y)
	if n == 0 {
		return
	}
	o := geom.Point{X: -d.Y / n * hw, Y: d.X / n * hw}
	c.r.MoveTo(f32(a.Add(o)))
	c.r.LineTo(f32(b.Add(o)))
	c.r.LineTo(f32(b.Sub(o)))
	c.r.LineTo(f32(a.Sub(o)))
	c.r.ClosePath()
}

func (c *Canvas) begin() {
	b := c.img.Rect
	c.r.Reset(b.Dx(), b.Dy())
}

// paint composites src through the current path.
func (c *Canvas) paint(src image.Image) {
	if c.Blend == Over {
		c.r.DrawOp = draw.Over
		c.r.Draw(c.img, c.img.Rect, src, image.Point{})
		return
	}

	clear(c.mask.Pix)
	c.r.DrawOp = draw.Src
	c.r.Draw(c.mask, c.mask.Rect, image.Opaque, image.Point{})
	b := c.img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m := c.mask.AlphaAt(x, y).A
			if m == 0 {
				continue
			}
			s := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			a := float64(m) / 255 * float64(s.A) / 255
			i := c.img.PixOffset(x, y)
			for k, sc := range [3]uint8{s.R, s.G, s.B} {
				d := float64(c.img.Pix[i+k])
				diff := math.Abs(d - float64(sc))
				c.img.Pix[i+k] = clamp8(d + (diff-d)*a)
			}
			if c.img.Pix[i+3] < m {
				c.img.Pix[i+3] = m
			}
		}
	}
}

// dev converts a screen point to device coordinates.
func (c *Canvas) dev(p geom.Point) (float32, float32) {
	return f32(p.Scale(c.scale))
}

func f32(p geom.Point) (float32, float32) {
	return float32(p.X), float32(p.Y)
}

func finite(ps []geom.Point) bool {
	for _, p := range ps {
		if !p.IsFinite() {
			return false
		}
	}
	return true
}

// dasher splits a polyline into dashes, carrying the pattern phase from
// one segment to the next.
type dasher struct {
	pattern []float64
	i       int
	left    float64
}

func newDasher(pattern []float64) *dasher {
	total := 0.0
	for _, v := range pattern {
		total += v
	}
	if total <= 0 {
		return &dasher{}
	}
	// An odd pattern repeats twice so that on and off alternate.
	if len(pattern)%2 == 1 {
		pattern = append(pattern[:len(pattern):len(pattern)], pattern...)
	}
	return &dasher{pattern: pattern, left: pattern[0]}
}

func (d *dasher) split(a, b geom.Point) []geom.Line {
	if d.pattern == nil {
		return []geom.Line{{a, b}}
	}
	var out []geom.Line
	v := b.Sub(a)
	n := math.Hypot(v.X, v.Y)
	pos := 0.0
	for pos < n {
		step := math.Min(d.left, n-pos)
		if d.i%2 == 0 && step > 0 {
			out = append(out, geom.Line{
				a.Add(v.Scale(pos / n)),
				a.Add(v.Scale((pos + step) / n)),
			})
		}
		pos += step
		d.left -= step
		if d.left <= 0 {
			d.i = (d.i + 1) % len(d.pattern)
			d.left = d.pattern[d.i]
		}
	}
	return out
}
