package render

import (
	"image"

	"pattern-projector/internal/geom"
)

// Warp draws src onto the canvas through m, which maps source pixels to
// screen pixels. Every destination pixel is mapped back into the source
// and sampled bilinearly; pixels that fall outside the source are left
// alone.
func (c *Canvas) Warp(src *image.NRGBA, m geom.Mat3) {
	inv := geom.Scale(c.scale, c.scale).Mul(m).Inverse()
	if !inv.IsFinite() {
		return
	}
	sb := src.Rect
	w, h := float64(sb.Dx()), float64(sb.Dy())
	b := c.img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := geom.TransformPoint(geom.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}, inv)
			if !p.IsFinite() || p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h {
				continue
			}
			r, g, bl, a := sample(src, p.X-0.5, p.Y-0.5)
			if a == 0 {
				continue
			}
			i := c.img.PixOffset(x, y)
			over(c.img.Pix[i:i+4], r, g, bl, a)
		}
	}
}

// sample reads src at fractional pixel (fx, fy) with bilinear filtering,
// clamping at the edges.
func sample(src *image.NRGBA, fx, fy float64) (r, g, b, a uint8) {
	w := src.Rect.Dx()
	h := src.Rect.Dy()
	fx = clampF(fx, 0, float64(w-1))
	fy = clampF(fy, 0, float64(h-1))
	x0, y0 := int(fx), int(fy)
	x1, y1 := min(x0+1, w-1), min(y0+1, h-1)
	dx, dy := fx-float64(x0), fy-float64(y0)

	stride := src.Stride
	pix := src.Pix
	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	var out [4]uint8
	for k := range out {
		v := float64(pix[i00+k])*w00 + float64(pix[i10+k])*w10 + float64(pix[i01+k])*w01 + float64(pix[i11+k])*w11
		out[k] = uint8(v + 0.5)
	}
	return out[0], out[1], out[2], out[3]
}

// over composites a straight-alpha color onto a straight-alpha pixel.
func over(dst []uint8, r, g, b, a uint8) {
	sa := float64(a) / 255
	da := float64(dst[3]) / 255
	oa := sa + da*(1-sa)
	if oa == 0 {
		return
	}
	for k, s := range [3]uint8{r, g, b} {
		v := (float64(s)*sa + float64(dst[k])*da*(1-sa)) / oa
		dst[k] = clamp8(v)
	}
	dst[3] = clamp8(oa * 255)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
