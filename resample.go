package texpack

import "math"

// Plane is a single-component float grid at output resolution. Values stay
// in [0, 1] floating scale until the packer quantizes at the write step.
type Plane struct {
	W, H int
	Pix  []float64 // len W*H, row-major
}

// newPlane allocates a zeroed plane.
func newPlane(w, h int) *Plane {
	return &Plane{W: w, H: h, Pix: make([]float64, w*h)}
}

// fill sets every value of the plane to v.
func (p *Plane) fill(v float64) {
	for i := range p.Pix {
		p.Pix[i] = v
	}
}

// resamplePlane produces a scalar grid of size width x height from a
// channel source. Each destination pixel center maps into source space as
// (x+0.5)/width*nativeW - 0.5 and is bilinearly interpolated among the four
// nearest texels, clamped to the source edges. Constant sources skip
// interpolation entirely. Luminance extraction reduces each texel before
// interpolating, never after, so grayscale values are interpolated in
// grayscale space.
func resamplePlane(src ChannelSource, width, height int) *Plane {
	pl := newPlane(width, height)
	if !src.HasImage() {
		pl.fill(src.constantScalar())
		return pl
	}

	w, h := src.Image.Width(), src.Image.Height()
	for y := 0; y < height; y++ {
		fy := (float64(y)+0.5)/float64(height)*float64(h) - 0.5
		y0 := int(math.Floor(fy))
		ty := fy - float64(y0)
		y1 := clamp(y0+1, 0, h-1)
		y0 = clamp(y0, 0, h-1)

		for x := 0; x < width; x++ {
			fx := (float64(x)+0.5)/float64(width)*float64(w) - 0.5
			x0 := int(math.Floor(fx))
			tx := fx - float64(x0)
			x1 := clamp(x0+1, 0, w-1)
			x0 = clamp(x0, 0, w-1)

			v00 := src.scalarAt(x0, y0)
			v10 := src.scalarAt(x1, y0)
			v01 := src.scalarAt(x0, y1)
			v11 := src.scalarAt(x1, y1)

			pl.Pix[y*width+x] = lerp2D(v00, v10, v01, v11, tx, ty)
		}
	}
	return pl
}

// resampleRGB produces three scalar grids, one per color component, from a
// channel source with RGB extraction. The same source-space mapping and
// clamping as resamplePlane applies.
func resampleRGB(src ChannelSource, width, height int) (r, g, b *Plane) {
	r = newPlane(width, height)
	g = newPlane(width, height)
	b = newPlane(width, height)
	if !src.HasImage() {
		r.fill(src.Constant.R)
		g.fill(src.Constant.G)
		b.fill(src.Constant.B)
		return r, g, b
	}

	w, h := src.Image.Width(), src.Image.Height()
	for y := 0; y < height; y++ {
		fy := (float64(y)+0.5)/float64(height)*float64(h) - 0.5
		y0 := int(math.Floor(fy))
		ty := fy - float64(y0)
		y1 := clamp(y0+1, 0, h-1)
		y0 = clamp(y0, 0, h-1)

		for x := 0; x < width; x++ {
			fx := (float64(x)+0.5)/float64(width)*float64(w) - 0.5
			x0 := int(math.Floor(fx))
			tx := fx - float64(x0)
			x1 := clamp(x0+1, 0, w-1)
			x0 = clamp(x0, 0, w-1)

			c00 := src.Image.At(x0, y0)
			c10 := src.Image.At(x1, y0)
			c01 := src.Image.At(x0, y1)
			c11 := src.Image.At(x1, y1)

			i := y*width + x
			r.Pix[i] = lerp2D(c00.R, c10.R, c01.R, c11.R, tx, ty)
			g.Pix[i] = lerp2D(c00.G, c10.G, c01.G, c11.G, tx, ty)
			b.Pix[i] = lerp2D(c00.B, c10.B, c01.B, c11.B, tx, ty)
		}
	}
	return r, g, b
}

// clamp clamps an integer value to [minVal, maxVal].
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	v0 := lerp(v00, v10, tx)
	v1 := lerp(v01, v11, tx)
	return lerp(v0, v1, ty)
}
