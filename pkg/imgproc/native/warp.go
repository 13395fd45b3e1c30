package native

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/chazu/jigcut/pkg/geom"
	"github.com/chazu/jigcut/pkg/imgproc"
)

// ErrSingularTransform is returned when the four correspondences do not
// determine a projective transform (collinear or repeated corners).
var ErrSingularTransform = errors.New("native: perspective transform is singular")

// PerspectiveTransform solves the 3x3 projective transform mapping each
// src corner onto its dst counterpart. The eight unknowns (h22 is fixed
// at 1) come from Gaussian elimination with partial pivoting over the
// standard 8x8 correspondence system.
func (p *Primitives) PerspectiveTransform(src, dst [4]geom.Point) (imgproc.Transform, error) {
	var a [8][8]float64
	var b [8]float64

	for i := 0; i < 4; i++ {
		sx, sy := src[i].X, src[i].Y
		dx, dy := dst[i].X, dst[i].Y
		r := 2 * i

		a[r] = [8]float64{sx, sy, 1, 0, 0, 0, -sx * dx, -sy * dx}
		b[r] = dx
		a[r+1] = [8]float64{0, 0, 0, sx, sy, 1, -sx * dy, -sy * dy}
		b[r+1] = dy
	}

	h, ok := solve8x8(a, b)
	if !ok {
		return imgproc.Transform{}, ErrSingularTransform
	}
	return imgproc.Transform{M: [9]float64{h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7], 1}}, nil
}

// WarpPerspective fills an outW x outH raster by mapping each output
// pixel through the inverse transform and sampling the source
// bilinearly. Callers pass the transform from destination to source
// coordinates (solve with src and dst swapped), which avoids inverting
// the matrix here.
func (p *Primitives) WarpPerspective(img image.Image, t imgproc.Transform, outW, outH int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, outW, outH))
	sb := img.Bounds()
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			sx, sy := t.Apply(float64(x), float64(y))
			out.Set(x, y, bilinearSample(img, sx+float64(sb.Min.X), sy+float64(sb.Min.Y)))
		}
	}
	return out
}

// solve8x8 runs Gaussian elimination with partial pivoting.
func solve8x8(a [8][8]float64, b [8]float64) ([8]float64, bool) {
	for col := 0; col < 8; col++ {
		pivot := col
		for r := col + 1; r < 8; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if a[pivot][col] == 0 {
			return [8]float64{}, false
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		div := a[col][col]
		for c := col; c < 8; c++ {
			a[col][c] /= div
		}
		b[col] /= div

		for r := 0; r < 8; r++ {
			if r == col || a[r][col] == 0 {
				continue
			}
			factor := a[r][col]
			for c := col; c < 8; c++ {
				a[r][c] -= factor * a[col][c]
			}
			b[r] -= factor * b[col]
		}
	}
	return b, true
}

// bilinearSample interpolates the four pixels around (x, y); samples
// outside the image are black.
func bilinearSample(src image.Image, x, y float64) color.Color {
	b := src.Bounds()
	if x < float64(b.Min.X) || y < float64(b.Min.Y) ||
		x > float64(b.Max.X-1) || y > float64(b.Max.Y-1) {
		return color.RGBA{A: 255}
	}

	x0, y0 := int(x), int(y)
	x1, y1 := minInt(x0+1, b.Max.X-1), minInt(y0+1, b.Max.Y-1)
	fx, fy := x-float64(x0), y-float64(y0)

	c00 := rgbaF(src.At(x0, y0))
	c10 := rgbaF(src.At(x1, y0))
	c01 := rgbaF(src.At(x0, y1))
	c11 := rgbaF(src.At(x1, y1))

	lerp := func(a, b, t float64) float64 { return a + (b-a)*t }
	mix := func(a, b, c, d float64) uint8 {
		return uint8(lerp(lerp(a, b, fx), lerp(c, d, fx), fy) + 0.5)
	}
	return color.RGBA{
		R: mix(c00[0], c10[0], c01[0], c11[0]),
		G: mix(c00[1], c10[1], c01[1], c11[1]),
		B: mix(c00[2], c10[2], c01[2], c11[2]),
		A: mix(c00[3], c10[3], c01[3], c11[3]),
	}
}

// rgbaF returns 8-bit channel values as floats.
func rgbaF(c color.Color) [4]float64 {
	r, g, b, a := c.RGBA()
	return [4]float64{float64(r >> 8), float64(g >> 8), float64(b >> 8), float64(a >> 8)}
}
