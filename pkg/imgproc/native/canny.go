package native

import (
	"image"
	"image/color"
	"math"
)

// CannyEdges runs Canny edge detection on a grayscale image: Sobel
// gradients, non-maximum suppression to thin edges to one pixel, then
// hysteresis thresholding. low and high are in the 0-255 gradient
// magnitude range; weak edges between the two survive only next to a
// strong edge. The input is expected to be blurred already — the
// pipeline controls blur separately so strategies can tune it.
func (p *Primitives) CannyEdges(g *image.Gray, low, high float64) *image.Gray {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()

	at := func(x, y int) float64 {
		x = clampInt(x, 0, w-1)
		y = clampInt(y, 0, h-1)
		return float64(g.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
	}

	magnitude := make([]float64, w*h)
	direction := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) +
				-2*at(x-1, y) + 2*at(x+1, y) +
				-at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)
			magnitude[y*w+x] = math.Hypot(gx, gy)
			direction[y*w+x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression along the quantized gradient direction.
	suppressed := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			mag := magnitude[y*w+x]
			n1, n2 := neighborsAlongGradient(magnitude, direction[y*w+x], x, y, w)
			if mag >= n1 && mag >= n2 {
				suppressed[y*w+x] = mag
			}
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := suppressed[y*w+x]
			switch {
			case v >= high:
				out.SetGray(x, y, color.Gray{Y: 255})
			case v >= low && hasStrongNeighbor(suppressed, x, y, w, h, high):
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// neighborsAlongGradient returns the two magnitude samples across the
// edge at (x, y), picked from the 8-neighborhood by gradient angle.
func neighborsAlongGradient(mag []float64, angle float64, x, y, w int) (float64, float64) {
	switch {
	case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
		return mag[y*w+x-1], mag[y*w+x+1]
	case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
		return mag[(y-1)*w+x+1], mag[(y+1)*w+x-1]
	case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
		return mag[(y-1)*w+x], mag[(y+1)*w+x]
	default:
		return mag[(y-1)*w+x-1], mag[(y+1)*w+x+1]
	}
}

// hasStrongNeighbor reports whether any 8-neighbor exceeds the high
// threshold.
func hasStrongNeighbor(suppressed []float64, x, y, w, h int, high float64) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := clampInt(x+dx, 0, w-1), clampInt(y+dy, 0, h-1)
			if suppressed[ny*w+nx] >= high {
				return true
			}
		}
	}
	return false
}

// clampInt constrains v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
