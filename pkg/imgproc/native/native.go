// Package native is the pure-Go implementation of the imgproc
// primitives: grayscale, blur, edge detection, thresholding, contour
// tracing, and perspective warping, with no cgo or external runtime.
package native

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/chazu/jigcut/pkg/imgproc"
)

// Compile-time interface check.
var _ imgproc.Primitives = (*Primitives)(nil)

// Primitives implements imgproc.Primitives. The zero value is ready
// to use; New exists for symmetry with other backends.
type Primitives struct{}

// New returns the native primitives implementation.
func New() *Primitives {
	return &Primitives{}
}

// Grayscale converts an image to 8-bit luminance.
func (p *Primitives) Grayscale(img image.Image) *image.Gray {
	return toGray(imaging.Grayscale(img))
}

// GaussianBlur smooths the image with a Gaussian kernel of the given
// odd size in pixels.
func (p *Primitives) GaussianBlur(g *image.Gray, kernelSize int) *image.Gray {
	if kernelSize <= 1 {
		return cloneGray(g)
	}
	// bild parameterizes by radius rather than kernel size.
	radius := float64(kernelSize) / 2
	return toGray(blur.Gaussian(g, radius))
}

// OtsuThreshold binarizes at the histogram level that maximizes
// between-class variance.
func (p *Primitives) OtsuThreshold(g *image.Gray) *image.Gray {
	return segment.Threshold(g, otsuLevel(g))
}

// otsuLevel computes Otsu's threshold over the 256-bin histogram.
func otsuLevel(g *image.Gray) uint8 {
	var hist [256]int
	b := g.Bounds()
	total := b.Dx() * b.Dy()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			hist[g.GrayAt(x, y).Y]++
		}
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumB, wB float64
	bestLevel := 0
	bestVar := -1.0
	for i, n := range hist {
		wB += float64(n)
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * float64(n)
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > bestVar {
			bestVar = between
			bestLevel = i
		}
	}
	return uint8(bestLevel)
}

// AdaptiveThreshold binarizes each pixel against the mean of its
// blockSize neighborhood minus c, using a summed-area table so the
// window size does not affect cost.
func (p *Primitives) AdaptiveThreshold(g *image.Gray, blockSize int, c float64) *image.Gray {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	if blockSize < 3 {
		blockSize = 3
	}
	if blockSize%2 == 0 {
		blockSize++
	}
	half := blockSize / 2

	// integral[y][x] holds the sum over the rectangle [0,x) x [0,y).
	integral := make([]float64, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		var rowSum float64
		for x := 0; x < w; x++ {
			rowSum += float64(g.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			integral[(y+1)*(w+1)+x+1] = integral[y*(w+1)+x+1] + rowSum
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0, y0 := maxInt(x-half, 0), maxInt(y-half, 0)
			x1, y1 := minInt(x+half+1, w), minInt(y+half+1, h)
			area := float64((x1 - x0) * (y1 - y0))
			sum := integral[y1*(w+1)+x1] - integral[y0*(w+1)+x1] -
				integral[y1*(w+1)+x0] + integral[y0*(w+1)+x0]
			mean := sum / area

			v := float64(g.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			if v > mean-c {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// ColorDistanceMask marks pixels perceptually far from ref. Distances
// are CIE-Lab, so "far" tracks human color difference rather than raw
// RGB deltas.
func (p *Primitives) ColorDistanceMask(img image.Image, ref color.Color, maxDist float64) *image.Gray {
	refC, ok := colorful.MakeColor(ref)
	if !ok {
		return image.NewGray(img.Bounds())
	}

	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			if c.DistanceLab(refC) > maxDist {
				out.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// toGray converts any image to *image.Gray at origin (0,0).
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// cloneGray returns an independent copy of g at origin (0,0).
func cloneGray(g *image.Gray) *image.Gray {
	b := g.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), g, b.Min, draw.Src)
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
