// Package imgproc defines the narrow image-processing interface the
// contour pipeline consumes: pixel-level operations from grayscale
// conversion through raw contour tracing and perspective warping.
// The pipeline receives an implementation by injection and never
// reaches into package-level state to find one; pkg/imgproc/native
// provides the pure-Go implementation.
package imgproc

import (
	"image"
	"image/color"

	"github.com/chazu/jigcut/pkg/geom"
)

// TraceMode selects which contours a trace returns.
type TraceMode int

const (
	// TraceAll returns every contour with hierarchy information.
	TraceAll TraceMode = iota
	// TraceExternal returns only top-level contours, skipping contours
	// nested inside another.
	TraceExternal
)

// RawContour is a traced pixel boundary plus the hierarchy bit needed
// to filter top-level contours.
type RawContour struct {
	Points []geom.Point

	// TopLevel is false for contours enclosed by another contour.
	TopLevel bool
}

// Transform is a 3x3 projective transform in row-major order, the
// handle a perspective warp consumes.
type Transform struct {
	M [9]float64
}

// Apply maps the point (x, y) through the transform.
func (t Transform) Apply(x, y float64) (float64, float64) {
	denom := t.M[6]*x + t.M[7]*y + t.M[8]
	if denom == 0 {
		return 0, 0
	}
	return (t.M[0]*x + t.M[1]*y + t.M[2]) / denom,
		(t.M[3]*x + t.M[4]*y + t.M[5]) / denom
}

// Primitives is the complete pixel-operation surface the detection
// pipeline needs. All methods are synchronous and pure: inputs are
// never mutated and no implementation state survives a call.
type Primitives interface {
	// Grayscale converts an image to 8-bit luminance.
	Grayscale(img image.Image) *image.Gray

	// GaussianBlur smooths with an odd kernel size in pixels.
	GaussianBlur(g *image.Gray, kernelSize int) *image.Gray

	// CannyEdges marks edge pixels white using hysteresis thresholds
	// in the 0-255 gradient magnitude range.
	CannyEdges(g *image.Gray, low, high float64) *image.Gray

	// AdaptiveThreshold binarizes against the local mean over a
	// blockSize window, offset by c.
	AdaptiveThreshold(g *image.Gray, blockSize int, c float64) *image.Gray

	// OtsuThreshold binarizes at the global Otsu level.
	OtsuThreshold(g *image.Gray) *image.Gray

	// ColorDistanceMask marks pixels whose perceptual color distance
	// from ref exceeds maxDist. It separates a colored object from a
	// uniform background such as a paper sheet.
	ColorDistanceMask(img image.Image, ref color.Color, maxDist float64) *image.Gray

	// TraceContours extracts boundary polygons of white regions in a
	// binary image.
	TraceContours(bin *image.Gray, mode TraceMode) []RawContour

	// PerspectiveTransform solves the projective transform mapping the
	// four src corners onto the four dst corners.
	PerspectiveTransform(src, dst [4]geom.Point) (Transform, error)

	// WarpPerspective resamples img through the inverse of t into an
	// output raster of the given size.
	WarpPerspective(img image.Image, t Transform, outW, outH int) image.Image
}
