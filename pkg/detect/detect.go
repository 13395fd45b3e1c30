// Package detect runs the photo-to-candidates pipeline: it drives the
// injected image-processing primitives through one or more detection
// strategies, collects the raw traced contours, and hands them to the
// contour classifier. The historical pipeline variants (different blur
// kernels, edge thresholds, threshold modes) are expressed here as
// strategy configuration rather than parallel implementations.
package detect

import (
	"image"
	"image/color"

	"github.com/chazu/jigcut/pkg/contour"
	"github.com/chazu/jigcut/pkg/geom"
	"github.com/chazu/jigcut/pkg/imgproc"
)

// Strategy is one configured pass over the image. Method selects the
// primitive path; the remaining fields parameterize it.
type Strategy struct {
	Method contour.Method

	// BlurKernel is the Gaussian kernel size applied before edge
	// detection or thresholding. Zero skips the blur.
	BlurKernel int

	// CannyLow and CannyHigh are the hysteresis thresholds for
	// MethodCanny.
	CannyLow, CannyHigh float64

	// BlockSize and Offset parameterize MethodAdaptive.
	BlockSize int
	Offset    float64

	// ColorMaxDist is the CIE-Lab distance for MethodColorDistance.
	ColorMaxDist float64

	// Invert flips the binary image before tracing. Threshold passes
	// looking for a dark object on bright paper need it; passes
	// looking for the bright paper itself do not.
	Invert bool
}

// DefaultStrategies covers the useful combinations: edges, local and
// global thresholds in both polarities, and color segmentation.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Method: contour.MethodCanny, BlurKernel: 5, CannyLow: 50, CannyHigh: 150},
		{Method: contour.MethodAdaptive, BlurKernel: 5, BlockSize: 21, Offset: 5, Invert: true},
		{Method: contour.MethodOtsu, BlurKernel: 5, Invert: true},
		{Method: contour.MethodOtsu, BlurKernel: 5},
		{Method: contour.MethodColorDistance, ColorMaxDist: 0.25},
	}
}

// Detector owns the strategy list and classifier thresholds for one
// pipeline configuration. It holds no per-image state: every Detect
// call is independent.
type Detector struct {
	Primitives imgproc.Primitives
	Strategies []Strategy
	Classifier contour.Config
}

// New returns a detector with the default strategies and classifier
// thresholds, using the given primitives.
func New(p imgproc.Primitives) *Detector {
	return &Detector{
		Primitives: p,
		Strategies: DefaultStrategies(),
		Classifier: contour.DefaultConfig(),
	}
}

// Detect runs every strategy over the image and classifies the union
// of their traced contours. An image in which nothing is found yields
// an empty slice.
func (d *Detector) Detect(img image.Image) []contour.Candidate {
	b := img.Bounds()
	imageArea := float64(b.Dx() * b.Dy())

	gray := d.Primitives.Grayscale(img)

	var raws []contour.Raw
	for _, s := range d.Strategies {
		bin := d.runStrategy(img, gray, s)
		if bin == nil {
			continue
		}
		if s.Invert {
			invertGray(bin)
		}
		for _, rc := range d.Primitives.TraceContours(bin, imgproc.TraceExternal) {
			poly := geom.Polygon(rc.Points)
			raws = append(raws, contour.Raw{
				Polygon: poly,
				Area:    poly.Area(),
				Method:  s.Method,
			})
		}
	}

	return contour.DetectCandidates(raws, imageArea, d.Classifier)
}

// runStrategy produces the binary image for one strategy pass.
func (d *Detector) runStrategy(img image.Image, gray *image.Gray, s Strategy) *image.Gray {
	blurred := gray
	if s.BlurKernel > 1 {
		blurred = d.Primitives.GaussianBlur(gray, s.BlurKernel)
	}

	switch s.Method {
	case contour.MethodCanny:
		return d.Primitives.CannyEdges(blurred, s.CannyLow, s.CannyHigh)
	case contour.MethodAdaptive:
		return d.Primitives.AdaptiveThreshold(blurred, s.BlockSize, s.Offset)
	case contour.MethodOtsu:
		return d.Primitives.OtsuThreshold(blurred)
	case contour.MethodColorDistance:
		return d.Primitives.ColorDistanceMask(img, backgroundColor(img), s.ColorMaxDist)
	default:
		return nil
	}
}

// backgroundColor samples the four image corners and averages them;
// the photograph's margins are assumed to show the background.
func backgroundColor(img image.Image) color.Color {
	b := img.Bounds()
	corners := []image.Point{
		{X: b.Min.X, Y: b.Min.Y},
		{X: b.Max.X - 1, Y: b.Min.Y},
		{X: b.Min.X, Y: b.Max.Y - 1},
		{X: b.Max.X - 1, Y: b.Max.Y - 1},
	}
	var r, g, bl uint32
	for _, c := range corners {
		cr, cg, cb, _ := img.At(c.X, c.Y).RGBA()
		r += cr >> 8
		g += cg >> 8
		bl += cb >> 8
	}
	return color.RGBA{
		R: uint8(r / 4),
		G: uint8(g / 4),
		B: uint8(bl / 4),
		A: 255,
	}
}

// invertGray flips a binary image in place.
func invertGray(g *image.Gray) {
	for i := range g.Pix {
		g.Pix[i] = 255 - g.Pix[i]
	}
}
