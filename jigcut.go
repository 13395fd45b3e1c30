// Package jigcut turns a photograph of a flat object into
// manufacturable jig geometry: candidate outlines are detected in the
// photo, one is simplified and optionally offset, the pixel scale is
// calibrated against a reference sheet or a manual measurement, and the
// result is exported as a flat cut drawing (SVG, DXF) or a printable
// solid (binary STL).
package jigcut

import (
	"fmt"
	"image"
	"io"

	"github.com/chazu/jigcut/pkg/calib"
	"github.com/chazu/jigcut/pkg/contour"
	"github.com/chazu/jigcut/pkg/detect"
	"github.com/chazu/jigcut/pkg/export"
	"github.com/chazu/jigcut/pkg/geom"
	"github.com/chazu/jigcut/pkg/imgproc"
	"github.com/chazu/jigcut/pkg/imgproc/native"
	"github.com/chazu/jigcut/pkg/jig"
	"github.com/chazu/jigcut/pkg/rectify"
	"github.com/chazu/jigcut/pkg/solid"
	"github.com/chazu/jigcut/pkg/solid/sdfxpreview"
)

// Reference sheet defaults: US letter in millimeters.
const (
	DefaultRefWidth  = 215.9
	DefaultRefHeight = 279.4

	// defaultAspectTol is the relative aspect-ratio error accepted when
	// matching a detected quad against the reference sheet.
	defaultAspectTol = 0.1
)

// Pipeline wires the stages together around an injected primitives
// implementation. The zero value is not usable; construct with New.
type Pipeline struct {
	Primitives imgproc.Primitives
	Detector   *detect.Detector

	// Exact builds the solid that gets exported; Viewer builds the
	// approximate preview mesh.
	Exact  solid.Builder
	Viewer solid.Builder

	// RefWidth and RefHeight are the physical dimensions of the
	// calibration sheet, in millimeters.
	RefWidth, RefHeight float64
}

// New returns a pipeline on the pure-Go primitives, with exact
// extrusion for export and the SDF builder for previews.
func New() *Pipeline {
	p := native.New()
	return &Pipeline{
		Primitives: p,
		Detector:   detect.New(p),
		Exact:      solid.NewExtrude(),
		Viewer:     sdfxpreview.New(),
		RefWidth:   DefaultRefWidth,
		RefHeight:  DefaultRefHeight,
	}
}

// Detection is the result of one detection pass: the ranked candidate
// outlines, plus the calibration derived from the reference sheet when
// one was recognized in the frame.
type Detection struct {
	Candidates []contour.Candidate `json:"candidates"`

	// TargetIndex is the suggested starting candidate, -1 when nothing
	// was found.
	TargetIndex int `json:"targetIndex"`

	// Calibration is nil when no reference sheet was recognized; the
	// caller then needs CalibrateManual before exporting.
	Calibration *calib.Calibration `json:"calibration,omitempty"`
}

// LoadImage decodes and orients a photograph, downscaling oversized
// rasters to detection resolution.
func (p *Pipeline) LoadImage(r io.Reader) (image.Image, error) {
	return native.DecodeImage(r)
}

// Detect runs the detection strategies over the image, ranks the
// candidate outlines, and calibrates against the reference sheet if one
// is in the frame.
func (p *Pipeline) Detect(img image.Image) Detection {
	d := Detection{TargetIndex: -1}
	d.Candidates = p.Detector.Detect(img)

	if len(d.Candidates) > 0 {
		d.TargetIndex = 0
		for i, c := range d.Candidates {
			if !c.IsReference {
				d.TargetIndex = i
				break
			}
		}
	}

	if quad, ok := detect.FindReferenceQuad(d.Candidates, p.RefWidth, p.RefHeight, defaultAspectTol); ok {
		if c, err := calib.FromReference(quad, p.RefWidth, p.RefHeight); err == nil {
			d.Calibration = &c
		}
	}
	return d
}

// Rectify warps the image so the given quad becomes an axis-aligned
// rectangle of its own average dimensions. Detection results from the
// original image do not transfer; re-run Detect on the result.
func (p *Pipeline) Rectify(img image.Image, quad rectify.Quad) (image.Image, error) {
	outW := int(quad.Width() + 0.5)
	outH := int(quad.Height() + 0.5)
	if outW < 1 || outH < 1 {
		return nil, fmt.Errorf("jigcut: rectify target %dx%d is empty", outW, outH)
	}

	dst := rectify.DestinationQuad(float64(outW), float64(outH))
	// The warp wants the destination-to-source mapping.
	t, err := p.Primitives.PerspectiveTransform(corners(dst), corners(quad))
	if err != nil {
		return nil, fmt.Errorf("jigcut: rectify: %w", err)
	}
	return p.Primitives.WarpPerspective(img, t, outW, outH), nil
}

// CalibrateManual derives the pixel scale from a user-drawn span across
// a feature of known physical length.
func (p *Pipeline) CalibrateManual(a, b geom.Point, lengthMM float64) (calib.Calibration, error) {
	return calib.FromManual(a.Dist(b), lengthMM)
}

// Simplify reduces a contour to the given tolerance in pixels. The
// caller typically binds this to an interactive slider and re-runs it
// from the original contour at each step.
func (p *Pipeline) Simplify(poly geom.Polygon, epsilonPx float64) geom.Polygon {
	return poly.Simplify(epsilonPx)
}

// Offset grows (positive) or shrinks (negative) a contour by a physical
// clearance, converted to pixels through the calibration.
func (p *Pipeline) Offset(poly geom.Polygon, cal calib.Calibration, clearanceMM float64) geom.Polygon {
	return poly.Offset(cal.ToPixels(clearanceMM))
}

// ExportSVG writes the flat cut drawing for a contour.
func (p *Pipeline) ExportSVG(w io.Writer, poly geom.Polygon, cfg jig.Config, cal calib.Calibration) error {
	fp, err := export.BuildFlatPath(poly, cfg, cal)
	if err != nil {
		return err
	}
	return fp.EncodeSVG(w)
}

// ExportDXF writes the flat cut drawing in DXF form.
func (p *Pipeline) ExportDXF(w io.Writer, poly geom.Polygon, cfg jig.Config, cal calib.Calibration) error {
	fp, err := export.BuildFlatPath(poly, cfg, cal)
	if err != nil {
		return err
	}
	return fp.EncodeDXF(w)
}

// ExportSTL returns the binary STL of the jig solid.
func (p *Pipeline) ExportSTL(poly geom.Polygon, cfg jig.Config, cal calib.Calibration) ([]byte, error) {
	return export.ExportSolid(poly, cfg, cal, p.Exact)
}

// PreviewSolid builds the viewer mesh of the jig solid through the
// approximate builder.
func (p *Pipeline) PreviewSolid(poly geom.Polygon, cfg jig.Config, cal calib.Calibration) (*solid.PreviewMesh, error) {
	m, err := export.BuildSolid(poly, cfg, cal, p.Viewer)
	if err != nil {
		return nil, err
	}
	return solid.Preview(m), nil
}

func corners(q rectify.Quad) [4]geom.Point {
	return [4]geom.Point{q.TL, q.TR, q.BR, q.BL}
}
