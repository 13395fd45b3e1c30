// Package export turns a calibrated contour plus jig parameters into
// manufacturable output: a flat cut drawing (SVG or DXF, millimeter
// units) for laser cutting, and a binary STL solid for 3-D printing.
// Both outputs share one layout step that converts the contour from
// pixels to millimeters and centers it in a square blank.
package export

import (
	"errors"
	"fmt"

	"github.com/chazu/jigcut/pkg/calib"
	"github.com/chazu/jigcut/pkg/geom"
	"github.com/chazu/jigcut/pkg/jig"
	"github.com/chazu/jigcut/pkg/mesh"
	"github.com/chazu/jigcut/pkg/solid"
)

// Drawing layout constants, all in millimeters.
const (
	// crosshairInset is the distance from each blank corner to the
	// alignment crosshair center.
	crosshairInset = 5.0

	// crosshairArm is the half-length of each crosshair stroke.
	crosshairArm = 3.0

	// scaleBarLength is the fixed reference bar length; measuring it on
	// the finished cut verifies the machine's scale.
	scaleBarLength = 10.0

	// scaleBarInset positions the bar relative to the bottom-left corner.
	scaleBarInset = 5.0
)

var (
	// ErrDegenerateContour is returned for contours with fewer than
	// three vertices.
	ErrDegenerateContour = errors.New("export: contour needs at least 3 vertices")

	// ErrNotCalibrated is returned when no positive pixels-per-unit
	// scale is available.
	ErrNotCalibrated = errors.New("export: calibration has no positive scale")
)

// Segment is one straight stroke of the drawing.
type Segment struct {
	A, B geom.Point
}

// FlatPath is the structured flat drawing: a square border, four corner
// alignment crosshairs, the cutout path, and a fixed scale-reference
// bar. All coordinates are millimeters with the origin at the blank's
// top-left corner.
type FlatPath struct {
	// Size is the square blank side.
	Size float64

	// Cutout is the object contour, centered in the blank.
	Cutout geom.Polygon

	// Crosshairs holds the four alignment marks, two strokes each.
	Crosshairs []Segment

	// ScaleBar is the fixed-length reference stroke.
	ScaleBar Segment
}

// BuildFlatPath lays out the flat drawing for a contour in pixel
// coordinates: scale to millimeters, size the blank, center the cutout,
// place the alignment marks.
func BuildFlatPath(contour geom.Polygon, cfg jig.Config, cal calib.Calibration) (*FlatPath, error) {
	size, cutout, err := planLayout(contour, cfg, cal)
	if err != nil {
		return nil, err
	}

	fp := &FlatPath{
		Size:   size,
		Cutout: cutout,
		ScaleBar: Segment{
			A: geom.Point{X: scaleBarInset, Y: size - scaleBarInset},
			B: geom.Point{X: scaleBarInset + scaleBarLength, Y: size - scaleBarInset},
		},
	}
	for _, c := range []geom.Point{
		{X: crosshairInset, Y: crosshairInset},
		{X: size - crosshairInset, Y: crosshairInset},
		{X: size - crosshairInset, Y: size - crosshairInset},
		{X: crosshairInset, Y: size - crosshairInset},
	} {
		fp.Crosshairs = append(fp.Crosshairs,
			Segment{
				A: geom.Point{X: c.X - crosshairArm, Y: c.Y},
				B: geom.Point{X: c.X + crosshairArm, Y: c.Y},
			},
			Segment{
				A: geom.Point{X: c.X, Y: c.Y - crosshairArm},
				B: geom.Point{X: c.X, Y: c.Y + crosshairArm},
			},
		)
	}
	return fp, nil
}

// BuildSolid lays out the jig for a contour in pixel coordinates and
// builds its solid through the given builder: a square blank of the
// laid-out size, extruded to the material thickness, with the contour
// cavity cut from the top face.
func BuildSolid(contour geom.Polygon, cfg jig.Config, cal calib.Calibration, b solid.Builder) (*mesh.Mesh, error) {
	size, cutout, err := planLayout(contour, cfg, cal)
	if err != nil {
		return nil, err
	}

	outer := geom.Polygon{
		{X: 0, Y: 0},
		{X: size, Y: 0},
		{X: size, Y: size},
		{X: 0, Y: size},
	}
	m, err := b.Build(outer, cutout, cfg.Thickness, cfg.Depth())
	if err != nil {
		return nil, fmt.Errorf("export: build solid: %w", err)
	}
	return m, nil
}

// ExportSolid builds the jig solid and encodes it as binary STL.
func ExportSolid(contour geom.Polygon, cfg jig.Config, cal calib.Calibration, b solid.Builder) ([]byte, error) {
	m, err := BuildSolid(contour, cfg, cal, b)
	if err != nil {
		return nil, err
	}
	return m.EncodeSTL()
}

// planLayout converts the contour to millimeters, picks the square
// blank size, and centers the contour's bounding box in the blank.
func planLayout(contour geom.Polygon, cfg jig.Config, cal calib.Calibration) (float64, geom.Polygon, error) {
	if len(contour) < 3 {
		return 0, nil, ErrDegenerateContour
	}
	if cal.PixelsPerUnit <= 0 {
		return 0, nil, ErrNotCalibrated
	}
	if err := cfg.Validate(); err != nil {
		return 0, nil, err
	}

	units := make(geom.Polygon, len(contour))
	for i, pt := range contour {
		units[i] = geom.Point{X: cal.ToUnits(pt.X), Y: cal.ToUnits(pt.Y)}
	}

	size := cfg.FixedSize
	if size <= 0 {
		size = calib.SquareJigSize(contour.Bounds(), cal, cfg.Padding, cfg.SizeIncrement)
	}

	b := units.Bounds()
	cutout := units.Translate(size/2-(b.MinX+b.MaxX)/2, size/2-(b.MinY+b.MaxY)/2)

	cb := cutout.Bounds()
	if cb.MinX < 0 || cb.MinY < 0 || cb.MaxX > size || cb.MaxY > size {
		return 0, nil, fmt.Errorf("export: contour %.1fx%.1f does not fit blank size %.1f",
			b.Width(), b.Height(), size)
	}
	return size, cutout, nil
}
