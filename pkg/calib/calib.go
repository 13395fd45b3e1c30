// Package calib converts detected pixel geometry into physical units.
// A calibration is a single pixels-per-unit scale factor, derived either
// from a detected reference sheet of known size or from a manual
// two-point measurement.
package calib

import (
	"errors"
	"math"

	"github.com/chazu/jigcut/pkg/geom"
	"github.com/chazu/jigcut/pkg/rectify"
)

// Method records how a calibration was obtained.
type Method string

const (
	MethodAuto   Method = "auto"
	MethodManual Method = "manual"
)

// Calibration is a pixels-per-unit scale factor plus its provenance.
type Calibration struct {
	PixelsPerUnit float64
	Method        Method

	// ReferenceLength is the known physical length used for a manual
	// calibration; zero for automatic calibrations.
	ReferenceLength float64
}

// ErrZeroReference is returned when a calibration input has no physical
// length to divide by.
var ErrZeroReference = errors.New("calib: reference length must be positive")

// FromReference derives a scale from a detected reference quad of known
// physical size. The quad's long and short pixel axes are each divided
// by the corresponding known dimension and the two ratios averaged;
// using both axes halves the error a single distorted axis would
// introduce.
func FromReference(q rectify.Quad, knownWidth, knownHeight float64) (Calibration, error) {
	if knownWidth <= 0 || knownHeight <= 0 {
		return Calibration{}, ErrZeroReference
	}

	pxLong := math.Max(q.Width(), q.Height())
	pxShort := math.Min(q.Width(), q.Height())
	unitLong := math.Max(knownWidth, knownHeight)
	unitShort := math.Min(knownWidth, knownHeight)

	ppu := (pxLong/unitLong + pxShort/unitShort) / 2
	return Calibration{PixelsPerUnit: ppu, Method: MethodAuto}, nil
}

// FromManual derives a scale from a user-measured pixel span of a known
// physical length.
func FromManual(lengthPixels, lengthUnits float64) (Calibration, error) {
	if lengthUnits <= 0 {
		return Calibration{}, ErrZeroReference
	}
	return Calibration{
		PixelsPerUnit:   lengthPixels / lengthUnits,
		Method:          MethodManual,
		ReferenceLength: lengthUnits,
	}, nil
}

// ToUnits converts a pixel length to physical units.
func (c Calibration) ToUnits(pixels float64) float64 {
	return pixels / c.PixelsPerUnit
}

// ToPixels converts a physical length to pixels.
func (c Calibration) ToPixels(units float64) float64 {
	return units * c.PixelsPerUnit
}

// SquareJigSize computes the side of the square jig blank that holds the
// contour: the larger physical dimension of the pixel bounding box, plus
// padding on each side, rounded up to the next multiple of increment.
// Rounding up is deliberate — rounding down could clip the object.
// A non-positive increment skips quantization.
func SquareJigSize(bounds geom.BBox, c Calibration, paddingEachSide, increment float64) float64 {
	w := c.ToUnits(bounds.Width())
	h := c.ToUnits(bounds.Height())

	size := math.Max(w, h) + 2*paddingEachSide
	if increment > 0 {
		size = math.Ceil(size/increment) * increment
	}
	return size
}
