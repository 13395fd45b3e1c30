// Package rectify provides the coordinate math for perspective
// correction of a detected quadrilateral: corner role assignment and the
// destination mapping a perspective-warp primitive needs. The pixel
// resampling itself is the image-processing layer's job.
package rectify

import (
	"fmt"
	"math"
	"sort"

	"github.com/chazu/jigcut/pkg/geom"
)

// Quad is a quadrilateral with corners in fixed roles:
// top-left, top-right, bottom-right, bottom-left.
type Quad struct {
	TL, TR, BR, BL geom.Point
}

// Points returns the corners in role order.
func (q Quad) Points() []geom.Point {
	return []geom.Point{q.TL, q.TR, q.BR, q.BL}
}

// Width returns the average of the quad's top and bottom edge lengths
// in pixels.
func (q Quad) Width() float64 {
	return (q.TL.Dist(q.TR) + q.BL.Dist(q.BR)) / 2
}

// Height returns the average of the quad's left and right edge lengths
// in pixels.
func (q Quad) Height() float64 {
	return (q.TL.Dist(q.BL) + q.TR.Dist(q.BR)) / 2
}

// rowTolerance is the y-distance within which two corners are treated as
// lying on the same row. Detected corners carry pixel noise; a strict
// y-comparison would make role assignment flicker between frames.
const rowTolerance = 10.0

// OrderCorners assigns the four unordered corner points of a detected
// quadrilateral to their TL/TR/BR/BL roles. Points are split into a top
// and a bottom row — points within rowTolerance of each other in y share
// a row — then ordered left-to-right within each row. The assignment is
// deterministic and stable under small perturbation of the inputs.
func OrderCorners(pts []geom.Point) (Quad, error) {
	if len(pts) != 4 {
		return Quad{}, fmt.Errorf("rectify: need exactly 4 corners, got %d", len(pts))
	}

	sorted := append([]geom.Point(nil), pts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Y-sorted[j].Y) > rowTolerance {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	top := sorted[:2]
	bottom := sorted[2:]
	if top[0].X > top[1].X {
		top[0], top[1] = top[1], top[0]
	}
	if bottom[0].X > bottom[1].X {
		bottom[0], bottom[1] = bottom[1], bottom[0]
	}

	return Quad{TL: top[0], TR: top[1], BR: bottom[1], BL: bottom[0]}, nil
}

// DestinationQuad returns the warp destination corners for an output
// raster of the given size, in the same role order as the source quad:
// (0,0), (w,0), (w,h), (0,h). Pairing these with an ordered source quad
// is exactly what a perspective-transform primitive needs to solve for
// its matrix.
func DestinationQuad(width, height float64) Quad {
	return Quad{
		TL: geom.Point{X: 0, Y: 0},
		TR: geom.Point{X: width, Y: 0},
		BR: geom.Point{X: width, Y: height},
		BL: geom.Point{X: 0, Y: height},
	}
}
