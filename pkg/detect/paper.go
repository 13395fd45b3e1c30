package detect

import (
	"math"

	"github.com/chazu/jigcut/pkg/contour"
	"github.com/chazu/jigcut/pkg/geom"
	"github.com/chazu/jigcut/pkg/rectify"
)

// quadEpsilonFracs are the simplification tolerances, as fractions of
// the contour perimeter, tried in order when reducing a candidate to
// four corners.
var quadEpsilonFracs = []float64{0.01, 0.02, 0.03, 0.05, 0.08, 0.12}

// FindReferenceQuad searches the reference-sized candidates for one
// that reduces to a four-corner quad whose aspect ratio matches the
// known reference sheet dimensions within aspectTol (relative error,
// orientation-agnostic). Candidates arrive sorted largest-first, so
// the first match is the dominant sheet in the frame.
func FindReferenceQuad(cands []contour.Candidate, refWidth, refHeight, aspectTol float64) (rectify.Quad, bool) {
	want := aspectRatio(refWidth, refHeight)
	for _, c := range cands {
		if !c.IsReference {
			continue
		}
		corners, ok := quadCorners(c.Polygon)
		if !ok {
			continue
		}
		quad, err := rectify.OrderCorners(corners)
		if err != nil {
			continue
		}
		got := aspectRatio(quad.Width(), quad.Height())
		if math.Abs(got-want)/want <= aspectTol {
			return quad, true
		}
	}
	return rectify.Quad{}, false
}

// quadCorners reduces a polygon to exactly four vertices by
// simplifying at increasing tolerances. A contour that never lands on
// four corners is not a sheet of paper.
func quadCorners(p geom.Polygon) ([]geom.Point, bool) {
	per := perimeter(p)
	for _, f := range quadEpsilonFracs {
		s := p.Simplify(f * per)
		if len(s) == 4 {
			return s, true
		}
		if len(s) < 4 {
			return nil, false
		}
	}
	return nil, false
}

func perimeter(p geom.Polygon) float64 {
	if len(p) < 2 {
		return 0
	}
	var sum float64
	for i := range p {
		sum += p[i].Dist(p[(i+1)%len(p)])
	}
	return sum
}

// aspectRatio is the long side over the short side.
func aspectRatio(w, h float64) float64 {
	if w < h {
		w, h = h, w
	}
	if h == 0 {
		return math.Inf(1)
	}
	return w / h
}
