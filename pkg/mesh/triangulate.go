package mesh

import (
	"errors"
	"math"

	"github.com/chazu/jigcut/pkg/geom"
)

// ErrTriangulation is returned when ear clipping cannot make progress,
// which indicates a self-intersecting or otherwise malformed input ring.
var ErrTriangulation = errors.New("mesh: triangulation failed on malformed polygon")

// Tri is an index triple into the vertex slice passed to Triangulate.
type Tri [3]int

// Triangulate triangulates a polygon, optionally with one hole, by ear
// clipping. The vertex slice holds the outer boundary followed by the
// hole vertices; holeStart is the index of the first hole vertex, or a
// value <= 0 or >= len(pts) for a hole-free polygon.
//
// The hole is joined to the outer boundary with a zero-width bridge at
// its rightmost vertex, then the merged ring is clipped. Returned
// triangles index into pts and are wound clockwise in the x-y plane;
// callers that need an upward-facing (counter-clockwise) orientation
// must swap the last two indices of each triple.
func Triangulate(pts []geom.Point, holeStart int) ([]Tri, error) {
	if holeStart > 0 && holeStart < len(pts) {
		outer := ringIndices(0, holeStart)
		hole := ringIndices(holeStart, len(pts))
		if len(outer) < 3 || len(hole) < 3 {
			return nil, ErrTriangulation
		}
		ring, err := eliminateHole(pts, orientRing(pts, outer, true), orientRing(pts, hole, false))
		if err != nil {
			return nil, err
		}
		return clipEars(pts, ring)
	}

	if len(pts) < 3 {
		return nil, ErrTriangulation
	}
	ring := orientRing(pts, ringIndices(0, len(pts)), true)
	return clipEars(pts, ring)
}

// ringIndices returns the index sequence [from, to).
func ringIndices(from, to int) []int {
	ring := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		ring = append(ring, i)
	}
	return ring
}

// signedArea returns twice the signed area of the ring; positive means
// counter-clockwise in a y-up coordinate frame.
func signedArea(pts []geom.Point, ring []int) float64 {
	var sum float64
	for i := range ring {
		a := pts[ring[i]]
		b := pts[ring[(i+1)%len(ring)]]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum
}

// orientRing reverses the ring if needed so its winding matches ccw.
func orientRing(pts []geom.Point, ring []int, ccw bool) []int {
	if (signedArea(pts, ring) > 0) != ccw {
		for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
			ring[i], ring[j] = ring[j], ring[i]
		}
	}
	return ring
}

// eliminateHole merges a clockwise hole ring into a counter-clockwise
// outer ring through a bridge at the hole's rightmost vertex, producing
// a single simple ring that visits the bridge edge twice.
func eliminateHole(pts []geom.Point, outer, hole []int) ([]int, error) {
	// Rightmost hole vertex; ties broken toward the lower point so the
	// choice is deterministic.
	m := 0
	for i := 1; i < len(hole); i++ {
		p, best := pts[hole[i]], pts[hole[m]]
		if p.X > best.X || (p.X == best.X && p.Y < best.Y) {
			m = i
		}
	}

	b, ok := findBridge(pts, outer, pts[hole[m]])
	if !ok {
		return nil, ErrTriangulation
	}

	// outer[0..b], hole[m..], hole[..m], outer[b..].
	merged := make([]int, 0, len(outer)+len(hole)+2)
	merged = append(merged, outer[:b+1]...)
	for i := 0; i < len(hole); i++ {
		merged = append(merged, hole[(m+i)%len(hole)])
	}
	merged = append(merged, hole[m], outer[b])
	merged = append(merged, outer[b+1:]...)
	return merged, nil
}

// findBridge locates the outer-ring vertex the hole vertex at point m
// can see along the +x ray, following the classic ear-clipping hole
// elimination: intersect the ray with outer edges, take the nearest hit,
// prefer an exact vertex hit, otherwise start from the hit edge's
// rightward endpoint and refine by checking for outer vertices inside
// the triangle (m, hit, candidate).
func findBridge(pts []geom.Point, outer []int, m geom.Point) (int, bool) {
	bestX := math.Inf(1)
	cand := -1
	var hit geom.Point

	for i := range outer {
		a := pts[outer[i]]
		b := pts[outer[(i+1)%len(outer)]]
		if (a.Y > m.Y) == (b.Y > m.Y) {
			continue
		}
		x := a.X + (m.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
		if x < m.X || x >= bestX {
			continue
		}
		bestX = x
		hit = geom.Point{X: x, Y: m.Y}
		// The endpoint on the far side of the ray from the hole.
		if a.X > b.X {
			cand = i
		} else {
			cand = (i + 1) % len(outer)
		}
	}
	if cand == -1 {
		return 0, false
	}
	if pts[outer[cand]] == hit {
		return cand, true
	}

	// Another outer vertex inside triangle (m, hit, candidate) would
	// block the bridge; pick the blocking vertex closest in angle to
	// the ray instead.
	best := cand
	bestTan := math.Inf(1)
	for i := range outer {
		if i == cand {
			continue
		}
		p := pts[outer[i]]
		if !pointInTriangle(m, hit, pts[outer[cand]], p) {
			continue
		}
		dx := p.X - m.X
		if dx <= 0 {
			continue
		}
		tan := math.Abs(p.Y-m.Y) / dx
		if tan < bestTan || (tan == bestTan && p.X > pts[outer[best]].X) {
			bestTan = tan
			best = i
		}
	}
	return best, true
}

// clipEars triangulates a counter-clockwise ring by iterative ear
// removal. Output triangles are rewound clockwise (see Triangulate).
func clipEars(pts []geom.Point, ring []int) ([]Tri, error) {
	n := len(ring)
	if n < 3 {
		return nil, ErrTriangulation
	}

	work := append([]int(nil), ring...)
	tris := make([]Tri, 0, n-2)

	for len(work) > 3 {
		clipped := false
		for i := range work {
			prev := work[(i-1+len(work))%len(work)]
			curr := work[i]
			next := work[(i+1)%len(work)]
			if !isEar(pts, work, prev, curr, next) {
				continue
			}
			tris = append(tris, Tri{prev, next, curr})
			work = append(work[:i], work[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil, ErrTriangulation
		}
	}
	tris = append(tris, Tri{work[0], work[2], work[1]})
	return tris, nil
}

// isEar reports whether the corner (a, b, c) of the ring is a clippable
// ear: convex with respect to the counter-clockwise winding and with no
// other ring vertex strictly inside it.
func isEar(pts []geom.Point, ring []int, a, b, c int) bool {
	pa, pb, pc := pts[a], pts[b], pts[c]

	if cross(pa, pb, pc) <= 0 {
		return false
	}
	for _, idx := range ring {
		p := pts[idx]
		// Bridge duplicates share coordinates with ear corners and
		// must not block the ear.
		if p == pa || p == pb || p == pc {
			continue
		}
		if pointInTriangle(pa, pb, pc, p) {
			return false
		}
	}
	return true
}

// cross returns the z component of (b-a) x (c-b).
func cross(a, b, c geom.Point) float64 {
	return (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
}

// pointInTriangle reports whether p lies strictly inside triangle abc.
// Boundary points count as outside.
func pointInTriangle(a, b, c, p geom.Point) bool {
	d1 := cross(a, b, p)
	d2 := cross(b, c, p)
	d3 := cross(c, a, p)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	if hasNeg && hasPos {
		return false
	}
	return d1 != 0 && d2 != 0 && d3 != 0
}
