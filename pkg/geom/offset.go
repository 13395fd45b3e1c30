package geom

import "math"

// Offset displaces every vertex along the average of its two adjacent
// edge normals by the signed distance d, growing the polygon for positive
// d and shrinking it for negative d (with respect to the polygon's own
// winding). Vertex count and order are preserved.
//
// Each edge normal is the edge direction rotated 90 degrees ((dy, -dx),
// normalized), so adjacent-edge normals agree in sense as long as the
// polygon winds consistently. When the two normals cancel (a 180-degree
// spike) the vertex is left in place rather than divided by zero.
//
// This is an approximate mitered offset: for large |d| relative to local
// curvature the result can self-intersect, which is a known limitation of
// the method, not a defect to be corrected here. Callers that need a
// smaller footprint should simplify first or offset by less.
//
// d == 0 returns the input polygon unchanged (the same slice, not a
// recomputed copy) so repeated identity offsets cannot accumulate
// floating-point drift.
func (p Polygon) Offset(d float64) Polygon {
	if d == 0 {
		return p
	}
	if len(p) < 3 {
		return p
	}

	out := make(Polygon, len(p))
	n := len(p)
	for i := range p {
		prev := p[(i-1+n)%n]
		curr := p[i]
		next := p[(i+1)%n]

		n1 := edgeNormal(prev, curr)
		n2 := edgeNormal(curr, next)

		ax, ay := n1.X+n2.X, n1.Y+n2.Y
		length := math.Hypot(ax, ay)
		if length == 0 {
			out[i] = curr
			continue
		}
		out[i] = Point{
			X: curr.X + ax/length*d,
			Y: curr.Y + ay/length*d,
		}
	}
	return out
}

// edgeNormal returns the unit normal of edge a->b, the direction vector
// rotated 90 degrees. A zero-length edge yields the zero vector.
func edgeNormal(a, b Point) Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return Point{}
	}
	return Point{X: dy / length, Y: -dx / length}
}
