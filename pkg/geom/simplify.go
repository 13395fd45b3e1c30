package geom

import "math"

// Simplify reduces the polygon's vertex count using the
// Ramer-Douglas-Peucker algorithm with perpendicular-distance tolerance
// epsilon (in the polygon's coordinate units).
//
// The closed polygon is treated as an open polyline by appending the first
// vertex at the end; the duplicate is stripped from the result. Polygons
// with 3 or fewer vertices are returned unchanged, and if simplification
// would collapse the result below 3 vertices the original polygon is
// returned instead — downstream consumers never see a degenerate loop.
func (p Polygon) Simplify(epsilon float64) Polygon {
	if len(p) <= 3 || epsilon <= 0 {
		return p.Clone()
	}

	closed := make(Polygon, 0, len(p)+1)
	closed = append(closed, p...)
	closed = append(closed, p[0])

	out := rdp(closed, epsilon)

	// Strip the duplicated closing vertex.
	if len(out) >= 2 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}

	if len(out) < 3 {
		return p.Clone()
	}
	return out
}

// rdp recursively simplifies an open polyline, keeping both endpoints.
func rdp(pts Polygon, epsilon float64) Polygon {
	if len(pts) <= 2 {
		return append(Polygon(nil), pts...)
	}

	a, b := pts[0], pts[len(pts)-1]
	maxDist := -1.0
	index := -1
	for i := 1; i < len(pts)-1; i++ {
		d := segmentDistance(pts[i], a, b)
		if d > maxDist {
			maxDist = d
			index = i
		}
	}

	if maxDist <= epsilon {
		return Polygon{a, b}
	}

	left := rdp(pts[:index+1], epsilon)
	right := rdp(pts[index:], epsilon)
	// Drop the duplicated junction vertex.
	return append(left[:len(left)-1], right...)
}

// segmentDistance returns the perpendicular distance from p to segment ab.
// A zero-length segment falls back to the point distance to a.
func segmentDistance(p, a, b Point) float64 {
	vx, vy := b.X-a.X, b.Y-a.Y
	if vx == 0 && vy == 0 {
		return p.Dist(a)
	}
	num := math.Abs((p.X-a.X)*vy - (p.Y-a.Y)*vx)
	return num / math.Hypot(vx, vy)
}
