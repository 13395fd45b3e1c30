package geom

import "math"

// Area returns the unsigned area of the polygon via the shoelace formula.
// Degenerate polygons (fewer than 3 vertices) have zero area. The result
// is independent of winding order.
func (p Polygon) Area() float64 {
	if len(p) < 3 {
		return 0
	}
	var sum float64
	for i := range p {
		j := (i + 1) % len(p)
		sum += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return math.Abs(sum) / 2
}

// Contains reports whether pt lies inside the polygon using the ray-casting
// even-odd rule. Points exactly on an edge are implementation-defined: the
// half-open edge test counts an edge crossing when the point's Y is in
// [min(yi,yj), max(yi,yj)), so points on a horizontal edge or on the
// "upper" endpoint of an edge may fall either way. Callers must not rely
// on boundary-point behavior.
func (p Polygon) Contains(pt Point) bool {
	if len(p) < 3 {
		return false
	}
	inside := false
	for i, j := 0, len(p)-1; i < len(p); j, i = i, i+1 {
		yi, yj := p[i].Y, p[j].Y
		if (yi > pt.Y) != (yj > pt.Y) {
			x := p[i].X + (pt.Y-yi)/(yj-yi)*(p[j].X-p[i].X)
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Bounds returns the axis-aligned bounding box of the polygon.
// An empty polygon yields the zero box.
func (p Polygon) Bounds() BBox {
	if len(p) == 0 {
		return BBox{}
	}
	b := BBox{MinX: p[0].X, MinY: p[0].Y, MaxX: p[0].X, MaxY: p[0].Y}
	for _, pt := range p[1:] {
		b.MinX = math.Min(b.MinX, pt.X)
		b.MinY = math.Min(b.MinY, pt.Y)
		b.MaxX = math.Max(b.MaxX, pt.X)
		b.MaxY = math.Max(b.MaxY, pt.Y)
	}
	return b
}

// Centroid returns the vertex average. It is a selection heuristic, not
// the true area centroid.
func (p Polygon) Centroid() Point {
	var c Point
	if len(p) == 0 {
		return c
	}
	for _, pt := range p {
		c.X += pt.X
		c.Y += pt.Y
	}
	c.X /= float64(len(p))
	c.Y /= float64(len(p))
	return c
}

// Translate returns a copy of the polygon moved by (dx, dy).
func (p Polygon) Translate(dx, dy float64) Polygon {
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[i] = Point{X: pt.X + dx, Y: pt.Y + dy}
	}
	return out
}

// BBoxIoU returns the intersection-over-union of the two polygons'
// axis-aligned bounding boxes, in [0, 1]. This is a deliberately cheap
// stand-in for true polygon IoU; it is only used to decide whether two
// detections cover the same physical object. Non-overlapping boxes
// yield 0.
func BBoxIoU(a, b Polygon) float64 {
	ba, bb := a.Bounds(), b.Bounds()

	ix := math.Min(ba.MaxX, bb.MaxX) - math.Max(ba.MinX, bb.MinX)
	iy := math.Min(ba.MaxY, bb.MaxY) - math.Max(ba.MinY, bb.MinY)
	if ix <= 0 || iy <= 0 {
		return 0
	}
	inter := ix * iy
	union := ba.Area() + bb.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}
