// Package geom provides the 2-D geometry primitives the contour pipeline
// is built on: points, polygons, area, containment, bounding boxes, and
// the polygon algorithms (simplification, offsetting) that operate on them.
//
// A Polygon is an ordered sequence of at least three points and is
// implicitly closed: the last vertex connects back to the first, and no
// duplicate closing vertex is stored. Winding order is not guaranteed —
// traced contours arrive in either direction — so every algorithm here
// tolerates both.
package geom

import "math"

// Point is a 2-D coordinate in pixel or physical units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q as a vector.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Polygon is an ordered, implicitly closed vertex sequence.
type Polygon []Point

// Clone returns an independent copy of the polygon.
func (p Polygon) Clone() Polygon {
	return append(Polygon(nil), p...)
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Area returns the box area.
func (b BBox) Area() float64 { return b.Width() * b.Height() }
