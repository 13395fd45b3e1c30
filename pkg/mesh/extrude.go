package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/jigcut/pkg/geom"
)

// ErrDegenerateHole is returned when the cavity polygon has fewer than
// three vertices. Exporting a corrupt solid is worse than failing, so
// this is rejected before any triangle is built.
var ErrDegenerateHole = errors.New("mesh: cavity polygon needs at least 3 vertices")

// Breakdown records how many triangles each face group of a jig solid
// contributed, in emission order.
type Breakdown struct {
	Bottom      int
	Top         int
	OuterWalls  int
	CavityWalls int
	CavityFloor int
}

// BuildJig extrudes a jig solid: the outer boundary polygon (the blank,
// typically a rectangle) extruded from z=0 to z=height, with the hole
// polygon cut from the top face down by depth. depth == height is a
// through-cut (the cavity is closed below by the solid bottom face);
// depth < height is a blind pocket and gets its own floor at z =
// height-depth so the solid stays watertight.
//
// The hole polygon must already be positioned in the outer boundary's
// coordinate frame.
func BuildJig(outer, hole geom.Polygon, height, depth float64) (*Mesh, Breakdown, error) {
	var bd Breakdown

	if len(outer) < 3 {
		return nil, bd, fmt.Errorf("mesh: outer boundary needs at least 3 vertices, got %d", len(outer))
	}
	if len(hole) < 3 {
		return nil, bd, ErrDegenerateHole
	}
	if height <= 0 {
		return nil, bd, fmt.Errorf("mesh: extrusion height %.3f must be positive", height)
	}
	if depth <= 0 || depth > height {
		return nil, bd, fmt.Errorf("mesh: cavity depth %.3f must be in (0, %.3f]", depth, height)
	}

	// Normalize windings once so every wall normal comes out of the
	// same rotation: counter-clockwise outer, clockwise hole.
	outer = orientPolygon(outer, true)
	hole = orientPolygon(hole, false)

	m := &Mesh{}

	// Bottom face: outer boundary only, no hole. Triangulator output is
	// clockwise, which is exactly the downward-facing winding.
	bottom, err := Triangulate(outer, 0)
	if err != nil {
		return nil, bd, err
	}
	if len(bottom) == 0 {
		return nil, bd, ErrTriangulation
	}
	for _, t := range bottom {
		m.Triangles = append(m.Triangles, Triangle{
			Normal: Vec3{Z: -1},
			V1:     at(outer, t[0], 0),
			V2:     at(outer, t[1], 0),
			V3:     at(outer, t[2], 0),
		})
	}
	bd.Bottom = len(bottom)

	// Top face: outer boundary with the hole subtracted. The clockwise
	// triangulator output must be rewound (v0, v2, v1) so the visible
	// winding faces up.
	combined := make(geom.Polygon, 0, len(outer)+len(hole))
	combined = append(combined, outer...)
	combined = append(combined, hole...)
	top, err := Triangulate(combined, len(outer))
	if err != nil {
		return nil, bd, err
	}
	if len(top) == 0 {
		return nil, bd, ErrTriangulation
	}
	for _, t := range top {
		m.Triangles = append(m.Triangles, Triangle{
			Normal: Vec3{Z: 1},
			V1:     at(combined, t[0], height),
			V2:     at(combined, t[2], height),
			V3:     at(combined, t[1], height),
		})
	}
	bd.Top = len(top)

	// Outer side walls, full height. With a counter-clockwise outer
	// ring, rotating each edge direction 90 degrees points outward.
	bd.OuterWalls = appendWalls(m, outer, 0, height)

	// Cavity walls, from the cavity floor to the top. The hole ring is
	// clockwise, so the same rotation points into the cavity.
	bd.CavityWalls = appendWalls(m, hole, height-depth, height)

	// Blind pockets need a floor; a through-cut's floor is the solid
	// bottom face itself.
	if depth < height {
		floor, err := Triangulate(hole, 0)
		if err != nil {
			return nil, bd, err
		}
		for _, t := range floor {
			m.Triangles = append(m.Triangles, Triangle{
				Normal: Vec3{Z: 1},
				V1:     at(hole, t[0], height-depth),
				V2:     at(hole, t[2], height-depth),
				V3:     at(hole, t[1], height-depth),
			})
		}
		bd.CavityFloor = len(floor)
	}

	return m, bd, nil
}

// appendWalls emits two triangles per ring edge spanning zLow to zHigh,
// with the facet normal from rotating the edge direction 90 degrees.
// Returns the number of triangles added.
func appendWalls(m *Mesh, ring geom.Polygon, zLow, zHigh float64) int {
	for i := range ring {
		a := ring[i]
		b := ring[(i+1)%len(ring)]

		n := wallNormal(a, b)
		a0 := Vec3{X: a.X, Y: a.Y, Z: zLow}
		b0 := Vec3{X: b.X, Y: b.Y, Z: zLow}
		a1 := Vec3{X: a.X, Y: a.Y, Z: zHigh}
		b1 := Vec3{X: b.X, Y: b.Y, Z: zHigh}

		m.Triangles = append(m.Triangles,
			Triangle{Normal: n, V1: a0, V2: b0, V3: b1},
			Triangle{Normal: n, V1: a0, V2: b1, V3: a1},
		)
	}
	return 2 * len(ring)
}

// wallNormal is the edge direction a->b rotated 90 degrees, normalized.
func wallNormal(a, b geom.Point) Vec3 {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return Vec3{}
	}
	return Vec3{X: dy / length, Y: -dx / length}
}

// orientPolygon returns the polygon wound counter-clockwise (ccw true)
// or clockwise (ccw false), reversing a copy when needed.
func orientPolygon(p geom.Polygon, ccw bool) geom.Polygon {
	var sum float64
	for i := range p {
		j := (i + 1) % len(p)
		sum += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	if (sum > 0) == ccw {
		return p
	}
	out := make(geom.Polygon, len(p))
	for i := range p {
		out[i] = p[len(p)-1-i]
	}
	return out
}

// at lifts a 2-D vertex to height z.
func at(p geom.Polygon, i int, z float64) Vec3 {
	return Vec3{X: p[i].X, Y: p[i].Y, Z: z}
}
