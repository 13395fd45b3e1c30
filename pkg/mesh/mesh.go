// Package mesh builds watertight extruded solids from 2-D boundary
// polygons and serializes them to the binary STL triangle-mesh format.
// It contains the polygon triangulator (ear clipping with hole support),
// the jig extruder, and the byte-exact STL encoder.
package mesh

// Vec3 is a 3-D vector or vertex position.
type Vec3 struct {
	X, Y, Z float64
}

// Triangle is a mesh facet: three vertices and an explicit face normal.
// The normal is stored rather than derived so that faces keep their
// intended orientation even when a vertex triple is nearly degenerate.
type Triangle struct {
	Normal     Vec3
	V1, V2, V3 Vec3
}

// Mesh is an ordered triangle soup. It is built once per export and
// handed straight to the serializer; there is no persistent mesh store.
type Mesh struct {
	Triangles []Triangle
}

// TriangleCount returns the number of facets.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// IsEmpty reports whether the mesh has no facets.
func (m *Mesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// Bounds returns the axis-aligned bounds of all vertices. The zero
// box is returned for an empty mesh.
func (m *Mesh) Bounds() (min, max Vec3) {
	if len(m.Triangles) == 0 {
		return Vec3{}, Vec3{}
	}
	min = m.Triangles[0].V1
	max = m.Triangles[0].V1
	for _, t := range m.Triangles {
		for _, v := range []Vec3{t.V1, t.V2, t.V3} {
			if v.X < min.X {
				min.X = v.X
			}
			if v.Y < min.Y {
				min.Y = v.Y
			}
			if v.Z < min.Z {
				min.Z = v.Z
			}
			if v.X > max.X {
				max.X = v.X
			}
			if v.Y > max.Y {
				max.Y = v.Y
			}
			if v.Z > max.Z {
				max.Z = v.Z
			}
		}
	}
	return min, max
}
