// Package solid defines the abstract jig solid builder interface.
// Implementations (extrude, sdfxpreview) turn a blank-plus-cavity
// description into a triangle mesh behind this interface, so the exact
// export geometry and the approximate viewer preview can be swapped
// without changing the rest of the system.
package solid

import (
	"github.com/chazu/jigcut/pkg/geom"
	"github.com/chazu/jigcut/pkg/mesh"
)

// Builder produces a triangle mesh for a jig solid: an outer blank
// polygon extruded to the given height with the cavity polygon cut
// from the top face down by depth. Both polygons share one coordinate
// frame, in physical units.
type Builder interface {
	Build(outer, cavity geom.Polygon, height, depth float64) (*mesh.Mesh, error)
}

// PreviewMesh is the flat-array mesh format a 3-D viewer consumes:
// three float32s per vertex and per normal, three indices per triangle.
type PreviewMesh struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
}

// Preview flattens a mesh into viewer arrays. Vertices are not shared
// between facets so each facet keeps its own flat-shaded normal.
func Preview(m *mesh.Mesh) *PreviewMesh {
	n := len(m.Triangles)
	p := &PreviewMesh{
		Vertices: make([]float32, 0, n*9),
		Normals:  make([]float32, 0, n*9),
		Indices:  make([]uint32, 0, n*3),
	}
	for i, t := range m.Triangles {
		for j, v := range []mesh.Vec3{t.V1, t.V2, t.V3} {
			p.Vertices = append(p.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			p.Normals = append(p.Normals, float32(t.Normal.X), float32(t.Normal.Y), float32(t.Normal.Z))
			p.Indices = append(p.Indices, uint32(i*3+j))
		}
	}
	return p
}
