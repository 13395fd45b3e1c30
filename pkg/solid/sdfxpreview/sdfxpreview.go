// Package sdfxpreview implements the solid.Builder interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Meshes come out of
// marching cubes, so they are approximate; this backend exists for
// on-screen previews, while exact export geometry comes from the
// extrusion builder.
package sdfxpreview

import (
	"fmt"

	"github.com/chazu/jigcut/pkg/geom"
	"github.com/chazu/jigcut/pkg/mesh"
	"github.com/chazu/jigcut/pkg/solid"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ solid.Builder = (*Builder)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// Builder builds preview meshes via signed distance fields.
type Builder struct {
	cells int
}

// New returns a preview builder at the default resolution.
func New() *Builder {
	return &Builder{cells: defaultMeshCells}
}

// Build models the jig as an extruded blank minus an extruded cavity
// and tessellates it with marching cubes.
func (b *Builder) Build(outer, cavity geom.Polygon, height, depth float64) (*mesh.Mesh, error) {
	if len(outer) < 3 || len(cavity) < 3 {
		return nil, fmt.Errorf("sdfxpreview: polygons need at least 3 vertices (outer %d, cavity %d)",
			len(outer), len(cavity))
	}
	if height <= 0 || depth <= 0 || depth > height {
		return nil, fmt.Errorf("sdfxpreview: invalid height %.3f / depth %.3f", height, depth)
	}

	blank2, err := sdf.Polygon2D(toVecs(outer))
	if err != nil {
		return nil, fmt.Errorf("sdfxpreview: blank profile: %w", err)
	}
	cavity2, err := sdf.Polygon2D(toVecs(cavity))
	if err != nil {
		return nil, fmt.Errorf("sdfxpreview: cavity profile: %w", err)
	}

	// Extrude3D is symmetric about z=0; shift the blank to sit on the
	// build plate. The cavity is extruded slightly past the top face so
	// the boolean cut is clean.
	const overcut = 0.1
	blank := sdf.Transform3D(
		sdf.Extrude3D(blank2, height),
		sdf.Translate3d(v3.Vec{Z: height / 2}),
	)
	cut := sdf.Transform3D(
		sdf.Extrude3D(cavity2, depth+overcut),
		sdf.Translate3d(v3.Vec{Z: height - (depth+overcut)/2 + overcut}),
	)

	s := sdf.Difference3D(blank, cut)

	renderer := render.NewMarchingCubesUniform(b.cells)
	triangles := render.ToTriangles(s, renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("sdfxpreview: marching cubes produced no triangles")
	}

	m := &mesh.Mesh{Triangles: make([]mesh.Triangle, 0, len(triangles))}
	for _, tri := range triangles {
		n := tri.Normal()
		m.Triangles = append(m.Triangles, mesh.Triangle{
			Normal: mesh.Vec3{X: n.X, Y: n.Y, Z: n.Z},
			V1:     mesh.Vec3{X: tri[0].X, Y: tri[0].Y, Z: tri[0].Z},
			V2:     mesh.Vec3{X: tri[1].X, Y: tri[1].Y, Z: tri[1].Z},
			V3:     mesh.Vec3{X: tri[2].X, Y: tri[2].Y, Z: tri[2].Z},
		})
	}
	return m, nil
}

// toVecs converts a polygon to the sdfx vertex representation.
func toVecs(p geom.Polygon) []v2.Vec {
	out := make([]v2.Vec, len(p))
	for i, pt := range p {
		out[i] = v2.Vec{X: pt.X, Y: pt.Y}
	}
	return out
}
