package solid

import (
	"github.com/chazu/jigcut/pkg/geom"
	"github.com/chazu/jigcut/pkg/mesh"
)

// Compile-time interface check.
var _ Builder = (*ExtrudeBuilder)(nil)

// ExtrudeBuilder is the exact solid builder: prismatic extrusion with
// ear-clipping triangulation. This is the backend used for export,
// since its output is byte-for-byte deterministic.
type ExtrudeBuilder struct{}

// NewExtrude returns the exact extrusion builder.
func NewExtrude() *ExtrudeBuilder {
	return &ExtrudeBuilder{}
}

// Build extrudes the jig solid exactly.
func (b *ExtrudeBuilder) Build(outer, cavity geom.Polygon, height, depth float64) (*mesh.Mesh, error) {
	m, _, err := mesh.BuildJig(outer, cavity, height, depth)
	return m, err
}
