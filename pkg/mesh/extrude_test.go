package mesh_test

import (
	"math"
	"testing"

	"github.com/chazu/jigcut/pkg/geom"
	"github.com/chazu/jigcut/pkg/mesh"
)

// octagonHole returns an 8-sided cavity polygon centered in a 100x100 blank.
func octagonHole() geom.Polygon {
	var p geom.Polygon
	for i := 0; i < 8; i++ {
		angle := 2 * math.Pi * float64(i) / 8
		p = append(p, geom.Point{
			X: 50 + 25*math.Cos(angle),
			Y: 50 + 25*math.Sin(angle),
		})
	}
	return p
}

func TestBuildJigThroughCut(t *testing.T) {
	outer := rect(0, 0, 100, 100)
	hole := octagonHole()

	m, bd, err := mesh.BuildJig(outer, hole, 3, 3)
	if err != nil {
		t.Fatalf("BuildJig: %v", err)
	}

	// Bottom face covers the convex rectangular blank: 2 triangles.
	if bd.Bottom != 2 {
		t.Errorf("bottom triangles = %d, want 2", bd.Bottom)
	}
	// Outer side walls: two triangles per rectangle edge.
	if bd.OuterWalls != 8 {
		t.Errorf("outer wall triangles = %d, want 8", bd.OuterWalls)
	}
	// Cavity walls: two triangles per hole edge.
	if bd.CavityWalls != 2*len(hole) {
		t.Errorf("cavity wall triangles = %d, want %d", bd.CavityWalls, 2*len(hole))
	}
	// A through-cut has no separate cavity floor.
	if bd.CavityFloor != 0 {
		t.Errorf("cavity floor triangles = %d, want 0", bd.CavityFloor)
	}

	total := bd.Bottom + bd.Top + bd.OuterWalls + bd.CavityWalls + bd.CavityFloor
	if m.TriangleCount() != total {
		t.Errorf("mesh has %d triangles, breakdown sums to %d", m.TriangleCount(), total)
	}

	// Through-cut cavity walls span the full thickness.
	min, max := m.Bounds()
	if min.Z != 0 || max.Z != 3 {
		t.Errorf("z extent [%v, %v], want [0, 3]", min.Z, max.Z)
	}
}

func TestBuildJigPocketHasFloor(t *testing.T) {
	outer := rect(0, 0, 100, 100)
	hole := octagonHole()

	m, bd, err := mesh.BuildJig(outer, hole, 10, 4)
	if err != nil {
		t.Fatalf("BuildJig: %v", err)
	}
	if bd.CavityFloor != len(hole)-2 {
		t.Errorf("cavity floor triangles = %d, want %d", bd.CavityFloor, len(hole)-2)
	}

	// Floor triangles sit at z = height - depth = 6.
	floorZ := 10.0 - 4.0
	found := false
	for _, tri := range m.Triangles {
		if tri.V1.Z == floorZ && tri.V2.Z == floorZ && tri.V3.Z == floorZ && tri.Normal.Z == 1 {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("no upward-facing floor triangle found at z = %v", floorZ)
	}
}

func TestBuildJigTopFaceNormals(t *testing.T) {
	outer := rect(0, 0, 100, 100)
	hole := octagonHole()

	m, _, err := mesh.BuildJig(outer, hole, 3, 3)
	if err != nil {
		t.Fatalf("BuildJig: %v", err)
	}

	for _, tri := range m.Triangles {
		if tri.Normal.Z == 0 {
			continue
		}
		// The declared vertical normal must agree with the winding the
		// right-hand rule derives from the vertices.
		ux, uy := tri.V2.X-tri.V1.X, tri.V2.Y-tri.V1.Y
		vx, vy := tri.V3.X-tri.V1.X, tri.V3.Y-tri.V1.Y
		signed := ux*vy - uy*vx
		if signed*tri.Normal.Z <= 0 {
			t.Fatalf("face winding disagrees with normal %+v (signed %v)", tri.Normal, signed)
		}
	}
}

func TestBuildJigWallNormalsPointOutward(t *testing.T) {
	outer := rect(0, 0, 100, 100)
	hole := octagonHole()

	m, _, err := mesh.BuildJig(outer, hole, 3, 3)
	if err != nil {
		t.Fatalf("BuildJig: %v", err)
	}

	center := mesh.Vec3{X: 50, Y: 50}
	for _, tri := range m.Triangles {
		if tri.Normal.Z != 0 {
			continue
		}
		cx := (tri.V1.X + tri.V2.X + tri.V3.X) / 3
		cy := (tri.V1.Y + tri.V2.Y + tri.V3.Y) / 3
		outward := (cx-center.X)*tri.Normal.X + (cy-center.Y)*tri.Normal.Y

		onOuter := cx < 1 || cx > 99 || cy < 1 || cy > 99
		if onOuter && outward <= 0 {
			t.Errorf("outer wall normal at (%v,%v) points inward", cx, cy)
		}
		if !onOuter && outward >= 0 {
			t.Errorf("cavity wall normal at (%v,%v) points away from the cavity axis", cx, cy)
		}
	}
}

func TestBuildJigRejectsBadInput(t *testing.T) {
	outer := rect(0, 0, 100, 100)
	hole := octagonHole()

	cases := map[string]func() error{
		"degenerate hole": func() error {
			_, _, err := mesh.BuildJig(outer, geom.Polygon{{X: 1, Y: 1}, {X: 2, Y: 2}}, 3, 3)
			return err
		},
		"degenerate outer": func() error {
			_, _, err := mesh.BuildJig(geom.Polygon{{X: 0, Y: 0}}, hole, 3, 3)
			return err
		},
		"zero height": func() error {
			_, _, err := mesh.BuildJig(outer, hole, 0, 0)
			return err
		},
		"depth exceeds height": func() error {
			_, _, err := mesh.BuildJig(outer, hole, 3, 5)
			return err
		},
	}
	for name, run := range cases {
		if err := run(); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
