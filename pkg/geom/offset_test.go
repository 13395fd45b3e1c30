package geom_test

import (
	"math"
	"testing"

	"github.com/chazu/jigcut/pkg/geom"
)

func ccwSquare(size float64) geom.Polygon {
	return geom.Polygon{
		{X: 0, Y: 0},
		{X: size, Y: 0},
		{X: size, Y: size},
		{X: 0, Y: size},
	}
}

func TestOffsetZeroIsIdentity(t *testing.T) {
	p := ccwSquare(10)
	got := p.Offset(0)
	if len(got) != len(p) {
		t.Fatalf("len = %d, want %d", len(got), len(p))
	}
	// Not just equal values: the identity offset must hand back the
	// same backing slice so repeated calls cannot drift.
	if &got[0] != &p[0] {
		t.Error("offset(0) returned a copy instead of the input slice")
	}
	for i := range p {
		if got[i] != p[i] {
			t.Errorf("vertex %d = %+v, want %+v", i, got[i], p[i])
		}
	}
}

func TestOffsetPreservesCountAndOrder(t *testing.T) {
	p := geom.Polygon{
		{X: 0, Y: 0},
		{X: 40, Y: 5},
		{X: 50, Y: 30},
		{X: 20, Y: 45},
		{X: -5, Y: 25},
	}
	got := p.Offset(3)
	if len(got) != len(p) {
		t.Fatalf("len = %d, want %d", len(got), len(p))
	}
	// Each output vertex is its input vertex displaced by exactly the
	// offset distance along the averaged normal.
	for i := range p {
		d := p[i].Dist(got[i])
		if math.Abs(d-3) > 1e-9 {
			t.Errorf("vertex %d moved %.6f, want 3", i, d)
		}
	}
}

func TestOffsetGrowsAndShrinksWithSign(t *testing.T) {
	p := ccwSquare(10)
	base := p.Area()

	grown := p.Offset(2)
	if grown.Area() <= base {
		t.Errorf("positive offset area = %.2f, want > %.2f", grown.Area(), base)
	}
	shrunk := p.Offset(-2)
	if shrunk.Area() >= base {
		t.Errorf("negative offset area = %.2f, want < %.2f", shrunk.Area(), base)
	}
}

func TestOffsetSquareCorners(t *testing.T) {
	p := ccwSquare(10)
	// Averaged corner normals bisect the right angle, so a corner moves
	// d along the diagonal: d/sqrt(2) on each axis.
	got := p.Offset(math.Sqrt2)
	want := geom.Polygon{
		{X: -1, Y: -1},
		{X: 11, Y: -1},
		{X: 11, Y: 11},
		{X: -1, Y: 11},
	}
	for i := range want {
		if got[i].Dist(want[i]) > 1e-9 {
			t.Errorf("vertex %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestOffsetDegenerateInputsUntouched(t *testing.T) {
	for _, p := range []geom.Polygon{nil, {{X: 1, Y: 1}}, {{X: 0, Y: 0}, {X: 5, Y: 5}}} {
		got := p.Offset(4)
		if len(got) != len(p) {
			t.Errorf("len(%d-gon offset) = %d, want unchanged", len(p), len(got))
		}
	}
}
