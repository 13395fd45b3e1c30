package geom_test

import (
	"math"
	"testing"

	"github.com/chazu/jigcut/pkg/geom"
)

// square returns an axis-aligned square with the given corner and side.
func square(x, y, side float64) geom.Polygon {
	return geom.Polygon{
		{X: x, Y: y},
		{X: x + side, Y: y},
		{X: x + side, Y: y + side},
		{X: x, Y: y + side},
	}
}

// rotateStart returns the polygon with its starting vertex shifted by k.
func rotateStart(p geom.Polygon, k int) geom.Polygon {
	out := make(geom.Polygon, 0, len(p))
	for i := range p {
		out = append(out, p[(i+k)%len(p)])
	}
	return out
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestAreaSquare(t *testing.T) {
	p := square(0, 0, 10)
	if got := p.Area(); !almostEqual(got, 100, 1e-9) {
		t.Errorf("area = %v, want 100", got)
	}
}

func TestAreaDegenerate(t *testing.T) {
	cases := []geom.Polygon{
		nil,
		{{X: 1, Y: 1}},
		{{X: 1, Y: 1}, {X: 2, Y: 2}},
	}
	for _, p := range cases {
		if got := p.Area(); got != 0 {
			t.Errorf("degenerate polygon with %d points: area = %v, want 0", len(p), got)
		}
	}
}

func TestAreaInvariantUnderRewinding(t *testing.T) {
	p := geom.Polygon{{X: 0, Y: 0}, {X: 40, Y: 5}, {X: 35, Y: 30}, {X: 10, Y: 25}, {X: -5, Y: 12}}
	rev := make(geom.Polygon, len(p))
	for i := range p {
		rev[i] = p[len(p)-1-i]
	}
	if a, b := p.Area(), rev.Area(); !almostEqual(a, b, 1e-9) {
		t.Errorf("area changed under rewinding: %v vs %v", a, b)
	}
}

func TestAreaInvariantUnderTranslation(t *testing.T) {
	p := geom.Polygon{{X: 0, Y: 0}, {X: 40, Y: 5}, {X: 35, Y: 30}, {X: 10, Y: 25}}
	moved := p.Translate(123.5, -77.25)
	if a, b := p.Area(), moved.Area(); !almostEqual(a, b, 1e-6) {
		t.Errorf("area changed under translation: %v vs %v", a, b)
	}
}

func TestContainsSquare(t *testing.T) {
	base := square(0, 0, 10)

	// Containment must not depend on which vertex the loop starts at.
	for k := 0; k < len(base); k++ {
		p := rotateStart(base, k)
		if !p.Contains(geom.Point{X: 5, Y: 5}) {
			t.Errorf("start offset %d: (5,5) should be inside", k)
		}
		if p.Contains(geom.Point{X: 15, Y: 15}) {
			t.Errorf("start offset %d: (15,15) should be outside", k)
		}
		if p.Contains(geom.Point{X: -1, Y: 5}) {
			t.Errorf("start offset %d: (-1,5) should be outside", k)
		}
	}
}

func TestContainsConcave(t *testing.T) {
	// A "U" shape: the notch interior is outside the polygon.
	u := geom.Polygon{
		{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 30}, {X: 20, Y: 30},
		{X: 20, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 30}, {X: 0, Y: 30},
	}
	if !u.Contains(geom.Point{X: 5, Y: 15}) {
		t.Error("(5,15) should be inside the left arm")
	}
	if u.Contains(geom.Point{X: 15, Y: 20}) {
		t.Error("(15,20) should be outside, inside the notch")
	}
}

func TestBounds(t *testing.T) {
	p := geom.Polygon{{X: 3, Y: -2}, {X: 7, Y: 9}, {X: -1, Y: 4}}
	b := p.Bounds()
	if b.MinX != -1 || b.MinY != -2 || b.MaxX != 7 || b.MaxY != 9 {
		t.Errorf("bounds = %+v", b)
	}
	if !almostEqual(b.Width(), 8, 1e-9) || !almostEqual(b.Height(), 11, 1e-9) {
		t.Errorf("width/height = %v/%v", b.Width(), b.Height())
	}
}

func TestBBoxIoUSelf(t *testing.T) {
	p := square(2, 3, 10)
	if got := geom.BBoxIoU(p, p); !almostEqual(got, 1, 1e-9) {
		t.Errorf("IoU(A,A) = %v, want 1", got)
	}
}

func TestBBoxIoUDisjoint(t *testing.T) {
	a := square(0, 0, 10)
	b := square(100, 100, 10)
	if got := geom.BBoxIoU(a, b); got != 0 {
		t.Errorf("IoU of disjoint boxes = %v, want 0", got)
	}
}

func TestBBoxIoUSymmetricAndBounded(t *testing.T) {
	a := square(0, 0, 10)
	b := square(5, 5, 10)
	ab := geom.BBoxIoU(a, b)
	ba := geom.BBoxIoU(b, a)
	if !almostEqual(ab, ba, 1e-12) {
		t.Errorf("IoU not symmetric: %v vs %v", ab, ba)
	}
	if ab < 0 || ab > 1 {
		t.Errorf("IoU out of [0,1]: %v", ab)
	}
	// 5x5 overlap, union 100+100-25.
	if want := 25.0 / 175.0; !almostEqual(ab, want, 1e-9) {
		t.Errorf("IoU = %v, want %v", ab, want)
	}
}
