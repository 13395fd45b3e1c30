package geom_test

import (
	"testing"

	"github.com/chazu/jigcut/pkg/geom"
)

// noisySquare is a square with one near-collinear midpoint per side.
func noisySquare() geom.Polygon {
	return geom.Polygon{
		{X: 0, Y: 0}, {X: 50, Y: 0.2}, {X: 100, Y: 0},
		{X: 99.8, Y: 50}, {X: 100, Y: 100},
		{X: 50, Y: 100.3}, {X: 0, Y: 100},
		{X: 0.1, Y: 50},
	}
}

func samePolygon(a, b geom.Polygon) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSimplifyRemovesNearCollinearPoints(t *testing.T) {
	got := noisySquare().Simplify(1.0)
	if len(got) != 4 {
		t.Fatalf("simplified to %d vertices, want 4: %v", len(got), got)
	}
}

func TestSimplifyKeepsSmallPolygons(t *testing.T) {
	tri := geom.Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}}
	got := tri.Simplify(100)
	if !samePolygon(got, tri) {
		t.Errorf("triangle changed by simplification: %v", got)
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	const eps = 1.0
	once := noisySquare().Simplify(eps)
	twice := once.Simplify(eps)
	if !samePolygon(once, twice) {
		t.Errorf("simplify not idempotent: %v vs %v", once, twice)
	}
}

func TestSimplifyMonotonicInEpsilon(t *testing.T) {
	p := noisySquare()
	prev := len(p)
	for _, eps := range []float64{0.05, 0.25, 1, 5, 50} {
		n := len(p.Simplify(eps))
		if n > prev {
			t.Errorf("eps %v: vertex count %d exceeds count %d at smaller eps", eps, n, prev)
		}
		prev = n
	}
}

func TestSimplifyNeverDegenerates(t *testing.T) {
	// A thin sliver that a huge tolerance would collapse entirely;
	// the original polygon must come back instead.
	sliver := geom.Polygon{{X: 0, Y: 0}, {X: 100, Y: 1}, {X: 200, Y: 0}, {X: 100, Y: -1}}
	got := sliver.Simplify(1e6)
	if len(got) < 3 {
		t.Fatalf("simplify returned a degenerate %d-point result", len(got))
	}
	if !samePolygon(got, sliver) {
		t.Errorf("expected fallback to the original polygon, got %v", got)
	}
}

func TestSimplifyZeroEpsilonIsCopy(t *testing.T) {
	p := noisySquare()
	got := p.Simplify(0)
	if !samePolygon(got, p) {
		t.Errorf("eps 0 changed the polygon: %v", got)
	}
	// Must be a copy, not an alias.
	got[0].X = 999
	if p[0].X == 999 {
		t.Error("simplify with eps 0 aliased the input slice")
	}
}
