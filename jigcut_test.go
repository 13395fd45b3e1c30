package jigcut_test

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/chazu/jigcut"
	"github.com/chazu/jigcut/pkg/detect"
	"github.com/chazu/jigcut/pkg/geom"
	"github.com/chazu/jigcut/pkg/jig"
)

// scene renders the canonical shot: a letter-proportioned white sheet
// on a dark table with a dark object resting on it.
func scene() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 400, 400))
	paint(img, 0, 0, 400, 400, color.RGBA{30, 30, 30, 255})     // table
	paint(img, 100, 40, 300, 300, color.RGBA{235, 235, 235, 255}) // sheet, 200x260
	paint(img, 170, 140, 230, 200, color.RGBA{50, 50, 50, 255})   // object, 60x60
	return img
}

func paint(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func TestPipelineEndToEnd(t *testing.T) {
	p := jigcut.New()
	det := p.Detect(scene())

	if det.TargetIndex < 0 {
		t.Fatal("no target found in scene")
	}
	target := det.Candidates[det.TargetIndex]
	if target.IsReference {
		t.Fatal("target is the reference sheet, not the object")
	}
	if det.Calibration == nil {
		t.Fatal("reference sheet not recognized, no calibration")
	}

	// Sheet is ~199x259 px for a 215.9x279.4 mm letter.
	if ppu := det.Calibration.PixelsPerUnit; ppu < 0.85 || ppu > 1.0 {
		t.Errorf("pixels per mm = %.3f, want ~0.92", ppu)
	}

	outline := p.Simplify(target.Polygon, 2)
	if len(outline) < 3 {
		t.Fatalf("simplified outline degenerate: %d vertices", len(outline))
	}

	cfg := jig.Default()
	cal := *det.Calibration

	var svg bytes.Buffer
	if err := p.ExportSVG(&svg, outline, cfg, cal); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(svg.String(), "<svg") {
		t.Error("SVG export missing root element")
	}

	var dxf bytes.Buffer
	if err := p.ExportDXF(&dxf, outline, cfg, cal); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(dxf.String(), "EOF") {
		t.Error("DXF export missing trailer")
	}

	stl, err := p.ExportSTL(outline, cfg, cal)
	if err != nil {
		t.Fatal(err)
	}
	count := binary.LittleEndian.Uint32(stl[80:84])
	if count == 0 || len(stl) != 84+50*int(count) {
		t.Errorf("STL layout: %d bytes for %d facets", len(stl), count)
	}
}

func TestPipelineRectify(t *testing.T) {
	p := jigcut.New()
	img := scene()

	quad, ok := detect.FindReferenceQuad(p.Detect(img).Candidates,
		jigcut.DefaultRefWidth, jigcut.DefaultRefHeight, 0.1)
	if !ok {
		t.Fatal("reference sheet not found")
	}

	out, err := p.Rectify(img, quad)
	if err != nil {
		t.Fatal(err)
	}
	b := out.Bounds()
	if math.Abs(float64(b.Dx())-quad.Width()) > 1 || math.Abs(float64(b.Dy())-quad.Height()) > 1 {
		t.Errorf("rectified size %dx%d, want ~%.0fx%.0f", b.Dx(), b.Dy(), quad.Width(), quad.Height())
	}
}

func TestPipelineCalibrateManual(t *testing.T) {
	p := jigcut.New()
	cal, err := p.CalibrateManual(geom.Point{X: 10, Y: 20}, geom.Point{X: 110, Y: 20}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if cal.PixelsPerUnit != 10 {
		t.Errorf("pixels per mm = %.3f, want 10", cal.PixelsPerUnit)
	}
}

func TestPipelinePreviewSolid(t *testing.T) {
	if testing.Short() {
		t.Skip("marching cubes preview is slow")
	}

	p := jigcut.New()
	cal, err := p.CalibrateManual(geom.Point{X: 0, Y: 0}, geom.Point{X: 100, Y: 0}, 10)
	if err != nil {
		t.Fatal(err)
	}
	square := geom.Polygon{
		{X: 100, Y: 100}, {X: 300, Y: 100}, {X: 300, Y: 300}, {X: 100, Y: 300},
	}

	pm, err := p.PreviewSolid(square, jig.Default(), cal)
	if err != nil {
		t.Fatal(err)
	}
	if len(pm.Vertices) == 0 || len(pm.Vertices) != len(pm.Normals) || len(pm.Indices)*3 != len(pm.Vertices) {
		t.Errorf("preview arrays inconsistent: %d vertices, %d normals, %d indices",
			len(pm.Vertices), len(pm.Normals), len(pm.Indices))
	}
}
